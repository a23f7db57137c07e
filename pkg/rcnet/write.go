package rcnet

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/klauspost/compress/zip"

	"github.com/matzehuels/memlayout/pkg/convert"
	"github.com/matzehuels/memlayout/pkg/errors"
	"github.com/matzehuels/memlayout/pkg/node"
	"github.com/matzehuels/memlayout/pkg/observability"
	"github.com/matzehuels/memlayout/pkg/project"
)

// Write encodes p as a container file and writes it to w.
//
// Nodes that no converter recognises are logged through opts.Logger and
// left out; the rest of the document is still written. Errors from w are
// returned as-is and may leave a truncated archive behind.
func Write(w io.Writer, p *project.Project, opts Options) error {
	start := time.Now()
	enc := newEncoder(opts)
	doc := enc.document(contentsOf(p))
	err := writeArchive(w, doc)
	observability.File().OnWrite(p.Len(), enc.skipped, time.Since(start), err)
	return err
}

// Save writes p to a container file at path.
// This is a convenience wrapper around [Write] for file-based output.
func Save(path string, p *project.Project, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, p, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeArchive(w io.Writer, doc *etree.Document) error {
	// Character references keep \r, and \t and \n inside attributes, intact
	// through the parser's whitespace normalisation.
	doc.WriteSettings.CanonicalText = true
	doc.WriteSettings.CanonicalAttrVal = true
	doc.Indent(2)
	zw := zip.NewWriter(w)
	entry, err := zw.Create(DataFileName)
	if err != nil {
		return fmt.Errorf("create %s: %w", DataFileName, err)
	}
	if _, err := doc.WriteTo(entry); err != nil {
		return fmt.Errorf("write %s: %w", DataFileName, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	return nil
}

// contents is what goes into one document.
type contents struct {
	platform   string
	classes    []*node.ClassNode
	customData *project.CustomData
	enums      []*project.Enum
}

func contentsOf(p *project.Project) contents {
	return contents{
		platform:   p.Platform(),
		classes:    p.Classes(),
		customData: p.CustomData(),
		enums:      p.Enums(),
	}
}

// encoder builds documents.
type encoder struct {
	reg     *convert.Registry
	log     convert.Logger
	written map[node.UUID]struct{}
	skipped int
}

func newEncoder(opts Options) *encoder {
	opts = opts.withDefaults()
	return &encoder{reg: opts.Converters, log: opts.Logger}
}

func (e *encoder) document(c contents) *etree.Document {
	e.written = make(map[node.UUID]struct{}, len(c.classes))
	for _, class := range c.classes {
		e.written[class.UUID] = struct{}{}
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement(elemRoot)
	root.CreateAttr(attrVersion, strconv.Itoa(FileVersion))
	root.CreateAttr(attrPlatform, c.platform)

	classes := root.CreateElement(elemClasses)
	for _, class := range c.classes {
		classes.AddChild(e.classElement(class.UUID, &class.BaseNode, class.AddressFormula, class.Nodes()))
	}
	root.AddChild(e.enumsElement(c.enums))
	root.AddChild(e.customDataElement(c.customData))
	return doc
}

func (e *encoder) classElement(id node.UUID, base *node.BaseNode, address string, children []node.Node) *etree.Element {
	el := etree.NewElement(elemClass)
	el.CreateAttr(attrUUID, id.String())
	el.CreateAttr(attrName, base.Name)
	el.CreateAttr(attrComment, base.Comment)
	el.CreateAttr(attrAddress, address)
	for _, n := range children {
		if child := e.nodeElement(n); child != nil {
			el.AddChild(child)
		}
	}
	return el
}

func (e *encoder) enumsElement(enums []*project.Enum) *etree.Element {
	el := etree.NewElement(elemEnums)
	for _, en := range enums {
		enumEl := el.CreateElement(elemEnum)
		enumEl.CreateAttr(attrName, en.Name)
		enumEl.CreateAttr(attrFlags, strconv.FormatBool(en.UseFlagsMode))
		enumEl.CreateAttr(attrSize, strconv.Itoa(en.Size()))
		for _, item := range en.Items() {
			itemEl := enumEl.CreateElement(elemItem)
			itemEl.CreateAttr(attrName, item.Name)
			itemEl.CreateAttr(attrValue, strconv.FormatInt(item.Value, 10))
		}
	}
	return el
}

func (e *encoder) customDataElement(data *project.CustomData) *etree.Element {
	el := etree.NewElement(elemCustomData)
	if data == nil {
		return el
	}
	for key, value := range data.All() {
		if err := errors.ValidateElementName(key); err != nil {
			e.log.Error("skipping custom data entry", "key", key, "err", errors.UserMessage(err))
			continue
		}
		el.CreateElement(key).SetText(value)
	}
	return el
}

// nodeElement serializes one node, or returns nil if it has to be skipped.
func (e *encoder) nodeElement(n node.Node) *etree.Element {
	if conv, ok := e.reg.ConverterForNode(n); ok {
		return conv.CreateElement(n, e.log, e.nodeElement)
	}

	tag, ok := e.reg.TagOf(n)
	if !ok {
		e.log.Error("skipping node with unknown type", "node", n.Base().Name)
		e.log.Warn("unknown node type", "type", fmt.Sprintf("%T", n))
		e.skipped++
		return nil
	}

	base := n.Base()
	el := etree.NewElement(elemNode)
	el.CreateAttr(attrName, base.Name)
	el.CreateAttr(attrComment, base.Comment)
	el.CreateAttr(attrHidden, strconv.FormatBool(base.IsHidden))
	el.CreateAttr(attrType, tag)

	switch v := n.(type) {
	case *node.ClassInstanceNode:
		if c := v.Class(); c != nil {
			el.CreateAttr(attrReference, c.UUID.String())
		}
	case *node.VTableNode:
		for _, m := range v.Methods() {
			method := el.CreateElement(elemMethod)
			method.CreateAttr(attrName, m.Name)
			method.CreateAttr(attrComment, m.Comment)
			method.CreateAttr(attrHidden, strconv.FormatBool(m.IsHidden))
		}
	case *node.ArrayNode:
		el.CreateAttr(attrCount, strconv.Itoa(v.Count()))
	case *node.TextNode:
		el.CreateAttr(attrLength, strconv.Itoa(v.Length()))
	case *node.BitFieldNode:
		el.CreateAttr(attrBits, strconv.Itoa(v.Bits()))
	case *node.FunctionNode:
		owner := node.ZeroUUID
		if c := v.BelongsToClass; c != nil {
			if _, ok := e.written[c.UUID]; ok {
				owner = c.UUID
			}
		}
		el.CreateAttr(attrReference, owner.String())
		el.CreateAttr(attrSignature, v.Signature)
	}

	if w, ok := n.(node.Wrapper); ok && w.OwnsInner() {
		if inner := w.InnerNode(); inner != nil {
			if child := e.nodeElement(inner); child != nil {
				el.AddChild(child)
			}
		}
	}
	return el
}
