package rcnet

import (
	"bytes"
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

// Read decodes a container file into a new project.
//
// The project adopts the platform recorded in the file. Elements that
// cannot be decoded are logged through opts.Logger and skipped.
func Read(r io.Reader, opts Options) (*project.Project, error) {
	start := time.Now()
	p, skipped, err := read(r, opts)
	count := 0
	if p != nil {
		count = p.Len()
	}
	observability.File().OnRead(count, skipped, time.Since(start), err)
	return p, err
}

// Load reads a container file from path.
func Load(path string, opts Options) (*project.Project, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, opts)
}

func read(r io.Reader, opts Options) (*project.Project, int, error) {
	root, err := readDocument(r)
	if err != nil {
		return nil, 0, err
	}
	dec := newDecoder(opts)
	platform := dec.platform(root)

	p := project.New(project.WithPlatform(platform))
	dec.readCustomData(root, p)
	dec.readEnums(root, p)
	for _, c := range dec.readClasses(root, nil) {
		p.AddClass(c)
	}
	return p, dec.skipped, nil
}

// readDocument unpacks the archive and returns the checked root element.
func readDocument(r io.Reader) (*etree.Element, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read container: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "not a container archive")
	}
	var entry *zip.File
	for _, f := range zr.File {
		if f.Name == DataFileName {
			entry = f
			break
		}
	}
	if entry == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "archive has no %s", DataFileName)
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open %s", DataFileName)
	}
	defer rc.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(rc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", DataFileName)
	}
	root := doc.Root()
	if root == nil || root.Tag != elemRoot {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "missing <%s> root element", elemRoot)
	}

	version, err := strconv.ParseUint(root.SelectAttrValue(attrVersion, ""), 10, 32)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid file version")
	}
	if version&FileVersionCriticalMask > FileVersion&FileVersionCriticalMask {
		return nil, errors.New(errors.ErrCodeUnsupportedVersion,
			"file version %#08x is newer than supported %#08x", version, FileVersion)
	}
	return root, nil
}

// decoder turns document elements back into nodes.
type decoder struct {
	reg     *convert.Registry
	log     convert.Logger
	expect  string
	classes map[node.UUID]*node.ClassNode
	skipped int
}

func newDecoder(opts Options) *decoder {
	opts = opts.withDefaults()
	return &decoder{
		reg:     opts.Converters,
		log:     opts.Logger,
		expect:  opts.Platform,
		classes: make(map[node.UUID]*node.ClassNode),
	}
}

func (d *decoder) platform(root *etree.Element) string {
	platform := root.SelectAttrValue(attrPlatform, "")
	if platform == "" {
		platform = project.DefaultPlatform
	}
	if d.expect != "" && d.expect != platform {
		d.log.Warn("platform mismatch", "file", platform, "expected", d.expect)
	}
	return platform
}

func (d *decoder) readCustomData(root *etree.Element, p *project.Project) {
	el := root.SelectElement(elemCustomData)
	if el == nil {
		return
	}
	for _, item := range el.ChildElements() {
		p.CustomData().Set(item.Tag, item.Text())
	}
}

func (d *decoder) readEnums(root *etree.Element, p *project.Project) {
	el := root.SelectElement(elemEnums)
	if el == nil {
		return
	}
	for _, enumEl := range el.SelectElements(elemEnum) {
		e := project.NewEnum(enumEl.SelectAttrValue(attrName, ""))
		e.UseFlagsMode = boolAttr(enumEl, attrFlags)
		if size, ok := intAttr(enumEl, attrSize); ok {
			if err := e.SetSize(size); err != nil {
				d.log.Warn("keeping default enum size", "enum", e.Name, "err", err)
			}
		}
		for _, itemEl := range enumEl.SelectElements(elemItem) {
			value, err := strconv.ParseInt(itemEl.SelectAttrValue(attrValue, "0"), 10, 64)
			if err != nil {
				d.log.Warn("skipping enum item", "enum", e.Name, "item", elementString(itemEl))
				continue
			}
			e.AddItem(itemEl.SelectAttrValue(attrName, ""), value)
		}
		p.AddEnum(e)
	}
}

// readClasses decodes every class element in two passes: shells first so
// that references between classes (cycles included) bind, bodies second.
// Classes whose UUID is already known to target bind to the live class and
// are not decoded again. It returns the newly created classes in document
// order.
func (d *decoder) readClasses(root *etree.Element, target *project.Project) []*node.ClassNode {
	el := root.SelectElement(elemClasses)
	if el == nil {
		return nil
	}

	type pending struct {
		el    *etree.Element
		class *node.ClassNode
	}
	var todo []pending

	for _, classEl := range el.SelectElements(elemClass) {
		name := classEl.SelectAttrValue(attrName, "")
		id, err := node.ParseUUID(classEl.SelectAttrValue(attrUUID, ""))
		if err != nil || id.IsZero() {
			id = node.NewUUID()
			d.log.Warn("class has no valid uuid, assigning a new one", "class", name, "uuid", id)
		}
		if _, dup := d.classes[id]; dup {
			d.log.Warn("skipping class with duplicate uuid", "class", name, "uuid", id)
			d.skipped++
			continue
		}
		if target != nil {
			if live, err := target.GetClassByUUID(id); err == nil {
				d.classes[id] = live
				continue
			}
		}

		c := node.NewClassWithUUID(id, name)
		c.Comment = classEl.SelectAttrValue(attrComment, "")
		c.AddressFormula = classEl.SelectAttrValue(attrAddress, "")
		d.classes[id] = c
		todo = append(todo, pending{el: classEl, class: c})
	}

	out := make([]*node.ClassNode, 0, len(todo))
	for _, t := range todo {
		for _, n := range d.readChildren(t.el, t.class) {
			t.class.AddNode(n)
		}
		out = append(out, t.class)
	}
	return out
}

// readChildren decodes the node elements below el.
func (d *decoder) readChildren(el *etree.Element, parent node.Node) []node.Node {
	var out []node.Node
	for _, child := range el.ChildElements() {
		if n := d.readNode(child, parent); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (d *decoder) class(id node.UUID) (*node.ClassNode, bool) {
	c, ok := d.classes[id]
	return c, ok
}

func (d *decoder) skip(msg string, el *etree.Element) node.Node {
	d.log.Error(msg, "element", el.Tag, "type", el.SelectAttrValue(attrType, ""))
	d.log.Warn("skipped element", "xml", elementString(el))
	d.skipped++
	return nil
}

// readNode decodes a single node element, or returns nil if it has to be
// skipped.
func (d *decoder) readNode(el *etree.Element, parent node.Node) node.Node {
	if conv, ok := d.reg.ConverterForElement(el); ok {
		n, err := conv.CreateNode(el, convert.ReadContext{
			Parent:    parent,
			Log:       d.log,
			Class:     d.class,
			ReadChild: d.readNode,
		})
		if err != nil || n == nil {
			msg := "custom converter returned no node"
			if err != nil {
				msg = "custom converter failed: " + err.Error()
			}
			return d.skip(msg, el)
		}
		return n
	}

	if el.Tag != elemNode {
		return d.skip("unexpected element", el)
	}
	kind, ok := d.reg.KindOf(el.SelectAttrValue(attrType, ""))
	if !ok {
		return d.skip("skipping node with unknown type", el)
	}
	n, err := node.New(kind)
	if err != nil {
		return d.skip(err.Error(), el)
	}

	base := n.Base()
	base.Name = el.SelectAttrValue(attrName, "")
	base.Comment = el.SelectAttrValue(attrComment, "")
	base.IsHidden = boolAttr(el, attrHidden)

	switch v := n.(type) {
	case *node.ClassInstanceNode:
		c, ok := d.reference(el)
		if !ok {
			return d.skip("skipping class instance with unresolved reference", el)
		}
		v.ChangeInnerNode(c)
	case *node.VTableNode:
		for _, m := range el.SelectElements(elemMethod) {
			v.AddMethod(&node.MethodNode{
				Name:     m.SelectAttrValue(attrName, ""),
				Comment:  m.SelectAttrValue(attrComment, ""),
				IsHidden: boolAttr(m, attrHidden),
			})
		}
	case *node.ArrayNode:
		if count, ok := intAttr(el, attrCount); ok {
			v.SetCount(count)
		}
	case *node.TextNode:
		if length, ok := intAttr(el, attrLength); ok {
			v.SetLength(length)
		}
	case *node.BitFieldNode:
		if bits, ok := intAttr(el, attrBits); ok {
			if err := v.SetBits(bits); err != nil {
				d.log.Warn("keeping default bit count", "node", base.Name, "err", err)
			}
		}
	case *node.FunctionNode:
		v.Signature = el.SelectAttrValue(attrSignature, "")
		if c, ok := d.reference(el); ok {
			v.BelongsToClass = c
		}
	}

	if w, ok := n.(interface{ ChangeInnerNode(node.Node) }); ok {
		for _, child := range el.ChildElements() {
			if child.Tag == elemMethod {
				continue
			}
			if inner := d.readNode(child, n); inner != nil {
				w.ChangeInnerNode(inner)
				break
			}
		}
	}
	return n
}

// reference resolves the reference attribute of el against the classes of
// the document.
func (d *decoder) reference(el *etree.Element) (*node.ClassNode, bool) {
	id, err := node.ParseUUID(el.SelectAttrValue(attrReference, ""))
	if err != nil || id.IsZero() {
		return nil, false
	}
	return d.class(id)
}

func boolAttr(el *etree.Element, key string) bool {
	b, _ := strconv.ParseBool(el.SelectAttrValue(key, "false"))
	return b
}

func intAttr(el *etree.Element, key string) (int, bool) {
	attr := el.SelectAttr(key)
	if attr == nil {
		return 0, false
	}
	v, err := strconv.Atoi(attr.Value)
	if err != nil {
		return 0, false
	}
	return v, true
}

// elementString renders el as XML for diagnostics.
func elementString(el *etree.Element) string {
	doc := etree.NewDocument()
	doc.SetRoot(el.Copy())
	s, err := doc.WriteToString()
	if err != nil {
		return "<" + el.Tag + ">"
	}
	return s
}
