package convert

import (
	"io"
	"slices"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/memlayout/pkg/node"
)

// tagSuffix is appended to kind names to form type tags.
const tagSuffix = "Node"

// Logger receives diagnostics from lossy conversions. Implementations must
// not block.
type Logger interface {
	Error(msg any, keyvals ...any)
	Warn(msg any, keyvals ...any)
}

// Discard returns a Logger that drops everything.
func Discard() Logger { return log.New(io.Discard) }

// ElementWriter serializes a nested node with the full writer, custom
// converters included. It returns nil if the node was skipped.
type ElementWriter func(n node.Node) *etree.Element

// ElementReader deserializes a nested element with the full reader. It
// returns nil if the element was skipped.
type ElementReader func(el *etree.Element, parent node.Node) node.Node

// ReadContext is handed to [CustomConverter.CreateNode].
type ReadContext struct {
	Parent    node.Node                                  // owner of the node being read, may be nil
	Log       Logger                                     // never nil
	Class     func(id node.UUID) (*node.ClassNode, bool) // resolves class references of the document
	ReadChild ElementReader                              // reads nested node elements
}

// CustomConverter serializes node types the built-in table does not know.
type CustomConverter interface {
	// CanHandleNode reports whether the converter claims n.
	CanHandleNode(n node.Node) bool

	// CanHandleElement reports whether the converter claims el.
	CanHandleElement(el *etree.Element) bool

	// CreateElement serializes a claimed node. Returning nil drops the node.
	CreateElement(n node.Node, log Logger, writeChild ElementWriter) *etree.Element

	// CreateNode deserializes a claimed element.
	CreateNode(el *etree.Element, ctx ReadContext) (node.Node, error)
}

// Registry resolves the converter for a node or element.
//
// The zero value is not usable - use New. Registry is not safe for
// concurrent modification.
type Registry struct {
	custom []CustomConverter
	tags   map[node.Kind]string
	kinds  map[string]node.Kind
}

// New returns a registry holding the built-in table and no custom
// converters.
func New(custom ...CustomConverter) *Registry {
	r := &Registry{
		tags:  make(map[node.Kind]string),
		kinds: make(map[string]node.Kind),
	}
	for _, k := range node.Kinds() {
		tag := k.String() + tagSuffix
		r.tags[k] = tag
		r.kinds[tag] = k
	}
	for _, c := range custom {
		r.Register(c)
	}
	return r
}

// Register adds a custom converter. Converters registered earlier win when
// several claim the same node.
func (r *Registry) Register(c CustomConverter) {
	if c != nil {
		r.custom = append(r.custom, c)
	}
}

// Unregister removes a custom converter and reports whether it was present.
func (r *Registry) Unregister(c CustomConverter) bool {
	i := slices.Index(r.custom, c)
	if i < 0 {
		return false
	}
	r.custom = slices.Delete(r.custom, i, i+1)
	return true
}

// ConverterForNode returns the custom converter claiming n, if any.
func (r *Registry) ConverterForNode(n node.Node) (CustomConverter, bool) {
	for _, c := range r.custom {
		if c.CanHandleNode(n) {
			return c, true
		}
	}
	return nil, false
}

// ConverterForElement returns the custom converter claiming el, if any.
func (r *Registry) ConverterForElement(el *etree.Element) (CustomConverter, bool) {
	for _, c := range r.custom {
		if c.CanHandleElement(el) {
			return c, true
		}
	}
	return nil, false
}

// TagOf returns the built-in type tag of n.
func (r *Registry) TagOf(n node.Node) (string, bool) {
	tag, ok := r.tags[node.KindOf(n)]
	return tag, ok
}

// KindOf returns the built-in kind for a type tag.
func (r *Registry) KindOf(tag string) (node.Kind, bool) {
	k, ok := r.kinds[tag]
	return k, ok
}
