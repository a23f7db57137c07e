package node

import "fmt"

// PrimitiveNode is a fixed-layout leaf such as an integer, a vector or an
// opaque hex placeholder.
type PrimitiveNode struct {
	BaseNode
	kind Kind
}

// NewPrimitive returns a primitive node of kind k. It panics if k is not a
// primitive kind.
func NewPrimitive(k Kind, name string) *PrimitiveNode {
	if !k.IsPrimitive() {
		panic(fmt.Sprintf("node: %s is not a primitive kind", k))
	}
	n := &PrimitiveNode{kind: k}
	n.Name = name
	return n
}

// Kind returns the primitive's kind.
func (n *PrimitiveNode) Kind() Kind { return n.kind }

// MemorySize returns the fixed size of the kind.
func (n *PrimitiveNode) MemorySize(ctx SizeContext) int {
	if size := kinds[n.kind].size; size != sizePointer {
		return size
	}
	return ctx.PointerSize()
}

// MethodNode is one entry of a virtual method table.
type MethodNode struct {
	Name     string
	Comment  string
	IsHidden bool
}

// VTableNode is a pointer to a virtual method table with ordered entries.
type VTableNode struct {
	BaseNode
	methods []*MethodNode
}

// Methods returns the table entries in order.
func (n *VTableNode) Methods() []*MethodNode { return append([]*MethodNode(nil), n.methods...) }

// AddMethod appends an entry.
func (n *VTableNode) AddMethod(m *MethodNode) {
	n.methods = append(n.methods, m)
	NotifyChanged(n)
}

// MemorySize is the platform pointer size.
func (n *VTableNode) MemorySize(ctx SizeContext) int { return ctx.PointerSize() }

// Encoding selects the character width of a [TextNode].
type Encoding int

const (
	UTF8 Encoding = iota
	UTF16
	UTF32
)

// CharSize returns the width of one character in bytes.
func (e Encoding) CharSize() int {
	switch e {
	case UTF16:
		return 2
	case UTF32:
		return 4
	default:
		return 1
	}
}

func (e Encoding) kind() Kind {
	switch e {
	case UTF16:
		return KindUtf16Text
	case UTF32:
		return KindUtf32Text
	default:
		return KindUtf8Text
	}
}

// TextNode is an inline text buffer of Length characters.
type TextNode struct {
	BaseNode
	Encoding Encoding
	length   int
}

// NewText returns a text buffer of length characters.
func NewText(enc Encoding, length int) *TextNode {
	return &TextNode{Encoding: enc, length: max(length, 0)}
}

// Length returns the buffer length in characters.
func (n *TextNode) Length() int { return n.length }

// SetLength changes the buffer length. Negative lengths become zero.
func (n *TextNode) SetLength(length int) {
	n.length = max(length, 0)
	NotifyChanged(n)
}

// MemorySize is Length times the character width.
func (n *TextNode) MemorySize(SizeContext) int { return n.length * n.Encoding.CharSize() }

// BitFieldNode is a bit field of 1 to 64 bits, backed by the smallest
// 8, 16, 32 or 64 bit integer that holds it.
type BitFieldNode struct {
	BaseNode
	bits int
}

// NewBitField returns a bit field of the given width.
func NewBitField(bits int) (*BitFieldNode, error) {
	n := &BitFieldNode{bits: 8}
	if err := n.setBits(bits); err != nil {
		return nil, err
	}
	return n, nil
}

// Bits returns the width in bits.
func (n *BitFieldNode) Bits() int { return n.bits }

// SetBits changes the width. Widths outside 1..64 are rejected.
func (n *BitFieldNode) SetBits(bits int) error {
	if err := n.setBits(bits); err != nil {
		return err
	}
	NotifyChanged(n)
	return nil
}

func (n *BitFieldNode) setBits(bits int) error {
	if bits < 1 || bits > 64 {
		return fmt.Errorf("invalid bit field width %d", bits)
	}
	n.bits = bits
	return nil
}

// MemorySize is the size of the backing integer.
func (n *BitFieldNode) MemorySize(SizeContext) int {
	switch {
	case n.bits <= 8:
		return 1
	case n.bits <= 16:
		return 2
	case n.bits <= 32:
		return 4
	}
	return 8
}

// FunctionNode describes a function. BelongsToClass is a weak reference to
// the class the function is a member of.
type FunctionNode struct {
	BaseNode
	Signature      string
	BelongsToClass *ClassNode
}

// MemorySize is the platform pointer size.
func (n *FunctionNode) MemorySize(ctx SizeContext) int { return ctx.PointerSize() }
