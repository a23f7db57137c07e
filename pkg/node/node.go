package node

import "fmt"

// Node is one field of a class definition.
//
// Implementations must embed [BaseNode]; MemorySize reports the number of
// bytes the node occupies and may consult ctx for the pointer size or the
// size of a referenced class.
type Node interface {
	Base() *BaseNode
	MemorySize(ctx SizeContext) int
}

// Wrapper is a node whose value is exactly one other node.
//
// OwnsInner distinguishes ownership (pointers, arrays) from a reference to a
// class that lives elsewhere (class instances).
type Wrapper interface {
	Node
	InnerNode() Node
	OwnsInner() bool
}

// BaseNode carries the identity shared by every variant.
//
// The zero value is ready to use.
type BaseNode struct {
	Name     string
	Comment  string
	IsHidden bool

	offset int
	parent Node
}

// Base returns b itself; embedding types inherit it to satisfy [Node].
func (b *BaseNode) Base() *BaseNode { return b }

// Offset returns the byte offset assigned by the last layout pass, relative
// to the start of the owning class or wrapper.
func (b *BaseNode) Offset() int { return b.offset }

// Parent returns the class or wrapper that owns the node, or nil.
func (b *BaseNode) Parent() Node { return b.parent }

// NotifyChanged raises the change hooks of the class that ultimately owns n.
// It is a no-op for detached nodes.
func NotifyChanged(n Node) {
	for cur := n; cur != nil; cur = cur.Base().parent {
		if c, ok := cur.(*ClassNode); ok {
			c.changed()
			return
		}
	}
}

func adopt(parent, child Node) {
	if child != nil {
		child.Base().parent = parent
	}
}

func release(child Node) {
	if child != nil && child.Base() != nil {
		child.Base().parent = nil
	}
}

// New creates an empty node of a built-in kind with the defaults an editor
// would start from: arrays repeat once, text buffers hold one character and
// bit fields span eight bits.
func New(k Kind) (Node, error) {
	if k.IsPrimitive() {
		return &PrimitiveNode{kind: k}, nil
	}
	switch k {
	case KindClassInstance:
		return &ClassInstanceNode{}, nil
	case KindPointer:
		return &PointerNode{}, nil
	case KindArray:
		return &ArrayNode{count: 1}, nil
	case KindVTable:
		return &VTableNode{}, nil
	case KindUtf8Text:
		return NewText(UTF8, 1), nil
	case KindUtf16Text:
		return NewText(UTF16, 1), nil
	case KindUtf32Text:
		return NewText(UTF32, 1), nil
	case KindBitField:
		return &BitFieldNode{bits: 8}, nil
	case KindFunction:
		return &FunctionNode{}, nil
	}
	return nil, fmt.Errorf("cannot create node of kind %s", k)
}
