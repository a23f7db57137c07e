package node

// ClassInstanceNode embeds an instance of another class. The class is
// referenced, not owned: it stays a top-level class of the project and is
// serialized by its UUID.
type ClassInstanceNode struct {
	BaseNode
	class *ClassNode
}

// NewClassInstance returns an instance node referencing c.
func NewClassInstance(c *ClassNode) *ClassInstanceNode {
	return &ClassInstanceNode{class: c}
}

// Class returns the referenced class, or nil.
func (n *ClassInstanceNode) Class() *ClassNode { return n.class }

// InnerNode returns the referenced class as a [Node], or nil.
func (n *ClassInstanceNode) InnerNode() Node {
	if n.class == nil {
		return nil
	}
	return n.class
}

// OwnsInner is always false for class instances.
func (n *ClassInstanceNode) OwnsInner() bool { return false }

// ChangeInnerNode points the instance at c.
func (n *ClassInstanceNode) ChangeInnerNode(c *ClassNode) {
	n.class = c
	NotifyChanged(n)
}

// MemorySize is the size of the referenced class.
func (n *ClassInstanceNode) MemorySize(ctx SizeContext) int {
	if n.class == nil {
		return 0
	}
	return ctx.ClassSize(n.class)
}

// PointerNode is a pointer-sized field that owns the node it points to. A
// nil inner node describes an untyped pointer.
type PointerNode struct {
	BaseNode
	inner Node
}

// NewPointer returns a pointer owning inner.
func NewPointer(inner Node) *PointerNode {
	p := &PointerNode{}
	p.inner = inner
	adopt(p, inner)
	return p
}

// InnerNode returns the pointee, or nil.
func (n *PointerNode) InnerNode() Node { return n.inner }

// OwnsInner is always true for pointers.
func (n *PointerNode) OwnsInner() bool { return true }

// ChangeInnerNode replaces the pointee.
func (n *PointerNode) ChangeInnerNode(inner Node) {
	release(n.inner)
	n.inner = inner
	adopt(n, inner)
	NotifyChanged(n)
}

// MemorySize is the platform pointer size.
func (n *PointerNode) MemorySize(ctx SizeContext) int { return ctx.PointerSize() }

// ArrayNode repeats its element node Count times inline.
type ArrayNode struct {
	BaseNode
	inner Node
	count int
}

// NewArray returns an array of count elements shaped like element.
func NewArray(element Node, count int) *ArrayNode {
	a := &ArrayNode{count: max(count, 0)}
	a.inner = element
	adopt(a, element)
	return a
}

// Count returns the number of elements.
func (n *ArrayNode) Count() int { return n.count }

// SetCount changes the number of elements. Negative counts become zero.
func (n *ArrayNode) SetCount(count int) {
	n.count = max(count, 0)
	NotifyChanged(n)
}

// InnerNode returns the element node, or nil.
func (n *ArrayNode) InnerNode() Node { return n.inner }

// OwnsInner is always true for arrays.
func (n *ArrayNode) OwnsInner() bool { return true }

// ChangeInnerNode replaces the element node.
func (n *ArrayNode) ChangeInnerNode(inner Node) {
	release(n.inner)
	n.inner = inner
	adopt(n, inner)
	NotifyChanged(n)
}

// MemorySize is Count times the element size.
func (n *ArrayNode) MemorySize(ctx SizeContext) int {
	if n.inner == nil {
		return 0
	}
	return n.count * n.inner.MemorySize(ctx)
}
