package node

import "slices"

// HookID identifies a change hook registered with [ClassNode.AddChangeHook].
type HookID int

type changeHook struct {
	id HookID
	fn func(*ClassNode)
}

// ClassNode is a class definition: an ordered list of nodes describing a
// memory region, addressed by AddressFormula.
//
// Classes are the vertices of the project graph. Other classes refer to them
// through [ClassInstanceNode] values; a ClassNode never owns another class.
type ClassNode struct {
	BaseNode

	UUID           UUID
	AddressFormula string

	nodes  []Node
	size   int
	hooks  []changeHook
	nextID HookID
}

// NewClass creates an empty class with a fresh UUID.
func NewClass(name string) *ClassNode {
	return NewClassWithUUID(NewUUID(), name)
}

// NewClassWithUUID creates an empty class with the given identity.
func NewClassWithUUID(id UUID, name string) *ClassNode {
	c := &ClassNode{UUID: id}
	c.Name = name
	return c
}

// MemorySize returns the class size as resolved by ctx.
func (c *ClassNode) MemorySize(ctx SizeContext) int { return ctx.ClassSize(c) }

// Size returns the size computed by the last layout pass.
func (c *ClassNode) Size() int { return c.size }

// Nodes returns a copy of the class's children in memory order.
func (c *ClassNode) Nodes() []Node { return slices.Clone(c.nodes) }

// Len returns the number of children.
func (c *ClassNode) Len() int { return len(c.nodes) }

// AddNode appends n and takes ownership of it.
func (c *ClassNode) AddNode(n Node) {
	if n == nil {
		return
	}
	adopt(c, n)
	c.nodes = append(c.nodes, n)
	c.changed()
}

// InsertNode inserts n before index i. An out-of-range i appends.
func (c *ClassNode) InsertNode(i int, n Node) {
	if n == nil {
		return
	}
	if i < 0 || i > len(c.nodes) {
		i = len(c.nodes)
	}
	adopt(c, n)
	c.nodes = slices.Insert(c.nodes, i, n)
	c.changed()
}

// RemoveNode removes n and releases ownership. It reports whether n was a
// child of c.
func (c *ClassNode) RemoveNode(n Node) bool {
	i := c.indexOf(n)
	if i < 0 {
		return false
	}
	c.nodes = slices.Delete(c.nodes, i, i+1)
	release(n)
	c.changed()
	return true
}

// ReplaceNode swaps old for n at the same position.
func (c *ClassNode) ReplaceNode(old, n Node) bool {
	i := c.indexOf(old)
	if i < 0 || n == nil {
		return false
	}
	release(old)
	adopt(c, n)
	c.nodes[i] = n
	c.changed()
	return true
}

// IsPlaceholder reports whether every child is an opaque hex node, i.e. the
// class body was never meaningfully authored. An empty class qualifies.
func (c *ClassNode) IsPlaceholder() bool {
	for _, n := range c.nodes {
		if !KindOf(n).IsHex() {
			return false
		}
	}
	return true
}

// UpdateOffsets assigns every child its offset and returns the class size.
func (c *ClassNode) UpdateOffsets(ctx SizeContext) int {
	offset := 0
	for _, n := range c.nodes {
		n.Base().offset = offset
		if w, ok := n.(Wrapper); ok && w.OwnsInner() {
			if inner := w.InnerNode(); inner != nil {
				inner.Base().offset = 0
			}
		}
		offset += n.MemorySize(ctx)
	}
	c.size = offset
	return offset
}

// AddChangeHook registers fn to run after every structural change to the
// class or any node it owns.
func (c *ClassNode) AddChangeHook(fn func(*ClassNode)) HookID {
	c.nextID++
	c.hooks = append(c.hooks, changeHook{id: c.nextID, fn: fn})
	return c.nextID
}

// RemoveChangeHook unregisters a hook. Unknown ids are ignored.
func (c *ClassNode) RemoveChangeHook(id HookID) {
	c.hooks = slices.DeleteFunc(c.hooks, func(h changeHook) bool { return h.id == id })
}

func (c *ClassNode) changed() {
	// hooks may unregister themselves while running
	for _, h := range slices.Clone(c.hooks) {
		h.fn(c)
	}
}

func (c *ClassNode) indexOf(n Node) int {
	if n == nil {
		return -1
	}
	return slices.IndexFunc(c.nodes, func(m Node) bool { return m.Base() == n.Base() })
}
