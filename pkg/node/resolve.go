package node

// ResolveMostInnerNode follows the inner-node chain of w until it reaches a
// node that is not a wrapper or a class reached through a class instance.
// It returns nil when the chain ends early or loops back on itself.
func ResolveMostInnerNode(w Wrapper) Node {
	seen := make(map[*BaseNode]struct{})
	var cur Wrapper = w
	for {
		if _, ok := seen[cur.Base()]; ok {
			return nil
		}
		seen[cur.Base()] = struct{}{}

		inner := cur.InnerNode()
		if inner == nil {
			return nil
		}
		if c, ok := inner.(*ClassNode); ok {
			return c
		}
		next, ok := inner.(Wrapper)
		if !ok {
			return inner
		}
		cur = next
	}
}

// ResolveClass returns the class at the end of w's chain, or nil.
func ResolveClass(w Wrapper) *ClassNode {
	c, _ := ResolveMostInnerNode(w).(*ClassNode)
	return c
}

// Walk calls fn for n and, depth first, for every node n owns. Referenced
// classes are not entered. Returning false from fn skips the node's subtree.
func Walk(n Node, fn func(Node) bool) {
	walk(n, fn, make(map[*BaseNode]struct{}))
}

func walk(n Node, fn func(Node) bool, seen map[*BaseNode]struct{}) {
	if n == nil {
		return
	}
	if _, ok := seen[n.Base()]; ok {
		return
	}
	seen[n.Base()] = struct{}{}
	if !fn(n) {
		return
	}
	switch v := n.(type) {
	case *ClassNode:
		for _, child := range v.nodes {
			walk(child, fn, seen)
		}
	case Wrapper:
		if v.OwnsInner() {
			walk(v.InnerNode(), fn, seen)
		}
	}
}

// ReferencedClasses returns every distinct class reachable from one of c's
// wrapper nodes, in first-seen order. A class referencing itself is
// included.
func ReferencedClasses(c *ClassNode) []*ClassNode { return ReferencedBy(c) }

// ReferencedBy is [ReferencedClasses] for an arbitrary node: n itself and
// every node it owns are inspected. A class passed as n is not part of the
// result unless one of its wrappers points back to it.
func ReferencedBy(root Node) []*ClassNode {
	var out []*ClassNode
	seen := make(map[UUID]struct{})
	Walk(root, func(n Node) bool {
		w, ok := n.(Wrapper)
		if !ok {
			return true
		}
		if ref := ResolveClass(w); ref != nil {
			if _, dup := seen[ref.UUID]; !dup {
				seen[ref.UUID] = struct{}{}
				out = append(out, ref)
			}
		}
		return true
	})
	return out
}
