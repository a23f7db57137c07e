package node

// SizeContext supplies the data a node needs to report its size.
type SizeContext interface {
	PointerSize() int
	ClassSize(c *ClassNode) int
}

// Layout computes class sizes and child offsets for one pass over a set of
// classes. Sizes are memoized, so a class embedded many times is measured
// once. A class that embeds itself, directly or through other classes,
// contributes zero bytes at the point where the cycle closes.
type Layout struct {
	pointerSize int
	sizes       map[*ClassNode]int
	active      map[*ClassNode]bool
}

// NewLayout starts a layout pass for the given pointer size.
func NewLayout(pointerSize int) *Layout {
	return &Layout{
		pointerSize: pointerSize,
		sizes:       make(map[*ClassNode]int),
		active:      make(map[*ClassNode]bool),
	}
}

// PointerSize returns the pointer size of the pass.
func (l *Layout) PointerSize() int { return l.pointerSize }

// ClassSize returns the size of c, laying it out first if needed.
func (l *Layout) ClassSize(c *ClassNode) int {
	if size, ok := l.sizes[c]; ok {
		return size
	}
	if l.active[c] {
		return 0
	}
	l.active[c] = true
	size := c.UpdateOffsets(l)
	delete(l.active, c)
	l.sizes[c] = size
	return size
}

// Update lays out every class in classes.
func (l *Layout) Update(classes []*ClassNode) {
	for _, c := range classes {
		l.ClassSize(c)
	}
}
