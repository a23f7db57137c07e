package project

import (
	"fmt"
	"slices"
)

// EnumItem is one named value of an [Enum].
type EnumItem struct {
	Name  string
	Value int64
}

// Enum describes an enumeration that node editors can use to label integer
// values. Enums are independent of classes.
type Enum struct {
	Name         string
	UseFlagsMode bool // values combine as bit flags

	size  int
	items []EnumItem
}

// NewEnum returns an empty four byte enum.
func NewEnum(name string) *Enum {
	return &Enum{Name: name, size: 4}
}

// Size returns the width of the underlying integer in bytes.
func (e *Enum) Size() int { return e.size }

// SetSize changes the underlying integer width. Only 1, 2, 4 and 8 are valid.
func (e *Enum) SetSize(size int) error {
	switch size {
	case 1, 2, 4, 8:
		e.size = size
		return nil
	}
	return fmt.Errorf("invalid enum size %d", size)
}

// Items returns the values in order.
func (e *Enum) Items() []EnumItem { return slices.Clone(e.items) }

// AddItem appends a value.
func (e *Enum) AddItem(name string, value int64) {
	e.items = append(e.items, EnumItem{Name: name, Value: value})
}
