package project

import (
	"iter"
	"slices"
)

// CustomData is an insertion-ordered string map stored with a project on
// behalf of external consumers. Values are preserved verbatim.
type CustomData struct {
	keys   []string
	values map[string]string
}

// NewCustomData returns an empty map.
func NewCustomData() *CustomData {
	return &CustomData{values: make(map[string]string)}
}

// Set stores value under key. Existing keys keep their position.
func (d *CustomData) Set(key, value string) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Get returns the value stored under key.
func (d *CustomData) Get(key string) (string, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Delete removes key and reports whether it was present.
func (d *CustomData) Delete(key string) bool {
	if _, ok := d.values[key]; !ok {
		return false
	}
	delete(d.values, key)
	d.keys = slices.DeleteFunc(d.keys, func(k string) bool { return k == key })
	return true
}

// Keys returns the keys in insertion order.
func (d *CustomData) Keys() []string { return slices.Clone(d.keys) }

// Len returns the number of entries.
func (d *CustomData) Len() int { return len(d.keys) }

// All iterates over the entries in insertion order.
func (d *CustomData) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range d.keys {
			if !yield(k, d.values[k]) {
				return
			}
		}
	}
}

// Clear removes every entry.
func (d *CustomData) Clear() {
	d.keys = nil
	clear(d.values)
}
