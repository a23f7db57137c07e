// Package convert maps node variants to and from their serialized form.
//
// # Built-in variants
//
// Every built-in [node.Kind] has a stable type tag, written as the "type"
// attribute of a node element. Tags are the kind name with a "Node" suffix,
// e.g. "Int32Node" or "ClassInstanceNode". [Registry.TagOf] and
// [Registry.KindOf] translate in both directions.
//
// # Custom converters
//
// Node types defined outside this module are handled by a [CustomConverter]
// registered with [Registry.Register]. Custom converters are consulted
// before the built-in table: a converter that claims a node or element
// controls its serialization entirely.
//
// A node that neither a custom converter nor the built-in table recognises
// is unknown. Writers log it and leave it out rather than failing the whole
// document.
//
// # Logging
//
// [Logger] is the leveled logger the serializer reports through. A
// *log.Logger from github.com/charmbracelet/log satisfies it.
package convert
