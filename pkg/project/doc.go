// Package project owns a set of class definitions and keeps them consistent.
//
// # Overview
//
// A [Project] is the arena for every [node.ClassNode] of a class graph. Classes
// refer to each other through wrapper nodes, possibly in cycles; the project
// is the only owner of the classes themselves. Besides classes it carries a
// flat list of enum definitions ([Enum]) and an ordered string map of opaque
// custom data ([CustomData]) that external consumers store with the project.
//
// # Referential integrity
//
// [Project.Remove] refuses to remove a class that another class still refers
// to and returns a [*ReferencedError] listing the referencing classes. No
// state changes when the removal is refused.
//
// # Layout
//
// The project registers a change hook on every class it holds. Any structural
// change anywhere recomputes the offsets of every class, since a class's size
// can depend on the size of the classes it embeds. This is O(classes × nodes)
// per edit, which is fine for interactively sized graphs.
//
// # Events
//
// Handlers registered with [Project.OnClassAdded] and [Project.OnClassRemoved]
// run synchronously before the triggering call returns. [Project.Clear] works
// on a snapshot, so handlers may inspect the project while it is emptied.
//
// # Known risk
//
// [Project.AddClass] does not reject a class whose UUID is already present.
// Lookups then return the first match in insertion order.
package project
