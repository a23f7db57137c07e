// Package node defines the building blocks of a class graph: the node
// variants that describe one field of a memory layout, the class definitions
// that group them, and the layout pass that turns them into offsets.
//
// # Overview
//
// A [ClassNode] is a named, addressable description of a memory region. Its
// ordered children are [Node] values; their order is the memory order. Every
// node embeds [BaseNode], which carries the display data (name, comment,
// hidden flag) and the offset computed by the last layout pass.
//
// # Variants
//
// Built-in variants form a closed set identified by [Kind]:
//
//   - [PrimitiveNode]: fixed-layout leaves (integers, floats, vectors,
//     matrices, text pointers) and the opaque hex placeholders
//   - [ClassInstanceNode]: embeds another class by reference
//   - [PointerNode]: owns the node it points to
//   - [ArrayNode]: owns the element node and repeats it Count times
//   - [VTableNode]: an ordered list of [MethodNode] entries
//   - [TextNode]: an inline text buffer of Length characters
//   - [BitFieldNode]: a bit field of Bits bits
//   - [FunctionNode]: a function with a signature and an optional owner
//
// Types defined outside this package become nodes by embedding [BaseNode]
// and implementing MemorySize. [KindOf] reports [KindUnknown] for them.
//
// # Wrappers and references
//
// A [Wrapper] holds exactly one inner node. Pointers and arrays own theirs;
// a class instance only refers to a class that lives elsewhere in the
// project. [ResolveMostInnerNode] follows a chain of wrappers down to the
// node at its end, and [ReferencedClasses] collects every class a class
// points at.
//
// # Change notification
//
// Structural edits made through the mutating methods (AddNode, SetCount,
// ChangeInnerNode, ...) raise the change hooks of the class that owns the
// edited node. Call [NotifyChanged] after editing exported fields directly.
// Hooks run synchronously on the calling goroutine.
//
// # Concurrency
//
// Nothing in this package is safe for concurrent use. A class graph is
// expected to be mutated and read from a single goroutine.
package node
