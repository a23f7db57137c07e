// Package pkg provides the libraries behind memlayout, an editor model for
// reverse-engineered class layouts.
//
// # Overview
//
// A project is a set of user-authored classes. Each class is an ordered list
// of typed nodes (integers, vectors, pointers, embedded class instances,
// arrays, text buffers, virtual tables) whose offsets and sizes are derived
// from the node types and the target platform's pointer size. Projects are
// stored in a versioned, compressed container file.
//
// # Architecture
//
// The typical data flow:
//
//	TOML definition or container file
//	         ↓
//	    [definition] / [rcnet] (decode)
//	         ↓
//	    [project] (classes, enums, custom data, layout)
//	         ↓
//	    [rcnet] (encode) / [render/refgraph] (DOT, SVG)
//
// # Quick Start
//
// Build a project in code and save it:
//
//	p := project.New(project.WithPlatform(project.PlatformX64))
//
//	vec := node.NewClass("Vec3")
//	vec.AddNode(node.NewPrimitive(node.KindVector3, "xyz"))
//	p.AddClass(vec)
//
//	player := node.NewClass("Player")
//	player.AddNode(node.NewPrimitive(node.KindInt32, "health"))
//	player.AddNode(node.NewClassInstance(vec))
//	p.AddClass(player)
//
//	err := rcnet.Save("game.mlp", p, rcnet.Options{Logger: logger})
//
// # Main Packages
//
// [node] - Node variants, class nodes, UUIDs, layout sizing and reference
// resolution.
//
// [project] - The class arena with referential integrity, enums, custom data
// and change events.
//
// [convert] - Mapping between node types and document type tags, including
// the seam for plugin node types.
//
// [rcnet] - The container file format, plus ad-hoc export of node selections
// for clipboards.
//
// [definition] - Hand-written TOML project definitions.
//
// [render/refgraph] - Class reference graphs via Graphviz.
//
// [errors] - Coded errors shared by all packages.
//
// [observability] - Hooks for metrics and tracing.
//
// [node]: https://pkg.go.dev/github.com/matzehuels/memlayout/pkg/node
// [project]: https://pkg.go.dev/github.com/matzehuels/memlayout/pkg/project
// [convert]: https://pkg.go.dev/github.com/matzehuels/memlayout/pkg/convert
// [rcnet]: https://pkg.go.dev/github.com/matzehuels/memlayout/pkg/rcnet
// [definition]: https://pkg.go.dev/github.com/matzehuels/memlayout/pkg/definition
// [render/refgraph]: https://pkg.go.dev/github.com/matzehuels/memlayout/pkg/render/refgraph
// [errors]: https://pkg.go.dev/github.com/matzehuels/memlayout/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/memlayout/pkg/observability
package pkg
