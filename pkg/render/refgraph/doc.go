// Package refgraph renders the class reference graph of a project.
//
// Classes become boxes; a class that embeds another class (directly or as
// an array element) gets a solid arrow to it, and a class that points to
// another class gets a dashed arrow. Cycles, which are legal through
// pointers, show up as ordinary back edges.
//
// # Usage
//
//	dot := refgraph.ToDOT(p, refgraph.Options{Detailed: true})
//	svg, err := refgraph.RenderSVG(ctx, dot)
//
// The DOT source can also be saved and fed to external Graphviz tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package refgraph
