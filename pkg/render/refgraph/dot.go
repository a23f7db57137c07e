package refgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/memlayout/pkg/node"
	"github.com/matzehuels/memlayout/pkg/project"
)

// Options configures reference graph rendering.
type Options struct {
	// Detailed adds size, field count and address to class labels and
	// field names to edges. When false, only class names are shown.
	Detailed bool
}

// Edge is one reference between two classes.
type Edge struct {
	From, To *node.ClassNode
	Field    string // name of the referencing node, "[]" appended for arrays
	Pointer  bool   // reached through a pointer rather than embedded
}

// Edges lists the references of every class in p, in class and field order.
// Without fields, duplicate edges between the same pair of classes with the
// same style are collapsed.
func Edges(p *project.Project, withFields bool) []Edge {
	type key struct {
		from, to node.UUID
		pointer  bool
	}
	seen := make(map[key]struct{})

	var out []Edge
	for _, c := range p.Classes() {
		for _, n := range c.Nodes() {
			collect(n, n.Base().Name, false, func(to *node.ClassNode, field string, pointer bool) {
				if !withFields {
					k := key{c.UUID, to.UUID, pointer}
					if _, dup := seen[k]; dup {
						return
					}
					seen[k] = struct{}{}
					field = ""
				}
				out = append(out, Edge{From: c, To: to, Field: field, Pointer: pointer})
			})
		}
	}
	return out
}

// collect reports every class reached from n without passing through
// another class.
func collect(n node.Node, field string, viaPointer bool, emit func(*node.ClassNode, string, bool)) {
	switch v := n.(type) {
	case *node.ClassInstanceNode:
		if c := v.Class(); c != nil {
			emit(c, field, viaPointer)
		}
	case *node.PointerNode:
		if inner := v.InnerNode(); inner != nil {
			collect(inner, field, true, emit)
		}
	case *node.ArrayNode:
		if inner := v.InnerNode(); inner != nil {
			collect(inner, field+"[]", viaPointer, emit)
		}
	}
}

// ToDOT converts the class graph of p to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Placeholder classes (classes made only of hex nodes) are drawn with a grey
// fill.
func ToDOT(p *project.Project, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, c := range p.Classes() {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(c, opts.Detailed))}
		if c.IsPlaceholder() {
			attrs = append(attrs, "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", c.UUID.String(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range Edges(p, opts.Detailed) {
		var attrs []string
		if e.Pointer {
			attrs = append(attrs, "style=dashed")
		}
		if e.Field != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.Field))
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From.UUID.String(), e.To.UUID.String())
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From.UUID.String(), e.To.UUID.String(), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(c *node.ClassNode, detailed bool) string {
	if !detailed {
		return c.Name
	}
	parts := []string{
		c.Name,
		fmt.Sprintf("size: 0x%X", c.Size()),
		fmt.Sprintf("fields: %d", c.Len()),
	}
	if c.AddressFormula != "" {
		parts = append(parts, "address: "+c.AddressFormula)
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales from its
// viewBox instead of Graphviz's point-based width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
