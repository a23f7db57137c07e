package cli

import (
	"fmt"
	"io"
	"runtime"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/memlayout/pkg/node"
	"github.com/matzehuels/memlayout/pkg/project"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE...",
		Short: "Summarize the classes of one or more project files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := c.loadAll(cmd, args)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i, p := range projects {
				if i > 0 {
					fmt.Fprintln(w)
				}
				writeSummary(w, args[i], p)
			}
			return nil
		},
	}
}

// loadAll reads every file concurrently and returns the projects in
// argument order.
func (c *CLI) loadAll(cmd *cobra.Command, paths []string) ([]*project.Project, error) {
	spin := newSpinner(cmd.Context(), fmt.Sprintf("Loading %d file(s)...", len(paths)))
	spin.Start()
	defer spin.Stop()

	out := make([]*project.Project, len(paths))
	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			p, err := c.load(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// writeSummary prints the header and class table of one project.
func writeSummary(w io.Writer, path string, p *project.Project) {
	fmt.Fprintln(w, StyleTitle.Render(path))
	printKeyValue(w, "platform", p.Platform())
	printKeyValue(w, "classes", strconv.Itoa(p.Len()))
	printKeyValue(w, "enums", strconv.Itoa(len(p.Enums())))
	printKeyValue(w, "custom data", strconv.Itoa(p.CustomData().Len()))
	if p.Len() == 0 {
		return
	}
	fmt.Fprintln(w, classTable(p).Render())
}

// classTable renders one row per class: name, size, field count, number of
// referencing classes and address formula.
func classTable(p *project.Project) *table.Table {
	rows := make([][]string, 0, p.Len())
	for _, c := range p.Classes() {
		rows = append(rows, []string{
			c.Name,
			fmt.Sprintf("0x%X", c.Size()),
			strconv.Itoa(c.Len()),
			strconv.Itoa(len(p.ReferencingClasses(c))),
			c.AddressFormula,
		})
	}
	classes := p.Classes()
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Class", "Size", "Fields", "Used by", "Address").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 1 || col == 2 || col == 3 {
				base = base.Foreground(colorCyan)
			}
			if row < len(classes) && classes[row].IsPlaceholder() {
				return base.Foreground(colorDim)
			}
			return base
		})
}

// layoutRows describes the fields of c, one row per node: offset, kind,
// name and size.
func layoutRows(c *node.ClassNode, ctx node.SizeContext) [][]string {
	rows := make([][]string, 0, c.Len())
	for _, n := range c.Nodes() {
		rows = append(rows, []string{
			fmt.Sprintf("%04X", n.Base().Offset()),
			describeKind(n),
			n.Base().Name,
			strconv.Itoa(n.MemorySize(ctx)),
		})
	}
	return rows
}

// describeKind renders the kind of n with its wrapper chain, e.g.
// "Pointer<Player>" or "Array<Int32>[16]".
func describeKind(n node.Node) string {
	switch v := n.(type) {
	case *node.ClassInstanceNode:
		if c := v.Class(); c != nil {
			return c.Name
		}
		return "ClassInstance<?>"
	case *node.PointerNode:
		return "Pointer<" + describeInner(v.InnerNode()) + ">"
	case *node.ArrayNode:
		return fmt.Sprintf("Array<%s>[%d]", describeInner(v.InnerNode()), v.Count())
	case *node.TextNode:
		return fmt.Sprintf("%s[%d]", node.KindOf(n), v.Length())
	case *node.BitFieldNode:
		return fmt.Sprintf("BitField:%d", v.Bits())
	}
	if k := node.KindOf(n); k != node.KindUnknown {
		return k.String()
	}
	return fmt.Sprintf("%T", n)
}

func describeInner(n node.Node) string {
	if n == nil {
		return "void"
	}
	return describeKind(n)
}
