package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/memlayout/pkg/render/refgraph"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "graph FILE",
		Short: "Draw the class reference graph as DOT or SVG",
		Long: `Graph writes the class reference graph of FILE. The output format follows
the extension of --output: .dot for Graphviz source, .svg for a rendered
drawing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.load(args[0])
			if err != nil {
				return err
			}
			defer p.Close()

			out := c.outputPath(output, args[0], ".svg")
			dot := refgraph.ToDOT(p, refgraph.Options{Detailed: c.Config.Graph.Detailed})

			var data []byte
			switch ext := strings.ToLower(filepath.Ext(out)); ext {
			case ".dot", ".gv":
				data = []byte(dot)
			case ".svg":
				prog := newProgress(c.Logger)
				if data, err = refgraph.RenderSVG(cmd.Context(), dot); err != nil {
					return err
				}
				prog.done("Rendered SVG")
			default:
				return fmt.Errorf("unsupported graph format %q (want .dot or .svg)", ext)
			}

			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			printSuccess(cmd.OutOrStdout(), "Wrote class graph")
			printFile(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, .dot or .svg (default <output-dir>/<name>.svg)")
	cmd.Flags().Bool("detailed", false, "include sizes, addresses and field names")
	return cmd
}
