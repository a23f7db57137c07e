package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/memlayout/pkg/errors"
	"github.com/matzehuels/memlayout/pkg/node"
	"github.com/matzehuels/memlayout/pkg/rcnet"
)

// clipboardClassName names the class that receives merged nodes which are
// not class instances.
const clipboardClassName = "Clipboard"

// extractCommand creates the extract command.
func (c *CLI) extractCommand() *cobra.Command {
	var (
		output  string
		classes []string
	)

	cmd := &cobra.Command{
		Use:   "extract FILE --class NAME... -o OUT",
		Short: "Export classes and everything they reference into a new file",
		Long: `Extract writes the named classes together with every class they reach
into a self-contained file that merge can paste into another project.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.load(args[0])
			if err != nil {
				return err
			}
			defer p.Close()

			nodes := make([]node.Node, 0, len(classes))
			for _, name := range classes {
				cls, ok := p.FindClass(name)
				if !ok {
					return errors.New(errors.ErrCodeNotFound, "no class named %q", name)
				}
				nodes = append(nodes, cls)
			}

			out := c.outputPath(output, args[0], ".extract"+rcnet.FileExtension)
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := rcnet.WriteNodes(f, nodes, rcnet.Options{Logger: c.Logger, Platform: p.Platform()}); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printSuccess(w, "Extracted %d classes", len(nodes))
			printFile(w, out)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&classes, "class", nil, "class to extract (repeatable)")
	_ = cmd.RegisterFlagCompletionFunc("class", c.completeClassNames)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	_ = cmd.MarkFlagRequired("class")
	return cmd
}

// mergeCommand creates the merge command.
func (c *CLI) mergeCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "merge FILE EXTRACT",
		Short: "Paste an extracted file into a project",
		Long: `Merge adds the classes of EXTRACT that FILE does not have yet. Classes
both files share (same UUID) are kept as they are in FILE. Loose nodes are
collected in a class named ` + clipboardClassName + `.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.load(args[0])
			if err != nil {
				return err
			}
			defer p.Close()

			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[1], err)
			}
			defer f.Close()

			classes, nodes, err := rcnet.ReadNodes(f, p, rcnet.Options{Logger: c.Logger, Platform: p.Platform()})
			if err != nil {
				return err
			}
			for _, cls := range classes {
				p.AddClass(cls)
			}

			var loose *node.ClassNode
			for _, n := range nodes {
				if _, ok := n.(*node.ClassInstanceNode); ok {
					continue
				}
				if loose == nil {
					loose = node.NewClass(clipboardClassName)
				}
				loose.AddNode(n)
			}
			if loose != nil {
				p.AddClass(loose)
			}

			out := output
			if out == "" {
				out = args[0]
			}
			if err := c.save(out, p); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printSuccess(w, "Merged %d new classes", len(classes))
			if loose != nil {
				printDetail(w, "%d loose nodes in %s", loose.Len(), clipboardClassName)
			}
			printFile(w, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite FILE)")
	return cmd
}
