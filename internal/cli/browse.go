package cli

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/memlayout/pkg/errors"
	"github.com/matzehuels/memlayout/pkg/node"
	"github.com/matzehuels/memlayout/pkg/project"
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var className string

	cmd := &cobra.Command{
		Use:   "browse FILE",
		Short: "Pick a class interactively and print its layout",
		Long: `Browse opens an interactive list of the classes in FILE and prints the
field layout of the chosen class. With --class the list is skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.load(args[0])
			if err != nil {
				return err
			}
			if p.Len() == 0 {
				printWarning(cmd.OutOrStdout(), "%s has no classes", args[0])
				return nil
			}

			var chosen *node.ClassNode
			if className != "" {
				var ok bool
				if chosen, ok = p.FindClass(className); !ok {
					return errors.New(errors.ErrCodeNotFound, "no class named %q", className)
				}
			} else {
				final, err := tea.NewProgram(NewClassListModel(p.Classes()), tea.WithContext(cmd.Context())).Run()
				if err != nil {
					return fmt.Errorf("class picker: %w", err)
				}
				if chosen = final.(ClassListModel).Selected; chosen == nil {
					return nil
				}
			}
			writeLayout(cmd.OutOrStdout(), p, chosen)
			return nil
		},
	}

	cmd.Flags().StringVar(&className, "class", "", "class to print instead of picking one")
	_ = cmd.RegisterFlagCompletionFunc("class", c.completeClassNames)
	return cmd
}

// writeLayout prints the field table of c.
func writeLayout(w io.Writer, p *project.Project, c *node.ClassNode) {
	fmt.Fprintln(w, StyleTitle.Render(c.Name)+" "+StyleDim.Render(fmt.Sprintf("size 0x%X", c.Size())))
	if c.Comment != "" {
		printDetail(w, "%s", c.Comment)
	}
	if c.AddressFormula != "" {
		printKeyValue(w, "address", c.AddressFormula)
	}

	nodes := c.Nodes()
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Offset", "Type", "Name", "Size").
		Rows(layoutRows(c, node.NewLayout(p.PointerSize()))...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 {
				base = base.Foreground(colorCyan)
			}
			if row < len(nodes) && nodes[row].Base().IsHidden {
				return styleHidden.Padding(0, 1)
			}
			return base
		})
	fmt.Fprintln(w, t.Render())
}
