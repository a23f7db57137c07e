package cli

import (
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/memlayout/pkg/errors"
	"github.com/matzehuels/memlayout/pkg/project"
)

// pruneCommand creates the prune command.
func (c *CLI) pruneCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "prune FILE",
		Short: "Remove unreferenced placeholder classes",
		Long: `Prune removes every class that no other class references and whose body
holds only hex placeholder nodes, then writes the result back to FILE or to
--output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.load(args[0])
			if err != nil {
				return err
			}
			defer p.Close()

			w := cmd.OutOrStdout()
			removed := p.RemoveUnusedClasses()
			if len(removed) == 0 {
				printInfo(w, "No unused classes")
				return nil
			}

			out := output
			if out == "" {
				out = args[0]
			}
			if err := c.save(out, p); err != nil {
				return err
			}
			printSuccess(w, "Removed %d unused classes", len(removed))
			for _, cls := range removed {
				printDetail(w, "%s", cls.Name)
			}
			printFile(w, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite FILE)")
	return cmd
}

// removeCommand creates the remove command.
func (c *CLI) removeCommand() *cobra.Command {
	var (
		output    string
		className string
	)

	cmd := &cobra.Command{
		Use:   "remove FILE --class NAME",
		Short: "Remove one class if nothing references it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.load(args[0])
			if err != nil {
				return err
			}
			defer p.Close()

			cls, ok := p.FindClass(className)
			if !ok {
				return errors.New(errors.ErrCodeNotFound, "no class named %q", className)
			}

			w := cmd.OutOrStdout()
			if err := p.Remove(cls); err != nil {
				var refErr *project.ReferencedError
				if stderrors.As(err, &refErr) {
					printError(w, "%s is still used by:", cls.Name)
					for _, by := range refErr.ReferencedBy {
						printDetail(w, "%s", by.Name)
					}
				}
				return err
			}

			out := output
			if out == "" {
				out = args[0]
			}
			if err := c.save(out, p); err != nil {
				return err
			}
			printSuccess(w, "Removed %s", cls.Name)
			printFile(w, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&className, "class", "", "name of the class to remove")
	_ = cmd.RegisterFlagCompletionFunc("class", c.completeClassNames)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite FILE)")
	_ = cmd.MarkFlagRequired("class")
	return cmd
}
