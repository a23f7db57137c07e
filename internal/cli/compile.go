package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/memlayout/pkg/definition"
	"github.com/matzehuels/memlayout/pkg/rcnet"
)

// compileCommand creates the compile command.
func (c *CLI) compileCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "compile DEFINITION.toml",
		Short: "Build a project file from a TOML definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := definition.ParseFile(args[0])
			if err != nil {
				return err
			}
			p, err := definition.Build(def)
			if err != nil {
				return err
			}
			defer p.Close()

			if cmd.Flags().Changed("platform") && p.Platform() != c.Config.Platform {
				c.Logger.Warn("definition platform differs from --platform", "definition", p.Platform(), "flag", c.Config.Platform)
			}

			out := c.outputPath(output, args[0], rcnet.FileExtension)
			if err := c.save(out, p); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printSuccess(w, "Compiled %d classes", p.Len())
			printFile(w, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <output-dir>/<name>"+rcnet.FileExtension+")")
	return cmd
}
