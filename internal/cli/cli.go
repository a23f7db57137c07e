// Package cli implements the memlayout command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/memlayout/internal/config"
	"github.com/matzehuels/memlayout/pkg/buildinfo"
	"github.com/matzehuels/memlayout/pkg/project"
	"github.com/matzehuels/memlayout/pkg/rcnet"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: &config.Config{Platform: project.DefaultPlatform, OutputDir: "."},
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
//
// Configuration is loaded before any subcommand runs; see [config.Load] for
// the precedence of its sources.
func (c *CLI) RootCommand() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:          "memlayout",
		Short:        "memlayout edits reverse-engineered class layouts",
		Long:         `memlayout inspects, builds and transforms project files describing the memory layout of classes recovered from running programs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			c.Config = cfg
			if cfg.Verbose {
				c.SetLogLevel(LogDebug)
			}
			if cfg.File != "" {
				c.Logger.Debug("loaded config", "file", cfg.File)
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./"+config.FileName+")")
	flags.BoolP("verbose", "v", false, "enable verbose logging")
	flags.String("platform", "", "expected platform of loaded files and platform of new ones (x86, x64)")
	flags.String("output-dir", "", "directory for outputs written without -o")

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.compileCommand())
	root.AddCommand(c.pruneCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.extractCommand())
	root.AddCommand(c.mergeCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// File Helpers
// =============================================================================

// rcnetOptions returns the container options for the current configuration.
func (c *CLI) rcnetOptions() rcnet.Options {
	return rcnet.Options{Logger: c.Logger, Platform: c.Config.Platform}
}

// load reads a project file and logs how long it took.
func (c *CLI) load(path string) (*project.Project, error) {
	prog := newProgress(c.Logger)
	p, err := rcnet.Load(path, c.rcnetOptions())
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Loaded %s: %d classes", path, p.Len()))
	return p, nil
}

// save writes p to path, creating parent directories as needed.
func (c *CLI) save(path string, p *project.Project) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	return rcnet.Save(path, p, c.rcnetOptions())
}

// outputPath returns explicit if set, otherwise input's base name with ext
// inside the configured output directory.
func (c *CLI) outputPath(explicit, input, ext string) string {
	if explicit != "" {
		return explicit
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(c.Config.OutputDir, base+ext)
}
