// Package config loads memlayout CLI settings.
//
// Settings are layered, later sources overriding earlier ones: built-in
// defaults, a memlayout.yaml file, MEMLAYOUT_* environment variables and
// finally flags set on the command line. Nested keys use a double
// underscore in the environment, e.g. MEMLAYOUT_GRAPH__DETAILED=true.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/matzehuels/memlayout/pkg/errors"
	"github.com/matzehuels/memlayout/pkg/project"
)

// FileName is the config file looked up in the working directory.
const FileName = "memlayout.yaml"

const envPrefix = "MEMLAYOUT_"

// Config holds all CLI settings.
type Config struct {
	Platform  string      `koanf:"platform"`
	Verbose   bool        `koanf:"verbose"`
	OutputDir string      `koanf:"output_dir"`
	Graph     GraphConfig `koanf:"graph"`

	// File is the config file that was read, empty if none.
	File string `koanf:"-"`
}

// GraphConfig configures the graph command.
type GraphConfig struct {
	Detailed bool `koanf:"detailed"`
}

// flagKeys maps flag names whose config key is not the snake_case form of
// the flag.
var flagKeys = map[string]string{
	"detailed": "graph.detailed",
}

// Load reads the configuration. cfgFile names an explicit config file; when
// empty, FileName is used if it exists. Only flags the user changed
// override lower layers.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"platform":       project.DefaultPlatform,
		"verbose":        false,
		"output_dir":     ".",
		"graph.detailed": false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if cfgFile == "" {
		if _, err := os.Stat(FileName); err == nil {
			cfgFile = FileName
		}
	} else if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", cfgFile)
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = cfgFile
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be expressed by types alone.
func (c *Config) Validate() error {
	switch c.Platform {
	case project.PlatformX86, project.PlatformX64:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown platform %q (want %s or %s)",
			c.Platform, project.PlatformX86, project.PlatformX64)
	}
	return nil
}
