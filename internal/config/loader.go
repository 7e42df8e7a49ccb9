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

	"github.com/pluqqy/blueprint/pkg/blueprint"
)

const (
	EnvPrefix      = "BLUEPRINT_"
	DefaultOutput  = "text"
	DefaultIDs     = "uuid"
	DefaultLevel   = "info"
	configFileName = "blueprint.yaml"
)

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
)

// flagKeys maps command-line flags onto config keys. Flags not listed here are
// command arguments, not configuration.
var flagKeys = map[string]string{
	"output":    "output",
	"ids":       "ids",
	"no-color":  "no_color",
	"log-file":  "log_file",
	"log-level": "log_level",
	"snap":      "layout.snap_to_grid",
	"grid":      "layout.grid_size",
}

func defaults() map[string]interface{} {
	l := blueprint.DefaultLayout()
	return map[string]interface{}{
		"output":                       DefaultOutput,
		"ids":                          DefaultIDs,
		"no_color":                     false,
		"log_file":                     "",
		"log_level":                    DefaultLevel,
		"layout.start_x":               l.StartX,
		"layout.start_y":               l.StartY,
		"layout.section_header_height": l.SectionHeaderHeight,
		"layout.item_height":           l.ItemHeight,
		"layout.gap":                   l.Gap,
		"layout.section_gap":           l.SectionGap,
		"layout.item_indent":           l.ItemIndent,
		"layout.duplicate_offset":      l.DuplicateOffset,
		"layout.grid_size":             l.GridSize,
		"layout.snap_to_grid":          l.SnapToGrid,
		"canvas.cell_width":            10.0,
		"canvas.cell_height":           20.0,
		"canvas.show_grid":             false,
		"form.expand_all":              true,
		"form.wrap_width":              60,
		"markdown.title":               "Settings",
		"markdown.show_headings":       true,
		"markdown.show_defaults":       true,
	}
}

func unmarshalDefaults(cfg *Config) error {
	d := koanf.New(".")
	if err := d.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}
	return d.Unmarshal("", cfg)
}

// findConfigFile finds the config file to use.
// Priority: explicit path > blueprint.yaml in the working directory
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName
	}
	return ""
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
}

// Load reads configuration from defaults, file, environment variables and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment: BLUEPRINT_LOG_LEVEL -> log_level, BLUEPRINT_LAYOUT__GRID_SIZE -> layout.grid_size
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FileUsed returns the path to the config file that was loaded, if any
func FileUsed() string {
	return configFileUsed
}

// Validate checks values that have a fixed set of choices
func (c *Config) Validate() error {
	switch c.Output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format %q (must be text, json or yaml)", c.Output)
	}
	if _, err := blueprint.NewIDGenerator(c.IDs); err != nil {
		return err
	}
	if c.Layout.GridSize < 0 {
		return fmt.Errorf("layout.grid_size cannot be negative")
	}
	if c.Canvas.CellWidth <= 0 || c.Canvas.CellHeight <= 0 {
		return fmt.Errorf("canvas cell size must be positive")
	}
	return nil
}

// Editor builds a graph editor from the layout and id options
func (c *Config) Editor() (*blueprint.Editor, error) {
	ids, err := blueprint.NewIDGenerator(c.IDs)
	if err != nil {
		return nil, err
	}
	return blueprint.NewEditor(ids, c.ToLayout()), nil
}
