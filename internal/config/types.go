// Package config loads blueprint's layered configuration: built-in defaults, an
// optional blueprint.yaml, BLUEPRINT_* environment variables and command-line flags.
package config

import (
	"github.com/pluqqy/blueprint/pkg/blueprint"
)

// Config holds all configuration options
type Config struct {
	Output   string         `koanf:"output"`
	IDs      string         `koanf:"ids"`
	NoColor  bool           `koanf:"no_color"`
	LogFile  string         `koanf:"log_file"`
	LogLevel string         `koanf:"log_level"`
	Layout   LayoutConfig   `koanf:"layout"`
	Canvas   CanvasConfig   `koanf:"canvas"`
	Form     FormConfig     `koanf:"form"`
	Markdown MarkdownConfig `koanf:"markdown"`
}

// LayoutConfig mirrors blueprint.Layout so every placement constant can be tuned
type LayoutConfig struct {
	StartX              float64 `koanf:"start_x"`
	StartY              float64 `koanf:"start_y"`
	SectionHeaderHeight float64 `koanf:"section_header_height"`
	ItemHeight          float64 `koanf:"item_height"`
	Gap                 float64 `koanf:"gap"`
	SectionGap          float64 `koanf:"section_gap"`
	ItemIndent          float64 `koanf:"item_indent"`
	DuplicateOffset     float64 `koanf:"duplicate_offset"`
	GridSize            float64 `koanf:"grid_size"`
	SnapToGrid          bool    `koanf:"snap_to_grid"`
}

// CanvasConfig controls how graph coordinates map onto terminal cells
type CanvasConfig struct {
	CellWidth  float64 `koanf:"cell_width"`
	CellHeight float64 `koanf:"cell_height"`
	ShowGrid   bool    `koanf:"show_grid"`
}

// FormConfig controls the settings form
type FormConfig struct {
	ExpandAll bool `koanf:"expand_all"`
	WrapWidth int  `koanf:"wrap_width"`
}

// MarkdownConfig controls the documentation written by export --markdown
type MarkdownConfig struct {
	Title        string `koanf:"title"`
	ShowHeadings bool   `koanf:"show_headings"`
	ShowDefaults bool   `koanf:"show_defaults"`
}

// ToLayout converts the layout options into the editor's layout
func (c *Config) ToLayout() blueprint.Layout {
	return blueprint.Layout{
		StartX:              c.Layout.StartX,
		StartY:              c.Layout.StartY,
		SectionHeaderHeight: c.Layout.SectionHeaderHeight,
		ItemHeight:          c.Layout.ItemHeight,
		Gap:                 c.Layout.Gap,
		SectionGap:          c.Layout.SectionGap,
		ItemIndent:          c.Layout.ItemIndent,
		DuplicateOffset:     c.Layout.DuplicateOffset,
		GridSize:            c.Layout.GridSize,
		SnapToGrid:          c.Layout.SnapToGrid,
	}
}

// Default returns the configuration used when nothing else is set
func Default() *Config {
	cfg := &Config{}
	if err := unmarshalDefaults(cfg); err != nil {
		panic(err)
	}
	return cfg
}
