package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/blueprint/pkg/blueprint"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("output", "o", "text", "")
	flags.String("ids", "uuid", "")
	flags.String("log-level", "info", "")
	flags.Bool("snap", false, "")
	flags.Float64("grid", 10, "")
	flags.String("type", "button", "")
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Output)
	assert.Equal(t, "uuid", cfg.IDs)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, blueprint.DefaultLayout(), cfg.ToLayout())
	assert.True(t, cfg.Form.ExpandAll)
	assert.Equal(t, 60, cfg.Form.WrapWidth)
	assert.Equal(t, MarkdownConfig{Title: "Settings", ShowHeadings: true, ShowDefaults: true}, cfg.Markdown)
	assert.Empty(t, FileUsed())
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Precedence(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		env        map[string]string
		args       []string
		wantOutput string
		wantGrid   float64
		wantSnap   bool
	}{
		{
			name:       "file overrides defaults",
			file:       "output: json\nlayout:\n  grid_size: 25\n",
			wantOutput: "json",
			wantGrid:   25,
		},
		{
			name:       "env overrides file",
			file:       "output: json\n",
			env:        map[string]string{"BLUEPRINT_OUTPUT": "yaml", "BLUEPRINT_LAYOUT__GRID_SIZE": "40"},
			wantOutput: "yaml",
			wantGrid:   40,
		},
		{
			name:       "flags override env",
			env:        map[string]string{"BLUEPRINT_OUTPUT": "yaml"},
			args:       []string{"-o", "json", "--snap", "--grid", "15"},
			wantOutput: "json",
			wantGrid:   15,
			wantSnap:   true,
		},
		{
			name:       "unchanged flags do not override",
			file:       "output: yaml\n",
			args:       []string{"--type", "slider"},
			wantOutput: "yaml",
			wantGrid:   10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			dir := t.TempDir()
			chdir(t, dir)
			if tt.file != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "blueprint.yaml"), []byte(tt.file), 0644))
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			flags := testFlags()
			require.NoError(t, flags.Parse(tt.args))

			cfg, err := Load("", flags)
			require.NoError(t, err)

			assert.Equal(t, tt.wantOutput, cfg.Output)
			assert.Equal(t, tt.wantGrid, cfg.Layout.GridSize)
			assert.Equal(t, tt.wantSnap, cfg.Layout.SnapToGrid)
		})
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ids: counter\ncanvas:\n  cell_width: 5\n"), 0644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, FileUsed())
	assert.Equal(t, "counter", cfg.IDs)
	assert.Equal(t, 5.0, cfg.Canvas.CellWidth)

	editor, err := cfg.Editor()
	require.NoError(t, err)
	assert.Equal(t, cfg.ToLayout(), editor.Layout())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{"bad output", "output: xml\n"},
		{"bad ids", "ids: snowflake\n"},
		{"negative grid", "layout:\n  grid_size: -1\n"},
		{"zero cell", "canvas:\n  cell_height: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			dir := t.TempDir()
			chdir(t, dir)
			require.NoError(t, os.WriteFile(filepath.Join(dir, "blueprint.yaml"), []byte(tt.file), 0644))

			_, err := Load("", nil)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())

	_, err := Load("nope.yaml", nil)
	assert.ErrorContains(t, err, "error reading config file")
}
