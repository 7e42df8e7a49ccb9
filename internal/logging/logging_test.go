package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"DEBUG", zerolog.DebugLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{"off", zerolog.Disabled, false},
		{"verbose", zerolog.NoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.WarnLevel)

	logger.Info().Msg("hidden")
	logger.Warn().Str("node", "section_0").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "node=section_0")
}

func TestSetup_WritesToFile(t *testing.T) {
	prev := zlog.Logger
	t.Cleanup(func() { zlog.Logger = prev })

	path := filepath.Join(t.TempDir(), "logs", "blueprint.log")
	closer, err := Setup(path, "debug")
	require.NoError(t, err)

	zlog.Debug().Msg("graph loaded")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "graph loaded")
}

func TestSetup_EmptyPathDiscards(t *testing.T) {
	prev := zlog.Logger
	t.Cleanup(func() { zlog.Logger = prev })

	closer, err := Setup("", "info")
	require.NoError(t, err)
	assert.NoError(t, closer.Close())

	_, err = Setup("", "loud")
	assert.Error(t, err)
}
