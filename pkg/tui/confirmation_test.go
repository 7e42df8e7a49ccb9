package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestConfirmation(t *testing.T) {
	tests := []struct {
		name          string
		key           string
		wantConfirmed bool
		wantCancelled bool
		wantActive    bool
	}{
		{"y confirms", "y", true, false, false},
		{"Y confirms", "Y", true, false, false},
		{"n cancels", "n", false, true, false},
		{"esc cancels", "esc", false, true, false},
		{"other keys are ignored", "x", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confirmed, cancelled := false, false
			m := NewConfirmation()
			m.ShowInline("Delete section_0?", true,
				func() tea.Cmd { confirmed = true; return nil },
				func() tea.Cmd { cancelled = true; return nil },
			)

			m.Update(key(tt.key))

			assert.Equal(t, tt.wantConfirmed, confirmed)
			assert.Equal(t, tt.wantCancelled, cancelled)
			assert.Equal(t, tt.wantActive, m.Active())
		})
	}
}

func TestConfirmation_Views(t *testing.T) {
	m := NewConfirmation()
	assert.Empty(t, m.View())

	m.ShowInline("Quit without saving?", true, nil, nil)
	assert.Contains(t, m.View(), "Quit without saving?")
	assert.Contains(t, m.View(), "[y/n]")

	m.ShowDialog("DELETE", "Delete General?", "Its 2 attached item(s) are deleted too",
		[]string{"Enabled (Toggle)", "Greeting (Text)"}, 50, nil, nil)
	view := m.View()
	assert.Contains(t, view, "DELETE")
	assert.Contains(t, view, "• Greeting (Text)")
	assert.Contains(t, view, "deleted too")

	m.Hide()
	assert.False(t, m.Active())
	assert.Nil(t, m.Update(key("y")))
}
