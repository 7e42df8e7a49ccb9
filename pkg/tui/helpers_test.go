package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pluqqy/blueprint/pkg/blueprint"
	"github.com/pluqqy/blueprint/pkg/models"
)

var namedKeys = map[string]tea.KeyType{
	"enter":       tea.KeyEnter,
	"esc":         tea.KeyEscape,
	"tab":         tea.KeyTab,
	"up":          tea.KeyUp,
	"down":        tea.KeyDown,
	"left":        tea.KeyLeft,
	"right":       tea.KeyRight,
	"home":        tea.KeyHome,
	"end":         tea.KeyEnd,
	"shift+up":    tea.KeyShiftUp,
	"shift+down":  tea.KeyShiftDown,
	"shift+left":  tea.KeyShiftLeft,
	"shift+right": tea.KeyShiftRight,
	"ctrl+c":      tea.KeyCtrlC,
	"ctrl+s":      tea.KeyCtrlS,
	"ctrl+z":      tea.KeyCtrlZ,
	"ctrl+o":      tea.KeyCtrlO,
	"ctrl+u":      tea.KeyCtrlU,
	"backspace":   tea.KeyBackspace,
}

// key builds the KeyMsg bubbletea delivers for a key name or typed text
func key(s string) tea.KeyMsg {
	if t, ok := namedKeys[s]; ok {
		return tea.KeyMsg{Type: t}
	}
	if rest, ok := strings.CutPrefix(s, "alt+"); ok && len(rest) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(rest), Alt: true}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// statusOf runs a command expected to report a status line
func statusOf(cmd tea.Cmd) string {
	if cmd == nil {
		return ""
	}
	if s, ok := cmd().(StatusMsg); ok {
		return string(s)
	}
	return ""
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func exampleGraph() models.Graph {
	return blueprint.SchemaToGraph(models.ExampleSchema(), nil, blueprint.DefaultLayout())
}

func newTestCanvas(opts CanvasOptions) *CanvasModel {
	editor := blueprint.NewEditor(blueprint.NewCounterGenerator(), blueprint.DefaultLayout())
	m := NewCanvasModel(editor, exampleGraph(), opts)
	m.SetSize(140, 60)
	return m
}

// press feeds keys one by one and returns the command of the last
func press(m tea.Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}
