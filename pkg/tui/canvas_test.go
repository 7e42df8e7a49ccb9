package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/blueprint/pkg/blueprint"
	"github.com/pluqqy/blueprint/pkg/models"
)

func TestCanvas_InitialState(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})

	assert.Equal(t, "section_0", m.Selected())
	assert.False(t, m.Dirty())
	assert.Equal(t, models.Position{X: 50, Y: 40}, m.cursor)
	assert.Equal(t, "section_0", m.nodeAtCursor())
}

func TestCanvas_Outline(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})
	m.graph, _ = m.editor.Detach(m.graph, "enabled")

	var ids []string
	for _, e := range m.outline() {
		ids = append(ids, e.id)
	}
	assert.Equal(t, []string{
		"section_0", "greeting",
		"section_1", "accent", "opacity", "theme", "wallpaper",
		"enabled",
	}, ids)
}

func TestCanvas_OutlineNavigationMovesCursor(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})

	press(m, "down")
	assert.Equal(t, "enabled", m.Selected())
	assert.Equal(t, models.Position{X: 90, Y: 120}, m.cursor)

	press(m, "up", "up")
	assert.Equal(t, "section_0", m.Selected())
}

func TestCanvas_GridNavigationSelectsNodeUnderCursor(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})
	press(m, "tab")
	require.Equal(t, gridPane, m.pane)

	// enabled sits at 90,130: four cells right and four rows down
	press(m, "right", "right", "right", "right", "down", "down", "down", "down")
	assert.Equal(t, "enabled", m.Selected())

	// Moving onto empty canvas keeps the selection
	press(m, "down")
	assert.Equal(t, "enabled", m.Selected())
	assert.Empty(t, m.nodeAtCursor())
}

func TestCanvas_AddSection(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})

	status := statusOf(press(m, "a"))

	assert.Equal(t, "Added section_2", status)
	assert.Equal(t, "section_2", m.Selected())
	assert.True(t, m.Dirty())
	section, ok := m.Graph().Section("section_2")
	require.True(t, ok)
	assert.Equal(t, models.Position{X: 50, Y: 40}, section.Position)
}

func TestCanvas_AddItemThroughMenu(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		wantType models.ItemType
	}{
		{"number key", []string{"3"}, models.ItemTypeSlider},
		{"arrows and enter", []string{"down", "down", "down", "down", "enter"}, models.ItemTypeColorPicker},
		{"first entry", []string{"enter"}, models.ItemTypeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestCanvas(CanvasOptions{})

			press(m, "i")
			require.Equal(t, modeMenu, m.mode)
			press(m, tt.keys...)

			assert.Equal(t, modeNormal, m.mode)
			node, ok := m.Graph().ItemNode("item_1")
			require.True(t, ok)
			assert.Equal(t, "section_0", node.SectionID)
			assert.Equal(t, tt.wantType, node.Item.Type())
			// Stacked below greeting
			assert.Equal(t, models.Position{X: 90, Y: 330}, node.Position)
			assert.Equal(t, "item_1", m.Selected())
		})
	}
}

func TestCanvas_AddItemFromItemUsesItsSection(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})
	m.selected = "accent"

	press(m, "i", "2")

	node, ok := m.Graph().ItemNode("item_1")
	require.True(t, ok)
	assert.Equal(t, "section_1", node.SectionID)
}

func TestCanvas_MenuCancel(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})
	before := len(m.Graph().Nodes)

	status := statusOf(press(m, "i", "esc"))

	assert.Equal(t, "Cancelled", status)
	assert.Len(t, m.Graph().Nodes, before)
	assert.False(t, m.Dirty())
}

func TestCanvas_DetachAndConnect(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})
	m.selected = "enabled"

	assert.Equal(t, "Detached enabled", statusOf(press(m, "d")))
	node, _ := m.Graph().ItemNode("enabled")
	assert.Empty(t, node.SectionID)

	assert.Contains(t, statusOf(press(m, "d")), "already detached")

	press(m, "c")
	require.Equal(t, modeConnecting, m.mode)
	assert.Equal(t, "enabled", m.connectFrom)

	// Pick the target in the outline
	m.selected = "section_1"
	status := statusOf(press(m, "enter"))

	assert.Equal(t, "Attached enabled to section_1", status)
	assert.Equal(t, modeNormal, m.mode)
	node, _ = m.Graph().ItemNode("enabled")
	assert.Equal(t, "section_1", node.SectionID)
}

func TestCanvas_ConnectFromSectionToItem(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})
	m.selected = "section_1"

	press(m, "c")
	m.selected = "greeting"
	press(m, "enter")

	node, _ := m.Graph().ItemNode("greeting")
	assert.Equal(t, "section_1", node.SectionID)
}

func TestCanvas_ConnectRejectsItemToItem(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})
	m.selected = "enabled"

	press(m, "c")
	m.selected = "greeting"
	status := statusOf(press(m, "enter"))

	assert.Equal(t, "Connect an item to a section", status)
	assert.False(t, m.Dirty())
}

func TestCanvas_ConnectToEmptyCanvasCreatesItem(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		wantSection string
	}{
		{"from a section", "section_1", "section_1"},
		{"from an item", "greeting", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestCanvas(CanvasOptions{})
			press(m, "tab")
			m.selected = tt.source

			press(m, "c")
			m.cursor = models.Position{X: 600, Y: 600}
			press(m, "enter")
			require.Equal(t, modeMenu, m.mode)
			assert.Equal(t, menuCreateAt, m.menu.purpose)

			press(m, "enter")

			node, ok := m.Graph().ItemNode("item_1")
			require.True(t, ok)
			assert.Equal(t, tt.wantSection, node.SectionID)
			assert.Equal(t, models.Position{X: 600, Y: 600}, node.Position)
			assert.Equal(t, models.ItemTypeText, node.Item.Type())
			assert.Empty(t, m.connectFrom)
		})
	}
}

func TestCanvas_EscCancelsConnection(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})

	press(m, "c")
	status := statusOf(press(m, "esc"))

	assert.Equal(t, "Connection cancelled", status)
	assert.Equal(t, modeNormal, m.mode)
	assert.Empty(t, m.connectFrom)
}

func TestCanvas_DeleteAsksFirst(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})

	press(m, "x")
	require.True(t, m.confirm.Active())
	assert.Contains(t, m.confirm.View(), "Enabled")
	assert.Contains(t, m.confirm.View(), "2 attached item(s)")

	// Other keys are swallowed while the dialog is up
	press(m, "a")
	assert.Len(t, m.Graph().Nodes, 8)

	assert.Equal(t, "Deletion cancelled", statusOf(press(m, "n")))
	assert.Len(t, m.Graph().Nodes, 8)

	press(m, "x")
	assert.Equal(t, "Deleted section_0", statusOf(press(m, "y")))
	assert.Len(t, m.Graph().Nodes, 5)
	_, ok := m.Graph().Find("enabled")
	assert.False(t, ok)
	assert.Empty(t, m.Selected())
}

func TestCanvas_Duplicate(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})
	m.selected = "accent"

	status := statusOf(press(m, "D"))

	assert.Equal(t, "Duplicated accent as item_1", status)
	assert.Equal(t, "item_1", m.Selected())
	source, _ := m.Graph().ItemNode("accent")
	clone, ok := m.Graph().ItemNode("item_1")
	require.True(t, ok)
	assert.Equal(t, source.Position.Add(30, 30), clone.Position)
	assert.Equal(t, "section_1", clone.SectionID)

	m.selected = "section_0"
	assert.Equal(t, "Select an item to duplicate", statusOf(press(m, "D")))
}

func TestCanvas_EditTitleAndName(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})

	press(m, "e")
	require.Equal(t, modeEditing, m.mode)
	assert.Equal(t, "General", m.input.Value())
	press(m, "ctrl+u", "Basics", "enter")

	section, _ := m.Graph().Section("section_0")
	assert.Equal(t, "Basics", section.Title)

	m.selected = "opacity"
	press(m, "e", "ctrl+u", "Transparency", "enter")
	node, _ := m.Graph().ItemNode("opacity")
	assert.Equal(t, "Transparency", node.Item.Base().Name)
	assert.Equal(t, "opacity", node.Item.Base().ID)
}

func TestCanvas_EditEscDiscards(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})

	press(m, "e", "ctrl+u", "Nope", "esc")

	assert.Equal(t, modeNormal, m.mode)
	section, _ := m.Graph().Section("section_0")
	assert.Equal(t, "General", section.Title)
	assert.False(t, m.Dirty())
}

func TestCanvas_EditIDRenamesNode(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})
	m.selected = "enabled"

	status := statusOf(press(m, "I", "ctrl+u", "sync", "enter"))
	assert.Equal(t, "Changed id enabled to sync", status)
	assert.Equal(t, "sync", m.Selected())
	node, ok := m.Graph().ItemNode("sync")
	require.True(t, ok)
	assert.Equal(t, "sync", node.Item.Base().ID)

	// A clashing id is kept but reported
	status = statusOf(press(m, "I", "ctrl+u", "greeting", "enter"))
	assert.Contains(t, status, "Warning")
	assert.Contains(t, status, "greeting")

	m.selected = "section_1"
	assert.Equal(t, "Section ids follow their position", statusOf(press(m, "I")))
}

func TestCanvas_EditIDRejectsEmpty(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})
	m.selected = "enabled"

	status := statusOf(press(m, "I", "ctrl+u", "enter"))

	assert.Equal(t, "Item id cannot be empty", status)
	_, ok := m.Graph().ItemNode("enabled")
	assert.True(t, ok)
}

func TestCanvas_NudgeMovesByGridStep(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})
	m.selected = "enabled"

	press(m, "shift+right")
	press(m, "shift+down")

	node, _ := m.Graph().ItemNode("enabled")
	assert.Equal(t, models.Position{X: 100, Y: 140}, node.Position)
}

func TestCanvas_NudgeSnaps(t *testing.T) {
	layout := blueprint.DefaultLayout()
	layout.SnapToGrid = true
	layout.GridSize = 25
	editor := blueprint.NewEditor(blueprint.NewCounterGenerator(), layout)
	m := NewCanvasModel(editor, exampleGraph(), CanvasOptions{})
	m.selected = "enabled"

	status := statusOf(press(m, "shift+left"))

	assert.Equal(t, "Moved enabled to 75,125", status)
}

func TestCanvas_Find(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})

	assert.Contains(t, statusOf(press(m, "n")), "No search")

	cmd := press(m, "/", "type:slider OR type:select", "enter")
	assert.Equal(t, "Match 1 of 2: opacity", statusOf(cmd))
	assert.Equal(t, "opacity", m.Selected())
	assert.Equal(t, modeNormal, m.mode)

	assert.Equal(t, "Match 2 of 2: theme", statusOf(press(m, "n")))
	assert.Equal(t, "theme", m.Selected())
	assert.Equal(t, "Match 1 of 2: opacity", statusOf(press(m, "n")))

	// Deleted matches are skipped
	press(m, "x", "y")
	assert.Equal(t, "Match 2 of 2: theme", statusOf(press(m, "n")))
	assert.Equal(t, "Match 2 of 2: theme", statusOf(press(m, "n")))
}

func TestCanvas_FindReportsProblems(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})

	assert.Contains(t, statusOf(press(m, "/", "tag:api", "enter")), "unknown field")
	assert.Equal(t, `No nodes match "nothing"`, statusOf(press(m, "/", "nothing", "enter")))

	press(m, "/", "type:toggle", "esc")
	assert.Equal(t, "section_0", m.Selected())
}

func TestCanvas_Undo(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})
	original := m.Graph()

	press(m, "a")
	m.selected = "accent"
	press(m, "D")
	require.Len(t, m.Graph().Nodes, 10)

	assert.Equal(t, "Undone", statusOf(press(m, "ctrl+z")))
	assert.Len(t, m.Graph().Nodes, 9)
	press(m, "ctrl+z")
	assert.Equal(t, original, m.Graph())
	assert.Equal(t, "Nothing to undo", statusOf(press(m, "ctrl+z")))
}

func TestCanvas_Save(t *testing.T) {
	tests := []struct {
		name       string
		save       func(models.Graph) ([]string, error)
		wantStatus string
		wantDirty  bool
	}{
		{
			name:       "clean save",
			save:       func(models.Graph) ([]string, error) { return nil, nil },
			wantStatus: "Saved settings.yaml",
		},
		{
			name:       "detached items reported",
			save:       func(models.Graph) ([]string, error) { return []string{"enabled"}, nil },
			wantStatus: "Saved; 1 detached item(s) not stored: enabled",
		},
		{
			name:       "failure keeps changes",
			save:       func(models.Graph) ([]string, error) { return nil, errors.New("disk full") },
			wantStatus: "Save failed: disk full",
			wantDirty:  true,
		},
		{
			name:       "no persistence",
			wantStatus: "Nowhere to save",
			wantDirty:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestCanvas(CanvasOptions{Title: "settings.yaml", Save: tt.save})
			press(m, "a")

			status := statusOf(press(m, "ctrl+s"))

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantDirty, m.Dirty())
		})
	}
}

func TestCanvas_SavePassesCurrentGraph(t *testing.T) {
	var saved models.Graph
	m := newTestCanvas(CanvasOptions{Save: func(g models.Graph) ([]string, error) {
		saved = g
		return nil, nil
	}})

	press(m, "a", "ctrl+s")

	assert.Equal(t, m.Graph(), saved)
}

func TestCanvas_Quit(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})
	assert.True(t, isQuit(press(m, "q")))

	press(m, "a")
	assert.Nil(t, press(m, "q"))
	require.True(t, m.confirm.Active())
	assert.Contains(t, m.View(), "Quit without saving?")
	assert.True(t, isQuit(press(m, "y")))
}

func TestCanvas_Preview(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})

	cmd := press(m, "p")
	require.NotNil(t, cmd)
	msg, ok := cmd().(SwitchViewMsg)
	require.True(t, ok)
	assert.Equal(t, formView, msg.view)
	require.NotNil(t, msg.schema)
	assert.Len(t, msg.schema.Sections, 2)
	assert.Equal(t, 6, msg.schema.ItemCount())
}

func TestCanvas_View(t *testing.T) {
	m := newTestCanvas(CanvasOptions{Title: "settings.yaml", ShowGrid: true})

	view := m.View()
	assert.Contains(t, view, "settings.yaml")
	assert.Contains(t, view, "NODES")
	assert.Contains(t, view, "CANVAS")
	assert.Contains(t, view, "▣ General")
	assert.Contains(t, view, "● Accent color")
	assert.NotContains(t, view, "Detached")

	m.selected = "enabled"
	press(m, "d")
	view = m.View()
	assert.Contains(t, view, "Detached")
	assert.Contains(t, view, "○ Enabled")
	assert.Contains(t, view, "(modified)")
}

func TestCanvas_ViewShowsMenuAndEditor(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})

	press(m, "i")
	assert.Contains(t, m.View(), "Add item to section_0")
	assert.Contains(t, m.View(), "Color picker")
	press(m, "esc")

	press(m, "e")
	assert.Contains(t, m.View(), "Title:")
}

func TestCanvas_PlotDrawsEdges(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})
	cols, rows := m.gridSize()
	grid := m.plot(cols, rows)

	// section_0 is at col 5 row 2, enabled at col 9 row 6
	assert.Equal(t, '▣', grid[2][5].r)
	assert.Equal(t, '│', grid[3][5].r)
	// greeting's edge continues past enabled's elbow
	assert.Equal(t, '├', grid[6][5].r)
	assert.Equal(t, '└', grid[11][5].r)
	assert.Equal(t, '─', grid[6][6].r)
	assert.Equal(t, '●', grid[6][9].r)
	assert.Equal(t, cellSelected, grid[2][5].kind)
}

func TestCanvas_WindowResize(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})

	_, cmd := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})

	assert.Nil(t, cmd)
	assert.Equal(t, 60, m.width)
	cols, rows := m.gridSize()
	assert.GreaterOrEqual(t, cols, 10)
	assert.GreaterOrEqual(t, rows, 5)
}

func TestCanvas_ScrollFollowsCursor(t *testing.T) {
	m := newTestCanvas(CanvasOptions{})
	press(m, "tab")
	_, rows := m.gridSize()

	for i := 0; i < rows+5; i++ {
		press(m, "down")
	}

	_, row := m.cellOf(m.cursor)
	assert.Equal(t, rows-1, row)
	assert.Greater(t, m.origin.Y, 0.0)
}
