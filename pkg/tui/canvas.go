package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/pluqqy/blueprint/pkg/blueprint"
	"github.com/pluqqy/blueprint/pkg/models"
	"github.com/pluqqy/blueprint/pkg/search"
)

// CanvasOptions configures the canvas. Save is the host's persistence hook; it
// returns the ids of items the target document could not store.
type CanvasOptions struct {
	Title      string
	CellWidth  float64
	CellHeight float64
	ShowGrid   bool
	Save       func(models.Graph) ([]string, error)
}

type canvasPane int

const (
	outlinePane canvasPane = iota
	gridPane
)

type canvasMode int

const (
	modeNormal canvasMode = iota
	modeConnecting
	modeMenu
	modeEditing
)

type editField int

const (
	editTitle editField = iota
	editName
	editID
	editFind
)

const maxUndo = 100

// CanvasModel edits a graph. Every change goes through the editor and produces a
// new graph revision; the view is drawn from the current revision alone.
type CanvasModel struct {
	editor  *blueprint.Editor
	opts    CanvasOptions
	graph   models.Graph
	history []models.Graph
	dirty   bool

	pane     canvasPane
	mode     canvasMode
	selected string
	cursor   models.Position
	origin   models.Position

	connectFrom string
	menu        typeMenu
	input       textinput.Model
	editing     editField
	editTarget  string
	confirm     *ConfirmationModel

	matches []string
	match   int

	width  int
	height int
}

// NewCanvasModel creates a canvas over g
func NewCanvasModel(editor *blueprint.Editor, g models.Graph, opts CanvasOptions) *CanvasModel {
	if opts.CellWidth <= 0 {
		opts.CellWidth = 10
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = 20
	}

	input := textinput.New()
	input.CharLimit = 200
	input.Width = 40

	layout := editor.Layout()
	m := &CanvasModel{
		editor:  editor,
		opts:    opts,
		graph:   g,
		confirm: NewConfirmation(),
		input:   input,
		width:   100,
		height:  30,
	}
	m.cursor = m.snapToCell(models.Position{X: layout.StartX, Y: layout.StartY})
	if len(g.Nodes) > 0 {
		m.selected = g.Nodes[0].NodeID()
	}
	return m
}

func (m *CanvasModel) Init() tea.Cmd {
	return nil
}

// Graph returns the current revision
func (m *CanvasModel) Graph() models.Graph {
	return m.graph
}

// Dirty reports whether there are unsaved changes
func (m *CanvasModel) Dirty() bool {
	return m.dirty
}

// Selected returns the id of the selected node
func (m *CanvasModel) Selected() string {
	return m.selected
}

func (m *CanvasModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.scrollToCursor()
}

func (m *CanvasModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	if m.mode == modeEditing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *CanvasModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.confirm.Active() {
		return m.confirm.Update(msg)
	}

	switch m.mode {
	case modeEditing:
		return m.handleEditKey(msg)
	case modeMenu:
		return m.handleMenuKey(msg)
	}

	key := msg.String()
	switch {
	case Shortcuts.Save.Matches(key):
		return m.save()
	case Shortcuts.Undo.Matches(key):
		return m.undo()
	}

	switch key {
	case "q":
		return m.quit()
	case "esc":
		if m.mode == modeConnecting {
			m.cancelConnect()
			return statusCmd("Connection cancelled")
		}
	case "tab", "shift+tab":
		if m.pane == outlinePane {
			m.pane = gridPane
		} else {
			m.pane = outlinePane
		}
	case "up", "k":
		m.navigate(0, -1)
	case "down", "j":
		m.navigate(0, 1)
	case "left", "h":
		m.navigate(-1, 0)
	case "right", "l":
		m.navigate(1, 0)
	case "shift+up":
		return m.nudge(0, -1)
	case "shift+down":
		return m.nudge(0, 1)
	case "shift+left":
		return m.nudge(-1, 0)
	case "shift+right":
		return m.nudge(1, 0)
	case "enter":
		if m.mode == modeConnecting {
			return m.finishConnect()
		}
		if id := m.nodeAtCursor(); id != "" {
			m.selected = id
		}
	case "a":
		return m.addSection()
	case "i":
		return m.startAddItem()
	case "c":
		return m.startConnect()
	case "d":
		return m.detach()
	case "x", "delete":
		return m.confirmDelete()
	case "D":
		return m.duplicate()
	case "e":
		return m.startEdit(false)
	case "I":
		return m.startEdit(true)
	case "p":
		return m.preview()
	case "/":
		return m.startFind()
	case "n":
		return m.nextMatch()
	}
	return nil
}

// apply records next as the current revision
func (m *CanvasModel) apply(next models.Graph, format string, args ...any) tea.Cmd {
	m.history = append(m.history, m.graph)
	if len(m.history) > maxUndo {
		m.history = m.history[1:]
	}
	m.graph = next
	m.dirty = true
	if _, ok := m.graph.Find(m.selected); !ok {
		m.selected = ""
	}
	return statusCmd(format, args...)
}

func (m *CanvasModel) fail(err error) tea.Cmd {
	log.Debug().Err(err).Msg("canvas operation failed")
	return statusCmd("Error: %v", err)
}

func (m *CanvasModel) undo() tea.Cmd {
	if len(m.history) == 0 {
		return statusCmd("Nothing to undo")
	}
	m.graph = m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	m.dirty = true
	if _, ok := m.graph.Find(m.selected); !ok {
		m.selected = ""
	}
	m.cancelConnect()
	return statusCmd("Undone")
}

func (m *CanvasModel) save() tea.Cmd {
	if m.opts.Save == nil {
		return statusCmd("Nowhere to save")
	}
	dropped, err := m.opts.Save(m.graph)
	if err != nil {
		return statusCmd("Save failed: %v", err)
	}
	m.dirty = false
	if len(dropped) > 0 {
		return statusCmd("Saved; %d detached item(s) not stored: %s", len(dropped), strings.Join(dropped, ", "))
	}
	return statusCmd("Saved %s", m.opts.Title)
}

func (m *CanvasModel) quit() tea.Cmd {
	if !m.dirty {
		return tea.Quit
	}
	m.confirm.ShowInline("Quit without saving?", true,
		func() tea.Cmd { return tea.Quit },
		nil,
	)
	return nil
}

func (m *CanvasModel) navigate(dx, dy int) {
	if m.pane == outlinePane {
		if dy == 0 {
			return
		}
		entries := m.outline()
		if len(entries) == 0 {
			return
		}
		i := 0
		for j, e := range entries {
			if e.id == m.selected {
				i = j + dy
				break
			}
		}
		i = max(0, min(len(entries)-1, i))
		m.selected = entries[i].id
		if n, ok := m.graph.Find(m.selected); ok {
			m.cursor = m.snapToCell(n.NodePosition())
			m.scrollToCursor()
		}
		return
	}

	m.cursor = m.cursor.Add(float64(dx)*m.opts.CellWidth, float64(dy)*m.opts.CellHeight)
	m.scrollToCursor()
	if id := m.nodeAtCursor(); id != "" && m.mode != modeConnecting {
		m.selected = id
	}
}

// nudge moves the selected node by one grid step
func (m *CanvasModel) nudge(dx, dy int) tea.Cmd {
	n, ok := m.graph.Find(m.selected)
	if !ok {
		return statusCmd("Select a node to move")
	}
	stepX, stepY := m.opts.CellWidth, m.opts.CellHeight
	if grid := m.editor.Layout().GridSize; grid > 0 {
		stepX, stepY = grid, grid
	}
	target := n.NodePosition().Add(float64(dx)*stepX, float64(dy)*stepY)
	next, err := m.editor.MoveNode(m.graph, m.selected, target)
	if err != nil {
		return m.fail(err)
	}
	moved, _ := next.Find(m.selected)
	m.cursor = m.snapToCell(moved.NodePosition())
	m.scrollToCursor()
	return m.apply(next, "Moved %s to %g,%g", m.selected, moved.NodePosition().X, moved.NodePosition().Y)
}

func (m *CanvasModel) addSection() tea.Cmd {
	next, id := m.editor.AddSection(m.graph, m.cursor)
	m.selected = id
	return m.apply(next, "Added %s", id)
}

// sectionOfSelection resolves the section a new item should go to: the selected
// section, or the section of the selected item
func (m *CanvasModel) sectionOfSelection() (string, bool) {
	n, ok := m.graph.Find(m.selected)
	if !ok {
		return "", false
	}
	switch node := n.(type) {
	case models.SectionNode:
		return node.ID, true
	case models.ItemNode:
		if blueprint.NewIndex(m.graph).IsAttached(node) {
			return node.SectionID, true
		}
	}
	return "", false
}

func (m *CanvasModel) startAddItem() tea.Cmd {
	sectionID, ok := m.sectionOfSelection()
	if !ok {
		return statusCmd("Select a section to add an item to")
	}
	m.menu = newTypeMenu(menuAddItem, sectionID, m.cursor)
	m.mode = modeMenu
	return nil
}

func (m *CanvasModel) startConnect() tea.Cmd {
	if _, ok := m.graph.Find(m.selected); !ok {
		return statusCmd("Select a node to connect from")
	}
	m.connectFrom = m.selected
	m.mode = modeConnecting
	return statusCmd("Connecting from %s: move to a target and press enter", m.selected)
}

func (m *CanvasModel) cancelConnect() {
	m.connectFrom = ""
	m.mode = modeNormal
}

// finishConnect resolves a connection: section and item in either direction
// attaches; empty canvas opens the item menu at the cursor
func (m *CanvasModel) finishConnect() tea.Cmd {
	target := m.selected
	if m.pane == gridPane {
		target = m.nodeAtCursor()
	}

	source, ok := m.graph.Find(m.connectFrom)
	if !ok {
		m.cancelConnect()
		return statusCmd("Connection source is gone")
	}

	if target == "" {
		if m.pane != gridPane {
			return statusCmd("Pick a target node")
		}
		sectionID := ""
		if s, isSection := source.(models.SectionNode); isSection {
			sectionID = s.ID
		}
		m.menu = newTypeMenu(menuCreateAt, sectionID, m.cursor)
		m.mode = modeMenu
		return nil
	}

	dest, _ := m.graph.Find(target)
	var itemID, sectionID string
	switch s := source.(type) {
	case models.ItemNode:
		itemID = s.ID
		if sec, ok := dest.(models.SectionNode); ok {
			sectionID = sec.ID
		}
	case models.SectionNode:
		sectionID = s.ID
		if it, ok := dest.(models.ItemNode); ok {
			itemID = it.ID
		}
	}
	if itemID == "" || sectionID == "" {
		return statusCmd("Connect an item to a section")
	}

	next, err := m.editor.Attach(m.graph, itemID, sectionID)
	m.cancelConnect()
	if err != nil {
		return m.fail(err)
	}
	m.selected = itemID
	return m.apply(next, "Attached %s to %s", itemID, sectionID)
}

func (m *CanvasModel) detach() tea.Cmd {
	node, ok := m.graph.ItemNode(m.selected)
	if !ok {
		return statusCmd("Select an item to detach")
	}
	if node.SectionID == "" {
		return statusCmd("%s is already detached", node.ID)
	}
	next, err := m.editor.Detach(m.graph, node.ID)
	if err != nil {
		return m.fail(err)
	}
	return m.apply(next, "Detached %s", node.ID)
}

func (m *CanvasModel) confirmDelete() tea.Cmd {
	n, ok := m.graph.Find(m.selected)
	if !ok {
		return statusCmd("Select a node to delete")
	}
	id := n.NodeID()

	var details []string
	warning := ""
	if _, isSection := n.(models.SectionNode); isSection {
		for _, item := range blueprint.NewIndex(m.graph).Attached(id) {
			details = append(details, itemLabel(item))
		}
		if len(details) > 0 {
			warning = fmt.Sprintf("Its %d attached item(s) are deleted too", len(details))
		}
	}

	m.confirm.ShowDialog(
		"DELETE",
		fmt.Sprintf("Delete %s?", nodeLabel(n)),
		warning,
		details,
		min(60, max(30, m.width-4)),
		func() tea.Cmd {
			next, err := m.editor.DeleteNode(m.graph, id)
			if err != nil {
				return m.fail(err)
			}
			return m.apply(next, "Deleted %s", id)
		},
		func() tea.Cmd {
			return statusCmd("Deletion cancelled")
		},
	)
	return nil
}

func (m *CanvasModel) duplicate() tea.Cmd {
	if _, ok := m.graph.ItemNode(m.selected); !ok {
		return statusCmd("Select an item to duplicate")
	}
	source := m.selected
	next, id, err := m.editor.DuplicateItem(m.graph, source)
	if err != nil {
		return m.fail(err)
	}
	m.selected = id
	return m.apply(next, "Duplicated %s as %s", source, id)
}

func (m *CanvasModel) startEdit(editingID bool) tea.Cmd {
	n, ok := m.graph.Find(m.selected)
	if !ok {
		return statusCmd("Select a node to edit")
	}

	switch node := n.(type) {
	case models.SectionNode:
		if editingID {
			return statusCmd("Section ids follow their position")
		}
		m.editing = editTitle
		m.input.SetValue(node.Title)
		m.input.Placeholder = "Section title"
	case models.ItemNode:
		if editingID {
			m.editing = editID
			m.input.SetValue(node.ID)
			m.input.Placeholder = "item id"
		} else {
			m.editing = editName
			m.input.SetValue(node.Item.Base().Name)
			m.input.Placeholder = "Item name"
		}
	}

	m.editTarget = m.selected
	m.mode = modeEditing
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *CanvasModel) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.stopEdit()
		return nil
	case "enter":
		value := m.input.Value()
		target := m.editTarget
		field := m.editing
		m.stopEdit()
		if field == editFind {
			return m.find(value)
		}
		return m.commitEdit(target, field, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *CanvasModel) stopEdit() {
	m.input.Blur()
	m.input.SetValue("")
	m.editTarget = ""
	m.mode = modeNormal
}

func (m *CanvasModel) commitEdit(target string, field editField, value string) tea.Cmd {
	if field == editTitle {
		next, err := m.editor.UpdateSectionTitle(m.graph, target, value)
		if err != nil {
			return m.fail(err)
		}
		return m.apply(next, "Renamed %s", target)
	}

	node, ok := m.graph.ItemNode(target)
	if !ok {
		return m.fail(fmt.Errorf("%w: %s", blueprint.ErrNodeNotFound, target))
	}
	item := node.Item
	if field == editID {
		value = strings.TrimSpace(value)
		if value == "" {
			return statusCmd("Item id cannot be empty")
		}
		item = models.WithID(item, value)
	} else {
		base := item.Base()
		base.Name = value
		item = item.WithBase(base)
	}

	next, err := m.editor.UpdateItem(m.graph, target, item)
	if err != nil {
		return m.fail(err)
	}
	if field != editID {
		return m.apply(next, "Renamed %s", target)
	}

	m.selected = value
	cmd := m.apply(next, "Changed id %s to %s", target, value)
	for _, p := range blueprint.Validate(next) {
		if p.Kind == blueprint.ProblemDuplicateID && p.NodeID == value {
			return statusCmd("Warning: %s", p.Message)
		}
	}
	return cmd
}

func (m *CanvasModel) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	t, done := m.menu.update(msg.String())
	if !done {
		return nil
	}
	m.mode = modeNormal
	if t == "" {
		m.cancelConnect()
		return statusCmd("Cancelled")
	}

	var (
		next models.Graph
		id   string
		err  error
	)
	switch m.menu.purpose {
	case menuAddItem:
		next, id, err = m.editor.AddItem(m.graph, m.menu.sectionID, t)
	case menuCreateAt:
		next, id, err = m.editor.CreateItemAt(m.graph, m.menu.sectionID, t, m.menu.at)
	}
	m.cancelConnect()
	if err != nil {
		return m.fail(err)
	}
	m.selected = id
	if n, ok := next.Find(id); ok {
		m.cursor = m.snapToCell(n.NodePosition())
		m.scrollToCursor()
	}
	if m.menu.sectionID == "" {
		return m.apply(next, "Created detached %s item %s", t.Label(), id)
	}
	return m.apply(next, "Added %s item %s to %s", t.Label(), id, m.menu.sectionID)
}

func (m *CanvasModel) preview() tea.Cmd {
	schema := blueprint.GraphToSchema(m.graph)
	return func() tea.Msg {
		return SwitchViewMsg{view: formView, schema: &schema}
	}
}

func statusCmd(format string, args ...any) tea.Cmd {
	msg := StatusMsg(fmt.Sprintf(format, args...))
	return func() tea.Msg { return msg }
}

func (m *CanvasModel) startFind() tea.Cmd {
	m.editing = editFind
	m.editTarget = ""
	m.input.SetValue("")
	m.input.Placeholder = "type:slider section:general ..."
	m.mode = modeEditing
	return m.input.Focus()
}

// find selects the best match of query and remembers the rest for n
func (m *CanvasModel) find(query string) tea.Cmd {
	results, err := search.NewEngine(m.graph).Search(query)
	if err != nil {
		return statusCmd("%v", err)
	}
	m.matches = m.matches[:0]
	for _, r := range results {
		m.matches = append(m.matches, r.Entry.NodeID)
	}
	if len(m.matches) == 0 {
		return statusCmd("No nodes match %q", query)
	}
	m.match = 0
	m.focusNode(m.matches[0])
	return statusCmd("Match 1 of %d: %s", len(m.matches), m.matches[0])
}

func (m *CanvasModel) nextMatch() tea.Cmd {
	if len(m.matches) == 0 {
		return statusCmd("No search (press / to find)")
	}
	// Matches may have been deleted since the search ran
	for range m.matches {
		m.match = (m.match + 1) % len(m.matches)
		if _, ok := m.graph.Find(m.matches[m.match]); ok {
			m.focusNode(m.matches[m.match])
			return statusCmd("Match %d of %d: %s", m.match+1, len(m.matches), m.matches[m.match])
		}
	}
	return statusCmd("No matches left")
}

func (m *CanvasModel) focusNode(id string) {
	m.selected = id
	if n, ok := m.graph.Find(id); ok {
		m.cursor = m.snapToCell(n.NodePosition())
		m.scrollToCursor()
	}
}
