package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/blueprint/pkg/blueprint"
	"github.com/pluqqy/blueprint/pkg/models"
)

const maxLabelRunes = 24

type cellKind int

const (
	cellEmpty cellKind = iota
	cellGrid
	cellEdge
	cellSection
	cellItem
	cellDetached
	cellSelected
	cellSource
)

type cell struct {
	r    rune
	kind cellKind
}

// outlineEntry is one selectable row of the outline pane
type outlineEntry struct {
	id       string
	label    string
	depth    int
	detached bool
}

// outline lists sections with their attached items, then detached items
func (m *CanvasModel) outline() []outlineEntry {
	idx := blueprint.NewIndex(m.graph)
	var entries []outlineEntry
	for _, s := range m.graph.Sections() {
		entries = append(entries, outlineEntry{id: s.ID, label: nodeLabel(s)})
		for _, item := range idx.Attached(s.ID) {
			entries = append(entries, outlineEntry{id: item.ID, label: itemLabel(item), depth: 1})
		}
	}
	for _, item := range idx.Detached() {
		entries = append(entries, outlineEntry{id: item.ID, label: itemLabel(item), detached: true})
	}
	return entries
}

func nodeLabel(n models.Node) string {
	switch node := n.(type) {
	case models.SectionNode:
		title := node.Title
		if title == "" {
			title = "(untitled)"
		}
		return fmt.Sprintf("%s %s", title, HelpStyle.Render(node.ID))
	case models.ItemNode:
		return itemLabel(node)
	}
	return n.NodeID()
}

func itemLabel(n models.ItemNode) string {
	name := n.ID
	kind := "?"
	if n.Item != nil {
		if base := n.Item.Base(); base.Name != "" {
			name = base.Name
		}
		kind = n.Item.Type().Label()
	}
	return fmt.Sprintf("%s (%s)", name, kind)
}

// plainLabel is the text drawn for a node on the grid
func plainLabel(n models.Node, attached bool) string {
	var label string
	switch node := n.(type) {
	case models.SectionNode:
		title := node.Title
		if title == "" {
			title = node.ID
		}
		label = "▣ " + title
	case models.ItemNode:
		name := node.ID
		if node.Item != nil && node.Item.Base().Name != "" {
			name = node.Item.Base().Name
		}
		if attached {
			label = "● " + name
		} else {
			label = "○ " + name
		}
	}
	runes := []rune(label)
	if len(runes) > maxLabelRunes {
		runes = append(runes[:maxLabelRunes-1], '…')
	}
	return string(runes)
}

func (m *CanvasModel) outlineWidth() int {
	return max(24, min(40, m.width/3))
}

// gridSize returns the number of canvas columns and rows that fit
func (m *CanvasModel) gridSize() (cols, rows int) {
	cols = m.width - m.outlineWidth() - 6
	rows = m.height - 9
	return max(cols, 10), max(rows, 5)
}

func (m *CanvasModel) cellOf(p models.Position) (col, row int) {
	col = int(math.Floor((p.X - m.origin.X) / m.opts.CellWidth))
	row = int(math.Floor((p.Y - m.origin.Y) / m.opts.CellHeight))
	return col, row
}

func (m *CanvasModel) snapToCell(p models.Position) models.Position {
	return models.Position{
		X: math.Floor(p.X/m.opts.CellWidth) * m.opts.CellWidth,
		Y: math.Floor(p.Y/m.opts.CellHeight) * m.opts.CellHeight,
	}
}

// scrollToCursor shifts the visible window so the cursor cell is on screen
func (m *CanvasModel) scrollToCursor() {
	cols, rows := m.gridSize()
	col, row := m.cellOf(m.cursor)
	if col < 0 {
		m.origin.X = m.cursor.X
	} else if col >= cols {
		m.origin.X = m.cursor.X - float64(cols-1)*m.opts.CellWidth
	}
	if row < 0 {
		m.origin.Y = m.cursor.Y
	} else if row >= rows {
		m.origin.Y = m.cursor.Y - float64(rows-1)*m.opts.CellHeight
	}
}

// nodeAtCursor returns the topmost node whose label covers the cursor cell
func (m *CanvasModel) nodeAtCursor() string {
	idx := blueprint.NewIndex(m.graph)
	ccol, crow := m.cellOf(m.cursor)
	for i := len(m.graph.Nodes) - 1; i >= 0; i-- {
		n := m.graph.Nodes[i]
		col, row := m.cellOf(n.NodePosition())
		if row != crow {
			continue
		}
		attached := false
		if item, ok := n.(models.ItemNode); ok {
			attached = idx.IsAttached(item)
		}
		width := len([]rune(plainLabel(n, attached)))
		if ccol >= col && ccol < col+width {
			return n.NodeID()
		}
	}
	return ""
}

// plot draws the graph onto a character grid
func (m *CanvasModel) plot(cols, rows int) [][]cell {
	grid := make([][]cell, rows)
	for r := range grid {
		grid[r] = make([]cell, cols)
		for c := range grid[r] {
			grid[r][c] = cell{r: ' '}
			if m.opts.ShowGrid && c%5 == 0 && r%2 == 0 {
				grid[r][c] = cell{r: '·', kind: cellGrid}
			}
		}
	}

	set := func(col, row int, r rune, kind cellKind) {
		if row < 0 || row >= rows || col < 0 || col >= cols {
			return
		}
		existing := grid[row][col]
		if existing.kind > cellEdge {
			return
		}
		// Branches where a vertical run meets an elbow
		if existing.kind == cellEdge && (existing.r == '└' && r == '│' || existing.r == '│' && r == '└') {
			r = '├'
		}
		grid[row][col] = cell{r: r, kind: kind}
	}

	idx := blueprint.NewIndex(m.graph)

	// Edges first so labels draw over them
	for _, s := range m.graph.Sections() {
		scol, srow := m.cellOf(s.Position)
		for _, item := range idx.Attached(s.ID) {
			icol, irow := m.cellOf(item.Position)
			if irow <= srow {
				continue
			}
			for r := srow + 1; r < irow; r++ {
				set(scol, r, '│', cellEdge)
			}
			if icol > scol {
				set(scol, irow, '└', cellEdge)
				for c := scol + 1; c < icol; c++ {
					set(c, irow, '─', cellEdge)
				}
			}
		}
	}

	for _, n := range m.graph.Nodes {
		col, row := m.cellOf(n.NodePosition())
		kind := cellSection
		attached := false
		if item, ok := n.(models.ItemNode); ok {
			attached = idx.IsAttached(item)
			kind = cellItem
			if !attached {
				kind = cellDetached
			}
		}
		switch n.NodeID() {
		case m.connectFrom:
			kind = cellSource
		case m.selected:
			kind = cellSelected
		}
		for i, r := range []rune(plainLabel(n, attached)) {
			if row >= 0 && row < rows && col+i >= 0 && col+i < cols {
				grid[row][col+i] = cell{r: r, kind: kind}
			}
		}
	}

	return grid
}

func styleFor(kind cellKind) lipgloss.Style {
	switch kind {
	case cellGrid:
		return GridStyle
	case cellEdge:
		return HelpStyle
	case cellSection:
		return SectionHeaderStyle
	case cellItem:
		return NormalStyle
	case cellDetached:
		return DetachedStyle
	case cellSelected:
		return SelectedStyle
	case cellSource:
		return ConnectingStyle
	default:
		return lipgloss.NewStyle()
	}
}

func (m *CanvasModel) renderGrid(cols, rows int) string {
	grid := m.plot(cols, rows)
	ccol, crow := m.cellOf(m.cursor)
	cursorStyle := lipgloss.NewStyle().Reverse(true)

	lines := make([]string, rows)
	for r, row := range grid {
		var b strings.Builder
		start := 0
		for c := 1; c <= len(row); c++ {
			isCursor := r == crow && c-1 == ccol
			boundary := c == len(row) || row[c].kind != row[start].kind ||
				(r == crow && (c == ccol || c-1 == ccol))
			if !boundary {
				continue
			}
			var run strings.Builder
			for _, cl := range row[start:c] {
				run.WriteRune(cl.r)
			}
			text := run.String()
			if isCursor && c-start == 1 {
				if text == " " || text == "·" {
					text = "+"
				}
				b.WriteString(cursorStyle.Render(text))
			} else {
				b.WriteString(styleFor(row[start].kind).Render(text))
			}
			start = c
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

func (m *CanvasModel) renderOutline(width, height int) string {
	entries := m.outline()
	var lines []string
	headerShown := false
	for _, e := range entries {
		if e.detached && !headerShown {
			lines = append(lines, "", HeaderStyle.Render("Detached"))
			headerShown = true
		}
		prefix := strings.Repeat("  ", e.depth)
		label := prefix + e.label
		switch {
		case e.id == m.selected:
			label = SelectedStyle.Render("▸ " + label)
		case e.detached:
			label = "  " + DetachedStyle.Render(label)
		case e.depth == 0:
			label = "  " + SectionHeaderStyle.Render(label)
		default:
			label = "  " + NormalStyle.Render(label)
		}
		lines = append(lines, label)
	}
	if len(lines) == 0 {
		lines = append(lines, EmptyStyle.Render("Empty graph. Press a to add a section."))
	}

	// Keep the selection in view
	selectedLine := 0
	for i, l := range lines {
		if strings.Contains(l, "▸ ") {
			selectedLine = i
			break
		}
	}
	if len(lines) > height && selectedLine >= height {
		lines = lines[selectedLine-height+1:]
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	content := lipgloss.NewStyle().Width(width).Height(height).Render(strings.Join(lines, "\n"))
	return content
}

func (m *CanvasModel) View() string {
	cols, rows := m.gridSize()
	ow := m.outlineWidth()

	title := "blueprint"
	if m.opts.Title != "" {
		title += " · " + m.opts.Title
	}
	if m.dirty {
		title += " (modified)"
	}

	outlineHeading := GetActiveHeaderStyle(m.pane == outlinePane).Render("NODES")
	outline := GetBorderStyle(m.pane == outlinePane).
		Padding(0, 1).
		Render(outlineHeading + "\n" + m.renderOutline(ow-2, rows))

	gridHeading := GetActiveHeaderStyle(m.pane == gridPane).Render("CANVAS") +
		HelpStyle.Render(fmt.Sprintf("  cursor %g,%g", m.cursor.X, m.cursor.Y))
	if m.mode == modeConnecting {
		gridHeading += ConnectingStyle.Render("  connecting from " + m.connectFrom)
	}

	var body string
	switch {
	case m.confirm.Active() && m.confirm.config.Type == ConfirmTypeDialog:
		body = lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, m.confirm.View())
	case m.mode == modeMenu:
		body = lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, m.menu.view())
	default:
		body = m.renderGrid(cols, rows)
	}
	canvas := GetBorderStyle(m.pane == gridPane).
		Render(gridHeading + "\n" + body)

	var b strings.Builder
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, outline, canvas))
	b.WriteString("\n")

	switch {
	case m.mode == modeEditing:
		label := map[editField]string{editTitle: "Title", editName: "Name", editID: "ID", editFind: "Find"}[m.editing]
		b.WriteString(HeaderStyle.Render(label+": ") + m.input.View())
	case m.confirm.Active():
		b.WriteString(m.confirm.View())
	default:
		b.WriteString(HelpBorderStyle.Render(m.helpLine()))
	}
	return b.String()
}

func (m *CanvasModel) helpLine() string {
	var keys []string
	switch m.mode {
	case modeConnecting:
		keys = []string{"move to a section or item", "enter connect", "enter on empty canvas: new item", "esc cancel"}
	default:
		keys = []string{
			"tab pane", "a section", "i item", "c connect", "d detach", "x delete",
			"D duplicate", "e edit", "I id", "⇧+arrows move", "/ find", "p preview",
			FormatShortcutForHelp(Shortcuts.Save) + " save",
			FormatShortcutForHelp(Shortcuts.Undo) + " undo", "q quit",
		}
	}
	return HelpStyle.Render(strings.Join(keys, " • "))
}
