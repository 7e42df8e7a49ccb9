package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/pluqqy/blueprint/pkg/models"
)

const sliderWidth = 20

// hasControl reports whether an item kind has a widget. Unknown kinds have none
// and are left out of the form.
func hasControl(item models.Item) bool {
	switch item.(type) {
	case models.TextItem, models.ToggleItem, models.SliderItem,
		models.FilePickerItem, models.ColorPickerItem, models.SelectItem:
		return true
	}
	return false
}

func usesTextInput(item models.Item) bool {
	switch item.(type) {
	case models.TextItem, models.ColorPickerItem, models.FilePickerItem:
		return true
	}
	return false
}

func newControlInput(item models.Item) *textinput.Model {
	in := textinput.New()
	in.CharLimit = 1024
	in.Width = 40
	switch it := item.(type) {
	case models.ColorPickerItem:
		in.Placeholder = models.DefaultColor
		in.CharLimit = 7
		in.Width = 9
	case models.FilePickerItem:
		in.Placeholder = "path (ctrl+o to browse)"
		if it.Accept != "" && it.Accept != "*" {
			in.Placeholder = fmt.Sprintf("path to %s (ctrl+o to browse)", it.Accept)
		}
	case models.TextItem:
		if len(it.Buttons) > 0 && it.Buttons[0].Name != "" {
			in.Placeholder = it.Buttons[0].Name
		}
	}
	return &in
}

// renderControl draws the widget of one item. It returns "" for kinds without a
// control.
func (m *SettingsFormModel) renderControl(item models.Item, focused bool) string {
	id := item.Base().ID
	switch it := item.(type) {
	case models.TextItem:
		return m.renderInput(id)

	case models.ToggleItem:
		def, _ := models.DefaultValue(it)
		on := m.values.Bool(id, def.(bool))
		box := "[ ]"
		state := "off"
		if on {
			box = "[x]"
			state = "on"
		}
		style := NormalStyle
		if focused {
			style = CursorStyle
		}
		return style.Render(box) + " " + HelpStyle.Render(state)

	case models.SliderItem:
		def, _ := models.DefaultValue(it)
		return renderSlider(it, m.values.Float(id, def.(float64)), focused)

	case models.ColorPickerItem:
		def, _ := models.DefaultValue(it)
		color := m.values.String(id, def.(string))
		return m.renderInput(id) + " " + SwatchStyle(color).Render("███")

	case models.SelectItem:
		current := m.values.String(id, "")
		label := current
		for _, opt := range it.Options {
			if opt.Value == current {
				label = opt.Label
				break
			}
		}
		if label == "" {
			label = "(none)"
		}
		if len(it.Options) == 0 {
			return EmptyStyle.Render("no options")
		}
		style := NormalStyle
		if focused {
			style = CursorStyle
		}
		return style.Render("‹ " + label + " ›")

	case models.FilePickerItem:
		return m.renderInput(id)
	}
	return ""
}

func (m *SettingsFormModel) renderInput(id string) string {
	in, ok := m.inputs[id]
	if !ok {
		return ""
	}
	return in.View()
}

func renderSlider(it models.SliderItem, value float64, focused bool) string {
	lo, hi, _ := it.SliderBounds()
	value = it.Clamp(value)
	filled := 0
	if hi > lo {
		filled = int((value - lo) / (hi - lo) * sliderWidth)
	}
	filled = max(0, min(sliderWidth, filled))

	barStyle := NormalStyle
	if focused {
		barStyle = CursorStyle
	}
	bar := barStyle.Render(strings.Repeat("█", filled)) +
		HelpStyle.Render(strings.Repeat("░", sliderWidth-filled))
	return fmt.Sprintf("%s %g %s", bar, value, HelpStyle.Render(fmt.Sprintf("(%g–%g)", lo, hi)))
}

// renderForm returns the form body and the line the focused row starts on
func (m *SettingsFormModel) renderForm() (string, int) {
	var lines []string
	focusLine := 0

	for i, row := range m.rows {
		focused := i == m.focus
		if focused {
			focusLine = len(lines)
		}

		if row.header() {
			section := m.schema.Sections[row.section]
			arrow := "▸"
			if m.expanded[row.section] {
				arrow = "▾"
			}
			title := section.Title
			if title == "" {
				title = "(untitled)"
			}
			line := fmt.Sprintf("%s %s", arrow, title)
			if focused {
				line = SelectedStyle.Render(line)
			} else {
				line = SectionHeaderStyle.Render(line)
			}
			if i > 0 {
				lines = append(lines, "")
			}
			if focused {
				focusLine = len(lines)
			}
			lines = append(lines, line)
			continue
		}

		base := row.item.Base()
		name := base.Name
		if name == "" {
			name = base.ID
		}
		marker := "  "
		nameStyle := HeaderStyle
		if focused {
			marker = CursorStyle.Render("› ")
			nameStyle = GetActiveHeaderStyle(true)
		}
		lines = append(lines, "  "+marker+nameStyle.Render(name))
		lines = append(lines, "      "+m.renderControl(row.item, focused))
		if base.Description != "" {
			for _, l := range strings.Split(wordwrap.String(base.Description, m.opts.WrapWidth), "\n") {
				lines = append(lines, "      "+DescriptionStyle.Render(l))
			}
		}
	}

	if len(m.schema.Sections) == 0 {
		lines = append(lines, EmptyStyle.Render("This schema has no sections."))
	}
	return strings.Join(lines, "\n"), focusLine
}

func (m *SettingsFormModel) View() string {
	if m.pickingID != "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			TitleStyle.Render("Choose a file for "+m.pickingID),
			m.picker.View(),
			HelpBorderStyle.Render(HelpStyle.Render("enter select • h/backspace up a directory • esc cancel")),
		)
	}

	body, focusLine := m.renderForm()
	m.viewport.SetContent(body)
	if focusLine < m.viewport.YOffset {
		m.viewport.SetYOffset(focusLine)
	} else if focusLine >= m.viewport.YOffset+m.viewport.Height-2 {
		m.viewport.SetYOffset(focusLine - m.viewport.Height + 3)
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Settings"))
	if m.reloadErr != nil {
		b.WriteString(" " + ErrorStyle.Render("reload failed: "+m.reloadErr.Error()))
	}
	b.WriteString("\n")
	b.WriteString(ContentPaddingStyle.Render(m.viewport.View()))
	b.WriteString("\n")

	keys := []string{"↑/↓ move", "enter expand/toggle", "←/→ adjust", "ctrl+o browse"}
	if m.save != nil {
		keys = append(keys, FormatShortcutForHelp(Shortcuts.Save)+" save")
	}
	keys = append(keys, "esc back")
	b.WriteString(HelpBorderStyle.Render(HelpStyle.Render(strings.Join(keys, " • "))))
	return b.String()
}
