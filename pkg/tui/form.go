package tui

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/pluqqy/blueprint/pkg/models"
)

// FormOptions configures the settings form
type FormOptions struct {
	ExpandAll bool
	WrapWidth int
}

// SchemaReloadMsg delivers a schema re-read from disk. Err is set when the file
// no longer parses; the form keeps showing the previous schema.
type SchemaReloadMsg struct {
	Schema models.SettingsSchema
	Err    error
}

// closeFormMsg asks the host to leave the form
type closeFormMsg struct{}

// formRow is a focusable line of the form: a section header (item == nil) or
// an item control
type formRow struct {
	section int
	item    models.Item
}

func (r formRow) header() bool {
	return r.item == nil
}

// SettingsFormModel renders a schema as an accordion of sections with one
// control per item, bound to a values map.
//
// In controlled mode (WithValues) the form only displays what the host last
// passed to SetValues; edits are reported through OnChange and show up once
// the host accepts them. Otherwise the form owns its values, seeded from the
// item defaults.
type SettingsFormModel struct {
	schema     models.SettingsSchema
	opts       FormOptions
	values     models.Values
	controlled bool
	onChange   func(models.Values)
	save       func(models.Values) error

	expanded []bool
	rows     []formRow
	focus    int
	inputs   map[string]*textinput.Model

	picker    filepicker.Model
	pickingID string

	viewport  viewport.Model
	reloadErr error
	width     int
	height    int
}

// NewSettingsForm creates an uncontrolled form over schema
func NewSettingsForm(schema models.SettingsSchema, opts FormOptions) *SettingsFormModel {
	if opts.WrapWidth <= 0 {
		opts.WrapWidth = 60
	}
	m := &SettingsFormModel{
		schema:   schema,
		opts:     opts,
		values:   models.DefaultValues(schema),
		viewport: viewport.New(80, 20),
		width:    80,
		height:   24,
	}
	m.expanded = make([]bool, len(schema.Sections))
	for i := range m.expanded {
		m.expanded[i] = opts.ExpandAll || i == 0
	}
	m.rebuild()
	return m
}

// WithValues switches the form to controlled mode showing values
func (m *SettingsFormModel) WithValues(values models.Values) *SettingsFormModel {
	m.controlled = true
	m.SetValues(values)
	return m
}

// WithOnChange registers the callback receiving the full map after each edit
func (m *SettingsFormModel) WithOnChange(fn func(models.Values)) *SettingsFormModel {
	m.onChange = fn
	return m
}

// SetValues replaces the displayed values
func (m *SettingsFormModel) SetValues(values models.Values) {
	m.values = values.Clone()
	m.syncInputs()
}

// SetSave enables ctrl+s
func (m *SettingsFormModel) SetSave(fn func(models.Values) error) {
	m.save = fn
}

// Values returns a copy of the current values
func (m *SettingsFormModel) Values() models.Values {
	return m.values.Clone()
}

// Schema returns the schema being rendered
func (m *SettingsFormModel) Schema() models.SettingsSchema {
	return m.schema
}

func (m *SettingsFormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 4
	m.viewport.Height = max(height-6, 3)
	for _, in := range m.inputs {
		in.Width = min(40, max(10, width-30))
	}
}

// edit reports a change. Controlled forms wait for the host to call SetValues.
func (m *SettingsFormModel) edit(id string, value any) {
	next := m.values.With(id, value)
	if !m.controlled {
		m.values = next
	}
	if m.onChange != nil {
		m.onChange(next)
	}
	m.syncInputs()
}

// rebuild recomputes the focusable rows and creates inputs for text-like items
func (m *SettingsFormModel) rebuild() {
	if m.inputs == nil {
		m.inputs = make(map[string]*textinput.Model)
	}

	var focusedID string
	focusedSection := -1
	if m.focus < len(m.rows) {
		row := m.rows[m.focus]
		focusedSection = row.section
		if !row.header() {
			focusedID = row.item.Base().ID
		}
	}

	m.rows = m.rows[:0]
	live := make(map[string]bool)
	for si, section := range m.schema.Sections {
		m.rows = append(m.rows, formRow{section: si})
		if !m.expanded[si] {
			continue
		}
		for _, item := range section.Items {
			if !hasControl(item) {
				continue
			}
			m.rows = append(m.rows, formRow{section: si, item: item})
			if usesTextInput(item) {
				id := item.Base().ID
				live[id] = true
				if _, ok := m.inputs[id]; !ok {
					m.inputs[id] = newControlInput(item)
				}
			}
		}
	}
	for id := range m.inputs {
		if !live[id] {
			delete(m.inputs, id)
		}
	}

	// Keep focus on the same control when it is still there
	m.focus = min(m.focus, max(len(m.rows)-1, 0))
	for i, row := range m.rows {
		if focusedID != "" && !row.header() && row.item.Base().ID == focusedID {
			m.focus = i
			break
		}
		if focusedID == "" && row.header() && row.section == focusedSection {
			m.focus = i
			break
		}
	}

	m.syncInputs()
	m.updateFocus()
}

// syncInputs shows each input's value, or the item's default when the values
// hold nothing usable for it
func (m *SettingsFormModel) syncInputs() {
	for id, in := range m.inputs {
		want, ok := m.values[id].(string)
		if !ok {
			want = m.defaultText(id)
		}
		if in.Value() != want {
			in.SetValue(want)
		}
	}
}

func (m *SettingsFormModel) defaultText(id string) string {
	for _, section := range m.schema.Sections {
		for _, item := range section.Items {
			if item.Base().ID != id {
				continue
			}
			if v, ok := models.DefaultValue(item); ok {
				s, _ := v.(string)
				return s
			}
			return ""
		}
	}
	return ""
}

func (m *SettingsFormModel) updateFocus() tea.Cmd {
	var cmd tea.Cmd
	for _, in := range m.inputs {
		in.Blur()
	}
	if in := m.focusedInput(); in != nil {
		cmd = in.Focus()
	}
	return cmd
}

func (m *SettingsFormModel) focusedRow() (formRow, bool) {
	if m.focus < 0 || m.focus >= len(m.rows) {
		return formRow{}, false
	}
	return m.rows[m.focus], true
}

func (m *SettingsFormModel) focusedInput() *textinput.Model {
	row, ok := m.focusedRow()
	if !ok || row.header() {
		return nil
	}
	return m.inputs[row.item.Base().ID]
}

func (m *SettingsFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *SettingsFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		if m.pickingID != "" {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
		return m, nil

	case SchemaReloadMsg:
		return m, m.reload(msg)

	case tea.KeyMsg:
		if m.pickingID != "" {
			return m, m.handlePickerKey(msg)
		}
		return m, m.handleKey(msg)
	}

	if m.pickingID != "" {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	if in := m.focusedInput(); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *SettingsFormModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if Shortcuts.Save.Matches(key) {
		return m.saveValues()
	}

	row, ok := m.focusedRow()
	input := m.focusedInput()

	switch key {
	case "esc":
		return func() tea.Msg { return closeFormMsg{} }
	case "q":
		if input == nil {
			return func() tea.Msg { return closeFormMsg{} }
		}
	case "up", "shift+tab":
		m.moveFocus(-1)
		return m.updateFocus()
	case "down", "tab":
		m.moveFocus(1)
		return m.updateFocus()
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}

	if !ok {
		return nil
	}

	if row.header() {
		switch key {
		case "enter", " ", "right", "left":
			open := !m.expanded[row.section]
			if key == "right" {
				open = true
			} else if key == "left" {
				open = false
			}
			m.expanded[row.section] = open
			m.rebuild()
		}
		return nil
	}

	id := row.item.Base().ID
	switch it := row.item.(type) {
	case models.ToggleItem:
		if key == "enter" || key == " " {
			def, _ := models.DefaultValue(it)
			m.edit(id, !m.values.Bool(id, def.(bool)))
		}
		return nil

	case models.SliderItem:
		_, _, step := it.SliderBounds()
		def, _ := models.DefaultValue(it)
		current := m.values.Float(id, def.(float64))
		switch key {
		case "left", "h", "-":
			m.edit(id, it.Clamp(current-step))
		case "right", "l", "+":
			m.edit(id, it.Clamp(current+step))
		case "home":
			lo, _, _ := it.SliderBounds()
			m.edit(id, lo)
		case "end":
			_, hi, _ := it.SliderBounds()
			m.edit(id, hi)
		}
		return nil

	case models.SelectItem:
		switch key {
		case "left", "h":
			m.edit(id, cycleOption(it, m.values.String(id, ""), -1))
		case "right", "l", "enter", " ":
			m.edit(id, cycleOption(it, m.values.String(id, ""), 1))
		}
		return nil

	case models.FilePickerItem:
		if key == "ctrl+o" {
			return m.openPicker(it)
		}
	}

	if input != nil {
		before := input.Value()
		var cmd tea.Cmd
		*input, cmd = input.Update(msg)
		if after := input.Value(); after != before {
			m.edit(id, after)
		}
		return cmd
	}
	return nil
}

func (m *SettingsFormModel) moveFocus(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.focus = (m.focus + delta + len(m.rows)) % len(m.rows)
}

// cycleOption steps through a select's options, wrapping at both ends. An
// unknown current value starts before the first option.
func cycleOption(it models.SelectItem, current string, delta int) string {
	if len(it.Options) == 0 {
		return current
	}
	i := -1
	for j, opt := range it.Options {
		if opt.Value == current {
			i = j
			break
		}
	}
	if i < 0 && delta < 0 {
		i = 0
	}
	n := len(it.Options)
	return it.Options[((i+delta)%n+n)%n].Value
}

func (m *SettingsFormModel) saveValues() tea.Cmd {
	if m.save == nil {
		return statusCmd("No values file to save to (use --values)")
	}
	if err := m.save(m.values.Clone()); err != nil {
		log.Error().Err(err).Msg("saving values failed")
		return statusCmd("Save failed: %v", err)
	}
	return statusCmd("Saved %d value(s)", len(m.values))
}

// reload swaps in a schema read from disk. Expansion is kept per section
// position; uncontrolled values keep what the user entered for ids that still
// exist and take defaults for new ones.
func (m *SettingsFormModel) reload(msg SchemaReloadMsg) tea.Cmd {
	if msg.Err != nil {
		m.reloadErr = msg.Err
		return statusCmd("Reload failed: %v", msg.Err)
	}
	m.reloadErr = nil

	expanded := make([]bool, len(msg.Schema.Sections))
	for i := range expanded {
		if i < len(m.expanded) {
			expanded[i] = m.expanded[i]
		} else {
			expanded[i] = m.opts.ExpandAll
		}
	}
	m.expanded = expanded

	if !m.controlled {
		values := models.DefaultValues(msg.Schema)
		for id := range values {
			if v, ok := m.values[id]; ok {
				values[id] = v
			}
		}
		m.values = values
	}
	m.schema = msg.Schema
	m.rebuild()
	return statusCmd("Schema reloaded")
}

func (m *SettingsFormModel) openPicker(it models.FilePickerItem) tea.Cmd {
	fp := filepicker.New()
	fp.AllowedTypes = allowedTypes(it.Accept)
	fp.CurrentDirectory = "."
	if current := m.values.String(it.ID, ""); current != "" {
		fp.CurrentDirectory = filepath.Dir(current)
	}
	m.picker = fp
	m.pickingID = it.ID
	return m.picker.Init()
}

func (m *SettingsFormModel) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		m.pickingID = ""
		return nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		id := m.pickingID
		m.pickingID = ""
		m.edit(id, path)
		return statusCmd("Selected %s", path)
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		return statusCmd("%s does not match the accepted types", filepath.Base(path))
	}
	return cmd
}

// allowedTypes maps an accept list such as ".png,.jpg" to picker extensions.
// Wildcards and MIME types allow everything.
func allowedTypes(accept string) []string {
	var types []string
	for _, part := range strings.Split(accept, ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == "*" || strings.Contains(part, "/") {
			return nil
		}
		if !strings.HasPrefix(part, ".") {
			part = "." + part
		}
		types = append(types, strings.ToLower(part))
	}
	return types
}
