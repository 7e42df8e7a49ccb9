package tui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/blueprint/pkg/models"
)

// Rows of the example schema with every section expanded:
// 0 General, 1 enabled, 2 greeting, 3 Appearance, 4 accent, 5 opacity,
// 6 theme, 7 wallpaper
func newTestForm() *SettingsFormModel {
	m := NewSettingsForm(models.ExampleSchema(), FormOptions{ExpandAll: true, WrapWidth: 60})
	m.SetSize(120, 100)
	return m
}

func focusOn(m *SettingsFormModel, row int) {
	m.focus = row
	m.updateFocus()
}

func TestForm_DefaultValues(t *testing.T) {
	m := newTestForm()

	assert.Equal(t, models.DefaultValues(models.ExampleSchema()), m.Values())
	assert.Len(t, m.rows, 8)
	assert.Equal(t, "Hello", m.inputs["greeting"].Value())
	assert.Equal(t, "#7d56f4", m.inputs["accent"].Value())
}

func TestForm_EveryKnownItemTypeHasAControl(t *testing.T) {
	m := newTestForm()

	for _, itemType := range models.AllItemTypes {
		t.Run(string(itemType), func(t *testing.T) {
			item, ok := models.NewItem(itemType, "probe")
			require.True(t, ok)
			assert.True(t, hasControl(item))

			if usesTextInput(item) {
				m.inputs["probe"] = newControlInput(item)
			}
			m.values["probe"], _ = models.DefaultValue(item)
			assert.NotEmpty(t, m.renderControl(item, false))
		})
	}
}

func TestForm_UnknownItemsRenderNothing(t *testing.T) {
	schema := models.ExampleSchema()
	schema.Sections[0].Items = append(schema.Sections[0].Items, models.UnknownItem{
		ItemBase: models.ItemBase{ID: "mystery", Name: "Mystery widget"},
		RawType:  "carousel",
	})
	m := NewSettingsForm(schema, FormOptions{ExpandAll: true})
	m.SetSize(120, 100)

	unknown := schema.Sections[0].Items[2]
	assert.False(t, hasControl(unknown))
	assert.Empty(t, m.renderControl(unknown, true))
	assert.Len(t, m.rows, 8)
	assert.NotContains(t, m.View(), "Mystery widget")
	assert.NotContains(t, m.Values(), "mystery")
}

func TestForm_Toggle(t *testing.T) {
	m := newTestForm()
	press(m, "down")
	require.Equal(t, 1, m.focus)

	press(m, "enter")
	assert.Equal(t, false, m.Values()["enabled"])
	assert.Contains(t, m.View(), "[ ] off")

	press(m, " ")
	assert.Equal(t, true, m.Values()["enabled"])
}

func TestForm_SliderStepsAndClamps(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want float64
	}{
		{"step up", []string{"right"}, 95},
		{"clamped at max", []string{"right", "right", "right"}, 100},
		{"step down", []string{"left", "left"}, 80},
		{"home", []string{"home"}, 0},
		{"end", []string{"end"}, 100},
		{"clamped at min", []string{"home", "left"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestForm()
			focusOn(m, 5)

			press(m, tt.keys...)

			assert.Equal(t, tt.want, m.Values()["opacity"])
		})
	}
}

func TestForm_SelectCycles(t *testing.T) {
	m := newTestForm()
	focusOn(m, 6)

	press(m, "right")
	assert.Equal(t, "light", m.Values()["theme"])
	assert.Contains(t, m.View(), "‹ Light ›")

	press(m, "right")
	assert.Equal(t, "dark", m.Values()["theme"])

	press(m, "left")
	assert.Equal(t, "light", m.Values()["theme"])
}

func TestCycleOption(t *testing.T) {
	item := models.SelectItem{Options: []models.SelectOption{
		{Value: "a", Label: "A"},
		{Value: "b", Label: "B"},
		{Value: "c", Label: "C"},
	}}

	tests := []struct {
		current string
		delta   int
		want    string
	}{
		{"a", 1, "b"},
		{"c", 1, "a"},
		{"a", -1, "c"},
		{"", 1, "a"},
		{"missing", -1, "c"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cycleOption(item, tt.current, tt.delta), "%q%+d", tt.current, tt.delta)
	}

	assert.Equal(t, "x", cycleOption(models.SelectItem{}, "x", 1))
}

func TestForm_TextInput(t *testing.T) {
	m := newTestForm()
	press(m, "down", "down")
	require.Equal(t, 2, m.focus)

	press(m, "!")
	assert.Equal(t, "Hello!", m.Values()["greeting"])

	// q types into a focused input instead of leaving
	press(m, "q")
	assert.Equal(t, "Hello!q", m.Values()["greeting"])
}

func TestForm_ColorInputShowsSwatch(t *testing.T) {
	m := newTestForm()
	focusOn(m, 4)

	press(m, "ctrl+u", "#00ff00")

	assert.Equal(t, "#00ff00", m.Values()["accent"])
	assert.Contains(t, m.View(), "███")
}

func TestForm_ControlledModeWaitsForHost(t *testing.T) {
	var reported []models.Values
	m := newTestForm()
	m = m.WithValues(models.Values{"enabled": true, "greeting": "Hi", "opacity": 10.0}).
		WithOnChange(func(v models.Values) { reported = append(reported, v) })
	assert.Equal(t, "Hi", m.inputs["greeting"].Value())

	focusOn(m, 1)
	press(m, "enter")

	require.Len(t, reported, 1)
	assert.Equal(t, false, reported[0]["enabled"])
	assert.Equal(t, "Hi", reported[0]["greeting"])
	assert.Equal(t, true, m.Values()["enabled"], "the form changes only after the host accepts")

	m.SetValues(reported[0])
	assert.Equal(t, false, m.Values()["enabled"])

	// Typed text snaps back until the host accepts it
	focusOn(m, 2)
	press(m, "!")
	require.Len(t, reported, 2)
	assert.Equal(t, "Hi!", reported[1]["greeting"])
	assert.Equal(t, "Hi", m.inputs["greeting"].Value())
}

func TestForm_ControlledModeWithAcceptingHost(t *testing.T) {
	m := newTestForm()
	m = m.WithValues(models.DefaultValues(models.ExampleSchema())).
		WithOnChange(func(v models.Values) { m.SetValues(v) })

	focusOn(m, 5)
	press(m, "left")

	assert.Equal(t, 85.0, m.Values()["opacity"])
}

func TestForm_UncontrolledStillReportsChanges(t *testing.T) {
	var last models.Values
	m := newTestForm().WithOnChange(func(v models.Values) { last = v })

	focusOn(m, 6)
	press(m, "right")

	require.NotNil(t, last)
	assert.Equal(t, "light", last["theme"])
	assert.Equal(t, "light", m.Values()["theme"])
}

func TestForm_Accordion(t *testing.T) {
	m := NewSettingsForm(models.ExampleSchema(), FormOptions{})
	m.SetSize(120, 100)

	// Only the first section starts open
	require.Len(t, m.rows, 4)
	assert.NotContains(t, m.View(), "Accent color")

	press(m, "down", "down", "down")
	require.True(t, m.rows[m.focus].header())
	press(m, "enter")

	assert.Len(t, m.rows, 8)
	assert.Contains(t, m.View(), "Accent color")
	assert.Equal(t, 3, m.focus, "focus stays on the header")

	focusOn(m, 0)
	press(m, "left")
	assert.Len(t, m.rows, 6)
	assert.Equal(t, 0, m.focus)
}

func TestForm_FocusWraps(t *testing.T) {
	m := newTestForm()

	press(m, "up")
	assert.Equal(t, 7, m.focus)
	press(m, "tab")
	assert.Equal(t, 0, m.focus)
}

func TestForm_DescriptionsWrap(t *testing.T) {
	m := NewSettingsForm(models.ExampleSchema(), FormOptions{ExpandAll: true, WrapWidth: 10})
	m.SetSize(120, 100)

	view := m.View()
	assert.Contains(t, view, "opacity in")
	assert.NotContains(t, view, "Window opacity in percent")
}

func TestForm_Save(t *testing.T) {
	m := newTestForm()
	assert.Contains(t, statusOf(press(m, "ctrl+s")), "No values file")

	var saved models.Values
	m.SetSave(func(v models.Values) error {
		saved = v
		return nil
	})
	assert.Equal(t, "Saved 6 value(s)", statusOf(press(m, "ctrl+s")))
	assert.Equal(t, m.Values(), saved)

	m.SetSave(func(models.Values) error { return errors.New("read-only") })
	assert.Equal(t, "Save failed: read-only", statusOf(press(m, "ctrl+s")))
}

func TestForm_Reload(t *testing.T) {
	m := newTestForm()
	focusOn(m, 5)
	press(m, "left")

	schema := models.ExampleSchema()
	schema.Sections = append(schema.Sections, models.Section{
		Title: "Advanced",
		Items: models.ItemList{models.ToggleItem{
			ItemBase:         models.ItemBase{ID: "debug", Name: "Debug"},
			DefaultParameter: models.Ptr(false),
		}},
	})

	_, cmd := m.Update(SchemaReloadMsg{Schema: schema})

	assert.Equal(t, "Schema reloaded", statusOf(cmd))
	assert.Equal(t, 85.0, m.Values()["opacity"], "edited values survive a reload")
	assert.Equal(t, false, m.Values()["debug"])
	assert.Len(t, m.rows, 10)
	assert.Equal(t, "opacity", m.rows[m.focus].item.Base().ID)
}

func TestForm_ControlledReloadShowsDefaultsForNewItems(t *testing.T) {
	m := newTestForm()
	m = m.WithValues(models.Values{"greeting": "Hi"}).WithOnChange(func(models.Values) {})

	schema := models.ExampleSchema()
	schema.Sections[0].Items = append(schema.Sections[0].Items, models.TextItem{
		ItemBase: models.ItemBase{ID: "nickname", Name: "Nickname"},
		Buttons:  []models.TextButton{{ID: "nickname_text", Text: "Sam"}},
	})
	m.Update(SchemaReloadMsg{Schema: schema})

	require.Contains(t, m.inputs, "nickname")
	assert.Equal(t, "Sam", m.inputs["nickname"].Value())
	assert.Equal(t, "Hi", m.inputs["greeting"].Value())
	assert.Equal(t, "#7d56f4", m.inputs["accent"].Value())
	assert.NotContains(t, m.Values(), "nickname", "the host still owns the values")
}

func TestForm_ReloadError(t *testing.T) {
	m := newTestForm()

	_, cmd := m.Update(SchemaReloadMsg{Err: errors.New("yaml: line 3")})

	assert.Contains(t, statusOf(cmd), "Reload failed")
	assert.Contains(t, m.View(), "reload failed: yaml: line 3")
	assert.Len(t, m.Schema().Sections, 2)
}

func TestForm_Close(t *testing.T) {
	m := newTestForm()

	cmd := press(m, "esc")
	require.NotNil(t, cmd)
	_, ok := cmd().(closeFormMsg)
	assert.True(t, ok)

	cmd = press(m, "q")
	require.NotNil(t, cmd)
	_, ok = cmd().(closeFormMsg)
	assert.True(t, ok)
}

func TestForm_FilePicker(t *testing.T) {
	m := newTestForm()
	focusOn(m, 7)

	press(m, "ctrl+o")
	assert.Equal(t, "wallpaper", m.pickingID)
	assert.Equal(t, []string{".png", ".jpg"}, m.picker.AllowedTypes)
	assert.Contains(t, m.View(), "Choose a file for wallpaper")

	press(m, "esc")
	assert.Empty(t, m.pickingID)

	// The path can also be typed
	press(m, "bg.png")
	assert.Equal(t, "bg.png", m.Values()["wallpaper"])
}

func TestAllowedTypes(t *testing.T) {
	tests := []struct {
		accept string
		want   []string
	}{
		{".png,.jpg", []string{".png", ".jpg"}},
		{" .PNG , svg ", []string{".png", ".svg"}},
		{"*", nil},
		{"", nil},
		{"image/*", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, allowedTypes(tt.accept), tt.accept)
	}
}
