// Package examples holds starter schemas for blueprint init
package examples

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pluqqy/blueprint/pkg/models"
)

// Example is a named starter schema
type Example struct {
	Name        string
	Description string
	Schema      func() models.SettingsSchema
}

var registry = map[string]Example{
	"general": {
		Name:        "general",
		Description: "One item of every kind in two sections",
		Schema:      models.ExampleSchema,
	},
	"editor": {
		Name:        "editor",
		Description: "Text editor preferences",
		Schema:      editorSchema,
	},
	"web": {
		Name:        "web",
		Description: "Site branding and layout",
		Schema:      webSchema,
	},
	"ai": {
		Name:        "ai",
		Description: "Assistant model and sampling options",
		Schema:      aiSchema,
	},
}

// DefaultName is the example init uses when none is named
const DefaultName = "general"

// Get returns the named example
func Get(name string) (Example, error) {
	ex, ok := registry[strings.ToLower(name)]
	if !ok {
		return Example{}, fmt.Errorf("unknown example %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return ex, nil
}

// Names lists the available examples alphabetically
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func editorSchema() models.SettingsSchema {
	return models.SettingsSchema{Sections: []models.Section{
		{
			Title: "Text",
			Items: models.ItemList{
				models.SliderItem{
					ItemBase:         models.ItemBase{ID: "font_size", Name: "Font size", Description: "Size of editor text in points"},
					Min:              models.Ptr(8.0),
					Max:              models.Ptr(32.0),
					Step:             models.Ptr(1.0),
					DefaultParameter: models.Ptr(14.0),
				},
				models.FilePickerItem{
					ItemBase: models.ItemBase{ID: "font_file", Name: "Custom font"},
					Accept:   ".ttf,.otf",
				},
				models.ToggleItem{
					ItemBase:         models.ItemBase{ID: "word_wrap", Name: "Word wrap"},
					DefaultParameter: models.Ptr(false),
				},
			},
		},
		{
			Title: "Indentation",
			Items: models.ItemList{
				models.SelectItem{
					ItemBase: models.ItemBase{ID: "indent_style", Name: "Indent with"},
					Options: []models.SelectOption{
						{Value: "spaces", Label: "Spaces"},
						{Value: "tabs", Label: "Tabs"},
					},
					DefaultParameter: models.Ptr("spaces"),
				},
				models.SliderItem{
					ItemBase:         models.ItemBase{ID: "tab_width", Name: "Tab width"},
					Min:              models.Ptr(2.0),
					Max:              models.Ptr(8.0),
					Step:             models.Ptr(1.0),
					DefaultParameter: models.Ptr(4.0),
				},
			},
		},
	}}
}

func webSchema() models.SettingsSchema {
	return models.SettingsSchema{Sections: []models.Section{
		{
			Title: "Branding",
			Items: models.ItemList{
				models.TextItem{
					ItemBase: models.ItemBase{ID: "site_title", Name: "Site title"},
					Buttons:  []models.TextButton{{ID: "site_title_text", Name: "Title", Text: "My site"}},
				},
				models.FilePickerItem{
					ItemBase: models.ItemBase{ID: "logo", Name: "Logo", Description: "Shown in the header"},
					Accept:   ".svg,.png",
				},
				models.ColorPickerItem{
					ItemBase:         models.ItemBase{ID: "primary_color", Name: "Primary color"},
					DefaultParameter: models.Ptr("#2563eb"),
				},
			},
		},
		{
			Title: "Layout",
			Items: models.ItemList{
				models.SelectItem{
					ItemBase: models.ItemBase{ID: "layout", Name: "Page layout"},
					Options: []models.SelectOption{
						{Value: "centered", Label: "Centered"},
						{Value: "full", Label: "Full width"},
						{Value: "sidebar", Label: "With sidebar"},
					},
					DefaultParameter: models.Ptr("centered"),
				},
				models.ToggleItem{
					ItemBase:         models.ItemBase{ID: "dark_mode", Name: "Dark mode", Description: "Follow the visitor's system preference"},
					DefaultParameter: models.Ptr(true),
				},
			},
		},
	}}
}

func aiSchema() models.SettingsSchema {
	return models.SettingsSchema{Sections: []models.Section{
		{
			Title: "Model",
			Items: models.ItemList{
				models.SelectItem{
					ItemBase: models.ItemBase{ID: "model", Name: "Model"},
					Options: []models.SelectOption{
						{Value: "small", Label: "Small (fast)"},
						{Value: "large", Label: "Large (accurate)"},
					},
					DefaultParameter: models.Ptr("small"),
				},
				models.TextItem{
					ItemBase: models.ItemBase{ID: "system_prompt", Name: "System prompt", Description: "Sent before every conversation"},
					Buttons:  []models.TextButton{{ID: "system_prompt_text", Name: "Prompt", Text: "You are a helpful assistant."}},
				},
			},
		},
		{
			Title: "Sampling",
			Items: models.ItemList{
				models.SliderItem{
					ItemBase:         models.ItemBase{ID: "temperature", Name: "Temperature"},
					Min:              models.Ptr(0.0),
					Max:              models.Ptr(2.0),
					Step:             models.Ptr(0.1),
					DefaultParameter: models.Ptr(0.7),
				},
				models.SliderItem{
					ItemBase:         models.ItemBase{ID: "max_tokens", Name: "Max tokens"},
					Min:              models.Ptr(256.0),
					Max:              models.Ptr(8192.0),
					Step:             models.Ptr(256.0),
					DefaultParameter: models.Ptr(1024.0),
				},
				models.ToggleItem{
					ItemBase:         models.ItemBase{ID: "stream", Name: "Stream responses"},
					DefaultParameter: models.Ptr(true),
				},
			},
		},
	}}
}
