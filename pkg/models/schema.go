package models

// NodeType tags a persisted node layout
type NodeType string

const (
	NodeTypeSection NodeType = "section"
	NodeTypeItem    NodeType = "item"
)

// Position is a free-form canvas coordinate
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns p shifted by dx, dy
func (p Position) Add(dx, dy float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// NodeLayout is the persisted visual position of a graph node
type NodeLayout struct {
	ID        string   `json:"id" yaml:"id"`
	Type      NodeType `json:"type" yaml:"type"`
	Position  Position `json:"position" yaml:"position"`
	SectionID string   `json:"sectionId,omitempty" yaml:"sectionId,omitempty"`
}

// Section is a titled, ordered group of items
type Section struct {
	Title string   `json:"title" yaml:"title"`
	Items ItemList `json:"items" yaml:"items"`
}

// SettingsSchema is the root settings document. Section order is display order.
type SettingsSchema struct {
	Sections []Section    `json:"sections" yaml:"sections"`
	Nodes    []NodeLayout `json:"nodes,omitempty" yaml:"nodes,omitempty"`
}

// ItemCount returns the number of items across all sections
func (s SettingsSchema) ItemCount() int {
	count := 0
	for _, section := range s.Sections {
		count += len(section.Items)
	}
	return count
}

// FindItem looks an item up by id across all sections
func (s SettingsSchema) FindItem(id string) (Item, bool) {
	for _, section := range s.Sections {
		for _, item := range section.Items {
			if item.Base().ID == id {
				return item, true
			}
		}
	}
	return nil, false
}

// Layout returns the persisted layout for a node id
func (s SettingsSchema) Layout(id string) (NodeLayout, bool) {
	for _, layout := range s.Nodes {
		if layout.ID == id {
			return layout, true
		}
	}
	return NodeLayout{}, false
}

// ExampleSchema returns a small starter schema used by `blueprint init`
func ExampleSchema() SettingsSchema {
	return SettingsSchema{
		Sections: []Section{
			{
				Title: "General",
				Items: ItemList{
					ToggleItem{
						ItemBase:         ItemBase{ID: "enabled", Name: "Enabled", Description: "Turn the feature on or off"},
						DefaultParameter: Ptr(true),
					},
					TextItem{
						ItemBase: ItemBase{ID: "greeting", Name: "Greeting"},
						Buttons:  []TextButton{{ID: "greeting_text", Name: "Text", Text: "Hello"}},
					},
				},
			},
			{
				Title: "Appearance",
				Items: ItemList{
					ColorPickerItem{
						ItemBase:         ItemBase{ID: "accent", Name: "Accent color"},
						DefaultParameter: Ptr("#7d56f4"),
					},
					SliderItem{
						ItemBase:         ItemBase{ID: "opacity", Name: "Opacity", Description: "Window opacity in percent"},
						Min:              Ptr(0.0),
						Max:              Ptr(100.0),
						Step:             Ptr(5.0),
						DefaultParameter: Ptr(90.0),
					},
					SelectItem{
						ItemBase: ItemBase{ID: "theme", Name: "Theme"},
						Options: []SelectOption{
							{Value: "dark", Label: "Dark"},
							{Value: "light", Label: "Light"},
						},
						DefaultParameter: Ptr("dark"),
					},
					FilePickerItem{
						ItemBase: ItemBase{ID: "wallpaper", Name: "Wallpaper"},
						Accept:   ".png,.jpg",
					},
				},
			},
		},
	}
}
