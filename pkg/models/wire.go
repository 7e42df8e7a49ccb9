package models

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// itemWire is the flat on-disk shape shared by every item kind. defaultParameter is
// typed per kind, so it is decoded loosely and converted afterwards.
type itemWire struct {
	Type             string         `json:"type" yaml:"type"`
	ID               string         `json:"id" yaml:"id"`
	Name             string         `json:"name" yaml:"name"`
	Description      string         `json:"description,omitempty" yaml:"description,omitempty"`
	Order            *int           `json:"order,omitempty" yaml:"order,omitempty"`
	Buttons          []TextButton   `json:"buttons,omitempty" yaml:"buttons,omitempty"`
	Bool             *bool          `json:"bool,omitempty" yaml:"bool,omitempty"`
	Min              *float64       `json:"min,omitempty" yaml:"min,omitempty"`
	Max              *float64       `json:"max,omitempty" yaml:"max,omitempty"`
	Step             *float64       `json:"step,omitempty" yaml:"step,omitempty"`
	Value            *float64       `json:"value,omitempty" yaml:"value,omitempty"`
	Accept           string         `json:"accept,omitempty" yaml:"accept,omitempty"`
	Options          []SelectOption `json:"options,omitempty" yaml:"options,omitempty"`
	DefaultParameter any            `json:"defaultParameter,omitempty" yaml:"defaultParameter,omitempty"`
}

func toWire(item Item) itemWire {
	base := item.Base()
	w := itemWire{
		Type:        string(item.Type()),
		ID:          base.ID,
		Name:        base.Name,
		Description: base.Description,
		Order:       base.Order,
	}

	switch it := item.(type) {
	case TextItem:
		w.Buttons = it.Buttons
	case ToggleItem:
		w.Bool = it.Bool
		if it.DefaultParameter != nil {
			w.DefaultParameter = *it.DefaultParameter
		}
	case SliderItem:
		w.Min, w.Max, w.Step, w.Value = it.Min, it.Max, it.Step, it.Value
		if it.DefaultParameter != nil {
			w.DefaultParameter = *it.DefaultParameter
		}
	case FilePickerItem:
		w.Accept = it.Accept
		if it.DefaultParameter != nil {
			w.DefaultParameter = *it.DefaultParameter
		}
	case ColorPickerItem:
		if it.DefaultParameter != nil {
			w.DefaultParameter = *it.DefaultParameter
		}
	case SelectItem:
		w.Options = it.Options
		if it.DefaultParameter != nil {
			w.DefaultParameter = *it.DefaultParameter
		}
	case UnknownItem:
		w.Type = it.RawType
	}
	return w
}

func fromWire(w itemWire) Item {
	base := ItemBase{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Order:       w.Order,
	}

	switch ItemType(w.Type) {
	case ItemTypeText:
		return TextItem{ItemBase: base, Buttons: w.Buttons}
	case ItemTypeToggle:
		return ToggleItem{ItemBase: base, Bool: w.Bool, DefaultParameter: asBool(w.DefaultParameter)}
	case ItemTypeSlider:
		return SliderItem{
			ItemBase:         base,
			Min:              w.Min,
			Max:              w.Max,
			Step:             w.Step,
			Value:            w.Value,
			DefaultParameter: asFloat(w.DefaultParameter),
		}
	case ItemTypeFilePicker:
		return FilePickerItem{ItemBase: base, Accept: w.Accept, DefaultParameter: asString(w.DefaultParameter)}
	case ItemTypeColorPicker:
		return ColorPickerItem{ItemBase: base, DefaultParameter: asString(w.DefaultParameter)}
	case ItemTypeSelect:
		return SelectItem{ItemBase: base, Options: w.Options, DefaultParameter: asString(w.DefaultParameter)}
	default:
		return UnknownItem{ItemBase: base, RawType: w.Type}
	}
}

// asBool, asFloat and asString coerce a loosely decoded default. Values of the wrong
// shape are dropped so the per-type default applies instead.
func asBool(v any) *bool {
	switch b := v.(type) {
	case bool:
		return &b
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return &parsed
		}
	}
	return nil
}

func asFloat(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case float32:
		f := float64(n)
		return &f
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case uint64:
		f := float64(n)
		return &f
	case string:
		if parsed, err := strconv.ParseFloat(n, 64); err == nil {
			return &parsed
		}
	}
	return nil
}

func asString(v any) *string {
	switch s := v.(type) {
	case nil:
		return nil
	case string:
		return &s
	default:
		str := fmt.Sprint(s)
		return &str
	}
}

// ItemList is an ordered list of items that knows how to encode its tagged union
type ItemList []Item

func (l ItemList) wires() []itemWire {
	wires := make([]itemWire, len(l))
	for i, item := range l {
		wires[i] = toWire(item)
	}
	return wires
}

func itemsFromWires(wires []itemWire) ItemList {
	items := make(ItemList, len(wires))
	for i, w := range wires {
		items[i] = fromWire(w)
	}
	return items
}

func (l ItemList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.wires())
}

func (l *ItemList) UnmarshalJSON(data []byte) error {
	var wires []itemWire
	if err := json.Unmarshal(data, &wires); err != nil {
		return err
	}
	*l = itemsFromWires(wires)
	return nil
}

func (l ItemList) MarshalYAML() (interface{}, error) {
	return l.wires(), nil
}

func (l *ItemList) UnmarshalYAML(value *yaml.Node) error {
	var wires []itemWire
	if err := value.Decode(&wires); err != nil {
		return err
	}
	*l = itemsFromWires(wires)
	return nil
}

// nodeWire is the on-disk shape of a graph node
type nodeWire struct {
	ID        string    `json:"id" yaml:"id"`
	Type      NodeType  `json:"type" yaml:"type"`
	Position  Position  `json:"position" yaml:"position"`
	Title     string    `json:"title,omitempty" yaml:"title,omitempty"`
	SectionID string    `json:"sectionId,omitempty" yaml:"sectionId,omitempty"`
	Item      *itemWire `json:"item,omitempty" yaml:"item,omitempty"`
}

type graphWire struct {
	Nodes []nodeWire `json:"nodes" yaml:"nodes"`
}

func (g Graph) wire() graphWire {
	gw := graphWire{Nodes: make([]nodeWire, 0, len(g.Nodes))}
	for _, n := range g.Nodes {
		switch node := n.(type) {
		case SectionNode:
			gw.Nodes = append(gw.Nodes, nodeWire{
				ID:       node.ID,
				Type:     NodeTypeSection,
				Position: node.Position,
				Title:    node.Title,
			})
		case ItemNode:
			var item *itemWire
			if node.Item != nil {
				w := toWire(node.Item)
				item = &w
			}
			gw.Nodes = append(gw.Nodes, nodeWire{
				ID:        node.ID,
				Type:      NodeTypeItem,
				Position:  node.Position,
				SectionID: node.SectionID,
				Item:      item,
			})
		}
	}
	return gw
}

func graphFromWire(gw graphWire) (Graph, error) {
	g := Graph{Nodes: make([]Node, 0, len(gw.Nodes))}
	for _, nw := range gw.Nodes {
		switch nw.Type {
		case NodeTypeSection:
			g.Nodes = append(g.Nodes, SectionNode{ID: nw.ID, Title: nw.Title, Position: nw.Position})
		case NodeTypeItem:
			var item Item
			if nw.Item != nil {
				item = fromWire(*nw.Item)
			} else {
				item = ToggleItem{ItemBase: ItemBase{ID: nw.ID}}
			}
			if item.Base().ID == "" {
				item = WithID(item, nw.ID)
			}
			g.Nodes = append(g.Nodes, ItemNode{
				ID:        nw.ID,
				SectionID: nw.SectionID,
				Item:      item,
				Position:  nw.Position,
			})
		default:
			return Graph{}, fmt.Errorf("node %q has unknown type %q", nw.ID, nw.Type)
		}
	}
	return g, nil
}

func (g Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.wire())
}

func (g *Graph) UnmarshalJSON(data []byte) error {
	var gw graphWire
	if err := json.Unmarshal(data, &gw); err != nil {
		return err
	}
	decoded, err := graphFromWire(gw)
	if err != nil {
		return err
	}
	*g = decoded
	return nil
}

func (g Graph) MarshalYAML() (interface{}, error) {
	return g.wire(), nil
}

func (g *Graph) UnmarshalYAML(value *yaml.Node) error {
	var gw graphWire
	if err := value.Decode(&gw); err != nil {
		return err
	}
	decoded, err := graphFromWire(gw)
	if err != nil {
		return err
	}
	*g = decoded
	return nil
}
