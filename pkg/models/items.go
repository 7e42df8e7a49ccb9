package models

// ItemType is the wire discriminant of an Item
type ItemType string

const (
	ItemTypeText        ItemType = "text"
	ItemTypeToggle      ItemType = "button"
	ItemTypeSlider      ItemType = "slider"
	ItemTypeFilePicker  ItemType = "file_picker"
	ItemTypeColorPicker ItemType = "color_picker"
	ItemTypeSelect      ItemType = "select"
)

// AllItemTypes lists every known item kind in menu order.
// Anything that switches over item kinds is tested against this list.
var AllItemTypes = []ItemType{
	ItemTypeText,
	ItemTypeToggle,
	ItemTypeSlider,
	ItemTypeFilePicker,
	ItemTypeColorPicker,
	ItemTypeSelect,
}

// Label returns a human readable name for the item type
func (t ItemType) Label() string {
	switch t {
	case ItemTypeText:
		return "Text"
	case ItemTypeToggle:
		return "Toggle"
	case ItemTypeSlider:
		return "Slider"
	case ItemTypeFilePicker:
		return "File picker"
	case ItemTypeColorPicker:
		return "Color picker"
	case ItemTypeSelect:
		return "Select"
	default:
		return string(t)
	}
}

// Known reports whether t is one of AllItemTypes
func (t ItemType) Known() bool {
	for _, known := range AllItemTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Item is a single typed entry of a section. The set of implementations is closed:
// TextItem, ToggleItem, SliderItem, FilePickerItem, ColorPickerItem, SelectItem and
// UnknownItem for kinds this version does not understand.
type Item interface {
	Type() ItemType
	Base() ItemBase
	// WithBase returns a copy of the item with its common fields replaced.
	WithBase(ItemBase) Item
	isItem()
}

// ItemBase holds the fields shared by all item kinds
type ItemBase struct {
	ID          string
	Name        string
	Description string
	Order       *int
}

// OrderValue returns the sort key of the item, treating a missing order as 0
func (b ItemBase) OrderValue() int {
	if b.Order == nil {
		return 0
	}
	return *b.Order
}

type TextButton struct {
	ID               string  `json:"id" yaml:"id"`
	Name             string  `json:"name,omitempty" yaml:"name,omitempty"`
	Text             string  `json:"text,omitempty" yaml:"text,omitempty"`
	DefaultParameter *string `json:"defaultParameter,omitempty" yaml:"defaultParameter,omitempty"`
}

type SelectOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

type TextItem struct {
	ItemBase
	Buttons []TextButton
}

type ToggleItem struct {
	ItemBase
	Bool             *bool
	DefaultParameter *bool
}

type SliderItem struct {
	ItemBase
	Min              *float64
	Max              *float64
	Step             *float64
	Value            *float64
	DefaultParameter *float64
}

type FilePickerItem struct {
	ItemBase
	Accept           string
	DefaultParameter *string
}

type ColorPickerItem struct {
	ItemBase
	DefaultParameter *string
}

type SelectItem struct {
	ItemBase
	Options          []SelectOption
	DefaultParameter *string
}

// UnknownItem keeps the common fields of an item whose type is not recognized so it
// survives a load/save cycle. Renderers skip it.
type UnknownItem struct {
	ItemBase
	RawType string
}

func (TextItem) Type() ItemType        { return ItemTypeText }
func (ToggleItem) Type() ItemType      { return ItemTypeToggle }
func (SliderItem) Type() ItemType      { return ItemTypeSlider }
func (FilePickerItem) Type() ItemType  { return ItemTypeFilePicker }
func (ColorPickerItem) Type() ItemType { return ItemTypeColorPicker }
func (SelectItem) Type() ItemType      { return ItemTypeSelect }
func (u UnknownItem) Type() ItemType   { return ItemType(u.RawType) }

func (i TextItem) Base() ItemBase        { return i.ItemBase }
func (i ToggleItem) Base() ItemBase      { return i.ItemBase }
func (i SliderItem) Base() ItemBase      { return i.ItemBase }
func (i FilePickerItem) Base() ItemBase  { return i.ItemBase }
func (i ColorPickerItem) Base() ItemBase { return i.ItemBase }
func (i SelectItem) Base() ItemBase      { return i.ItemBase }
func (i UnknownItem) Base() ItemBase     { return i.ItemBase }

func (i TextItem) WithBase(b ItemBase) Item        { i.ItemBase = b; return i }
func (i ToggleItem) WithBase(b ItemBase) Item      { i.ItemBase = b; return i }
func (i SliderItem) WithBase(b ItemBase) Item      { i.ItemBase = b; return i }
func (i FilePickerItem) WithBase(b ItemBase) Item  { i.ItemBase = b; return i }
func (i ColorPickerItem) WithBase(b ItemBase) Item { i.ItemBase = b; return i }
func (i SelectItem) WithBase(b ItemBase) Item      { i.ItemBase = b; return i }
func (i UnknownItem) WithBase(b ItemBase) Item     { i.ItemBase = b; return i }

func (TextItem) isItem()        {}
func (ToggleItem) isItem()      {}
func (SliderItem) isItem()      {}
func (FilePickerItem) isItem()  {}
func (ColorPickerItem) isItem() {}
func (SelectItem) isItem()      {}
func (UnknownItem) isItem()     {}

// WithID returns a copy of item carrying the given id
func WithID(item Item, id string) Item {
	base := item.Base()
	base.ID = id
	return item.WithBase(base)
}

// NewItem builds an item of the given type with editor defaults.
// ok is false for unknown types.
func NewItem(t ItemType, id string) (item Item, ok bool) {
	base := ItemBase{ID: id, Name: "New " + t.Label()}
	switch t {
	case ItemTypeText:
		return TextItem{
			ItemBase: base,
			Buttons:  []TextButton{{ID: id + "_text", Name: "Text", Text: ""}},
		}, true
	case ItemTypeToggle:
		return ToggleItem{ItemBase: base, DefaultParameter: Ptr(true)}, true
	case ItemTypeSlider:
		return SliderItem{
			ItemBase:         base,
			Min:              Ptr(0.0),
			Max:              Ptr(100.0),
			Step:             Ptr(1.0),
			DefaultParameter: Ptr(50.0),
		}, true
	case ItemTypeFilePicker:
		return FilePickerItem{ItemBase: base, Accept: "*"}, true
	case ItemTypeColorPicker:
		return ColorPickerItem{ItemBase: base, DefaultParameter: Ptr(DefaultColor)}, true
	case ItemTypeSelect:
		return SelectItem{
			ItemBase: base,
			Options: []SelectOption{
				{Value: "option_1", Label: "Option 1"},
				{Value: "option_2", Label: "Option 2"},
			},
			DefaultParameter: Ptr("option_1"),
		}, true
	default:
		return nil, false
	}
}

// CloneItem returns a deep copy of item so callers can change it without aliasing
// slices or pointers of the original.
func CloneItem(item Item) Item {
	base := item.Base()
	base.Order = clonePtr(base.Order)

	switch it := item.(type) {
	case TextItem:
		it.ItemBase = base
		if it.Buttons != nil {
			buttons := make([]TextButton, len(it.Buttons))
			for i, b := range it.Buttons {
				b.DefaultParameter = clonePtr(b.DefaultParameter)
				buttons[i] = b
			}
			it.Buttons = buttons
		}
		return it
	case ToggleItem:
		it.ItemBase = base
		it.Bool = clonePtr(it.Bool)
		it.DefaultParameter = clonePtr(it.DefaultParameter)
		return it
	case SliderItem:
		it.ItemBase = base
		it.Min = clonePtr(it.Min)
		it.Max = clonePtr(it.Max)
		it.Step = clonePtr(it.Step)
		it.Value = clonePtr(it.Value)
		it.DefaultParameter = clonePtr(it.DefaultParameter)
		return it
	case FilePickerItem:
		it.ItemBase = base
		it.DefaultParameter = clonePtr(it.DefaultParameter)
		return it
	case ColorPickerItem:
		it.ItemBase = base
		it.DefaultParameter = clonePtr(it.DefaultParameter)
		return it
	case SelectItem:
		it.ItemBase = base
		if it.Options != nil {
			it.Options = append([]SelectOption(nil), it.Options...)
		}
		it.DefaultParameter = clonePtr(it.DefaultParameter)
		return it
	case UnknownItem:
		it.ItemBase = base
		return it
	}
	return item
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
