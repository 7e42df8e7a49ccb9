package models

import "math"

// DefaultColor is used by color pickers without a configured default
const DefaultColor = "#ffffff"

// Values maps item ids to their current value (bool, float64 or string).
// It lives only at runtime and is never part of the schema.
type Values map[string]any

// Clone returns a shallow copy of the map
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// IsScalar reports whether v is one of the value types an item can hold
func IsScalar(v any) bool {
	switch v.(type) {
	case bool, float64, string:
		return true
	}
	return false
}

// With returns a copy of v with id set to value
func (v Values) With(id string, value any) Values {
	out := v.Clone()
	out[id] = value
	return out
}

// Bool reads a boolean value, falling back to def
func (v Values) Bool(id string, def bool) bool {
	if b, ok := v[id].(bool); ok {
		return b
	}
	return def
}

// Float reads a numeric value, falling back to def
func (v Values) Float(id string, def float64) float64 {
	if f := asFloat(v[id]); f != nil {
		return *f
	}
	return def
}

// String reads a string value, falling back to def
func (v Values) String(id string, def string) string {
	if s, ok := v[id].(string); ok {
		return s
	}
	return def
}

// DefaultValue resolves the initial value of an item. ok is false for kinds that
// carry no value (unknown items).
func DefaultValue(item Item) (value any, ok bool) {
	switch it := item.(type) {
	case TextItem:
		if len(it.Buttons) > 0 {
			first := it.Buttons[0]
			if first.DefaultParameter != nil {
				return *first.DefaultParameter, true
			}
			return first.Text, true
		}
		return "", true
	case ToggleItem:
		if it.DefaultParameter != nil {
			return *it.DefaultParameter, true
		}
		if it.Bool != nil {
			return *it.Bool, true
		}
		return true, true
	case SliderItem:
		switch {
		case it.DefaultParameter != nil:
			return *it.DefaultParameter, true
		case it.Value != nil:
			return *it.Value, true
		case it.Min != nil:
			return *it.Min, true
		default:
			return 0.0, true
		}
	case FilePickerItem:
		return "", true
	case ColorPickerItem:
		if it.DefaultParameter != nil {
			return *it.DefaultParameter, true
		}
		return DefaultColor, true
	case SelectItem:
		if it.DefaultParameter != nil {
			return *it.DefaultParameter, true
		}
		return "", true
	default:
		return nil, false
	}
}

// DefaultValues seeds a values map from every item of the schema
func DefaultValues(schema SettingsSchema) Values {
	values := make(Values, schema.ItemCount())
	for _, section := range schema.Sections {
		for _, item := range section.Items {
			if v, ok := DefaultValue(item); ok {
				values[item.Base().ID] = v
			}
		}
	}
	return values
}

// SliderBounds returns min, max and step with the editor fallbacks (0, 100, 1)
func (it SliderItem) SliderBounds() (lo, hi, step float64) {
	lo, hi, step = 0, 100, 1
	if it.Min != nil {
		lo = *it.Min
	}
	if it.Max != nil {
		hi = *it.Max
	}
	if it.Step != nil && *it.Step > 0 {
		step = *it.Step
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi, step
}

// Clamp limits v to the slider's range
func (it SliderItem) Clamp(v float64) float64 {
	lo, hi, _ := it.SliderBounds()
	return math.Max(lo, math.Min(hi, v))
}
