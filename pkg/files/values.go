package files

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/pluqqy/blueprint/pkg/models"
)

// ReadValues loads a flat values map from yaml, json or toml
func ReadValues(path string) (models.Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read values %s: %w", path, err)
	}

	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	raw := map[string]any{}
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatJSON:
		err = json.Unmarshal(data, &raw)
	case FormatTOML:
		_, err = toml.Decode(string(data), &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse values %s: %w", path, err)
	}

	return normalizeValues(raw), nil
}

// WriteValues stores a values map in the format given by the extension
func WriteValues(path string, values models.Values) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(map[string]any(values))
	case FormatJSON:
		data, err = json.MarshalIndent(values, "", "  ")
		data = append(data, '\n')
	case FormatTOML:
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(map[string]any(values))
		data = buf.Bytes()
	}
	if err != nil {
		return fmt.Errorf("failed to encode values: %w", err)
	}

	return WriteFile(path, data)
}

// normalizeValues turns every top-level number into float64, the one numeric
// type the form works with. Tables and lists are kept as decoded.
func normalizeValues(raw map[string]any) models.Values {
	values := make(models.Values, len(raw))
	for k, v := range raw {
		switch n := v.(type) {
		case bool, string, float64:
			values[k] = n
		case int:
			values[k] = float64(n)
		case int64:
			values[k] = float64(n)
		case uint64:
			values[k] = float64(n)
		case float32:
			values[k] = float64(n)
		default:
			values[k] = v
		}
	}
	return values
}
