package files

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/pluqqy/blueprint/pkg/blueprint"
	"github.com/pluqqy/blueprint/pkg/models"
)

// Format is the encoding of a document on disk
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Kind tells schema documents apart from graph documents
type Kind string

const (
	KindSchema Kind = "schema"
	KindGraph  Kind = "graph"
)

// GraphSuffix marks a graph document, e.g. settings.blueprint.yaml
const GraphSuffix = ".blueprint"

const DefaultSchemaFile = "settings.yaml"

// FormatOf infers the encoding from the file extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported file extension %q (must be .yaml, .yml, .json or .toml)", filepath.Ext(path))
	}
}

// KindOf reports whether path names a graph document (*.blueprint.yaml|json) or a
// schema document
func KindOf(path string) Kind {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if strings.HasSuffix(strings.ToLower(base), GraphSuffix) {
		return KindGraph
	}
	return KindSchema
}

// GraphPathFor returns the graph document path that sits next to a schema path
func GraphPathFor(schemaPath string) string {
	ext := filepath.Ext(schemaPath)
	return strings.TrimSuffix(schemaPath, ext) + GraphSuffix + ext
}

func decode(path string, data []byte, v any) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	switch format {
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	case FormatJSON:
		return json.Unmarshal(data, v)
	default:
		return fmt.Errorf("%s documents cannot be stored as %s", filepath.Base(path), format)
	}
}

func encode(path string, v any) ([]byte, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("%s documents cannot be stored as %s", filepath.Base(path), format)
	}
}

// ReadSchema loads a settings schema from a yaml or json file
func ReadSchema(path string) (*models.SettingsSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", path, err)
	}

	var schema models.SettingsSchema
	if err := decode(path, data, &schema); err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", path, err)
	}

	log.Debug().Str("path", path).Int("sections", len(schema.Sections)).Msg("schema loaded")
	return &schema, nil
}

// WriteSchema stores a settings schema, creating parent directories as needed
func WriteSchema(path string, schema models.SettingsSchema) error {
	data, err := encode(path, schema)
	if err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}
	if err := WriteFile(path, data); err != nil {
		return err
	}
	log.Debug().Str("path", path).Int("items", schema.ItemCount()).Msg("schema saved")
	return nil
}

// ReadGraph loads a graph document
func ReadGraph(path string) (*models.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph %s: %w", path, err)
	}

	var g models.Graph
	if err := decode(path, data, &g); err != nil {
		return nil, fmt.Errorf("failed to parse graph %s: %w", path, err)
	}

	log.Debug().Str("path", path).Int("nodes", len(g.Nodes)).Msg("graph loaded")
	return &g, nil
}

// WriteGraph stores a graph document
func WriteGraph(path string, g models.Graph) error {
	data, err := encode(path, g)
	if err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	if err := WriteFile(path, data); err != nil {
		return err
	}
	log.Debug().Str("path", path).Int("nodes", len(g.Nodes)).Msg("graph saved")
	return nil
}

// Document is a schema or graph file opened for editing. Either way it is edited
// as a graph.
type Document struct {
	Path  string
	Kind  Kind
	Graph models.Graph
}

// OpenDocument loads path as a graph. Schema documents are laid out with layout.
func OpenDocument(path string, layout blueprint.Layout) (*Document, error) {
	kind := KindOf(path)
	switch kind {
	case KindGraph:
		g, err := ReadGraph(path)
		if err != nil {
			return nil, err
		}
		return &Document{Path: path, Kind: kind, Graph: *g}, nil
	default:
		schema, err := ReadSchema(path)
		if err != nil {
			return nil, err
		}
		return &Document{
			Path:  path,
			Kind:  kind,
			Graph: blueprint.SchemaToGraph(*schema, nil, layout),
		}, nil
	}
}

// Save writes g back in the document's own kind. For schema documents it returns
// the ids of items that could not be stored because they are not attached to a
// section.
func (d *Document) Save(g models.Graph) (dropped []string, err error) {
	d.Graph = g
	if d.Kind == KindGraph {
		return nil, WriteGraph(d.Path, g)
	}

	for _, item := range blueprint.NewIndex(g).Detached() {
		dropped = append(dropped, item.ID)
	}
	if len(dropped) > 0 {
		log.Warn().Str("path", d.Path).Strs("items", dropped).Msg("detached items are not stored in schema documents")
	}
	return dropped, WriteSchema(d.Path, blueprint.GraphToSchema(g))
}

// Schema returns the document's current content as a schema
func (d *Document) Schema() models.SettingsSchema {
	return blueprint.GraphToSchema(d.Graph)
}

// WriteFile writes data, creating the parent directory first
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
