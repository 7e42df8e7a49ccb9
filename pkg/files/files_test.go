package files

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/blueprint/pkg/blueprint"
	"github.com/pluqqy/blueprint/pkg/models"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"settings.yaml", KindSchema},
		{"settings.json", KindSchema},
		{"dir/settings.blueprint.yaml", KindGraph},
		{"settings.Blueprint.JSON", KindGraph},
		{"blueprint.yaml", KindSchema},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.path))
		})
	}
}

func TestFormatOf(t *testing.T) {
	f, err := FormatOf("a.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatOf("a.txt")
	assert.Error(t, err)
}

func TestGraphPathFor(t *testing.T) {
	assert.Equal(t, "conf/settings.blueprint.json", GraphPathFor("conf/settings.json"))
}

func TestReadWriteSchema(t *testing.T) {
	for _, name := range []string{"settings.yaml", "settings.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			schema := models.ExampleSchema()

			require.NoError(t, WriteSchema(path, schema))
			loaded, err := ReadSchema(path)
			require.NoError(t, err)

			require.Len(t, loaded.Sections, len(schema.Sections))
			for i, section := range schema.Sections {
				assert.Equal(t, section.Title, loaded.Sections[i].Title)
				require.Len(t, loaded.Sections[i].Items, len(section.Items))
				for j, item := range section.Items {
					assert.Equal(t, item.Type(), loaded.Sections[i].Items[j].Type())
					assert.Equal(t, item.Base().ID, loaded.Sections[i].Items[j].Base().ID)
				}
			}
			assert.Equal(t, models.DefaultValues(schema), models.DefaultValues(*loaded))
		})
	}
}

func TestReadSchema_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadSchema(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read schema")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))
	_, err = ReadSchema(bad)
	assert.ErrorContains(t, err, "failed to parse schema")

	toml := filepath.Join(dir, "schema.toml")
	require.NoError(t, os.WriteFile(toml, []byte(""), 0644))
	_, err = ReadSchema(toml)
	assert.Error(t, err)
}

func TestReadWriteGraph_KeepsDetachedItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.blueprint.yaml")
	g := models.Graph{Nodes: []models.Node{
		models.SectionNode{ID: "section_0", Title: "General", Position: models.Position{X: 50, Y: 50}},
		models.ItemNode{ID: "free", Item: models.ToggleItem{ItemBase: models.ItemBase{ID: "free", Name: "Free"}}, Position: models.Position{X: 400, Y: 10}},
	}}

	require.NoError(t, WriteGraph(path, g))
	loaded, err := ReadGraph(path)
	require.NoError(t, err)

	node, ok := loaded.ItemNode("free")
	require.True(t, ok)
	assert.Empty(t, node.SectionID)
	assert.Equal(t, models.Position{X: 400, Y: 10}, node.Position)
	assert.Equal(t, "Free", node.Item.Base().Name)
}

func TestDocument_SchemaSaveReportsDetached(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, WriteSchema(path, models.ExampleSchema()))

	doc, err := OpenDocument(path, blueprint.DefaultLayout())
	require.NoError(t, err)
	assert.Equal(t, KindSchema, doc.Kind)

	editor := blueprint.NewEditor(blueprint.NewCounterGenerator(), blueprint.DefaultLayout())
	g, err := editor.Detach(doc.Graph, "enabled")
	require.NoError(t, err)

	dropped, err := doc.Save(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"enabled"}, dropped)

	reloaded, err := ReadSchema(path)
	require.NoError(t, err)
	_, found := reloaded.FindItem("enabled")
	assert.False(t, found)
	layout, ok := reloaded.Layout("enabled")
	assert.True(t, ok, "node layouts are kept for every node")
	assert.Empty(t, layout.SectionID)
}

func TestDocument_GraphSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.blueprint.json")
	g := blueprint.SchemaToGraph(models.ExampleSchema(), nil, blueprint.DefaultLayout())
	require.NoError(t, WriteGraph(path, g))

	doc, err := OpenDocument(path, blueprint.DefaultLayout())
	require.NoError(t, err)
	assert.Equal(t, KindGraph, doc.Kind)

	editor := blueprint.NewEditor(blueprint.NewCounterGenerator(), blueprint.DefaultLayout())
	g, err = editor.Detach(doc.Graph, "enabled")
	require.NoError(t, err)

	dropped, err := doc.Save(g)
	require.NoError(t, err)
	assert.Empty(t, dropped)

	reopened, err := OpenDocument(path, blueprint.DefaultLayout())
	require.NoError(t, err)
	node, ok := reopened.Graph.ItemNode("enabled")
	require.True(t, ok)
	assert.Empty(t, node.SectionID)
	assert.Equal(t, models.ExampleSchema().ItemCount()-1, reopened.Schema().ItemCount())
}

func TestReadWriteValues(t *testing.T) {
	values := models.Values{"enabled": true, "opacity": 90.0, "theme": "dark"}

	for _, name := range []string{"values.yaml", "values.json", "values.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			require.NoError(t, WriteValues(path, values))
			loaded, err := ReadValues(path)
			require.NoError(t, err)
			assert.Equal(t, values, loaded)
		})
	}
}

func TestReadValues_NormalizesNumbers(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "values.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("volume: 3\nnested:\n  a: 1\n"), 0644))
	loaded, err := ReadValues(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, models.Values{"volume": 3.0, "nested": map[string]any{"a": 1}}, loaded)

	tomlPath := filepath.Join(dir, "values.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("volume = 7\nname = \"x\"\n"), 0644))
	loaded, err = ReadValues(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, models.Values{"volume": 7.0, "name": "x"}, loaded)
}

func TestIDFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Dark Mode", "dark_mode"},
		{"User's Avatar", "user_s_avatar"},
		{"Volume #1!", "volume_1"},
		{"  padded  ", "padded"},
		{"!!!", "item"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IDFromName(tt.name))
		})
	}
}

func TestUniqueID(t *testing.T) {
	taken := map[string]bool{"volume": true, "volume_2": true}

	assert.Equal(t, "volume_3", UniqueID("volume", func(id string) bool { return taken[id] }))
	assert.Equal(t, "theme", UniqueID("theme", func(id string) bool { return taken[id] }))
	assert.Equal(t, "volume", UniqueID("volume", nil))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Dark mode"))
	assert.Error(t, ValidateName("   "))
	assert.Error(t, ValidateName("#!?"))
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sections: []\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	require.NoError(t, Watch(ctx, path, func() { calls.Add(1) }))

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.yaml"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("sections: []\n# changed\n"), 0644))

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 20*time.Millisecond)
}
