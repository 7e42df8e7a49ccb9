package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pluqqy/blueprint/internal/cli"
	"github.com/pluqqy/blueprint/internal/config"
	"github.com/pluqqy/blueprint/pkg/blueprint"
	"github.com/pluqqy/blueprint/pkg/files"
	"github.com/pluqqy/blueprint/pkg/models"
)

// newContext builds a command context from the loaded configuration. Commands
// executed on their own (without the root pre-run) load it from their flags.
func newContext(cmd *cobra.Command) (*cli.CommandContext, error) {
	cfg := currentConfig
	if cfg == nil {
		loaded, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	return cli.NewCommandContext(cfg)
}

// openDocument creates a context and opens the document named by path
func openDocument(cmd *cobra.Command, path string) (*cli.CommandContext, error) {
	ctx, err := newContext(cmd)
	if err != nil {
		return nil, err
	}
	if _, err := ctx.Open(path); err != nil {
		return nil, err
	}
	return ctx, nil
}

// structuredFormat maps the output setting onto a document encoding. Text output
// of a document is YAML.
func structuredFormat(output string) string {
	if output == string(cli.FormatJSON) {
		return string(cli.FormatJSON)
	}
	return string(cli.FormatYAML)
}

// writeDocument prints v to w, or writes it to path when one is given
func writeDocument(w io.Writer, path, output string, v any) error {
	if path == "" {
		return cli.OutputResults(w, structuredFormat(output), v)
	}

	switch doc := v.(type) {
	case models.SettingsSchema:
		return files.WriteSchema(path, doc)
	case models.Graph:
		return files.WriteGraph(path, doc)
	case models.Values:
		return files.WriteValues(path, doc)
	default:
		return fmt.Errorf("cannot write %T to %s", v, path)
	}
}

// sectionItemCounts returns the number of attached items per section, in
// section order
func sectionItemCounts(g models.Graph) []int {
	idx := blueprint.NewIndex(g)
	sections := g.Sections()
	counts := make([]int, len(sections))
	for i, s := range sections {
		counts[i] = len(idx.Attached(s.ID))
	}
	return counts
}

// describeNode returns a short human label for a node
func describeNode(n models.Node) string {
	switch node := n.(type) {
	case models.SectionNode:
		if node.Title == "" {
			return fmt.Sprintf("section %s", node.ID)
		}
		return fmt.Sprintf("section %s (%q)", node.ID, node.Title)
	case models.ItemNode:
		return fmt.Sprintf("%s item %s", node.Item.Type().Label(), node.ID)
	default:
		return n.NodeID()
	}
}

func sortedKeys(values models.Values) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
