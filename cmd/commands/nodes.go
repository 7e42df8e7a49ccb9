package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/blueprint/internal/cli"
	"github.com/pluqqy/blueprint/pkg/blueprint"
	"github.com/pluqqy/blueprint/pkg/models"
)

// NodeResult is one row of the nodes listing
type NodeResult struct {
	ID        string          `json:"id" yaml:"id"`
	Type      models.NodeType `json:"type" yaml:"type"`
	Kind      string          `json:"kind,omitempty" yaml:"kind,omitempty"`
	Label     string          `json:"label" yaml:"label"`
	SectionID string          `json:"sectionId,omitempty" yaml:"sectionId,omitempty"`
	Attached  bool            `json:"attached" yaml:"attached"`
	Position  models.Position `json:"position" yaml:"position"`
}

// NewNodesCommand creates the nodes command
func NewNodesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nodes <doc>",
		Short: "List the nodes of a document's graph",
		Long: `List every section and item node with its position and attachment.

Examples:
  blueprint nodes settings.yaml
  blueprint nodes settings.blueprint.yaml -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runNodes,
	}

	return cmd
}

func runNodes(cmd *cobra.Command, args []string) error {
	ctx, err := openDocument(cmd, args[0])
	if err != nil {
		return err
	}
	g := ctx.Graph()
	results := nodeResults(g)

	if ctx.Config.Output != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), ctx.Config.Output, results)
	}

	if len(results) == 0 {
		cli.PrintInfo("No nodes in %s", args[0])
		return nil
	}

	rows := make([][]string, len(results))
	for i, r := range results {
		section := r.SectionID
		if r.Type == models.NodeTypeItem && !r.Attached {
			section = "(detached)"
			if r.SectionID != "" {
				section = fmt.Sprintf("%s (missing)", r.SectionID)
			}
		}
		rows[i] = []string{
			r.ID,
			string(r.Type),
			r.Kind,
			cli.TruncateString(r.Label, 32),
			section,
			cli.FormatPosition(r.Position.X, r.Position.Y),
		}
	}
	cli.RenderTable(cmd.OutOrStdout(), []string{"ID", "Node", "Kind", "Label", "Section", "Position"}, rows)
	return nil
}

func nodeResults(g models.Graph) []NodeResult {
	idx := blueprint.NewIndex(g)
	results := make([]NodeResult, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		r := NodeResult{ID: n.NodeID(), Type: n.NodeType(), Position: n.NodePosition()}
		switch node := n.(type) {
		case models.SectionNode:
			r.Label = node.Title
		case models.ItemNode:
			r.Kind = node.Item.Type().Label()
			r.Label = node.Item.Base().Name
			r.SectionID = node.SectionID
			r.Attached = idx.IsAttached(node)
		}
		results = append(results, r)
	}
	return results
}
