package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/blueprint/internal/cli"
	"github.com/pluqqy/blueprint/pkg/blueprint"
	"github.com/pluqqy/blueprint/pkg/models"
)

var renameID string

// NewRenameCommand creates the rename command
func NewRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <doc> <node> <title>",
		Short: "Rename a section or item",
		Long: `Set a section's title or an item's display name.

For items, --id also changes the item id. Duplicate ids are accepted and
reported by 'blueprint validate'.

Examples:
  blueprint rename settings.yaml section_0 "General settings"
  blueprint rename settings.yaml enabled "Enable sync" --id sync_enabled`,
		Args: cobra.ExactArgs(3),
		RunE: runRename,
	}

	cmd.Flags().StringVar(&renameID, "id", "", "New item id")

	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	nodeID, title := args[1], args[2]

	ctx, err := openDocument(cmd, args[0])
	if err != nil {
		return err
	}
	g := ctx.Graph()

	node, ok := g.Find(nodeID)
	if !ok {
		return fmt.Errorf("failed to rename %s: %w", nodeID, blueprint.ErrNodeNotFound)
	}

	switch n := node.(type) {
	case models.SectionNode:
		if renameID != "" {
			return fmt.Errorf("section ids are assigned automatically and cannot be changed")
		}
		if err := cli.ValidateSectionTitle(title); err != nil {
			return err
		}
		g, err = ctx.Editor.UpdateSectionTitle(g, nodeID, title)
	case models.ItemNode:
		base := n.Item.Base()
		base.Name = title
		if renameID != "" {
			base.ID = renameID
		}
		g, err = ctx.Editor.UpdateItem(g, nodeID, n.Item.WithBase(base))
	}
	if err != nil {
		return fmt.Errorf("failed to rename %s: %w", nodeID, err)
	}

	if err := ctx.Save(g); err != nil {
		return err
	}
	cli.PrintSuccess("Renamed %s to %q", nodeID, title)

	if dups := blueprint.DuplicateItemIDs(blueprint.GraphToSchema(g)); len(dups) > 0 {
		cli.PrintWarning("duplicate item ids: %v", dups)
	}
	return nil
}
