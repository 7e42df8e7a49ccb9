package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/blueprint/internal/cli"
	"github.com/pluqqy/blueprint/pkg/blueprint"
	"github.com/pluqqy/blueprint/pkg/models"
)

var deleteForce bool

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <doc> <node>",
		Short: "Delete a section or item",
		Long: `Delete a node from the graph.

Deleting a section also deletes every item attached to it. Detached
items are not affected.

Examples:
  # Delete an item (with confirmation)
  blueprint delete settings.yaml volume

  # Delete a section and its items without confirmation
  blueprint delete settings.yaml section_1 --force`,
		Args: cobra.ExactArgs(2),
		RunE: runDelete,
	}

	cmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Force deletion without confirmation")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	nodeID := args[1]

	ctx, err := openDocument(cmd, args[0])
	if err != nil {
		return err
	}
	g := ctx.Graph()

	node, ok := g.Find(nodeID)
	if !ok {
		return fmt.Errorf("failed to delete %s: %w", nodeID, blueprint.ErrNodeNotFound)
	}

	cascade := 0
	if _, isSection := node.(models.SectionNode); isSection {
		cascade = len(blueprint.NewIndex(g).Attached(nodeID))
	}

	if !deleteForce {
		prompt := fmt.Sprintf("Delete %s?", describeNode(node))
		if cascade > 0 {
			prompt = fmt.Sprintf("Delete %s and its %d item(s)?", describeNode(node), cascade)
		}
		confirmed, err := cli.Confirm(prompt, false)
		if err != nil {
			return err
		}
		if !confirmed {
			cli.PrintInfo("Deletion cancelled")
			return nil
		}
	}

	g, err = ctx.Editor.DeleteNode(g, nodeID)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", nodeID, err)
	}

	if err := ctx.Save(g); err != nil {
		return err
	}
	if cascade > 0 {
		cli.PrintSuccess("Deleted %s and %d attached item(s)", nodeID, cascade)
	} else {
		cli.PrintSuccess("Deleted %s", nodeID)
	}
	return nil
}
