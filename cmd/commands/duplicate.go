package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/blueprint/internal/cli"
)

// NewDuplicateCommand creates the duplicate command
func NewDuplicateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duplicate <doc> <item>",
		Short: "Duplicate an item",
		Long: `Copy an item with a fresh id into the same section, offset slightly
from the original on the canvas.

Examples:
  blueprint duplicate settings.yaml volume
  blueprint duplicate settings.yaml volume --ids counter`,
		Args: cobra.ExactArgs(2),
		RunE: runDuplicate,
	}

	return cmd
}

func runDuplicate(cmd *cobra.Command, args []string) error {
	ctx, err := openDocument(cmd, args[0])
	if err != nil {
		return err
	}

	g, id, err := ctx.Editor.DuplicateItem(ctx.Graph(), args[1])
	if err != nil {
		return fmt.Errorf("failed to duplicate %s: %w", args[1], err)
	}

	if err := ctx.Save(g); err != nil {
		return err
	}
	cli.PrintSuccess("Duplicated %s as %s", args[1], id)
	return nil
}
