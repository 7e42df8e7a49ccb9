package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/blueprint/internal/cli"
)

// NewAttachCommand creates the attach command
func NewAttachCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attach <doc> <item> <section>",
		Short: "Attach an item to a section",
		Long: `Attach an item node to a section node. The item keeps its id, payload
and position; only its section reference changes.

Examples:
  blueprint attach settings.blueprint.yaml volume section_1`,
		Args: cobra.ExactArgs(3),
		RunE: runAttach,
	}

	return cmd
}

func runAttach(cmd *cobra.Command, args []string) error {
	ctx, err := openDocument(cmd, args[0])
	if err != nil {
		return err
	}

	g, err := ctx.Editor.Attach(ctx.Graph(), args[1], args[2])
	if err != nil {
		return fmt.Errorf("failed to attach %s to %s: %w", args[1], args[2], err)
	}

	if err := ctx.Save(g); err != nil {
		return err
	}
	cli.PrintSuccess("Attached %s to %s", args[1], args[2])
	return nil
}
