package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/blueprint/internal/cli"
	"github.com/pluqqy/blueprint/pkg/files"
)

// NewDetachCommand creates the detach command
func NewDetachCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detach <doc> <item>",
		Short: "Detach an item from its section",
		Long: `Clear an item's section reference. The item node stays in the graph.

Schema documents cannot store detached items, so detaching there removes
the item from the sections. Use a graph document to keep it.

Examples:
  blueprint detach settings.blueprint.yaml volume`,
		Args: cobra.ExactArgs(2),
		RunE: runDetach,
	}

	return cmd
}

func runDetach(cmd *cobra.Command, args []string) error {
	ctx, err := openDocument(cmd, args[0])
	if err != nil {
		return err
	}

	if ctx.Doc.Kind == files.KindSchema {
		ok, err := cli.Confirm(fmt.Sprintf("%s is a schema document and cannot keep detached items. Remove %s from its section?", args[0], args[1]), false)
		if err != nil {
			return err
		}
		if !ok {
			cli.PrintInfo("Detach cancelled")
			return nil
		}
	}

	g, err := ctx.Editor.Detach(ctx.Graph(), args[1])
	if err != nil {
		return fmt.Errorf("failed to detach %s: %w", args[1], err)
	}

	if err := ctx.Save(g); err != nil {
		return err
	}
	cli.PrintSuccess("Detached %s", args[1])
	return nil
}
