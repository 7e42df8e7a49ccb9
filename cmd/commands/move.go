package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/blueprint/internal/cli"
)

var moveBy bool

// NewMoveCommand creates the move command
func NewMoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <doc> <node> <x,y>",
		Short: "Move a node on the canvas",
		Long: `Set a node's canvas position. With --by the coordinates are an offset
from the current position. Positions snap to the grid when --snap is set
or layout.snap_to_grid is enabled.

Examples:
  blueprint move settings.yaml section_1 50,600
  blueprint move settings.yaml volume 0,-20 --by
  blueprint move settings.yaml volume 133,247 --snap --grid 20`,
		Args: cobra.ExactArgs(3),
		RunE: runMove,
	}

	cmd.Flags().BoolVar(&moveBy, "by", false, "Treat x,y as an offset")

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	pos, err := cli.ParsePosition(args[2])
	if err != nil {
		return err
	}

	ctx, err := openDocument(cmd, args[0])
	if err != nil {
		return err
	}
	g := ctx.Graph()

	if moveBy {
		node, ok := g.Find(args[1])
		if !ok {
			return fmt.Errorf("node not found: %s", args[1])
		}
		pos = node.NodePosition().Add(pos.X, pos.Y)
	}

	g, err = ctx.Editor.MoveNode(g, args[1], pos)
	if err != nil {
		return fmt.Errorf("failed to move %s: %w", args[1], err)
	}

	if err := ctx.Save(g); err != nil {
		return err
	}
	node, _ := g.Find(args[1])
	final := node.NodePosition()
	cli.PrintSuccess("Moved %s to %s", args[1], cli.FormatPosition(final.X, final.Y))
	return nil
}
