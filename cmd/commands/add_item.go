package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/blueprint/internal/cli"
	"github.com/pluqqy/blueprint/pkg/blueprint"
	"github.com/pluqqy/blueprint/pkg/files"
)

var (
	addItemType string
	addItemAt   string
	addItemName string
)

// NewAddItemCommand creates the add-item command
func NewAddItemCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-item <doc> <section>",
		Short: "Add an item to a section",
		Long: `Add an item with per-type defaults to a section.

Without --at the item is stacked below the section's last item. With
--at the item is created at that position; pass "-" as the section to
create it detached (graph documents only keep detached items).

When --name is given the item id is derived from it, otherwise a fresh
id is generated.

Item types: text, toggle, slider, file, color, select

Examples:
  blueprint add-item settings.yaml section_0 --type slider --name Volume
  blueprint add-item settings.blueprint.yaml - --type text --at 500,120`,
		Args: cobra.ExactArgs(2),
		RunE: runAddItem,
	}

	cmd.Flags().StringVarP(&addItemType, "type", "t", "toggle", "Item type")
	cmd.Flags().StringVar(&addItemAt, "at", "", "Canvas position as x,y")
	cmd.Flags().StringVarP(&addItemName, "name", "n", "", "Item name; also used to derive the id")

	return cmd
}

func runAddItem(cmd *cobra.Command, args []string) error {
	itemType, err := cli.ParseItemType(addItemType)
	if err != nil {
		return err
	}
	if addItemName != "" {
		if err := files.ValidateName(addItemName); err != nil {
			return err
		}
	}

	sectionID := args[1]
	if sectionID == "-" {
		sectionID = ""
	}
	if sectionID == "" && addItemAt == "" {
		return fmt.Errorf("detached items need a position (use --at x,y)")
	}

	ctx, err := openDocument(cmd, args[0])
	if err != nil {
		return err
	}
	g := ctx.Graph()

	var id string
	if addItemAt != "" {
		pos, err := cli.ParsePosition(addItemAt)
		if err != nil {
			return err
		}
		g, id, err = ctx.Editor.CreateItemAt(g, sectionID, itemType, pos)
		if err != nil {
			return fmt.Errorf("failed to add item: %w", err)
		}
	} else {
		g, id, err = ctx.Editor.AddItem(g, sectionID, itemType)
		if err != nil {
			return fmt.Errorf("failed to add item: %w", err)
		}
	}

	if addItemName != "" {
		node, _ := g.ItemNode(id)
		idx := blueprint.NewIndex(g)
		newID := files.UniqueID(files.IDFromName(addItemName), func(candidate string) bool {
			return candidate != id && idx.Taken(candidate)
		})

		base := node.Item.Base()
		base.ID = newID
		base.Name = addItemName
		if g, err = ctx.Editor.UpdateItem(g, id, node.Item.WithBase(base)); err != nil {
			return err
		}
		id = newID
	}

	if err := ctx.Save(g); err != nil {
		return err
	}

	node, _ := g.ItemNode(id)
	cli.PrintSuccess("Added %s item %s", itemType.Label(), id)
	cli.PrintInfo("Position %s", cli.FormatPosition(node.Position.X, node.Position.Y))
	return nil
}
