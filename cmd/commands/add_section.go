package commands

import (
	"github.com/spf13/cobra"

	"github.com/pluqqy/blueprint/internal/cli"
)

var (
	addSectionTitle string
	addSectionAt    string
)

// NewAddSectionCommand creates the add-section command
func NewAddSectionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-section <doc>",
		Short: "Add a section",
		Long: `Add a section to a schema or graph document.

The section gets the lowest free section_<n> id. Without --at it is
placed below the existing sections.

Examples:
  blueprint add-section settings.yaml --title Advanced
  blueprint add-section settings.blueprint.yaml --at 400,50`,
		Args: cobra.ExactArgs(1),
		RunE: runAddSection,
	}

	cmd.Flags().StringVarP(&addSectionTitle, "title", "t", "", "Section title")
	cmd.Flags().StringVar(&addSectionAt, "at", "", "Canvas position as x,y")

	return cmd
}

func runAddSection(cmd *cobra.Command, args []string) error {
	if err := cli.ValidateSectionTitle(addSectionTitle); err != nil {
		return err
	}

	ctx, err := openDocument(cmd, args[0])
	if err != nil {
		return err
	}
	g := ctx.Graph()

	layout := ctx.Config.ToLayout()
	counts := sectionItemCounts(g)
	pos := layout.SectionPosition(counts, len(counts))
	if addSectionAt != "" {
		if pos, err = cli.ParsePosition(addSectionAt); err != nil {
			return err
		}
	}

	g, id := ctx.Editor.AddSection(g, pos)
	if addSectionTitle != "" {
		if g, err = ctx.Editor.UpdateSectionTitle(g, id, addSectionTitle); err != nil {
			return err
		}
	}

	if err := ctx.Save(g); err != nil {
		return err
	}
	cli.PrintSuccess("Added section %s at %s", id, cli.FormatPosition(pos.X, pos.Y))
	return nil
}
