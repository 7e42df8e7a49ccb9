package commands

import (
	"github.com/spf13/cobra"

	"github.com/pluqqy/blueprint/internal/cli"
	"github.com/pluqqy/blueprint/pkg/blueprint"
)

var schemaFile string

// NewSchemaCommand creates the schema command
func NewSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema <graph>",
		Short: "Convert a graph document back into a schema",
		Long: `Regenerate a settings schema from a graph document.

Items are grouped under the section they are attached to and ordered by
their order field. Detached items are left out of the sections but keep
their stored node layout.

Examples:
  blueprint schema settings.blueprint.yaml
  blueprint schema settings.blueprint.yaml --file settings.json`,
		Args: cobra.ExactArgs(1),
		RunE: runSchema,
	}

	cmd.Flags().StringVar(&schemaFile, "file", "", "Write the schema to this file instead of stdout")

	return cmd
}

func runSchema(cmd *cobra.Command, args []string) error {
	ctx, err := openDocument(cmd, args[0])
	if err != nil {
		return err
	}

	g := ctx.Graph()
	if detached := blueprint.NewIndex(g).Detached(); len(detached) > 0 {
		cli.PrintWarning("%d detached item(s) are not part of any section", len(detached))
	}

	schema := blueprint.GraphToSchema(g)
	if err := writeDocument(cmd.OutOrStdout(), schemaFile, ctx.Config.Output, schema); err != nil {
		return err
	}
	if schemaFile != "" {
		cli.PrintSuccess("Wrote %d section(s) to %s", len(schema.Sections), schemaFile)
	}
	return nil
}
