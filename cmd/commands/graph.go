package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/blueprint/internal/cli"
	"github.com/pluqqy/blueprint/pkg/blueprint"
	"github.com/pluqqy/blueprint/pkg/files"
	"github.com/pluqqy/blueprint/pkg/models"
)

var (
	graphPrevious string
	graphFile     string
)

// NewGraphCommand creates the graph command
func NewGraphCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <schema>",
		Short: "Convert a schema into a graph document",
		Long: `Lay a schema out as a graph of section and item nodes.

Node positions come from the schema's stored layout first, then from
the --previous graph, then from the default top-to-bottom layout.

Examples:
  # Print the graph as YAML
  blueprint graph settings.yaml

  # Keep positions from an earlier graph and write a graph document
  blueprint graph settings.yaml --previous old.blueprint.yaml --file settings.blueprint.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runGraph,
	}

	cmd.Flags().StringVar(&graphPrevious, "previous", "", "Graph document whose node positions are reused")
	cmd.Flags().StringVar(&graphFile, "file", "", "Write the graph to this file instead of stdout")

	return cmd
}

func runGraph(cmd *cobra.Command, args []string) error {
	ctx, err := newContext(cmd)
	if err != nil {
		return err
	}
	if err := cli.ValidateFilePath(args[0]); err != nil {
		return err
	}

	schema, err := files.ReadSchema(args[0])
	if err != nil {
		return err
	}

	var previous *models.Graph
	if graphPrevious != "" {
		previous, err = files.ReadGraph(graphPrevious)
		if err != nil {
			return fmt.Errorf("failed to load previous graph: %w", err)
		}
	}

	g := blueprint.SchemaToGraph(*schema, previous, ctx.Config.ToLayout())

	if err := writeDocument(cmd.OutOrStdout(), graphFile, ctx.Config.Output, g); err != nil {
		return err
	}
	if graphFile != "" {
		cli.PrintSuccess("Wrote %d node(s) to %s", len(g.Nodes), graphFile)
	}
	return nil
}
