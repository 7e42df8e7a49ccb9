package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluqqy/blueprint/internal/cli"
	"github.com/pluqqy/blueprint/pkg/models"
	"github.com/pluqqy/blueprint/pkg/search"
)

// NewFindCommand creates the find command
func NewFindCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <doc> [query...]",
		Short: "Search the nodes of a document",
		Long: `Search sections and items with a small query language.

Fields:
  type:<kind>        item kind or node type (slider, toggle, section, item)
  name:<text>        name or section title contains text
  id:<prefix>        node id starts with prefix
  section:<text>     section id or title
  status:<state>     attached or detached

Bare words match ids, names and descriptions. Conditions are ANDed unless
joined with OR; NOT negates the next condition.

Examples:
  blueprint find settings.yaml type:slider
  blueprint find settings.blueprint.yaml status:detached
  blueprint find settings.yaml 'section:appearance NOT type:select' -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runFind,
	}

	return cmd
}

func runFind(cmd *cobra.Command, args []string) error {
	ctx, err := openDocument(cmd, args[0])
	if err != nil {
		return err
	}

	query := strings.Join(args[1:], " ")
	results, err := search.NewEngine(ctx.Graph()).Search(query)
	if err != nil {
		return err
	}

	if ctx.Config.Output != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), ctx.Config.Output, results)
	}

	if len(results) == 0 {
		cli.PrintInfo("No nodes match %q", query)
		return nil
	}

	rows := make([][]string, len(results))
	for i, r := range results {
		e := r.Entry
		kind := ""
		if e.Kind != "" {
			kind = e.Kind.Label()
		}
		section := e.SectionTitle
		if e.NodeType == models.NodeTypeItem && !e.Attached {
			section = "(detached)"
		}
		rows[i] = []string{e.NodeID, kind, cli.TruncateString(e.Name, 32), section}
	}
	cli.RenderTable(cmd.OutOrStdout(), []string{"ID", "Kind", "Name", "Section"}, rows)
	return nil
}
