package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/blueprint/internal/cli"
	"github.com/pluqqy/blueprint/pkg/files"
	"github.com/pluqqy/blueprint/pkg/models"
)

var (
	valuesFile  string
	valuesMerge string
)

// NewValuesCommand creates the values command
func NewValuesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "values <doc>",
		Short: "Print the default values of a schema",
		Long: `Resolve every item's default value and print the resulting values map.

With --merge, values from an existing yaml, json or toml file override the
defaults; keys that no item defines are dropped.

Examples:
  blueprint values settings.yaml
  blueprint values settings.yaml --file values.toml
  blueprint values settings.yaml --merge values.yaml -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runValues,
	}

	cmd.Flags().StringVar(&valuesFile, "file", "", "Write the values to this file (yaml, json or toml)")
	cmd.Flags().StringVar(&valuesMerge, "merge", "", "Values file whose entries override the defaults")

	return cmd
}

func runValues(cmd *cobra.Command, args []string) error {
	ctx, err := openDocument(cmd, args[0])
	if err != nil {
		return err
	}

	schema := ctx.Doc.Schema()
	values := models.DefaultValues(schema)

	if valuesMerge != "" {
		existing, err := files.ReadValues(valuesMerge)
		if err != nil {
			return err
		}
		for _, id := range sortedKeys(existing) {
			_, known := values[id]
			switch {
			case !known:
				cli.PrintWarning("ignoring value for unknown item %q", id)
			case !models.IsScalar(existing[id]):
				cli.PrintWarning("ignoring non-scalar value for item %q", id)
			default:
				values[id] = existing[id]
			}
		}
	}

	if valuesFile != "" {
		if err := files.WriteValues(valuesFile, values); err != nil {
			return err
		}
		cli.PrintSuccess("Wrote %d value(s) to %s", len(values), valuesFile)
		return nil
	}

	if ctx.Config.Output != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), ctx.Config.Output, values)
	}

	rows := make([][]string, 0, len(values))
	for _, id := range sortedKeys(values) {
		rows = append(rows, []string{id, fmt.Sprint(values[id])})
	}
	cli.RenderTable(cmd.OutOrStdout(), []string{"Item", "Value"}, rows)
	return nil
}
