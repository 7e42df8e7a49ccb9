package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/blueprint/internal/cli"
	"github.com/pluqqy/blueprint/pkg/blueprint"
)

// ValidateResult is the structured output of validate
type ValidateResult struct {
	Path     string              `json:"path" yaml:"path"`
	Valid    bool                `json:"valid" yaml:"valid"`
	Problems []blueprint.Problem `json:"problems" yaml:"problems"`
}

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <doc>",
		Short: "Report duplicate ids, detached items and unknown item types",
		Long: `Check a document for problems the editor accepts but a settings form
cannot use cleanly: duplicate item ids, items whose section is missing,
detached items and item types this version does not know.

Exits with an error when problems are found.

Examples:
  blueprint validate settings.yaml
  blueprint validate settings.blueprint.yaml -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx, err := openDocument(cmd, args[0])
	if err != nil {
		return err
	}

	problems := blueprint.Validate(ctx.Graph())
	result := ValidateResult{Path: args[0], Valid: len(problems) == 0, Problems: problems}
	if result.Problems == nil {
		result.Problems = []blueprint.Problem{}
	}

	if ctx.Config.Output != string(cli.FormatText) {
		if err := cli.OutputResults(cmd.OutOrStdout(), ctx.Config.Output, result); err != nil {
			return err
		}
	} else if result.Valid {
		cli.PrintSuccess("%s is valid", args[0])
	} else {
		rows := make([][]string, len(problems))
		for i, p := range problems {
			rows[i] = []string{string(p.Kind), p.NodeID, p.Message}
		}
		cli.RenderTable(cmd.OutOrStdout(), []string{"Problem", "Node", "Details"}, rows)
	}

	if !result.Valid {
		return fmt.Errorf("%d problem(s) found in %s", len(problems), args[0])
	}
	return nil
}
