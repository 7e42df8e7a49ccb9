package commands

import (
	"bytes"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/pluqqy/blueprint/internal/cli"
	"github.com/pluqqy/blueprint/internal/config"
	"github.com/pluqqy/blueprint/pkg/blueprint"
	"github.com/pluqqy/blueprint/pkg/composer"
	"github.com/pluqqy/blueprint/pkg/files"
	"github.com/pluqqy/blueprint/pkg/models"
)

var (
	exportToFile    string
	exportClipboard bool
	exportMarkdown  bool
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <doc>",
		Short: "Export a document as a settings schema",
		Long: `Export the schema of a schema or graph document.

By default the schema is written to stdout as YAML (or JSON with -o json).
The format of --file follows its extension. With --markdown the schema is
written as reference documentation instead; the markdown.* config keys
control its title, headings and defaults.

Examples:
  # Export to stdout
  blueprint export settings.blueprint.yaml

  # Export to a JSON file
  blueprint export settings.blueprint.yaml --file settings.json

  # Copy the JSON schema to the clipboard
  blueprint export settings.yaml --clipboard -o json

  # Document the settings
  blueprint export settings.yaml --markdown --file SETTINGS.md`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}

	cmd.Flags().StringVar(&exportToFile, "file", "", "Write the schema to this file")
	cmd.Flags().BoolVarP(&exportClipboard, "clipboard", "c", false, "Copy the schema to the clipboard")
	cmd.Flags().BoolVar(&exportMarkdown, "markdown", false, "Write Markdown documentation instead of the schema")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, err := openDocument(cmd, args[0])
	if err != nil {
		return err
	}

	g := ctx.Graph()
	schema := blueprint.GraphToSchema(g)
	if detached := blueprint.NewIndex(g).Detached(); len(detached) > 0 {
		cli.PrintWarning("%d detached item(s) are not exported", len(detached))
	}

	if exportMarkdown {
		return exportMarkdownDoc(cmd, ctx.Config.Markdown, schema)
	}

	if exportClipboard {
		var buf bytes.Buffer
		if err := cli.OutputResults(&buf, structuredFormat(ctx.Config.Output), schema); err != nil {
			return fmt.Errorf("failed to format schema: %w", err)
		}
		if err := clipboard.WriteAll(buf.String()); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		cli.PrintSuccess("Schema copied to clipboard (%d section(s), %d item(s))", len(schema.Sections), schema.ItemCount())
		return nil
	}

	if err := writeDocument(cmd.OutOrStdout(), exportToFile, ctx.Config.Output, schema); err != nil {
		return err
	}
	if exportToFile != "" {
		cli.PrintSuccess("Schema exported to: %s", exportToFile)
	}
	return nil
}

func exportMarkdownDoc(cmd *cobra.Command, cfg config.MarkdownConfig, schema models.SettingsSchema) error {
	doc, err := composer.ComposeMarkdown(schema, composer.Options{
		Title:        cfg.Title,
		ShowHeadings: cfg.ShowHeadings,
		ShowDefaults: cfg.ShowDefaults,
	})
	if err != nil {
		return err
	}

	switch {
	case exportClipboard:
		if err := clipboard.WriteAll(doc); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		cli.PrintSuccess("Documentation copied to clipboard")
	case exportToFile != "":
		if err := files.WriteFile(exportToFile, []byte(doc)); err != nil {
			return err
		}
		cli.PrintSuccess("Documentation written to: %s", exportToFile)
	default:
		fmt.Fprint(cmd.OutOrStdout(), doc)
	}
	return nil
}
