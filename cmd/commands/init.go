package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluqqy/blueprint/internal/cli"
	"github.com/pluqqy/blueprint/pkg/blueprint"
	"github.com/pluqqy/blueprint/pkg/examples"
	"github.com/pluqqy/blueprint/pkg/files"
	"github.com/pluqqy/blueprint/pkg/models"
)

var (
	initEmpty   bool
	initForce   bool
	initExample string
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Create a starter settings schema",
		Long: `Create a new settings schema document.

The starter schema has two sections with one item of every kind. Use
--example to start from another template (editor, web, ai) or --empty for
a schema without sections. A file name ending in
.blueprint.yaml creates a graph document instead.

Examples:
  # Create settings.yaml in the current directory
  blueprint init

  # Create an empty JSON schema
  blueprint init config/settings.json --empty

  # Start from the editor preferences template
  blueprint init --example editor

  # Create a graph document
  blueprint init settings.blueprint.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}

	cmd.Flags().BoolVar(&initEmpty, "empty", false, "Create a schema without sections")
	cmd.Flags().StringVar(&initExample, "example", examples.DefaultName, "Starter template: "+strings.Join(examples.Names(), ", "))
	cmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing file")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	path := files.DefaultSchemaFile
	if len(args) == 1 {
		path = args[0]
	}

	if _, err := files.FormatOf(path); err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	schema := models.SettingsSchema{Sections: []models.Section{}}
	if !initEmpty {
		ex, err := examples.Get(initExample)
		if err != nil {
			return err
		}
		schema = ex.Schema()
	}

	ctx, err := newContext(cmd)
	if err != nil {
		return err
	}

	if files.KindOf(path) == files.KindGraph {
		g := blueprint.SchemaToGraph(schema, nil, ctx.Config.ToLayout())
		if err := files.WriteGraph(path, g); err != nil {
			return err
		}
	} else if err := files.WriteSchema(path, schema); err != nil {
		return err
	}

	cli.PrintSuccess("Created %s with %d section(s) and %d item(s)", path, len(schema.Sections), schema.ItemCount())
	cli.PrintInfo("Run 'blueprint edit %s' to open it on the canvas", path)
	return nil
}
