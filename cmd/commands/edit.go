package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pluqqy/blueprint/internal/cli"
	"github.com/pluqqy/blueprint/pkg/blueprint"
	"github.com/pluqqy/blueprint/pkg/files"
	"github.com/pluqqy/blueprint/pkg/models"
	"github.com/pluqqy/blueprint/pkg/tui"
)

var editRaw bool

// NewEditCommand creates the edit command
func NewEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <doc>",
		Short: "Edit a document on the interactive canvas",
		Long: `Open a schema or graph document on the terminal canvas.

Canvas keys:
  a          add a section at the cursor
  i          add an item to the selected section
  c          connect the selected item; enter on a section attaches it,
             enter on empty canvas creates a new item there
  d          detach the selected item
  x          delete the selected node
  D          duplicate the selected item
  e          edit the selected title or item name
  shift+↑↓←→ move the selected node by one grid step
  p          preview the settings form
  ctrl+s     save, ctrl+z undo, q quit

With --raw the file opens in $EDITOR instead and is validated afterwards.

Examples:
  blueprint edit settings.yaml
  blueprint edit settings.blueprint.yaml --snap
  blueprint edit settings.yaml --raw`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}

	cmd.Flags().BoolVar(&editRaw, "raw", false, "Open the file in $EDITOR")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	path := args[0]
	if editRaw {
		return runRawEdit(cmd, path)
	}

	ctx, err := openDocument(cmd, path)
	if err != nil {
		return err
	}
	cfg := ctx.Config

	canvas := tui.CanvasOptions{
		Title:      path,
		CellWidth:  cfg.Canvas.CellWidth,
		CellHeight: cfg.Canvas.CellHeight,
		ShowGrid:   cfg.Canvas.ShowGrid,
		Save: func(g models.Graph) ([]string, error) {
			return ctx.Doc.Save(g)
		},
	}
	form := tui.FormOptions{
		ExpandAll: cfg.Form.ExpandAll,
		WrapWidth: cfg.Form.WrapWidth,
	}

	app := tui.NewCanvasApp(ctx.Editor, ctx.Graph(), canvas, form)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}

	if app.Dirty() {
		cli.PrintWarning("Quit with unsaved changes to %s", path)
	}
	return nil
}

func runRawEdit(cmd *cobra.Command, path string) error {
	if err := cli.ValidateFilePath(path); err != nil {
		return err
	}
	if err := cli.NewEditorLauncher().OpenFile(path); err != nil {
		return err
	}

	ctx, err := newContext(cmd)
	if err != nil {
		return err
	}
	doc, err := files.OpenDocument(path, ctx.Config.ToLayout())
	if err != nil {
		return fmt.Errorf("%s no longer parses: %w", path, err)
	}

	if problems := blueprint.Validate(doc.Graph); len(problems) > 0 {
		for _, p := range problems {
			cli.PrintWarning("%s", p.Message)
		}
		return nil
	}
	cli.PrintSuccess("%s saved and valid", path)
	return nil
}
