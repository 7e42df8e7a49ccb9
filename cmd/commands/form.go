package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pluqqy/blueprint/internal/cli"
	"github.com/pluqqy/blueprint/pkg/files"
	"github.com/pluqqy/blueprint/pkg/models"
	"github.com/pluqqy/blueprint/pkg/tui"
)

var (
	formValues string
	formWatch  bool
	formPrint  bool
)

// NewFormCommand creates the form command
func NewFormCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form <doc>",
		Short: "Preview a schema as an interactive settings form",
		Long: `Render the schema as a settings form: one collapsible panel per
section with a control for every item.

Without --values the form starts from the schema's default values. With
--values the form shows the values in that file (defaults fill the gaps)
and ctrl+s writes them back.

Form keys:
  ↑/↓ or tab  move between controls
  enter       expand or collapse a section, toggle a checkbox
  ←/→         change a slider or select
  ctrl+o      browse for a file (file picker items)
  ctrl+s      save values, q or esc quit

Examples:
  blueprint form settings.yaml
  blueprint form settings.yaml --values values.toml --watch
  blueprint form settings.yaml --print -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runForm,
	}

	cmd.Flags().StringVar(&formValues, "values", "", "Values file to edit (yaml, json or toml)")
	cmd.Flags().BoolVarP(&formWatch, "watch", "w", false, "Reload the form when the schema file changes")
	cmd.Flags().BoolVar(&formPrint, "print", false, "Print the final values on exit")

	return cmd
}

func runForm(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, err := openDocument(cmd, path)
	if err != nil {
		return err
	}
	schema := ctx.Doc.Schema()

	opts := tui.FormOptions{
		ExpandAll: ctx.Config.Form.ExpandAll,
		WrapWidth: ctx.Config.Form.WrapWidth,
	}

	form := tui.NewSettingsForm(schema, opts)
	if formValues != "" {
		values, extra, err := loadFormValues(schema, formValues)
		if err != nil {
			return err
		}
		for _, id := range sortedKeys(extra) {
			cli.PrintWarning("keeping %q from %s: no item edits it", id, formValues)
		}
		// The command is the host: it accepts every edit the form reports.
		form = form.WithValues(values).WithOnChange(func(next models.Values) {
			form.SetValues(next)
		})
		form.SetSave(saveFormValues(formValues, extra))
	}

	app := tui.NewFormApp(form)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if formWatch {
		watchCtx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		err := files.Watch(watchCtx, path, func() {
			doc, err := files.OpenDocument(path, ctx.Config.ToLayout())
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("reload failed")
				p.Send(tui.SchemaReloadMsg{Err: err})
				return
			}
			p.Send(tui.SchemaReloadMsg{Schema: doc.Schema()})
		})
		if err != nil {
			return err
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}

	if formPrint {
		return cli.OutputResults(cmd.OutOrStdout(), structuredFormat(ctx.Config.Output), form.Values())
	}
	return nil
}

// loadFormValues reads path over the schema defaults. A missing file starts
// from the defaults alone. Entries no item can edit come back in extra so a
// save writes them out again.
func loadFormValues(schema models.SettingsSchema, path string) (values, extra models.Values, err error) {
	values = models.DefaultValues(schema)
	extra = models.Values{}
	existing, err := files.ReadValues(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, extra, nil
		}
		return nil, nil, err
	}
	for id, v := range existing {
		if _, known := values[id]; known && models.IsScalar(v) {
			values[id] = v
		} else {
			extra[id] = v
		}
	}
	return values, extra, nil
}

// saveFormValues writes the form's values to path along with the extra entries
// loaded from it. Form values win on a shared id.
func saveFormValues(path string, extra models.Values) func(models.Values) error {
	return func(v models.Values) error {
		out := extra.Clone()
		for id, value := range v {
			out[id] = value
		}
		return files.WriteValues(path, out)
	}
}
