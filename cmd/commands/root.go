package commands

import (
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pluqqy/blueprint/internal/cli"
	"github.com/pluqqy/blueprint/internal/config"
	"github.com/pluqqy/blueprint/internal/logging"
)

// Global flags
var (
	cfgFile     string
	outputFlag  string
	quietFlag   bool
	noColorFlag bool
	yesFlag     bool
	logFile     string
	logLevel    string
	idsFlag     string
	snapFlag    bool
	gridFlag    float64
)

var (
	currentConfig *config.Config
	logCloser     io.Closer
)

// NewRootCommand creates the blueprint command tree
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "blueprint",
		Short: "Author settings schemas as a graph of sections and items",
		Long: `Blueprint edits settings schemas: ordered sections holding typed items
(text, toggle, slider, file picker, color picker, select).

A schema can be edited with the commands below or interactively on a
terminal canvas that shows it as a graph of positioned nodes. The form
command previews the schema as a live settings form.

Files ending in .blueprint.yaml or .blueprint.json are graph documents and
keep detached items. Any other .yaml or .json file is a schema document.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				_ = logCloser.Close()
				logCloser = nil
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default is ./blueprint.yaml)")
	flags.StringVarP(&outputFlag, "output", "o", config.DefaultOutput, "Output format: text, json, yaml")
	flags.BoolVarP(&quietFlag, "quiet", "q", false, "Suppress informational output")
	flags.BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
	flags.BoolVarP(&yesFlag, "yes", "y", false, "Answer yes to all confirmations")
	flags.StringVar(&logFile, "log-file", "", "Write debug logs to this file")
	flags.StringVar(&logLevel, "log-level", config.DefaultLevel, "Log level: debug, info, warn, error, off")
	flags.StringVar(&idsFlag, "ids", config.DefaultIDs, "Item id generator: uuid or counter")
	flags.BoolVar(&snapFlag, "snap", false, "Snap moved nodes to the layout grid")
	flags.Float64Var(&gridFlag, "grid", 10, "Grid size used when snapping")

	root.AddCommand(
		NewInitCommand(),
		NewGraphCommand(),
		NewSchemaCommand(),
		NewAddSectionCommand(),
		NewAddItemCommand(),
		NewAttachCommand(),
		NewDetachCommand(),
		NewMoveCommand(),
		NewRenameCommand(),
		NewDeleteCommand(),
		NewDuplicateCommand(),
		NewNodesCommand(),
		NewFindCommand(),
		NewValidateCommand(),
		NewValuesCommand(),
		NewExportCommand(),
		NewEditCommand(),
		NewFormCommand(),
		NewVersionCommand(version),
	)

	return root
}

// setup loads configuration and wires output, colors and logging before any
// subcommand runs
func setup(cmd *cobra.Command, args []string) error {
	cli.Stdout = cmd.OutOrStdout()
	cli.Stderr = cmd.ErrOrStderr()
	cli.Stdin = cmd.InOrStdin()

	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	currentConfig = cfg

	cli.SetGlobalFlags(quietFlag, cfg.NoColor, yesFlag)

	closer, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	logCloser = closer

	if used := config.FileUsed(); used != "" {
		log.Debug().Str("file", used).Msg("config loaded")
	}
	log.Debug().Str("command", cmd.CommandPath()).Strs("args", args).Msg("run")
	return nil
}
