package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pluqqy/blueprint/internal/config"
	"github.com/pluqqy/blueprint/pkg/blueprint"
	"github.com/pluqqy/blueprint/pkg/files"
	"github.com/pluqqy/blueprint/pkg/models"
)

// CommandContext carries the loaded configuration, the graph editor built from it
// and the document a command works on
type CommandContext struct {
	Config *config.Config
	Editor *blueprint.Editor
	Doc    *files.Document
}

// NewCommandContext creates a new command context
func NewCommandContext(cfg *config.Config) (*CommandContext, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	editor, err := cfg.Editor()
	if err != nil {
		return nil, err
	}
	return &CommandContext{Config: cfg, Editor: editor}, nil
}

// Open loads a schema or graph document for editing
func (c *CommandContext) Open(path string) (*files.Document, error) {
	if err := ValidateFilePath(path); err != nil {
		return nil, err
	}
	doc, err := files.OpenDocument(path, c.Config.ToLayout())
	if err != nil {
		return nil, err
	}
	c.Doc = doc
	return doc, nil
}

// Graph returns the open document's graph
func (c *CommandContext) Graph() models.Graph {
	if c.Doc == nil {
		return models.Graph{}
	}
	return c.Doc.Graph
}

// Save writes g back to the open document and warns about items a schema
// document cannot hold
func (c *CommandContext) Save(g models.Graph) error {
	if c.Doc == nil {
		return fmt.Errorf("no document open")
	}
	dropped, err := c.Doc.Save(g)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", c.Doc.Path, err)
	}
	if len(dropped) > 0 {
		PrintWarning("%d detached item(s) not stored in schema document: %s (use a %s file to keep them)",
			len(dropped), strings.Join(dropped, ", "), files.GraphSuffix+".yaml")
	}
	return nil
}

// EditorLauncher opens documents in the user's text editor
type EditorLauncher struct {
	DefaultEditor string
}

// NewEditorLauncher creates a new editor launcher
func NewEditorLauncher() *EditorLauncher {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	return &EditorLauncher{
		DefaultEditor: editor,
	}
}

// Command builds the editor invocation for path
func (e *EditorLauncher) Command(path string) *exec.Cmd {
	parts := strings.Fields(e.DefaultEditor)
	if len(parts) > 1 {
		return exec.Command(parts[0], append(parts[1:], path)...)
	}
	return exec.Command(e.DefaultEditor, path)
}

// OpenFile opens a file in the configured editor
func (e *EditorLauncher) OpenFile(path string) error {
	editorCmd := e.Command(path)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}

	return nil
}
