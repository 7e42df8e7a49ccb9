package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/blueprint/pkg/blueprint"
	"github.com/pluqqy/blueprint/pkg/models"
)

type sessionState int

const (
	canvasView sessionState = iota
	formView
)

const statusDuration = 4 * time.Second

// App routes messages between the canvas and the settings form and owns the
// status bar
type App struct {
	state     sessionState
	canvas    *CanvasModel
	form      *SettingsFormModel
	formOpts  FormOptions
	width     int
	height    int
	statusMsg string
	statusSeq int
}

// NewCanvasApp starts on the canvas. The form is only used for previews.
func NewCanvasApp(editor *blueprint.Editor, g models.Graph, canvas CanvasOptions, form FormOptions) *App {
	return &App{
		state:    canvasView,
		canvas:   NewCanvasModel(editor, g, canvas),
		formOpts: form,
	}
}

// NewFormApp shows a settings form on its own; leaving the form quits
func NewFormApp(form *SettingsFormModel) *App {
	return &App{
		state:    formView,
		form:     form,
		formOpts: form.opts,
	}
}

// Dirty reports unsaved canvas changes
func (a *App) Dirty() bool {
	return a.canvas != nil && a.canvas.Dirty()
}

// Canvas returns the canvas model, nil for form-only apps
func (a *App) Canvas() *CanvasModel {
	return a.canvas
}

func (a *App) Init() tea.Cmd {
	if a.state == formView && a.form != nil {
		return a.form.Init()
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Leave a line for the status bar
		if a.canvas != nil {
			a.canvas.SetSize(msg.Width, msg.Height-1)
		}
		if a.form != nil {
			a.form.SetSize(msg.Width, msg.Height-1)
		}
		if a.state == formView && a.form != nil && a.form.pickingID != "" {
			_, cmd := a.form.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case StatusMsg:
		a.statusMsg = string(msg)
		a.statusSeq++
		seq := a.statusSeq
		return a, tea.Tick(statusDuration, func(time.Time) tea.Msg {
			return clearStatusMsg{seq: seq}
		})

	case clearStatusMsg:
		if msg.seq == a.statusSeq {
			a.statusMsg = ""
		}
		return a, nil

	case SchemaReloadMsg:
		if a.form == nil {
			return a, nil
		}
		_, cmd := a.form.Update(msg)
		return a, cmd

	case closeFormMsg:
		if a.canvas == nil {
			return a, tea.Quit
		}
		a.state = canvasView
		return a, nil

	case SwitchViewMsg:
		switch msg.view {
		case canvasView:
			if a.canvas != nil {
				a.state = canvasView
			}
			return a, nil
		case formView:
			if msg.schema != nil {
				a.form = NewSettingsForm(*msg.schema, a.formOpts)
				a.form.SetSize(a.width, a.height-1)
			}
			if a.form == nil {
				return a, nil
			}
			a.state = formView
			return a, a.form.Init()
		}
	}

	var cmd tea.Cmd
	switch a.state {
	case canvasView:
		_, cmd = a.canvas.Update(msg)
	case formView:
		_, cmd = a.form.Update(msg)
	}
	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var content string
	switch a.state {
	case canvasView:
		content = a.canvas.View()
	case formView:
		content = a.form.View()
	}

	if a.statusMsg != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, StatusStyle.Render(a.statusMsg))
	}
	return content
}

// StatusMsg shows a transient line in the status bar
type StatusMsg string

type clearStatusMsg struct {
	seq int
}

// SwitchViewMsg changes the active view. A schema opens a fresh form preview.
type SwitchViewMsg struct {
	view   sessionState
	schema *models.SettingsSchema
}
