package tui

import (
	"context"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"todopanel/internal/adapters/tui/views"
	"todopanel/internal/application"
	"todopanel/internal/domain"
	"todopanel/internal/ports"
)

// ViewState represents the current view.
type ViewState int

const (
	ViewPanel ViewState = iota
	ViewHelp
)

// completePollDelay is slightly longer than the controller's
// completed-state window, so one tick is enough to repaint after the
// machine returns to idle.
const completePollDelay = 1100 * time.Millisecond

// App is the main TUI application model. It hosts the todo panel,
// owns the mount lifetime used for cooperative cancellation, and
// relays refresh and locator requests to the controller and editor.
type App struct {
	ctrl   *application.Controller
	editor ports.LocatorOpener

	// notebookRoot resolves notebook locators to filesystem paths.
	notebookRoot string

	// mountCtx is cancelled on teardown; in-flight loads check it and
	// discard their results instead of mutating disposed state.
	mountCtx context.Context
	unmount  context.CancelFunc

	state ViewState
	panel *views.PanelModel
	help  *views.HelpModel

	width  int
	height int
}

// Load results travel back to Update as messages so every store
// mutation happens on the program loop, never on a command goroutine.
type (
	initialLoadDoneMsg struct{ items []domain.Item }
	refreshDoneMsg     struct{ items []domain.Item }
	refreshRepaintMsg  struct{}
	editorFinishedMsg  struct{ err error }
)

// NewApp creates the TUI application.
func NewApp(ctrl *application.Controller, ed ports.LocatorOpener, notebookRoot string) *App {
	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		ctrl:         ctrl,
		editor:       ed,
		notebookRoot: notebookRoot,
		mountCtx:     ctx,
		unmount:      cancel,
		state:        ViewPanel,
		panel:        views.NewPanelModel(ctrl),
		help:         views.NewHelpModel(),
	}
}

// Init kicks off the initial load. The command only runs the load
// protocol; the snapshot is applied when its message reaches Update.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.panel.Init(), func() tea.Msg {
		return initialLoadDoneMsg{items: a.ctrl.Load(a.mountCtx)}
	})
}

// Close tears the surface down: the mount context is cancelled so any
// in-flight load abandons its result, and the controller stops its
// refresh timer.
func (a *App) Close() {
	a.unmount()
	a.ctrl.Close()
}

// Update handles messages for the application.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.panel.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case initialLoadDoneMsg:
		if a.mountCtx.Err() == nil {
			a.ctrl.Store().Replace(msg.items)
		}
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToPanelMsg:
		a.state = ViewPanel
		return a, nil

	case views.RefreshRequestedMsg:
		a.ctrl.BeginRefresh()
		return a, a.runRefresh()

	case refreshDoneMsg:
		a.ctrl.FinishRefresh(a.mountCtx, msg.items)
		// Repaint once more after the completed state times out.
		return a, tea.Tick(completePollDelay, func(time.Time) tea.Msg {
			return refreshRepaintMsg{}
		})

	case refreshRepaintMsg:
		return a, nil

	case views.OpenLocatorMsg:
		return a, a.openLocator(msg)

	case editorFinishedMsg:
		return a, nil
	}

	// Delegate to the current view.
	var cmd tea.Cmd
	switch a.state {
	case ViewPanel:
		_, cmd = a.panel.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}
	return a, cmd
}

// runRefresh runs the load protocol off the update loop and hands the
// snapshot back as a message; Update applies it.
func (a *App) runRefresh() tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{items: a.ctrl.Load(a.mountCtx)}
	}
}

// openLocator opens a notebook todo's origin file in the editor.
func (a *App) openLocator(msg views.OpenLocatorMsg) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	path := msg.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.notebookRoot, filepath.FromSlash(path))
	}

	cmd, err := a.editor.LocatorCommand(path, msg.Line)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view.
func (a *App) View() string {
	if a.state == ViewHelp {
		return a.help.View()
	}
	return a.panel.View()
}
