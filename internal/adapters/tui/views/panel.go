package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todopanel/internal/adapters/tui/styles"
	"todopanel/internal/application"
	"todopanel/internal/domain"
)

// Messages emitted by the panel for the app model to act on.
type (
	// SwitchToHelpMsg asks the app to show the help view.
	SwitchToHelpMsg struct{}
	// OpenLocatorMsg asks the app to open a notebook item's origin.
	OpenLocatorMsg struct {
		Path string
		Line int
	}
	// RefreshRequestedMsg asks the app to run a refresh cycle.
	RefreshRequestedMsg struct{}
)

// PanelKeyMap defines key bindings for the todo panel.
type PanelKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	Edit     key.Binding
	NewItem  key.Binding
	Notebook key.Binding
	Refresh  key.Binding
	Copy     key.Binding
	Open     key.Binding
	Submit   key.Binding
	Cancel   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultPanelKeys returns the default panel key bindings.
var DefaultPanelKeys = PanelKeyMap{
	Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Toggle:   key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "toggle done")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	NewItem:  key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a/i", "add item")),
	Notebook: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "toggle notebook todos")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy text")),
	Open:     key.NewBinding(key.WithKeys("o", "enter"), key.WithHelp("o", "open origin")),
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// inputTarget says what the text input is currently for.
type inputTarget int

const (
	inputNone inputTarget = iota
	inputAdd
	inputEdit
)

// PanelModel is the todo panel: the item list plus a text input that
// doubles for adding and editing.
type PanelModel struct {
	ctrl *application.Controller
	keys PanelKeyMap

	input  textinput.Model
	target inputTarget
	cursor int
	status string

	width  int
	height int
}

// NewPanelModel creates the panel bound to its controller.
func NewPanelModel(ctrl *application.Controller) *PanelModel {
	input := textinput.New()
	input.Placeholder = "What needs doing?"
	input.CharLimit = 500

	return &PanelModel{
		ctrl:  ctrl,
		keys:  DefaultPanelKeys,
		input: input,
	}
}

// SetSize updates the panel dimensions.
func (m *PanelModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 8
}

// Init returns the initial command.
func (m *PanelModel) Init() tea.Cmd {
	return nil
}

// items returns the current display projection.
func (m *PanelModel) items() []domain.Item {
	return m.ctrl.Store().Visible(m.ctrl.ShowNotebook())
}

// selected returns the item under the cursor, or nil.
func (m *PanelModel) selected() *domain.Item {
	items := m.items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return nil
	}
	return &items[m.cursor]
}

// clampCursor keeps the cursor inside the visible list.
func (m *PanelModel) clampCursor() {
	if n := len(m.items()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Update handles messages for the panel.
func (m *PanelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if m.target != inputNone {
		return m.updateInput(keyMsg)
	}
	return m.updateBrowse(keyMsg)
}

// updateInput handles keys while the text input is focused.
func (m *PanelModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		text := m.input.Value()
		switch m.target {
		case inputAdd:
			if item := m.ctrl.Store().Add(text); item != nil {
				m.cursor = 0
				m.queueSave()
			}
		case inputEdit:
			if m.ctrl.Store().CommitEdit(text) {
				m.queueSave()
			}
		}
		m.closeInput()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		if m.target == inputEdit {
			m.ctrl.Store().CancelEdit()
		}
		m.closeInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateBrowse handles keys in list-navigation mode.
func (m *PanelModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		return m, func() tea.Msg { return SwitchToHelpMsg{} }

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.NewItem):
		m.target = inputAdd
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Toggle):
		if item := m.selected(); item != nil {
			if m.ctrl.Store().Toggle(item.ID) {
				m.queueSave()
			} else if item.IsNotebook() {
				m.status = "notebook todos are read-only"
			}
			m.clampCursor()
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if item := m.selected(); item != nil {
			if m.ctrl.Store().Remove(item.ID) {
				m.queueSave()
			} else if item.IsNotebook() {
				m.status = "notebook todos vanish when the marker is removed"
			}
			m.clampCursor()
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if item := m.selected(); item != nil {
			if m.ctrl.Store().BeginEdit(item.ID) {
				m.target = inputEdit
				m.input.SetValue(item.Text)
				m.input.CursorEnd()
				m.input.Focus()
				return m, textinput.Blink
			}
			m.status = "only pending manual todos can be edited"
		}
		return m, nil

	case key.Matches(msg, m.keys.Notebook):
		m.ctrl.SetShowNotebook(!m.ctrl.ShowNotebook())
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		// The refresh control is inert unless notebook todos are
		// surfaced; the binding stays for layout stability.
		if !m.ctrl.ShowNotebook() {
			return m, nil
		}
		return m, func() tea.Msg { return RefreshRequestedMsg{} }

	case key.Matches(msg, m.keys.Copy):
		if item := m.selected(); item != nil {
			if err := clipboard.WriteAll(item.Text); err != nil {
				m.status = "clipboard unavailable"
			} else {
				m.status = "copied"
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if item := m.selected(); item != nil && item.IsNotebook() {
			line := 0
			if item.OriginLine != nil {
				line = *item.OriginLine
			}
			path := item.OriginPath
			return m, func() tea.Msg { return OpenLocatorMsg{Path: path, Line: line} }
		}
		return m, nil
	}

	return m, nil
}

func (m *PanelModel) queueSave() {
	m.ctrl.QueueSave(context.Background())
}

func (m *PanelModel) closeInput() {
	m.target = inputNone
	m.input.Blur()
	m.input.SetValue("")
	m.clampCursor()
}

// View renders the panel.
func (m *PanelModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Todos"))
	b.WriteString(m.refreshBadge())
	b.WriteString("\n\n")

	if m.target != inputNone {
		label := "add"
		if m.target == inputEdit {
			label = "edit"
		}
		b.WriteString(styles.InputLabel.Render(label+": ") + m.input.View())
		b.WriteString("\n\n")
	}

	items := m.items()
	if len(items) == 0 {
		b.WriteString(styles.Subtitle.Render("Nothing to do. Press 'a' to add a todo."))
		b.WriteString("\n")
	}
	for idx, item := range items {
		b.WriteString(m.renderItem(item, idx == m.cursor && m.target == inputNone))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(styles.StatusLine.Render(m.status))
	} else {
		b.WriteString(styles.StatusLine.Render("a add · space toggle · e edit · d delete · n notebook · r refresh · ? help"))
	}

	return styles.App.Render(b.String())
}

func (m *PanelModel) renderItem(item domain.Item, selected bool) string {
	check := "[ ]"
	if item.Done {
		check = "[x]"
	}

	text := item.Text
	var line string
	switch {
	case item.IsNotebook():
		locator := ""
		if item.OriginPath != "" {
			locator = styles.Locator.Render(fmt.Sprintf("  %s", item.OriginPath))
		}
		line = styles.Checkbox.Render(check) + " " + styles.ItemNotebook.Render(text) + locator
	case item.Done:
		line = styles.Checkbox.Render(check) + " " + styles.ItemDone.Render(text)
	default:
		line = styles.Checkbox.Render(check) + " " + styles.ItemPending.Render(text)
	}

	if selected {
		return styles.ItemSelected.Render("> ") + line
	}
	return "  " + line
}

func (m *PanelModel) refreshBadge() string {
	switch m.ctrl.RefreshState() {
	case application.Refreshing:
		return styles.RefreshBusy.Render("  refreshing…")
	case application.RefreshCompleted:
		return styles.RefreshDone.Render("  ✓ refreshed")
	default:
		return ""
	}
}
