package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"todopanel/internal/adapters/tui/styles"
)

// SwitchToPanelMsg asks the app to return to the todo panel.
type SwitchToPanelMsg struct{}

// HelpKeyMap defines key bindings for the help view.
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view.
type HelpModel struct {
	width  int
	height int
}

// NewHelpModel creates a new help view model.
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view.
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the view dimensions.
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the help view.
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToPanelMsg{}
			}
		}
	}
	return m, nil
}

// View renders the help view.
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Todo Panel Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Actions"))
	b.WriteString("\n")
	b.WriteString(helpLine("a / i", "Add a new todo"))
	b.WriteString(helpLine("space / x", "Toggle done (manual todos only)"))
	b.WriteString(helpLine("e", "Edit text (pending manual todos only)"))
	b.WriteString(helpLine("d", "Delete (manual todos only)"))
	b.WriteString(helpLine("c", "Copy todo text to clipboard"))
	b.WriteString(helpLine("o / enter", "Open a notebook todo's origin"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Notebook todos"))
	b.WriteString("\n")
	b.WriteString(helpLine("n", "Show/hide notebook-derived todos"))
	b.WriteString(helpLine("r", "Refresh from the server and rescan"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Other"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle this help"))
	b.WriteString(helpLine("q", "Quit"))

	return styles.App.Render(b.String())
}

func helpLine(keys, description string) string {
	return fmt.Sprintf("  %-16s %s\n", keys, description)
}
