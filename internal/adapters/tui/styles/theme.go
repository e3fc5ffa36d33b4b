package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	InputLabel = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)

	// Item rows
	ItemPending = lipgloss.NewStyle()

	ItemDone = lipgloss.NewStyle().
			Foreground(Muted).
			Strikethrough(true)

	ItemNotebook = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA")) // Blue

	ItemSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	Checkbox = lipgloss.NewStyle().
			Foreground(Secondary)

	Locator = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	StatusLine = lipgloss.NewStyle().
			Foreground(Muted)

	RefreshBusy = lipgloss.NewStyle().
			Foreground(Warning)

	RefreshDone = lipgloss.NewStyle().
			Foreground(Secondary)
)
