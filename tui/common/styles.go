package common

import "github.com/charmbracelet/lipgloss"

var (
	// AppTitleStyle styles the application title. Rendered at call site with content.
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6600")).
			Padding(1, 2, 0, 1)

	// BreadcrumbStyle styles the navigation trail under the title.
	BreadcrumbStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			MarginLeft(1).
			MarginBottom(1)

	// AuthorStyle styles the post author name.
	AuthorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DC4E4"))

	// UsernameStyle styles the @handle next to the author.
	UsernameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8AADF4"))

	// TimestampStyle styles timestamps.
	TimestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// ContentStyle styles post content text.
	ContentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	// FocusContentStyle styles the content of the status the thread was opened for.
	FocusContentStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F4DBD6")).
				Bold(true)

	// GutterStyle styles the reply depth bars.
	GutterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#45475A"))

	// JumpUpStyle marks a reply that returns to a shallower branch.
	JumpUpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EED49F"))

	// CollapsedStyle styles the placeholder for folded replies.
	CollapsedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Italic(true)

	// CursorStyle draws the selection marker.
	CursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6600")).
			Bold(true)

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Padding(1, 0, 0, 0)

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// SuccessStyle styles success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)
)
