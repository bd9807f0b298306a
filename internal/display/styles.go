package display

import "github.com/charmbracelet/lipgloss"

// Styles are the text styles used for table output, bound to one renderer.
type Styles struct {
	Header     lipgloss.Style
	Street     lipgloss.Style
	Action     lipgloss.Style
	Fold       lipgloss.Style
	Aggressive lipgloss.Style
	RedCard    lipgloss.Style
	BlackCard  lipgloss.Style
	Player     lipgloss.Style
	Success    lipgloss.Style
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Info       lipgloss.Style
}

// NewStyles builds the palette for r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		Street: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Action: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		Fold: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Aggressive: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		RedCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		Player: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")),
		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}
