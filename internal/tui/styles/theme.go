package styles

import (
	"fileparse/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles defines the core UI styles
type Styles struct {
	App        lipgloss.Style
	Title      lipgloss.Style
	Label      lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Help       lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	Error      lipgloss.Style
	Result     lipgloss.Style
}

// New builds the styles from a color palette as returned by config.GetTheme.
func New(colors map[string]string) Styles {
	c := func(key string) lipgloss.Color { return lipgloss.Color(colors[key]) }

	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(c("primary")).
			MarginBottom(1),
		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(c("emphasis")),
		Selected: lipgloss.NewStyle().
			Foreground(c("success")).
			Bold(true),
		Unselected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")),
		Help: lipgloss.NewStyle().
			Foreground(c("info")),
		Success: lipgloss.NewStyle().
			Foreground(c("success")),
		Warning: lipgloss.NewStyle().
			Foreground(c("warning")),
		Error: lipgloss.NewStyle().
			Foreground(c("error")).
			Bold(true),
		Result: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c("border")).
			Padding(0, 1),
	}
}

// Theme holds the styles in use. Apply replaces it.
var Theme = New(config.GetTheme("default"))

// Apply switches to the theme colors resolved in cfg.
func Apply(cfg *config.Config) {
	Theme = New(cfg.Colors())
}
