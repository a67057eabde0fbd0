package components

import (
	"fileparse/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// StatusBar shows a spinner and a short message while an upload runs.
type StatusBar struct {
	text    string
	spinner spinner.Model
	loading bool
}

func NewStatusBar() *StatusBar {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Theme.Help

	return &StatusBar{
		spinner: s,
	}
}

// SetLoading starts or stops the spinner. The returned command drives the
// animation and is nil when stopping.
func (s *StatusBar) SetLoading(loading bool) tea.Cmd {
	s.loading = loading
	if loading {
		return s.spinner.Tick
	}
	return nil
}

func (s *StatusBar) Loading() bool {
	return s.loading
}

func (s *StatusBar) SetText(text string) {
	s.text = text
}

func (s *StatusBar) Update(msg tea.Msg) tea.Cmd {
	if s.loading {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd
	}
	return nil
}

func (s *StatusBar) View() string {
	if s.text == "" && !s.loading {
		return ""
	}

	if s.loading {
		return styles.Theme.Help.Render(s.spinner.View() + " " + s.text)
	}
	return styles.Theme.Help.Render(s.text)
}
