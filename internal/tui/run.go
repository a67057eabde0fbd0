package tui

import (
	"io"

	"fileparse/internal/log"
	"fileparse/internal/upload"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the upload screen until the user quits. Log lines would tear the
// alternate screen, so they only reach the configured log file meanwhile.
func Run(ctrl *upload.Controller) error {
	restore := log.Redirect(io.Discard)
	defer restore()

	presenter := NewPresenter(nil)
	ctrl.SetPresenter(presenter)

	p := tea.NewProgram(New(ctrl), tea.WithAltScreen())
	presenter.Attach(p.Send)

	_, err := p.Run()
	return err
}
