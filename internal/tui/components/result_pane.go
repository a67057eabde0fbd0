package components

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ResultPane scrolls the content text of a result.
type ResultPane struct {
	viewport viewport.Model
	content  string
	height   int
	width    int
}

func NewResultPane() *ResultPane {
	return &ResultPane{viewport: viewport.New(80, 12)}
}

func (rp *ResultPane) SetSize(width, height int) {
	if height < 3 {
		height = 3
	}
	rp.width = width
	rp.height = height
	rp.viewport.Width = width
	rp.viewport.Height = height
}

// SetContent replaces the text and scrolls to the top.
func (rp *ResultPane) SetContent(content string) {
	rp.content = content
	rp.viewport.SetContent(content)
	rp.viewport.GotoTop()
}

func (rp *ResultPane) Content() string {
	return rp.content
}

func (rp *ResultPane) ScrollUp() {
	rp.viewport.HalfViewUp()
}

func (rp *ResultPane) ScrollDown() {
	rp.viewport.HalfViewDown()
}

func (rp *ResultPane) Update(msg tea.Msg) tea.Cmd {
	vp, cmd := rp.viewport.Update(msg)
	rp.viewport = vp
	return cmd
}

func (rp *ResultPane) View() string {
	return rp.viewport.View()
}
