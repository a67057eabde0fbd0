package tui

import (
	"sync"

	"fileparse/internal/tui/messages"
	"fileparse/internal/upload"

	tea "github.com/charmbracelet/bubbletea"
)

// Presenter turns controller callbacks into program messages. Controller
// calls that present are made from commands, never from Update, because
// sending to the program from its own event loop would block.
type Presenter struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

// NewPresenter creates a presenter delivering to send. A nil send drops
// messages until Attach is called.
func NewPresenter(send func(tea.Msg)) *Presenter {
	return &Presenter{send: send}
}

// Attach sets the delivery function, usually (*tea.Program).Send.
func (p *Presenter) Attach(send func(tea.Msg)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.send = send
}

func (p *Presenter) deliver(msg tea.Msg) {
	p.mu.Lock()
	send := p.send
	p.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

func (p *Presenter) SetBusy(busy bool)                 { p.deliver(messages.BusyMsg{Busy: busy}) }
func (p *Presenter) ClearResult()                      { p.deliver(messages.ClearResultMsg{}) }
func (p *Presenter) ShowValidation(msg string)         { p.deliver(messages.ValidationMsg{Text: msg}) }
func (p *Presenter) ShowResult(view upload.ResultView) { p.deliver(messages.ResultMsg{View: view}) }
func (p *Presenter) ShowError(msg string)              { p.deliver(messages.ErrorMsg{Text: msg}) }
