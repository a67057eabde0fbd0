package tui

import (
	"context"
	"strings"
	"time"

	"fileparse/internal/errors"
	"fileparse/internal/i18n"
	"fileparse/internal/log"
	"fileparse/internal/tui/common"
	"fileparse/internal/tui/components"
	"fileparse/internal/tui/messages"
	"fileparse/internal/tui/views"
	"fileparse/internal/upload"
	"fileparse/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the upload screen.
type Model struct {
	ctrl *upload.Controller
	keys types.KeyMap
	help help.Model

	form   *components.Form
	status *components.StatusBar
	pane   *components.ResultPane

	// Presentation state, fed by controller messages
	busy       bool
	notice     string
	validation string
	errText    string
	result     *upload.ResultView
	copied     bool

	width  int
	height int
}

// New creates the model. The controller's presenter must deliver to the
// running program; Run takes care of that.
func New(ctrl *upload.Controller) *Model {
	m := &Model{
		ctrl:   ctrl,
		keys:   types.DefaultKeyMap(),
		help:   help.New(),
		form:   components.NewForm(),
		status: components.NewStatusBar(),
		pane:   components.NewResultPane(),
	}
	if k, ok := ctrl.Credential(); ok {
		m.form.SetKey(k)
	}
	if f := ctrl.File(); !f.Empty() {
		m.form.SetFile(f.Path)
	}
	m.relabel()
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.refreshTypes
}

func (m *Model) refreshTypes() tea.Msg {
	exts, err := m.ctrl.RefreshSupportedTypes(context.Background())
	return messages.TypesRefreshedMsg{Extensions: exts, Err: err}
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.pane.SetSize(msg.Width-6, msg.Height-22)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case messages.BusyMsg:
		m.busy = msg.Busy
		if msg.Busy {
			m.status.SetText(m.ctrl.Localizer().T("processing"))
		} else {
			m.status.SetText("")
		}
		return m, m.status.SetLoading(msg.Busy)

	case messages.ClearResultMsg:
		m.result = nil
		m.errText = ""
		m.validation = ""
		m.notice = ""
		m.copied = false
		m.pane.SetContent("")
		return m, nil

	case messages.ValidationMsg:
		m.validation = msg.Text
		return m, nil

	case messages.ResultMsg:
		view := msg.View
		m.result = &view
		m.pane.SetContent(view.Content)
		return m, nil

	case messages.ErrorMsg:
		m.errText = msg.Text
		return m, nil

	case messages.KeySavedMsg:
		if msg.Err == nil {
			m.validation = ""
			m.notice = m.ctrl.Localizer().T("saveSuccess")
		}
		return m, nil

	case messages.CopyResetMsg:
		m.copied = false
		return m, nil

	case messages.TypesRefreshedMsg:
		if msg.Err != nil {
			log.LogWithError(msg.Err).Debug("using built-in accept list")
		}
		m.relabel()
		return m, nil
	}

	return m, m.status.Update(msg)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		return m, m.form.FocusNext()

	case key.Matches(msg, m.keys.ToggleMode):
		m.ctrl.SetMode(m.ctrl.Mode().Toggle())
		m.relabel()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		// The trigger is disabled while a request is in flight
		if m.busy {
			return m, nil
		}
		m.ctrl.SelectFile(m.form.File())
		return m, m.submit

	case key.Matches(msg, m.keys.SaveKey):
		value := m.form.Key()
		return m, func() tea.Msg {
			return messages.KeySavedMsg{Err: m.ctrl.SaveCredential(value)}
		}

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyResult()

	case key.Matches(msg, m.keys.ToggleLang):
		if err := m.ctrl.SetLanguage(m.ctrl.Language().Toggle()); err != nil {
			log.LogWithError(err).Warn("could not store language")
		}
		m.relabel()
		if view, ok := m.ctrl.CurrentView(); ok {
			m.result = &view
		}
		m.notice = m.ctrl.Localizer().T("languageSwitched")
		return m, nil

	case key.Matches(msg, m.keys.ClearResult):
		return m.Update(messages.ClearResultMsg{})

	case key.Matches(msg, m.keys.ScrollUp):
		m.pane.ScrollUp()
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.pane.ScrollDown()
		return m, nil
	}

	return m, m.form.Update(msg)
}

func (m *Model) submit() tea.Msg {
	// Outcomes arrive through the presenter
	_, _ = m.ctrl.Submit(context.Background())
	return nil
}

func (m *Model) copyResult() tea.Cmd {
	if m.result == nil {
		return nil
	}
	if err := m.ctrl.CopyResult(); err != nil {
		m.errText = err.Error()
		if errors.Is(err, upload.ErrNoClipboard) {
			m.errText = m.ctrl.Localizer().T("noClipboard")
		}
		return nil
	}
	m.copied = true
	return tea.Tick(m.ctrl.CopyFeedback(), func(time.Time) tea.Msg {
		return messages.CopyResetMsg{}
	})
}

// relabel refreshes every language or mode dependent label.
func (m *Model) relabel() {
	loc := m.ctrl.Localizer()
	m.form.SetLabels(loc.T("apiKeyLabel"), loc.T("apiKeyPlaceholder"), loc.T("fileInputLabel"), loc.T("filePlaceholder"))

	hint := loc.T("convertAcceptHint")
	if m.ctrl.Mode() == types.OCR {
		hint = loc.T("ocrAcceptHint")
	}
	m.form.SetHint(hint + " (" + strings.Join(m.ctrl.Accept(), " ") + ")")
}

// Getters used by views

func (m *Model) Localizer() i18n.Localizer  { return m.ctrl.Localizer() }
func (m *Model) Mode() types.Mode           { return m.ctrl.Mode() }
func (m *Model) Accept() []string           { return m.ctrl.Accept() }
func (m *Model) Focus() common.Focus        { return m.form.Focus() }
func (m *Model) FormView() string           { return m.form.View() }
func (m *Model) StatusView() string         { return m.status.View() }
func (m *Model) Busy() bool                 { return m.busy }
func (m *Model) Notice() string             { return m.notice }
func (m *Model) Validation() string         { return m.validation }
func (m *Model) ErrorText() string          { return m.errText }
func (m *Model) Result() *upload.ResultView { return m.result }
func (m *Model) ResultBody() string         { return m.pane.View() }
func (m *Model) Copied() bool               { return m.copied }
func (m *Model) HelpView() string           { return m.help.View(m.keys) }
