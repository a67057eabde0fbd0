//go:build !nogui
// +build !nogui

package gui

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fileparse/internal/errors"
	"fileparse/internal/i18n"
	"fileparse/internal/log"
	"fileparse/internal/prefs"
	"fileparse/internal/upload"
	"fileparse/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// AppID keys the fyne preferences file.
const AppID = "io.github.fileparse"

// App is the GUI application
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	ctrl    *upload.Controller

	// Form
	title      *widget.Label
	keyLabel   *widget.Label
	keyEntry   *widget.Entry
	saveKeyBtn *widget.Button
	modeLabel  *widget.Label
	modeGroup  *widget.RadioGroup
	fileLabel  *widget.Label
	fileName   *widget.Label
	chooseBtn  *widget.Button
	hint       *widget.Label
	uploadBtn  *widget.Button
	progress   *widget.ProgressBarInfinite
	validation *widget.Label
	notice     *widget.Label
	zhBtn      *widget.Button
	enBtn      *widget.Button

	// Outcome
	errorCard      *widget.Card
	errorText      *widget.Label
	resultCard     *widget.Card
	resultRows     *widget.Form
	contentHeading *widget.Label
	content        *widget.Label
	copyBtn        *widget.Button

	mu         sync.Mutex
	relabeling bool
	copyGen    int
}

// Start opens the desktop window and blocks until it is closed. overrides
// take precedence over stored preferences (FILEPARSE_API_KEY).
func Start(api upload.Uploader, overrides map[string]string, opts ...upload.Option) error {
	a := NewApp(app.NewWithID(AppID), api, overrides, opts...)
	a.ShowAndRun()
	return nil
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return true
}

// NewApp builds the window around a new controller. Preferences live in the
// fyne app's store and copies go to the window clipboard unless opts say
// otherwise.
func NewApp(fyneApp fyne.App, api upload.Uploader, overrides map[string]string, opts ...upload.Option) *App {
	a := &App{fyneApp: fyneApp}
	a.window = fyneApp.NewWindow("File Parser")

	store := prefs.NewOverlay(NewPreferenceStore(fyneApp.Preferences()), overrides)
	opts = append([]upload.Option{upload.WithClipboard(WindowClipboard{Window: a.window})}, opts...)
	a.ctrl = upload.New(api, store, a, opts...)

	a.buildWidgets()
	a.window.SetContent(a.layout())
	a.window.Resize(fyne.NewSize(720, 640))
	a.relabel()
	return a
}

// Controller returns the controller behind the window.
func (a *App) Controller() *upload.Controller {
	return a.ctrl
}

// GetMainWindow returns the main window instance
func (a *App) GetMainWindow() fyne.Window {
	return a.window
}

// ShowAndRun refreshes the accept list in the background and runs the
// event loop.
func (a *App) ShowAndRun() {
	go a.refreshTypes()
	a.window.ShowAndRun()
}

func (a *App) refreshTypes() {
	if _, err := a.ctrl.RefreshSupportedTypes(context.Background()); err != nil {
		log.LogWithError(err).Debug("using built-in accept list")
	}
	a.updateHint()
}

func (a *App) saveKey() {
	a.notice.SetText("")
	if err := a.ctrl.SaveCredential(a.keyEntry.Text); err != nil {
		if !errors.IsMissingCredential(err) {
			dialog.ShowError(err, a.window)
		}
		return
	}
	a.validation.SetText("")
	a.notice.SetText(a.ctrl.Localizer().T("saveSuccess"))
}

func (a *App) chooseFile() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if rc == nil {
			return
		}
		defer rc.Close()
		a.selectFile(rc.URI().Path())
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter(a.ctrl.Accept()))
	d.Show()
}

func (a *App) selectFile(path string) {
	a.ctrl.SelectFile(path)
	if path == "" {
		a.fileName.SetText(a.ctrl.Localizer().T("noFileSelected"))
		return
	}
	a.fileName.SetText(filepath.Base(path))
}

// upload runs the request off the event loop; the controller reports back
// through the presenter methods.
func (a *App) upload() {
	go func() {
		_, _ = a.ctrl.Submit(context.Background())
	}()
}

func (a *App) onModeChanged(label string) {
	a.mu.Lock()
	skip := a.relabeling
	a.mu.Unlock()
	if skip {
		return
	}
	for i, opt := range a.modeGroup.Options {
		if opt == label {
			a.ctrl.SetMode(types.Modes[i])
		}
	}
	a.updateHint()
}

func (a *App) copyResult() {
	if err := a.ctrl.CopyResult(); err != nil {
		log.LogError(err, "copy to clipboard failed")
		dialog.ShowError(err, a.window)
		return
	}

	a.mu.Lock()
	a.copyGen++
	gen := a.copyGen
	a.mu.Unlock()

	a.copyBtn.SetText(a.ctrl.Localizer().T("copied"))
	time.AfterFunc(a.ctrl.CopyFeedback(), func() {
		a.mu.Lock()
		current := a.copyGen == gen
		a.mu.Unlock()
		if current {
			a.copyBtn.SetText(a.ctrl.Localizer().T("copyContent"))
		}
	})
}

func (a *App) setLanguage(l i18n.Lang) {
	if err := a.ctrl.SetLanguage(l); err != nil {
		log.LogWithError(err).Warn("could not store language")
	}
	a.relabel()
	if view, ok := a.ctrl.CurrentView(); ok {
		a.ShowResult(view)
	}
	a.notice.SetText(a.ctrl.Localizer().T("languageSwitched"))
}

// relabel refreshes every text that depends on the language.
func (a *App) relabel() {
	loc := a.ctrl.Localizer()

	a.window.SetTitle(loc.T("title"))
	a.title.SetText(loc.T("title"))
	a.keyLabel.SetText(loc.T("apiKeyLabel"))
	a.keyEntry.SetPlaceHolder(loc.T("apiKeyPlaceholder"))
	a.saveKeyBtn.SetText(loc.T("saveKeyBtn"))
	a.modeLabel.SetText(loc.T("functionLabel"))
	a.fileLabel.SetText(loc.T("fileInputLabel"))
	a.chooseBtn.SetText(loc.T("chooseFile"))
	if a.ctrl.File().Empty() {
		a.fileName.SetText(loc.T("noFileSelected"))
	}
	a.errorCard.SetTitle(loc.T("error"))
	a.copyBtn.SetText(loc.T("copyContent"))
	if a.ctrl.Busy() {
		a.uploadBtn.SetText(loc.T("processing"))
	} else {
		a.uploadBtn.SetText(loc.T("uploadBtn"))
	}

	a.mu.Lock()
	a.relabeling = true
	a.mu.Unlock()
	a.modeGroup.Options = []string{loc.T("convertMode"), loc.T("ocrMode")}
	for i, m := range types.Modes {
		if m == a.ctrl.Mode() {
			a.modeGroup.SetSelected(a.modeGroup.Options[i])
		}
	}
	a.modeGroup.Refresh()
	a.mu.Lock()
	a.relabeling = false
	a.mu.Unlock()

	a.updateHint()
}

func (a *App) updateHint() {
	loc := a.ctrl.Localizer()
	hint := loc.T("convertAcceptHint")
	if a.ctrl.Mode() == types.OCR {
		hint = loc.T("ocrAcceptHint")
	}
	a.hint.SetText(hint + " (" + strings.Join(a.ctrl.Accept(), " ") + ")")
}
