//go:build !nogui
// +build !nogui

package gui

import (
	"fileparse/internal/upload"

	"fyne.io/fyne/v2/widget"
)

// SetBusy disables the upload button and runs the progress bar.
func (a *App) SetBusy(busy bool) {
	loc := a.ctrl.Localizer()
	if busy {
		a.uploadBtn.Disable()
		a.uploadBtn.SetText(loc.T("processing"))
		a.progress.Show()
		a.progress.Start()
		return
	}
	a.progress.Stop()
	a.progress.Hide()
	a.uploadBtn.SetText(loc.T("uploadBtn"))
	a.uploadBtn.Enable()
}

func (a *App) ClearResult() {
	a.validation.SetText("")
	a.notice.SetText("")
	a.errorText.SetText("")
	a.errorCard.Hide()
	a.resultCard.Hide()
}

func (a *App) ShowValidation(msg string) {
	a.validation.SetText(msg)
}

func (a *App) ShowResult(view upload.ResultView) {
	items := make([]*widget.FormItem, 0, len(view.Rows))
	for _, row := range view.Rows {
		items = append(items, widget.NewFormItem(row.Label, widget.NewLabel(row.Value)))
	}
	a.resultRows.Items = items
	a.resultRows.Refresh()

	a.resultCard.SetTitle(view.Title)
	a.contentHeading.SetText(view.ContentHeading + ":")
	a.content.SetText(view.Content)
	a.copyBtn.SetText(view.CopyLabel)
	a.errorCard.Hide()
	a.resultCard.Show()
}

func (a *App) ShowError(msg string) {
	a.errorText.SetText(msg)
	a.resultCard.Hide()
	a.errorCard.Show()
}

var _ upload.Presenter = (*App)(nil)
