//go:build !nogui
// +build !nogui

package gui

import (
	"fileparse/internal/i18n"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// buildWidgets creates every widget. Texts are set later by relabel.
func (a *App) buildWidgets() {
	a.title = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	a.keyLabel = widget.NewLabel("")
	a.keyEntry = widget.NewPasswordEntry()
	if key, ok := a.ctrl.Credential(); ok {
		a.keyEntry.SetText(key)
	}
	a.saveKeyBtn = widget.NewButtonWithIcon("", theme.DocumentSaveIcon(), a.saveKey)

	a.modeLabel = widget.NewLabel("")
	a.modeGroup = widget.NewRadioGroup(nil, a.onModeChanged)
	a.modeGroup.Horizontal = true
	a.modeGroup.Required = true

	a.fileLabel = widget.NewLabel("")
	a.fileName = widget.NewLabel("")
	a.fileName.Truncation = fyne.TextTruncateEllipsis
	a.chooseBtn = widget.NewButtonWithIcon("", theme.FolderOpenIcon(), a.chooseFile)
	a.hint = widget.NewLabel("")
	a.hint.Wrapping = fyne.TextWrapWord
	a.hint.Importance = widget.LowImportance

	a.uploadBtn = widget.NewButtonWithIcon("", theme.UploadIcon(), a.upload)
	a.uploadBtn.Importance = widget.HighImportance
	a.progress = widget.NewProgressBarInfinite()
	a.progress.Stop()
	a.progress.Hide()

	a.validation = widget.NewLabel("")
	a.validation.Importance = widget.WarningImportance
	a.validation.Wrapping = fyne.TextWrapWord
	a.notice = widget.NewLabel("")
	a.notice.Importance = widget.SuccessImportance

	a.zhBtn = widget.NewButton("中文", func() { a.setLanguage(i18n.Chinese) })
	a.enBtn = widget.NewButton("English", func() { a.setLanguage(i18n.English) })

	a.errorText = widget.NewLabel("")
	a.errorText.Importance = widget.DangerImportance
	a.errorText.Wrapping = fyne.TextWrapWord
	a.errorCard = widget.NewCard("", "", a.errorText)
	a.errorCard.Hide()

	a.resultRows = widget.NewForm()
	a.contentHeading = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	a.content = widget.NewLabel("")
	a.content.Wrapping = fyne.TextWrapWord
	a.copyBtn = widget.NewButtonWithIcon("", theme.ContentCopyIcon(), a.copyResult)
	a.resultCard = widget.NewCard("", "", container.NewVBox(
		a.resultRows,
		container.NewBorder(nil, nil, a.contentHeading, a.copyBtn),
		a.content,
	))
	a.resultCard.Hide()
}

// layout arranges the form above the outcome cards.
func (a *App) layout() fyne.CanvasObject {
	header := container.NewBorder(nil, nil, nil,
		container.NewHBox(a.zhBtn, a.enBtn),
		a.title,
	)

	form := container.NewVBox(
		a.keyLabel,
		container.NewBorder(nil, nil, nil, a.saveKeyBtn, a.keyEntry),
		a.modeLabel,
		a.modeGroup,
		a.fileLabel,
		container.NewBorder(nil, nil, nil, a.chooseBtn, a.fileName),
		a.hint,
		container.NewHBox(layout.NewSpacer(), a.uploadBtn, layout.NewSpacer()),
		a.progress,
		a.validation,
		a.notice,
	)

	return container.NewBorder(
		container.NewVBox(header, widget.NewSeparator()),
		nil, nil, nil,
		container.NewVScroll(container.NewVBox(form, a.errorCard, a.resultCard)),
	)
}
