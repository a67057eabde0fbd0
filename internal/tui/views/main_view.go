package views

import (
	"strings"

	"fileparse/internal/tui/common"
	"fileparse/internal/tui/styles"
	"fileparse/pkg/types"
)

// RenderMainView draws the whole upload screen.
func RenderMainView(m common.ModelReader) string {
	loc := m.Localizer()
	var sb strings.Builder

	sb.WriteString(styles.Theme.Title.Render(loc.T("title")) + "\n")
	sb.WriteString(m.FormView() + "\n")
	sb.WriteString(renderModes(m) + "\n\n")

	sb.WriteString(renderTrigger(m) + "\n")
	if s := m.StatusView(); s != "" {
		sb.WriteString(s + "\n")
	}
	if n := m.Notice(); n != "" {
		sb.WriteString(styles.Theme.Success.Render(n) + "\n")
	}
	if v := m.Validation(); v != "" {
		sb.WriteString(styles.Theme.Warning.Render(v) + "\n")
	}

	if e := m.ErrorText(); e != "" {
		sb.WriteString("\n" + styles.Theme.Error.Render(loc.T("error")) + "\n")
		sb.WriteString(styles.Theme.Error.Render(e) + "\n")
	} else if m.Result() != nil {
		sb.WriteString("\n" + renderResult(m) + "\n")
	}

	sb.WriteString("\n" + m.HelpView())
	return styles.Theme.App.Render(sb.String())
}

func renderModes(m common.ModelReader) string {
	loc := m.Localizer()
	var parts []string
	for _, mode := range types.Modes {
		label := loc.T("convertMode")
		if mode == types.OCR {
			label = loc.T("ocrMode")
		}
		if mode == m.Mode() {
			parts = append(parts, styles.Theme.Selected.Render("(•) "+label))
		} else {
			parts = append(parts, styles.Theme.Unselected.Render("( ) "+label))
		}
	}
	return styles.Theme.Label.Render(loc.T("functionLabel")) + " " + strings.Join(parts, "  ")
}

func renderTrigger(m common.ModelReader) string {
	loc := m.Localizer()
	if m.Busy() {
		return styles.Theme.Unselected.Render("[ " + loc.T("processing") + " ]")
	}
	return styles.Theme.Selected.Render("[ " + loc.T("uploadBtn") + " ]")
}

func renderResult(m common.ModelReader) string {
	view := m.Result()
	var sb strings.Builder

	copyLabel := view.CopyLabel
	if m.Copied() {
		copyLabel = m.Localizer().T("copied")
	}
	sb.WriteString(styles.Theme.Title.Render(view.Title) + "  " + styles.Theme.Help.Render("["+copyLabel+"]") + "\n")
	for _, row := range view.Rows {
		sb.WriteString(styles.Theme.Label.Render(row.Label+":") + " " + row.Value + "\n")
	}
	sb.WriteString("\n" + styles.Theme.Label.Render(view.ContentHeading+":") + "\n")
	sb.WriteString(m.ResultBody())

	return styles.Theme.Result.Render(sb.String())
}
