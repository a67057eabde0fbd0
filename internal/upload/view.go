package upload

import (
	"strconv"
	"strings"

	"fileparse/internal/errors"
	"fileparse/internal/i18n"
	"fileparse/pkg/types"
)

// Row is one labelled line of a result.
type Row struct {
	Label string
	Value string
}

// ResultView is an upload result with every label resolved for one language.
type ResultView struct {
	Mode           types.Mode
	Title          string
	Rows           []Row
	ContentHeading string
	Content        string
	CopyLabel      string
}

// Render builds the view for res. Both modes share the filename, size,
// duration and cache rows; only the title and content heading differ.
func Render(res *types.UploadResult, loc i18n.Localizer) ResultView {
	view := ResultView{
		Mode:      res.Mode,
		Content:   res.Content,
		CopyLabel: loc.T("copyContent"),
	}
	if res.Mode == types.OCR {
		view.Title = loc.T("ocrResult")
		view.ContentHeading = loc.T("ocrText")
	} else {
		view.Title = loc.T("convertResult")
		view.ContentHeading = loc.T("convertContent")
	}

	cached := loc.T("no")
	if res.FromCache {
		cached = loc.T("yes")
	}

	view.Rows = []Row{
		{Label: loc.T("filename"), Value: res.Filename},
		{Label: loc.T("fileSize"), Value: loc.Tf("bytes", map[string]interface{}{"Size": res.Size})},
		{Label: loc.T("processTime"), Value: loc.Tf("millis", map[string]interface{}{"Duration": res.DurationMS})},
		{Label: loc.T("fromCache"), Value: cached},
	}
	return view
}

// Text formats the view as plain text.
func (v ResultView) Text() string {
	var b strings.Builder
	b.WriteString(v.Title)
	b.WriteString("\n")
	for _, r := range v.Rows {
		b.WriteString(r.Label)
		b.WriteString(": ")
		b.WriteString(r.Value)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.ContentHeading)
	b.WriteString(":\n")
	b.WriteString(v.Content)
	return b.String()
}

// ErrorMessage turns err into the message shown to the user.
func ErrorMessage(err error, loc i18n.Localizer) string {
	switch {
	case errors.IsMissingCredential(err):
		return loc.T("pleaseSaveKey")
	case errors.IsMissingFile(err):
		return loc.T("pleaseSelectFile")
	case errors.IsBusy(err):
		return loc.T("busy")
	}

	var reqErr *errors.RequestError
	if errors.As(err, &reqErr) && reqErr.Status() != 0 && reqErr.Kind() == errors.RequestFailed {
		return loc.Tf("uploadFailed", map[string]interface{}{
			"Code": strconv.Itoa(reqErr.Status()),
			"Body": reqErr.Body(),
		})
	}
	return loc.Tf("networkError", map[string]interface{}{"Detail": err.Error()})
}
