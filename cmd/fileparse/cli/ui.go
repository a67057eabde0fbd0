// Package cli holds the terminal output helpers of the fileparse command.
package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"fileparse/internal/i18n"
	"fileparse/internal/tui/styles"
	"fileparse/internal/upload"
)

func SuccessText(s string) string { return styles.Theme.Success.Render(s) }
func ErrorText(s string) string   { return styles.Theme.Error.Render(s) }
func WarningText(s string) string { return styles.Theme.Warning.Render(s) }
func InfoText(s string) string    { return styles.Theme.Help.Render(s) }

// RenderView formats a result for the terminal.
func RenderView(view upload.ResultView) string {
	var sb strings.Builder
	sb.WriteString(styles.Theme.Title.Render(view.Title) + "\n")
	for _, row := range view.Rows {
		sb.WriteString(styles.Theme.Label.Render(row.Label+":") + " " + row.Value + "\n")
	}
	sb.WriteString("\n" + styles.Theme.Label.Render(view.ContentHeading+":") + "\n")
	sb.WriteString(view.Content)
	return sb.String()
}

// Presenter prints controller output. Results go to Out; progress,
// validation and errors go to Err so Out can be piped.
type Presenter struct {
	Out io.Writer
	Err io.Writer
	// Raw prints only the content text of a result.
	Raw bool
	// Loc translates progress lines. It starts out as English.
	Loc i18n.Localizer

	mu    sync.Mutex
	shown bool
}

// NewPresenter creates a presenter writing to out and errOut.
func NewPresenter(out, errOut io.Writer, raw bool) *Presenter {
	return &Presenter{
		Out: out,
		Err: errOut,
		Raw: raw,
		Loc: i18n.Localizer{Catalog: i18n.Default(), Lang: i18n.English},
	}
}

func (p *Presenter) SetBusy(busy bool) {
	if busy {
		fmt.Fprintln(p.Err, InfoText(p.Loc.T("processing")))
	}
}

func (p *Presenter) ClearResult() {
	p.mu.Lock()
	p.shown = false
	p.mu.Unlock()
}

func (p *Presenter) ShowValidation(msg string) {
	p.report(WarningText(msg))
}

func (p *Presenter) ShowResult(view upload.ResultView) {
	if p.Raw {
		fmt.Fprint(p.Out, view.Content)
		if !strings.HasSuffix(view.Content, "\n") {
			fmt.Fprintln(p.Out)
		}
		return
	}
	fmt.Fprintln(p.Out, styles.Theme.Result.Render(RenderView(view)))
}

func (p *Presenter) ShowError(msg string) {
	p.report(ErrorText(msg))
}

func (p *Presenter) report(line string) {
	p.mu.Lock()
	p.shown = true
	p.mu.Unlock()
	fmt.Fprintln(p.Err, line)
}

// Reported tells whether a validation or error message has been printed
// since the last ClearResult.
func (p *Presenter) Reported() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shown
}

var _ upload.Presenter = (*Presenter)(nil)
