package common

import (
	"fileparse/internal/i18n"
	"fileparse/internal/upload"
	"fileparse/pkg/types"
)

// Focus is the input receiving key presses.
type Focus int

const (
	FocusKey Focus = iota
	FocusFile
)

// Next returns the other input.
func (f Focus) Next() Focus {
	if f == FocusKey {
		return FocusFile
	}
	return FocusKey
}

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Localizer() i18n.Localizer
	Mode() types.Mode
	Accept() []string
	Focus() Focus
	FormView() string
	StatusView() string
	Busy() bool
	Notice() string
	Validation() string
	ErrorText() string
	Result() *upload.ResultView
	ResultBody() string
	Copied() bool
	HelpView() string
}
