package messages

import "fileparse/internal/upload"

// BusyMsg toggles the busy indicator.
type BusyMsg struct {
	Busy bool
}

// ClearResultMsg hides the previous result.
type ClearResultMsg struct{}

// ValidationMsg carries a message for a rejected submission.
type ValidationMsg struct {
	Text string
}

// ResultMsg carries a rendered upload result.
type ResultMsg struct {
	View upload.ResultView
}

// ErrorMsg carries a failed request message.
type ErrorMsg struct {
	Text string
}

// KeySavedMsg reports the outcome of saving the API key.
type KeySavedMsg struct {
	Err error
}

// CopyResetMsg restores the copy label after the confirmation delay.
type CopyResetMsg struct{}

// TypesRefreshedMsg reports the accept list after asking the server.
type TypesRefreshedMsg struct {
	Extensions []string
	Err        error
}
