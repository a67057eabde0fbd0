package upload

import "github.com/atotto/clipboard"

// Clipboard receives copied result text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Available reports whether a clipboard utility was found. On Linux this
// needs xclip, xsel or wl-clipboard.
func (SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}
