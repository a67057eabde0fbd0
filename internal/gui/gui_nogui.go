//go:build nogui
// +build nogui

package gui

import (
	"fmt"

	"fileparse/internal/upload"
)

// Start is a stub implementation for builds with GUI disabled
func Start(api upload.Uploader, overrides map[string]string, opts ...upload.Option) error {
	return fmt.Errorf("GUI not available in this build, use 'fileparse tui' instead")
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return false
}
