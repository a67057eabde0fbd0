package types

import (
	"fmt"
	"strings"
)

// Mode selects which backend endpoint and file-type filter apply to an upload.
type Mode int

const (
	// Convert turns documents, spreadsheets, slides and code into text
	Convert Mode = iota
	// OCR recognizes text in images
	OCR
)

// Modes lists every mode in display order.
var Modes = []Mode{Convert, OCR}

var (
	convertExtensions = []string{
		".pdf", ".docx", ".doc", ".rtf", ".odt", ".txt", ".xlsx", ".xls", ".csv",
		".pptx", ".md", ".pages", ".numbers", ".keynote", ".svg", ".py", ".js",
		".java", ".cpp", ".c", ".html", ".css", ".json", ".xml", ".yaml", ".yml",
	}
	ocrExtensions = []string{
		".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".tif", ".gif", ".webp",
	}
)

// String returns the mode name used on the command line and in config files.
func (m Mode) String() string {
	switch m {
	case Convert:
		return "convert"
	case OCR:
		return "ocr"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Endpoint returns the API path the mode uploads to.
func (m Mode) Endpoint() string {
	if m == OCR {
		return "/v1/ocr"
	}
	return "/v1/convert"
}

// ContentField is the JSON field holding the extracted text for the mode.
func (m Mode) ContentField() string {
	if m == OCR {
		return "ocr_text"
	}
	return "content"
}

// DefaultExtensions returns a copy of the built-in accept list for the mode.
func (m Mode) DefaultExtensions() []string {
	src := convertExtensions
	if m == OCR {
		src = ocrExtensions
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == OCR {
		return Convert
	}
	return OCR
}

// ParseMode parses a mode name. It is case insensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "convert", "":
		return Convert, nil
	case "ocr":
		return OCR, nil
	}
	return Convert, fmt.Errorf("unknown mode %q (want convert or ocr)", s)
}

// IsImageExtension reports whether ext is one of the OCR image types.
func IsImageExtension(ext string) bool {
	ext = NormalizeExtension(ext)
	for _, e := range ocrExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// NormalizeExtension lowercases ext and makes sure it starts with a dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
