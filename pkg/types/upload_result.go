package types

// UploadResult is the decoded body of a successful convert or OCR call.
// Content holds either the converted text or the recognized text, depending
// on which mode produced it.
type UploadResult struct {
	Mode        Mode   `json:"-"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
	DurationMS  int64  `json:"duration_ms"`
	FromCache   bool   `json:"from_cache"`
	Content     string `json:"-"`
}

// FileSelection is the file picked by the user.
type FileSelection struct {
	Path string
	Name string
}

// Empty reports whether no file has been selected.
func (f FileSelection) Empty() bool {
	return f.Path == ""
}
