package views

import (
	"testing"

	"fileparse/internal/i18n"
	"fileparse/internal/tui/common"
	"fileparse/internal/upload"
	"fileparse/pkg/testutils"
	"fileparse/pkg/types"

	"github.com/stretchr/testify/assert"
)

// Mock model for testing
type mockModel struct {
	lang       i18n.Lang
	mode       types.Mode
	busy       bool
	notice     string
	validation string
	errText    string
	result     *upload.ResultView
	copied     bool
}

func (m *mockModel) Localizer() i18n.Localizer {
	return i18n.Localizer{Catalog: i18n.Default(), Lang: m.lang}
}
func (m *mockModel) Mode() types.Mode           { return m.mode }
func (m *mockModel) Accept() []string           { return m.mode.DefaultExtensions() }
func (m *mockModel) Focus() common.Focus        { return common.FocusKey }
func (m *mockModel) FormView() string           { return "<form>" }
func (m *mockModel) StatusView() string         { return "" }
func (m *mockModel) Busy() bool                 { return m.busy }
func (m *mockModel) Notice() string             { return m.notice }
func (m *mockModel) Validation() string         { return m.validation }
func (m *mockModel) ErrorText() string          { return m.errText }
func (m *mockModel) Result() *upload.ResultView { return m.result }
func (m *mockModel) ResultBody() string {
	if m.result == nil {
		return ""
	}
	return m.result.Content
}
func (m *mockModel) Copied() bool     { return m.copied }
func (m *mockModel) HelpView() string { return "<help>" }

func sampleView() *upload.ResultView {
	res := &types.UploadResult{Mode: types.OCR, Filename: "scan.png", Size: 12, DurationMS: 30, Content: "hello"}
	view := upload.Render(res, i18n.Localizer{Catalog: i18n.Default(), Lang: i18n.English})
	return &view
}

func TestRenderMainView(t *testing.T) {
	tests := []struct {
		name     string
		model    *mockModel
		contains []string // Strings that should be present in the output
		excludes []string // Strings that should not be present in the output
	}{
		{
			name:  "idle english",
			model: &mockModel{lang: i18n.English},
			contains: []string{
				"File Parser Service",
				"<form>",
				"(•) Document Conversion",
				"( ) Image OCR Recognition",
				"Upload & Process",
				"<help>",
			},
			excludes: []string{"Processing...", "Error"},
		},
		{
			name:     "idle chinese ocr",
			model:    &mockModel{lang: i18n.Chinese, mode: types.OCR},
			contains: []string{"文件解析服务", "( ) 文档转换", "(•) 图片OCR识别", "上传并处理"},
		},
		{
			name:     "busy disables trigger",
			model:    &mockModel{lang: i18n.English, busy: true},
			contains: []string{"[ Processing... ]"},
			excludes: []string{"Upload & Process"},
		},
		{
			name:     "validation",
			model:    &mockModel{lang: i18n.English, validation: "Please select a file to upload"},
			contains: []string{"Please select a file to upload"},
		},
		{
			name:     "error view",
			model:    &mockModel{lang: i18n.English, errText: "Upload failed (500): boom"},
			contains: []string{"Error", "Upload failed (500): boom"},
		},
		{
			name:  "result view",
			model: &mockModel{lang: i18n.English, result: sampleView()},
			contains: []string{
				"OCR Recognition Result",
				"Filename: scan.png",
				"File Size: 12 bytes",
				"Process Time: 30ms",
				"From Cache: No",
				"Recognized Text:",
				"hello",
				"[Copy Content]",
			},
		},
		{
			name:     "copied",
			model:    &mockModel{lang: i18n.English, result: sampleView(), copied: true},
			contains: []string{"[Copied!]"},
			excludes: []string{"[Copy Content]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := testutils.StripANSI(RenderMainView(tt.model))

			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, output, s)
			}
		})
	}
}
