package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLanguages(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	assert.Equal(t, "文件解析服务", c.T(Chinese, "title"))
	assert.Equal(t, "File Parser Service", c.T(English, "title"))
	assert.Equal(t, "是", c.T(Chinese, "yes"))
	assert.Equal(t, "No", c.T(English, "no"))
}

func TestCatalogTemplates(t *testing.T) {
	c := Default()

	got := c.Tf(English, "uploadFailed", map[string]interface{}{"Code": 401, "Body": "bad key"})
	assert.Equal(t, "Upload failed (401): bad key", got)

	got = c.Tf(Chinese, "bytes", map[string]interface{}{"Size": 2048})
	assert.Equal(t, "2048 bytes", got)
}

func TestCatalogFallbacks(t *testing.T) {
	c := Default()
	assert.Equal(t, "noSuchMessage", c.T(English, "noSuchMessage"))
	// Unknown languages fall back to the default
	assert.Equal(t, c.T(Chinese, "title"), c.T(Lang("fr"), "title"))
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	c := Default()
	ids := []string{
		"title", "apiKeyLabel", "saveKeyBtn", "convertMode", "ocrMode", "uploadBtn",
		"processing", "convertResult", "ocrResult", "filename", "fileSize", "processTime",
		"fromCache", "convertContent", "ocrText", "error", "saveSuccess", "pleaseEnterKey",
		"pleaseSelectFile", "pleaseSaveKey", "copyContent", "copied", "busy",
	}
	for _, id := range ids {
		assert.NotEqual(t, id, c.T(Chinese, id), "zh missing %s", id)
		assert.NotEqual(t, id, c.T(English, id), "en missing %s", id)
	}
}

func TestParseLang(t *testing.T) {
	l, err := ParseLang("EN")
	require.NoError(t, err)
	assert.Equal(t, English, l)
	assert.Equal(t, Chinese, l.Toggle())

	_, err = ParseLang("fr")
	assert.Error(t, err)
}

func TestLocalizer(t *testing.T) {
	l := Localizer{Catalog: Default(), Lang: English}
	assert.Equal(t, "Copied!", l.T("copied"))
	assert.Equal(t, "12ms", l.Tf("millis", map[string]interface{}{"Duration": 12}))
}
