package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fileparse/internal/errors"
	"fileparse/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "sk-cli-test"

type cliEnv struct {
	t       *testing.T
	dir     string
	cfgPath string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	t.Setenv("FILEPARSE_API_KEY", "")
	t.Setenv("FILEPARSE_SERVER_BASE_URL", "")

	ts, _ := testutils.StartFakeService(t, []string{testKey})

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := fmt.Sprintf("server:\n  base_url: %s\nui:\n  language: en\nprefs:\n  path: %s\n",
		ts.URL, filepath.Join(dir, "prefs.yaml"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))

	return &cliEnv{t: t, dir: dir, cfgPath: cfgPath}
}

func (e *cliEnv) run(args ...string) (string, string, error) {
	e.t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", e.cfgPath}, args...))
	err := cmd.Execute()
	return testutils.StripANSI(out.String()), testutils.StripANSI(errOut.String()), err
}

func (e *cliEnv) file(name, content string) string {
	e.t.Helper()
	return testutils.WriteFile(e.t, e.dir, name, content)
}

func TestKeyCommands(t *testing.T) {
	env := newCLIEnv(t)

	out, _, err := env.run("key", "set", "  "+testKey+"  ")
	require.NoError(t, err)
	assert.Contains(t, out, "API Key saved successfully!")

	out, _, err = env.run("key", "show")
	require.NoError(t, err)
	assert.Equal(t, "sk-c*******", strings.TrimSpace(out))

	out, _, err = env.run("key", "show", "--reveal")
	require.NoError(t, err)
	assert.Equal(t, testKey, strings.TrimSpace(out))

	info, err := os.Stat(filepath.Join(env.dir, "prefs.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	out, _, err = env.run("key", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "API Key removed")

	_, errOut, err := env.run("key", "show")
	require.Error(t, err)
	assert.True(t, errors.IsMissingCredential(err))
	assert.Contains(t, errOut, "Please enter and save API Key first")
}

func TestKeySetEmpty(t *testing.T) {
	env := newCLIEnv(t)

	_, errOut, err := env.run("key", "set", "   ")
	require.Error(t, err)
	var reported reportedError
	assert.True(t, errors.As(err, &reported))
	assert.Contains(t, errOut, "Please enter API Key")
}

func TestEnvKeyWinsWithoutBeingStored(t *testing.T) {
	env := newCLIEnv(t)
	t.Setenv("FILEPARSE_API_KEY", testKey)

	out, _, err := env.run("convert", "--raw", env.file("env.txt", "from env"))
	require.NoError(t, err)
	assert.Equal(t, "# env.txt\n\nfrom env\n", out)

	_, err = os.Stat(filepath.Join(env.dir, "prefs.yaml"))
	assert.True(t, os.IsNotExist(err), "env key must not be written to disk")
}

func TestConvertCommand(t *testing.T) {
	env := newCLIEnv(t)
	_, _, err := env.run("key", "set", testKey)
	require.NoError(t, err)
	path := env.file("notes.txt", "hello cli")

	out, errOut, err := env.run("convert", "--raw", path)
	require.NoError(t, err)
	assert.Equal(t, "# notes.txt\n\nhello cli\n", out)
	assert.Contains(t, errOut, "Processing...")

	out, _, err = env.run("convert", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Document Conversion Result")
	assert.Contains(t, out, "Filename: notes.txt")
	assert.Contains(t, out, "File Size: 9 bytes")
	assert.Contains(t, out, "From Cache: Yes")
	assert.Contains(t, out, "Converted Content:")
}

func TestOCRCommand(t *testing.T) {
	env := newCLIEnv(t)
	_, _, err := env.run("key", "set", testKey)
	require.NoError(t, err)

	out, _, err := env.run("ocr", env.file("scan.png", "\x89PNG"))
	require.NoError(t, err)
	assert.Contains(t, out, "OCR Recognition Result")
	assert.Contains(t, out, "Recognized Text:")
	assert.Contains(t, out, "text recognized in scan.png")
}

func TestUploadWithoutKey(t *testing.T) {
	env := newCLIEnv(t)

	out, errOut, err := env.run("convert", env.file("a.txt", "x"))
	require.Error(t, err)
	assert.True(t, errors.IsMissingCredential(err))
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Please enter and save API Key first")
	assert.NotContains(t, errOut, "Processing...")
}

func TestUploadWithoutFile(t *testing.T) {
	env := newCLIEnv(t)
	_, _, err := env.run("key", "set", testKey)
	require.NoError(t, err)

	_, _, err = env.run("convert", filepath.Join(env.dir, "missing.txt"))
	require.Error(t, err)
}

func TestUploadRejectedKey(t *testing.T) {
	env := newCLIEnv(t)
	_, _, err := env.run("key", "set", "wrong")
	require.NoError(t, err)

	_, errOut, err := env.run("convert", env.file("a.txt", "x"))
	require.Error(t, err)
	assert.True(t, errors.IsRequestFailed(err))
	assert.Contains(t, errOut, "Upload failed (401)")
	assert.Contains(t, errOut, "INVALID_API_KEY")
}

func TestLangCommand(t *testing.T) {
	env := newCLIEnv(t)

	out, _, err := env.run("lang")
	require.NoError(t, err)
	assert.Equal(t, "en", strings.TrimSpace(out))

	out, _, err = env.run("lang", "zh")
	require.NoError(t, err)
	assert.Contains(t, out, "已切换为中文")

	out, _, err = env.run("lang")
	require.NoError(t, err)
	assert.Equal(t, "zh", strings.TrimSpace(out))

	// --lang applies to one run only
	out, _, err = env.run("--lang", "en", "lang")
	require.NoError(t, err)
	assert.Equal(t, "en", strings.TrimSpace(out))

	out, _, err = env.run("lang")
	require.NoError(t, err)
	assert.Equal(t, "zh", strings.TrimSpace(out))

	_, _, err = env.run("lang", "fr")
	assert.Error(t, err)
}

func TestTypesCommand(t *testing.T) {
	env := newCLIEnv(t)
	_, _, err := env.run("key", "set", testKey)
	require.NoError(t, err)

	out, _, err := env.run("types")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Document Conversion (convert): "))
	assert.Contains(t, lines[0], ".pdf")
	assert.NotContains(t, lines[0], ".png")
	assert.True(t, strings.HasPrefix(lines[1], "Image OCR Recognition (ocr): "))
	assert.Contains(t, lines[1], ".png")
}

func TestTypesWithoutKeyFallsBack(t *testing.T) {
	env := newCLIEnv(t)

	out, errOut, err := env.run("types")
	require.NoError(t, err)
	assert.Contains(t, errOut, "No API key, showing built-in list")
	assert.Contains(t, out, ".docx")

	_, errOut, err = env.run("--lang", "zh", "types")
	require.NoError(t, err)
	assert.Contains(t, errOut, "未设置 API Key，显示内置列表")
}

func TestProgressFollowsLanguage(t *testing.T) {
	env := newCLIEnv(t)
	_, _, err := env.run("key", "set", testKey)
	require.NoError(t, err)

	_, errOut, err := env.run("--lang", "zh", "convert", env.file("zh.txt", "x"))
	require.NoError(t, err)
	assert.Contains(t, errOut, "处理中...")
	assert.NotContains(t, errOut, "Processing...")
}

func TestConfigCommands(t *testing.T) {
	env := newCLIEnv(t)

	out, _, err := env.run("config", "themes")
	require.NoError(t, err)
	assert.Contains(t, out, "* default")
	assert.Contains(t, out, "  ocean")

	_, _, err = env.run("config", "init")
	require.Error(t, err, "existing config is not overwritten")

	fresh := filepath.Join(env.dir, "fresh", "config.yaml")
	cmd := NewRootCmd()
	var out2 bytes.Buffer
	cmd.SetOut(&out2)
	cmd.SetErr(&out2)
	cmd.SetArgs([]string{"--config", fresh, "config", "init"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, testutils.StripANSI(out2.String()), "Wrote "+fresh)

	data, err := os.ReadFile(fresh)
	require.NoError(t, err)
	assert.Contains(t, string(data), "theme: default")
}

func TestInvalidThemeAndLogFile(t *testing.T) {
	env := newCLIEnv(t)

	bad := filepath.Join(env.dir, "bad-theme.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("ui:\n  theme: neon\n"), 0644))
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", bad, "lang"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown theme")

	cfg, err := os.ReadFile(env.cfgPath)
	require.NoError(t, err)
	logged := filepath.Join(env.dir, "with-log.yaml")
	badLog := filepath.Join(env.dir, "no-such-dir", "fileparse.log")
	require.NoError(t, os.WriteFile(logged, append(cfg, []byte("log:\n  file: "+badLog+"\n")...), 0644))
	cmd = NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", logged, "lang"})
	err = cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
}

func TestInvalidGlobalFlags(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run("--lang", "fr", "lang")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))

	_, _, err = env.run("--server", "not a url", "lang")
	require.Error(t, err)
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "***", maskKey("abc"))
	assert.Equal(t, "****", maskKey("abcd"))
	assert.Equal(t, "sk-1**", maskKey("sk-123"))
}
