package testutils

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"fileparse/internal/fakeapi"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

// WriteFile creates a file with the given content and returns its path
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// WriteFiles creates test files with specific content and returns their
// paths keyed by name
func WriteFiles(t testing.TB, dir string, files map[string]string) map[string]string {
	t.Helper()
	paths := make(map[string]string, len(files))
	for name, content := range files {
		paths[name] = WriteFile(t, dir, name, content)
	}
	return paths
}

// StartFakeService runs the fake parser service for the duration of the
// test. Only keys are accepted.
func StartFakeService(t testing.TB, keys []string, opts ...fakeapi.Option) (*httptest.Server, *fakeapi.Server) {
	t.Helper()
	srv := fakeapi.New(keys, opts...)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts, srv
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	return ansi.Strip(str)
}
