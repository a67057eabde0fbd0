package watch_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fileparse/internal/api"
	"fileparse/internal/errors"
	"fileparse/internal/fakeapi"
	"fileparse/internal/prefs"
	"fileparse/internal/upload"
	"fileparse/internal/watch"
	"fileparse/pkg/testutils"
	"fileparse/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "sk-test"

func newController(t *testing.T, key string, mode types.Mode, opts ...fakeapi.Option) *upload.Controller {
	t.Helper()
	ts := httptest.NewServer(fakeapi.New([]string{testKey}, opts...).Router())
	t.Cleanup(ts.Close)

	store := prefs.NewMemoryStore()
	if key != "" {
		require.NoError(t, store.Set(prefs.KeyAPIKey, key))
	}
	return upload.New(api.NewClient(ts.URL), store, upload.NewRecorder(), upload.WithMode(mode))
}

func TestNewProcessor_Validation(t *testing.T) {
	ctrl := newController(t, testKey, types.Convert)

	_, err := watch.NewProcessor(ctrl, watch.Options{})
	assert.True(t, errors.IsInvalidConfig(err))

	_, err = watch.NewProcessor(ctrl, watch.Options{Dir: t.TempDir(), Include: "[unclosed"})
	assert.True(t, errors.IsInvalidConfig(err))
}

func TestNewProcessor_Settle(t *testing.T) {
	ctrl := newController(t, testKey, types.Convert)

	p, err := watch.NewProcessor(ctrl, watch.Options{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), p.Settle(), "zero settle is kept")

	p, err = watch.NewProcessor(ctrl, watch.Options{Dir: t.TempDir(), Settle: -1})
	require.NoError(t, err)
	assert.Equal(t, watch.DefaultSettle, p.Settle())
}

func TestProcessor_Wanted(t *testing.T) {
	dir := t.TempDir()
	ctrl := newController(t, testKey, types.Convert)
	p, err := watch.NewProcessor(ctrl, watch.Options{Dir: dir, Include: "report-*"})
	require.NoError(t, err)

	assert.True(t, p.Wanted(filepath.Join(dir, "report-q1.pdf")))
	assert.False(t, p.Wanted(filepath.Join(dir, "notes.pdf")), "include glob")
	assert.False(t, p.Wanted(filepath.Join(dir, "report-q1.png")), "image in convert mode")
	assert.False(t, p.Wanted(filepath.Join(dir, ".report-q1.pdf")), "hidden file")
	assert.False(t, p.Wanted(filepath.Join(dir, "parsed", "report-q1.pdf")), "output directory")

	ctrl.SetMode(types.OCR)
	assert.True(t, p.Wanted(filepath.Join(dir, "report-q1.png")))
	assert.False(t, p.Wanted(filepath.Join(dir, "report-q1.pdf")))
}

func TestProcessor_OutputPath(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "results")
	ctrl := newController(t, testKey, types.Convert)
	p, err := watch.NewProcessor(ctrl, watch.Options{Dir: dir, OutputDir: out})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(out, "a.pdf.md"), p.OutputPath("/in/a.pdf"))
	ctrl.SetMode(types.OCR)
	assert.Equal(t, filepath.Join(out, "a.png.txt"), p.OutputPath("/in/a.png"))
	assert.Equal(t, out, p.Status().OutputDir)
}

func TestProcessor_ProcessFile(t *testing.T) {
	dir := t.TempDir()
	ctrl := newController(t, testKey, types.Convert)
	p, err := watch.NewProcessor(ctrl, watch.Options{Dir: dir})
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "parsed"), 0755))

	src := filepath.Join(dir, "todo.txt")
	require.NoError(t, os.WriteFile(src, []byte("buy milk"), 0644))

	out, err := p.ProcessFile(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "parsed", "todo.txt.md"), out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "# todo.txt\n\nbuy milk", string(data))
}

func TestProcessor_ProcessFileWithoutCredential(t *testing.T) {
	dir := t.TempDir()
	p, err := watch.NewProcessor(newController(t, "", types.Convert), watch.Options{Dir: dir})
	require.NoError(t, err)

	_, err = p.ProcessFile(context.Background(), filepath.Join(dir, "a.txt"))
	assert.True(t, errors.IsMissingCredential(err))
}

func TestProcessor_Run(t *testing.T) {
	dir := t.TempDir()
	ctrl := newController(t, testKey, types.OCR)
	p, err := watch.NewProcessor(ctrl, watch.Options{Dir: dir, Settle: 20 * time.Millisecond})
	require.NoError(t, err)

	type handled struct {
		path, out string
		err       error
	}
	got := make(chan handled, 4)
	p.SetCallback(func(path, out string, err error) {
		got <- handled{path, out, err}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	require.Eventually(t, func() bool { return p.Status().Running }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	// Skipped: wrong type for OCR mode
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.pdf"), []byte("x"), 0644))
	src := filepath.Join(dir, "receipt.jpg")
	require.NoError(t, os.WriteFile(src, []byte("\xff\xd8"), 0644))

	select {
	case h := <-got:
		require.NoError(t, h.err)
		assert.Equal(t, src, h.path)
		assert.Equal(t, filepath.Join(dir, "parsed", "receipt.jpg.txt"), h.out)
		data, err := os.ReadFile(h.out)
		require.NoError(t, err)
		assert.Equal(t, "text recognized in receipt.jpg", string(data))
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for processed file")
	}

	status := p.Status()
	assert.Equal(t, 1, status.FilesProcessed)
	assert.Equal(t, 0, status.Failures)
	assert.False(t, status.LastActivity.IsZero())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.False(t, p.Status().Running)
}

func TestProcessor_RunBurstDuringSlowUploads(t *testing.T) {
	const files = 30
	dir := t.TempDir()
	ctrl := newController(t, testKey, types.Convert, fakeapi.WithLatency(40*time.Millisecond))
	p, err := watch.NewProcessor(ctrl, watch.Options{Dir: dir, Settle: 20 * time.Millisecond})
	require.NoError(t, err)

	seen := make(chan string, 2*files)
	p.SetCallback(func(path, out string, err error) {
		assert.NoError(t, err)
		seen <- filepath.Base(path)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	require.Eventually(t, func() bool { return p.Status().Running }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	burst := make(map[string]string, files)
	for i := 0; i < files; i++ {
		burst[fmt.Sprintf("doc-%02d.txt", i)] = fmt.Sprintf("body %d", i)
	}
	testutils.WriteFiles(t, dir, burst)

	got := make(map[string]bool)
	timeout := time.After(15 * time.Second)
	for len(got) < files {
		select {
		case name := <-seen:
			got[name] = true
		case <-timeout:
			t.Fatalf("only %d of %d files were submitted", len(got), files)
		}
	}

	assert.GreaterOrEqual(t, p.Status().FilesProcessed, files)
	for i := 0; i < files; i++ {
		_, err := os.Stat(filepath.Join(dir, "parsed", fmt.Sprintf("doc-%02d.txt.md", i)))
		assert.NoError(t, err)
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
