// Package watch submits files dropped into a directory to the parser
// service and writes the extracted text next to them.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fileparse/internal/errors"
	"fileparse/internal/log"
	"fileparse/internal/upload"
	"fileparse/pkg/types"

	"github.com/gobwas/glob"
)

// Status represents the current status of a processor
type Status struct {
	Running        bool      // Whether the processor is active
	Directory      string    // Directory being watched
	OutputDir      string    // Where results are written
	LastActivity   time.Time // Time of last processed file
	FilesProcessed int       // Files converted successfully
	Failures       int       // Files that failed
}

// Callback is told about every file the processor handles. outPath is empty
// when err is set.
type Callback func(path, outPath string, err error)

// Options configures a Processor.
type Options struct {
	Dir       string        // Directory to watch
	OutputDir string        // Where results go; relative paths are under Dir
	Include   string        // Optional glob matched against file names
	Settle    time.Duration // Quiet period before a file is picked up; zero picks it up at once, negative means DefaultSettle
}

// Processor feeds watcher events through an upload controller one at a time
type Processor struct {
	ctrl    *upload.Controller
	watcher *Watcher
	opts    Options
	include glob.Glob

	mutex        sync.RWMutex
	callback     Callback
	running      bool
	processed    int
	failures     int
	lastActivity time.Time
}

// NewProcessor validates opts and prepares the watcher.
func NewProcessor(ctrl *upload.Controller, opts Options) (*Processor, error) {
	if opts.Dir == "" {
		return nil, errors.NewConfigError("watch directory is required", "dir", errors.InvalidConfig, nil)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "parsed"
	}
	if !filepath.IsAbs(opts.OutputDir) {
		opts.OutputDir = filepath.Join(opts.Dir, opts.OutputDir)
	}
	if opts.Settle < 0 {
		opts.Settle = DefaultSettle
	}

	p := &Processor{ctrl: ctrl, opts: opts}
	if opts.Include != "" {
		g, err := glob.Compile(opts.Include)
		if err != nil {
			return nil, errors.NewConfigError("invalid include pattern", "include", errors.InvalidConfig, err)
		}
		p.include = g
	}

	w, err := NewWatcher(opts.Settle)
	if err != nil {
		return nil, err
	}
	p.watcher = w
	return p, nil
}

// Settle returns the quiet period the watcher waits for.
func (p *Processor) Settle() time.Duration {
	return p.opts.Settle
}

// SetCallback sets a function to be called when a file is processed
func (p *Processor) SetCallback(cb Callback) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.callback = cb
}

// Status returns the current status of the processor
func (p *Processor) Status() Status {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return Status{
		Running:        p.running,
		Directory:      p.opts.Dir,
		OutputDir:      p.opts.OutputDir,
		LastActivity:   p.lastActivity,
		FilesProcessed: p.processed,
		Failures:       p.failures,
	}
}

// Run watches until ctx is done. Files are submitted sequentially, so the
// single-flight rule of the controller always holds.
func (p *Processor) Run(ctx context.Context) error {
	if err := os.MkdirAll(p.opts.OutputDir, 0755); err != nil {
		return errors.NewFileError("cannot create output directory", p.opts.OutputDir, errors.FileAccessDenied, err)
	}
	if err := p.watcher.AddDirectory(p.opts.Dir); err != nil {
		return err
	}
	if err := p.watcher.Start(); err != nil {
		return err
	}

	p.mutex.Lock()
	p.running = true
	p.mutex.Unlock()

	defer func() {
		p.watcher.Stop()
		p.mutex.Lock()
		p.running = false
		p.mutex.Unlock()
	}()

	log.LogWithFields(
		log.F("dir", p.opts.Dir),
		log.F("out", p.opts.OutputDir),
		log.F("mode", p.ctrl.Mode().String()),
	).Info("watching for files")

	events := p.watcher.Events()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			p.handle(ctx, ev.Path)
		}
	}
}

// Wanted reports whether path should be submitted.
func (p *Processor) Wanted(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	if rel, err := filepath.Rel(p.opts.OutputDir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return false
	}
	if !p.ctrl.Accepts(path) {
		return false
	}
	if p.include != nil && !p.include.Match(filepath.Base(path)) {
		return false
	}
	return true
}

// OutputPath is where the text extracted from path is written.
func (p *Processor) OutputPath(path string) string {
	ext := ".md"
	if p.ctrl.Mode() == types.OCR {
		ext = ".txt"
	}
	return filepath.Join(p.opts.OutputDir, filepath.Base(path)+ext)
}

// ProcessFile submits one file and writes its result.
func (p *Processor) ProcessFile(ctx context.Context, path string) (string, error) {
	p.ctrl.SelectFile(path)
	res, err := p.ctrl.Submit(ctx)
	if err != nil {
		return "", err
	}

	out := p.OutputPath(path)
	if err := os.WriteFile(out, []byte(res.Content), 0644); err != nil {
		return "", errors.NewFileError("cannot write result", out, errors.FileAccessDenied, err)
	}
	return out, nil
}

func (p *Processor) handle(ctx context.Context, path string) {
	if !p.Wanted(path) {
		log.LogWithFields(log.F("file", path)).Debug("skipping file")
		return
	}

	out, err := p.ProcessFile(ctx, path)

	p.mutex.Lock()
	p.lastActivity = time.Now()
	if err != nil {
		p.failures++
	} else {
		p.processed++
	}
	cb := p.callback
	p.mutex.Unlock()

	switch {
	case err == nil:
		log.LogWithFields(log.F("file", path), log.F("out", out)).Info(fmt.Sprintf("parsed %s", filepath.Base(path)))
	case errors.IsValidationError(err):
		// Nothing was sent; a key saved meanwhile lets the next file through
		log.LogWithError(err).With(log.F("file", path)).Warn("file not submitted")
	default:
		log.LogWithError(err).With(log.F("file", path)).Error("watch upload failed")
	}
	if cb != nil {
		cb(path, out, err)
	}
}
