package watch

import (
	"fmt"
	"os"
	"sync"
	"time"

	"fileparse/internal/log"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long a file must stay quiet before it is reported.
// Copying a large file produces one Create and many Write events.
const DefaultSettle = 300 * time.Millisecond

// FileEvent represents a file that appeared or changed in a watched directory
type FileEvent struct {
	Path      string
	Info      os.FileInfo
	Timestamp time.Time
	Op        fsnotify.Op
}

// Watcher monitors directories for new or rewritten files using fsnotify
type Watcher struct {
	// Directories being watched
	directories []string

	// Channel delivering settled file events
	events chan FileEvent

	// Settled events not yet handed to the consumer, and a wake-up signal
	// for the pump that forwards them
	queue []FileEvent
	ready chan struct{}

	// Channel to signal stop
	stopChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Quiet period before an event is delivered
	settle time.Duration

	// Pending events keyed by path, waiting to settle
	pending map[string]*time.Timer
	ops     map[string]fsnotify.Op

	// Guards running, directories, pending and queue
	mutex sync.RWMutex

	running bool
	wg      sync.WaitGroup
}

// NewWatcher creates a directory watcher. A settle of zero delivers events
// as soon as they arrive.
func NewWatcher(settle time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		events:    make(chan FileEvent),
		ready:     make(chan struct{}, 1),
		stopChan:  make(chan struct{}),
		fsWatcher: fsWatcher,
		settle:    settle,
		pending:   make(map[string]*time.Timer),
		ops:       make(map[string]fsnotify.Op),
	}, nil
}

// AddDirectory adds a directory to watch
func (w *Watcher) AddDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}

	w.mutex.Lock()
	found := false
	for _, existing := range w.directories {
		if existing == dir {
			found = true
			break
		}
	}
	if !found {
		w.directories = append(w.directories, dir)
	}
	w.mutex.Unlock()

	log.LogWithFields(log.F("directory", dir)).Info("Watching directory")
	return nil
}

// Events returns the channel that delivers settled file events in the order
// they settled. Events are queued while the consumer is busy, never dropped.
// The channel is closed by Stop.
func (w *Watcher) Events() <-chan FileEvent {
	return w.events
}

// Start begins the event loop
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.mutex.Unlock()

	w.wg.Add(2)
	go w.loop()
	go w.pump()

	log.Debug("Watcher started")
	return nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) {
				w.schedule(event)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-w.stopChan:
			return
		}
	}
}

// schedule restarts the settle timer for the event's path.
func (w *Watcher) schedule(event fsnotify.Event) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.ops[event.Name] |= event.Op
	if t, ok := w.pending[event.Name]; ok {
		t.Stop()
	}
	path := event.Name
	w.pending[path] = time.AfterFunc(w.settle, func() { w.deliver(path) })
}

func (w *Watcher) deliver(path string) {
	w.mutex.Lock()
	op := w.ops[path]
	delete(w.pending, path)
	delete(w.ops, path)
	running := w.running
	w.mutex.Unlock()

	if !running {
		return
	}

	// The file may be gone already, or be a directory
	info, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.LogWithFields(log.F("file", path), log.F("error", err)).Error("Error stating file")
		}
		return
	}
	if info.IsDir() {
		return
	}

	ev := FileEvent{Path: path, Info: info, Timestamp: time.Now(), Op: op}

	w.mutex.Lock()
	if !w.running {
		w.mutex.Unlock()
		return
	}
	w.queue = append(w.queue, ev)
	w.mutex.Unlock()

	select {
	case w.ready <- struct{}{}:
	default:
	}
}

// pump forwards queued events to the consumer until Stop.
func (w *Watcher) pump() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ready:
		case <-w.stopChan:
			return
		}

		for {
			w.mutex.Lock()
			if len(w.queue) == 0 {
				w.mutex.Unlock()
				break
			}
			ev := w.queue[0]
			w.queue = w.queue[1:]
			w.mutex.Unlock()

			select {
			case w.events <- ev:
			case <-w.stopChan:
				return
			}
		}
	}
}

// Stop halts the watcher and closes the event channel
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if !w.running {
		w.mutex.Unlock()
		return
	}
	w.running = false
	close(w.stopChan)
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
		delete(w.ops, path)
	}
	w.queue = nil
	w.mutex.Unlock()

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	w.wg.Wait()

	// Only the pump sends on events, and it has returned
	close(w.events)

	log.Debug("Watcher stopped")
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// Directories returns the list of directories being watched
func (w *Watcher) Directories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	out := make([]string, len(w.directories))
	copy(out, w.directories)
	return out
}
