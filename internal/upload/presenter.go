package upload

import "sync"

// Presenter is the front-end side of the controller. Every front-end
// implements it to show the busy indicator, validation messages, results
// and request errors.
type Presenter interface {
	// SetBusy disables the trigger and shows the busy indicator while true.
	SetBusy(busy bool)
	// ClearResult hides the previous result or error.
	ClearResult()
	// ShowValidation reports a submission rejected before any network call.
	ShowValidation(msg string)
	// ShowResult renders a successful upload.
	ShowResult(view ResultView)
	// ShowError renders a failed request.
	ShowError(msg string)
}

// Recorder is a Presenter that remembers what it was told. Watch mode and
// tests use it.
type Recorder struct {
	mu          sync.Mutex
	busy        bool
	busyHistory []bool
	validation  string
	result      *ResultView
	errMsg      string
	clears      int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) SetBusy(busy bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.busy = busy
	r.busyHistory = append(r.busyHistory, busy)
}

func (r *Recorder) ClearResult() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result = nil
	r.errMsg = ""
	r.validation = ""
	r.clears++
}

func (r *Recorder) ShowValidation(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validation = msg
}

func (r *Recorder) ShowResult(view ResultView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result = &view
}

func (r *Recorder) ShowError(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errMsg = msg
}

// Busy reports the last busy state.
func (r *Recorder) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busy
}

// BusyHistory returns every SetBusy call in order.
func (r *Recorder) BusyHistory() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]bool, len(r.busyHistory))
	copy(out, r.busyHistory)
	return out
}

// Validation returns the last validation message.
func (r *Recorder) Validation() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.validation
}

// Result returns the last rendered result, or nil.
func (r *Recorder) Result() *ResultView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result
}

// Error returns the last error message.
func (r *Recorder) Error() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errMsg
}

// Clears counts ClearResult calls.
func (r *Recorder) Clears() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clears
}
