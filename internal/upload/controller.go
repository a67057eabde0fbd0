// Package upload implements the Upload Controller shared by the CLI, the
// terminal UI, the desktop GUI and watch mode. It gathers the selected file,
// the stored credential and the active mode, issues one request at a time
// and reports the outcome through a Presenter.
package upload

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fileparse/internal/errors"
	"fileparse/internal/i18n"
	"fileparse/internal/log"
	"fileparse/internal/prefs"
	"fileparse/pkg/types"
)

// DefaultCopyFeedback is how long the "Copied!" confirmation stays visible.
const DefaultCopyFeedback = 1200 * time.Millisecond

// ErrNothingToCopy is returned by CopyResult before any successful upload.
var ErrNothingToCopy = errors.New("no result to copy")

// ErrNoClipboard is returned by CopyResult when the clipboard reports it has
// no backing utility.
var ErrNoClipboard = errors.New("no clipboard utility available")

// Uploader is the part of the API client the controller needs.
type Uploader interface {
	Upload(ctx context.Context, mode types.Mode, token, path string) (*types.UploadResult, error)
	SupportedTypes(ctx context.Context, token string) ([]string, error)
}

// Controller holds the state of one upload form.
type Controller struct {
	api       Uploader
	store     prefs.Store
	presenter Presenter
	catalog   *i18n.Catalog
	clipboard Clipboard
	feedback  time.Duration

	mu          sync.Mutex
	mode        types.Mode
	lang        i18n.Lang
	file        types.FileSelection
	busy        bool
	convertExts []string
	last        *types.UploadResult
}

// Option configures a Controller.
type Option func(*Controller)

// WithMode sets the initial mode.
func WithMode(m types.Mode) Option {
	return func(c *Controller) {
		c.mode = m
	}
}

// WithLanguage sets the language used when none is stored.
func WithLanguage(l i18n.Lang) Option {
	return func(c *Controller) {
		c.lang = l
	}
}

// WithCatalog replaces the default message catalog.
func WithCatalog(cat *i18n.Catalog) Option {
	return func(c *Controller) {
		c.catalog = cat
	}
}

// WithClipboard replaces the system clipboard.
func WithClipboard(cb Clipboard) Option {
	return func(c *Controller) {
		c.clipboard = cb
	}
}

// WithCopyFeedback sets how long copy confirmation is shown.
func WithCopyFeedback(d time.Duration) Option {
	return func(c *Controller) {
		c.feedback = d
	}
}

// New creates a controller. The stored language preference, when present
// and valid, wins over WithLanguage.
func New(api Uploader, store prefs.Store, presenter Presenter, opts ...Option) *Controller {
	c := &Controller{
		api:         api,
		store:       store,
		presenter:   presenter,
		clipboard:   SystemClipboard{},
		feedback:    DefaultCopyFeedback,
		mode:        types.Convert,
		lang:        i18n.DefaultLang,
		convertExts: types.Convert.DefaultExtensions(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.catalog == nil {
		c.catalog = i18n.Default()
	}
	if c.presenter == nil {
		c.presenter = NewRecorder()
	}
	if stored, ok := store.Get(prefs.KeyLanguage); ok {
		if l, err := i18n.ParseLang(stored); err == nil {
			c.lang = l
		}
	}
	return c
}

// SetPresenter swaps the presenter. Front-ends that are built after the
// controller call this once during setup.
func (c *Controller) SetPresenter(p Presenter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.presenter = p
}

// Localizer returns the catalog bound to the active language.
func (c *Controller) Localizer() i18n.Localizer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return i18n.Localizer{Catalog: c.catalog, Lang: c.lang}
}

// Language returns the active language.
func (c *Controller) Language() i18n.Lang {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lang
}

// SetLanguage switches and persists the display language.
func (c *Controller) SetLanguage(l i18n.Lang) error {
	if _, err := i18n.ParseLang(string(l)); err != nil {
		return errors.NewConfigError("invalid language", prefs.KeyLanguage, errors.InvalidConfig, err)
	}
	c.mu.Lock()
	c.lang = l
	c.mu.Unlock()

	if err := c.store.Set(prefs.KeyLanguage, string(l)); err != nil {
		return errors.Wrap(err, "saving language")
	}
	return nil
}

// Mode returns the active mode.
func (c *Controller) Mode() types.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetMode switches the active mode and returns its accepted extensions.
func (c *Controller) SetMode(m types.Mode) []string {
	c.mu.Lock()
	c.mode = m
	c.mu.Unlock()
	log.LogWithFields(log.F("mode", m.String())).Debug("mode changed")
	return c.Accept()
}

// Accept returns the extensions the file picker accepts in the active mode.
func (c *Controller) Accept() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.acceptLocked(c.mode)
}

// AcceptFor returns the accepted extensions for m.
func (c *Controller) AcceptFor(m types.Mode) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.acceptLocked(m)
}

func (c *Controller) acceptLocked(m types.Mode) []string {
	if m == types.OCR {
		return types.OCR.DefaultExtensions()
	}
	out := make([]string, len(c.convertExts))
	copy(out, c.convertExts)
	return out
}

// Accepts reports whether path has an extension accepted in the active mode.
func (c *Controller) Accepts(path string) bool {
	ext := types.NormalizeExtension(filepath.Ext(path))
	for _, e := range c.Accept() {
		if e == ext {
			return true
		}
	}
	return false
}

// RefreshSupportedTypes asks the server which extensions it converts. On
// success the convert accept list becomes that list without the image types;
// on any failure the built-in list stays. No request is made without a
// stored credential.
func (c *Controller) RefreshSupportedTypes(ctx context.Context) ([]string, error) {
	token, ok := c.Credential()
	if !ok {
		return c.AcceptFor(types.Convert), errors.ErrMissingCredential
	}

	exts, err := c.api.SupportedTypes(ctx, token)
	if err != nil {
		log.LogWithError(err).Warn("keeping built-in extension list")
		return c.AcceptFor(types.Convert), err
	}

	var docs []string
	for _, e := range exts {
		if !types.IsImageExtension(e) {
			docs = append(docs, e)
		}
	}

	c.mu.Lock()
	if len(docs) > 0 {
		c.convertExts = docs
	}
	c.mu.Unlock()

	log.LogWithFields(log.F("count", len(docs))).Debug("supported types refreshed")
	return c.AcceptFor(types.Convert), nil
}

// Credential returns the stored API key.
func (c *Controller) Credential() (string, bool) {
	key, ok := c.store.Get(prefs.KeyAPIKey)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// SaveCredential trims and stores key. An empty key is rejected with a
// validation message.
func (c *Controller) SaveCredential(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		c.view().ShowValidation(c.Localizer().T("pleaseEnterKey"))
		return errors.ErrMissingCredential
	}
	if err := c.store.Set(prefs.KeyAPIKey, key); err != nil {
		return errors.Wrap(err, "saving API key")
	}
	return nil
}

// ClearCredential removes the stored API key.
func (c *Controller) ClearCredential() error {
	if err := c.store.Delete(prefs.KeyAPIKey); err != nil {
		return errors.Wrap(err, "removing API key")
	}
	return nil
}

// SelectFile sets the file to upload. An empty path clears the selection.
func (c *Controller) SelectFile(path string) {
	path = strings.TrimSpace(path)
	sel := types.FileSelection{}
	if path != "" {
		sel = types.FileSelection{Path: path, Name: filepath.Base(path)}
	}
	c.mu.Lock()
	c.file = sel
	c.mu.Unlock()
}

// File returns the selected file.
func (c *Controller) File() types.FileSelection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.file
}

// Busy reports whether an upload is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Validate checks the credential, then the file selection. A failure is
// shown through the presenter and returned.
func (c *Controller) Validate() error {
	err := c.validate()
	if err != nil {
		c.view().ShowValidation(ErrorMessage(err, c.Localizer()))
	}
	return err
}

func (c *Controller) validate() error {
	if _, ok := c.Credential(); !ok {
		return errors.ErrMissingCredential
	}
	if c.File().Empty() {
		return errors.ErrMissingFile
	}
	return nil
}

// Submit uploads the selected file in the active mode. At most one upload
// runs at a time; the busy indicator is cleared whatever the outcome.
func (c *Controller) Submit(ctx context.Context) (*types.UploadResult, error) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		c.view().ShowValidation(c.Localizer().T("busy"))
		return nil, errors.ErrBusy
	}
	c.last = nil
	c.mu.Unlock()

	c.view().ClearResult()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	token, _ := c.Credential()
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return nil, errors.ErrBusy
	}
	c.busy = true
	mode, file := c.mode, c.file
	c.mu.Unlock()

	c.view().SetBusy(true)
	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
		c.view().SetBusy(false)
	}()

	entry := log.LogWithFields(log.F("mode", mode.String()), log.F("file", file.Path))
	entry.Info("uploading")

	res, err := c.api.Upload(ctx, mode, token, file.Path)
	if err != nil {
		log.LogWithError(err).With(log.F("file", file.Path)).Error("upload failed")
		c.view().ShowError(ErrorMessage(err, c.Localizer()))
		return nil, err
	}

	c.mu.Lock()
	c.last = res
	c.mu.Unlock()

	entry.With(
		log.F("size", res.Size),
		log.F("duration_ms", res.DurationMS),
		log.F("from_cache", res.FromCache),
	).Info("upload finished")
	c.view().ShowResult(Render(res, c.Localizer()))
	return res, nil
}

// Last returns the most recent successful result, if any.
func (c *Controller) Last() *types.UploadResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// CurrentView renders the last result in the active language.
func (c *Controller) CurrentView() (ResultView, bool) {
	res := c.Last()
	if res == nil {
		return ResultView{}, false
	}
	return Render(res, c.Localizer()), true
}

// CopyResult puts the content text of the last result on the clipboard.
func (c *Controller) CopyResult() error {
	res := c.Last()
	if res == nil {
		return ErrNothingToCopy
	}
	if a, ok := c.clipboard.(interface{ Available() bool }); ok && !a.Available() {
		return ErrNoClipboard
	}
	if err := c.clipboard.WriteAll(res.Content); err != nil {
		return errors.Wrap(err, "copying to clipboard")
	}
	return nil
}

// CopyFeedback is how long front-ends keep the "Copied!" label.
func (c *Controller) CopyFeedback() time.Duration {
	return c.feedback
}

func (c *Controller) view() Presenter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.presenter
}
