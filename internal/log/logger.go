package log

import (
	"context"
	"io"
	"os"

	"fileparse/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	isDebug = false
	logger  = NewLogger()
)

// Field is a single structured key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput sends log lines to w instead of stderr.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.out = w
	}
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(l *Logger) {
		l.json = true
	}
}

// WithFile additionally appends log lines to the file at path. When the
// file cannot be opened the logger writes to its console output only and
// Configure reports the error.
func WithFile(path string) Option {
	return func(l *Logger) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			l.err = errors.NewFileError("cannot open log file", path, errors.FileAccessDenied, err)
			return
		}
		l.file = f
	}
}

// Logger wraps a logrus logger. Output defaults to stderr so command output
// on stdout stays pipeable.
type Logger struct {
	base *logrus.Logger
	out  io.Writer
	file *os.File
	json bool
	err  error
}

func NewLogger(opts ...Option) *Logger {
	l := &Logger{out: os.Stderr}
	for _, opt := range opts {
		opt(l)
	}
	l.init()
	return l
}

func (l *Logger) init() {
	base := logrus.New()
	base.SetLevel(logrus.DebugLevel)
	if l.file != nil {
		base.SetOutput(io.MultiWriter(l.out, l.file))
	} else {
		base.SetOutput(l.out)
	}
	if l.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	l.base = base
}

// Err returns the error an option hit while building the logger.
func (l *Logger) Err() error {
	return l.err
}

// Configure replaces the package-level logger. The new logger is installed
// even when an option failed; the failure is returned.
func Configure(opts ...Option) error {
	logger = NewLogger(opts...)
	return logger.err
}

// Redirect sends console output of the package logger to w until restore is
// called. A configured log file keeps receiving every line.
func Redirect(w io.Writer) (restore func()) {
	prev := logger
	next := &Logger{out: w, file: prev.file, json: prev.json}
	next.init()
	logger = next
	return func() { logger = prev }
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func SetDebug(debug bool) {
	isDebug = debug
}

// IsDebug reports whether debug logging is on.
func IsDebug() bool {
	return isDebug
}

// Entry is a log line under construction with attached fields.
type Entry struct {
	e *logrus.Entry
}

// With returns an entry carrying the given fields.
func (l *Logger) With(fields ...Field) *Entry {
	return (&Entry{e: logrus.NewEntry(l.base)}).With(fields...)
}

// WithContext is kept for call sites that have a context at hand.
func (l *Logger) WithContext(ctx context.Context) *Entry {
	if ctx == nil {
		return &Entry{e: logrus.NewEntry(l.base)}
	}
	return &Entry{e: l.base.WithContext(ctx)}
}

// With adds more fields.
func (e *Entry) With(fields ...Field) *Entry {
	lf := make(logrus.Fields, len(fields))
	for _, f := range fields {
		lf[f.Key] = f.Value
	}
	return &Entry{e: e.e.WithFields(lf)}
}

func (e *Entry) Info(msg string)  { e.e.Info(msg) }
func (e *Entry) Warn(msg string)  { e.e.Warn(msg) }
func (e *Entry) Error(msg string) { e.e.Error(msg) }

func (e *Entry) Debug(msg string) {
	if isDebug {
		e.e.Debug(msg)
	}
}

func (e *Entry) Infof(format string, args ...interface{})  { e.e.Infof(format, args...) }
func (e *Entry) Warnf(format string, args ...interface{})  { e.e.Warnf(format, args...) }
func (e *Entry) Errorf(format string, args ...interface{}) { e.e.Errorf(format, args...) }

func (e *Entry) Debugf(format string, args ...interface{}) {
	if isDebug {
		e.e.Debugf(format, args...)
	}
}

func (l *Logger) Info(msg string)  { l.base.Info(msg) }
func (l *Logger) Warn(msg string)  { l.base.Warn(msg) }
func (l *Logger) Error(msg string) { l.base.Error(msg) }

func (l *Logger) Debug(msg string) {
	if isDebug {
		l.base.Debug(msg)
	}
}

func (l *Logger) Infof(format string, args ...interface{})  { l.base.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.base.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.base.Errorf(format, args...) }

func (l *Logger) Debugf(format string, args ...interface{}) {
	if isDebug {
		l.base.Debugf(format, args...)
	}
}

func Info(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Infof logs a formatted message
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Debug logs a message with arguments
func Debug(msg string, args ...interface{}) {
	if len(args) == 0 {
		logger.Debug(msg)
		return
	}
	logger.Debugf(msg+": %v", args...)
}

// Debugf logs a formatted message
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Error logs an error message with arguments
func Error(msg string, args ...interface{}) {
	if len(args) == 0 {
		logger.Error(msg)
		return
	}
	logger.Errorf(msg+": %v", args...)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// Warn logs a warning message with arguments
func Warn(msg string, args ...interface{}) {
	if len(args) == 0 {
		logger.Warn(msg)
		return
	}
	logger.Warnf(msg+": %v", args...)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// LogWithFields starts an entry on the package logger.
func LogWithFields(fields ...Field) *Entry {
	return logger.With(fields...)
}

// LogWithError starts an entry describing err, including its kind and the
// fields of typed application errors.
func LogWithError(err error) *Entry {
	if err == nil {
		return logger.With(F("error", "<nil>"))
	}

	fields := []Field{
		F("error", err.Error()),
		F("error_kind", int(errors.KindOf(err))),
	}

	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	var reqErr *errors.RequestError
	if errors.As(err, &reqErr) && reqErr.Status() != 0 {
		fields = append(fields, F("status", reqErr.Status()))
	}

	return logger.With(fields...)
}

// LogError is shorthand for LogWithError(err).Error(msg).
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}
