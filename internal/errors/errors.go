// Package errors provides standardized error handling for fileparse.
// It defines the error kinds surfaced to users, typed errors for files,
// configuration and API requests, and helpers for creating and wrapping them.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileAccessDenied
	InvalidPath
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Submission error kinds
	MissingCredential
	MissingFile
	Busy
	// Request error kinds
	RequestFailed
	InvalidResponse
)

// String returns a short name for the kind, used in log fields.
func (k ErrorKind) String() string {
	switch k {
	case FileNotFound:
		return "file_not_found"
	case FileAccessDenied:
		return "file_access_denied"
	case InvalidPath:
		return "invalid_path"
	case InvalidConfig:
		return "invalid_config"
	case ConfigNotFound:
		return "config_not_found"
	case MissingCredential:
		return "missing_credential"
	case MissingFile:
		return "missing_file"
	case Busy:
		return "busy"
	case RequestFailed:
		return "request_failed"
	case InvalidResponse:
		return "invalid_response"
	default:
		return "unknown"
	}
}

// Common error constants for frequently occurring errors
var (
	ErrFileNotFound      = NewFileError("file not found", "", FileNotFound, nil)
	ErrInvalidConfig     = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrMissingCredential = NewValidationError("API key is not set", MissingCredential)
	ErrMissingFile       = NewValidationError("no file selected", MissingFile)
	ErrBusy              = NewValidationError("an upload is already in progress", Busy)
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// ValidationError is returned when a submission is rejected before any
// network call is made.
type ValidationError struct {
	ApplicationError
}

// NewValidationError creates a new validation error of the given kind
func NewValidationError(msg string, kind ErrorKind) *ValidationError {
	return &ValidationError{
		ApplicationError: ApplicationError{
			msg:  msg,
			kind: kind,
		},
	}
}

// Is matches validation errors by kind so callers can compare against
// ErrMissingCredential and friends.
func (e *ValidationError) Is(target error) bool {
	var other *ValidationError
	if errors.As(target, &other) {
		return other.kind == e.kind
	}
	return false
}

// RequestError represents a failed call to the parser API. Status is zero
// when no HTTP response was received.
type RequestError struct {
	ApplicationError
	status int
	body   string
}

// NewRequestError creates a new request error
func NewRequestError(msg string, status int, body string, err error) *RequestError {
	kind := RequestFailed
	if status >= 200 && status < 300 {
		kind = InvalidResponse
	}
	return &RequestError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		status: status,
		body:   body,
	}
}

// Error returns the request error message
func (e *RequestError) Error() string {
	if e.status != 0 && e.kind == RequestFailed {
		return fmt.Sprintf("%s (%d): %s", e.msg, e.status, e.body)
	}
	return e.ApplicationError.Error()
}

// Status returns the HTTP status code, or zero for transport failures
func (e *RequestError) Status() int {
	return e.status
}

// Body returns the response body text
func (e *RequestError) Body() string {
	return e.body
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the kind of the first application error in err's chain.
func KindOf(err error) ErrorKind {
	var kinded interface{ Kind() ErrorKind }
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}
	return Unknown
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileNotFound
	}
	return false
}

// IsFileAccessDenied checks if the error is a file access denied error
func IsFileAccessDenied(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileAccessDenied
	}
	return false
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsMissingCredential checks if the submission was rejected for lack of an API key
func IsMissingCredential(err error) bool {
	return errors.Is(err, ErrMissingCredential)
}

// IsMissingFile checks if the submission was rejected for lack of a file
func IsMissingFile(err error) bool {
	return errors.Is(err, ErrMissingFile)
}

// IsBusy checks if the submission was rejected because another one is in flight
func IsBusy(err error) bool {
	return errors.Is(err, ErrBusy)
}

// IsRequestFailed checks if the error is a failed API request
func IsRequestFailed(err error) bool {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind() == RequestFailed
	}
	return false
}

// IsValidationError checks if the error was raised before any network call
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
