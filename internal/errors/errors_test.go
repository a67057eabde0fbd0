package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	// Test creating a new error
	err := New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())

	// Test creating a new formatted error
	err = Newf("formatted %s", "error")
	assert.NotNil(t, err)
	assert.Equal(t, "formatted error", err.Error())

	// Check that the error is an ApplicationError
	var appErr *ApplicationError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, "formatted error", appErr.Error())
	assert.Equal(t, Unknown, appErr.Kind())
}

func TestWrapping(t *testing.T) {
	// Test wrapping an error
	origErr := New("original error")
	wrappedErr := Wrap(origErr, "wrapped")
	assert.NotNil(t, wrappedErr)
	assert.Equal(t, "wrapped: original error", wrappedErr.Error())

	// Test unwrapping
	unwrappedErr := Unwrap(wrappedErr)
	assert.Equal(t, origErr, unwrappedErr)

	// Test wrapped formatted error
	wrappedFormatted := Wrapf(origErr, "formatted %s", "wrapper")
	assert.NotNil(t, wrappedFormatted)
	assert.Equal(t, "formatted wrapper: original error", wrappedFormatted.Error())

	// Test wrapping nil returns nil
	assert.Nil(t, Wrap(nil, "wrapper"))
	assert.Nil(t, Wrapf(nil, "formatted %s", "wrapper"))

	// Test deeper wrapping
	deepWrapped := Wrap(wrappedErr, "deeper")
	assert.Equal(t, "deeper: wrapped: original error", deepWrapped.Error())

	// Test Is function
	assert.True(t, Is(wrappedErr, origErr))
	assert.True(t, Is(deepWrapped, origErr))
}

func TestFileError(t *testing.T) {
	// Test creating a file error
	fileErr := NewFileError("cannot access", "/path/to/file", FileAccessDenied, nil)
	assert.NotNil(t, fileErr)
	assert.Equal(t, "cannot access: /path/to/file", fileErr.Error())
	assert.Equal(t, "/path/to/file", fileErr.Path())
	assert.Equal(t, FileAccessDenied, fileErr.Kind())

	// Test with wrapped error
	origErr := fmt.Errorf("permission denied")
	fileErr = NewFileError("cannot access", "/path/to/file", FileAccessDenied, origErr)
	assert.Equal(t, "cannot access: /path/to/file: permission denied", fileErr.Error())
	assert.Equal(t, origErr, Unwrap(fileErr))

	// Test predefined errors
	assert.Equal(t, "file not found", ErrFileNotFound.Error())
	assert.Equal(t, FileNotFound, ErrFileNotFound.Kind())

	// Test IsFileNotFound predicate
	notFoundErr := NewFileError("file not found", "/missing/file", FileNotFound, nil)
	assert.True(t, IsFileNotFound(notFoundErr))
	assert.False(t, IsFileNotFound(fileErr)) // This is FileAccessDenied

	// Test IsFileAccessDenied predicate
	assert.True(t, IsFileAccessDenied(fileErr))
	assert.False(t, IsFileAccessDenied(notFoundErr))

	// Test As for FileError
	var fe *FileError
	assert.True(t, As(fileErr, &fe))
	assert.Equal(t, "/path/to/file", fe.Path())
}

func TestConfigError(t *testing.T) {
	// Test creating a config error
	configErr := NewConfigError("invalid value", "timeout", InvalidConfig, nil)
	assert.NotNil(t, configErr)
	assert.Equal(t, "invalid value: timeout", configErr.Error())
	assert.Equal(t, "timeout", configErr.Param())
	assert.Equal(t, InvalidConfig, configErr.Kind())

	// Test with wrapped error
	origErr := fmt.Errorf("value out of range")
	configErr = NewConfigError("invalid value", "timeout", InvalidConfig, origErr)
	assert.Equal(t, "invalid value: timeout: value out of range", configErr.Error())
	assert.Equal(t, origErr, Unwrap(configErr))

	// Test predefined errors
	assert.Equal(t, "invalid configuration", ErrInvalidConfig.Error())
	assert.Equal(t, InvalidConfig, ErrInvalidConfig.Kind())

	// Test IsInvalidConfig predicate
	assert.True(t, IsInvalidConfig(configErr))
	assert.False(t, IsInvalidConfig(New("some other error")))

	// Test As for ConfigError
	var ce *ConfigError
	assert.True(t, As(configErr, &ce))
	assert.Equal(t, "timeout", ce.Param())
}

func TestValidationErrors(t *testing.T) {
	assert.Equal(t, "API key is not set", ErrMissingCredential.Error())
	assert.Equal(t, MissingCredential, ErrMissingCredential.Kind())
	assert.Equal(t, MissingFile, ErrMissingFile.Kind())

	// Wrapped validation errors still match by kind
	wrapped := fmt.Errorf("submit: %w", NewValidationError("no key", MissingCredential))
	assert.True(t, IsMissingCredential(wrapped))
	assert.False(t, IsMissingFile(wrapped))
	assert.True(t, IsValidationError(wrapped))

	assert.True(t, IsMissingFile(ErrMissingFile))
	assert.True(t, IsBusy(ErrBusy))
	assert.False(t, IsValidationError(New("plain")))
}

func TestRequestError(t *testing.T) {
	reqErr := NewRequestError("upload failed", 415, `{"detail":"unsupported"}`, nil)
	assert.Equal(t, `upload failed (415): {"detail":"unsupported"}`, reqErr.Error())
	assert.Equal(t, 415, reqErr.Status())
	assert.Equal(t, `{"detail":"unsupported"}`, reqErr.Body())
	assert.Equal(t, RequestFailed, reqErr.Kind())
	assert.True(t, IsRequestFailed(reqErr))

	// Transport failures carry no status
	netErr := fmt.Errorf("connection refused")
	reqErr = NewRequestError("upload failed", 0, "", netErr)
	assert.Equal(t, "upload failed: connection refused", reqErr.Error())
	assert.Equal(t, netErr, Unwrap(reqErr))
	assert.True(t, IsRequestFailed(reqErr))

	// A 2xx with an undecodable body is an invalid response
	reqErr = NewRequestError("decoding response", 200, "<html>", fmt.Errorf("bad json"))
	assert.Equal(t, InvalidResponse, reqErr.Kind())
	assert.False(t, IsRequestFailed(reqErr))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, MissingFile, KindOf(fmt.Errorf("wrap: %w", ErrMissingFile)))
	assert.Equal(t, RequestFailed, KindOf(NewRequestError("x", 500, "boom", nil)))
	assert.Equal(t, Unknown, KindOf(errors.New("std")))
	assert.Equal(t, "missing_credential", MissingCredential.String())
}

func TestErrorChains(t *testing.T) {
	// Create a chain of errors
	baseErr := errors.New("base error")
	fileErr := NewFileError("file error", "/path/to/file", FileNotFound, baseErr)
	configErr := NewConfigError("config error", "prefs.path", InvalidConfig, fileErr)
	reqErr := NewRequestError("request error", 0, "", configErr)

	// Test complete error message
	assert.Equal(t, "request error: config error: prefs.path: file error: /path/to/file: base error", reqErr.Error())

	// Test Is function through the chain
	assert.True(t, Is(reqErr, baseErr))
	assert.True(t, Is(reqErr, fileErr))
	assert.True(t, Is(reqErr, configErr))

	// Test As function through the chain
	var fe *FileError
	assert.True(t, As(reqErr, &fe))
	assert.Equal(t, "/path/to/file", fe.Path())

	var ce *ConfigError
	assert.True(t, As(reqErr, &ce))
	assert.Equal(t, "prefs.path", ce.Param())

	// Test error predicates through the chain
	assert.True(t, IsFileNotFound(reqErr))
	assert.True(t, IsInvalidConfig(reqErr))
	assert.True(t, IsRequestFailed(reqErr))
}
