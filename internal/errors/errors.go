// Package errors provides standardized error handling for folio.
// It defines common error types, constants, and helper functions for consistent
// error creation, wrapping, and handling across the application.
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
	// Join combines several errors into one
	Join = errors.Join
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Content error kinds
	PostNotFound
	InvalidFrontMatter
	ContentReadFailed
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Storage error kinds
	StorageReadFailed
	StorageWriteFailed
	// Theme error kinds
	UnknownTheme
)

// Common error constants for frequently occurring errors
var (
	ErrPostNotFound  = NewContentError("post not found", "", PostNotFound, nil)
	ErrInvalidConfig = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrUnknownTheme  = NewConfigError("unknown theme", "", UnknownTheme, nil)
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

// ContentError represents errors related to blog content (posts on disk).
type ContentError struct {
	ApplicationError
	ref string
}

// NewContentError creates a new content error. ref is a slug or a file path.
func NewContentError(msg string, ref string, kind ErrorKind, err error) *ContentError {
	return &ContentError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		ref: ref,
	}
}

// Error returns the content error message
func (e *ContentError) Error() string {
	if e.ref != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.ref, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.ref)
	}
	return e.ApplicationError.Error()
}

// Is matches content errors by kind so that callers can test against the
// ErrPostNotFound sentinel regardless of the slug involved.
func (e *ContentError) Is(target error) bool {
	var t *ContentError
	if errors.As(target, &t) {
		return t.kind == e.kind && t.ref == ""
	}
	return false
}

// Ref returns the slug or path associated with the error
func (e *ContentError) Ref() string {
	return e.ref
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

// Is matches config errors by kind.
func (e *ConfigError) Is(target error) bool {
	var t *ConfigError
	if errors.As(target, &t) {
		return t.kind == e.kind && t.param == ""
	}
	return false
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// StorageError represents errors from the local key-value store.
type StorageError struct {
	ApplicationError
	path string
}

// NewStorageError creates a new storage error
func NewStorageError(msg string, path string, kind ErrorKind, err error) *StorageError {
	return &StorageError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the storage error message
func (e *StorageError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *StorageError) Path() string {
	return e.path
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

// IsPostNotFound checks if the error is a post not found error
func IsPostNotFound(err error) bool {
	var contentErr *ContentError
	if errors.As(err, &contentErr) {
		return contentErr.Kind() == PostNotFound
	}
	return false
}

// IsInvalidFrontMatter checks if the error is a front matter parse error
func IsInvalidFrontMatter(err error) bool {
	var contentErr *ContentError
	if errors.As(err, &contentErr) {
		return contentErr.Kind() == InvalidFrontMatter
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

// IsStorageError checks if the error came from the key-value store
func IsStorageError(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}
