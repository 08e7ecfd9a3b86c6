// Package errors provides custom error types for the filasync system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the filasync system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrPrinterUnavailable indicates that the printer could not be reached
	ErrPrinterUnavailable = errors.New("printer unavailable")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")

	// ErrNoPresets indicates that no presets were discovered at all
	ErrNoPresets = errors.New("no presets found")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// StructureError represents a structural precondition failure in a catalog
// document, such as result.list not being a list. These are never recoverable:
// the baseline document cannot be reconciled against if its shape is wrong.
type StructureError struct {
	Document string
	Path     string
	Expected string
	Message  string
}

// Error implements the error interface
func (e *StructureError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("malformed %s document: %s is not %s: %s", e.Document, e.Path, e.Expected, e.Message)
	}
	return fmt.Sprintf("malformed %s document: %s", e.Document, e.Message)
}

// Is implements errors.Is support
func (e *StructureError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewStructureError creates a new StructureError
func NewStructureError(document, path, expected, message string) *StructureError {
	return &StructureError{Document: document, Path: path, Expected: expected, Message: message}
}

// IdentityError represents a preset whose Notes identity is missing or
// invalid after a synthesis attempt. Affected presets are skipped, not fatal.
type IdentityError struct {
	Preset  string
	Message string
	Err     error
}

// Error implements the error interface
func (e *IdentityError) Error() string {
	return fmt.Sprintf("preset %s has no usable identity: %s", e.Preset, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IdentityError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *IdentityError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewIdentityError creates a new IdentityError
func NewIdentityError(preset, message string, err error) *IdentityError {
	return &IdentityError{Preset: preset, Message: message, Err: err}
}

// ResolveError represents a per-preset failure during template expansion,
// such as a missing system template.
type ResolveError struct {
	Preset   string
	Template string
	Message  string
	Err      error
}

// Error implements the error interface
func (e *ResolveError) Error() string {
	if e.Template != "" {
		return fmt.Sprintf("failed to resolve preset %s (template %q): %s", e.Preset, e.Template, e.Message)
	}
	return fmt.Sprintf("failed to resolve preset %s: %s", e.Preset, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResolveError) Unwrap() error {
	return e.Err
}

// NewResolveError creates a new ResolveError
func NewResolveError(preset, template, message string, err error) *ResolveError {
	return &ResolveError{Preset: preset, Template: template, Message: message, Err: err}
}

// TransportError represents a failure talking to the printer over SSH/SFTP
type TransportError struct {
	Operation string // "connect", "read", "write", "rename", "close"
	Host      string
	Path      string
	Err       error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("transport error during %s of %s on %s: %v", e.Operation, e.Path, e.Host, e.Err)
	}
	return fmt.Sprintf("transport error during %s on %s: %v", e.Operation, e.Host, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *TransportError) Is(target error) bool {
	if e.Operation == "connect" {
		return target == ErrPrinterUnavailable
	}
	return false
}

// NewTransportError creates a new TransportError
func NewTransportError(operation, host, path string, err error) *TransportError {
	return &TransportError{Operation: operation, Host: host, Path: path, Err: err}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsPrinterUnavailable checks if an error indicates the printer is unreachable
func IsPrinterUnavailable(err error) bool {
	return errors.Is(err, ErrPrinterUnavailable)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapTransport wraps an error as a TransportError
func WrapTransport(operation, host, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewTransportError(operation, host, path, err)
}
