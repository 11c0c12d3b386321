// Package domain contains business logic types and errors.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and can be mapped to HTTP/gRPC/etc by adapters.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrValidation indicates business rule validation failed.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable indicates a required dependency is unavailable.
	ErrUnavailable = errors.New("unavailable")

	// ErrEmptyLoad indicates a reload produced no valid records to insert.
	ErrEmptyLoad = errors.New("no valid records")
)

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// UnavailableError provides context for unavailable errors.
type UnavailableError struct {
	Service string
	Reason  string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// EmptyLoadError provides context for an empty reload.
type EmptyLoadError struct {
	Source  string
	Skipped int
}

// Error implements the error interface.
func (e *EmptyLoadError) Error() string {
	if e.Skipped > 0 {
		return fmt.Sprintf("no valid records in %s (%d rows skipped)", e.Source, e.Skipped)
	}

	return "no valid records in " + e.Source
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *EmptyLoadError) Unwrap() error {
	return ErrEmptyLoad
}

// NewEmptyLoadError creates an empty-load error with context.
func NewEmptyLoadError(source string, skipped int) error {
	return &EmptyLoadError{Source: source, Skipped: skipped}
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsEmptyLoad checks if an error is an empty-load error.
func IsEmptyLoad(err error) bool {
	return errors.Is(err, ErrEmptyLoad)
}
