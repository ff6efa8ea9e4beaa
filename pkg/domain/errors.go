package domain

import (
	"errors"
	"fmt"
)

// ErrDefinitionNotFound is returned when a catalog lookup cannot resolve a
// definition identifier.
var ErrDefinitionNotFound = errors.New("definition not found")

// ErrDefinitionNotInstalled is returned when a definition exists upstream but
// has no copy in the local catalog. The editor surfaces this as an explicit
// not-supported condition; it never auto-imports.
var ErrDefinitionNotInstalled = errors.New("definition not installed in local catalog")

// ErrVariantNotFound is returned when a definition has no variant with the
// requested identifier.
var ErrVariantNotFound = errors.New("variant not found")

// ErrChooserUnavailable is returned when placement needs the selection dialog
// but no chooser is configured (headless surfaces).
var ErrChooserUnavailable = errors.New("no chooser configured")

// ValidationError reports malformed persisted data or invalid geometry. It
// fails construction and parsing outright; values are never coerced.
type ValidationError struct {
	Subject string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Subject, e.Reason)
}

// NewValidationError builds a ValidationError for the given subject.
func NewValidationError(subject, format string, args ...any) *ValidationError {
	return &ValidationError{Subject: subject, Reason: fmt.Sprintf(format, args...)}
}

// MutationError reports that a forward or inverse mutation could not be
// applied against the current document state, e.g. removing an instance that
// is no longer registered.
type MutationError struct {
	Op     string
	Target string
	Reason string
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("cannot %s %s: %s", e.Op, e.Target, e.Reason)
}

// NewMutationError builds a MutationError for the given operation and target.
func NewMutationError(op, target, format string, args ...any) *MutationError {
	return &MutationError{Op: op, Target: target, Reason: fmt.Sprintf(format, args...)}
}
