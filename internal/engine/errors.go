package engine

import (
	"errors"
	"fmt"
)

// RestoreError reports why a persisted snapshot was rejected.
//
// Restore failures are always recoverable: the caller falls back to a fresh
// cold start instead of applying partial state. The structured code lets
// hosts log the exact rejection cause.
type RestoreError struct {
	// Code identifies the rejection category.
	Code RestoreErrorCode

	// Message is a human-readable description.
	Message string
}

// RestoreErrorCode categorizes snapshot rejections.
type RestoreErrorCode string

const (
	// ErrCodeVersionMismatch indicates an unknown snapshot format version.
	ErrCodeVersionMismatch RestoreErrorCode = "VERSION_MISMATCH"

	// ErrCodeCountMismatch indicates the snapshot was taken against a
	// different content catalog size.
	ErrCodeCountMismatch RestoreErrorCode = "COUNT_MISMATCH"

	// ErrCodeIndexOutOfRange indicates a stored content index (current or
	// history entry) that no longer exists in the catalog.
	ErrCodeIndexOutOfRange RestoreErrorCode = "INDEX_OUT_OF_RANGE"

	// ErrCodeRingCorrupt indicates inconsistent ring-buffer bookkeeping
	// (head, size, or raw slot count out of bounds).
	ErrCodeRingCorrupt RestoreErrorCode = "RING_CORRUPT"

	// ErrCodeCursorOutOfRange indicates a browse cursor outside the valid
	// entry window.
	ErrCodeCursorOutOfRange RestoreErrorCode = "CURSOR_OUT_OF_RANGE"
)

// Error implements the error interface.
func (e *RestoreError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsRestoreError reports whether err is (or wraps) a RestoreError.
func IsRestoreError(err error) bool {
	var re *RestoreError
	return errors.As(err, &re)
}

func newRestoreError(code RestoreErrorCode, format string, args ...any) *RestoreError {
	return &RestoreError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
