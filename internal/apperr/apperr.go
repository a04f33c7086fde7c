// Package apperr defines the error kinds surfaced by the data-access layer.
//
// Callers match kinds with errors.Is; the message carries the detail.
package apperr

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
	// ErrReferenced is returned when a delete is blocked by rows still pointing at the target.
	ErrReferenced = errors.New("still referenced")
)

// NotFound returns an ErrNotFound reading "<what> not found".
func NotFound(what string) error {
	return &kindError{kind: ErrNotFound, msg: what + " not found"}
}

func Conflict(format string, args ...any) error {
	return &kindError{kind: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error {
	return &kindError{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

func Referenced(what string) error {
	return &kindError{kind: ErrReferenced, msg: what + " is still referenced and cannot be deleted"}
}

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// Translate maps store errors onto the error kinds. what names the entity the
// statement was about and is used in the resulting message. Errors that are
// already one of the kinds, or that the store did not classify, pass through.
func Translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if IsKind(err) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(what)
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return Conflict("%s conflicts with an existing row: %v", what, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated), isForeignKeyViolation(err):
		return Referenced(what)
	}
	return err
}

// IsKind reports whether err already carries one of the error kinds.
func IsKind(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrReferenced)
}

// Drivers without error translation still report the constraint in the message.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value")
}

func isForeignKeyViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23503") ||
		strings.Contains(msg, "violates foreign key constraint")
}
