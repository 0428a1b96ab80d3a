package catalog

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"rplsite/ordering"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrTransaction = errors.New("transaction failed")

	ErrSectionNotFound   = errors.Wrap(ErrNotFound, "section")
	ErrCourseNotFound    = errors.Wrap(ErrNotFound, "course")
	ErrLinkTaken         = errors.Wrap(ErrConflict, "link already in use")
	ErrSectionHasCourses = errors.Wrap(ErrConflict, "section still has courses")
)

// ValidationError carries the failing fields of an input, keyed by JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// classify maps errors raised inside a transaction onto the package's error
// kinds. Anything it does not recognise is logged and reported as
// ErrTransaction.
func classify(op string, err error) error {
	var rangeErr *ordering.RangeError
	var validationErr *ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &validationErr),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConflict):
		return err
	case errors.As(err, &rangeErr):
		return fieldError("index", fmt.Sprintf("Index must be between %d and %d!", rangeErr.Min, rangeErr.Max))
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrLinkTaken
	default:
		log.Printf("[CATALOG] %s: %v", op, err)
		return errors.Wrap(ErrTransaction, op)
	}
}
