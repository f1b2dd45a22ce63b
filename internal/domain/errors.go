// Package domain holds the entities and error taxonomy shared by operations,
// persistence adapters, and front-end bindings.
package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for errors.Is() checking. Validation and business-rule
// failures (ErrValidation, ErrNotFound, ErrConflict, ErrForbidden) are
// client-fault conditions and are never retried; ErrUnavailable signals a
// failing collaborator.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrConflict    = errors.New("conflict")
	ErrForbidden   = errors.New("forbidden")
	ErrUnavailable = errors.New("unavailable")
)

// ValidationError carries field-level failures detected before any dependency
// call. Use errors.Is(err, ErrValidation) for category checks, or errors.As
// to reach the per-field messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
