// Package apperr holds the error kinds the HTTP layer translates into status codes.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

type Kind int

const (
	KindInvalid Kind = iota + 1
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is a caller-facing failure whose Message is safe to return as-is.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Invalid(format string, args ...any) *Error {
	return &Error{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == KindNotFound
}

func IsInvalid(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == KindInvalid
}

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func (f FieldError) String() string {
	switch f.Rule {
	case "required":
		return f.Field + " is required"
	case "nonempty":
		return f.Field + " must not be empty"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", f.Field, f.Param)
	case "email":
		return f.Field + " must be a valid email"
	default:
		return fmt.Sprintf("%s failed %s", f.Field, f.Rule)
	}
}

// ValidationError lists every violated field of a record, not only the first one.
type ValidationError struct {
	Record string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		parts = append(parts, field.String())
	}
	return fmt.Sprintf("%s validation failed: %s", e.Record, strings.Join(parts, ", "))
}
