package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrNotVerified    = errors.New("email not verified")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidInput   = errors.New("invalid input")
	ErrCodeMismatch   = errors.New("confirmation code mismatch")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
)

// FieldError is a validation failure scoped to a single form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors aggregates field-scoped validation failures so a handler
// can flash each one against its field. It matches ErrInvalidInput under
// errors.Is.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Message
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrInvalidInput
}
