package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrLocationInUse = errors.New("location is still used by items")
	ErrNameTaken     = errors.New("name already taken")
	ErrInvalid       = errors.New("invalid input")
)

// FieldError reports a draft field that failed validation. It matches ErrInvalid
// under errors.Is.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrInvalid
}
