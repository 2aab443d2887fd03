package genetic

import (
	"errors"
	"fmt"
)

// ErrInvalidOptions is wrapped by every construction-time validation failure
var ErrInvalidOptions = errors.New("invalid solver options")

// OptionError reports which option failed validation and why
type OptionError struct {
	Field  string
	Reason string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *OptionError) Unwrap() error {
	return ErrInvalidOptions
}

func optionError(field, format string, args ...any) error {
	return &OptionError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
