package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or out-of-range input; user-correctable.
	ErrValidation = errors.New("validation error")
	// ErrConflict marks uniqueness violations such as a duplicate email.
	ErrConflict = errors.New("conflict")
	// ErrNotFound marks a referenced id that does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrSystem marks unexpected failures in the store or transport.
	ErrSystem = errors.New("system error")
)

func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func Systemf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrSystem, fmt.Sprintf(format, args...))
}

// Message strips the sentinel prefix, leaving the human-readable part.
func Message(err error) string {
	if err == nil {
		return ""
	}
	for _, sentinel := range []error{ErrValidation, ErrConflict, ErrNotFound, ErrSystem} {
		if errors.Is(err, sentinel) {
			prefix := sentinel.Error() + ": "
			msg := err.Error()
			if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
				return msg[len(prefix):]
			}
			return msg
		}
	}
	return err.Error()
}
