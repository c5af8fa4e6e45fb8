package history

import (
	"errors"
	"fmt"
)

// Kind classifies a failed operation.
type Kind string

const (
	KindValidation    Kind = "VALIDATION"
	KindAuthorization Kind = "AUTHORIZATION"
	KindConflict      Kind = "CONFLICT"
	KindTransport     Kind = "TRANSPORT"
	KindUnknown       Kind = "UNKNOWN"
)

// Error is the typed failure reported by every engine operation.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// ErrPromptCancelled is returned by an Authorizer when the user declines to
// provide a credential.
var ErrPromptCancelled = errors.New("credential prompt cancelled")

// KindOf returns the Kind of err. Errors that are not *Error are treated as
// KindUnknown, never as success.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsValidation reports whether err was rejected before reaching the backend.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
