package validate

import "errors"

// Kind identifies which constraint a field failed.
type Kind string

const (
	KindMissingField  Kind = "missing_field"
	KindWrongType     Kind = "wrong_type"
	KindInvalidType   Kind = "invalid_type"
	KindTooShort      Kind = "too_short"
	KindTooLong       Kind = "too_long"
	KindOutOfRange    Kind = "out_of_range"
	KindInvalidFormat Kind = "invalid_format"
)

// ErrValidation matches every *Error via errors.Is.
var ErrValidation = errors.New("validation error")

var (
	ErrMissingField  = &Error{Kind: KindMissingField}
	ErrWrongType     = &Error{Kind: KindWrongType}
	ErrInvalidType   = &Error{Kind: KindInvalidType}
	ErrTooShort      = &Error{Kind: KindTooShort}
	ErrTooLong       = &Error{Kind: KindTooLong}
	ErrOutOfRange    = &Error{Kind: KindOutOfRange}
	ErrInvalidFormat = &Error{Kind: KindInvalidFormat}
)

// Error is a single field validation failure. Message is meant to be shown
// to the caller as is.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

// Is matches ErrValidation and any kind sentinel with the same Kind.
func (e *Error) Is(target error) bool {
	if target == ErrValidation {
		return true
	}

	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind && (t.Field == "" || t.Field == e.Field)
}

func newError(kind Kind, field, message string) *Error {
	return &Error{Kind: kind, Field: field, Message: message}
}
