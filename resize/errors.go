package resize

import (
	"errors"
	"fmt"
)

type ErrorKind int32

const (
	_ ErrorKind = iota
	KindInvalidInput
	KindForbiddenHost
	KindUpstream
	KindDecode
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindForbiddenHost:
		return "forbidden_host"
	case KindUpstream:
		return "upstream"
	case KindDecode:
		return "decode"
	case KindInternal:
		return "internal"
	default:
		return fmt.Sprintf("UNKNOWN KIND %d", k)
	}
}

// Error is the only error type returned across the resize boundary. Kind is
// what callers switch on, Cause is kept for logs and errors.Is.
type Error struct {
	Kind    ErrorKind
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Kind, e.Op, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%s:%s] %s", e.Kind, e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func NewError(kind ErrorKind, op, message string) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
	}
}

// Wrap returns nil for a nil err. An err that already carries a kind is
// returned as is so the innermost classification wins.
func Wrap(kind ErrorKind, op, message string, err error) error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return err
	}

	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
		Cause:   err,
	}
}

// KindOf reports the kind of err, KindInternal for anything unclassified.
func KindOf(err error) ErrorKind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}

	return KindInternal
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
