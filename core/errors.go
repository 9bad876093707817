package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed operation so the caller can decide how to
// present it: fix the input, perform the missing prior action, or retry later.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	// ErrValidation marks missing or invalid input (unknown employee, action).
	ErrValidation
	// ErrSequence marks an action that is illegal given the current session
	// state, e.g. clocking out without an open clock-in.
	ErrSequence
	// ErrNotFound marks a referenced ledger entry or pending token that does
	// not exist (anymore).
	ErrNotFound
	// ErrStorage marks a failed read or write against the ledger; the
	// operation aborts without partial mutation.
	ErrStorage
)

// Error is the machine's failure result. It wraps an underlying cause for
// storage failures and carries a user-presentable message otherwise.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

func sequencef(format string, args ...any) error {
	return &Error{Kind: ErrSequence, Msg: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

func storageErr(msg string, err error) error {
	return &Error{Kind: ErrStorage, Msg: msg, Err: err}
}

// KindOf extracts the ErrorKind from err, or ErrUnknown if err was not
// produced by the machine.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrUnknown
}
