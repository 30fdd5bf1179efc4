package model

import (
	"errors"
	"fmt"
)

// Kind classifies engine failures
type Kind int

const (
	// InvalidGeometry covers bad support/load positions and duplicate supports
	InvalidGeometry Kind = iota + 1

	// Unstable is a mechanism: too few restraints to prevent rigid-body motion.
	// Matches ErrInvalidGeometry as well.
	Unstable

	// UnresolvedSection means a section name has no matching properties
	UnresolvedSection

	// UndefinedCombination is the "nothing to show" state of a combination
	// without factors (or with an all-zero combined load set)
	UndefinedCombination

	// NumericalInstability is an ill-conditioned system during solve
	NumericalInstability
)

func (k Kind) String() string {
	switch k {
	case InvalidGeometry:
		return "invalid geometry"
	case Unstable:
		return "unstable"
	case UnresolvedSection:
		return "unresolved section"
	case UndefinedCombination:
		return "undefined combination"
	case NumericalInstability:
		return "numerical instability"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinel errors for errors.Is comparisons
var (
	ErrInvalidGeometry      = &Error{Kind: InvalidGeometry}
	ErrUnstable             = &Error{Kind: Unstable}
	ErrUnresolvedSection    = &Error{Kind: UnresolvedSection}
	ErrUndefinedCombination = &Error{Kind: UndefinedCombination}
	ErrNumericalInstability = &Error{Kind: NumericalInstability}
)

// Error is the error type returned by the engine packages
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "solve"
	Msg  string
	Err  error // underlying cause, may be nil
}

// Errorf builds an *Error of the given kind
func Errorf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports kind equality. An Unstable error is also an InvalidGeometry error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind == e.Kind {
		return true
	}
	return e.Kind == Unstable && t.Kind == InvalidGeometry
}

// KindOf returns the kind of err, or 0 when err is not an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
