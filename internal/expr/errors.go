package expr

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota + 1
	UnbalancedParens
	UnknownIdentifier
	EmptyInput
	TrailingInput
)

var (
	ErrUnexpectedToken   = errors.New("unexpected token")
	ErrUnbalancedParens  = errors.New("unbalanced parentheses")
	ErrUnknownIdentifier = errors.New("unknown identifier")
	ErrEmptyInput        = errors.New("empty input")
	ErrTrailingInput     = errors.New("trailing input")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case UnexpectedToken:
		return ErrUnexpectedToken
	case UnbalancedParens:
		return ErrUnbalancedParens
	case UnknownIdentifier:
		return ErrUnknownIdentifier
	case EmptyInput:
		return ErrEmptyInput
	case TrailingInput:
		return ErrTrailingInput
	}
	return nil
}

func (k ErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError describes why a formula was rejected. Pos is the byte offset
// of the offending token in the source.
type ParseError struct {
	Kind  ErrorKind
	Pos   int
	Token string
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("expr: %s at offset %d: %s", e.Kind, e.Pos, e.Msg)
	}
	return fmt.Sprintf("expr: %s at offset %d near %q", e.Kind, e.Pos, e.Token)
}

func (e *ParseError) Unwrap() error {
	return e.Kind.sentinel()
}
