package command

import (
	"errors"
	"fmt"
)

// Describe errors.
var (
	ErrNotFunction      = errors.New("not a function")
	ErrInvalidParamName = errors.New("parameter name is not a valid flag identifier")
	ErrReservedName     = errors.New(`"help" and "h" are reserved for the synthesized help flag`)
	ErrInvalidShortName = errors.New("short flag name must be a single letter")
	ErrBadDefault       = errors.New("default value does not match the parameter type")
	ErrBadSignature     = errors.New("a command function returns at most one value and an optional trailing error")
	ErrOptionsNotString = errors.New("options are only allowed on string parameters")
	ErrExtraParamSpec   = errors.New("registered parameter has no matching function parameter")
)

// UnnamedParameterError reports a function parameter the registration did not
// name. Without a name no command-line flag can be derived, so resolution
// fails before any argument parsing.
type UnnamedParameterError struct {
	Command string
	Index   int // zero-based position among command-line-exposed parameters
}

func (e *UnnamedParameterError) Error() string {
	return fmt.Sprintf("parameter %d of %q has no registered name, cannot derive a flag for it",
		e.Index, e.Command)
}

// UnsupportedTypeError reports a parameter whose declared type has no known
// string coercion rule.
type UnsupportedTypeError struct {
	Command string
	Param   string
	Type    string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("parameter %q of %q has unsupported type %s",
		e.Param, e.Command, e.Type)
}
