package domain

import (
	"errors"
	"fmt"
)

// ErrArtifactNotFound is returned when an image store has nothing under a name.
var ErrArtifactNotFound = errors.New("artifact not found")

// ErrParse is returned when a script cannot be parsed. No frame runs.
var ErrParse = errors.New("parse failure")

// ErrConfiguration is returned when the animation directives are inconsistent
// (vary before frames, inverted or out-of-range vary, invalid frame count).
var ErrConfiguration = errors.New("configuration error")

// ErrStackUnderflow is returned when pop would remove the base transform.
var ErrStackUnderflow = errors.New("transform stack underflow")

// ErrPrimitiveArgument is returned when a geometry or transform command
// receives malformed arguments.
var ErrPrimitiveArgument = errors.New("invalid primitive arguments")

// ParseError locates a parse failure in the source.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("parse: %s", e.Reason)
	}
	return fmt.Sprintf("parse: line %d: %s", e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// ConfigError describes an invalid animation directive.
type ConfigError struct {
	Op     Op
	Line   int
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Op, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// ArgumentError describes malformed arguments to a command.
type ArgumentError struct {
	Op     Op
	Line   int
	Reason string
	Args   []Arg
}

func (e *ArgumentError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s (got %d args)", e.Op, e.Reason, len(e.Args))
	}
	return fmt.Sprintf("line %d: %s: %s (got %d args)", e.Line, e.Op, e.Reason, len(e.Args))
}

func (e *ArgumentError) Unwrap() error { return ErrPrimitiveArgument }
