// Package errors provides sentinel errors and error types for the chess engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move that is not legal in the position.
	ErrIllegalMove = errors.New("illegal move")

	// ErrParseFailure indicates a malformed protocol command or argument.
	ErrParseFailure = errors.New("parse failure")

	// ErrUnknownCommand indicates a protocol command the engine does not know.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// FENField names the part of a FEN string that failed to parse.
type FENField int

const (
	FieldFormat FENField = iota
	FieldBoard
	FieldColour
	FieldCastling
	FieldSquare
	FieldHalfMoveClock
	FieldFullMoveNumber
)

// String returns a readable field name.
func (f FENField) String() string {
	names := []string{"format", "board", "colour", "castling rights", "en-passant square",
		"half-move clock", "full-move number"}
	if int(f) < len(names) {
		return names[f]
	}
	return "unknown"
}

// FENError describes which FEN field was rejected and why. It unwraps to
// ErrInvalidFEN.
type FENError struct {
	Field  FENField
	Value  string // the offending field text
	Char   byte   // the offending board character, if any
	Detail string
}

// Error returns a formatted error message naming the field.
func (e *FENError) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrInvalidFEN.Error())
	sb.WriteString(": ")
	sb.WriteString(e.Field.String())
	if e.Char != 0 {
		fmt.Fprintf(&sb, ": invalid character %q", e.Char)
	}
	if e.Value != "" {
		fmt.Fprintf(&sb, ": %q", e.Value)
	}
	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}
	return sb.String()
}

// Unwrap returns ErrInvalidFEN.
func (e *FENError) Unwrap() error {
	return ErrInvalidFEN
}

// GameError wraps errors with game context: the ply at which a move list
// failed and the offending move text.
type GameError struct {
	Err      error  // The underlying error
	PlyNum   int    // 1-based ply within the applied move list (0 if not applicable)
	MoveText string // The move text that caused the error (if applicable)
	FEN      string // Position the move was tried in (if known)
}

// Error returns a formatted error message including all available context.
func (e *GameError) Error() string {
	var parts []string

	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}
	if e.FEN != "" {
		parts = append(parts, fmt.Sprintf("position %q", e.FEN))
	}

	context := strings.Join(parts, ", ")
	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the GameError wrapper.
func (e *GameError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing error with input location context.
// It's used for protocol commands and position batch files.
type ParseError struct {
	Err      error  // The underlying error
	File     string // Source name (file name, "stdin")
	Line     int    // Line number (1-based)
	Column   int    // Token number (1-based)
	Expected string // What was expected
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.File != "" {
		loc := e.File
		if e.Line > 0 {
			loc += fmt.Sprintf(":%d", e.Line)
			if e.Column > 0 {
				loc += fmt.Sprintf(":%d", e.Column)
			}
		}
		parts = append(parts, loc)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether err matches target, re-exported so callers need only
// this package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
