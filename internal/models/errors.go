package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrFormat matches every *FormatError.
	ErrFormat = errors.New("malformed input")
	// ErrEmptyInput is returned when averaging over zero words.
	ErrEmptyInput = errors.New("empty input")
	// ErrInvalidQuery is wrapped by query validation failures.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrForbidden is returned for corpus paths outside the configured data.
	ErrForbidden = errors.New("forbidden")
)

// NotFoundError reports a word missing from the vector table, or a missing
// input file when Path is set.
type NotFoundError struct {
	Word string
	Path string
	// Suggestions are vocabulary words spelled similarly to Word, if any.
	Suggestions []string
	Err         error
}

func (e *NotFoundError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("file not found: %s", e.Path)
	}
	msg := fmt.Sprintf("word not found: %q", e.Word)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Unwrap returns the underlying I/O error, if any.
func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// FormatError reports a malformed line of a vector file or a malformed token
// of a corpus. Line is 1-based; zero means unknown.
type FormatError struct {
	Source string
	Line   int
	Token  string
	Reason string
}

func (e *FormatError) Error() string {
	var b strings.Builder
	if e.Source != "" {
		b.WriteString(e.Source)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
		b.WriteString(": ")
	} else if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(e.Reason)
	if e.Token != "" {
		fmt.Fprintf(&b, " (token %q)", e.Token)
	}
	return b.String()
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}
