package errors

import (
	"errors"
	"strings"
)

// Code groups failures by the part of hwmon that produced them.
type Code string

const (
	ErrConfig    Code = "CONFIG"    // config load, parse or validation
	ErrTransport Code = "TRANSPORT" // fetch, dial or stream, including non-2xx
	ErrDecode    Code = "DECODE"    // malformed JSON payloads
	ErrRender    Code = "RENDER"    // chart output and the live view
	ErrServer    Code = "SERVER"    // demo server startup
	ErrCollect   Code = "COLLECT"   // agent collection and push
)

func (c Code) String() string { return string(c) }

// Error is a failure with a user-facing message and an optional hint.
// Error() renders it for the terminal:
//
//	✗ <message>
//
//	  <cause, every line indented>
//
//	  <suggestion>
type Error struct {
	Code       Code
	Message    string
	Suggestion string
	Cause      error
}

// New returns an error with no underlying cause.
func New(code Code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion}
}

// Wrap attaches a message to err. Unclassified failures are almost always
// server round trips, so the code is ErrTransport.
func Wrap(err error, message string) *Error {
	return WrapWithCode(err, ErrTransport, message, "")
}

// WrapWithCode attaches a code, message and suggestion to err.
func WrapWithCode(err error, code Code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion, Cause: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("✗ ")
	b.WriteString(e.Message)
	b.WriteByte('\n')

	if e.Cause != nil {
		b.WriteByte('\n')
		writeIndented(&b, e.Cause.Error())
	}
	if e.Suggestion != "" {
		b.WriteByte('\n')
		writeIndented(&b, e.Suggestion)
	}
	return b.String()
}

// writeIndented writes s with each non-empty line indented two spaces.
func writeIndented(b *strings.Builder, s string) {
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		if line != "" {
			b.WriteString("  ")
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error with the same code, so a bare
// &Error{Code: ErrConfig} works as a target for errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code && t.Message == "" && t.Cause == nil
}

// CodeOf returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsCode reports whether err is classified as code.
func IsCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
