// Package cmerr defines the typed failures returned by the contact store and
// the query/mutation API.
//
// Every failure is an *Error carrying a Code. Callers branch on the code with
// Is (or the IsNotFound/IsAlreadyExists shorthands), which see through
// fmt.Errorf("%w") wrapping.
package cmerr

import (
	"errors"
	"fmt"
)

// Code categorizes a failure.
type Code string

const (
	// CodeNotFound indicates a referenced contact or book is absent.
	CodeNotFound Code = "NOT_FOUND"

	// CodeAlreadyExists indicates a duplicate full name or book name.
	CodeAlreadyExists Code = "ALREADY_EXISTS"

	// CodeIO indicates a filesystem failure.
	CodeIO Code = "IO"

	// CodeInvalidIdentifier indicates UID text that does not parse.
	CodeInvalidIdentifier Code = "INVALID_IDENTIFIER"

	// CodeMalformedDocument indicates vCard or property text that does not parse.
	CodeMalformedDocument Code = "MALFORMED_DOCUMENT"

	// CodeImportRejected indicates an import source that is not a regular file.
	CodeImportRejected Code = "IMPORT_REJECTED"

	// CodeMissingUID indicates a stored contact without a UID property.
	CodeMissingUID Code = "MISSING_UID"

	// CodeImmutableProperty indicates an attempt to change BEGIN, END,
	// VERSION, UID or REV.
	CodeImmutableProperty Code = "IMMUTABLE_PROPERTY"

	// CodeReservedBook indicates an attempt to delete or rename the default book.
	CodeReservedBook Code = "RESERVED_BOOK"

	// CodeInvalidName indicates a book name that cannot be used as a directory name.
	CodeInvalidName Code = "INVALID_NAME"
)

// Error is a categorized failure.
type Error struct {
	// Code identifies the failure category.
	Code Code

	// Message is a human-readable description.
	Message string

	// Path is the file involved, if any.
	Path string

	// Content is the raw text that failed to parse (MalformedDocument only).
	Content string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Path != "" {
		msg = fmt.Sprintf("%s (path=%s)", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error with the given code and message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error with the given code around an underlying cause.
func Wrap(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// IO wraps a filesystem failure on path.
func IO(path string, err error, op string) *Error {
	return &Error{Code: CodeIO, Message: op, Path: path, Err: err}
}

// Malformed reports a document at path whose content failed to parse.
func Malformed(path, content string, err error) *Error {
	return &Error{
		Code:    CodeMalformedDocument,
		Message: "document is not valid vCard",
		Path:    path,
		Content: content,
		Err:     err,
	}
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether err carries the given code.
// Uses errors.As to handle wrapped errors.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// IsNotFound reports whether err is a NotFound failure.
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsAlreadyExists reports whether err is an AlreadyExists failure.
func IsAlreadyExists(err error) bool {
	return Is(err, CodeAlreadyExists)
}
