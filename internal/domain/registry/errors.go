package registry

import (
	"errors"
	"fmt"
)

// ErrorKind classifies registry failures.
type ErrorKind string

const (
	ErrMalformedEntry    ErrorKind = "malformed_entry"
	ErrDanglingReference ErrorKind = "dangling_reference"
	ErrNotFound          ErrorKind = "not_found"
	ErrUnknownProfile    ErrorKind = "unknown_profile"
)

// Error is a typed registry failure. Name holds the tool or profile the
// error refers to, when one is known.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Name    string    `json:"name,omitempty"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("registry: %s: %s", e.Name, e.Message)
	}
	return fmt.Sprintf("registry: %s", e.Message)
}

// IsKind reports whether err is (or wraps) a registry Error of the given
// kind.
func IsKind(err error, kind ErrorKind) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == kind
}

func newError(kind ErrorKind, name, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Name: name, Message: fmt.Sprintf(format, args...)}
}
