package errors

import (
	"strings"
)

type ErrorKind string

const (
	ErrorKindOffline  ErrorKind = "offline"
	ErrorKindHTTP     ErrorKind = "http"
	ErrorKindNotFound ErrorKind = "not-found"
	ErrorKindOther    ErrorKind = "other"
)

type ClassifiedError struct {
	Kind    ErrorKind
	Message string
	Hint    string // User-friendly suggestion
	Raw     error
}

func (e ClassifiedError) Error() string {
	return e.Message
}

func Classify(err error) ClassifiedError {
	if err == nil {
		return ClassifiedError{}
	}

	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "timeout") || strings.Contains(msg, "no such host") || strings.Contains(msg, "econnrefused"):
		return ClassifiedError{
			Kind:    ErrorKindOffline,
			Message: err.Error(),
			Hint:    "Is the lazyloadd daemon running? Check with 'lazyload status' or start it with 'lazyloadd'",
			Raw:     err,
		}
	case strings.Contains(msg, "404") || strings.Contains(msg, "not found") || strings.Contains(msg, "unknown profile"):
		return ClassifiedError{
			Kind:    ErrorKindNotFound,
			Message: err.Error(),
			Hint:    "The requested resource was not found. Check the tool or profile name against 'lazyload registry'.",
			Raw:     err,
		}
	case strings.Contains(msg, "http") || strings.Contains(msg, "status code"):
		return ClassifiedError{
			Kind:    ErrorKindHTTP,
			Message: err.Error(),
			Hint:    "An HTTP error occurred during communication with the daemon.",
			Raw:     err,
		}
	default:
		return ClassifiedError{
			Kind:    ErrorKindOther,
			Message: err.Error(),
			Hint:    "An unexpected error occurred.",
			Raw:     err,
		}
	}
}
