package lcu

import (
	"errors"
	"fmt"
	"strings"
)

// ParseError reports a lockfile that could not be used. Discovery treats it as
// a skipped candidate.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := "parse lockfile"
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// Attempt records one discovery source and why it was skipped.
type Attempt struct {
	Source string
	Reason string
}

// NotFoundError is returned when no discovery source produced a connection.
type NotFoundError struct {
	Attempts []Attempt
}

func (e *NotFoundError) Error() string {
	if len(e.Attempts) == 0 {
		return "league client not found: no discovery sources configured"
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s (%s)", a.Source, a.Reason))
	}
	return "league client not found; tried " + strings.Join(parts, ", ")
}

// Tried returns the sources in the order they were attempted.
func (e *NotFoundError) Tried() []string {
	out := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		out[i] = a.Source
	}
	return out
}

// ErrInvalidMethod is matched by errors.Is for requests rejected before dialing.
var ErrInvalidMethod = errors.New("invalid HTTP method")

// ErrorKind classifies an APIError.
type ErrorKind int

const (
	KindInvalidMethod ErrorKind = iota + 1
	KindTransport
	KindHTTP
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidMethod:
		return "invalid_method"
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	default:
		return "unknown"
	}
}

// APIError is returned by Client.Request.
type APIError struct {
	Kind ErrorKind

	// Method is set for KindInvalidMethod.
	Method string
	// Status and Body are set for KindHTTP. Body is the raw response text.
	Status int
	Body   string
	// Message describes a KindTransport failure.
	Message string

	Err error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindInvalidMethod:
		return fmt.Sprintf("invalid HTTP method %q", e.Method)
	case KindHTTP:
		return fmt.Sprintf("lcu api error %d: %s", e.Status, e.Body)
	default:
		return "lcu transport: " + e.Message
	}
}

func (e *APIError) Unwrap() error { return e.Err }
