// Package apierr classifies failures from remote web services into a small
// closed set of kinds so callers can branch on the kind instead of matching
// error strings.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies what went wrong talking to a remote service.
type Kind int

const (
	// KindConnection covers transport-level failures: DNS, refused
	// connections, timeouts. The request may never have reached the server.
	KindConnection Kind = iota
	// KindHTTP covers non-2xx responses other than 404.
	KindHTTP
	// KindNotFound is a 404 response, kept distinct because callers map it
	// to its own terminal status.
	KindNotFound
	// KindParse covers responses that arrived but could not be decoded.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection error"
	case KindHTTP:
		return "http error"
	case KindNotFound:
		return "not found"
	case KindParse:
		return "parse error"
	}
	return "unknown"
}

// Error is a classified remote-call failure.
type Error struct {
	Kind       Kind
	StatusCode int // set for KindHTTP and KindNotFound
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTP, KindNotFound:
		return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
	default:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Connection wraps a transport-level failure.
func Connection(err error) *Error { return &Error{Kind: KindConnection, Err: err} }

// Parse wraps a response-decoding failure.
func Parse(err error) *Error { return &Error{Kind: KindParse, Err: err} }

// FromStatus classifies a non-2xx status code.
func FromStatus(code int) *Error {
	if code == http.StatusNotFound {
		return &Error{Kind: KindNotFound, StatusCode: code}
	}
	return &Error{Kind: KindHTTP, StatusCode: code}
}

func as(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsConnection reports whether err is a transport-level failure.
func IsConnection(err error) bool {
	e, ok := as(err)
	return ok && e.Kind == KindConnection
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	e, ok := as(err)
	return ok && e.Kind == KindNotFound
}

// HTTPStatus returns the status code of an HTTP-level failure (including
// 404) and whether err was one.
func HTTPStatus(err error) (int, bool) {
	e, ok := as(err)
	if !ok || (e.Kind != KindHTTP && e.Kind != KindNotFound) {
		return 0, false
	}
	return e.StatusCode, true
}
