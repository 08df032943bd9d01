package api

import (
	"errors"
	"fmt"
)

// User-facing messages. Every remote failure collapses to one of these; the
// caller never learns whether a record was missing or the server was down.
const (
	MsgNetwork = "Network error. Check your connection."
	MsgFailed  = "Request failed. Try again."
)

// TransportError means the request never produced a usable response: it could
// not be built or sent, or the response body could not be read or decoded.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError means the server answered with a non-2xx status.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string // first bytes of the response body, for logs
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Body)
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsStatus reports whether err is (or wraps) a StatusError.
func IsStatus(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// UserMessage maps an API error to the message shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case IsTransport(err):
		return MsgNetwork
	default:
		return MsgFailed
	}
}
