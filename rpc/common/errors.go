package common

import (
	"fmt"
)

// --------------------------------------------------------------------------
// Error Taxonomy
// --------------------------------------------------------------------------

// All errors surfaced by the client stack fall into one of the types below.
// None of them are retried internally; retry policy belongs to the caller.

// ValidationError reports malformed caller input. It is always raised before
// any network I/O has happened for the offending call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConnectionError reports a connect-time failure.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// TransportError reports a mid-exchange I/O failure (broken pipe, reset,
// timeout). The result of the affected call is discarded.
type TransportError struct {
	Op  string // "send" or "receive"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UnexpectedEOFError reports that the peer closed the connection before the
// requested number of bytes arrived. Want is the expected length, Got is the
// number of bytes actually read before the close.
type UnexpectedEOFError struct {
	Want int
	Got  int
}

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("unexpected EOF: got %d of %d expected bytes", e.Got, e.Want)
}

// ProtocolError reports a structural violation in a received message, such
// as an unknown status code or a buffer shorter than a declared length.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: %s", e.Reason)
}

// NewProtocolErrorf creates a ProtocolError with a formatted reason.
func NewProtocolErrorf(format string, args ...interface{}) *ProtocolError {
	return &ProtocolError{Reason: fmt.Sprintf(format, args...)}
}

// ServerError reports a failure status explicitly returned by the daemon.
// Message is the human-readable text sent by the server, decoded best-effort
// (invalid UTF-8 sequences are replaced, never re-raised).
type ServerError struct {
	Code    StatusCode
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (%s)", e.Code)
	}
	return fmt.Sprintf("server error (%s): %s", e.Code, e.Message)
}
