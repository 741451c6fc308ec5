// Package common provides core data structures and utilities shared across
// the hmmnet client stack. It defines fundamental types, configuration
// structures, and protocol elements used by other packages.
//
// The package focuses on:
//   - The error taxonomy for the daemon protocol (validation, connection,
//     transport, protocol, and server-reported failures)
//   - Status codes returned by the search daemon
//   - Configuration structures for client sessions and their sockets
//   - A logger factory providing consistently formatted package loggers
//
// Key Components:
//
//   - StatusCode: Enumeration of the status values a daemon may report in a
//     response header. Codes outside the known range are protocol violations.
//
//   - ValidationError, ConnectionError, TransportError, UnexpectedEOFError,
//     ProtocolError, ServerError: the typed errors surfaced by the client.
//     All support errors.As, and the wrapping kinds support errors.Unwrap.
//
//   - ClientConfig: Configuration for client sessions, controlling the
//     endpoint, timeouts and socket tuning options.
//
//   - CreateLogger: Factory for prefixed loggers with uniform formatting.
package common
