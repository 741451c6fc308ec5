// Package rpc provides the client-side protocol stack for talking to a
// remote sequence-search daemon over a stream socket.
//
// The package is organized into several subpackages:
//
//   - common: Core types and utilities used across the stack, including the
//     error taxonomy, status codes, configuration structures, and logging.
//
//   - transport: Stream connection abstractions with pluggable
//     implementations (TCP, Unix sockets) guaranteeing exact-length reads.
//
//   - wire: The byte-exact codec for the daemon protocol: request lines,
//     status headers, statistics blocks and hit records.
//
//   - client: The session state machine orchestrating request/response
//     exchanges, plus scoped sessions and a session pool for concurrent
//     queries.
package rpc
