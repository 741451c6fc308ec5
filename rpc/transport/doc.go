// Package transport defines the interfaces and abstractions for the stream
// connection to the search daemon. It provides a common contract that all
// transport implementations must fulfill, enabling protocol-agnostic
// connection handling.
//
// The package focuses on:
//   - Defining a clear interface for the client transport layer
//   - Guaranteeing exact-length reads over partial deliveries
//   - Enabling multiple transport implementations (TCP, Unix sockets)
//
// Key Components:
//
//   - IClientTransport: Interface for client-side transport implementations
//     that handles connection management, full-buffer writes and exact-length
//     reads.
package transport
