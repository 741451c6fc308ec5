// Package base implements the transport-medium-independent parts of the
// client transport: connection lifecycle, full-buffer sends and exact-length
// receives. Concrete transports (tcp, unix) only supply an IClientConnector
// that dials and tunes the socket.
package base
