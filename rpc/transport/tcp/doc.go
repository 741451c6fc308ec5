// Package tcp provides the TCP implementation of the client transport.
// This is the transport the search daemon listens on by default.
package tcp
