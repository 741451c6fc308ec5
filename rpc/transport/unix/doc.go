// Package unix provides the Unix domain socket implementation of the client
// transport, for daemons running on the same host.
package unix
