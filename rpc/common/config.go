package common

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultEndpoint is the loopback address and well-known port of the daemon.
const DefaultEndpoint = "localhost:51371"

// --------------------------------------------------------------------------
// Client configuration structs
// --------------------------------------------------------------------------

// SocketConf holds generic socket tuning options shared by all stream
// transports.
type SocketConf struct {
	WriteBufferSize int
	ReadBufferSize  int
}

// TCPConf holds TCP-specific tuning options (ignored by other transports).
type TCPConf struct {
	TCPNoDelay      bool
	TCPKeepAliveSec int
	TCPLingerSec    int
}

// ClientConfig holds all configuration parameters for one client session.
// A session owns exactly one connection; applications that need concurrent
// queries open multiple sessions with independent configs.
type ClientConfig struct {
	// Endpoint is the "host:port" address of the daemon (or the socket path
	// for unix transports).
	Endpoint string

	// TimeoutSecond bounds each blocking read/write. Zero means no deadline.
	TimeoutSecond int

	Socket SocketConf
	TCP    TCPConf
}

// DefaultClientConfig returns the configuration used when the caller does
// not override anything: the loopback daemon endpoint with TCP_NODELAY set.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Endpoint:      DefaultEndpoint,
		TimeoutSecond: 30,
		TCP: TCPConf{
			TCPNoDelay: true,
		},
	}
}

// String returns a formatted string representation of the configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Client Configuration")
	addField("Endpoint", c.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))

	addSection("Socket")
	addField("Write Buffer", strconv.Itoa(c.Socket.WriteBufferSize))
	addField("Read Buffer", strconv.Itoa(c.Socket.ReadBufferSize))
	addField("TCP NoDelay", strconv.FormatBool(c.TCP.TCPNoDelay))
	addField("TCP KeepAlive (sec)", strconv.Itoa(c.TCP.TCPKeepAliveSec))
	addField("TCP Linger (sec)", strconv.Itoa(c.TCP.TCPLingerSec))

	return sb.String()
}
