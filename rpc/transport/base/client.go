package base

import (
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/hmmnet/hmmnet/rpc/common"
	"github.com/hmmnet/hmmnet/rpc/transport"
)

var logger = common.CreateLogger("transport")

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IClientConnector defines the interface for transport-specific connection
// operations.
type IClientConnector interface {
	// Connect establishes a single connection to the given endpoint
	Connect(endpoint string) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an established connection
	UpgradeConnection(conn net.Conn, config common.ClientConfig) error
}

// -----------------------------------------------------------
// Base Client Transport
// -----------------------------------------------------------

// clientTransport implements the core client transport functionality
// independent of the specific transport medium (unix, tcp, etc.)
type clientTransport struct {
	connector IClientConnector
	config    common.ClientConfig
	conn      net.Conn
	connMu    sync.Mutex
}

// NewBaseClientTransport creates a new base client transport with the
// specified connector.
func NewBaseClientTransport(connector IClientConnector) transport.IClientTransport {
	return &clientTransport{connector: connector}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IClientTransport)
// --------------------------------------------------------------------------

func (t *clientTransport) Connect(config common.ClientConfig) error {
	t.connMu.Lock()
	defer t.connMu.Unlock()

	// Close any previous connection before reconnecting
	if t.conn != nil {
		t.conn.Close()
		t.conn = nil
	}

	t.config = config

	conn, err := t.connector.Connect(config.Endpoint)
	if err != nil {
		return &common.ConnectionError{Endpoint: config.Endpoint, Err: err}
	}

	if err := t.connector.UpgradeConnection(conn, config); err != nil {
		conn.Close()
		return &common.ConnectionError{Endpoint: config.Endpoint, Err: err}
	}

	t.conn = conn
	logger.Debug("connected", "endpoint", config.Endpoint, "transport", t.connector.GetName())
	return nil
}

func (t *clientTransport) SendAll(data []byte) error {
	conn := t.current()
	if conn == nil {
		return &common.TransportError{Op: "send", Err: net.ErrClosed}
	}

	if t.config.TimeoutSecond > 0 {
		deadline := time.Now().Add(time.Duration(t.config.TimeoutSecond) * time.Second)
		conn.SetWriteDeadline(deadline)
	}

	// net.Conn.Write may return early when a deadline fires mid-write, so
	// loop until the full buffer is on the wire.
	for len(data) > 0 {
		n, err := conn.Write(data)
		if err != nil {
			return &common.TransportError{Op: "send", Err: err}
		}
		data = data[n:]
	}
	return nil
}

func (t *clientTransport) ReceiveExact(n int) ([]byte, error) {
	conn := t.current()
	if conn == nil {
		return nil, &common.TransportError{Op: "receive", Err: net.ErrClosed}
	}

	if t.config.TimeoutSecond > 0 {
		deadline := time.Now().Add(time.Duration(t.config.TimeoutSecond) * time.Second)
		conn.SetReadDeadline(deadline)
	}

	buf := make([]byte, n)
	got := 0
	for got < n {
		r, err := conn.Read(buf[got:])
		got += r
		// Read may return the final bytes together with io.EOF; the call
		// succeeded once the buffer is complete, whatever error rides along.
		if got >= n {
			break
		}
		if err != nil {
			// A close from the peer before the full length arrived is a
			// distinct condition from a mid-read I/O failure: upper layers
			// must never see a short buffer.
			if isEOF(err) {
				return nil, &common.UnexpectedEOFError{Want: n, Got: got}
			}
			return nil, &common.TransportError{Op: "receive", Err: err}
		}
	}
	return buf, nil
}

func (t *clientTransport) Close() error {
	t.connMu.Lock()
	defer t.connMu.Unlock()

	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// current returns the active connection, or nil when disconnected.
func (t *clientTransport) current() net.Conn {
	t.connMu.Lock()
	defer t.connMu.Unlock()
	return t.conn
}

// isEOF reports whether the read error means the peer closed the stream.
func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}
