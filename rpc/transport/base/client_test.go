package base

import (
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/hmmnet/hmmnet/rpc/common"
)

// fakeConn is a scripted net.Conn. Each Read returns the next chunk; after
// the script runs out it returns io.EOF like a closed peer. With eofWithLast
// set the final chunk arrives together with io.EOF in the same Read call,
// which the io.Reader contract permits.
type fakeConn struct {
	chunks      [][]byte
	eofWithLast bool
	written     []byte
	closed      int
}

func (c *fakeConn) Read(b []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(b, c.chunks[0])
	if n < len(c.chunks[0]) {
		c.chunks[0] = c.chunks[0][n:]
	} else {
		c.chunks = c.chunks[1:]
	}
	if c.eofWithLast && len(c.chunks) == 0 {
		return n, io.EOF
	}
	return n, nil
}

func (c *fakeConn) Write(b []byte) (int, error) {
	c.written = append(c.written, b...)
	return len(b), nil
}

func (c *fakeConn) Close() error                       { c.closed++; return nil }
func (c *fakeConn) LocalAddr() net.Addr                { return nil }
func (c *fakeConn) RemoteAddr() net.Addr               { return nil }
func (c *fakeConn) SetDeadline(t time.Time) error      { return nil }
func (c *fakeConn) SetReadDeadline(t time.Time) error  { return nil }
func (c *fakeConn) SetWriteDeadline(t time.Time) error { return nil }

// fakeConnector hands out a prepared fakeConn
type fakeConnector struct {
	conn       *fakeConn
	connectErr error
}

func (c *fakeConnector) Connect(endpoint string) (net.Conn, error) {
	if c.connectErr != nil {
		return nil, c.connectErr
	}
	return c.conn, nil
}

func (c *fakeConnector) GetName() string { return "fake" }

func (c *fakeConnector) UpgradeConnection(conn net.Conn, config common.ClientConfig) error {
	return nil
}

// connect creates a transport wired to the given fakeConn
func connect(t *testing.T, conn *fakeConn) *clientTransport {
	t.Helper()
	tr := NewBaseClientTransport(&fakeConnector{conn: conn}).(*clientTransport)
	if err := tr.Connect(common.DefaultClientConfig()); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	return tr
}

// TestReceiveExactReassembly tests that fragmented reads are reassembled
func TestReceiveExactReassembly(t *testing.T) {
	conn := &fakeConn{chunks: [][]byte{[]byte("ab"), []byte("cd"), []byte("ef")}}
	tr := connect(t, conn)

	buf, err := tr.ReceiveExact(6)
	if err != nil {
		t.Fatalf("failed to receive: %v", err)
	}
	if string(buf) != "abcdef" {
		t.Errorf("expected 'abcdef', got %q", buf)
	}
}

// TestReceiveExactDataWithEOF tests that a read delivering the final bytes
// together with io.EOF still completes the call
func TestReceiveExactDataWithEOF(t *testing.T) {
	conn := &fakeConn{chunks: [][]byte{[]byte("abcdef")}, eofWithLast: true}
	tr := connect(t, conn)

	buf, err := tr.ReceiveExact(6)
	if err != nil {
		t.Fatalf("failed to receive: %v", err)
	}
	if string(buf) != "abcdef" {
		t.Errorf("expected 'abcdef', got %q", buf)
	}
}

// TestReceiveExactEOF tests that an early close yields an UnexpectedEOFError,
// never a short buffer
func TestReceiveExactEOF(t *testing.T) {
	conn := &fakeConn{chunks: [][]byte{[]byte("abcd")}}
	tr := connect(t, conn)

	buf, err := tr.ReceiveExact(10)
	if buf != nil {
		t.Errorf("expected no buffer on early close, got %d bytes", len(buf))
	}

	var eofErr *common.UnexpectedEOFError
	if !errors.As(err, &eofErr) {
		t.Fatalf("expected UnexpectedEOFError, got %v", err)
	}
	if eofErr.Want != 10 || eofErr.Got != 4 {
		t.Errorf("expected want=10 got=4, have want=%d got=%d", eofErr.Want, eofErr.Got)
	}
}

// TestSendAll tests that the full buffer reaches the connection
func TestSendAll(t *testing.T) {
	conn := &fakeConn{}
	tr := connect(t, conn)

	data := []byte("@--seqdb 1\n>query\nMKV\n//")
	if err := tr.SendAll(data); err != nil {
		t.Fatalf("failed to send: %v", err)
	}
	if string(conn.written) != string(data) {
		t.Errorf("written data doesn't match:\nExpected: %q\nGot: %q", data, conn.written)
	}
}

// TestCloseIdempotent tests that Close can be called repeatedly
func TestCloseIdempotent(t *testing.T) {
	conn := &fakeConn{}
	tr := connect(t, conn)

	if err := tr.Close(); err != nil {
		t.Fatalf("first close failed: %v", err)
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("second close failed: %v", err)
	}
	if conn.closed != 1 {
		t.Errorf("connection closed %d times, want 1", conn.closed)
	}
}

// TestUseAfterClose tests that I/O after Close fails with a TransportError
func TestUseAfterClose(t *testing.T) {
	tr := connect(t, &fakeConn{})
	if err := tr.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}

	var tErr *common.TransportError
	if err := tr.SendAll([]byte("x")); !errors.As(err, &tErr) {
		t.Errorf("expected TransportError on send, got %v", err)
	}
	if _, err := tr.ReceiveExact(1); !errors.As(err, &tErr) {
		t.Errorf("expected TransportError on receive, got %v", err)
	}
}

// TestConnectError tests that connector failures are wrapped
func TestConnectError(t *testing.T) {
	tr := NewBaseClientTransport(&fakeConnector{connectErr: errors.New("refused")})

	err := tr.Connect(common.DefaultClientConfig())
	var cErr *common.ConnectionError
	if !errors.As(err, &cErr) {
		t.Fatalf("expected ConnectionError, got %v", err)
	}
}
