package tcp

import (
	"net"
	"time"

	"github.com/hmmnet/hmmnet/rpc/common"
	"github.com/hmmnet/hmmnet/rpc/transport"
	"github.com/hmmnet/hmmnet/rpc/transport/base"
)

// clientConnector implements the IClientConnector interface for TCP sockets
type clientConnector struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see base.IClientConnector)
// --------------------------------------------------------------------------

func (c *clientConnector) GetName() string {
	return "tcp"
}

func (c *clientConnector) Connect(endpoint string) (net.Conn, error) {
	return net.Dial("tcp", endpoint)
}

func (c *clientConnector) UpgradeConnection(conn net.Conn, config common.ClientConfig) error {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return nil
	}

	if err := tcpConn.SetNoDelay(config.TCP.TCPNoDelay); err != nil {
		return err
	}
	if config.TCP.TCPKeepAliveSec > 0 {
		if err := tcpConn.SetKeepAlive(true); err != nil {
			return err
		}
		if err := tcpConn.SetKeepAlivePeriod(time.Duration(config.TCP.TCPKeepAliveSec) * time.Second); err != nil {
			return err
		}
	}
	if config.TCP.TCPLingerSec > 0 {
		if err := tcpConn.SetLinger(config.TCP.TCPLingerSec); err != nil {
			return err
		}
	}
	if config.Socket.WriteBufferSize > 0 {
		if err := tcpConn.SetWriteBuffer(config.Socket.WriteBufferSize); err != nil {
			return err
		}
	}
	if config.Socket.ReadBufferSize > 0 {
		if err := tcpConn.SetReadBuffer(config.Socket.ReadBufferSize); err != nil {
			return err
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Client Transport Factory Method
// --------------------------------------------------------------------------

// NewTCPClientTransport creates a new TCP client transport
func NewTCPClientTransport() transport.IClientTransport {
	return base.NewBaseClientTransport(&clientConnector{})
}
