package unix

import (
	"net"

	"github.com/hmmnet/hmmnet/rpc/common"
	"github.com/hmmnet/hmmnet/rpc/transport"
	"github.com/hmmnet/hmmnet/rpc/transport/base"
)

// clientConnector implements the IClientConnector interface for Unix sockets
type clientConnector struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see base.IClientConnector)
// --------------------------------------------------------------------------

func (c *clientConnector) GetName() string {
	return "unix"
}

func (c *clientConnector) Connect(endpoint string) (net.Conn, error) {
	return net.Dial("unix", endpoint)
}

func (c *clientConnector) UpgradeConnection(conn net.Conn, config common.ClientConfig) error {
	unixConn, ok := conn.(*net.UnixConn)
	if !ok {
		return nil
	}

	if config.Socket.WriteBufferSize > 0 {
		if err := unixConn.SetWriteBuffer(config.Socket.WriteBufferSize); err != nil {
			return err
		}
	}
	if config.Socket.ReadBufferSize > 0 {
		if err := unixConn.SetReadBuffer(config.Socket.ReadBufferSize); err != nil {
			return err
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Client Transport Factory Method
// --------------------------------------------------------------------------

// NewUnixClientTransport creates a new Unix socket client transport, for
// daemons exposed over a local socket file instead of a TCP port.
func NewUnixClientTransport() transport.IClientTransport {
	return base.NewBaseClientTransport(&clientConnector{})
}
