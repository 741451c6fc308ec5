package transport

import (
	"github.com/hmmnet/hmmnet/rpc/common"
)

// IClientTransport is the interface for the client transport layer. One
// transport carries exactly one logical conversation: requests and responses
// alternate strictly, there is no multiplexing.
type IClientTransport interface {
	// Connect establishes the stream connection described by the config.
	// It fails with a *common.ConnectionError if the peer is unreachable.
	Connect(config common.ClientConfig) error

	// SendAll writes the full buffer, retrying partial writes. It fails with
	// a *common.TransportError on a broken connection.
	SendAll(data []byte) error

	// ReceiveExact reads until exactly n bytes are accumulated, looping over
	// short reads. If the peer closes the connection before n bytes arrive
	// it fails with a *common.UnexpectedEOFError carrying both counts.
	ReceiveExact(n int) ([]byte, error)

	// Close releases the connection. It is idempotent.
	Close() error
}
