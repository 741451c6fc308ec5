package client

import (
	"errors"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/hmmnet/hmmnet/rpc/common"
	"github.com/hmmnet/hmmnet/rpc/transport"
)

// Pool hands out connected sessions for applications that run concurrent
// queries. The protocol does not multiplex, so concurrency means one
// connection per in-flight query; the pool keeps finished sessions around
// for reuse instead of reconnecting every time.
type Pool struct {
	base         common.ClientConfig
	newTransport func() transport.IClientTransport

	pools  *xsync.MapOf[string, *endpointPool]
	mu     sync.Mutex
	closed bool
}

// endpointPool is the idle list for one endpoint.
type endpointPool struct {
	mu   sync.Mutex
	idle []*Client
}

// NewPool creates a pool using base as the template configuration and
// newTransport to build one transport per session.
func NewPool(base common.ClientConfig, newTransport func() transport.IClientTransport) *Pool {
	return &Pool{
		base:         base,
		newTransport: newTransport,
		pools:        xsync.NewMapOf[string, *endpointPool](),
	}
}

// Acquire returns a connected session for the endpoint, reusing an idle one
// when available. An empty endpoint means the pool's base endpoint. The
// caller must hand the session back via Release (or Close it).
func (p *Pool) Acquire(endpoint string) (*Client, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, errPoolClosed
	}
	p.mu.Unlock()

	if endpoint == "" {
		endpoint = p.base.Endpoint
	}
	ep, _ := p.pools.LoadOrCompute(endpoint, func() *endpointPool {
		return &endpointPool{}
	})

	ep.mu.Lock()
	for len(ep.idle) > 0 {
		c := ep.idle[len(ep.idle)-1]
		ep.idle = ep.idle[:len(ep.idle)-1]
		if c.State() == StateConnected {
			ep.mu.Unlock()
			return c, nil
		}
		c.Close()
	}
	ep.mu.Unlock()

	config := p.base
	config.Endpoint = endpoint
	c := New(config, p.newTransport())
	if err := c.Connect(); err != nil {
		return nil, err
	}
	return c, nil
}

// Release returns a session to the pool. Sessions that are no longer
// connected are closed and dropped instead.
func (p *Pool) Release(c *Client) {
	if c == nil {
		return
	}
	if c.State() != StateConnected {
		c.Close()
		return
	}

	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		c.Close()
		return
	}

	ep, _ := p.pools.LoadOrCompute(c.config.Endpoint, func() *endpointPool {
		return &endpointPool{}
	})
	ep.mu.Lock()
	ep.idle = append(ep.idle, c)
	ep.mu.Unlock()
}

// Close closes every idle session and rejects further acquisitions.
// Sessions currently in use are closed by their holders via Release.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.pools.Range(func(_ string, ep *endpointPool) bool {
		ep.mu.Lock()
		for _, c := range ep.idle {
			c.Close()
		}
		ep.idle = nil
		ep.mu.Unlock()
		return true
	})
}

var errPoolClosed = errors.New("pool is closed")
