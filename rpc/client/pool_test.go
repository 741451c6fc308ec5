package client

import (
	"testing"

	"github.com/hmmnet/hmmnet/rpc/common"
	"github.com/hmmnet/hmmnet/rpc/transport"
)

// newTestPool creates a pool whose sessions run over spy transports
func newTestPool() *Pool {
	return NewPool(common.DefaultClientConfig(), func() transport.IClientTransport {
		return &spyTransport{}
	})
}

// TestPoolReuse tests that a released session is handed out again
func TestPoolReuse(t *testing.T) {
	p := newTestPool()
	defer p.Close()

	c1, err := p.Acquire("")
	if err != nil {
		t.Fatalf("failed to acquire: %v", err)
	}
	if c1.State() != StateConnected {
		t.Fatalf("acquired session should be connected, is %s", c1.State())
	}

	p.Release(c1)

	c2, err := p.Acquire("")
	if err != nil {
		t.Fatalf("failed to acquire: %v", err)
	}
	if c2 != c1 {
		t.Error("expected the released session to be reused")
	}
}

// TestPoolSeparatesEndpoints tests that idle lists are per endpoint
func TestPoolSeparatesEndpoints(t *testing.T) {
	p := newTestPool()
	defer p.Close()

	c1, err := p.Acquire("a:1")
	if err != nil {
		t.Fatalf("failed to acquire: %v", err)
	}
	p.Release(c1)

	c2, err := p.Acquire("b:2")
	if err != nil {
		t.Fatalf("failed to acquire: %v", err)
	}
	if c2 == c1 {
		t.Error("sessions must not cross endpoints")
	}
}

// TestPoolDropsDeadSessions tests that closed sessions are not reissued
func TestPoolDropsDeadSessions(t *testing.T) {
	p := newTestPool()
	defer p.Close()

	c1, err := p.Acquire("")
	if err != nil {
		t.Fatalf("failed to acquire: %v", err)
	}
	c1.Close()
	p.Release(c1)

	c2, err := p.Acquire("")
	if err != nil {
		t.Fatalf("failed to acquire: %v", err)
	}
	if c2 == c1 {
		t.Error("a closed session must not be reused")
	}
	if c2.State() != StateConnected {
		t.Errorf("replacement session should be connected, is %s", c2.State())
	}
}

// TestPoolClose tests that a closed pool rejects acquisition and closes
// released sessions
func TestPoolClose(t *testing.T) {
	p := newTestPool()

	c, err := p.Acquire("")
	if err != nil {
		t.Fatalf("failed to acquire: %v", err)
	}

	p.Close()

	if _, err := p.Acquire(""); err == nil {
		t.Error("expected error after pool close")
	}

	p.Release(c)
	if c.State() != StateClosed {
		t.Errorf("release into a closed pool should close the session, is %s", c.State())
	}
}
