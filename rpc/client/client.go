package client

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/hmmnet/hmmnet/lib/hits"
	"github.com/hmmnet/hmmnet/lib/pipeline"
	"github.com/hmmnet/hmmnet/lib/query"
	"github.com/hmmnet/hmmnet/rpc/common"
	"github.com/hmmnet/hmmnet/rpc/transport"
	"github.com/hmmnet/hmmnet/rpc/transport/tcp"
	"github.com/hmmnet/hmmnet/rpc/wire"
)

var logger = common.CreateLogger("rpc/client")

// maxPayloadSize bounds the declared payload length before allocation, so a
// corrupt header cannot ask for an absurd buffer. Capped at MaxInt32 so the
// int conversion below stays safe on 32-bit platforms.
const maxPayloadSize = math.MaxInt32

// --------------------------------------------------------------------------
// Session state
// --------------------------------------------------------------------------

// SessionState is the lifecycle position of a client session.
type SessionState uint8

const (
	StateDisconnected SessionState = iota
	StateConnected
	StateAwaitingStatus
	StateAwaitingPayload
	StateClosed
)

// String returns the string representation of a SessionState.
func (s SessionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	case StateAwaitingStatus:
		return "awaiting status"
	case StateAwaitingPayload:
		return "awaiting payload"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Client
// --------------------------------------------------------------------------

// Client is one session with a search daemon. All methods are safe for
// concurrent use; calls that perform an exchange serialize on the session.
type Client struct {
	config    common.ClientConfig
	transport transport.IClientTransport

	// mu serializes connects and exchanges. state lives under its own
	// lock so Close never waits for an in-flight exchange to finish.
	mu sync.Mutex

	stateMu sync.Mutex
	state   SessionState
}

// New creates a session over the given transport. The session starts
// disconnected.
func New(config common.ClientConfig, t transport.IClientTransport) *Client {
	return &Client{config: config, transport: t}
}

// NewDefault creates a TCP session with the default configuration, pointed
// at the loopback daemon endpoint.
func NewDefault() *Client {
	return New(common.DefaultClientConfig(), tcp.NewTCPClientTransport())
}

// With runs fn against a freshly connected session and guarantees the
// session is closed on every exit path.
func With(config common.ClientConfig, t transport.IClientTransport, fn func(*Client) error) error {
	c := New(config, t)
	if err := c.Connect(); err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}

// State returns the current session state.
func (c *Client) State() SessionState {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.state
}

// setState moves the session to s unless it has been closed in the meantime.
func (c *Client) setState(s SessionState) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	if c.state != StateClosed {
		c.state = s
	}
}

// Connect establishes the connection. Valid only from the disconnected
// state; it fails with a *common.ConnectionError when the daemon is
// unreachable, in which case the session stays disconnected.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch s := c.State(); s {
	case StateClosed:
		return fmt.Errorf("connect: session is closed")
	case StateDisconnected:
	default:
		return fmt.Errorf("connect: session is already %s", s)
	}

	if err := c.transport.Connect(c.config); err != nil {
		return err
	}
	c.setState(StateConnected)
	if c.State() == StateClosed {
		return fmt.Errorf("connect: session is closed")
	}
	return nil
}

// Close releases the transport and moves the session to its terminal state.
// Idempotent: closing a closed session is a no-op. Closing during an
// exchange run by another goroutine forces its blocking read to fail; that
// call reports an abandoned operation, never an empty result. Close does
// not take the exchange lock: it marks the session closed and tears down
// the transport immediately, so the in-flight read fails instead of Close
// waiting for it.
func (c *Client) Close() error {
	c.stateMu.Lock()
	if c.state == StateClosed {
		c.stateMu.Unlock()
		return nil
	}
	c.state = StateClosed
	c.stateMu.Unlock()

	return c.transport.Close()
}

// --------------------------------------------------------------------------
// Search / scan entry points
// --------------------------------------------------------------------------

// SearchSequence searches a single sequence against sequence database db,
// optionally restricted to the given target index ranges. A query without
// an alphabet is treated as amino.
func (c *Client) SearchSequence(q *query.Sequence, db uint64, ranges []wire.Range, cfg pipeline.Config) (*hits.TopHits, error) {
	return c.exchange(hits.ModeSearch, wire.DirectiveSeqDB, defaultAlphabet(q), db, ranges, cfg)
}

// SearchMSA searches an alignment query against sequence database db.
func (c *Client) SearchMSA(q *query.MSA, db uint64, ranges []wire.Range, cfg pipeline.Config) (*hits.TopHits, error) {
	return c.exchange(hits.ModeSearch, wire.DirectiveSeqDB, q, db, ranges, cfg)
}

// SearchProfile searches a profile model against sequence database db.
func (c *Client) SearchProfile(q *query.Profile, db uint64, ranges []wire.Range, cfg pipeline.Config) (*hits.TopHits, error) {
	return c.exchange(hits.ModeSearch, wire.DirectiveSeqDB, q, db, ranges, cfg)
}

// ScanSequence scans a single sequence against profile database db. Scans
// do not accept target ranges.
func (c *Client) ScanSequence(q *query.Sequence, db uint64, cfg pipeline.Config) (*hits.TopHits, error) {
	return c.exchange(hits.ModeScan, wire.DirectiveHmmDB, defaultAlphabet(q), db, nil, cfg)
}

// defaultAlphabet substitutes the amino default for sequence queries that
// carry no alphabet, without touching the caller's value.
func defaultAlphabet(q *query.Sequence) *query.Sequence {
	if q == nil || q.Alpha != query.AlphabetNone {
		return q
	}
	qq := *q
	qq.Alpha = query.AlphabetAmino
	return &qq
}

// --------------------------------------------------------------------------
// Exchange
// --------------------------------------------------------------------------

// exchange performs one full request/response cycle. It owns all state
// transitions of a call and always leaves a live session back in the
// connected (idle) state, whatever the outcome.
func (c *Client) exchange(mode hits.Mode, dir wire.Directive, q query.Query, db uint64, ranges []wire.Range, cfg pipeline.Config) (*hits.TopHits, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s := c.State(); s != StateConnected {
		return nil, fmt.Errorf("%s: session is %s", mode, s)
	}

	// All validation happens before any byte is sent.
	if q == nil {
		return nil, &common.ValidationError{Field: "query", Reason: "must not be nil"}
	}
	if err := validateRanges(ranges); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, &common.ValidationError{Field: "options", Reason: err.Error()}
	}

	req, err := buildRequest(dir, db, ranges, cfg, q)
	if err != nil {
		return nil, &common.ValidationError{Field: "query", Reason: err.Error()}
	}

	searchesTotal.Inc()
	start := time.Now()

	th, err := c.roundTrip(mode, cfg, req)
	if err != nil {
		searchErrorsTotal.Inc()
		return nil, err
	}

	searchDuration.UpdateDuration(start)
	return th, nil
}

// roundTrip sends the request and decodes the response. The session state
// is restored to connected on all paths that leave the session usable.
func (c *Client) roundTrip(mode hits.Mode, cfg pipeline.Config, req []byte) (*hits.TopHits, error) {
	c.setState(StateAwaitingStatus)
	defer c.setState(StateConnected)

	if err := c.transport.SendAll(req); err != nil {
		return nil, c.abortErr(err)
	}
	bytesSentTotal.Add(len(req))

	head, err := c.transport.ReceiveExact(wire.StatusSize)
	if err != nil {
		return nil, c.abortErr(err)
	}
	status, err := wire.DecodeStatus(head)
	if err != nil {
		return nil, err
	}
	if status.MsgSize > maxPayloadSize {
		return nil, common.NewProtocolErrorf("declared payload size %d exceeds limit", status.MsgSize)
	}

	c.setState(StateAwaitingPayload)

	if status.Status != common.StatusOK {
		msg := ""
		if status.MsgSize > 0 {
			raw, err := c.transport.ReceiveExact(int(status.MsgSize))
			if err != nil {
				return nil, c.abortErr(err)
			}
			bytesReceivedTotal.Add(len(raw))
			// Best-effort decode: the message is advisory, so invalid byte
			// sequences are replaced rather than failing the call twice.
			msg = strings.ToValidUTF8(string(raw), "�")
		}
		return nil, &common.ServerError{Code: status.Status, Message: msg}
	}

	payload, err := c.transport.ReceiveExact(int(status.MsgSize))
	if err != nil {
		return nil, c.abortErr(err)
	}
	bytesReceivedTotal.Add(len(payload))

	return decodePayload(mode, cfg, payload)
}

// abortErr distinguishes an exchange torn down by a concurrent Close from
// an ordinary transport failure.
func (c *Client) abortErr(err error) error {
	if c.State() == StateClosed {
		return fmt.Errorf("exchange abandoned: session closed: %w", err)
	}
	return err
}

// decodePayload reconstructs the result collection from the statistics
// block and hit records of a success payload.
func decodePayload(mode hits.Mode, cfg pipeline.Config, payload []byte) (*hits.TopHits, error) {
	cur := wire.NewCursor(payload)

	stats, err := wire.DecodeStats(cur)
	if err != nil {
		return nil, err
	}

	th := hits.NewTopHits(mode, cfg)
	th.Elapsed = stats.Elapsed
	th.User = stats.User
	th.Sys = stats.Sys
	th.Z = stats.Z
	th.DomZ = stats.DomZ
	th.ZSetBy = stats.ZSetBy
	th.DomZSetBy = stats.DomZSetBy
	th.NModels = stats.NModels
	th.NSeqs = stats.NSeqs
	th.NPastMSV = stats.NPastMSV
	th.NPastBias = stats.NPastBias
	th.NPastVit = stats.NPastVit
	th.NPastFwd = stats.NPastFwd
	th.NReported = stats.NReported
	th.NIncluded = stats.NIncluded

	// Offsets in the table are measured from the start of the hit-records
	// region. A mismatch is a non-fatal integrity warning: the cursor has
	// actually consumed the bytes, so it wins and decoding continues.
	hitBase := cur.Pos()
	for i := uint64(0); i < stats.NHits; i++ {
		rel := uint64(cur.Pos() - hitBase)
		if stats.HitOffsets != nil && stats.HitOffsets[i] != rel {
			logger.Warn("hit offset mismatch, continuing with decoder position",
				"hit", i, "declared", stats.HitOffsets[i], "actual", rel)
		}

		h, err := wire.DecodeHit(cur)
		if err != nil {
			return nil, err
		}
		h.ComputeEvalues(stats.Z, stats.DomZ)
		th.Append(h)
	}

	if cur.Remaining() != 0 {
		return nil, common.NewProtocolErrorf("%d trailing bytes after %d hit records", cur.Remaining(), stats.NHits)
	}

	// The daemon transmits hits already ordered by sort key.
	th.MarkSortedByKey()
	return th, nil
}

// --------------------------------------------------------------------------
// Request construction
// --------------------------------------------------------------------------

// validateRanges enforces the range shape rules: nil means unrestricted, a
// provided list must be non-empty, and every range needs ordered,
// non-negative bounds.
func validateRanges(ranges []wire.Range) error {
	if ranges == nil {
		return nil
	}
	if len(ranges) == 0 {
		return &common.ValidationError{Field: "ranges", Reason: "must be non-empty when provided"}
	}
	for _, r := range ranges {
		if r.Start < 0 || r.Stop < r.Start {
			return &common.ValidationError{
				Field:  "ranges",
				Reason: fmt.Sprintf("range %s: bounds must satisfy 0 <= start <= stop", r),
			}
		}
	}
	return nil
}

// buildRequest assembles command line, query body and terminator into one
// send buffer, so the request goes out in a single transport write.
func buildRequest(dir wire.Directive, db uint64, ranges []wire.Range, cfg pipeline.Config, q query.Query) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(wire.EncodeRequestLine(dir, db, ranges, cfg.Render()))
	if _, err := q.WriteTo(&buf); err != nil {
		return nil, err
	}
	buf.Write(wire.Terminator)
	return buf.Bytes(), nil
}
