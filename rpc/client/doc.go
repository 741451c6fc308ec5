// Package client implements the session talking to a remote search daemon.
// A session owns one transport connection and performs request/response
// exchanges strictly sequentially: build the request line and query body,
// send, receive the fixed status header, receive the declared payload, and
// decode it into a hits.TopHits collection.
//
// The session is a small state machine:
//
//	Disconnected → Connected ⇄ (AwaitingStatus → AwaitingPayload) → Closed
//
// Only one request is ever in flight on a connection, so responses arrive in
// request order trivially. Applications needing concurrent queries open
// multiple sessions (see Pool); a single Client serializes its callers.
//
// Error behavior follows the protocol taxonomy in rpc/common: validation
// failures are raised before any byte is sent, server-reported failures
// leave the session connected and reusable, and transport or protocol
// failures discard the partial result of the affected call.
package client
