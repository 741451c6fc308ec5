// Package query defines the query objects a client can submit to the search
// daemon: a single sequence, a multiple alignment, or a profile model. Each
// knows how to serialize itself into the body of a request (FASTA, Stockholm
// and the profile text format respectively); the protocol layer treats that
// serialization as opaque bytes.
package query
