package wire

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/hmmnet/hmmnet/rpc/common"
)

// --------------------------------------------------------------------------
// Cursor (decode side)
// --------------------------------------------------------------------------

// Cursor is an advancing read position over a received buffer. Every read
// checks the remaining length and fails with a ProtocolError naming the
// field, so a truncated payload is reported precisely. The cursor is
// authoritative for consumption: record offsets declared elsewhere are
// cross-checked against it, never the other way around.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor creates a cursor at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current offset from the start of the buffer.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// take advances the cursor by n bytes, checking bounds.
func (c *Cursor) take(n int, label string) ([]byte, error) {
	if c.Remaining() < n {
		return nil, common.NewProtocolErrorf("buffer too short for %s: need %d bytes, have %d", label, n, c.Remaining())
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// U8 reads one byte.
func (c *Cursor) U8(label string) (uint8, error) {
	b, err := c.take(1, label)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U32 reads a big-endian uint32.
func (c *Cursor) U32(label string) (uint32, error) {
	b, err := c.take(4, label)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// U64 reads a big-endian uint64.
func (c *Cursor) U64(label string) (uint64, error) {
	b, err := c.take(8, label)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// I64 reads a big-endian two's-complement int64.
func (c *Cursor) I64(label string) (int64, error) {
	v, err := c.U64(label)
	return int64(v), err
}

// F32 reads a big-endian IEEE 754 float32.
func (c *Cursor) F32(label string) (float32, error) {
	v, err := c.U32(label)
	return math.Float32frombits(v), err
}

// F64 reads a big-endian IEEE 754 float64.
func (c *Cursor) F64(label string) (float64, error) {
	v, err := c.U64(label)
	return math.Float64frombits(v), err
}

// CString reads a NUL-terminated string and consumes the terminator.
func (c *Cursor) CString(label string) (string, error) {
	i := bytes.IndexByte(c.buf[c.pos:], 0)
	if i < 0 {
		return "", common.NewProtocolErrorf("unterminated string for %s", label)
	}
	s := string(c.buf[c.pos : c.pos+i])
	c.pos += i + 1
	return s, nil
}

// --------------------------------------------------------------------------
// Builder (encode side)
// --------------------------------------------------------------------------

// Builder is the append-only counterpart of Cursor, producing buffers the
// cursor can decode.
type Builder struct {
	buf []byte
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int { return len(b.buf) }

// Bytes returns the accumulated buffer.
func (b *Builder) Bytes() []byte { return b.buf }

// PutU8 appends one byte.
func (b *Builder) PutU8(v uint8) { b.buf = append(b.buf, v) }

// PutU32 appends a big-endian uint32.
func (b *Builder) PutU32(v uint32) {
	b.buf = binary.BigEndian.AppendUint32(b.buf, v)
}

// PutU64 appends a big-endian uint64.
func (b *Builder) PutU64(v uint64) {
	b.buf = binary.BigEndian.AppendUint64(b.buf, v)
}

// PutI64 appends a big-endian two's-complement int64.
func (b *Builder) PutI64(v int64) { b.PutU64(uint64(v)) }

// PutF32 appends a big-endian IEEE 754 float32.
func (b *Builder) PutF32(v float32) { b.PutU32(math.Float32bits(v)) }

// PutF64 appends a big-endian IEEE 754 float64.
func (b *Builder) PutF64(v float64) { b.PutU64(math.Float64bits(v)) }

// PutCString appends s followed by a NUL terminator.
func (b *Builder) PutCString(s string) {
	b.buf = append(b.buf, s...)
	b.buf = append(b.buf, 0)
}

// PatchU32 overwrites a previously written uint32 at offset at, used to fix
// up length prefixes once a record is complete.
func (b *Builder) PatchU32(at int, v uint32) {
	binary.BigEndian.PutUint32(b.buf[at:at+4], v)
}
