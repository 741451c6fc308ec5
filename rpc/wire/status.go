package wire

import (
	"github.com/hmmnet/hmmnet/rpc/common"
)

// StatusSize is the fixed size of the serialized status header in bytes.
const StatusSize = 12

// SearchStatus is the fixed-size header opening every response. On success
// MsgSize is the length of the statistics+hits payload that follows; on a
// failure status it is the length of the UTF-8 error message.
type SearchStatus struct {
	Status  common.StatusCode
	MsgSize uint64
}

// DecodeStatus decodes a status header. A buffer of the wrong size or a
// status code outside the known enumeration is a ProtocolError.
func DecodeStatus(buf []byte) (SearchStatus, error) {
	c := NewCursor(buf)

	code, err := c.U32("status code")
	if err != nil {
		return SearchStatus{}, err
	}
	size, err := c.U64("message size")
	if err != nil {
		return SearchStatus{}, err
	}

	status := SearchStatus{Status: common.StatusCode(code), MsgSize: size}
	if !status.Status.Known() {
		return SearchStatus{}, common.NewProtocolErrorf("unknown status code %d", code)
	}
	return status, nil
}

// EncodeStatus serializes a status header.
func EncodeStatus(s SearchStatus) []byte {
	var b Builder
	b.PutU32(uint32(s.Status))
	b.PutU64(s.MsgSize)
	return b.Bytes()
}
