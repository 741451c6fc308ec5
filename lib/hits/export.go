package hits

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// zstdMagic is the frame magic of the zstd format, used to auto-detect
// compressed exports on read.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// topHitsExport is the stable on-disk shape of a TopHits collection.
type topHitsExport struct {
	Mode           uint8   `msgpack:"mode"`
	Elapsed        float64 `msgpack:"elapsed"`
	User           float64 `msgpack:"user"`
	Sys            float64 `msgpack:"sys"`
	Z              float64 `msgpack:"z"`
	DomZ           float64 `msgpack:"dom_z"`
	ZSetBy         uint8   `msgpack:"z_set_by"`
	DomZSetBy      uint8   `msgpack:"dom_z_set_by"`
	NModels        uint64  `msgpack:"n_models"`
	NSeqs          uint64  `msgpack:"n_seqs"`
	NPastMSV       uint64  `msgpack:"n_past_msv"`
	NPastBias      uint64  `msgpack:"n_past_bias"`
	NPastVit       uint64  `msgpack:"n_past_vit"`
	NPastFwd       uint64  `msgpack:"n_past_fwd"`
	NReported      uint64  `msgpack:"n_reported"`
	NIncluded      uint64  `msgpack:"n_included"`
	Hits           []*Hit  `msgpack:"hits"`
	SortedByKey    bool    `msgpack:"sorted_by_key"`
	SortedBySeqIdx bool    `msgpack:"sorted_by_seq_idx"`
}

// Write serializes the collection as msgpack, optionally wrapped in a zstd
// frame. The pipeline configuration is not exported; it is re-applied via
// Threshold after import when needed.
func (th *TopHits) Write(w io.Writer, compress bool) error {
	out := w
	var zw *zstd.Encoder
	if compress {
		var err error
		zw, err = zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("failed to create compressor: %w", err)
		}
		out = zw
	}

	exp := topHitsExport{
		Mode:           uint8(th.Mode),
		Elapsed:        th.Elapsed,
		User:           th.User,
		Sys:            th.Sys,
		Z:              th.Z,
		DomZ:           th.DomZ,
		ZSetBy:         uint8(th.ZSetBy),
		DomZSetBy:      uint8(th.DomZSetBy),
		NModels:        th.NModels,
		NSeqs:          th.NSeqs,
		NPastMSV:       th.NPastMSV,
		NPastBias:      th.NPastBias,
		NPastVit:       th.NPastVit,
		NPastFwd:       th.NPastFwd,
		NReported:      th.NReported,
		NIncluded:      th.NIncluded,
		Hits:           th.hits,
		SortedByKey:    th.sortedByKey,
		SortedBySeqIdx: th.sortedBySeqIdx,
	}

	if err := msgpack.NewEncoder(out).Encode(&exp); err != nil {
		return fmt.Errorf("failed to encode hits: %w", err)
	}
	if zw != nil {
		return zw.Close()
	}
	return nil
}

// Read deserializes a collection previously written with Write, detecting
// zstd compression from the stream header.
func Read(r io.Reader) (*TopHits, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read export header: %w", err)
	}

	var in io.Reader = br
	if bytes.Equal(head, zstdMagic) {
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create decompressor: %w", err)
		}
		defer zr.Close()
		in = zr
	}

	var exp topHitsExport
	if err := msgpack.NewDecoder(in).Decode(&exp); err != nil {
		return nil, fmt.Errorf("failed to decode hits: %w", err)
	}

	th := &TopHits{
		Mode:           Mode(exp.Mode),
		Elapsed:        exp.Elapsed,
		User:           exp.User,
		Sys:            exp.Sys,
		Z:              exp.Z,
		DomZ:           exp.DomZ,
		ZSetBy:         SetBy(exp.ZSetBy),
		DomZSetBy:      SetBy(exp.DomZSetBy),
		NModels:        exp.NModels,
		NSeqs:          exp.NSeqs,
		NPastMSV:       exp.NPastMSV,
		NPastBias:      exp.NPastBias,
		NPastVit:       exp.NPastVit,
		NPastFwd:       exp.NPastFwd,
		NReported:      exp.NReported,
		NIncluded:      exp.NIncluded,
		hits:           exp.Hits,
		sortedByKey:    exp.SortedByKey,
		sortedBySeqIdx: exp.SortedBySeqIdx,
	}
	return th, nil
}
