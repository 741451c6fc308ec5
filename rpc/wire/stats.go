package wire

import (
	"github.com/hmmnet/hmmnet/lib/hits"
	"github.com/hmmnet/hmmnet/rpc/common"
)

// OffsetsNone is the sentinel transmitted in place of the offset table when
// the server did not record per-hit offsets.
const OffsetsNone = ^uint64(0)

// SearchStats is the aggregate statistics block of a successful response.
type SearchStats struct {
	Elapsed float64
	User    float64
	Sys     float64

	Z         float64
	DomZ      float64
	ZSetBy    hits.SetBy
	DomZSetBy hits.SetBy

	NModels   uint64
	NSeqs     uint64
	NPastMSV  uint64
	NPastBias uint64
	NPastVit  uint64
	NPastFwd  uint64

	NHits     uint64
	NReported uint64
	NIncluded uint64

	// HitOffsets holds the declared byte offset of each hit record, measured
	// from the start of the hit-records region. nil when the server sent the
	// OffsetsNone sentinel. Used only for integrity cross-checking; the
	// decode cursor remains authoritative.
	HitOffsets []uint64
}

// DecodeStats decodes the statistics block at the cursor.
func DecodeStats(c *Cursor) (SearchStats, error) {
	var s SearchStats
	var err error

	read64 := func(dst *float64, label string) {
		if err == nil {
			*dst, err = c.F64(label)
		}
	}
	readU64 := func(dst *uint64, label string) {
		if err == nil {
			*dst, err = c.U64(label)
		}
	}

	read64(&s.Elapsed, "elapsed time")
	read64(&s.User, "user time")
	read64(&s.Sys, "system time")
	read64(&s.Z, "Z")
	read64(&s.DomZ, "domZ")

	if err == nil {
		var v uint8
		if v, err = c.U8("Z provenance"); err == nil {
			s.ZSetBy = hits.SetBy(v)
		}
	}
	if err == nil {
		var v uint8
		if v, err = c.U8("domZ provenance"); err == nil {
			s.DomZSetBy = hits.SetBy(v)
		}
	}

	readU64(&s.NModels, "model count")
	readU64(&s.NSeqs, "sequence count")
	readU64(&s.NPastMSV, "MSV filter survivors")
	readU64(&s.NPastBias, "bias filter survivors")
	readU64(&s.NPastVit, "Viterbi filter survivors")
	readU64(&s.NPastFwd, "Forward filter survivors")
	readU64(&s.NHits, "hit count")
	readU64(&s.NReported, "reported count")
	readU64(&s.NIncluded, "included count")
	if err != nil {
		return SearchStats{}, err
	}

	if s.ZSetBy > hits.SetByFileInfo {
		return SearchStats{}, common.NewProtocolErrorf("invalid Z provenance %d", s.ZSetBy)
	}
	if s.DomZSetBy > hits.SetByFileInfo {
		return SearchStats{}, common.NewProtocolErrorf("invalid domZ provenance %d", s.DomZSetBy)
	}

	// Offset table: one sentinel word, or NHits offsets.
	first, err := c.U64("hit offset table")
	if err != nil {
		return SearchStats{}, err
	}
	if first != OffsetsNone {
		if s.NHits == 0 {
			return SearchStats{}, common.NewProtocolErrorf("offset table present but hit count is zero")
		}
		s.HitOffsets = make([]uint64, s.NHits)
		s.HitOffsets[0] = first
		for i := uint64(1); i < s.NHits; i++ {
			if s.HitOffsets[i], err = c.U64("hit offset table"); err != nil {
				return SearchStats{}, err
			}
		}
	}

	return s, nil
}

// EncodeStats serializes the statistics block into b. HitOffsets must be
// nil or exactly NHits long.
func EncodeStats(b *Builder, s SearchStats) error {
	if s.HitOffsets != nil && uint64(len(s.HitOffsets)) != s.NHits {
		return common.NewProtocolErrorf("offset table length %d does not match hit count %d", len(s.HitOffsets), s.NHits)
	}

	b.PutF64(s.Elapsed)
	b.PutF64(s.User)
	b.PutF64(s.Sys)
	b.PutF64(s.Z)
	b.PutF64(s.DomZ)
	b.PutU8(uint8(s.ZSetBy))
	b.PutU8(uint8(s.DomZSetBy))
	b.PutU64(s.NModels)
	b.PutU64(s.NSeqs)
	b.PutU64(s.NPastMSV)
	b.PutU64(s.NPastBias)
	b.PutU64(s.NPastVit)
	b.PutU64(s.NPastFwd)
	b.PutU64(s.NHits)
	b.PutU64(s.NReported)
	b.PutU64(s.NIncluded)

	if s.HitOffsets == nil {
		b.PutU64(OffsetsNone)
	} else {
		for _, off := range s.HitOffsets {
			b.PutU64(off)
		}
	}
	return nil
}
