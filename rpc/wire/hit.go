package wire

import (
	"github.com/hmmnet/hmmnet/lib/hits"
	"github.com/hmmnet/hmmnet/rpc/common"
)

// String presence bits in a hit record.
const (
	hitHasName = 1 << iota
	hitHasAcc
	hitHasDesc
)

// Optional annotation line bits in an alignment record.
const (
	aliHasRf = 1 << iota
	aliHasMm
	aliHasCs
	aliHasNtseq
	aliHasPp
)

// --------------------------------------------------------------------------
// Decode
// --------------------------------------------------------------------------

// DecodeHit decodes one hit record, including its nested domain and
// alignment sub-records, advancing the cursor by exactly the record's
// declared length. A declared length that disagrees with the bytes actually
// consumed is a structural ProtocolError (unlike the offset-table check,
// which is advisory).
func DecodeHit(c *Cursor) (*hits.Hit, error) {
	start := c.Pos()

	totalLen, err := c.U32("hit record length")
	if err != nil {
		return nil, err
	}

	h := &hits.Hit{}
	var ndom uint32

	if h.SeqIdx, err = c.U64("hit target index"); err != nil {
		return nil, err
	}
	if h.SubseqStart, err = c.U64("hit subsequence start"); err != nil {
		return nil, err
	}
	if h.SortKey, err = c.F64("hit sort key"); err != nil {
		return nil, err
	}
	if h.Score, err = c.F32("hit score"); err != nil {
		return nil, err
	}
	if h.PreScore, err = c.F32("hit pre-filter score"); err != nil {
		return nil, err
	}
	if h.SumScore, err = c.F32("hit sum score"); err != nil {
		return nil, err
	}
	if h.LnP, err = c.F64("hit lnP"); err != nil {
		return nil, err
	}
	if h.PreLnP, err = c.F64("hit pre lnP"); err != nil {
		return nil, err
	}
	if h.SumLnP, err = c.F64("hit sum lnP"); err != nil {
		return nil, err
	}
	if ndom, err = c.U32("hit domain count"); err != nil {
		return nil, err
	}
	if h.NOverlaps, err = c.U32("hit overlap count"); err != nil {
		return nil, err
	}
	if h.NEnvelopes, err = c.U32("hit envelope count"); err != nil {
		return nil, err
	}
	if h.NRegions, err = c.U32("hit region count"); err != nil {
		return nil, err
	}
	if h.NClustered, err = c.U32("hit cluster count"); err != nil {
		return nil, err
	}
	if h.Flags, err = c.U32("hit flags"); err != nil {
		return nil, err
	}
	if h.NReported, err = c.U32("hit reported count"); err != nil {
		return nil, err
	}
	if h.NIncluded, err = c.U32("hit included count"); err != nil {
		return nil, err
	}
	if h.BestDomain, err = c.U32("hit best domain"); err != nil {
		return nil, err
	}
	if ndom > 0 && h.BestDomain >= ndom {
		return nil, common.NewProtocolErrorf("best domain index %d out of range for %d domains", h.BestDomain, ndom)
	}

	presence, err := c.U8("hit string presence")
	if err != nil {
		return nil, err
	}
	if presence&hitHasName != 0 {
		if h.Name, err = c.CString("hit name"); err != nil {
			return nil, err
		}
	}
	if presence&hitHasAcc != 0 {
		if h.Acc, err = c.CString("hit accession"); err != nil {
			return nil, err
		}
	}
	if presence&hitHasDesc != 0 {
		if h.Desc, err = c.CString("hit description"); err != nil {
			return nil, err
		}
	}

	h.Domains = make([]hits.Domain, ndom)
	for i := uint32(0); i < ndom; i++ {
		if err := decodeDomain(c, &h.Domains[i]); err != nil {
			return nil, err
		}
	}

	consumed := c.Pos() - start
	if uint32(consumed) != totalLen {
		return nil, common.NewProtocolErrorf("hit record declared %d bytes but decoding consumed %d", totalLen, consumed)
	}
	return h, nil
}

func decodeDomain(c *Cursor, d *hits.Domain) error {
	var err error
	if d.EnvFrom, err = c.I64("domain envelope start"); err != nil {
		return err
	}
	if d.EnvTo, err = c.I64("domain envelope end"); err != nil {
		return err
	}
	if d.AliFrom, err = c.I64("domain alignment start"); err != nil {
		return err
	}
	if d.AliTo, err = c.I64("domain alignment end"); err != nil {
		return err
	}
	if d.EnvScore, err = c.F32("domain envelope score"); err != nil {
		return err
	}
	if d.DomCorrection, err = c.F32("domain correction"); err != nil {
		return err
	}
	if d.DomBias, err = c.F32("domain bias"); err != nil {
		return err
	}
	if d.OASC, err = c.F32("domain accuracy"); err != nil {
		return err
	}
	if d.BitScore, err = c.F32("domain bit score"); err != nil {
		return err
	}
	if d.LnP, err = c.F64("domain lnP"); err != nil {
		return err
	}

	reported, err := c.U8("domain reported flag")
	if err != nil {
		return err
	}
	included, err := c.U8("domain included flag")
	if err != nil {
		return err
	}
	d.Reported = reported != 0
	d.Included = included != 0

	return decodeAlignment(c, &d.Ali)
}

func decodeAlignment(c *Cursor, a *hits.Alignment) error {
	start := c.Pos()

	totalLen, err := c.U32("alignment record length")
	if err != nil {
		return err
	}

	if a.Length, err = c.U32("alignment length"); err != nil {
		return err
	}
	if a.HmmFrom, err = c.U32("alignment model start"); err != nil {
		return err
	}
	if a.HmmTo, err = c.U32("alignment model end"); err != nil {
		return err
	}
	if a.ModelLen, err = c.U32("alignment model length"); err != nil {
		return err
	}
	if a.SeqFrom, err = c.U64("alignment target start"); err != nil {
		return err
	}
	if a.SeqTo, err = c.U64("alignment target end"); err != nil {
		return err
	}
	if a.SeqLen, err = c.U64("alignment target length"); err != nil {
		return err
	}

	lines, err := c.U8("alignment line presence")
	if err != nil {
		return err
	}
	if lines&aliHasRf != 0 {
		if a.RfLine, err = c.CString("alignment RF line"); err != nil {
			return err
		}
	}
	if lines&aliHasMm != 0 {
		if a.MmLine, err = c.CString("alignment MM line"); err != nil {
			return err
		}
	}
	if lines&aliHasCs != 0 {
		if a.CsLine, err = c.CString("alignment CS line"); err != nil {
			return err
		}
	}
	if a.Model, err = c.CString("alignment model line"); err != nil {
		return err
	}
	if a.Midline, err = c.CString("alignment midline"); err != nil {
		return err
	}
	if a.Aseq, err = c.CString("alignment target line"); err != nil {
		return err
	}
	if lines&aliHasNtseq != 0 {
		if a.Ntseq, err = c.CString("alignment nucleotide line"); err != nil {
			return err
		}
	}
	if lines&aliHasPp != 0 {
		if a.PpLine, err = c.CString("alignment PP line"); err != nil {
			return err
		}
	}
	if a.HmmName, err = c.CString("alignment model name"); err != nil {
		return err
	}
	if a.HmmAcc, err = c.CString("alignment model accession"); err != nil {
		return err
	}
	if a.HmmDesc, err = c.CString("alignment model description"); err != nil {
		return err
	}
	if a.SeqName, err = c.CString("alignment target name"); err != nil {
		return err
	}
	if a.SeqAcc, err = c.CString("alignment target accession"); err != nil {
		return err
	}
	if a.SeqDesc, err = c.CString("alignment target description"); err != nil {
		return err
	}

	consumed := c.Pos() - start
	if uint32(consumed) != totalLen {
		return common.NewProtocolErrorf("alignment record declared %d bytes but decoding consumed %d", totalLen, consumed)
	}
	return nil
}

// --------------------------------------------------------------------------
// Encode
// --------------------------------------------------------------------------

// EncodeHit serializes one hit record, including nested domains and
// alignments, into b.
func EncodeHit(b *Builder, h *hits.Hit) {
	lenAt := b.Len()
	b.PutU32(0) // length prefix, patched below

	b.PutU64(h.SeqIdx)
	b.PutU64(h.SubseqStart)
	b.PutF64(h.SortKey)
	b.PutF32(h.Score)
	b.PutF32(h.PreScore)
	b.PutF32(h.SumScore)
	b.PutF64(h.LnP)
	b.PutF64(h.PreLnP)
	b.PutF64(h.SumLnP)
	b.PutU32(uint32(len(h.Domains)))
	b.PutU32(h.NOverlaps)
	b.PutU32(h.NEnvelopes)
	b.PutU32(h.NRegions)
	b.PutU32(h.NClustered)
	b.PutU32(h.Flags)
	b.PutU32(h.NReported)
	b.PutU32(h.NIncluded)
	b.PutU32(h.BestDomain)

	var presence uint8
	if h.Name != "" {
		presence |= hitHasName
	}
	if h.Acc != "" {
		presence |= hitHasAcc
	}
	if h.Desc != "" {
		presence |= hitHasDesc
	}
	b.PutU8(presence)
	if h.Name != "" {
		b.PutCString(h.Name)
	}
	if h.Acc != "" {
		b.PutCString(h.Acc)
	}
	if h.Desc != "" {
		b.PutCString(h.Desc)
	}

	for i := range h.Domains {
		encodeDomain(b, &h.Domains[i])
	}

	b.PatchU32(lenAt, uint32(b.Len()-lenAt))
}

func encodeDomain(b *Builder, d *hits.Domain) {
	b.PutI64(d.EnvFrom)
	b.PutI64(d.EnvTo)
	b.PutI64(d.AliFrom)
	b.PutI64(d.AliTo)
	b.PutF32(d.EnvScore)
	b.PutF32(d.DomCorrection)
	b.PutF32(d.DomBias)
	b.PutF32(d.OASC)
	b.PutF32(d.BitScore)
	b.PutF64(d.LnP)
	b.PutU8(boolByte(d.Reported))
	b.PutU8(boolByte(d.Included))
	encodeAlignment(b, &d.Ali)
}

func encodeAlignment(b *Builder, a *hits.Alignment) {
	lenAt := b.Len()
	b.PutU32(0) // length prefix, patched below

	b.PutU32(a.Length)
	b.PutU32(a.HmmFrom)
	b.PutU32(a.HmmTo)
	b.PutU32(a.ModelLen)
	b.PutU64(a.SeqFrom)
	b.PutU64(a.SeqTo)
	b.PutU64(a.SeqLen)

	var lines uint8
	if a.RfLine != "" {
		lines |= aliHasRf
	}
	if a.MmLine != "" {
		lines |= aliHasMm
	}
	if a.CsLine != "" {
		lines |= aliHasCs
	}
	if a.Ntseq != "" {
		lines |= aliHasNtseq
	}
	if a.PpLine != "" {
		lines |= aliHasPp
	}
	b.PutU8(lines)

	if a.RfLine != "" {
		b.PutCString(a.RfLine)
	}
	if a.MmLine != "" {
		b.PutCString(a.MmLine)
	}
	if a.CsLine != "" {
		b.PutCString(a.CsLine)
	}
	b.PutCString(a.Model)
	b.PutCString(a.Midline)
	b.PutCString(a.Aseq)
	if a.Ntseq != "" {
		b.PutCString(a.Ntseq)
	}
	if a.PpLine != "" {
		b.PutCString(a.PpLine)
	}
	b.PutCString(a.HmmName)
	b.PutCString(a.HmmAcc)
	b.PutCString(a.HmmDesc)
	b.PutCString(a.SeqName)
	b.PutCString(a.SeqAcc)
	b.PutCString(a.SeqDesc)

	b.PatchU32(lenAt, uint32(b.Len()-lenAt))
}

func boolByte(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}
