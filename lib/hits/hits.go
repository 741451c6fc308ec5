package hits

import (
	"math"
)

// --------------------------------------------------------------------------
// Hit flags
// --------------------------------------------------------------------------

// Flags set on a Hit by thresholding. Mirrors the daemon's bit vocabulary.
const (
	FlagIncluded uint32 = 1 << iota
	FlagReported
	FlagNew
	FlagDropped
	FlagDuplicate
)

// --------------------------------------------------------------------------
// Alignment
// --------------------------------------------------------------------------

// Alignment is the realized residue-level pairwise alignment for one domain.
// The optional annotation lines (RfLine, MmLine, CsLine, Ntseq, PpLine) are
// empty when the server did not transmit them.
type Alignment struct {
	// Model-side coordinates and identity
	HmmFrom  uint32 `msgpack:"hmm_from"`
	HmmTo    uint32 `msgpack:"hmm_to"`
	ModelLen uint32 `msgpack:"model_len"`
	HmmName  string `msgpack:"hmm_name"`
	HmmAcc   string `msgpack:"hmm_acc,omitempty"`
	HmmDesc  string `msgpack:"hmm_desc,omitempty"`

	// Target-side coordinates and identity
	SeqFrom uint64 `msgpack:"seq_from"`
	SeqTo   uint64 `msgpack:"seq_to"`
	SeqLen  uint64 `msgpack:"seq_len"`
	SeqName string `msgpack:"seq_name"`
	SeqAcc  string `msgpack:"seq_acc,omitempty"`
	SeqDesc string `msgpack:"seq_desc,omitempty"`

	// Aligned residue strings, all of length Length
	Length  uint32 `msgpack:"length"`
	Model   string `msgpack:"model"`
	Midline string `msgpack:"midline"` // identity/consensus line
	Aseq    string `msgpack:"aseq"`

	// Optional annotation lines
	RfLine string `msgpack:"rf_line,omitempty"`
	MmLine string `msgpack:"mm_line,omitempty"`
	CsLine string `msgpack:"cs_line,omitempty"`
	Ntseq  string `msgpack:"ntseq,omitempty"`
	PpLine string `msgpack:"pp_line,omitempty"`
}

// --------------------------------------------------------------------------
// Domain
// --------------------------------------------------------------------------

// Domain is one locally-aligned region within a Hit. Coordinates are
// 1-based and inclusive on both the envelope and the alignment bounds.
type Domain struct {
	EnvFrom int64 `msgpack:"env_from"`
	EnvTo   int64 `msgpack:"env_to"`
	AliFrom int64 `msgpack:"ali_from"`
	AliTo   int64 `msgpack:"ali_to"`

	EnvScore      float32 `msgpack:"env_score"` // raw forward score of the envelope
	DomCorrection float32 `msgpack:"dom_correction"`
	DomBias       float32 `msgpack:"dom_bias"`
	OASC          float32 `msgpack:"oasc"` // optimal accuracy of the alignment
	BitScore      float32 `msgpack:"bit_score"`

	LnP     float64 `msgpack:"ln_p"`
	CEvalue float64 `msgpack:"c_evalue"` // conditional, calibrated with domZ
	IEvalue float64 `msgpack:"i_evalue"` // independent, calibrated with Z

	Reported bool `msgpack:"reported"`
	Included bool `msgpack:"included"`

	Ali Alignment `msgpack:"ali"`
}

// --------------------------------------------------------------------------
// Hit
// --------------------------------------------------------------------------

// Hit is one scored match between the query and one target. The server
// identifies targets numerically; Name carries the decimal rendering of
// SeqIdx when present and is never resolved to a database name client-side.
type Hit struct {
	SeqIdx      uint64 `msgpack:"seq_idx"`
	SubseqStart uint64 `msgpack:"subseq_start"`
	Name        string `msgpack:"name,omitempty"`
	Acc         string `msgpack:"acc,omitempty"`
	Desc        string `msgpack:"desc,omitempty"`

	SortKey  float64 `msgpack:"sort_key"`
	Score    float32 `msgpack:"score"`
	PreScore float32 `msgpack:"pre_score"` // score before the null2 correction
	SumScore float32 `msgpack:"sum_score"`

	LnP    float64 `msgpack:"ln_p"`
	PreLnP float64 `msgpack:"pre_ln_p"`
	SumLnP float64 `msgpack:"sum_ln_p"`
	Evalue float64 `msgpack:"evalue"`

	NOverlaps  uint32 `msgpack:"n_overlaps"`
	NEnvelopes uint32 `msgpack:"n_envelopes"`
	NRegions   uint32 `msgpack:"n_regions"`
	NClustered uint32 `msgpack:"n_clustered"`

	Flags      uint32 `msgpack:"flags"`
	NReported  uint32 `msgpack:"n_reported"`
	NIncluded  uint32 `msgpack:"n_included"`
	BestDomain uint32 `msgpack:"best_domain"`

	Domains []Domain `msgpack:"domains"`
}

// Bias returns the bias correction in bits, summed over domains.
func (h *Hit) Bias() float64 {
	var b float64
	for i := range h.Domains {
		b += float64(h.Domains[i].DomBias)
	}
	return b
}

// Reported reports whether the hit passed the reporting thresholds.
func (h *Hit) Reported() bool { return h.Flags&FlagReported != 0 }

// Included reports whether the hit passed the inclusion thresholds.
func (h *Hit) Included() bool { return h.Flags&FlagIncluded != 0 }

// ComputeEvalues derives the e-values of the hit and its domains from the
// stored log P-values and the effective database sizes learned from the
// server. Called once after decode, and again if Z/domZ are overridden.
func (h *Hit) ComputeEvalues(z, domZ float64) {
	h.Evalue = math.Exp(h.LnP) * z
	for i := range h.Domains {
		d := &h.Domains[i]
		d.CEvalue = math.Exp(d.LnP) * domZ
		d.IEvalue = math.Exp(d.LnP) * z
	}
}
