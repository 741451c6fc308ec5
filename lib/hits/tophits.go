package hits

import (
	"sort"

	"github.com/hmmnet/hmmnet/lib/pipeline"
)

// --------------------------------------------------------------------------
// Search mode and provenance enums
// --------------------------------------------------------------------------

// Mode distinguishes searches (query against a sequence database) from
// scans (query against a profile database).
type Mode uint8

const (
	ModeSearch Mode = iota
	ModeScan
)

// String returns the string representation of a Mode.
func (m Mode) String() string {
	if m == ModeScan {
		return "scan"
	}
	return "search"
}

// SetBy records how an effective database size was determined.
type SetBy uint8

const (
	SetByNTargets SetBy = iota // derived from the number of targets searched
	SetByOption                // forced by a Z/domZ override in the options
	SetByFileInfo              // taken from database file metadata
)

// String returns the string representation of a SetBy value.
func (s SetBy) String() string {
	switch s {
	case SetByOption:
		return "option"
	case SetByFileInfo:
		return "file info"
	default:
		return "number of targets"
	}
}

// --------------------------------------------------------------------------
// TopHits
// --------------------------------------------------------------------------

// TopHits owns the hits of one search exchange, together with a copy of the
// pipeline configuration that produced them and the aggregate statistics
// learned from the server.
type TopHits struct {
	Mode   Mode
	Config pipeline.Config

	// Search timing reported by the server, in seconds.
	Elapsed float64
	User    float64
	Sys     float64

	// Effective database sizes and their provenance.
	Z         float64
	DomZ      float64
	ZSetBy    SetBy
	DomZSetBy SetBy

	// Aggregate counts: targets searched and survivors of each filter stage.
	NModels   uint64
	NSeqs     uint64
	NPastMSV  uint64
	NPastBias uint64
	NPastVit  uint64
	NPastFwd  uint64

	// Hit bookkeeping.
	NReported uint64
	NIncluded uint64

	hits           []*Hit
	sortedByKey    bool
	sortedBySeqIdx bool
}

// NewTopHits creates an empty, unsorted collection for the given mode,
// carrying a copy of the pipeline configuration.
func NewTopHits(mode Mode, cfg pipeline.Config) *TopHits {
	return &TopHits{Mode: mode, Config: cfg}
}

// Len returns the number of hits in the collection.
func (th *TopHits) Len() int { return len(th.hits) }

// At returns the hit at index i in the current order.
func (th *TopHits) At(i int) *Hit { return th.hits[i] }

// Hits returns the hits in their current order. The returned slice is owned
// by the collection and must not be modified.
func (th *TopHits) Hits() []*Hit { return th.hits }

// Append adds a hit to the collection, invalidating any cached sort order.
func (th *TopHits) Append(h *Hit) {
	th.hits = append(th.hits, h)
	th.sortedByKey = false
	th.sortedBySeqIdx = false
}

// MarkSortedByKey asserts that the current hit order is sorted by key, as
// established by the producer (the daemon transmits hits key-sorted).
func (th *TopHits) MarkSortedByKey() {
	th.sortedByKey = true
	th.sortedBySeqIdx = false
}

// --------------------------------------------------------------------------
// Sorting
// --------------------------------------------------------------------------

// keyLess is the composite sort key order: descending server sort key,
// ties broken by ascending target index so the order is total.
func keyLess(a, b *Hit) bool {
	if a.SortKey != b.SortKey {
		return a.SortKey > b.SortKey
	}
	return a.SeqIdx < b.SeqIdx
}

// SortByKey sorts the hits by the composite score/e-value key. Stable; a
// no-op when the collection is already key-sorted.
func (th *TopHits) SortByKey() {
	if th.sortedByKey {
		return
	}
	sort.SliceStable(th.hits, func(i, j int) bool { return keyLess(th.hits[i], th.hits[j]) })
	th.sortedByKey = true
	th.sortedBySeqIdx = false
}

// SortBySeqIdx sorts the hits by their original target index. Stable; a
// no-op when already in target order.
func (th *TopHits) SortBySeqIdx() {
	if th.sortedBySeqIdx {
		return
	}
	sort.SliceStable(th.hits, func(i, j int) bool { return th.hits[i].SeqIdx < th.hits[j].SeqIdx })
	th.sortedBySeqIdx = true
	th.sortedByKey = false
}

// IsSortedByKey reports the cached key-order flag. O(1), never re-scans.
func (th *TopHits) IsSortedByKey() bool { return th.sortedByKey }

// IsSortedBySeqIdx reports the cached target-order flag. O(1).
func (th *TopHits) IsSortedBySeqIdx() bool { return th.sortedBySeqIdx }

// --------------------------------------------------------------------------
// Merge / Threshold / Clear
// --------------------------------------------------------------------------

// Merge concatenates the hits of other into the receiver; other is cleared.
// Target-index order never survives a merge. Key order survives only when
// both operands were key-sorted, in which case the hit lists are interleaved
// to preserve it.
func (th *TopHits) Merge(other *TopHits) {
	if other == nil || other.Len() == 0 {
		return
	}

	if th.sortedByKey && other.sortedByKey {
		merged := make([]*Hit, 0, len(th.hits)+len(other.hits))
		i, j := 0, 0
		for i < len(th.hits) && j < len(other.hits) {
			if keyLess(other.hits[j], th.hits[i]) {
				merged = append(merged, other.hits[j])
				j++
			} else {
				merged = append(merged, th.hits[i])
				i++
			}
		}
		merged = append(merged, th.hits[i:]...)
		merged = append(merged, other.hits[j:]...)
		th.hits = merged
	} else {
		th.hits = append(th.hits, other.hits...)
		th.sortedByKey = false
	}
	th.sortedBySeqIdx = false

	th.NReported += other.NReported
	th.NIncluded += other.NIncluded

	other.Clear()
}

// Threshold re-applies the reporting and inclusion thresholds of cfg to
// every hit and domain, updating flags and counts in place. Nothing is
// removed: this is a marking pass, and Reported()/Included() expose the
// filtered views.
func (th *TopHits) Threshold(cfg pipeline.Config) {
	th.Config = cfg
	th.NReported = 0
	th.NIncluded = 0

	for _, h := range th.hits {
		reported := passes(float64(h.Score), h.Evalue, cfg.T, cfg.E)
		included := passes(float64(h.Score), h.Evalue, cfg.IncT, cfg.IncE)
		included = included && reported

		h.Flags &^= FlagReported | FlagIncluded
		if reported {
			h.Flags |= FlagReported
			th.NReported++
		}
		if included {
			h.Flags |= FlagIncluded
			th.NIncluded++
		}

		h.NReported = 0
		h.NIncluded = 0
		for i := range h.Domains {
			d := &h.Domains[i]
			d.Reported = reported && passes(float64(d.BitScore), d.CEvalue, cfg.DomT, cfg.DomE)
			d.Included = included && d.Reported && passes(float64(d.BitScore), d.CEvalue, cfg.IncDomT, cfg.IncDomE)
			if d.Reported {
				h.NReported++
			}
			if d.Included {
				h.NIncluded++
			}
		}
	}
}

// passes applies one threshold pair: the bit score cutoff when set,
// otherwise the e-value cutoff.
func passes(score, evalue float64, t *float64, e float64) bool {
	if t != nil {
		return score >= *t
	}
	return evalue <= e
}

// Reported returns the hits that passed the reporting thresholds, in the
// current order.
func (th *TopHits) Reported() []*Hit {
	out := make([]*Hit, 0, th.NReported)
	for _, h := range th.hits {
		if h.Reported() {
			out = append(out, h)
		}
	}
	return out
}

// Included returns the hits that passed the inclusion thresholds, in the
// current order.
func (th *TopHits) Included() []*Hit {
	out := make([]*Hit, 0, th.NIncluded)
	for _, h := range th.hits {
		if h.Included() {
			out = append(out, h)
		}
	}
	return out
}

// Clear empties the collection, releasing all owned hits, and resets the
// counts and sort flags.
func (th *TopHits) Clear() {
	th.hits = nil
	th.sortedByKey = false
	th.sortedBySeqIdx = false
	th.NReported = 0
	th.NIncluded = 0
}
