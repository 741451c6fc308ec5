package wire

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Request line
// --------------------------------------------------------------------------

// Directive is the mode marker opening a request line.
type Directive string

const (
	// DirectiveSeqDB targets a sequence database (search mode).
	DirectiveSeqDB Directive = "--seqdb"
	// DirectiveHmmDB targets a profile database (scan mode).
	DirectiveHmmDB Directive = "--hmmdb"
)

// Terminator is the 2-byte sentinel closing every request payload.
var Terminator = []byte("//")

// Range is an inclusive interval of target indices restricting a
// sequence-database search.
type Range struct {
	Start int64
	Stop  int64
}

// String renders the range in wire form, e.g. "10..20".
func (r Range) String() string {
	return strconv.FormatInt(r.Start, 10) + ".." + strconv.FormatInt(r.Stop, 10)
}

// FormatRanges renders ranges as the comma-joined wire list, e.g.
// "10..20,30..40".
func FormatRanges(ranges []Range) string {
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}

// ParseRanges parses the wire list form back into ranges.
func ParseRanges(s string) ([]Range, error) {
	if s == "" {
		return nil, fmt.Errorf("empty range list")
	}
	parts := strings.Split(s, ",")
	ranges := make([]Range, 0, len(parts))
	for _, part := range parts {
		lo, hi, ok := strings.Cut(part, "..")
		if !ok {
			return nil, fmt.Errorf("invalid range %q: want start..stop", part)
		}
		start, err := strconv.ParseInt(lo, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid range start %q", lo)
		}
		stop, err := strconv.ParseInt(hi, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid range stop %q", hi)
		}
		ranges = append(ranges, Range{Start: start, Stop: stop})
	}
	return ranges, nil
}

// EncodeRequestLine renders the ASCII command line of a request:
//
//	@--seqdb 3 --seqdb_ranges 10..20,30..40 -E 0.01\n
//
// The ranges clause only applies to sequence-database searches; the option
// string is appended verbatim when non-empty.
func EncodeRequestLine(dir Directive, db uint64, ranges []Range, options string) []byte {
	var sb strings.Builder
	sb.WriteByte('@')
	sb.WriteString(string(dir))
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatUint(db, 10))
	if len(ranges) > 0 {
		sb.WriteString(" --seqdb_ranges ")
		sb.WriteString(FormatRanges(ranges))
	}
	if options != "" {
		sb.WriteByte(' ')
		sb.WriteString(options)
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}
