package wire

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hmmnet/hmmnet/lib/hits"
	"github.com/hmmnet/hmmnet/rpc/common"
)

// TestEncodeRequestLine tests the ASCII command line for both directives
func TestEncodeRequestLine(t *testing.T) {
	testCases := []struct {
		name    string
		dir     Directive
		db      uint64
		ranges  []Range
		options string
		want    string
	}{
		{
			name: "Sequence database without options",
			dir:  DirectiveSeqDB,
			db:   1,
			want: "@--seqdb 1\n",
		},
		{
			name:   "Sequence database with ranges",
			dir:    DirectiveSeqDB,
			db:     3,
			ranges: []Range{{Start: 10, Stop: 20}, {Start: 30, Stop: 40}},
			want:   "@--seqdb 3 --seqdb_ranges 10..20,30..40\n",
		},
		{
			name:    "Sequence database with options",
			dir:     DirectiveSeqDB,
			db:      2,
			options: "-E 0.001 --nobias",
			want:    "@--seqdb 2 -E 0.001 --nobias\n",
		},
		{
			name:    "Profile database with options",
			dir:     DirectiveHmmDB,
			db:      1,
			options: "--incE 0.1",
			want:    "@--hmmdb 1 --incE 0.1\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := string(EncodeRequestLine(tc.dir, tc.db, tc.ranges, tc.options))
			if got != tc.want {
				t.Errorf("request line mismatch:\nwant %q\ngot  %q", tc.want, got)
			}
		})
	}
}

// TestRangesRoundTrip tests that range lists survive format and parse
func TestRangesRoundTrip(t *testing.T) {
	ranges := []Range{{Start: 0, Stop: 99}, {Start: 1000, Stop: 1000}}

	s := FormatRanges(ranges)
	if s != "0..99,1000..1000" {
		t.Fatalf("unexpected wire form: %q", s)
	}

	parsed, err := ParseRanges(s)
	if err != nil {
		t.Fatalf("failed to parse ranges: %v", err)
	}
	if !reflect.DeepEqual(ranges, parsed) {
		t.Errorf("ranges don't match after round trip:\nOriginal: %+v\nResult: %+v", ranges, parsed)
	}

	for _, invalid := range []string{"", "10", "10..x", "a..20"} {
		if _, err := ParseRanges(invalid); err == nil {
			t.Errorf("expected error for %q but got none", invalid)
		}
	}
}

// TestStatusRoundTrip tests the fixed-size status header
func TestStatusRoundTrip(t *testing.T) {
	original := SearchStatus{Status: common.StatusOK, MsgSize: 4711}

	buf := EncodeStatus(original)
	if len(buf) != StatusSize {
		t.Fatalf("status header has %d bytes, want %d", len(buf), StatusSize)
	}

	result, err := DecodeStatus(buf)
	if err != nil {
		t.Fatalf("failed to decode status: %v", err)
	}
	if result != original {
		t.Errorf("status doesn't match after round trip:\nOriginal: %+v\nResult: %+v", original, result)
	}
}

// TestStatusErrors tests truncated headers and unknown codes
func TestStatusErrors(t *testing.T) {
	t.Run("Truncated header", func(t *testing.T) {
		if _, err := DecodeStatus(make([]byte, StatusSize-1)); err == nil {
			t.Error("expected error but got none")
		}
	})

	t.Run("Unknown status code", func(t *testing.T) {
		buf := EncodeStatus(SearchStatus{Status: common.StatusCode(99)})
		_, err := DecodeStatus(buf)
		var pErr *common.ProtocolError
		if !errors.As(err, &pErr) {
			t.Errorf("expected ProtocolError, got %v", err)
		}
	})
}

// testStats creates a statistics block with all fields filled
func testStats() SearchStats {
	return SearchStats{
		Elapsed:   1.5,
		User:      1.25,
		Sys:       0.25,
		Z:         45000,
		DomZ:      12,
		ZSetBy:    hits.SetByNTargets,
		DomZSetBy: hits.SetByOption,
		NModels:   1,
		NSeqs:     45000,
		NPastMSV:  1200,
		NPastBias: 900,
		NPastVit:  300,
		NPastFwd:  50,
		NHits:     3,
		NReported: 2,
		NIncluded: 1,
	}
}

// TestStatsRoundTrip tests the statistics block with and without the offset table
func TestStatsRoundTrip(t *testing.T) {
	t.Run("With offset table", func(t *testing.T) {
		original := testStats()
		original.HitOffsets = []uint64{0, 120, 360}

		var b Builder
		if err := EncodeStats(&b, original); err != nil {
			t.Fatalf("failed to encode stats: %v", err)
		}

		result, err := DecodeStats(NewCursor(b.Bytes()))
		if err != nil {
			t.Fatalf("failed to decode stats: %v", err)
		}
		if !reflect.DeepEqual(original, result) {
			t.Errorf("stats don't match after round trip:\nOriginal: %+v\nResult: %+v", original, result)
		}
	})

	t.Run("Without offset table", func(t *testing.T) {
		original := testStats()

		var b Builder
		if err := EncodeStats(&b, original); err != nil {
			t.Fatalf("failed to encode stats: %v", err)
		}

		result, err := DecodeStats(NewCursor(b.Bytes()))
		if err != nil {
			t.Fatalf("failed to decode stats: %v", err)
		}
		if result.HitOffsets != nil {
			t.Errorf("expected nil offsets for the sentinel, got %v", result.HitOffsets)
		}
		if !reflect.DeepEqual(original, result) {
			t.Errorf("stats don't match after round trip:\nOriginal: %+v\nResult: %+v", original, result)
		}
	})
}

// TestStatsErrors tests invalid statistics blocks
func TestStatsErrors(t *testing.T) {
	t.Run("Truncated block", func(t *testing.T) {
		var b Builder
		if err := EncodeStats(&b, testStats()); err != nil {
			t.Fatalf("failed to encode stats: %v", err)
		}
		buf := b.Bytes()

		if _, err := DecodeStats(NewCursor(buf[:len(buf)-1])); err == nil {
			t.Error("expected error but got none")
		}
	})

	t.Run("Invalid provenance", func(t *testing.T) {
		s := testStats()
		s.ZSetBy = hits.SetBy(7)

		var b Builder
		if err := EncodeStats(&b, s); err != nil {
			t.Fatalf("failed to encode stats: %v", err)
		}
		if _, err := DecodeStats(NewCursor(b.Bytes())); err == nil {
			t.Error("expected error but got none")
		}
	})

	t.Run("Offset table length mismatch", func(t *testing.T) {
		s := testStats()
		s.HitOffsets = []uint64{0}

		var b Builder
		if err := EncodeStats(&b, s); err == nil {
			t.Error("expected error but got none")
		}
	})
}

// testHit creates a hit with one fully populated domain
func testHit() *hits.Hit {
	return &hits.Hit{
		SeqIdx:      7,
		SubseqStart: 0,
		Name:        "7",
		Acc:         "P12345",
		Desc:        "test target",
		SortKey:     42.5,
		Score:       42.5,
		PreScore:    44.0,
		SumScore:    42.5,
		LnP:         -80.2,
		PreLnP:      -82.0,
		SumLnP:      -80.2,
		Flags:       hits.FlagReported | hits.FlagIncluded,
		NRegions:    1,
		NEnvelopes:  1,
		NReported:   1,
		NIncluded:   1,
		BestDomain:  0,
		Domains: []hits.Domain{
			{
				EnvFrom:  3,
				EnvTo:    112,
				AliFrom:  5,
				AliTo:    110,
				EnvScore: 41.0,
				DomBias:  0.2,
				OASC:     0.97,
				BitScore: 42.5,
				LnP:      -80.2,
				Reported: true,
				Included: true,
				Ali: hits.Alignment{
					Length:   106,
					HmmFrom:  2,
					HmmTo:    107,
					ModelLen: 110,
					SeqFrom:  5,
					SeqTo:    110,
					SeqLen:   120,
					Model:    "mkviLlvdd",
					Midline:  "mk+iL+ dd",
					Aseq:     "MKIILIADD",
					PpLine:   "899******",
					HmmName:  "TEST",
					SeqName:  "7",
				},
			},
		},
	}
}

// TestHitRoundTrip tests that hit records survive encode and decode
func TestHitRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		hit  *hits.Hit
	}{
		{
			name: "Full hit",
			hit:  testHit(),
		},
		{
			name: "Hit without strings or domains",
			hit:  &hits.Hit{SeqIdx: 1, SortKey: 3.5, Score: 3.5, LnP: -2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var b Builder
			EncodeHit(&b, tc.hit)

			c := NewCursor(b.Bytes())
			result, err := DecodeHit(c)
			if err != nil {
				t.Fatalf("failed to decode hit: %v", err)
			}
			if c.Remaining() != 0 {
				t.Errorf("decode left %d bytes unread", c.Remaining())
			}
			if len(result.Domains) == 0 {
				result.Domains = nil // decode allocates an empty slice for ndom=0
			}
			if !reflect.DeepEqual(tc.hit, result) {
				t.Errorf("hit doesn't match after round trip:\nOriginal: %+v\nResult: %+v", tc.hit, result)
			}
		})
	}
}

// TestHitErrors tests structurally invalid hit records
func TestHitErrors(t *testing.T) {
	encode := func() []byte {
		var b Builder
		EncodeHit(&b, testHit())
		return b.Bytes()
	}

	t.Run("Truncated record", func(t *testing.T) {
		buf := encode()
		if _, err := DecodeHit(NewCursor(buf[:len(buf)/2])); err == nil {
			t.Error("expected error but got none")
		}
	})

	t.Run("Length prefix mismatch", func(t *testing.T) {
		buf := encode()
		buf[3] += 2 // corrupt the declared record length
		_, err := DecodeHit(NewCursor(buf))
		var pErr *common.ProtocolError
		if !errors.As(err, &pErr) {
			t.Errorf("expected ProtocolError, got %v", err)
		}
	})

	t.Run("Best domain out of range", func(t *testing.T) {
		h := testHit()
		h.BestDomain = 5
		var b Builder
		EncodeHit(&b, h)
		if _, err := DecodeHit(NewCursor(b.Bytes())); err == nil {
			t.Error("expected error but got none")
		}
	})
}
