package query

import (
	"strings"
	"testing"
)

// TestGuessAlphabet tests alphabet inference from residue content
func TestGuessAlphabet(t *testing.T) {
	testCases := []struct {
		name     string
		residues string
		want     Alphabet
	}{
		{"Empty", "", AlphabetNone},
		{"DNA", "ACGTACGTNN", AlphabetDNA},
		{"RNA", "ACGUACGU", AlphabetRNA},
		{"Amino", "MKVILIADD", AlphabetAmino},
		{"Amino that contains nucleotide letters", "ACGTMKVW", AlphabetAmino},
		{"Lowercase DNA", "acgtacgt", AlphabetDNA},
		{"Gapped DNA", "AC-GT.AC", AlphabetDNA},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := GuessAlphabet(tc.residues); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

// TestSequenceWriteTo tests FASTA rendering including line wrapping
func TestSequenceWriteTo(t *testing.T) {
	s := NewSequence("q1", strings.Repeat("MKVILIADDM", 7)) // 70 residues
	s.Desc = "test query"

	var sb strings.Builder
	n, err := s.WriteTo(&sb)
	if err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	out := sb.String()
	if int64(len(out)) != n {
		t.Errorf("reported %d bytes but wrote %d", n, len(out))
	}

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if lines[0] != ">q1 test query" {
		t.Errorf("unexpected header line: %q", lines[0])
	}
	if len(lines) != 3 || len(lines[1]) != 60 || len(lines[2]) != 10 {
		t.Errorf("unexpected wrapping: %v", lines)
	}
}

// TestParseSequence tests FASTA parsing
func TestParseSequence(t *testing.T) {
	t.Run("Single record", func(t *testing.T) {
		in := ">q1 test query\nMKVILIADD\nMKVILIADD\n"
		s, err := ParseSequence(strings.NewReader(in))
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}
		if s.Name != "q1" || s.Desc != "test query" {
			t.Errorf("unexpected identity: name=%q desc=%q", s.Name, s.Desc)
		}
		if s.Residues != "MKVILIADDMKVILIADD" {
			t.Errorf("unexpected residues: %q", s.Residues)
		}
		if s.Alpha != AlphabetAmino {
			t.Errorf("expected amino, got %s", s.Alpha)
		}
	})

	t.Run("Only the first record is read", func(t *testing.T) {
		in := ">q1\nMKV\n>q2\nILI\n"
		s, err := ParseSequence(strings.NewReader(in))
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}
		if s.Name != "q1" || s.Residues != "MKV" {
			t.Errorf("unexpected record: %+v", s)
		}
	})

	t.Run("Invalid input", func(t *testing.T) {
		for _, in := range []string{"", "MKVILIADD\n", ">q1\n", "> \nMKV\n"} {
			if _, err := ParseSequence(strings.NewReader(in)); err == nil {
				t.Errorf("expected error for %q but got none", in)
			}
		}
	})
}

// TestMSARoundTrip tests Stockholm rendering and parsing
func TestMSARoundTrip(t *testing.T) {
	original := NewMSA("fam1",
		Sequence{Name: "seq1", Residues: "MKV-LIADD"},
		Sequence{Name: "longer2", Residues: "MKVIL-ADD"},
	)

	var sb strings.Builder
	if _, err := original.WriteTo(&sb); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	out := sb.String()
	if !strings.HasPrefix(out, "# STOCKHOLM 1.0\n") {
		t.Errorf("missing Stockholm header: %q", out)
	}
	if !strings.HasSuffix(out, "//\n") {
		t.Errorf("missing record terminator: %q", out)
	}

	result, err := ParseMSA(strings.NewReader(out))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if result.Name != "fam1" {
		t.Errorf("expected name fam1, got %q", result.Name)
	}
	if len(result.Sequences) != 2 {
		t.Fatalf("expected 2 sequences, got %d", len(result.Sequences))
	}
	for i := range original.Sequences {
		if result.Sequences[i].Name != original.Sequences[i].Name ||
			result.Sequences[i].Residues != original.Sequences[i].Residues {
			t.Errorf("sequence %d doesn't match after round trip:\nOriginal: %+v\nResult: %+v",
				i, original.Sequences[i], result.Sequences[i])
		}
	}
}

// TestMSAValidate tests the ragged-alignment check
func TestMSAValidate(t *testing.T) {
	t.Run("Empty alignment", func(t *testing.T) {
		if err := NewMSA("empty").Validate(); err == nil {
			t.Error("expected error but got none")
		}
	})

	t.Run("Ragged alignment", func(t *testing.T) {
		m := NewMSA("ragged",
			Sequence{Name: "seq1", Residues: "MKVIL"},
			Sequence{Name: "seq2", Residues: "MKV"},
		)
		if err := m.Validate(); err == nil {
			t.Error("expected error but got none")
		}
		if _, err := m.WriteTo(&strings.Builder{}); err == nil {
			t.Error("expected write to fail for a ragged alignment")
		}
	})
}

// TestParseMSAErrors tests invalid Stockholm input
func TestParseMSAErrors(t *testing.T) {
	for _, in := range []string{"", ">q1\nMKV\n", "# STOCKHOLM 1.0\n//\n"} {
		if _, err := ParseMSA(strings.NewReader(in)); err == nil {
			t.Errorf("expected error for %q but got none", in)
		}
	}
}

// testProfileText is a truncated but header-complete HMMER3 profile
const testProfileText = `HMMER3/f [3.4 | Aug 2023]
NAME  TEST
ACC   PF00000.1
DESC  test profile
LENG  110
ALPH  amino
HMM          A        C        D
//
`

// TestParseProfile tests profile header parsing and verbatim passthrough
func TestParseProfile(t *testing.T) {
	p, err := ParseProfile(strings.NewReader(testProfileText))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	if p.Name != "TEST" || p.Acc != "PF00000.1" || p.Desc != "test profile" {
		t.Errorf("unexpected identity: %+v", p)
	}
	if p.Length != 110 {
		t.Errorf("expected length 110, got %d", p.Length)
	}
	if p.Alpha != AlphabetAmino {
		t.Errorf("expected amino, got %s", p.Alpha)
	}

	// The body must be transmitted exactly as parsed
	var sb strings.Builder
	if _, err := p.WriteTo(&sb); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	if sb.String() != testProfileText {
		t.Errorf("profile text not preserved:\nOriginal: %q\nResult: %q", testProfileText, sb.String())
	}
}

// TestParseProfileErrors tests profiles with missing mandatory fields
func TestParseProfileErrors(t *testing.T) {
	testCases := []struct {
		name string
		in   string
	}{
		{"Empty input", ""},
		{"Wrong magic", "PROFILE 1.0\nNAME TEST\n//\n"},
		{"Missing NAME", "HMMER3/f\nLENG  10\n//\n"},
		{"Missing LENG", "HMMER3/f\nNAME  TEST\n//\n"},
		{"Invalid LENG", "HMMER3/f\nNAME  TEST\nLENG  abc\n//\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseProfile(strings.NewReader(tc.in)); err == nil {
				t.Error("expected error but got none")
			}
		})
	}
}
