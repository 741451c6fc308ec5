package query

import (
	"fmt"
	"io"
	"strings"
)

// fastaLineWidth is the residue wrap width used when rendering FASTA.
const fastaLineWidth = 60

// Sequence is a single named sequence query, serialized as FASTA.
type Sequence struct {
	Name     string
	Desc     string
	Residues string

	// Alpha may be left AlphabetNone, in which case it is guessed from the
	// residues and entry points fall back to their default.
	Alpha Alphabet
}

// NewSequence creates a sequence query, guessing the alphabet from the
// residues.
func NewSequence(name, residues string) *Sequence {
	return &Sequence{
		Name:     name,
		Residues: residues,
		Alpha:    GuessAlphabet(residues),
	}
}

// QueryName implements Query.
func (s *Sequence) QueryName() string { return s.Name }

// Alphabet implements Query.
func (s *Sequence) Alphabet() Alphabet { return s.Alpha }

// Len returns the number of residues.
func (s *Sequence) Len() int { return len(s.Residues) }

// WriteTo renders the sequence as a FASTA record.
func (s *Sequence) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	sb.WriteByte('>')
	sb.WriteString(s.Name)
	if s.Desc != "" {
		sb.WriteByte(' ')
		sb.WriteString(s.Desc)
	}
	sb.WriteByte('\n')
	for i := 0; i < len(s.Residues); i += fastaLineWidth {
		end := i + fastaLineWidth
		if end > len(s.Residues) {
			end = len(s.Residues)
		}
		sb.WriteString(s.Residues[i:end])
		sb.WriteByte('\n')
	}

	n, err := io.WriteString(w, sb.String())
	if err != nil {
		return int64(n), fmt.Errorf("failed to write sequence %s: %w", s.Name, err)
	}
	return int64(n), nil
}
