package query

import (
	"fmt"
	"io"
	"strings"
)

// MSA is a multiple sequence alignment query, serialized as a minimal
// Stockholm record. All member sequences must have equal aligned length.
type MSA struct {
	Name      string
	Sequences []Sequence
}

// NewMSA creates an alignment query from pre-aligned member sequences.
func NewMSA(name string, seqs ...Sequence) *MSA {
	return &MSA{Name: name, Sequences: seqs}
}

// QueryName implements Query.
func (m *MSA) QueryName() string { return m.Name }

// Alphabet returns the alphabet of the first member carrying one.
func (m *MSA) Alphabet() Alphabet {
	for i := range m.Sequences {
		if a := m.Sequences[i].Alpha; a != AlphabetNone {
			return a
		}
		if a := GuessAlphabet(m.Sequences[i].Residues); a != AlphabetNone {
			return a
		}
	}
	return AlphabetNone
}

// Validate checks that the alignment is non-empty and flush.
func (m *MSA) Validate() error {
	if len(m.Sequences) == 0 {
		return fmt.Errorf("alignment %s has no sequences", m.Name)
	}
	width := len(m.Sequences[0].Residues)
	for i := range m.Sequences {
		if len(m.Sequences[i].Residues) != width {
			return fmt.Errorf("alignment %s is ragged: sequence %s has length %d, want %d",
				m.Name, m.Sequences[i].Name, len(m.Sequences[i].Residues), width)
		}
	}
	return nil
}

// WriteTo renders the alignment as a Stockholm record.
func (m *MSA) WriteTo(w io.Writer) (int64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}

	nameWidth := 0
	for i := range m.Sequences {
		if l := len(m.Sequences[i].Name); l > nameWidth {
			nameWidth = l
		}
	}

	var sb strings.Builder
	sb.WriteString("# STOCKHOLM 1.0\n")
	if m.Name != "" {
		sb.WriteString("#=GF ID ")
		sb.WriteString(m.Name)
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	for i := range m.Sequences {
		s := &m.Sequences[i]
		sb.WriteString(s.Name)
		sb.WriteString(strings.Repeat(" ", nameWidth-len(s.Name)+2))
		sb.WriteString(s.Residues)
		sb.WriteByte('\n')
	}
	sb.WriteString("//\n")

	n, err := io.WriteString(w, sb.String())
	if err != nil {
		return int64(n), fmt.Errorf("failed to write alignment %s: %w", m.Name, err)
	}
	return int64(n), nil
}
