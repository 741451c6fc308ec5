package query

import (
	"io"
	"strings"
)

// --------------------------------------------------------------------------
// Alphabet
// --------------------------------------------------------------------------

// Alphabet identifies the residue alphabet of a query.
type Alphabet uint8

const (
	AlphabetNone Alphabet = iota // unknown, entry points substitute a default
	AlphabetAmino
	AlphabetDNA
	AlphabetRNA
)

// String returns the string representation of an Alphabet.
func (a Alphabet) String() string {
	switch a {
	case AlphabetAmino:
		return "amino"
	case AlphabetDNA:
		return "dna"
	case AlphabetRNA:
		return "rna"
	default:
		return "none"
	}
}

// GuessAlphabet infers the alphabet from residue content: sequences made of
// ACGT(N) are called DNA, ACGU(N) RNA, everything else amino. Empty input
// stays AlphabetNone.
func GuessAlphabet(residues string) Alphabet {
	if residues == "" {
		return AlphabetNone
	}
	nucleotides, hasU, hasT := 0, false, false
	for _, r := range strings.ToUpper(residues) {
		switch r {
		case 'A', 'C', 'G', 'N', '-', '.':
			nucleotides++
		case 'T':
			nucleotides++
			hasT = true
		case 'U':
			nucleotides++
			hasU = true
		}
	}
	if nucleotides < len(residues) {
		return AlphabetAmino
	}
	if hasU && !hasT {
		return AlphabetRNA
	}
	return AlphabetDNA
}

// --------------------------------------------------------------------------
// Query interface
// --------------------------------------------------------------------------

// Query is anything that can be submitted as the body of a search request.
type Query interface {
	// QueryName returns the display name of the query.
	QueryName() string

	// Alphabet returns the residue alphabet, or AlphabetNone when the query
	// does not carry one.
	Alphabet() Alphabet

	// WriteTo serializes the query body in its wire text format.
	WriteTo(w io.Writer) (int64, error)
}
