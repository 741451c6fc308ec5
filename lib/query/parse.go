package query

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseSequence reads the first FASTA record from r.
func ParseSequence(r io.Reader) (*Sequence, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var s *Sequence
	var residues strings.Builder
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			if s != nil {
				break // start of the second record
			}
			name, desc, _ := strings.Cut(strings.TrimPrefix(line, ">"), " ")
			if name == "" {
				return nil, fmt.Errorf("sequence record has no name")
			}
			s = &Sequence{Name: name, Desc: strings.TrimSpace(desc)}
			continue
		}
		if s == nil {
			return nil, fmt.Errorf("not a FASTA record: expected '>', got %q", line)
		}
		residues.WriteString(line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sequence: %w", err)
	}
	if s == nil {
		return nil, fmt.Errorf("empty sequence input")
	}
	if residues.Len() == 0 {
		return nil, fmt.Errorf("sequence %s has no residues", s.Name)
	}
	s.Residues = residues.String()
	s.Alpha = GuessAlphabet(s.Residues)
	return s, nil
}

// ParseMSA reads one Stockholm alignment from r. Only the sequence lines
// and the #=GF ID annotation are interpreted; other annotations are
// skipped.
func ParseMSA(r io.Reader) (*MSA, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("failed to read alignment: %w", err)
		}
		return nil, fmt.Errorf("empty alignment input")
	}
	if !strings.HasPrefix(sc.Text(), "# STOCKHOLM") {
		return nil, fmt.Errorf("not a Stockholm alignment: missing header")
	}

	m := &MSA{}
	order := []string{}
	parts := map[string]*strings.Builder{}
scan:
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case line == "//":
			break scan
		case strings.HasPrefix(line, "#=GF ID"):
			m.Name = strings.TrimSpace(strings.TrimPrefix(line, "#=GF ID"))
		case strings.HasPrefix(line, "#"):
			continue
		default:
			name, rest, ok := strings.Cut(line, " ")
			if !ok {
				return nil, fmt.Errorf("malformed alignment line %q", line)
			}
			b, seen := parts[name]
			if !seen {
				b = &strings.Builder{}
				parts[name] = b
				order = append(order, name)
			}
			b.WriteString(strings.TrimSpace(rest))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read alignment: %w", err)
	}
	for _, name := range order {
		residues := parts[name].String()
		m.Sequences = append(m.Sequences, Sequence{
			Name:     name,
			Residues: residues,
			Alpha:    GuessAlphabet(residues),
		})
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
