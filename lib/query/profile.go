package query

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Profile is a profile model query in the HMMER3 ASCII format. The client
// does not evaluate the model; it parses the header for identity and carries
// the full text through to the daemon verbatim.
type Profile struct {
	Name   string
	Acc    string
	Desc   string
	Length int
	Alpha  Alphabet

	text []byte
}

// ParseProfile reads one profile in HMMER3 ASCII format, retaining the raw
// text for transmission. It fails if the magic line or the mandatory NAME
// and LENG header fields are missing.
func ParseProfile(r io.Reader) (*Profile, error) {
	var raw strings.Builder
	p := &Profile{}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	first := true
	inHeader := true
	for sc.Scan() {
		line := sc.Text()
		raw.WriteString(line)
		raw.WriteByte('\n')

		if first {
			if !strings.HasPrefix(line, "HMMER3") {
				return nil, fmt.Errorf("not a profile: expected HMMER3 magic, got %q", firstWord(line))
			}
			first = false
			continue
		}

		if inHeader {
			field := firstWord(line)
			rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), field))
			switch field {
			case "NAME":
				p.Name = rest
			case "ACC":
				p.Acc = rest
			case "DESC":
				p.Desc = rest
			case "LENG":
				n, err := strconv.Atoi(rest)
				if err != nil || n <= 0 {
					return nil, fmt.Errorf("profile %s: invalid LENG %q", p.Name, rest)
				}
				p.Length = n
			case "ALPH":
				switch strings.ToLower(rest) {
				case "amino":
					p.Alpha = AlphabetAmino
				case "dna":
					p.Alpha = AlphabetDNA
				case "rna":
					p.Alpha = AlphabetRNA
				}
			case "HMM":
				inHeader = false
			}
		}

		if line == "//" {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	if first {
		return nil, fmt.Errorf("not a profile: empty input")
	}
	if p.Name == "" {
		return nil, fmt.Errorf("profile is missing the NAME header field")
	}
	if p.Length == 0 {
		return nil, fmt.Errorf("profile %s is missing the LENG header field", p.Name)
	}

	p.text = []byte(raw.String())
	return p, nil
}

// QueryName implements Query.
func (p *Profile) QueryName() string { return p.Name }

// Alphabet implements Query.
func (p *Profile) Alphabet() Alphabet { return p.Alpha }

// WriteTo emits the profile text exactly as parsed.
func (p *Profile) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.text)
	if err != nil {
		return int64(n), fmt.Errorf("failed to write profile %s: %w", p.Name, err)
	}
	return int64(n), nil
}

// firstWord returns the first whitespace-delimited token of a line.
func firstWord(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
