package pipeline

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Defaults
// --------------------------------------------------------------------------

// Defaults mirror the daemon's pipeline. A rendered option string only
// carries values that differ from these, so a default Config renders empty.
const (
	DefaultE       = 10.0
	DefaultDomE    = 10.0
	DefaultIncE    = 0.01
	DefaultIncDomE = 0.01
	DefaultF1      = 0.02
	DefaultF2      = 1e-3
	DefaultF3      = 1e-7
	DefaultSeed    = 42
)

// BitCutoff selects model-defined score cutoffs instead of e-value/score
// thresholds.
type BitCutoff string

const (
	CutoffNone      BitCutoff = ""
	CutoffGathering BitCutoff = "gathering" // --cut_ga
	CutoffNoise     BitCutoff = "noise"     // --cut_nc
	CutoffTrusted   BitCutoff = "trusted"   // --cut_tc
)

// --------------------------------------------------------------------------
// Config
// --------------------------------------------------------------------------

// Config carries the pipeline search parameters for one request. The zero
// value is not meaningful; start from DefaultConfig.
//
// Optional score thresholds are pointers: nil means "use the e-value
// threshold of the same pair instead".
type Config struct {
	// Reporting thresholds (which hits/domains appear in output)
	E    float64  // e-value cutoff for reporting hits
	T    *float64 // bit score cutoff for reporting hits, overrides E
	DomE float64  // e-value cutoff for reporting domains
	DomT *float64 // bit score cutoff for reporting domains, overrides DomE

	// Inclusion thresholds (which hits/domains count as significant)
	IncE    float64
	IncT    *float64
	IncDomE float64
	IncDomT *float64

	// Model-defined cutoffs (profile searches only)
	Cutoff BitCutoff

	// Filter stage thresholds
	F1      float64 // MSV filter survival
	F2      float64 // Viterbi filter survival
	F3      float64 // Forward filter survival
	Max     bool    // bypass all filters (--max)
	NoBias  bool    // disable the bias composition filter
	NoNull2 bool    // disable the biased-composition score correction

	// Effective database size overrides. nil lets the server derive them
	// from the target database.
	Z    *float64
	DomZ *float64

	Seed uint32 // RNG seed, 0 means arbitrary
}

// DefaultConfig returns a Config with every option at its documented default.
func DefaultConfig() Config {
	return Config{
		E:       DefaultE,
		DomE:    DefaultDomE,
		IncE:    DefaultIncE,
		IncDomE: DefaultIncDomE,
		F1:      DefaultF1,
		F2:      DefaultF2,
		F3:      DefaultF3,
		Seed:    DefaultSeed,
	}
}

// --------------------------------------------------------------------------
// Closed option-set construction
// --------------------------------------------------------------------------

// Set assigns one option by its flag name (without dashes). Unrecognized
// keys are rejected, as are unparseable values. Boolean flags accept an
// empty value as "true".
func (c *Config) Set(key, value string) error {
	parseF := func() (float64, error) {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("option %s: invalid number %q", key, value)
		}
		return v, nil
	}
	parseB := func() (bool, error) {
		if value == "" {
			return true, nil
		}
		v, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("option %s: invalid boolean %q", key, value)
		}
		return v, nil
	}

	var err error
	switch key {
	case "E":
		c.E, err = parseF()
	case "T":
		var v float64
		if v, err = parseF(); err == nil {
			c.T = &v
		}
	case "domE":
		c.DomE, err = parseF()
	case "domT":
		var v float64
		if v, err = parseF(); err == nil {
			c.DomT = &v
		}
	case "incE":
		c.IncE, err = parseF()
	case "incT":
		var v float64
		if v, err = parseF(); err == nil {
			c.IncT = &v
		}
	case "incdomE":
		c.IncDomE, err = parseF()
	case "incdomT":
		var v float64
		if v, err = parseF(); err == nil {
			c.IncDomT = &v
		}
	case "cut_ga":
		c.Cutoff = CutoffGathering
	case "cut_nc":
		c.Cutoff = CutoffNoise
	case "cut_tc":
		c.Cutoff = CutoffTrusted
	case "F1":
		c.F1, err = parseF()
	case "F2":
		c.F2, err = parseF()
	case "F3":
		c.F3, err = parseF()
	case "max":
		c.Max, err = parseB()
	case "nobias":
		c.NoBias, err = parseB()
	case "nonull2":
		c.NoNull2, err = parseB()
	case "Z":
		var v float64
		if v, err = parseF(); err == nil {
			c.Z = &v
		}
	case "domZ":
		var v float64
		if v, err = parseF(); err == nil {
			c.DomZ = &v
		}
	case "seed":
		var v uint64
		v, err = strconv.ParseUint(value, 10, 32)
		if err != nil {
			err = fmt.Errorf("option seed: invalid value %q", value)
		}
		c.Seed = uint32(v)
	default:
		return fmt.Errorf("unrecognized pipeline option %q", key)
	}
	return err
}

// Validate checks internal consistency of the configuration.
func (c *Config) Validate() error {
	if c.E <= 0 || c.DomE <= 0 || c.IncE <= 0 || c.IncDomE <= 0 {
		return fmt.Errorf("e-value thresholds must be positive")
	}
	for _, f := range []struct {
		name string
		v    float64
	}{{"F1", c.F1}, {"F2", c.F2}, {"F3", c.F3}} {
		if f.v <= 0 || f.v > 1 {
			return fmt.Errorf("filter threshold %s must be in (0, 1], got %g", f.name, f.v)
		}
	}
	if z := c.Z; z != nil && *z <= 0 {
		return fmt.Errorf("Z override must be positive, got %g", *z)
	}
	if dz := c.DomZ; dz != nil && *dz <= 0 {
		return fmt.Errorf("domZ override must be positive, got %g", *dz)
	}
	return nil
}

// --------------------------------------------------------------------------
// Rendering
// --------------------------------------------------------------------------

// Render produces the space-joined option string for the request line.
// Only options that differ from their defaults are emitted, in a canonical
// order, so two equal configs always render identically.
func (c *Config) Render() string {
	var flags []string

	add := func(ss ...string) { flags = append(flags, ss...) }
	num := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

	if c.T != nil {
		add("-T", num(*c.T))
	} else if c.E != DefaultE {
		add("-E", num(c.E))
	}
	if c.DomT != nil {
		add("--domT", num(*c.DomT))
	} else if c.DomE != DefaultDomE {
		add("--domE", num(c.DomE))
	}
	if c.IncT != nil {
		add("--incT", num(*c.IncT))
	} else if c.IncE != DefaultIncE {
		add("--incE", num(c.IncE))
	}
	if c.IncDomT != nil {
		add("--incdomT", num(*c.IncDomT))
	} else if c.IncDomE != DefaultIncDomE {
		add("--incdomE", num(c.IncDomE))
	}

	switch c.Cutoff {
	case CutoffGathering:
		add("--cut_ga")
	case CutoffNoise:
		add("--cut_nc")
	case CutoffTrusted:
		add("--cut_tc")
	}

	if c.Max {
		add("--max")
	} else {
		if c.F1 != DefaultF1 {
			add("--F1", num(c.F1))
		}
		if c.F2 != DefaultF2 {
			add("--F2", num(c.F2))
		}
		if c.F3 != DefaultF3 {
			add("--F3", num(c.F3))
		}
		if c.NoBias {
			add("--nobias")
		}
	}
	if c.NoNull2 {
		add("--nonull2")
	}

	if c.Z != nil {
		add("-Z", num(*c.Z))
	}
	if c.DomZ != nil {
		add("--domZ", num(*c.DomZ))
	}
	if c.Seed != DefaultSeed {
		add("--seed", strconv.FormatUint(uint64(c.Seed), 10))
	}

	return strings.Join(flags, " ")
}
