package pipeline

import (
	"testing"
)

// TestDefaultConfigRendersEmpty tests that defaults produce no option flags
func TestDefaultConfigRendersEmpty(t *testing.T) {
	cfg := DefaultConfig()
	if s := cfg.Render(); s != "" {
		t.Errorf("default config should render empty, got %q", s)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

// TestRender tests the canonical flag rendering
func TestRender(t *testing.T) {
	testCases := []struct {
		name string
		opts map[string]string
		want string
	}{
		{
			name: "Reporting e-value",
			opts: map[string]string{"E": "0.001"},
			want: "-E 0.001",
		},
		{
			name: "Bit score overrides e-value",
			opts: map[string]string{"E": "0.001", "T": "25"},
			want: "-T 25",
		},
		{
			name: "Model cutoff",
			opts: map[string]string{"cut_ga": ""},
			want: "--cut_ga",
		},
		{
			name: "Max bypasses filter flags",
			opts: map[string]string{"max": "", "F1": "0.1", "nobias": ""},
			want: "--max",
		},
		{
			name: "Filter and bias flags",
			opts: map[string]string{"F1": "0.1", "nobias": ""},
			want: "--F1 0.1 --nobias",
		},
		{
			name: "Database size overrides",
			opts: map[string]string{"Z": "1000000", "domZ": "500"},
			want: "-Z 1e+06 --domZ 500",
		},
		{
			name: "Seed",
			opts: map[string]string{"seed": "7"},
			want: "--seed 7",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			for k, v := range tc.opts {
				if err := cfg.Set(k, v); err != nil {
					t.Fatalf("failed to set %s=%s: %v", k, v, err)
				}
			}
			if got := cfg.Render(); got != tc.want {
				t.Errorf("render mismatch:\nwant %q\ngot  %q", tc.want, got)
			}
		})
	}
}

// TestSetRejectsUnknownKeys tests the closed option set
func TestSetRejectsUnknownKeys(t *testing.T) {
	cfg := DefaultConfig()

	for _, key := range []string{"evalue", "cpu", "watch", ""} {
		if err := cfg.Set(key, "1"); err == nil {
			t.Errorf("expected error for unknown key %q but got none", key)
		}
	}
}

// TestSetRejectsBadValues tests value parsing
func TestSetRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()

	testCases := []struct{ key, value string }{
		{"E", "abc"},
		{"T", ""},
		{"nobias", "maybe"},
		{"seed", "-1"},
		{"seed", "4294967296"},
	}
	for _, tc := range testCases {
		if err := cfg.Set(tc.key, tc.value); err == nil {
			t.Errorf("expected error for %s=%q but got none", tc.key, tc.value)
		}
	}
}

// TestValidate tests the consistency checks
func TestValidate(t *testing.T) {
	t.Run("Negative e-value threshold", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.E = -1
		if err := cfg.Validate(); err == nil {
			t.Error("expected error but got none")
		}
	})

	t.Run("Filter threshold out of range", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.F2 = 1.5
		if err := cfg.Validate(); err == nil {
			t.Error("expected error but got none")
		}
	})

	t.Run("Non-positive Z override", func(t *testing.T) {
		cfg := DefaultConfig()
		z := 0.0
		cfg.Z = &z
		if err := cfg.Validate(); err == nil {
			t.Error("expected error but got none")
		}
	})
}
