package render

import (
	"math"
	"strings"
	"testing"
)

func TestBar(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		scale    float64
		expected string
	}{
		{"zero value", 0, 1, ""},
		{"below one character", 0.9, 1, ""},
		{"exact width", 10, 1, "=========="},
		{"fractional truncates", 10.7, 1, "=========="},
		{"scaled", 100, 10, "=========="},
		{"single character", 1, 1, "="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bar(tt.value, tt.scale); got != tt.expected {
				t.Errorf("Bar(%v, %v) = %q, want %q", tt.value, tt.scale, got, tt.expected)
			}
		})
	}
}

func TestBarUncappedByWidth(t *testing.T) {
	// Linear bars are not clamped: length is floor(value/scale).
	got := Bar(25, 1)
	if len(got) != 25 {
		t.Errorf("Bar(25, 1) has length %d, want 25", len(got))
	}
}

func TestLogBar(t *testing.T) {
	t.Run("empty below one character", func(t *testing.T) {
		if got := LogBar(0.5, 1, 40); got != "" {
			t.Errorf("LogBar(0.5, 1, 40) = %q, want empty", got)
		}
	})

	t.Run("starts at the lowest symbol", func(t *testing.T) {
		got := LogBar(10, 1, 40)
		if got[0] != Ramp[0] {
			t.Errorf("LogBar first char = %q, want %q", got[0], Ramp[0])
		}
	})

	t.Run("full width climbs the whole ramp", func(t *testing.T) {
		width := 40

		got := LogBar(float64(width), 1, width)
		if len(got) != width {
			t.Fatalf("length %d, want %d", len(got), width)
		}

		// Quarters of the bar use successive ramp symbols.
		if got[5] != '-' || got[15] != '~' || got[25] != '=' || got[35] != '#' {
			t.Errorf("unexpected symbol progression: %q", got)
		}

		if got[len(got)-1] != '#' {
			t.Errorf("last char = %q, want '#'", got[len(got)-1])
		}
	})

	t.Run("short bar stays low on the ramp", func(t *testing.T) {
		got := LogBar(5, 1, 40)
		if strings.ContainsAny(got, "=#") {
			t.Errorf("LogBar(5, 1, 40) = %q, should not reach the upper ramp", got)
		}
	})
}

func TestRampBar(t *testing.T) {
	t.Run("empty below one character", func(t *testing.T) {
		if got := RampBar(0.5, 1, 100); got != "" {
			t.Errorf("RampBar(0.5, 1, 100) = %q, want empty", got)
		}
	})

	t.Run("first character is an equals sign", func(t *testing.T) {
		got := RampBar(10, 1, 100)
		if got[0] != '=' {
			t.Errorf("first char = %q, want '='", got[0])
		}
	})

	t.Run("symbol tracks value against the overall maximum", func(t *testing.T) {
		tests := []struct {
			name   string
			value  float64
			max    float64
			symbol byte
		}{
			{"bottom quarter", 10, 100, '-'},
			{"second quarter", 40, 100, '~'},
			{"third quarter", 60, 100, '='},
			{"top quarter", 100, 100, '#'},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got := RampBar(tt.value, 1, tt.max)
				if got[1] != tt.symbol {
					t.Errorf("RampBar(%v, 1, %v)[1] = %q, want %q", tt.value, tt.max, got[1], tt.symbol)
				}
			})
		}
	})

	t.Run("length matches the linear bar", func(t *testing.T) {
		if lin, ramp := Bar(17, 2), RampBar(17, 2, 100); len(lin) != len(ramp) {
			t.Errorf("length mismatch: Bar=%d RampBar=%d", len(lin), len(ramp))
		}
	})
}

func TestRampIndexClamped(t *testing.T) {
	if i := rampIndex(0, 10); i != 0 {
		t.Errorf("rampIndex(0, 10) = %d, want 0", i)
	}

	if i := rampIndex(100, 10); i != len(Ramp)-1 {
		t.Errorf("rampIndex(100, 10) = %d, want %d", i, len(Ramp)-1)
	}

	if i := rampIndex(math.Nextafter(0, -1), 10); i != 0 {
		t.Errorf("rampIndex below zero = %d, want 0", i)
	}
}
