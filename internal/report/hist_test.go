package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jmeppley/duhist/internal/errs"
)

func TestWriteHistogram(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	entries := []Entry{
		{Name: "a", KB: 50},
		{Name: "b", KB: 100, Paren: true},
	}

	var buf bytes.Buffer

	// Width 27 leaves 8 columns for bars after the 19-column label.
	err := WriteHistogram(&buf, entries, HistogramOptions{Width: 27, Now: now})
	if err != nil {
		t.Fatalf("WriteHistogram failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}

	t.Run("file row", func(t *testing.T) {
		if lines[0] != "a             50K |====" {
			t.Errorf("line = %q", lines[0])
		}
	})

	t.Run("paren row fills the width", func(t *testing.T) {
		if lines[1] != "b            (.1M)|========" {
			t.Errorf("line = %q", lines[1])
		}

		if len(lines[1]) != 27 {
			t.Errorf("longest row length = %d, want 27", len(lines[1]))
		}
	})

	t.Run("total", func(t *testing.T) {
		if lines[2] != "Total: .1M" {
			t.Errorf("total line = %q", lines[2])
		}
	})
}

func TestWriteHistogramAgePrefix(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	entries := []Entry{
		{Name: "old", KB: 10, MTime: now.Add(-300 * 24 * time.Hour)},
	}

	var buf bytes.Buffer

	err := WriteHistogram(&buf, entries, HistogramOptions{Width: 40, ShowAge: true, Now: now})
	if err != nil {
		t.Fatalf("WriteHistogram failed: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "10m ") {
		t.Errorf("expected a 3-character age prefix, got %q", buf.String())
	}
}

func TestWriteHistogramLogRamp(t *testing.T) {
	entries := []Entry{
		{Name: "tiny", KB: 2},
		{Name: "huge", KB: 1 << 30},
	}

	var buf bytes.Buffer

	err := WriteHistogram(&buf, entries, HistogramOptions{Width: 80, Log: true})
	if err != nil {
		t.Fatalf("WriteHistogram failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	hugeBar := lines[1][strings.Index(lines[1], "|")+1:]
	if !strings.HasSuffix(hugeBar, "#") {
		t.Errorf("largest log bar should end on the top ramp symbol, got %q", hugeBar)
	}

	if !strings.HasPrefix(hugeBar, "-") {
		t.Errorf("log bars start on the lowest ramp symbol, got %q", hugeBar)
	}

	tinyBar := lines[0][strings.Index(lines[0], "|")+1:]
	if len(tinyBar) >= len(hugeBar) {
		t.Errorf("log bar lengths should still order by magnitude: %q vs %q", tinyBar, hugeBar)
	}
}

func TestWriteHistogramZeroSizes(t *testing.T) {
	entries := []Entry{{Name: "empty", KB: 0}}

	var buf bytes.Buffer

	if err := WriteHistogram(&buf, entries, HistogramOptions{Width: 80}); err != nil {
		t.Fatalf("WriteHistogram should handle all-zero sizes: %v", err)
	}

	if !strings.Contains(buf.String(), "Total: .0K") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestWriteHistogramErrors(t *testing.T) {
	t.Run("no entries", func(t *testing.T) {
		err := WriteHistogram(&bytes.Buffer{}, nil, HistogramOptions{Width: 80, Directory: "/data"})

		var emptyErr *errs.EmptyResultError
		if !errors.As(err, &emptyErr) {
			t.Fatalf("error = %T (%v), want *errs.EmptyResultError", err, err)
		}

		if len(emptyErr.Paths) != 1 || emptyErr.Paths[0] != "/data" {
			t.Errorf("Paths = %v", emptyErr.Paths)
		}
	})

	t.Run("width too narrow", func(t *testing.T) {
		err := WriteHistogram(&bytes.Buffer{}, []Entry{{Name: "x", KB: 1}}, HistogramOptions{Width: 19})

		var cfgErr *errs.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("error = %T (%v), want *errs.ConfigError", err, err)
		}
	})
}

func TestSortHelpers(t *testing.T) {
	now := time.Now()

	entries := []Entry{
		{Name: "b", KB: 30, MTime: now.Add(-time.Hour)},
		{Name: "c", KB: 10, MTime: now.Add(-3 * time.Hour)},
		{Name: "a", KB: 20, MTime: now.Add(-2 * time.Hour)},
	}

	t.Run("by size ascending", func(t *testing.T) {
		sorted := append([]Entry(nil), entries...)
		SortBySize(sorted)

		if sorted[0].Name != "c" || sorted[2].Name != "b" {
			t.Errorf("SortBySize order: %v", sorted)
		}
	})

	t.Run("by age oldest first", func(t *testing.T) {
		sorted := append([]Entry(nil), entries...)
		SortByAge(sorted)

		if sorted[0].Name != "c" || sorted[2].Name != "b" {
			t.Errorf("SortByAge order: %v", sorted)
		}
	})

	t.Run("by name", func(t *testing.T) {
		sorted := append([]Entry(nil), entries...)
		SortByName(sorted)

		if sorted[0].Name != "a" || sorted[2].Name != "c" {
			t.Errorf("SortByName order: %v", sorted)
		}
	})
}
