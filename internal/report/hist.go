// Package report renders aggregated usage into final text: ASCII
// histograms, by-owner file lists and CSV tables.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/jmeppley/duhist/internal/errs"
	"github.com/jmeppley/duhist/internal/render"
)

// nameWidth is the fixed label column of histogram rows.
const nameWidth = 13

// Entry is one histogram row before rendering.
type Entry struct {
	// Name labels the row.
	Name string
	// KB is the row's magnitude in kilobytes. Fractional values keep
	// sub-kilobyte totals visible after unit conversion.
	KB float64
	// MTime is the entry's modification time, used for the age prefix.
	MTime time.Time
	// Paren renders the size in parentheses, the style used for
	// directories and owner totals.
	Paren bool
}

// HistogramOptions configures histogram rendering.
type HistogramOptions struct {
	// Width is the total text width of a line.
	Width int
	// Log draws bars on a logarithmic scale with the symbol ramp.
	Log bool
	// ShowAge prefixes each row with a 3-character age.
	ShowAge bool
	// Now anchors age computation.
	Now time.Time
	// Directory names the input in error messages.
	Directory string
}

// labelWidth returns the columns consumed before a bar starts.
func (o HistogramOptions) labelWidth() int {
	w := nameWidth + 6
	if o.ShowAge {
		w += 4
	}

	return w
}

// SortBySize orders entries smallest first.
func SortBySize(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].KB < entries[j].KB })
}

// SortByAge orders entries oldest first.
func SortByAge(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].MTime.Before(entries[j].MTime) })
}

// SortByName orders entries lexically.
func SortByName(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
}

// WriteHistogram renders entries in their given order, one bar per line,
// followed by a Total line. The bar for the largest entry spans the width
// remaining after the label columns; with Log the axis is logarithmic and
// bars climb the symbol ramp.
func WriteHistogram(w io.Writer, entries []Entry, opt HistogramOptions) error {
	if len(entries) == 0 {
		return &errs.EmptyResultError{Paths: []string{opt.Directory}}
	}

	barWidth := opt.Width - opt.labelWidth()
	if barWidth < 1 {
		return &errs.ConfigError{
			Param:  "text width",
			Reason: fmt.Sprintf("%d leaves no room for bars after the %d-column label", opt.Width, opt.labelWidth()),
		}
	}

	var total, maxVal float64

	for _, e := range entries {
		total += e.KB

		if e.KB > maxVal {
			maxVal = e.KB
		}
	}

	scaled := maxVal
	if opt.Log && maxVal > 0 {
		scaled = math.Log(maxVal)
	}

	scale := scaled / float64(barWidth)
	if scale <= 0 {
		// All entries empty: render label columns with bare bars.
		scale = 1
	}

	for _, e := range entries {
		var bar string

		if opt.Log && e.KB > 0 {
			bar = render.LogBar(math.Log(e.KB), scale, barWidth)
		} else {
			bar = render.Bar(e.KB, scale)
		}

		name, err := render.Truncate(e.Name, nameWidth)
		if err != nil {
			return err
		}

		if opt.ShowAge {
			age := render.Age(opt.Now.Sub(e.MTime).Seconds())
			if _, err := fmt.Fprintf(w, "%s ", age); err != nil {
				return err
			}
		}

		format := "%s %s |%s\n"
		if e.Paren {
			format = "%s(%s)|%s\n"
		}

		if _, err := fmt.Fprintf(w, format, name, render.Size(e.KB), bar); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Total: %s\n", render.Size(total)); err != nil {
		return err
	}

	return nil
}
