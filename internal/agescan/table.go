package agescan

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmeppley/duhist/internal/errs"
)

// timeSpans maps age-bin units to their length in seconds. Months are 30
// days, matching the reporting convention of the rest of the tool.
var timeSpans = map[string]int64{
	"minutes": 60,
	"hours":   3600,
	"days":    24 * 3600,
	"weeks":   7 * 24 * 3600,
	"months":  30 * 24 * 3600,
}

// Units lists the recognized age-bin units, sorted.
func Units() []string {
	units := make([]string, 0, len(timeSpans))
	for unit := range timeSpans {
		units = append(units, unit)
	}

	sort.Strings(units)

	return units
}

// UnitSeconds returns the length of one bin unit. Unknown units are a
// configuration error.
func UnitSeconds(unit string) (time.Duration, error) {
	secs, ok := timeSpans[unit]
	if !ok {
		return 0, &errs.ConfigError{
			Param:  "age bin unit",
			Reason: fmt.Sprintf("unknown unit %q, expected one of %s", unit, strings.Join(Units(), ", ")),
		}
	}

	return time.Duration(secs) * time.Second, nil
}

// Table is usage bucketed by owner and age bin. Bin 0 holds the newest
// files; the final bin holds the oldest. Owners are sorted by name.
type Table struct {
	// Owners is the column order.
	Owners []string
	// Labels describes each bin's bounds in bin units.
	Labels []string
	// Cells maps each owner to its per-bin byte totals.
	Cells map[string][]int64
	// BinWidth is the width of one bin.
	BinWidth time.Duration
}

// Bins returns the number of age bins.
func (t *Table) Bins() int { return len(t.Labels) }

// SumByOwner returns each owner's total bytes across all bins.
func (t *Table) SumByOwner() map[string]int64 {
	totals := make(map[string]int64, len(t.Cells))

	for owner, row := range t.Cells {
		var sum int64
		for _, cell := range row {
			sum += cell
		}

		totals[owner] = sum
	}

	return totals
}

// BuildTable buckets byOwner's records into age bins binSize binUnits wide,
// measured back from now. Bin boundaries are anchored so that a file
// modified at oldestMTime lands in the final bin. Each record's full byte
// size is added to its (owner, bin) cell.
func BuildTable(byOwner map[string][]FileRecord, oldestMTime time.Time, binSize int, binUnit string, now time.Time) (*Table, error) {
	if binSize <= 0 {
		return nil, &errs.ConfigError{Param: "age bin size", Reason: "must be positive"}
	}

	unit, err := UnitSeconds(binUnit)
	if err != nil {
		return nil, err
	}

	binWidth := time.Duration(binSize) * unit

	oldestAge := now.Sub(oldestMTime)
	if oldestAge < 0 {
		oldestAge = 0
	}

	bins := int(oldestAge/binWidth) + 1

	owners := make([]string, 0, len(byOwner))
	cells := make(map[string][]int64, len(byOwner))

	for owner, records := range byOwner {
		owners = append(owners, owner)

		row := make([]int64, bins)
		for _, rec := range records {
			idx := int(now.Sub(rec.MTime) / binWidth)

			// Clock skew between scan and binning can push an
			// index just out of range.
			if idx < 0 {
				idx = 0
			}

			if idx >= bins {
				idx = bins - 1
			}

			row[idx] += rec.Size
		}

		cells[owner] = row
	}

	sort.Strings(owners)

	labels := make([]string, bins)
	for k := range labels {
		labels[k] = fmt.Sprintf("%d to %d %s old", k*binSize, (k+1)*binSize, binUnit)
	}

	return &Table{
		Owners:   owners,
		Labels:   labels,
		Cells:    cells,
		BinWidth: binWidth,
	}, nil
}
