package cli

import (
	"github.com/jmeppley/duhist/internal/report"
	"github.com/jmeppley/duhist/internal/usage"
)

// usageEntries converts aggregated usage into histogram rows.
func usageEntries(res *usage.Result) []report.Entry {
	entries := make([]report.Entry, 0, len(res.Sizes))

	for name, kb := range res.Sizes {
		entries = append(entries, report.Entry{
			Name:  name,
			KB:    float64(kb),
			MTime: res.MTimes[name],
			Paren: res.Dirs[name],
		})
	}

	return entries
}

// ownerEntries converts per-owner byte totals into histogram rows. Sizes
// arrive in bytes and are reduced to kilobytes for display; the division
// stays fractional so small totals do not vanish to zero.
func ownerEntries(totals map[string]int64) []report.Entry {
	entries := make([]report.Entry, 0, len(totals))

	for owner, bytes := range totals {
		entries = append(entries, report.Entry{
			Name:  owner,
			KB:    float64(bytes) / 1024,
			Paren: true,
		})
	}

	return entries
}
