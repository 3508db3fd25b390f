package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jmeppley/duhist/internal/agescan"
)

// WriteList writes one path per line grouped under "# owner" headers.
// Owners are sorted by name and each owner's files by modification time,
// oldest first. Byte sequences that are not valid UTF-8 are replaced with
// the replacement character instead of failing the report.
func WriteList(w io.Writer, byOwner map[string][]agescan.FileRecord) error {
	owners := make([]string, 0, len(byOwner))
	for owner := range byOwner {
		owners = append(owners, owner)
	}

	sort.Strings(owners)

	for _, owner := range owners {
		if _, err := fmt.Fprintf(w, "# %s\n", owner); err != nil {
			return err
		}

		records := append([]agescan.FileRecord(nil), byOwner[owner]...)
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].MTime.Before(records[j].MTime)
		})

		for _, rec := range records {
			if _, err := fmt.Fprintln(w, strings.ToValidUTF8(rec.Path, "�")); err != nil {
				return err
			}
		}
	}

	return nil
}
