package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/jmeppley/duhist/internal/agescan"
)

// WriteCSV serializes a usage table with one row per age bin and one column
// per owner, newest bin first. The leading header cell is empty, matching
// the row-label column.
func WriteCSV(w io.Writer, table *agescan.Table) error {
	cw := csv.NewWriter(w)

	header := append([]string{""}, table.Owners...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, label := range table.Labels {
		row := make([]string, 0, len(table.Owners)+1)
		row = append(row, label)

		for _, owner := range table.Owners {
			row = append(row, strconv.FormatInt(table.Cells[owner][i], 10))
		}

		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}
