package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/jmeppley/duhist/internal/agescan"
	"github.com/jmeppley/duhist/internal/errs"
	"github.com/jmeppley/duhist/internal/report"
	"github.com/jmeppley/duhist/internal/usage"
)

// runHist measures paths with du and prints the size histogram.
func runHist(ctx context.Context, opt histOptions, paths []string) error {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	res, err := usage.Collect(ctx, usage.DU{}, usage.Options{
		Paths:            paths,
		CrossFilesystems: opt.AllFS,
		WithMTimes:       opt.Time,
		Debug:            opt.Debug,
	})
	if err != nil {
		return err
	}

	entries := usageEntries(res)

	if opt.Time {
		report.SortByAge(entries)
	} else {
		report.SortBySize(entries)
	}

	return report.WriteHistogram(os.Stdout, entries, report.HistogramOptions{
		Width:     opt.Width,
		Log:       opt.Log,
		ShowAge:   opt.Time,
		Now:       time.Now(),
		Directory: strings.Join(paths, ", "),
	})
}

// runOldfiles scans a tree and produces the requested by-owner outputs.
func runOldfiles(ctx context.Context, opt oldOptions, dir string) error {
	unit, err := agescan.UnitSeconds(opt.BinType)
	if err != nil {
		return err
	}

	minAge := time.Duration(opt.MinAge) * unit

	fmt.Fprintf(os.Stderr, "Looking for files at least %d %s old\n", opt.MinAge, opt.BinType)

	enableProgress := !opt.Verbose && isatty.IsTerminal(os.Stderr.Fd())

	var progressHook func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")

		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning: %d files, %s",
				files, humanize.IBytes(uint64(bytes)))
			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
		}
	}

	res, err := agescan.Scan(ctx, agescan.Options{
		Root:           dir,
		Users:          opt.Users,
		MinAge:         minAge,
		FollowSymlinks: opt.FollowLinks,
		Debug:          opt.Verbose,
	}, progressHook)

	// Clear the status line.
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	if len(res.ByOwner) == 0 {
		return &errs.EmptyResultError{Paths: []string{dir}}
	}

	fmt.Fprintf(os.Stderr, "Found files for %d users (%s in %d files)\n",
		len(res.ByOwner), humanize.IBytes(uint64(res.TotalBytes)), res.FileCount)

	if opt.Verbose && res.Skipped.Total() > 0 {
		fmt.Fprintf(os.Stderr, "[debug]: skipped %d entries (%d permission, %d broken links, %d other)\n",
			res.Skipped.Total(), res.Skipped.Permission, res.Skipped.BrokenLink, res.Skipped.Other)
	}

	if opt.ListFile != "" {
		if err := writeListFile(opt.ListFile, res.ByOwner); err != nil {
			return err
		}
	}

	if opt.TableFile == "" && !opt.Hist {
		return nil
	}

	table, err := agescan.BuildTable(res.ByOwner, res.OldestMTime, opt.BinSize, opt.BinType, time.Now())
	if err != nil {
		return err
	}

	if opt.TableFile != "" {
		if err := writeTableFile(opt.TableFile, table); err != nil {
			return err
		}
	}

	if opt.Hist {
		entries := ownerEntries(table.SumByOwner())
		report.SortByName(entries)

		return report.WriteHistogram(os.Stdout, entries, report.HistogramOptions{
			Width:     opt.Width,
			Now:       time.Now(),
			Directory: dir,
		})
	}

	return nil
}

// writeListFile writes the by-owner file list to path.
func writeListFile(path string, byOwner map[string][]agescan.FileRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating list file: %w", err)
	}

	if err := report.WriteList(f, byOwner); err != nil {
		f.Close()

		return fmt.Errorf("writing list file: %w", err)
	}

	return f.Close()
}

// writeTableFile writes the usage table as CSV to path.
func writeTableFile(path string, table *agescan.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating table file: %w", err)
	}

	if err := report.WriteCSV(f, table); err != nil {
		f.Close()

		return fmt.Errorf("writing table file: %w", err)
	}

	return f.Close()
}
