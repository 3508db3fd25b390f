// Package usage aggregates per-entry disk usage over a set of paths by
// driving an external size measurement such as du.
package usage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmeppley/duhist/internal/errs"
)

// logger provides conditional debug output.
type logger struct {
	enabled bool
}

// printf prints debug output if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// Options configures usage aggregation.
type Options struct {
	// Paths are the files or directories to measure.
	Paths []string
	// CrossFilesystems lets the measurement cross mount points.
	CrossFilesystems bool
	// WithMTimes gathers each entry's last-modification time.
	WithMTimes bool
	// Debug enables debug output.
	Debug bool
}

// Result holds aggregated usage keyed by display name.
type Result struct {
	// Sizes maps entry names to allocated kilobytes.
	Sizes map[string]int64
	// MTimes maps entry names to modification times. Nil unless
	// Options.WithMTimes was set.
	MTimes map[string]time.Time
	// Dirs marks which entries are directories.
	Dirs map[string]bool
}

// Total returns the sum of all entry sizes in kilobytes.
func (r *Result) Total() int64 {
	var total int64
	for _, size := range r.Sizes {
		total += size
	}

	return total
}

// Collect measures the immediate children of each directory in opt.Paths,
// and each plain file directly, using m for the actual measurement.
//
// With a single input path entry names are bare; with several they keep
// their parent path so they cannot collide. Measurement complaints are
// reported as warnings on stderr and the run continues; producing no
// entries at all is an EmptyResultError.
func Collect(ctx context.Context, m SizeMeasurer, opt Options) (*Result, error) {
	log := logger{enabled: opt.Debug}

	if len(opt.Paths) == 0 {
		opt.Paths = []string{"."}
	}

	qualify := len(opt.Paths) > 1

	res := &Result{
		Sizes: make(map[string]int64),
		Dirs:  make(map[string]bool),
	}
	if opt.WithMTimes {
		res.MTimes = make(map[string]time.Time)
	}

	for _, root := range opt.Paths {
		root = filepath.Clean(root)

		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("accessing path %q: %w", root, err)
		}

		var targets []string

		isDir := make(map[string]bool)

		if info.IsDir() {
			children, err := os.ReadDir(root)
			if err != nil {
				return nil, fmt.Errorf("reading directory %q: %w", root, err)
			}

			for _, child := range children {
				target := filepath.Join(root, child.Name())
				targets = append(targets, target)
				isDir[target] = child.IsDir()
			}
		} else {
			targets = []string{root}
		}

		if len(targets) == 0 {
			log.printf("[debug]: nothing to measure under %s\n", root)

			continue
		}

		oneFS := !opt.CrossFilesystems
		log.printf("[debug]: measuring %d entries under %s (one filesystem: %v)\n",
			len(targets), root, oneFS)

		entries, err := m.Measure(ctx, targets, oneFS)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: measuring %s: %v\n", root, err)
		}

		for _, entry := range entries {
			name := entry.Name
			if !qualify {
				name = filepath.Base(name)
			}

			res.Sizes[name] = entry.SizeKB
			res.Dirs[name] = isDir[entry.Name]

			if opt.WithMTimes {
				entryInfo, err := os.Stat(entry.Name)
				if err != nil {
					log.printf("[debug]: stat %s: %v\n", entry.Name, err)

					continue
				}

				res.MTimes[name] = entryInfo.ModTime()
			}
		}
	}

	if len(res.Sizes) == 0 {
		return nil, &errs.EmptyResultError{Paths: opt.Paths}
	}

	keys := make([]string, 0, len(res.Sizes))
	for name := range res.Sizes {
		keys = append(keys, name)
	}

	log.printf("[debug]: collected %d entries: %s\n", len(keys), strings.Join(keys, ", "))

	return res, nil
}
