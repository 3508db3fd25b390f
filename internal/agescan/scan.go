// Package agescan walks a directory tree collecting file sizes and ages
// grouped by owner, the raw material for by-owner usage tables, file lists
// and histograms.
package agescan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/jmeppley/duhist/internal/errs"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

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

// FileRecord describes one regular file collected during a scan.
type FileRecord struct {
	// Size is the file's length in bytes.
	Size int64
	// MTime is the later of the file's modification and change times.
	MTime time.Time
	// Path is the file's path as visited.
	Path string
	// Owner is the resolved owner name, or the numeric id when the
	// identity registry has no entry.
	Owner string
}

// Options configures a tree scan.
type Options struct {
	// Root is the directory to walk.
	Root string
	// Users restricts results to these numeric owner ids.
	Users []string
	// MinAge excludes files younger than this.
	MinAge time.Duration
	// FollowSymlinks follows symbolic links during the walk.
	FollowSymlinks bool
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug enables debug output.
	Debug bool
}

// Result holds everything collected by a scan.
type Result struct {
	// ByOwner groups collected records by resolved owner name.
	ByOwner map[string][]FileRecord
	// OldestMTime is the oldest effective mtime among collected records.
	// Records excluded by the age or owner filters do not move it. Zero
	// when nothing was collected.
	OldestMTime time.Time
	// FileCount is the number of collected records.
	FileCount int64
	// TotalBytes is the cumulative size of collected records.
	TotalBytes int64
	// Skipped counts entries that could not be read.
	Skipped SkipCounts
	// Elapsed is the walk duration.
	Elapsed time.Duration
}

// SkipCounts classifies entries that could not be read during a walk.
type SkipCounts struct {
	// Permission counts entries denied by filesystem permissions.
	Permission int64
	// BrokenLink counts links whose target does not exist.
	BrokenLink int64
	// Other counts every remaining per-entry failure.
	Other int64
}

// Total returns the number of skipped entries across all classes.
func (s SkipCounts) Total() int64 {
	return s.Permission + s.BrokenLink + s.Other
}

// collector aggregates scan results behind a mutex. The walk itself is
// sequential but the progress reporter goroutine reads the counters
// concurrently.
type collector struct {
	mu         sync.Mutex
	byOwner    map[string][]FileRecord
	oldest     time.Time
	fileCount  int64
	totalBytes int64
	skipped    SkipCounts
}

// newCollector creates an empty collector.
func newCollector() *collector {
	return &collector{byOwner: make(map[string][]FileRecord)}
}

// add records a file that passed all filters.
func (c *collector) add(rec FileRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byOwner[rec.Owner] = append(c.byOwner[rec.Owner], rec)
	c.fileCount++
	c.totalBytes += rec.Size

	if c.oldest.IsZero() || rec.MTime.Before(c.oldest) {
		c.oldest = rec.MTime
	}
}

// skip records an unreadable entry under the given class.
func (c *collector) skip(class skipClass) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch class {
	case skipPermission:
		c.skipped.Permission++
	case skipBrokenLink:
		c.skipped.BrokenLink++
	default:
		c.skipped.Other++
	}
}

// counters returns the current file and byte totals.
func (c *collector) counters() (files, bytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.fileCount, c.totalBytes
}

// finalize produces the Result from the collected data.
func (c *collector) finalize() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	return &Result{
		ByOwner:     c.byOwner,
		OldestMTime: c.oldest,
		FileCount:   c.fileCount,
		TotalBytes:  c.totalBytes,
		Skipped:     c.skipped,
	}
}

// skipClass labels why an entry was skipped.
type skipClass int

const (
	skipPermission skipClass = iota
	skipBrokenLink
	skipOther
)

// classifySkip maps a per-entry walk error onto a skip class.
func classifySkip(err error) skipClass {
	switch {
	case os.IsPermission(err):
		return skipPermission
	case os.IsNotExist(err):
		return skipBrokenLink
	default:
		return skipOther
	}
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is
// done.
func startProgressReporter(ctx context.Context, c *collector, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.counters())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Scan walks the directory tree at opt.Root and collects one FileRecord per
// regular file that passes the owner and minimum-age filters. Symbolic
// links are followed only with opt.FollowSymlinks. Unreadable entries are
// counted by class and skipped; they never abort the walk.
//
// The walk can be cancelled via ctx. Progress updates are sent to
// progressHook if provided.
func Scan(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Result, error) {
	log := logger{enabled: opt.Debug}

	if opt.Root == "" {
		opt.Root = "."
	}

	opt.Root = filepath.Clean(opt.Root)

	if opt.MinAge < 0 {
		return nil, &errs.ConfigError{Param: "minimum age", Reason: "cannot be negative"}
	}

	if statInfo, err := os.Stat(opt.Root); err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", opt.Root, err)
	} else if !statInfo.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", opt.Root)
	}

	lookup := newOwnerNames()

	// The allow-list holds numeric ids; resolve them so they compare
	// against resolved owner names.
	var allowed map[string]struct{}

	if len(opt.Users) > 0 {
		allowed = make(map[string]struct{}, len(opt.Users))
		for _, uid := range opt.Users {
			allowed[lookup.name(uid)] = struct{}{}
		}

		log.printf("[debug]: limiting to %d owners\n", len(allowed))
	}

	collector := newCollector()

	// Child context ensures progress reporter cleanup.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, collector, progressHook, opt.ProgressInterval)

	now := time.Now()
	start := now

	// A single worker keeps the traversal sequential.
	conf := &fastwalk.Config{
		Follow:     opt.FollowSymlinks,
		NumWorkers: 1,
	}

	walkErr := fastwalk.Walk(conf, opt.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			collector.skip(classifySkip(err))
			log.printf("[debug]: skipping %s: %v\n", path, err)

			return nil
		}

		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			collector.skip(classifySkip(err))
			log.printf("[debug]: stat %s: %v\n", path, err)

			return nil
		}

		owner := "unknown"
		if uid, ok := statOwner(info); ok {
			owner = lookup.name(strconv.FormatUint(uint64(uid), 10))
		}

		if allowed != nil {
			if _, ok := allowed[owner]; !ok {
				return nil
			}
		}

		mtime := info.ModTime()
		if ctime, ok := changeTime(info); ok && ctime.After(mtime) {
			mtime = ctime
		}

		if now.Sub(mtime) < opt.MinAge {
			return nil
		}

		collector.add(FileRecord{
			Size:  info.Size(),
			MTime: mtime,
			Path:  path,
			Owner: owner,
		})

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	res := collector.finalize()
	res.Elapsed = time.Since(start)

	log.printf("[debug]: found files for %d owners, skipped %d entries\n",
		len(res.ByOwner), res.Skipped.Total())

	return res, nil
}
