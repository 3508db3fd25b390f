package usage

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// Entry is one line of size-measurement output: an allocation size in
// kilobytes and the measured name.
type Entry struct {
	// SizeKB is the allocated size in kilobytes.
	SizeKB int64
	// Name is the measured path as reported by the measurer.
	Name string
}

// SizeMeasurer measures per-entry disk usage in kilobytes for a set of
// paths without descending into directories.
type SizeMeasurer interface {
	// Measure returns one Entry per path. It may return entries together
	// with a non-nil *MeasurementWarning; the entries remain usable.
	Measure(ctx context.Context, paths []string, oneFilesystem bool) ([]Entry, error)
}

// MeasurementWarning reports a size-measurement run that complained on
// stderr or exited non-zero but may still have produced usable output.
type MeasurementWarning struct {
	// Stderr holds the tool's error output, trimmed.
	Stderr string
	// Err is the underlying process error, if any.
	Err error
}

// Error implements the error interface.
func (w *MeasurementWarning) Error() string {
	switch {
	case w.Err != nil && w.Stderr != "":
		return fmt.Sprintf("%v: %s", w.Err, w.Stderr)
	case w.Err != nil:
		return w.Err.Error()
	default:
		return w.Stderr
	}
}

// Unwrap returns the underlying process error.
func (w *MeasurementWarning) Unwrap() error { return w.Err }

// DU measures disk usage by running the du utility at depth zero with
// kilobyte units.
type DU struct {
	// Binary overrides the executable name. Empty means "du".
	Binary string
}

// Measure runs du over paths and parses its line-oriented output. With
// oneFilesystem it passes -x so the measurement does not cross mount
// points.
func (d DU) Measure(ctx context.Context, paths []string, oneFilesystem bool) ([]Entry, error) {
	binary := d.Binary
	if binary == "" {
		binary = "du"
	}

	args := []string{"-d", "0", "-k"}
	if oneFilesystem {
		args = append(args, "-x")
	}

	args = append(args, paths...)

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	entries := parseEntries(&stdout)

	if runErr != nil || stderr.Len() > 0 {
		return entries, &MeasurementWarning{
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    runErr,
		}
	}

	return entries, nil
}

// parseEntries reads whitespace-separated (size, name) pairs, one per line.
// The name is the remainder of the line and may itself contain whitespace.
// Malformed lines are dropped.
func parseEntries(r io.Reader) []Entry {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")

		i := strings.IndexAny(line, " \t")
		if i < 0 {
			continue
		}

		size, err := strconv.ParseInt(line[:i], 10, 64)
		if err != nil || size < 0 {
			continue
		}

		name := strings.TrimLeft(line[i:], " \t")
		if name == "" {
			continue
		}

		entries = append(entries, Entry{SizeKB: size, Name: name})
	}

	return entries
}
