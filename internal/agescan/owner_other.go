//go:build !linux && !darwin

package agescan

import (
	"io/fs"
	"time"
)

// statOwner is unavailable on platforms without unix stat fields; files
// fall back to the "unknown" owner.
func statOwner(fs.FileInfo) (uint32, bool) {
	return 0, false
}

// changeTime is unavailable on platforms without unix stat fields; the
// modification time stands alone.
func changeTime(fs.FileInfo) (time.Time, bool) {
	return time.Time{}, false
}
