//go:build linux

package agescan

import (
	"io/fs"
	"syscall"
	"time"
)

// statOwner returns the numeric owner id of info's file.
func statOwner(info fs.FileInfo) (uint32, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, false
	}

	return st.Uid, true
}

// changeTime returns the inode change time of info's file.
func changeTime(info fs.FileInfo) (time.Time, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, false
	}

	return time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec)), true
}
