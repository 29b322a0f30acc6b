//go:build linux

package fsys

import (
	"io/fs"
	"syscall"
	"time"
)

// sysBirthtime approximates the creation time from the inode change time.
// Linux does not expose a portable birth time through os.Stat.
func sysBirthtime(info fs.FileInfo) (time.Time, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(st.Ctim.Sec, st.Ctim.Nsec), true
}
