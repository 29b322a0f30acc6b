//go:build !linux

package fsys

import (
	"io/fs"
	"time"
)

func sysBirthtime(info fs.FileInfo) (time.Time, bool) {
	return time.Time{}, false
}
