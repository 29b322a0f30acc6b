package fsys

import (
	"fmt"
	"io/fs"
	"syscall"

	"gitlab.com/tozd/go/errors"
)

// Kind classifies a filesystem error for user-facing messaging. Cross-device
// is an internal signal consumed by the transfer fallback, not shown to
// users.
type Kind int

const (
	KindOther Kind = iota
	KindNotFound
	KindPermission
	KindDiskFull
	KindCrossDevice
)

// String returns a string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindPermission:
		return "permission_denied"
	case KindDiskFull:
		return "disk_full"
	case KindCrossDevice:
		return "cross_device"
	default:
		return "io_other"
	}
}

// Classify maps an OS error into the engine's error taxonomy.
func Classify(err error) Kind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermission
	case errors.Is(err, syscall.ENOSPC):
		return KindDiskFull
	case errors.Is(err, syscall.EXDEV):
		return KindCrossDevice
	default:
		return KindOther
	}
}

// IsCrossDevice reports whether err means source and destination are on
// different filesystems, precluding an atomic rename.
func IsCrossDevice(err error) bool {
	return Classify(err) == KindCrossDevice
}

// Reason formats an error for user display according to its kind.
func Reason(err error) string {
	switch Classify(err) {
	case KindPermission:
		return fmt.Sprintf("Permission denied: %v", err)
	case KindDiskFull:
		return fmt.Sprintf("Disk full: %v", err)
	case KindNotFound:
		return fmt.Sprintf("File not found: %v", err)
	case KindCrossDevice:
		return fmt.Sprintf("Cross-device operation failed: %v", err)
	default:
		return fmt.Sprintf("Operation failed: %v", err)
	}
}
