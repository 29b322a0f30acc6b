// Package fsys abstracts the filesystem primitives the engine needs, so the
// transfer and execution layers can be tested against an in-memory fake
// instead of real disk I/O.
package fsys

import (
	"io"
	"io/fs"
	"os"
	"sort"
	"time"
)

// FS is the filesystem capability injected into the engine. Implementations
// map OS error codes into errors classifiable by Classify.
type FS interface {
	// Stat returns metadata for the file or directory at path.
	Stat(path string) (fs.FileInfo, error)

	// ReadDir lists the entries directly inside dir, sorted by name.
	ReadDir(dir string) ([]fs.DirEntry, error)

	// Rename atomically moves oldpath to newpath. Fails with a
	// cross-device error when the two reside on different filesystems.
	Rename(oldpath, newpath string) error

	// Open opens the file at path for reading.
	Open(path string) (io.ReadCloser, error)

	// Create creates or truncates the file at path for writing.
	Create(path string) (io.WriteCloser, error)

	// Remove deletes the file at path.
	Remove(path string) error

	// MkdirAll creates the directory at path, including parents.
	MkdirAll(path string) error
}

// OS implements FS over the real filesystem.
type OS struct{}

func (OS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

func (OS) ReadDir(dir string) ([]fs.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	// os.ReadDir already sorts, but the contract matters for reproducible
	// execution order, so keep it explicit.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func (OS) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }

func (OS) Open(path string) (io.ReadCloser, error) { return os.Open(path) }

func (OS) Create(path string) (io.WriteCloser, error) { return os.Create(path) }

func (OS) Remove(path string) error { return os.Remove(path) }

func (OS) MkdirAll(path string) error { return os.MkdirAll(path, 0755) }

// Exists reports whether path exists in fsys. Stat errors other than
// not-found are treated as existing, so callers fail later with a precise
// error instead of silently overwriting.
func Exists(fsys FS, path string) bool {
	_, err := fsys.Stat(path)
	if err == nil {
		return true
	}
	return Classify(err) != KindNotFound
}

// birthtimer is implemented by fakes that track creation time directly.
type birthtimer interface {
	Birthtime() time.Time
}

// Birthtime returns the creation time of a file, falling back to the
// modification time on filesystems that do not record one.
func Birthtime(info fs.FileInfo) time.Time {
	if bt, ok := info.(birthtimer); ok {
		return bt.Birthtime()
	}
	if t, ok := sysBirthtime(info); ok {
		return t
	}
	return info.ModTime()
}
