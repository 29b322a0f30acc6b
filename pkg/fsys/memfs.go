package fsys

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemFS is an in-memory FS for deterministic tests. Fault injection fields
// let tests force the error paths the real filesystem only produces under
// rare conditions (cross-device renames, short writes, full disks).
type MemFS struct {
	mu    sync.Mutex
	files map[string]*memFile
	dirs  map[string]bool

	// RenameErr, when set, causes every Rename to fail with this error.
	// Set it to syscall.EXDEV to exercise the cross-device fallback.
	RenameErr error

	// CreateErr fails Create for specific paths.
	CreateErr map[string]error

	// RemoveErr fails Remove for specific paths.
	RemoveErr map[string]error

	// MkdirErr fails MkdirAll for specific paths.
	MkdirErr map[string]error

	// TruncateWrites drops this many trailing bytes from every written
	// file, simulating an interrupted copy.
	TruncateWrites int
}

type memFile struct {
	data     []byte
	created  time.Time
	modified time.Time
}

// NewMemFS returns an empty in-memory filesystem with a root directory.
func NewMemFS() *MemFS {
	return &MemFS{
		files: make(map[string]*memFile),
		dirs:  map[string]bool{"/": true},
	}
}

func norm(p string) string {
	p = filepath.ToSlash(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Seed writes a file, creating parent directories implicitly.
func (m *MemFS) Seed(p string, data []byte) {
	now := time.Now()
	m.SeedWithTimes(p, data, now, now)
}

// SeedWithTimes writes a file with explicit creation and modification times.
func (m *MemFS) SeedWithTimes(p string, data []byte, created, modified time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = norm(p)
	m.mkdirAllLocked(path.Dir(p))
	m.files[p] = &memFile{data: append([]byte(nil), data...), created: created, modified: modified}
}

// Content returns the raw bytes of a file, for test assertions.
func (m *MemFS) Content(p string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[norm(p)]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), f.data...), true
}

func (m *MemFS) mkdirAllLocked(dir string) {
	for d := norm(dir); ; d = path.Dir(d) {
		m.dirs[d] = true
		if d == "/" {
			break
		}
	}
}

func (m *MemFS) Stat(p string) (fs.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = norm(p)
	if f, ok := m.files[p]; ok {
		return &memFileInfo{name: path.Base(p), size: int64(len(f.data)), created: f.created, modified: f.modified}, nil
	}
	if m.dirs[p] {
		return &memFileInfo{name: path.Base(p), dir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
}

func (m *MemFS) ReadDir(dir string) ([]fs.DirEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dir = norm(dir)
	if !m.dirs[dir] {
		return nil, &fs.PathError{Op: "readdir", Path: dir, Err: fs.ErrNotExist}
	}

	seen := map[string]fs.DirEntry{}
	for p, f := range m.files {
		if path.Dir(p) == dir {
			name := path.Base(p)
			seen[name] = &memDirEntry{info: &memFileInfo{name: name, size: int64(len(f.data)), created: f.created, modified: f.modified}}
		}
	}
	for d := range m.dirs {
		if d != dir && path.Dir(d) == dir {
			name := path.Base(d)
			seen[name] = &memDirEntry{info: &memFileInfo{name: name, dir: true}}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]fs.DirEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, seen[name])
	}
	return entries, nil
}

func (m *MemFS) Rename(oldpath, newpath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	oldpath, newpath = norm(oldpath), norm(newpath)
	if m.RenameErr != nil {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: m.RenameErr}
	}
	f, ok := m.files[oldpath]
	if !ok {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: fs.ErrNotExist}
	}
	if !m.dirs[path.Dir(newpath)] {
		return &fs.PathError{Op: "rename", Path: newpath, Err: fs.ErrNotExist}
	}
	delete(m.files, oldpath)
	m.files[newpath] = f
	return nil
}

func (m *MemFS) Open(p string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = norm(p)
	f, ok := m.files[p]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(append([]byte(nil), f.data...))), nil
}

func (m *MemFS) Create(p string) (io.WriteCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = norm(p)
	if err := m.CreateErr[p]; err != nil {
		return nil, &fs.PathError{Op: "create", Path: p, Err: err}
	}
	if !m.dirs[path.Dir(p)] {
		return nil, &fs.PathError{Op: "create", Path: p, Err: fs.ErrNotExist}
	}
	// Visible immediately as an empty file, like a real Create.
	now := time.Now()
	m.files[p] = &memFile{created: now, modified: now}
	return &memWriter{fs: m, path: p}, nil
}

func (m *MemFS) Remove(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = norm(p)
	if err := m.RemoveErr[p]; err != nil {
		return &fs.PathError{Op: "remove", Path: p, Err: err}
	}
	if _, ok := m.files[p]; !ok {
		return &fs.PathError{Op: "remove", Path: p, Err: fs.ErrNotExist}
	}
	delete(m.files, p)
	return nil
}

func (m *MemFS) MkdirAll(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = norm(p)
	if err := m.MkdirErr[p]; err != nil {
		return &fs.PathError{Op: "mkdir", Path: p, Err: err}
	}
	m.mkdirAllLocked(p)
	return nil
}

// memWriter buffers writes and commits them on Close.
type memWriter struct {
	fs   *MemFS
	path string
	buf  bytes.Buffer
}

func (w *memWriter) Write(p []byte) (int, error) { return w.buf.Write(p) }

func (w *memWriter) Close() error {
	w.fs.mu.Lock()
	defer w.fs.mu.Unlock()
	data := w.buf.Bytes()
	if n := w.fs.TruncateWrites; n > 0 && n < len(data) {
		data = data[:len(data)-n]
	}
	now := time.Now()
	w.fs.files[w.path] = &memFile{data: append([]byte(nil), data...), created: now, modified: now}
	return nil
}

type memFileInfo struct {
	name     string
	size     int64
	dir      bool
	created  time.Time
	modified time.Time
}

func (i *memFileInfo) Name() string       { return i.name }
func (i *memFileInfo) Size() int64        { return i.size }
func (i *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (i *memFileInfo) ModTime() time.Time { return i.modified }
func (i *memFileInfo) IsDir() bool        { return i.dir }
func (i *memFileInfo) Sys() any           { return nil }

// Birthtime implements the fsys birthtime hook for created-time filters.
func (i *memFileInfo) Birthtime() time.Time { return i.created }

type memDirEntry struct {
	info *memFileInfo
}

func (e *memDirEntry) Name() string               { return e.info.name }
func (e *memDirEntry) IsDir() bool                { return e.info.dir }
func (e *memDirEntry) Type() fs.FileMode          { return e.info.Mode().Type() }
func (e *memDirEntry) Info() (fs.FileInfo, error) { return e.info, nil }
