package vfs

import (
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"syscall"
)

// MemFS implements FS in memory. Paths are slash-separated and rooted
// at "/"; relative paths are taken from the root.
//
// MemFS is safe for concurrent use.
type MemFS struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool
}

// NewMemFS creates a new in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{
		files: make(map[string][]byte),
		dirs:  map[string]bool{"/": true},
	}
}

var _ FS = (*MemFS)(nil)

// ReadFile reads the entire file content.
func (m *MemFS) ReadFile(filePath string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = cleanPath(filePath)
	f, ok := m.files[filePath]
	if !ok {
		if m.dirs[filePath] {
			return nil, &fs.PathError{Op: "read", Path: filePath, Err: syscall.EISDIR}
		}
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), f...), nil
}

// WriteFile writes data to a file, creating it if necessary. The parent
// directory must exist.
func (m *MemFS) WriteFile(filePath string, data []byte, _ fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = cleanPath(filePath)
	if m.dirs[filePath] {
		return &fs.PathError{Op: "write", Path: filePath, Err: syscall.EISDIR}
	}
	if dir := path.Dir(filePath); !m.dirs[dir] {
		return &fs.PathError{Op: "write", Path: filePath, Err: fs.ErrNotExist}
	}
	m.files[filePath] = append([]byte(nil), data...)
	return nil
}

func (m *MemFS) Stat(filePath string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = cleanPath(filePath)
	if e, ok := m.entry(filePath, path.Base(filePath)); ok {
		return e, nil
	}
	return Entry{}, &fs.PathError{Op: "stat", Path: filePath, Err: fs.ErrNotExist}
}

func (m *MemFS) entry(p, name string) (Entry, bool) {
	if f, ok := m.files[p]; ok {
		return Entry{Path: p, Name: name, Size: int64(len(f))}, true
	}
	if m.dirs[p] {
		return Entry{Path: p, Name: name, Dir: true}, true
	}
	return Entry{}, false
}

func (m *MemFS) ReadDir(dirPath string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dirPath = cleanPath(dirPath)
	if !m.dirs[dirPath] {
		if _, ok := m.files[dirPath]; ok {
			return nil, &fs.PathError{Op: "readdir", Path: dirPath, Err: syscall.ENOTDIR}
		}
		return nil, &fs.PathError{Op: "readdir", Path: dirPath, Err: fs.ErrNotExist}
	}

	prefix := dirPath
	if prefix != "/" {
		prefix += "/"
	}
	child := func(p string) (string, bool) {
		rest, ok := strings.CutPrefix(p, prefix)
		return rest, ok && rest != "" && !strings.Contains(rest, "/")
	}

	var entries []Entry
	add := func(p string) {
		if name, ok := child(p); ok {
			e, _ := m.entry(p, name)
			entries = append(entries, e)
		}
	}
	for p := range m.files {
		add(p)
	}
	for p := range m.dirs {
		add(p)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Abs returns the cleaned rooted path.
func (m *MemFS) Abs(filePath string) (string, error) {
	return cleanPath(filePath), nil
}

// MkdirAll creates a directory and all parent directories.
func (m *MemFS) MkdirAll(dirPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := ""
	for _, part := range strings.Split(strings.Trim(cleanPath(dirPath), "/"), "/") {
		if part == "" {
			continue
		}
		current += "/" + part
		if _, ok := m.files[current]; ok {
			return &fs.PathError{Op: "mkdir", Path: current, Err: syscall.ENOTDIR}
		}
		m.dirs[current] = true
	}
	return nil
}

// AddFile is a convenience method for adding files during setup.
func (m *MemFS) AddFile(filePath, content string) error {
	if err := m.MkdirAll(path.Dir(cleanPath(filePath))); err != nil {
		return err
	}
	return m.WriteFile(filePath, []byte(content), DefaultFileMode)
}

func cleanPath(p string) string {
	p = path.Clean(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
