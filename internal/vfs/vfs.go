// Package vfs provides the filesystem abstraction the editor reads and
// writes files through.
//
// OSFS is backed by the operating system. MemFS keeps everything in
// memory and is used by tests and scratch sessions.
package vfs

import "io/fs"

// FS is the file access the editor needs.
type FS interface {
	ReadFile(path string) ([]byte, error)

	// WriteFile creates or truncates the file at path.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Stat describes the file or directory at path.
	Stat(path string) (Entry, error)

	// ReadDir lists a directory, sorted by name.
	ReadDir(path string) ([]Entry, error)

	// Abs returns the absolute form of path.
	Abs(path string) (string, error)
}

// DefaultFileMode is the mode new files are created with.
const DefaultFileMode fs.FileMode = 0o644

// Entry describes a file or directory.
type Entry struct {
	Path string
	Name string
	Size int64 // zero for directories
	Dir  bool
}
