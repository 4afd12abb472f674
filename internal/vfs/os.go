package vfs

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// OSFS is the operating system's file system.
type OSFS struct{}

// NewOSFS returns the operating system file system.
func NewOSFS() *OSFS {
	return &OSFS{}
}

var _ FS = (*OSFS)(nil)

func (*OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (*OSFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (*OSFS) Stat(path string) (Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Entry{}, err
	}
	return entryOf(path, info), nil
}

// ReadDir lists a directory. Entries that vanish or cannot be stat'd
// while listing are left out.
func (*OSFS) ReadDir(path string) ([]Entry, error) {
	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		info, err := d.Info()
		if err != nil {
			continue
		}
		entries = append(entries, entryOf(filepath.Join(path, d.Name()), info))
	}
	slices.SortFunc(entries, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
	return entries, nil
}

func (*OSFS) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

func entryOf(path string, info fs.FileInfo) Entry {
	e := Entry{Path: path, Name: info.Name(), Dir: info.IsDir()}
	if !e.Dir {
		e.Size = info.Size()
	}
	return e
}
