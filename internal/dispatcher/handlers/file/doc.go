// Package file provides handlers for file operations.
//
// open reads a file through a vfs.FS into a new buffer and makes a view
// over it active. write saves the active buffer, re-encoding it the way
// it was read. file-tree lists a directory in a buffer whose view is in
// file-tree mode, and file-tree-open opens the entry under the cursor.
package file
