// Package atomicfile replaces files so that readers see either the old
// content or the new one, never a partial write.
package atomicfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Writer stages content in a uniquely named temporary file next to the
// target. Commit renames it into place; Abort removes it.
type Writer struct {
	path string
	perm os.FileMode
	tmp  *os.File
	done bool
}

// Create opens a Writer for path, creating the parent directory if needed.
// The committed file gets mode perm.
func Create(path string, perm os.FileMode) (*Writer, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	return &Writer{path: path, perm: perm, tmp: tmp}, nil
}

// Write writes to the temporary file.
func (w *Writer) Write(p []byte) (int, error) {
	return w.tmp.Write(p)
}

// Commit flushes the temporary file to disk and renames it over the target.
// On failure the temporary file is removed and the target is untouched.
func (w *Writer) Commit() error {
	if w.done {
		return nil
	}
	w.done = true

	if err := w.finish(); err != nil {
		w.tmp.Close()
		os.Remove(w.tmp.Name())
		return err
	}
	return nil
}

func (w *Writer) finish() error {
	if err := w.tmp.Chmod(w.perm); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := w.tmp.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if err := w.tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(w.tmp.Name(), w.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Abort discards the temporary file. It is a no-op after Commit.
func (w *Writer) Abort() error {
	if w.done {
		return nil
	}
	w.done = true
	w.tmp.Close()
	return os.Remove(w.tmp.Name())
}

// WriteFile replaces path with whatever write produces. If write fails the
// target is left as it was.
func WriteFile(path string, perm os.FileMode, write func(io.Writer) error) error {
	w, err := Create(path, perm)
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		w.Abort()
		return err
	}
	return w.Commit()
}
