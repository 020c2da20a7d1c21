package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"ytcatalog/internal/atomicfile"
)

const (
	lockFileName = ".ytcatalog.lock"
	lockTimeout  = 5 * time.Second
	lockRetry    = 50 * time.Millisecond
	documentExt  = ".json"
)

// DirStore keeps each document in {dir}/{name}.json.
//
// The directory is locked for the lifetime of the store so that two
// processes never write the same cache.
type DirStore struct {
	dir  string
	lock *flock.Flock
}

// OpenDir creates dir if needed and acquires its lock.
func OpenDir(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}

	lock := flock.New(filepath.Join(dir, lockFileName))
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, lockRetry)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, &StorageError{Op: "open", Err: fmt.Errorf("lock %s: %w", dir, err)}
	}
	if !locked {
		return nil, &StorageError{Op: "open", Err: ErrLockTimeout}
	}

	return &DirStore{dir: dir, lock: lock}, nil
}

func (s *DirStore) path(name string) string {
	return filepath.Join(s.dir, name+documentExt)
}

// Load decodes {dir}/{name}.json into v.
func (s *DirStore) Load(name string, v any) (bool, error) {
	if err := validateKey(name); err != nil {
		return false, &StorageError{Op: "load", Key: name, Err: err}
	}

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, &StorageError{Op: "load", Key: name, Err: err}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, &StorageError{Op: "load", Key: name, Err: fmt.Errorf("%w: %v", ErrStorageCorrupt, err)}
	}
	return true, nil
}

// Save writes v to {dir}/{name}.json atomically.
func (s *DirStore) Save(name string, v any) error {
	if err := validateKey(name); err != nil {
		return &StorageError{Op: "save", Key: name, Err: err}
	}

	err := atomicfile.WriteFile(s.path(name), 0644, func(w io.Writer) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	})
	if err != nil {
		return &StorageError{Op: "save", Key: name, Err: err}
	}
	return nil
}

// Entries lists the cached documents sorted by name.
func (s *DirStore) Entries() ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}

	var entries []Entry
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !strings.HasSuffix(name, documentExt) || strings.HasPrefix(name, ".") {
			continue
		}
		info, err := de.Info()
		if err != nil {
			return nil, &StorageError{Op: "list", Key: name, Err: err}
		}
		entries = append(entries, Entry{
			Name:    strings.TrimSuffix(name, documentExt),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Close releases the directory lock.
func (s *DirStore) Close() error {
	return s.lock.Unlock()
}
