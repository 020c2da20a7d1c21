// Package cache persists named JSON documents between runs.
//
// A document is looked up by name only; presence is the sole freshness
// signal and nothing expires. Two backends are provided: DirStore keeps one
// {name}.json file per document and BoltStore keeps every document in a
// single bbolt database.
package cache

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for common cache conditions.
var (
	// ErrInvalidKey indicates a document name that cannot be stored.
	ErrInvalidKey = errors.New("cache: invalid key")
	// ErrStorageCorrupt indicates a stored document could not be decoded.
	ErrStorageCorrupt = errors.New("cache: data corruption detected")
	// ErrLockTimeout indicates another process holds the cache lock.
	ErrLockTimeout = errors.New("cache: lock acquisition timeout")
	// ErrUnknownBackend indicates an unsupported backend name.
	ErrUnknownBackend = errors.New("cache: unknown backend")
)

// StorageError wraps cache errors with operation and key context.
type StorageError struct {
	// Op is the operation that failed ("load", "save", "list", "open").
	Op string
	// Key is the document name if applicable.
	Key string
	// Err is the underlying error that occurred.
	Err error
}

// Error returns a string representation of the storage error.
func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("cache: %s %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("cache: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *StorageError) Unwrap() error { return e.Err }

// Store loads and saves named JSON documents.
type Store interface {
	// Load decodes the document called name into v. It reports false with a
	// nil error when no such document exists.
	Load(name string, v any) (bool, error)
	// Save encodes v as the document called name, replacing any previous one.
	Save(name string, v any) error
	// Close releases any resources held by the store.
	Close() error
}

// Entry describes one stored document.
type Entry struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time,omitzero"`
}

// Lister is implemented by stores that can enumerate their documents.
type Lister interface {
	Entries() ([]Entry, error)
}

// Backend names accepted by Open.
const (
	BackendDir  = "dir"
	BackendBolt = "bolt"
)

// Open opens the store for backend rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendDir:
		return OpenDir(dir)
	case BackendBolt:
		return OpenBolt(dir)
	default:
		return nil, &StorageError{Op: "open", Err: fmt.Errorf("%w: %q", ErrUnknownBackend, backend)}
	}
}

func validateKey(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, name)
	}
	return nil
}
