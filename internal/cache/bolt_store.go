package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
)

const boltFileName = "ytcatalog.db"

var bucketDocuments = []byte("documents")

// BoltStore keeps every document in {dir}/ytcatalog.db under the same names
// DirStore uses. bbolt's own file lock keeps a second process out.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens or creates the database in dir.
func OpenBolt(dir string) (*BoltStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}

	db, err := bolt.Open(filepath.Join(dir, boltFileName), 0600, &bolt.Options{Timeout: lockTimeout})
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, &StorageError{Op: "open", Err: ErrLockTimeout}
		}
		return nil, &StorageError{Op: "open", Err: fmt.Errorf("open bolt db: %w", err)}
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDocuments)
		return err
	})
	if err != nil {
		db.Close()
		return nil, &StorageError{Op: "open", Err: err}
	}

	return &BoltStore{db: db}, nil
}

// Load decodes the named document into v.
func (s *BoltStore) Load(name string, v any) (bool, error) {
	if err := validateKey(name); err != nil {
		return false, &StorageError{Op: "load", Key: name, Err: err}
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if raw := tx.Bucket(bucketDocuments).Get([]byte(name)); raw != nil {
			// raw is only valid inside the transaction.
			data = append([]byte(nil), raw...)
		}
		return nil
	})
	if err != nil {
		return false, &StorageError{Op: "load", Key: name, Err: err}
	}
	if data == nil {
		return false, nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, &StorageError{Op: "load", Key: name, Err: fmt.Errorf("%w: %v", ErrStorageCorrupt, err)}
	}
	return true, nil
}

// Save stores v under name.
func (s *BoltStore) Save(name string, v any) error {
	if err := validateKey(name); err != nil {
		return &StorageError{Op: "save", Key: name, Err: err}
	}

	data, err := json.Marshal(v)
	if err != nil {
		return &StorageError{Op: "save", Key: name, Err: err}
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDocuments).Put([]byte(name), data)
	})
	if err != nil {
		return &StorageError{Op: "save", Key: name, Err: err}
	}
	return nil
}

// Entries lists the stored documents in key order. ModTime is left zero.
func (s *BoltStore) Entries() ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDocuments).ForEach(func(k, v []byte) error {
			entries = append(entries, Entry{Name: string(k), Size: int64(len(v))})
			return nil
		})
	})
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return entries, nil
}

// Close closes the database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

