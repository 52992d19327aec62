package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	boltBucket = []byte("taskdata")
	boltKey    = []byte("snapshot")
)

// BoltBackend keeps the snapshot under a single key in a bbolt
// database, the key-value equivalent of the browser local-storage
// transport.
type BoltBackend struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the database file at path.
func OpenBolt(path string) (*BoltBackend, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &BoltBackend{db: db}, nil
}

// Close releases the database file.
func (b *BoltBackend) Close() error {
	return b.db.Close()
}

func (b *BoltBackend) Load() ([]byte, bool, error) {
	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(boltBucket)
		if bucket == nil {
			return nil
		}
		if v := bucket.Get(boltKey); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot: %w", err)
	}
	return data, data != nil, nil
}

func (b *BoltBackend) Save(data []byte) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(boltBucket)
		if err != nil {
			return err
		}
		return bucket.Put(boltKey, data)
	})
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
