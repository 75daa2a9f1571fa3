package boltstore

import (
	"fmt"
	"strings"

	bbolt "go.etcd.io/bbolt"

	"github.com/crystal-mush/mudbits/pkg/gamedb"
)

// Store wraps a bbolt database and an in-memory cache for ACID persistence.
type Store struct {
	bolt  *bbolt.DB
	cache *gamedb.Database
}

// Open opens or creates a bbolt database file and ensures all buckets exist.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("boltstore: open %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketMeta, bucketObjects, bucketChannels} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("boltstore: create buckets: %w", err)
	}

	return &Store{
		bolt:  db,
		cache: gamedb.NewDatabase(),
	}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	if s.bolt != nil {
		return s.bolt.Close()
	}
	return nil
}

// DB returns the in-memory database cache.
func (s *Store) DB() *gamedb.Database {
	return s.cache
}

// Path returns the filesystem path of the underlying bbolt database.
func (s *Store) Path() string {
	if s.bolt != nil {
		return s.bolt.Path()
	}
	return ""
}

// Snapshot writes a consistent copy of the bbolt database to destPath,
// safe to call while the store is live.
func (s *Store) Snapshot(destPath string) error {
	return s.bolt.View(func(tx *bbolt.Tx) error {
		return tx.CopyFile(destPath, 0600)
	})
}

// PutObject persists a single object to bbolt (write-through).
func (s *Store) PutObject(obj *gamedb.Object) error {
	data, err := encodeObject(obj)
	if err != nil {
		return fmt.Errorf("boltstore: encode object #%d: %w", obj.Ref, err)
	}
	return s.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketObjects).Put(refToKey(obj.Ref), data)
	})
}

// PutObjects persists multiple objects in a single bbolt transaction.
func (s *Store) PutObjects(objs ...*gamedb.Object) error {
	return s.bolt.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketObjects)
		for _, obj := range objs {
			if obj == nil {
				continue
			}
			data, err := encodeObject(obj)
			if err != nil {
				return fmt.Errorf("boltstore: encode object #%d: %w", obj.Ref, err)
			}
			if err := b.Put(refToKey(obj.Ref), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteObject removes an object from bbolt.
func (s *Store) DeleteObject(ref gamedb.DBRef) error {
	return s.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketObjects).Delete(refToKey(ref))
	})
}

// PutChannel persists a channel definition.
func (s *Store) PutChannel(ch *gamedb.Channel) error {
	data, err := encodeChannel(ch)
	if err != nil {
		return fmt.Errorf("boltstore: encode channel %q: %w", ch.Name, err)
	}
	return s.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketChannels).Put([]byte(strings.ToLower(ch.Name)), data)
	})
}

// DeleteChannel removes a channel definition.
func (s *Store) DeleteChannel(name string) error {
	return s.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketChannels).Delete([]byte(strings.ToLower(name)))
	})
}

// PutMeta persists database metadata.
func (s *Store) PutMeta() error {
	return s.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketMeta).Put(keyNextRef, intToKey(int(s.cache.NextRef)))
	})
}

// ImportFromDatabase bulk-loads an in-memory Database into bbolt, batching
// objects per transaction.
func (s *Store) ImportFromDatabase(db *gamedb.Database) error {
	s.cache = db

	if err := s.PutMeta(); err != nil {
		return fmt.Errorf("boltstore: import meta: %w", err)
	}

	err := s.bolt.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketChannels)
		for _, ch := range db.Channels {
			data, err := encodeChannel(ch)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(strings.ToLower(ch.Name)), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("boltstore: import channels: %w", err)
	}

	const batchSize = 1000
	batch := make([]*gamedb.Object, 0, batchSize)
	for _, obj := range db.Objects {
		batch = append(batch, obj)
		if len(batch) == batchSize {
			if err := s.PutObjects(batch...); err != nil {
				return fmt.Errorf("boltstore: import objects: %w", err)
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := s.PutObjects(batch...); err != nil {
			return fmt.Errorf("boltstore: import objects: %w", err)
		}
	}
	return nil
}

// Load reads the entire bbolt database into the in-memory cache.
func (s *Store) Load() error {
	db := gamedb.NewDatabase()

	err := s.bolt.View(func(tx *bbolt.Tx) error {
		if data := tx.Bucket(bucketMeta).Get(keyNextRef); data != nil {
			db.NextRef = gamedb.DBRef(keyToInt(data))
		}

		err := tx.Bucket(bucketObjects).ForEach(func(k, v []byte) error {
			obj, err := decodeObject(v)
			if err != nil {
				return fmt.Errorf("decode object #%d: %w", keyToRef(k), err)
			}
			db.Objects[obj.Ref] = obj
			return nil
		})
		if err != nil {
			return err
		}

		return tx.Bucket(bucketChannels).ForEach(func(k, v []byte) error {
			ch, err := decodeChannel(v)
			if err != nil {
				return fmt.Errorf("decode channel %q: %w", string(k), err)
			}
			db.Channels[strings.ToLower(ch.Name)] = ch
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("boltstore: load: %w", err)
	}

	// Repair NextRef if meta was missing or stale.
	for ref := range db.Objects {
		if ref >= db.NextRef {
			db.NextRef = ref + 1
		}
	}

	s.cache = db
	return nil
}
