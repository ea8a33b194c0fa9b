// Package history keeps a local log of issued queries for the interactive
// CLI. The query pipeline itself stays stateless; nothing here feeds back
// into answering.
package history

import (
	"encoding/json"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/clipsight/clipsight/pkg/logger"
)

var bucketName = []byte("queries")

// Record is one logged query and its outcome
type Record struct {
	ID      string    `json:"id"`
	Query   string    `json:"query"`
	Intent  string    `json:"intent"`
	Success bool      `json:"success"`
	VideoID string    `json:"video_id,omitempty"`
	AskedAt time.Time `json:"asked_at"`
}

// Store provides persistent query history using BBolt
type Store struct {
	db *bbolt.DB
}

// NewStore opens (or creates) the history database at the given path
func NewStore(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("history store initialized", zap.String("path", path))
	return &Store{db: db}, nil
}

// Append saves one record. Keys are the asked-at time, so iteration
// order is chronological.
func (s *Store) Append(rec Record) error {
	if rec.AskedAt.IsZero() {
		rec.AskedAt = time.Now().UTC()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	key := []byte(rec.AskedAt.UTC().Format(time.RFC3339Nano) + "/" + rec.ID)
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		return b.Put(key, data)
	})
}

// Recent returns up to n records, newest first
func (s *Store) Recent(n int) ([]Record, error) {
	var records []Record

	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketName).Cursor()
		for k, v := c.Last(); k != nil && len(records) < n; k, v = c.Prev() {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Clear removes all history records
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketName); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
