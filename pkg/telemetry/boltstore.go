package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var metricsBucket = []byte("reconcile_metrics")
var sequenceBucket = []byte("reconcile_metrics_seq")

// BoltStore records reconcile metrics into an embedded bbolt database.
// Grounded on internal/storage/bbolt_store.go's BoltStore: a sequence
// bucket feeding monotonic row IDs, JSON-encoded row values, reverse
// cursor scan for "recent N".
type BoltStore struct {
	db *bbolt.DB
}

// OpenBoltStore opens (creating if absent) a bbolt-backed Recorder at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("telemetry: open bbolt: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(metricsBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(sequenceBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("telemetry: init buckets: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Record implements Recorder.
func (s *BoltStore) Record(ctx context.Context, row Row) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(metricsBucket)
		seq := tx.Bucket(sequenceBucket)

		id, err := seq.NextSequence()
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}
		row.ID = int64(id)
		if row.Timestamp.IsZero() {
			row.Timestamp = time.Now()
		}

		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("encode row: %w", err)
		}
		return b.Put(rowKey(row.ID), data)
	})
}

// Recent implements Recorder, returning up to limit rows newest-first.
func (s *BoltStore) Recent(ctx context.Context, limit int) ([]Row, error) {
	var rows []Row
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(metricsBucket)
		c := b.Cursor()
		for k, v := c.Last(); k != nil && len(rows) < limit; k, v = c.Prev() {
			var row Row
			if err := json.Unmarshal(v, &row); err != nil {
				return fmt.Errorf("decode row: %w", err)
			}
			rows = append(rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("telemetry: recent: %w", err)
	}
	return rows, nil
}

// Close implements Recorder.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func rowKey(id int64) []byte {
	return []byte(fmt.Sprintf("%020d", id))
}
