package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/boltdb/bolt"

	"github.com/threatlens/threatlens/internal/models"
)

var reportsBucket = []byte("reports")

// BoltStore persists reports in a BoltDB file. Keys are big-endian
// encoded ids, so a cursor walks rows in id order and the bucket sequence
// provides the strictly-increasing id counter. Bolt serializes write
// transactions, which is what makes concurrent saves safe.
type BoltStore struct {
	db *bolt.DB
}

// Ensure BoltStore implements ReportStore
var _ ReportStore = (*BoltStore)(nil)

// NewBoltStore opens (or creates) the report database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open report database %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(reportsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create reports bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Save writes the report as a new row. The id and creation timestamp are
// assigned inside the write transaction and set on the passed report; on
// error the report is left untouched and nothing is written.
func (s *BoltStore) Save(report *models.Report) (uint64, error) {
	var id uint64
	createdAt := time.Now().UTC()

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(reportsBucket)

		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to assign report id: %w", err)
		}

		row := *report
		row.ID = &seq
		row.CreatedAt = createdAt

		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		if err := b.Put(itob(seq), data); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}

		id = seq
		return nil
	})
	if err != nil {
		return 0, err
	}

	report.ID = &id
	report.CreatedAt = createdAt
	return id, nil
}

// Get returns the full report for id, or ErrNotFound.
func (s *BoltStore) Get(id uint64) (*models.Report, error) {
	var report *models.Report

	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(reportsBucket).Get(itob(id))
		if data == nil {
			return ErrNotFound
		}

		var r models.Report
		if err := json.Unmarshal(data, &r); err != nil {
			return fmt.Errorf("failed to decode report %d: %w", id, err)
		}
		report = &r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

// ListSummaries returns at most limit summary rows, newest id first.
func (s *BoltStore) ListSummaries(limit int) ([]models.ReportSummary, error) {
	summaries := []models.ReportSummary{}

	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(reportsBucket).Cursor()

		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(summaries) >= limit {
				break
			}

			var r models.Report
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("failed to decode report row: %w", err)
			}

			summaries = append(summaries, models.ReportSummary{
				ID:        binary.BigEndian.Uint64(k),
				Title:     r.Title,
				Link:      r.Link,
				Published: r.Published,
				Summary:   r.Summary,
				MITRE:     r.MITRE,
				CreatedAt: r.CreatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return summaries, nil
}

// Close releases the underlying database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
