package storage

import (
	"errors"

	"github.com/threatlens/threatlens/internal/models"
)

// ErrNotFound is returned when a report id has never been assigned.
var ErrNotFound = errors.New("report not found")

// ReportStore is the persistence contract for processed reports. Save is
// append-only: it assigns a fresh strictly-increasing id plus a UTC
// creation timestamp and writes the full report atomically. Implementations
// must serialize id assignment so concurrent saves never collide.
type ReportStore interface {
	Save(report *models.Report) (uint64, error)
	Get(id uint64) (*models.Report, error)
	ListSummaries(limit int) ([]models.ReportSummary, error)
	Close() error
}
