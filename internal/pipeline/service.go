package pipeline

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/threatlens/threatlens/internal/collector"
	"github.com/threatlens/threatlens/internal/extract"
	"github.com/threatlens/threatlens/internal/mitre"
	"github.com/threatlens/threatlens/internal/models"
	"github.com/threatlens/threatlens/internal/storage"
	"github.com/threatlens/threatlens/internal/summarize"
)

// ReportIndexer receives persisted reports for search indexing. Indexing
// is best-effort; failures are logged and never fail an ingestion.
type ReportIndexer interface {
	IndexReport(report *models.Report) error
}

// Service runs the ingestion pipeline: assemble text, extract indicators
// and entities, map techniques, summarize, and optionally persist. Each
// entry is processed independently — one bad entry never aborts the rest.
type Service struct {
	assembler  *collector.Assembler
	rules      *mitre.RuleTable
	summarizer summarize.Summarizer
	truncator  *summarize.Truncator
	store      storage.ReportStore
	indexer    ReportIndexer
}

// NewService wires the pipeline. indexer may be nil when search is
// disabled.
func NewService(assembler *collector.Assembler, rules *mitre.RuleTable, summarizer summarize.Summarizer, truncator *summarize.Truncator, store storage.ReportStore, indexer ReportIndexer) *Service {
	return &Service{
		assembler:  assembler,
		rules:      rules,
		summarizer: summarizer,
		truncator:  truncator,
		store:      store,
		indexer:    indexer,
	}
}

// Ingest processes entries into reports. With persist=true each report is
// saved before being returned and carries its assigned id; with
// persist=false reports are built with a nil id and the store is never
// touched. A persistence failure drops that entry and moves on.
func (s *Service) Ingest(ctx context.Context, entries []models.Entry, persist bool) []models.Report {
	reports := make([]models.Report, 0, len(entries))

	for _, entry := range entries {
		report := s.process(ctx, entry)

		if persist {
			if _, err := s.store.Save(&report); err != nil {
				logrus.Errorf("Failed to persist report for %q: %v", entry.Link, err)
				continue
			}
			if s.indexer != nil {
				if err := s.indexer.IndexReport(&report); err != nil {
					logrus.Warnf("Failed to index report %v: %v", report.ID, err)
				}
			}
		}

		reports = append(reports, report)
	}

	logrus.Infof("Ingested %d of %d entries (persist=%t)", len(reports), len(entries), persist)
	return reports
}

// process builds a single report from a feed entry. Extraction and
// mapping never fail; collaborator failures only degrade the result.
func (s *Service) process(ctx context.Context, entry models.Entry) models.Report {
	rawText, degraded := s.assembler.Assemble(ctx, entry.Summary, entry.Link)
	if degraded {
		logrus.Debugf("Assembled entry %q from feed summary only", entry.Link)
	}

	summary, err := s.summarizer.Summarize(ctx, rawText)
	if err != nil {
		logrus.Warnf("Summarizer failed for %q, truncating: %v", entry.Link, err)
		summary = s.truncator.Truncate(rawText)
	}

	return models.Report{
		Title:     entry.Title,
		Link:      entry.Link,
		Published: entry.Published,
		RawText:   rawText,
		Summary:   summary,
		IOCs:      extract.ExtractIOCs(rawText),
		Entities:  extract.ExtractEntities(rawText),
		MITRE:     s.rules.Map(rawText),
	}
}
