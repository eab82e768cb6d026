package search

import (
	"fmt"
	"os"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/sirupsen/logrus"

	"github.com/threatlens/threatlens/internal/models"
)

// reportDocument is the flattened view of a report stored in the index.
type reportDocument struct {
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	RawText    string   `json:"raw_text"`
	Techniques []string `json:"techniques"`
}

// Hit is one search result.
type Hit struct {
	ID    uint64  `json:"id"`
	Score float64 `json:"score"`
}

// Index provides full-text search over persisted reports.
type Index struct {
	idx bleve.Index
}

// Open opens the index at path, creating it with the report mapping if it
// does not exist yet.
func Open(path string) (*Index, error) {
	idx, err := bleve.Open(path)
	if err == nil {
		return &Index{idx: idx}, nil
	}
	if _, statErr := os.Stat(path); statErr == nil {
		return nil, fmt.Errorf("failed to open search index %s: %w", path, err)
	}

	keywordFieldMapping := bleve.NewKeywordFieldMapping()
	textFieldMapping := bleve.NewTextFieldMapping()

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("title", textFieldMapping)
	docMapping.AddFieldMappingsAt("summary", textFieldMapping)
	docMapping.AddFieldMappingsAt("raw_text", textFieldMapping)
	docMapping.AddFieldMappingsAt("techniques", keywordFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping

	idx, err = bleve.New(path, indexMapping)
	if err != nil {
		return nil, fmt.Errorf("failed to create search index %s: %w", path, err)
	}

	return &Index{idx: idx}, nil
}

// IndexReport adds a persisted report to the index. Reports without an id
// are skipped; unsaved reports are not queryable by design.
func (i *Index) IndexReport(report *models.Report) error {
	if report.ID == nil {
		return nil
	}

	doc := reportDocument{
		Title:      report.Title,
		Summary:    report.Summary,
		RawText:    report.RawText,
		Techniques: report.MITRE.Techniques,
	}

	if err := i.idx.Index(strconv.FormatUint(*report.ID, 10), doc); err != nil {
		return fmt.Errorf("failed to index report %d: %w", *report.ID, err)
	}

	logrus.Debugf("Indexed report %d for search", *report.ID)
	return nil
}

// Search runs a match query over the indexed reports and returns up to
// limit hits ordered by score.
func (i *Index) Search(queryStr string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 10
	}

	query := bleve.NewMatchQuery(queryStr)
	request := bleve.NewSearchRequest(query)
	request.Size = limit

	results, err := i.idx.Search(request)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]Hit, 0, len(results.Hits))
	for _, hit := range results.Hits {
		id, err := strconv.ParseUint(hit.ID, 10, 64)
		if err != nil {
			continue
		}
		hits = append(hits, Hit{ID: id, Score: hit.Score})
	}

	return hits, nil
}

// Close releases the index.
func (i *Index) Close() error {
	return i.idx.Close()
}
