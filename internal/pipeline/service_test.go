package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threatlens/threatlens/internal/collector"
	"github.com/threatlens/threatlens/internal/mitre"
	"github.com/threatlens/threatlens/internal/models"
	"github.com/threatlens/threatlens/internal/storage"
	"github.com/threatlens/threatlens/internal/summarize"
)

// memStore is an in-memory ReportStore for pipeline tests.
type memStore struct {
	saved   []models.Report
	nextID  uint64
	failing bool
}

func (m *memStore) Save(report *models.Report) (uint64, error) {
	if m.failing {
		return 0, errors.New("disk full")
	}
	m.nextID++
	id := m.nextID
	report.ID = &id
	m.saved = append(m.saved, *report)
	return id, nil
}

func (m *memStore) Get(id uint64) (*models.Report, error) {
	for i := range m.saved {
		if *m.saved[i].ID == id {
			return &m.saved[i], nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memStore) ListSummaries(limit int) ([]models.ReportSummary, error) {
	return []models.ReportSummary{}, nil
}

func (m *memStore) Close() error { return nil }

// noPageFetcher always reports a failed fetch.
type noPageFetcher struct{}

func (noPageFetcher) FetchPageText(_ context.Context, _ string) string { return "" }

// failingSummarizer exercises the truncation fallback.
type failingSummarizer struct{}

func (failingSummarizer) Summarize(_ context.Context, _ string) (string, error) {
	return "", errors.New("model unavailable")
}

func newTestService(t *testing.T, store storage.ReportStore) *Service {
	t.Helper()
	rules, err := mitre.ParseRules(strings.NewReader(`{
		"mimikatz": ["T1003.001"],
		"credential dumping": ["T1003"],
		"ransomware": ["T1486"]
	}`))
	require.NoError(t, err)

	truncator := summarize.NewTruncator(400)
	assembler := collector.NewAssembler(noPageFetcher{}, 200)
	return NewService(assembler, rules, truncator, truncator, store, nil)
}

func TestIngest_BuildsFullReports(t *testing.T) {
	store := &memStore{}
	svc := newTestService(t, store)

	long := strings.Repeat("mimikatz was used for credential dumping via 192.168.1.10. ", 5)
	entries := []models.Entry{{
		Title:   "Credential theft advisory",
		Link:    "https://example.com/a",
		Summary: long,
	}}

	reports := svc.Ingest(context.Background(), entries, true)
	require.Len(t, reports, 1)

	report := reports[0]
	require.NotNil(t, report.ID)
	assert.Equal(t, uint64(1), *report.ID)
	assert.Equal(t, long, report.RawText)
	assert.Equal(t, []string{"192.168.1.10"}, report.IOCs.IPs)
	assert.Equal(t, []string{"T1003.001", "T1003"}, report.MITRE.Techniques)
	assert.Contains(t, report.Entities["MALWARE"], "mimikatz")
	assert.NotEmpty(t, report.Summary)
	assert.Len(t, store.saved, 1)
}

func TestIngest_PersistFalseNeverTouchesStore(t *testing.T) {
	store := &memStore{}
	svc := newTestService(t, store)

	entries := []models.Entry{{Title: "a", Summary: strings.Repeat("ransomware ", 30)}}
	reports := svc.Ingest(context.Background(), entries, false)

	require.Len(t, reports, 1)
	assert.Nil(t, reports[0].ID)
	assert.True(t, reports[0].CreatedAt.IsZero())
	assert.Empty(t, store.saved)
}

func TestIngest_StoreFailureSkipsEntryOnly(t *testing.T) {
	store := &memStore{failing: true}
	svc := newTestService(t, store)

	entries := []models.Entry{
		{Title: "a", Summary: strings.Repeat("x", 250)},
		{Title: "b", Summary: strings.Repeat("y", 250)},
	}

	reports := svc.Ingest(context.Background(), entries, true)
	assert.Empty(t, reports)

	store.failing = false
	reports = svc.Ingest(context.Background(), entries, true)
	assert.Len(t, reports, 2)
}

func TestIngest_SummarizerFailureFallsBackToTruncation(t *testing.T) {
	store := &memStore{}
	rules, err := mitre.ParseRules(strings.NewReader(`{"phishing": ["T1566"]}`))
	require.NoError(t, err)

	truncator := summarize.NewTruncator(20)
	assembler := collector.NewAssembler(noPageFetcher{}, 200)
	svc := NewService(assembler, rules, failingSummarizer{}, truncator, store, nil)

	long := strings.Repeat("phishing campaign details ", 20)
	reports := svc.Ingest(context.Background(), []models.Entry{{Summary: long}}, false)

	require.Len(t, reports, 1)
	assert.Equal(t, truncator.Truncate(long), reports[0].Summary)
}

func TestIngest_EmptyEntrySliceYieldsEmptyResult(t *testing.T) {
	svc := newTestService(t, &memStore{})

	reports := svc.Ingest(context.Background(), nil, true)
	assert.NotNil(t, reports)
	assert.Empty(t, reports)
}
