package models

import "time"

// Entry represents a single raw item pulled from a threat-intel feed
type Entry struct {
	Title     string `json:"title,omitempty"`
	Link      string `json:"link,omitempty"`
	Published string `json:"published,omitempty"`
	Summary   string `json:"summary"`
}

// IndicatorSet groups extracted indicators of compromise by category.
// All six categories are always present; values within a category are
// unique and sorted. A value may appear in more than one category
// (a domain inside a URL also matches the domain pattern) — that overlap
// is intentional and is not deduplicated across categories.
type IndicatorSet struct {
	IPs     []string `json:"ips"`
	Domains []string `json:"domains"`
	URLs    []string `json:"urls"`
	MD5     []string `json:"md5"`
	SHA1    []string `json:"sha1"`
	SHA256  []string `json:"sha256"`
}

// NewIndicatorSet returns a set with all categories present but empty.
func NewIndicatorSet() IndicatorSet {
	return IndicatorSet{
		IPs:     []string{},
		Domains: []string{},
		URLs:    []string{},
		MD5:     []string{},
		SHA1:    []string{},
		SHA256:  []string{},
	}
}

// TechniqueMatch is the result of rule-based MITRE ATT&CK mapping.
// Keywords appear in the rule table's declared order; techniques are
// deduplicated preserving first occurrence.
type TechniqueMatch struct {
	MatchedKeywords []string `json:"matched_keywords"`
	Techniques      []string `json:"techniques"`
}

// NewTechniqueMatch returns an empty match with non-nil slices.
func NewTechniqueMatch() TechniqueMatch {
	return TechniqueMatch{
		MatchedKeywords: []string{},
		Techniques:      []string{},
	}
}

// Report is the persisted unit of processed threat intelligence.
// ID and CreatedAt are assigned by the store at save time and are nil/zero
// for reports that were built but not persisted.
type Report struct {
	ID        *uint64             `json:"id"`
	Title     string              `json:"title,omitempty"`
	Link      string              `json:"link,omitempty"`
	Published string              `json:"published,omitempty"`
	RawText   string              `json:"raw_text"`
	Summary   string              `json:"summary"`
	IOCs      IndicatorSet        `json:"iocs"`
	Entities  map[string][]string `json:"entities"`
	MITRE     TechniqueMatch      `json:"mitre"`
	CreatedAt time.Time           `json:"created_at"`
}

// ReportSummary is the listing view of a Report. It omits the heavy
// fields (raw_text, entities) but keeps the MITRE mapping and summary.
type ReportSummary struct {
	ID        uint64         `json:"id"`
	Title     string         `json:"title,omitempty"`
	Link      string         `json:"link,omitempty"`
	Published string         `json:"published,omitempty"`
	Summary   string         `json:"summary"`
	MITRE     TechniqueMatch `json:"mitre"`
	CreatedAt time.Time      `json:"created_at"`
}
