package mitre

import (
	"strings"

	"github.com/threatlens/threatlens/internal/models"
)

// Map runs case-insensitive substring matching of every rule keyword
// against the text. All rules are checked, in the table's declared order;
// matching never stops at the first hit. The technique list is
// deduplicated while preserving first-occurrence order, so a technique
// contributed by several keywords appears once, where it was first seen.
func (t *RuleTable) Map(text string) models.TechniqueMatch {
	match := models.NewTechniqueMatch()
	if text == "" {
		return match
	}

	lower := strings.ToLower(text)
	seen := make(map[string]bool)

	for _, rule := range t.rules {
		if !strings.Contains(lower, rule.Keyword) {
			continue
		}
		match.MatchedKeywords = append(match.MatchedKeywords, rule.Keyword)
		for _, technique := range rule.Techniques {
			if !seen[technique] {
				seen[technique] = true
				match.Techniques = append(match.Techniques, technique)
			}
		}
	}

	return match
}
