package extract

import (
	"regexp"
	"sort"
	"strings"
)

// Rule-based named-entity extraction. This stands in for a statistical NER
// model: the labels and values are opaque to the rest of the pipeline and
// travel on the report as a plain label -> values map.
var entityPatterns = map[string]*regexp.Regexp{
	"THREAT_ACTOR": regexp.MustCompile(`(?i)\b(APT[-\s]?\d+|Lazarus|Fancy Bear|Cozy Bear|Sandworm|Midnight Blizzard|Equation Group|Carbanak|FIN\d+|Turla|Silence|TA\d+|UNC\d+|Kimsuky|MuddyWater)\b`),
	"MALWARE":      regexp.MustCompile(`(?i)\b(Mimikatz|Cobalt Strike|Emotet|TrickBot|QakBot|LockBit|Ryuk|Conti|BlackCat|AgentTesla|AsyncRAT|NjRAT|PlugX|IcedID)\b`),
	"CVE":          regexp.MustCompile(`(?i)\bCVE-\d{4}-\d{4,7}\b`),
	"ORG":          regexp.MustCompile(`\b(Microsoft|Google|Cisco|Fortinet|Palo Alto Networks|CrowdStrike|Mandiant|CISA|FBI|NSA)\b`),
}

// ExtractEntities returns a label -> values mapping of named entities
// found in the text. Empty input yields an empty (non-nil) map. Values
// are deduplicated case-insensitively and sorted within each label;
// labels with no matches are omitted entirely.
func ExtractEntities(text string) map[string][]string {
	entities := make(map[string][]string)
	if text == "" {
		return entities
	}

	for label, pattern := range entityPatterns {
		matches := pattern.FindAllString(text, -1)
		if len(matches) == 0 {
			continue
		}
		seen := make(map[string]bool, len(matches))
		values := make([]string, 0, len(matches))
		for _, m := range matches {
			key := strings.ToUpper(m)
			if !seen[key] {
				seen[key] = true
				values = append(values, m)
			}
		}
		sort.Strings(values)
		entities[label] = values
	}

	return entities
}
