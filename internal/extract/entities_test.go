package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEntities_EmptyText(t *testing.T) {
	entities := ExtractEntities("")

	assert.NotNil(t, entities)
	assert.Empty(t, entities)
}

func TestExtractEntities_KnownLabels(t *testing.T) {
	text := "APT29 deployed Cobalt Strike after exploiting CVE-2024-3094; Mandiant attributed the campaign."

	entities := ExtractEntities(text)

	assert.Contains(t, entities["THREAT_ACTOR"], "APT29")
	assert.Contains(t, entities["MALWARE"], "Cobalt Strike")
	assert.Contains(t, entities["CVE"], "CVE-2024-3094")
	assert.Contains(t, entities["ORG"], "Mandiant")
}

func TestExtractEntities_DedupAndOmitEmptyLabels(t *testing.T) {
	entities := ExtractEntities("mimikatz and Mimikatz and MIMIKATZ")

	assert.Len(t, entities["MALWARE"], 1)
	// Labels with no matches are omitted rather than present-but-empty
	_, hasActors := entities["THREAT_ACTOR"]
	assert.False(t, hasActors)
}
