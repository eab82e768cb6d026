package mitre

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T, doc string) *RuleTable {
	t.Helper()
	table, err := ParseRules(strings.NewReader(doc))
	require.NoError(t, err)
	return table
}

func TestMap_EmptyText(t *testing.T) {
	table := mustTable(t, `{"phishing": ["T1566"]}`)

	match := table.Map("")

	assert.NotNil(t, match.MatchedKeywords)
	assert.NotNil(t, match.Techniques)
	assert.Empty(t, match.MatchedKeywords)
	assert.Empty(t, match.Techniques)
}

func TestMap_OrderedAndDeduplicated(t *testing.T) {
	table := mustTable(t, `{
		"mimikatz": ["T1003.001"],
		"credential dumping": ["T1003"]
	}`)

	match := table.Map("mimikatz was used for credential dumping")

	assert.Equal(t, []string{"mimikatz", "credential dumping"}, match.MatchedKeywords)
	// Techniques follow the rule table's declared order, not alphabetical
	assert.Equal(t, []string{"T1003.001", "T1003"}, match.Techniques)
}

func TestMap_DuplicateTechniquesAcrossKeywords(t *testing.T) {
	table := mustTable(t, `{
		"c2": ["T1105"],
		"command and control": ["T1105"],
		"exfiltration": ["T1041"]
	}`)

	match := table.Map("c2 traffic for command and control, then exfiltration")

	assert.Equal(t, []string{"c2", "command and control", "exfiltration"}, match.MatchedKeywords)
	assert.Equal(t, []string{"T1105", "T1041"}, match.Techniques)
}

func TestMap_CaseInsensitiveSubstring(t *testing.T) {
	table := mustTable(t, `{"PowerShell": ["T1059.001"]}`)

	match := table.Map("Attackers launched POWERSHELL payloads")

	assert.Equal(t, []string{"powershell"}, match.MatchedKeywords)
	assert.Equal(t, []string{"T1059.001"}, match.Techniques)
}

func TestMap_NoMatchesChecksAllRules(t *testing.T) {
	table := mustTable(t, `{
		"phishing": ["T1566"],
		"ransomware": ["T1486"]
	}`)

	match := table.Map("benign text about patch tuesday")

	assert.Empty(t, match.MatchedKeywords)
	assert.Empty(t, match.Techniques)
}
