package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespond(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		contains string
	}{
		{
			name:     "Empty query",
			query:    "   ",
			contains: "could not understand",
		},
		{
			name:     "CVE question",
			query:    "how do I analyze a cve?",
			contains: "Analyze CVE-2024-3094",
		},
		{
			name:     "Ransomware question",
			query:    "Tell me about RANSOMWARE",
			contains: "encrypts files",
		},
		{
			name:     "MITRE question",
			query:    "what is mitre att&ck",
			contains: "framework of attacker techniques",
		},
		{
			name:     "IOC question",
			query:    "explain indicators please",
			contains: "Indicators of Compromise",
		},
		{
			name:     "Greeting",
			query:    "hello there",
			contains: "How can I help",
		},
		{
			name:     "Unknown topic falls through",
			query:    "what is the weather",
			contains: "You said: 'what is the weather'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, Respond(tt.query), tt.contains)
		})
	}
}
