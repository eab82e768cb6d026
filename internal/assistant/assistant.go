package assistant

import (
	"fmt"
	"strings"
)

// rule is one keyword-triggered canned answer. Rules are evaluated in
// order and the first match wins.
type rule struct {
	keywords []string
	response string
}

var rules = []rule{
	{
		keywords: []string{"cve"},
		response: "To analyze a CVE, say the ID clearly. Example: 'Analyze CVE-2024-3094'.",
	},
	{
		keywords: []string{"ransomware"},
		response: "Ransomware is a malware that encrypts files and demands payment. Common mitigations include offline backups, endpoint monitoring, and disabling RDP.",
	},
	{
		keywords: []string{"phishing"},
		response: "Phishing attacks trick users into giving credentials. Mitigate using email filtering, MFA, and employee awareness training.",
	},
	{
		keywords: []string{"mitre", "attack"},
		response: "MITRE ATT&CK is a framework of attacker techniques and tactics used for threat intelligence and defense improvement.",
	},
	{
		keywords: []string{"ioc", "indicator"},
		response: "Indicators of Compromise (IOCs) include IPs, domains, hashes, and URLs that reveal malicious activity.",
	},
	{
		keywords: []string{"hello", "hi"},
		response: "Hello! How can I help with cybersecurity today?",
	},
}

// Respond answers a free-text analyst question with the first matching
// canned response. No models, no external calls.
func Respond(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return "I could not understand what you said."
	}

	lower := strings.ToLower(query)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.response
			}
		}
	}

	return fmt.Sprintf("You said: '%s'. I can answer cybersecurity questions, analyze CVEs, or explain threats.", query)
}
