package cve

import (
	"fmt"
	"strconv"
	"strings"
)

// Explain produces a plain-language analyst briefing for the CVE. It is
// rule-based: the description is classified into a handful of well-known
// vulnerability families and each family gets a canned assessment.
func Explain(details Details) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Severity: %s (CVSS %s)\n", details.Severity, details.Score)
	fmt.Fprintf(&b, "Attack Vector: %s\n", details.Vector)
	fmt.Fprintf(&b, "Description: %s\n\n", details.Description)

	lower := strings.ToLower(details.Description)

	switch {
	case strings.Contains(lower, "remote code") || strings.Contains(lower, "execute arbitrary code"):
		b.WriteString("- This is a Remote Code Execution (RCE) vulnerability.\n")
		b.WriteString("- Attackers can run malicious code on the target system.\n")
		b.WriteString("- Immediate patching is recommended.\n")
	case strings.Contains(lower, "bypass"):
		b.WriteString("- This is an authentication bypass vulnerability.\n")
		b.WriteString("- Attackers can access systems without credentials.\n")
		b.WriteString("- Enforce MFA and patch immediately.\n")
	case strings.Contains(lower, "overflow"):
		b.WriteString("- This is a buffer overflow vulnerability.\n")
		b.WriteString("- Attackers may crash or take control of the program.\n")
		b.WriteString("- Strongly recommended to update software.\n")
	default:
		b.WriteString("- This vulnerability may impact system security.\n")
		b.WriteString("- Attackers could exploit it depending on context.\n")
		b.WriteString("- Apply patches and monitor logs.\n")
	}

	return b.String()
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
