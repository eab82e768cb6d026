package extract

import (
	"regexp"
	"sort"

	"github.com/threatlens/threatlens/internal/models"
)

// IOC regex patterns. Each category is matched independently, so a value
// can land in more than one category (a domain inside a URL also matches
// the domain pattern). Hash categories are a pure length heuristic: any
// 40-char hex run is reported as SHA1 whether or not it is a real digest.
var (
	ipRe     = regexp.MustCompile(`\b(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9]?[0-9])\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9]?[0-9])\b`)
	domainRe = regexp.MustCompile(`(?i)\b(?:[a-z0-9](?:[a-z0-9\-]{0,61}[a-z0-9])?\.)+[a-z]{2,}\b`)
	urlRe    = regexp.MustCompile(`(?i)\bhttps?://[^\s"']+`)
	md5Re    = regexp.MustCompile(`\b[a-fA-F0-9]{32}\b`)
	sha1Re   = regexp.MustCompile(`\b[a-fA-F0-9]{40}\b`)
	sha256Re = regexp.MustCompile(`\b[a-fA-F0-9]{64}\b`)
)

// ExtractIOCs pulls categorized indicators of compromise out of free text.
// Empty input yields a set with all six categories present but empty,
// never an error. Results are deduplicated per category and sorted so
// identical input always produces identical output.
func ExtractIOCs(text string) models.IndicatorSet {
	iocs := models.NewIndicatorSet()
	if text == "" {
		return iocs
	}

	iocs.IPs = uniqueSorted(ipRe.FindAllString(text, -1))
	iocs.Domains = uniqueSorted(domainRe.FindAllString(text, -1))
	iocs.URLs = uniqueSorted(urlRe.FindAllString(text, -1))
	iocs.MD5 = uniqueSorted(md5Re.FindAllString(text, -1))
	iocs.SHA1 = uniqueSorted(sha1Re.FindAllString(text, -1))
	iocs.SHA256 = uniqueSorted(sha256Re.FindAllString(text, -1))

	return iocs
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
