package verify

import "regexp"

// IntelMatch is one actionable-intelligence hit found in content.
type IntelMatch struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

// intelPattern pairs a pattern kind with its compiled regexp.
type intelPattern struct {
	kind string
	re   *regexp.Regexp
}

// Patterns are ordered so the detail string is stable across runs.
var intelPatterns = []intelPattern{
	{"email", regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)},
	{"iban", regexp.MustCompile(`\b[A-Z]{2}\d{2}[A-Z0-9]{11,30}\b`)},
	{"ipv4", regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)},
	{"account_number", regexp.MustCompile(`\b\d{8,17}\b`)},
	{"phone", regexp.MustCompile(`\+\d{7,15}\b`)},
	{"monetary_amount", regexp.MustCompile(`(?:USD|EUR|GBP|[$€£])\s?\d[\d,]*(?:\.\d{2})?`)},
}

// DetectIntel scans normalized content for strings an investigator can
// act on: account numbers, emails, IP addresses, IBAN-like strings,
// phone numbers and monetary amounts.
func DetectIntel(content string) []IntelMatch {
	var matches []IntelMatch
	for _, p := range intelPatterns {
		found := p.re.FindAllString(content, -1)
		if len(found) > 0 {
			matches = append(matches, IntelMatch{Kind: p.kind, Count: len(found)})
		}
	}
	return matches
}
