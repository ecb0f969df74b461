package fetch

import "strings"

// indicatorTerms are words a genuine professional-contact page almost
// always contains. Short pages missing all of them are treated as empty
// shells (consent walls, JS stubs, soft error pages).
var indicatorTerms = []string{
	"therapist", "counselor", "psychologist", "psychiatrist", "physician",
	"doctor", "provider", "clinic", "practice", "program", "school",
	"embassy", "consulate", "staff", "team", "director", "coordinator",
	"contact", "phone", "email", "about", "services", "appointment",
}

// acceptContent applies the thin-content gate: length must clear the
// minimum, and short-ish pages must additionally contain at least one
// domain indicator term.
func acceptContent(content string, cfg Config) bool {
	trimmed := strings.TrimSpace(content)
	if len(trimmed) <= cfg.MinContentLen {
		return false
	}
	if len(trimmed) > cfg.LargeContentLen {
		return true
	}

	lower := strings.ToLower(trimmed)
	for _, term := range indicatorTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
