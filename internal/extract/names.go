package extract

import (
	"regexp"
	"strings"
)

// credentialTokens are the professional suffixes that anchor the
// "Name, CREDENTIAL" pattern and double as specialty tags.
var credentialTokens = []string{
	"LCSW", "LICSW", "LMSW", "MSW", "LPC", "LPCC", "LCPC", "LMHC", "LMFT",
	"MFT", "PhD", "PsyD", "EdD", "MD", "DO", "NP", "PMHNP", "RN", "PA",
	"MA", "MS", "MEd", "CADC", "CASAC", "BCBA", "ATR", "RDN",
}

var (
	// nameCredentialRe matches "Jane Doe, LCSW" style lines: 2-3
	// capitalized words followed by a comma and a known credential.
	nameCredentialRe = regexp.MustCompile(
		`\b([A-Z][a-zA-Z'\-]+(?: [A-Z][a-zA-Z'\-]?\.?)? [A-Z][a-zA-Z'\-]+)\s*,\s*(` + strings.Join(credentialTokens, "|") + `)\b`)

	// honorificNameRe matches "Dr. Jane Doe" style patterns.
	honorificNameRe = regexp.MustCompile(
		`\b(Dr|Mr|Ms|Mrs|Prof)\.?\s+([A-Z][a-zA-Z'\-]+ [A-Z][a-zA-Z'\-]+(?: [A-Z][a-zA-Z'\-]+)?)\b`)

	// emailLocalRe captures "first.last" locals for name inference.
	emailLocalRe = regexp.MustCompile(`\b([a-z]{2,15})[._]([a-z]{2,20})@`)
)

// nameHit is one candidate person found on a page, with the byte
// position of its occurrence for proximity contact assignment.
type nameHit struct {
	name       string
	credential string
	pos        int
}

// findCredentialedNames runs the strict "Name, CREDENTIAL" layer.
func findCredentialedNames(content string) []nameHit {
	var hits []nameHit
	seen := map[string]bool{}
	for _, m := range nameCredentialRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		cred := content[m[4]:m[5]]
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		hits = append(hits, nameHit{name: name, credential: cred, pos: m[0]})
	}
	return hits
}

// findHonorificNames runs the "Dr./Mr./Ms. Name" layer.
func findHonorificNames(content string) []nameHit {
	var hits []nameHit
	seen := map[string]bool{}
	for _, m := range honorificNameRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[4]:m[5]]
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		hits = append(hits, nameHit{name: name, pos: m[0]})
	}
	return hits
}

// namesFromEmails infers "First Last" from first.last@ email locals.
// Used only when the stricter layers found nothing.
func namesFromEmails(content string) []nameHit {
	var hits []nameHit
	seen := map[string]bool{}
	for _, m := range emailLocalRe.FindAllStringSubmatchIndex(content, -1) {
		first := content[m[2]:m[3]]
		last := content[m[4]:m[5]]
		name := titleWord(first) + " " + titleWord(last)
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		hits = append(hits, nameHit{name: name, pos: m[0]})
	}
	return hits
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}

// excerptAround returns up to max bytes of page text centered on pos,
// trimmed to whole lines where possible.
func excerptAround(content string, pos, max int) string {
	if len(content) == 0 {
		return ""
	}
	start := pos - max/2
	if start < 0 {
		start = 0
	}
	end := start + max
	if end > len(content) {
		end = len(content)
	}
	excerpt := content[start:end]

	// Trim leading/trailing partial lines.
	if i := strings.IndexByte(excerpt, '\n'); i >= 0 && start > 0 {
		excerpt = excerpt[i+1:]
	}
	if i := strings.LastIndexByte(excerpt, '\n'); i >= 0 && end < len(content) {
		excerpt = excerpt[:i]
	}
	return strings.TrimSpace(excerpt)
}
