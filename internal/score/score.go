// Package score assigns a 0-100 influence score to validated prospect
// records. Scoring is a pure function of the record and the request
// parameters so repeated runs over the same inputs produce identical
// scores.
package score

import (
	_ "embed"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/validate"
)

//go:embed keywords.yaml
var keywordsRaw []byte

// Keywords holds the keyword sets consulted by the scorer. The default
// sets are embedded at build time; callers may supply their own for
// testing.
type Keywords struct {
	DirectInfluence  []string            `yaml:"direct_influence"`
	LeadershipTitles []string            `yaml:"leadership_titles"`
	YouthRelevance   []string            `yaml:"youth_relevance"`
	Affluence        []string            `yaml:"affluence"`
	FounderLeader    []string            `yaml:"founder_leadership"`
	MetroSynonyms    map[string][]string `yaml:"metro_synonyms"`
}

// LoadKeywords parses the embedded keyword sets.
func LoadKeywords() (*Keywords, error) {
	var kw Keywords
	if err := yaml.Unmarshal(keywordsRaw, &kw); err != nil {
		return nil, eris.Wrap(err, "parsing embedded keyword sets")
	}
	return &kw, nil
}

// Params narrows scoring to the campaign the batch was run for.
type Params struct {
	// TargetRegions are metro names or region strings the campaign
	// cares about, e.g. "New York" or "Bay Area".
	TargetRegions []string
	// Category is the requested prospect category for the batch, if
	// any, e.g. "therapist" or "consultant".
	Category string
}

// Scorer computes influence scores from a fixed keyword configuration.
type Scorer struct {
	kw *Keywords
}

// New returns a Scorer over the given keyword sets. A nil kw loads the
// embedded defaults.
func New(kw *Keywords) (*Scorer, error) {
	if kw == nil {
		loaded, err := LoadKeywords()
		if err != nil {
			return nil, err
		}
		kw = loaded
	}
	return &Scorer{kw: kw}, nil
}

// Score returns the influence score for p under the given params,
// clamped to [0, 100].
func (s *Scorer) Score(p model.Prospect, params Params) int {
	text := scoreText(p)
	total := 0

	// Title influence is a single bucket: the strongest matching tier
	// wins, weaker tiers do not stack on top of it.
	switch {
	case containsAny(text, s.kw.DirectInfluence):
		total += 40
	case containsAny(strings.ToLower(p.Title), s.kw.LeadershipTitles):
		total += 30
	case strings.TrimSpace(p.Title) != "":
		total += 10
	}

	if p.Contact.Email != "" && validate.PersonalEmail(p.Contact.Email) {
		total += 15
	}
	if p.Contact.Phone != "" {
		total += 5
	}
	if s.matchesRegion(p, params.TargetRegions) {
		total += 20
	}
	if containsAny(text, s.kw.YouthRelevance) {
		total += 10
	}
	if containsAny(text, s.kw.Affluence) {
		total += 10
	}
	if containsAny(text, s.kw.FounderLeader) {
		total += 10
	}
	if params.Category != "" && categoryMatch(p, params.Category) {
		total += 5
	}

	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}
	return total
}

// scoreText is the haystack for keyword buckets that look beyond the
// title: title, bio excerpt, and specialty tags.
func scoreText(p model.Prospect) string {
	parts := []string{p.Title, p.BioExcerpt}
	parts = append(parts, p.SpecialtyTags...)
	return strings.ToLower(strings.Join(parts, " "))
}

func (s *Scorer) matchesRegion(p model.Prospect, regions []string) bool {
	if len(regions) == 0 {
		return false
	}
	haystack := strings.ToLower(p.Location + " " + p.BioExcerpt)
	for _, region := range regions {
		region = strings.ToLower(strings.TrimSpace(region))
		if region == "" {
			continue
		}
		if strings.Contains(haystack, region) {
			return true
		}
		for _, syn := range s.kw.MetroSynonyms[region] {
			if containsWord(haystack, strings.ToLower(syn)) {
				return true
			}
		}
	}
	return false
}

func categoryMatch(p model.Prospect, category string) bool {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return false
	}
	if strings.Contains(strings.ToLower(p.Title), category) {
		return true
	}
	for _, tag := range p.SpecialtyTags {
		if strings.Contains(strings.ToLower(tag), category) {
			return true
		}
	}
	return false
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// containsWord matches needle on word boundaries so short synonyms such
// as "la" or "dc" do not fire inside unrelated words.
func containsWord(haystack, needle string) bool {
	idx := 0
	for {
		i := strings.Index(haystack[idx:], needle)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(needle)
		leftOK := start == 0 || !isWordByte(haystack[start-1])
		rightOK := end == len(haystack) || !isWordByte(haystack[end])
		if leftOK && rightOK {
			return true
		}
		idx = start + 1
		if idx >= len(haystack) {
			return false
		}
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
