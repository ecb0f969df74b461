package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sells-group/prospect-cli/internal/model"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9\-]+(?:\.[a-zA-Z0-9\-]+)*\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(?:\+1[\s.\-]?)?(?:\(\d{3}\)|\d{3})[\s.\-]\d{3}[\s.\-]\d{4}`)
	sitePattern  = regexp.MustCompile(`https?://[^\s)\]>"']+`)
)

// contactKind distinguishes the pools a contactIndex tracks.
type contactKind int

const (
	kindEmail contactKind = iota
	kindPhone
	kindSite
)

type contactSpan struct {
	kind  contactKind
	value string
	pos   int
	used  bool
}

// contactIndex locates every email, phone, and URL on a page with its
// byte position, so contacts can be assigned to the nearest candidate
// name without ever reusing one. A page with several people must not
// cross-assign a contact to the wrong neighbor.
type contactIndex struct {
	spans []contactSpan
	names []int
}

func indexContacts(content string) *contactIndex {
	idx := &contactIndex{}

	for _, m := range emailPattern.FindAllStringIndex(content, -1) {
		idx.spans = append(idx.spans, contactSpan{kind: kindEmail, value: content[m[0]:m[1]], pos: m[0]})
	}
	for _, m := range phonePattern.FindAllStringIndex(content, -1) {
		idx.spans = append(idx.spans, contactSpan{kind: kindPhone, value: strings.TrimSpace(content[m[0]:m[1]]), pos: m[0]})
	}
	for _, m := range sitePattern.FindAllStringIndex(content, -1) {
		idx.spans = append(idx.spans, contactSpan{kind: kindSite, value: content[m[0]:m[1]], pos: m[0]})
	}

	sort.Slice(idx.spans, func(i, j int) bool { return idx.spans[i].pos < idx.spans[j].pos })
	return idx
}

// proximityWindow is how far (in bytes) from a name's occurrence a
// contact may sit and still be attributed to that person.
const proximityWindow = 300

// registerNames records every candidate name position up front, so a
// span sitting at the same distance from two names can be recognized
// as ambiguous.
func (ci *contactIndex) registerNames(positions ...int) {
	ci.names = append(ci.names, positions...)
}

// ambiguous reports whether a different registered name ties the span
// at the same distance.
func (ci *contactIndex) ambiguous(spanPos, namePos, dist int) bool {
	for _, p := range ci.names {
		if p == namePos {
			continue
		}
		d := spanPos - p
		if d < 0 {
			d = -d
		}
		if d == dist {
			return true
		}
	}
	return false
}

// nearestUnused claims the closest unclaimed span of the given kind
// within the window around namePos. Returns "" when nothing qualifies.
// A span tied between two registered names is skipped for both;
// dropping an ambiguous pairing beats guessing.
func (ci *contactIndex) nearestUnused(kind contactKind, namePos int) string {
	best := -1
	bestDist := proximityWindow + 1
	for i, s := range ci.spans {
		if s.used || s.kind != kind {
			continue
		}
		dist := s.pos - namePos
		if dist < 0 {
			dist = -dist
		}
		if dist >= bestDist {
			continue
		}
		if ci.ambiguous(s.pos, namePos, dist) {
			continue
		}
		bestDist = dist
		best = i
	}
	if best < 0 {
		return ""
	}
	ci.spans[best].used = true
	return ci.spans[best].value
}

// contactsNear assigns the nearest unused email, phone, and website to a
// name occurring at namePos.
func (ci *contactIndex) contactsNear(namePos int) model.Contact {
	return model.Contact{
		Email:   ci.nearestUnused(kindEmail, namePos),
		Phone:   ci.nearestUnused(kindPhone, namePos),
		Website: ci.nearestUnused(kindSite, namePos),
	}
}

// firstEmail returns the first email on the page, used by single-person
// profile extractors where proximity does not matter.
func firstEmail(content string) string {
	return emailPattern.FindString(content)
}

// firstPhone returns the first phone number on the page.
func firstPhone(content string) string {
	return strings.TrimSpace(phonePattern.FindString(content))
}
