// Package validate holds the record validator: pure heuristics that
// decide whether an extracted prospect is worth keeping. Records failing
// a hard check are dropped whole; soft issues become warnings only.
package validate

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sells-group/prospect-cli/internal/model"
)

// honorifics and suffixes accepted as name tokens even though they do
// not look like capitalized words.
var honorifics = map[string]bool{
	"dr.": true, "dr": true, "mr.": true, "mr": true, "ms.": true, "ms": true,
	"mrs.": true, "mrs": true, "prof.": true, "prof": true, "rev.": true,
	"jr.": true, "jr": true, "sr.": true, "sr": true,
	"ii": true, "iii": true, "iv": true,
}

// nameBlacklist rejects navigational and organizational words that the
// regex layers routinely mistake for people.
var nameBlacklist = map[string]bool{
	"team": true, "staff": true, "contact": true, "about": true,
	"click": true, "here": true, "home": true, "page": true, "read": true,
	"more": true, "learn": true, "our": true, "the": true, "new": true,
	"privacy": true, "policy": true, "terms": true, "services": true,
	"service": true, "support": true, "office": true, "location": true,
	"main": true, "meet": true, "view": true, "profile": true,
	"treatment": true, "therapy": true, "program": true, "center": true,
	"health": true, "medical": true, "group": true, "associates": true,
}

// orgRejectPhrases are template/boilerplate fragments that mark a string
// as scraped site furniture rather than a real organization name.
var orgRejectPhrases = []string{
	"powered by",
	"may also be known",
	"and hospital",
	"where children come first",
	"all rights reserved",
	"find a therapist",
	"sign up",
	"log in",
	"cookie",
}

// directorySites are aggregator brands that must never be recorded as a
// prospect's own organization.
var directorySites = []string{
	"psychology today",
	"psychologytoday",
	"goodtherapy",
	"healthgrades",
	"zocdoc",
	"webmd",
	"yelp",
	"yellow pages",
	"yellowpages",
	"linkedin",
	"facebook",
	"therapist.com",
}

// genericEmailLocals are inbox names that identify a role, not a person.
var genericEmailLocals = map[string]bool{
	"info": true, "contact": true, "support": true, "admin": true,
	"office": true, "hello": true, "sales": true, "help": true,
	"frontdesk": true, "reception": true, "webmaster": true,
	"noreply": true, "no-reply": true, "admissions": true, "intake": true,
	"general": true, "mail": true, "inquiries": true, "enquiries": true,
}

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRe = regexp.MustCompile(`^[\d\s()+.\-]{7,20}$`)
)

// ValidName applies the name heuristic: exactly 2-3 tokens, each at
// least 2 chars, each capitalized or an accepted honorific/suffix, none
// blacklisted, and at least 2 distinct characters overall.
func ValidName(name string) bool {
	tokens := strings.Fields(strings.TrimSpace(name))
	if len(tokens) < 2 || len(tokens) > 3 {
		return false
	}

	distinct := map[rune]bool{}
	for _, tok := range tokens {
		lower := strings.ToLower(tok)
		if nameBlacklist[lower] {
			return false
		}
		if len([]rune(tok)) < 2 {
			return false
		}
		if !honorifics[lower] && !capitalizedWord(tok) {
			return false
		}
		for _, r := range lower {
			if unicode.IsLetter(r) {
				distinct[r] = true
			}
		}
	}
	return len(distinct) >= 2
}

// capitalizedWord reports whether tok starts with an uppercase letter
// and contains only letters, hyphens, and apostrophes.
func capitalizedWord(tok string) bool {
	runes := []rune(tok)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLetter(r) && r != '-' && r != '\'' && r != '.' {
			return false
		}
	}
	return true
}

// ValidOrganization rejects over-long strings, template phrases, and
// directory-site brands. An empty organization is valid (it is optional).
func ValidOrganization(org string) bool {
	org = strings.TrimSpace(org)
	if org == "" {
		return true
	}
	if len(strings.Fields(org)) > 6 {
		return false
	}

	lower := strings.ToLower(org)
	for _, phrase := range orgRejectPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	for _, site := range directorySites {
		if strings.Contains(lower, site) {
			return false
		}
	}
	return true
}

// ValidEmail checks basic shape. Generic role inboxes fail PersonalEmail
// but may still pass here for dedup-fallback use.
func ValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

// PersonalEmail reports whether email has a valid shape and a local part
// that plausibly identifies a person rather than a role inbox.
func PersonalEmail(email string) bool {
	email = strings.TrimSpace(email)
	if !ValidEmail(email) {
		return false
	}
	local := strings.ToLower(strings.SplitN(email, "@", 2)[0])
	return !genericEmailLocals[local]
}

// ValidPhone checks basic phone shape: 7-20 chars of digits and
// separators with at least 7 digits.
func ValidPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if !phoneRe.MatchString(phone) {
		return false
	}
	digits := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= 7 && digits <= 15
}

// IsValid runs every hard check. A failing prospect is discarded by the
// pipeline, never repaired.
func IsValid(p model.Prospect) bool {
	if !ValidName(p.Name) {
		return false
	}
	if !ValidOrganization(p.Organization) {
		return false
	}
	if p.Contact.Email != "" && !PersonalEmail(p.Contact.Email) {
		return false
	}
	if p.Contact.Phone != "" && !ValidPhone(p.Contact.Phone) {
		return false
	}
	return true
}

// Scrub normalizes the soft fields of a valid prospect: demotes generic
// emails out of the personal slot, drops malformed phones, and trims the
// bio excerpt to its length cap. It never repairs hard-invalid records.
func Scrub(p model.Prospect) model.Prospect {
	if p.Contact.Email != "" && !PersonalEmail(p.Contact.Email) {
		p.Contact.Email = ""
	}
	if p.Contact.Phone != "" && !ValidPhone(p.Contact.Phone) {
		p.Contact.Phone = ""
	}
	if len(p.BioExcerpt) > 400 {
		cut := 400
		for cut > 0 && !utf8.RuneStart(p.BioExcerpt[cut]) {
			cut--
		}
		p.BioExcerpt = p.BioExcerpt[:cut]
	}
	return p
}

// Warnings reports soft issues that are retained for reporting but never
// block persistence.
func Warnings(p model.Prospect) []string {
	var warns []string
	if p.Organization == "" {
		warns = append(warns, "missing organization")
	}
	if p.Contact.Empty() {
		warns = append(warns, "no contact channel")
	}
	if p.Title == "" {
		warns = append(warns, "missing title")
	}
	return warns
}
