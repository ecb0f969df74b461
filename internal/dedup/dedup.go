// Package dedup derives stable identity keys for prospect records so a
// person discovered through more than one page collapses to a single
// stored row.
package dedup

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Key returns the identity key for a record: the normalized email when
// one is present, otherwise the folded lowercase name. Records with
// neither an email nor a name get an empty key and are never treated
// as duplicates of each other.
func Key(email, name string) string {
	if e := NormalizeEmail(email); e != "" {
		return e
	}
	return NormalizeName(name)
}

// NormalizeEmail lowercases and trims an address. Plus-suffixes in the
// local part are kept: "jane+referrals@x.org" and "jane@x.org" may be
// two mailboxes on purpose.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeName lowercases the name, strips diacritics, and collapses
// interior whitespace so "José  García" and "jose garcia" share a key.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	folded, _, err := transform.String(foldTransformer, name)
	if err == nil {
		name = folded
	}
	return strings.Join(strings.Fields(name), " ")
}
