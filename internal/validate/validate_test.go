package validate

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/prospect-cli/internal/model"
)

func TestValidName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "two tokens", in: "Jane Doe", want: true},
		{name: "three tokens", in: "Jane Marie Doe", want: true},
		{name: "honorific prefix", in: "Dr. Jane Doe", want: true},
		{name: "suffix", in: "Jane Doe Jr.", want: true},
		{name: "hyphenated", in: "Mary Smith-Jones", want: true},
		{name: "apostrophe", in: "Sean O'Brien", want: true},
		{name: "single token", in: "Jane", want: false},
		{name: "four tokens", in: "Jane Marie Anne Doe", want: false},
		{name: "lowercase token", in: "jane Doe", want: false},
		{name: "blacklisted word", in: "Meet Our Team", want: false},
		{name: "navigational", in: "Read More", want: false},
		{name: "org word", in: "Treatment Center", want: false},
		{name: "single char token", in: "J Doe", want: false},
		{name: "repeated char", in: "Aa Aa", want: false},
		{name: "empty", in: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ValidName(tt.in), "input: %q", tt.in)
		})
	}
}

func TestValidOrganization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "empty is fine", in: "", want: true},
		{name: "short org", in: "Lakeside Counseling", want: true},
		{name: "six words", in: "Center for Adolescent Health and Wellness", want: true},
		{name: "seven words", in: "The Greater Metropolitan Center for Adolescent Mental", want: false},
		{name: "boilerplate", in: "Powered by Squarespace", want: false},
		{name: "directory brand", in: "Psychology Today", want: false},
		{name: "aggregator", in: "Healthgrades Directory", want: false},
		{name: "template phrase", in: "Anytown Clinic and Hospital", want: false},
		{name: "tagline", in: "Where Children Come First", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ValidOrganization(tt.in), "input: %q", tt.in)
		})
	}
}

func TestPersonalEmail(t *testing.T) {
	t.Parallel()

	assert.True(t, PersonalEmail("jane.doe@lakeside.org"))
	assert.True(t, PersonalEmail("jdoe@example.com"))

	assert.False(t, PersonalEmail("info@lakeside.org"))
	assert.False(t, PersonalEmail("contact@lakeside.org"))
	assert.False(t, PersonalEmail("admissions@program.org"))
	assert.False(t, PersonalEmail("frontdesk@clinic.com"))
	assert.False(t, PersonalEmail("not-an-email"))
	assert.False(t, PersonalEmail(""))
}

func TestValidPhone(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidPhone("(212) 555-0142"))
	assert.True(t, ValidPhone("212-555-0142"))
	assert.True(t, ValidPhone("+1 212 555 0142"))

	assert.False(t, ValidPhone("555-01"))
	assert.False(t, ValidPhone("call us today"))
	assert.False(t, ValidPhone(""))
}

func TestIsValid(t *testing.T) {
	t.Parallel()

	valid := model.Prospect{
		Name:         "Jane Doe",
		Organization: "Lakeside Counseling",
		Contact:      model.Contact{Email: "jane@lakeside.org", Phone: "(212) 555-0142"},
		SourceURL:    "https://lakeside.org/jane",
	}
	assert.True(t, IsValid(valid))

	badName := valid
	badName.Name = "Our Team"
	assert.False(t, IsValid(badName))

	badOrg := valid
	badOrg.Organization = "Powered by Wix"
	assert.False(t, IsValid(badOrg))

	genericEmail := valid
	genericEmail.Contact.Email = "info@lakeside.org"
	assert.False(t, IsValid(genericEmail), "generic email must be scrubbed before validation")

	noContact := valid
	noContact.Contact = model.Contact{}
	assert.True(t, IsValid(noContact), "missing contact is a warning, not a failure")
}

func TestScrub(t *testing.T) {
	t.Parallel()

	p := model.Prospect{
		Name:       "Jane Doe",
		Contact:    model.Contact{Email: "info@lakeside.org", Phone: "call us"},
		BioExcerpt: strings.Repeat("x", 500),
	}
	out := Scrub(p)

	assert.Empty(t, out.Contact.Email, "generic email is demoted, not kept")
	assert.Empty(t, out.Contact.Phone, "malformed phone is dropped")
	assert.Len(t, out.BioExcerpt, 400)
	assert.True(t, IsValid(out))
}

func TestScrub_BioTruncationKeepsRuneBoundary(t *testing.T) {
	t.Parallel()

	// A two-byte rune straddles the cut point; the trim must back off to
	// the rune start instead of leaving a broken byte.
	p := model.Prospect{
		Name:       "Renée O'Connor",
		BioExcerpt: strings.Repeat("a", 399) + "é and further excerpt text",
	}
	out := Scrub(p)

	assert.True(t, utf8.ValidString(out.BioExcerpt))
	assert.Equal(t, strings.Repeat("a", 399), out.BioExcerpt)
}

func TestWarnings(t *testing.T) {
	t.Parallel()

	p := model.Prospect{Name: "Jane Doe"}
	warns := Warnings(p)
	assert.Contains(t, warns, "missing organization")
	assert.Contains(t, warns, "no contact channel")
	assert.Contains(t, warns, "missing title")

	full := model.Prospect{
		Name:         "Jane Doe",
		Title:        "Clinical Director",
		Organization: "Lakeside Counseling",
		Contact:      model.Contact{Phone: "(212) 555-0142"},
	}
	assert.Empty(t, Warnings(full))
}
