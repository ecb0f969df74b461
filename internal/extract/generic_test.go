package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/model"
)

func TestGenericExtractor_CredentialedName(t *testing.T) {
	t.Parallel()

	content := `# About Our Practice

Jane Doe, LCSW has worked with adolescents for fifteen years.
Reach her at jane.doe@lakeside.org or (212) 555-0142.
`
	g := NewGenericExtractor("Jane Doe | Lakeside Counseling")
	prospects := g.Extract(content, "https://lakeside.org/about", model.ExtractionContext{})

	require.Len(t, prospects, 1)
	p := prospects[0]
	assert.Equal(t, "Jane Doe", p.Name)
	assert.Equal(t, "jane.doe@lakeside.org", p.Contact.Email)
	assert.Equal(t, "(212) 555-0142", p.Contact.Phone)
	assert.Equal(t, "Lakeside Counseling", p.Organization)
	assert.Contains(t, p.SpecialtyTags, "LCSW")
	assert.Equal(t, model.SourceGeneric, p.SourceType)
	assert.NotEmpty(t, p.BioExcerpt)
}

func TestGenericExtractor_TwoPeopleNoCrossAssignment(t *testing.T) {
	t.Parallel()

	content := `## Our Clinicians

Jane Doe, LCSW leads the adolescent program.
Email: jane@lakeside.org

Tom Smith, LMFT runs the family therapy track.
Email: tom@lakeside.org
`
	g := NewGenericExtractor("Our Clinicians | Lakeside Counseling")
	prospects := g.Extract(content, "https://lakeside.org/team", model.ExtractionContext{})

	require.Len(t, prospects, 2)

	byName := map[string]model.Prospect{}
	for _, p := range prospects {
		byName[p.Name] = p
	}
	require.Contains(t, byName, "Jane Doe")
	require.Contains(t, byName, "Tom Smith")

	assert.Equal(t, "jane@lakeside.org", byName["Jane Doe"].Contact.Email)
	assert.Equal(t, "tom@lakeside.org", byName["Tom Smith"].Contact.Email)
}

func TestGenericExtractor_SharedContactEquidistantDropped(t *testing.T) {
	t.Parallel()

	// One office email exactly halfway between two clinicians. It cannot
	// be attributed, so neither record gets it.
	var b strings.Builder
	b.WriteString("Jane Doe, LCSW sees adolescents.")
	b.WriteString(strings.Repeat(" ", 120-b.Len()))
	b.WriteString("shared@lakeside.org")
	b.WriteString(strings.Repeat(" ", 240-b.Len()))
	b.WriteString("Tom Smith, LMFT sees families.")

	g := NewGenericExtractor("Lakeside Counseling")
	prospects := g.Extract(b.String(), "https://lakeside.org/team", model.ExtractionContext{})

	require.Len(t, prospects, 2)
	for _, p := range prospects {
		assert.Empty(t, p.Contact.Email, "%s must not claim the tied email", p.Name)
	}
}

func TestGenericExtractor_EmailLayerOnlyWhenStrictLayersEmpty(t *testing.T) {
	t.Parallel()

	// No credentialed or honorific names anywhere; the email local is
	// the only signal.
	content := `Contact our office at the address below.

For scheduling questions write to maria.lopez@brightpath.org and we
will respond within two business days.
`
	g := NewGenericExtractor("")
	prospects := g.Extract(content, "https://brightpath.org/contact", model.ExtractionContext{})

	require.Len(t, prospects, 1)
	assert.Equal(t, "Maria Lopez", prospects[0].Name)

	// With a strict-layer hit present, email inference must stay off.
	content2 := content + "\nJane Doe, LCSW supervises the clinical team.\n"
	prospects2 := g.Extract(content2, "https://brightpath.org/contact", model.ExtractionContext{})
	require.Len(t, prospects2, 1)
	assert.Equal(t, "Jane Doe", prospects2[0].Name)
}

func TestGenericExtractor_FarContactNotAssigned(t *testing.T) {
	t.Parallel()

	filler := ""
	for i := 0; i < 40; i++ {
		filler += "This paragraph describes the practice philosophy in detail.\n"
	}
	content := "Jane Doe, LCSW welcomes new clients.\n" + filler + "\nWrite to desk-owner@example.org for billing.\n"

	g := NewGenericExtractor("")
	prospects := g.Extract(content, "https://example.org", model.ExtractionContext{})

	require.Len(t, prospects, 1)
	assert.Empty(t, prospects[0].Contact.Email, "an email outside the proximity window must not be claimed")
}

func TestGenericExtractor_InvalidNamesDropped(t *testing.T) {
	t.Parallel()

	content := `Meet Our Team, LCSW and the rest of the department.`
	g := NewGenericExtractor("")
	prospects := g.Extract(content, "https://example.org/team", model.ExtractionContext{})
	assert.Empty(t, prospects)
}

func TestGenericExtractor_CategoryHintBecomesTag(t *testing.T) {
	t.Parallel()

	content := "Jane Doe, PhD writes about adolescent development."
	g := NewGenericExtractor("")
	prospects := g.Extract(content, "https://example.org", model.ExtractionContext{CategoryHint: "consultant"})

	require.Len(t, prospects, 1)
	assert.Contains(t, prospects[0].SpecialtyTags, "PhD")
	assert.Contains(t, prospects[0].SpecialtyTags, "consultant")
}
