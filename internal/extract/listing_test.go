package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/model"
)

const listingContent = `# Therapists in Riverdale

- [Jane Doe, LCSW](https://directory.example.com/therapists/jane-doe)
- [Tom Smith, LMFT](https://directory.example.com/therapists/tom-smith)
- [Amy Chen, PhD](https://directory.example.com/therapists/amy-chen)
- [Bob Park, LPC](https://directory.example.com/therapists/bob-park)
`

func TestIsListing(t *testing.T) {
	t.Parallel()

	assert.True(t, isListing(listingContent))
	assert.False(t, isListing("# Jane Doe, LCSW\n\nJane sees adolescents and families."))

	// Two profile links is still a profile page, not a listing.
	twoLinks := `See also [Jane](https://x.example.com/profile/jane) and [Tom](https://x.example.com/profile/tom).`
	assert.False(t, isListing(twoLinks))
}

func TestListingStubs(t *testing.T) {
	t.Parallel()

	stubs := listingStubs(listingContent, model.SourceClinicalDirectory)
	require.Len(t, stubs, 4)
	for _, s := range stubs {
		assert.True(t, s.Partial(), "stub must carry only the profile URL")
		assert.Empty(t, s.Name)
		assert.Equal(t, model.SourceClinicalDirectory, s.SourceType)
		assert.Contains(t, s.SourceURL, "directory.example.com/therapists/")
	}
}

func TestProfileLinks_HTMLAnchors(t *testing.T) {
	t.Parallel()

	html := `<ul>
<li><a href="https://x.example.com/staff/jane">Jane</a></li>
<li><a href="https://x.example.com/staff/tom">Tom</a></li>
<li><a href="https://x.example.com/staff/amy">Amy</a></li>
<li><a href="https://x.example.com/pricing">Pricing</a></li>
</ul>`
	links := profileLinks(html)
	assert.Len(t, links, 3, "non-profile links are ignored")
}

func TestProfileLinks_Deduplicates(t *testing.T) {
	t.Parallel()

	content := `[Jane](https://x.example.com/profile/jane) and again [Jane](https://x.example.com/profile/jane)`
	assert.Len(t, profileLinks(content), 1)
}

func TestClinicalExtractor_ListingReturnsStubs(t *testing.T) {
	t.Parallel()

	ext := NewClinicalDirectoryExtractor("Therapists in Riverdale")
	prospects := ext.Extract(listingContent, "https://directory.example.com/riverdale", model.ExtractionContext{})

	require.Len(t, prospects, 4)
	for _, p := range prospects {
		assert.True(t, p.Partial())
	}
}
