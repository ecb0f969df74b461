package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/model"
)

func TestYouthExtractor_MarkdownCards(t *testing.T) {
	t.Parallel()

	content := `# Camp Lakewood Staff

### Jane Doe
Camp Director

### Tom Smith
Waterfront Coordinator
`
	ext := NewYouthOrgExtractor("Camp Lakewood")
	prospects := ext.Extract(content, "https://camplakewood.example.com/staff", model.ExtractionContext{})

	require.Len(t, prospects, 2)

	byName := map[string]model.Prospect{}
	for _, p := range prospects {
		byName[p.Name] = p
	}
	assert.Equal(t, "Camp Director", byName["Jane Doe"].Title)
	assert.Equal(t, "Waterfront Coordinator", byName["Tom Smith"].Title)
	assert.Equal(t, model.SourceYouthOrg, byName["Jane Doe"].SourceType)
}

func TestYouthExtractor_HTMLCards(t *testing.T) {
	t.Parallel()

	html := `<div class="team-grid">
<div class="team-member"><h3>Jane Doe</h3><p>Executive Director</p></div>
<div class="team-member"><h3>Tom Smith</h3><p>Program Lead</p></div>
</div>`

	ext := NewYouthOrgExtractor("Scout Council")
	prospects := ext.Extract(html, "https://scouts.example.org/team", model.ExtractionContext{})

	require.Len(t, prospects, 2)
	byName := map[string]model.Prospect{}
	for _, p := range prospects {
		byName[p.Name] = p
	}
	assert.Equal(t, "Executive Director", byName["Jane Doe"].Title)
	assert.Equal(t, "Program Lead", byName["Tom Smith"].Title)
}

func TestYouthExtractor_DeduplicatesAcrossLayers(t *testing.T) {
	t.Parallel()

	// The same person appearing as both an HTML card and a markdown
	// heading must yield one record.
	content := `<div class="card"><h3>Jane Doe</h3><p>Director</p></div>

### Jane Doe
Director
`
	ext := NewYouthOrgExtractor("")
	prospects := ext.Extract(content, "https://org.example.com/team", model.ExtractionContext{})
	assert.Len(t, prospects, 1)
}
