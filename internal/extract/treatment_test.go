package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/model"
)

const programStaffPage = `# Pine Crest Academy

A residential program for adolescents in the mountains.

## Our Team

* Jane Doe, LCSW — Clinical Director
* Tom Smith — Admissions Coordinator
* Amy Chen, PhD — Program Psychologist

Questions? Call (406) 555-0175.
`

func TestTreatmentExtractor_RosterLines(t *testing.T) {
	t.Parallel()

	ext := NewTreatmentProgramExtractor("Pine Crest Academy")
	prospects := ext.Extract(programStaffPage, "https://pinecrest.example.com/team", model.ExtractionContext{})

	require.Len(t, prospects, 3)

	byName := map[string]model.Prospect{}
	for _, p := range prospects {
		byName[p.Name] = p
	}
	require.Contains(t, byName, "Jane Doe")
	require.Contains(t, byName, "Tom Smith")
	require.Contains(t, byName, "Amy Chen")

	assert.Equal(t, "Clinical Director", byName["Jane Doe"].Title)
	assert.Contains(t, byName["Jane Doe"].SpecialtyTags, "LCSW")
	assert.Equal(t, "Admissions Coordinator", byName["Tom Smith"].Title)
	assert.Empty(t, byName["Tom Smith"].SpecialtyTags)
	assert.Equal(t, model.SourceTreatmentProgram, byName["Amy Chen"].SourceType)
}

func TestTreatmentExtractor_SectionWindowBoundsRoster(t *testing.T) {
	t.Parallel()

	// A roster line inside the window after the team heading is kept; a
	// byline far below it (a blog post on the same page) is not.
	filler := strings.Repeat("Program details and daily schedule notes. ", 200)
	content := "## Our Team\n\n* Jane Doe, LCSW — Clinical Director\n\n" +
		filler + "\n* Pat Jones, PhD — Guest Blogger\n"

	ext := NewTreatmentProgramExtractor("Pine Crest Academy")
	prospects := ext.Extract(content, "https://pinecrest.example.com/team", model.ExtractionContext{})

	require.Len(t, prospects, 1)
	assert.Equal(t, "Jane Doe", prospects[0].Name)
}

func TestTreatmentExtractor_BodyFallback(t *testing.T) {
	t.Parallel()

	content := `Pine Crest Academy helps teens rebuild.

Our clinical work is overseen by Jane Doe, LCSW who joined in 2015.
`
	ext := NewTreatmentProgramExtractor("Pine Crest Academy")
	prospects := ext.Extract(content, "https://pinecrest.example.com/about", model.ExtractionContext{})

	require.Len(t, prospects, 1)
	assert.Equal(t, "Jane Doe", prospects[0].Name)
	assert.Equal(t, []string{"LCSW"}, prospects[0].SpecialtyTags)
}

func TestTreatmentExtractor_NoStaff(t *testing.T) {
	t.Parallel()

	ext := NewTreatmentProgramExtractor("")
	prospects := ext.Extract("Tuition, insurance, and enrollment information.", "https://pinecrest.example.com/fees", model.ExtractionContext{})
	assert.Empty(t, prospects)
}
