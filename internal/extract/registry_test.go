package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/model"
)

const registryRecord = `Dr. Jane Doe, MD

Specialty: Child and Adolescent Psychiatry
NPI Number: 1234567890

Practice location: Riverdale, NY 10471
Phone: (212) 555-0142
`

func TestRegistryExtractor_Record(t *testing.T) {
	t.Parallel()

	ext := NewMedicalRegistryExtractor("Jane Doe MD | Provider Registry")
	prospects := ext.Extract(registryRecord, "https://registry.example.com/providers/1234567890", model.ExtractionContext{})

	require.Len(t, prospects, 1)
	p := prospects[0]
	assert.Equal(t, "Jane Doe", p.Name)
	assert.Equal(t, model.SourceMedicalRegistry, p.SourceType)
	assert.Contains(t, p.SpecialtyTags, "MD")
	assert.Contains(t, p.SpecialtyTags, "NPI 1234567890")
	assert.Equal(t, "Riverdale, NY", p.Location)
	assert.Equal(t, "(212) 555-0142", p.Contact.Phone)
}

func TestRegistryExtractor_NoProvider(t *testing.T) {
	t.Parallel()

	ext := NewMedicalRegistryExtractor("")
	prospects := ext.Extract("Search our registry by name or NPI number.", "https://registry.example.com", model.ExtractionContext{})
	assert.Empty(t, prospects)
}

func TestRegistryExtractor_MiddleInitial(t *testing.T) {
	t.Parallel()

	ext := NewMedicalRegistryExtractor("")
	prospects := ext.Extract("Jane Q. Doe, DO practices general pediatrics.", "https://registry.example.com/providers/x", model.ExtractionContext{})

	require.Len(t, prospects, 1)
	assert.Equal(t, "Jane Q. Doe", prospects[0].Name)
	assert.Contains(t, prospects[0].SpecialtyTags, "DO")
}
