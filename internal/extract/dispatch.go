package extract

import (
	"net/url"
	"strings"

	"github.com/sells-group/prospect-cli/internal/model"
)

// hostPathMarkers per source type, checked against the URL's host and
// path. Order inside each list does not matter; the predicate order in
// Dispatch does.
var (
	clinicalMarkers = []string{
		"psychologytoday.com", "goodtherapy", "therapyden",
		"/therapists", "/therapist/", "/counselors",
	}
	registryMarkers = []string{
		"healthgrades", "npiprofile", "npidb", "npino",
		"webmd.com/doctor", "/providers", "/physician",
	}
	treatmentMarkers = []string{
		"rehab", "recovery", "residential", "treatment",
		"wilderness", "sober",
	}
	diplomaticMarkers = []string{
		"embassy", "consulate", "diplomat", "mission",
	}
	youthMarkers = []string{
		"scout", "ymca", "boysandgirls", "campminder",
		"youth", "camp", "afterschool", "4-h",
	}
)

// hintedTypes maps a request-level source hint to the extractor used
// when no URL predicate fires.
var hintedTypes = map[model.SourceHint]model.SourceType{
	model.HintDirectoryProfile:  model.SourceClinicalDirectory,
	model.HintClinicalRegistry:  model.SourceMedicalRegistry,
	model.HintTreatmentProgram:  model.SourceTreatmentProgram,
	model.HintDiplomaticMission: model.SourceDiplomaticMission,
	model.HintYouthActivityOrg:  model.SourceYouthOrg,
}

// Dispatch selects the extractor for a fetched page. The predicate chain
// is evaluated in fixed order, first match wins, and the generic
// extractor is the guaranteed final fallback, so the result is
// deterministic for a given URL, content, and hint.
func Dispatch(rawURL, pageTitle string, hint model.SourceHint) Extractor {
	target := dispatchTarget(rawURL)
	if target == "" {
		if t, ok := hintedTypes[hint]; ok {
			target = string(t)
		}
	}

	switch model.SourceType(target) {
	case model.SourceClinicalDirectory:
		return NewClinicalDirectoryExtractor(pageTitle)
	case model.SourceMedicalRegistry:
		return NewMedicalRegistryExtractor(pageTitle)
	case model.SourceTreatmentProgram:
		return NewTreatmentProgramExtractor(pageTitle)
	case model.SourceDiplomaticMission:
		return NewDiplomaticMissionExtractor(pageTitle)
	case model.SourceYouthOrg:
		return NewYouthOrgExtractor(pageTitle)
	default:
		return NewGenericExtractor(pageTitle)
	}
}

// dispatchTarget runs the URL predicates in fixed order and returns the
// winning source type, or "" when none match.
func dispatchTarget(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	subject := strings.ToLower(u.Host + u.Path)

	ordered := []struct {
		sourceType model.SourceType
		markers    []string
	}{
		{model.SourceClinicalDirectory, clinicalMarkers},
		{model.SourceMedicalRegistry, registryMarkers},
		{model.SourceTreatmentProgram, treatmentMarkers},
		{model.SourceDiplomaticMission, diplomaticMarkers},
		{model.SourceYouthOrg, youthMarkers},
	}
	for _, entry := range ordered {
		for _, marker := range entry.markers {
			if strings.Contains(subject, marker) {
				return string(entry.sourceType)
			}
		}
	}
	return ""
}
