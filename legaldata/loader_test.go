package legaldata

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"nyaya-backend/models"
	"nyaya-backend/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestNewLoader(t *testing.T) {
	t.Run("partial deployment loads what exists", func(t *testing.T) {
		dir := t.TempDir()
		writeDataset(t, dir, FileUKLawDataset, `{
			"criminal_law": {
				"Theft Act 1968 Section 1": {"offence": "Theft", "title": "Basic definition of theft"}
			},
			"civil_law": {}
		}`)
		writeDataset(t, dir, FileUKDomainMap, `{
			"keyword_mapping": {"theft_offences": ["theft", "stolen"]},
			"domain_mapping": {"CRIMINAL": {"subdomains": ["theft_offences"]}},
			"fallback_rules": {"default_domain": "CIVIL"},
			"glossary": {"CPS": "Crown Prosecution Service"}
		}`)

		store, err := storage.NewLocalStorage(dir)
		require.NoError(t, err)

		loader, err := NewLoader(context.Background(), store)
		require.NoError(t, err)

		assert.Equal(t, []models.Jurisdiction{models.JurisdictionUK}, loader.LoadedDatasets())

		_, ok := loader.DomainMapFor(models.JurisdictionUK)
		assert.True(t, ok)
		_, ok = loader.DomainMapFor(models.JurisdictionIndia)
		assert.False(t, ok)
	})

	t.Run("no datasets at all is an error", func(t *testing.T) {
		store, err := storage.NewLocalStorage(t.TempDir())
		require.NoError(t, err)

		_, err = NewLoader(context.Background(), store)
		assert.ErrorIs(t, err, ErrNoDatasets)
	})

	t.Run("malformed dataset file is skipped", func(t *testing.T) {
		dir := t.TempDir()
		writeDataset(t, dir, FileUKLawDataset, `{"criminal_law": {}}`)
		writeDataset(t, dir, FileIndianLawDataset, `not json at all`)

		store, err := storage.NewLocalStorage(dir)
		require.NoError(t, err)

		loader, err := NewLoader(context.Background(), store)
		require.NoError(t, err)
		assert.Equal(t, []models.Jurisdiction{models.JurisdictionUK}, loader.LoadedDatasets())
	})
}

func TestGlossaryTerms(t *testing.T) {
	loader := &Loader{
		domainMaps: map[models.Jurisdiction]*DomainMap{
			models.JurisdictionIndia: {
				Glossary: map[string]string{
					"FIR":                "First Information Report",
					"cognizable offence": "An offence where police may arrest without warrant",
					"bail":               "Conditional release pending trial",
				},
			},
		},
	}

	t.Run("matches terms case-insensitively including phrases", func(t *testing.T) {
		terms := loader.GlossaryTerms("How do I file an fir for a cognizable offence", models.JurisdictionIndia)

		assert.Len(t, terms, 2)
		assert.Contains(t, terms, "FIR")
		assert.Contains(t, terms, "cognizable offence")
	})

	t.Run("no matches returns empty map", func(t *testing.T) {
		terms := loader.GlossaryTerms("contract dispute", models.JurisdictionIndia)
		assert.Empty(t, terms)
	})

	t.Run("unknown jurisdiction returns empty map", func(t *testing.T) {
		terms := loader.GlossaryTerms("bail application", models.JurisdictionUAE)
		assert.Empty(t, terms)
	})
}

func TestProcedureRoutes(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, FileUKLawDataset, `{"criminal_law": {}}`)
	writeDataset(t, dir, FileUKProcedures, `{
		"procedures": {
			"CRIMINAL": [
				{"step": "CRIME_REPORTING", "description": "Report to the police", "timeline": "1-2 days"},
				{"step": "TRIAL_AND_SENTENCE", "description": "Trial and sentencing", "timeline": "3-24 months"}
			]
		}
	}`)

	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	loader, err := NewLoader(context.Background(), store)
	require.NoError(t, err)

	t.Run("loaded procedures are served", func(t *testing.T) {
		route := loader.LegalRoute(models.JurisdictionUK, models.DomainCriminal)

		require.Len(t, route, 2)
		assert.Equal(t, "CRIME_REPORTING", route[0].Step)
		assert.Equal(t, "3-24 months", route[1].Timeline)
	})

	t.Run("uncovered domain falls back to default route", func(t *testing.T) {
		route := loader.LegalRoute(models.JurisdictionUK, models.DomainFamily)

		require.NotEmpty(t, route)
		assert.Equal(t, "PETITION_FILING", route[0].Step)
	})
}

func TestTimelineEstimate(t *testing.T) {
	t.Run("summarizes first and last steps", func(t *testing.T) {
		estimate := TimelineEstimate(models.RouteSteps{
			{Step: "A", Timeline: "1-7 days"},
			{Step: "B", Timeline: "30-90 days"},
			{Step: "C", Timeline: "6-18 months"},
		})
		assert.Equal(t, "1-7 days through 6-18 months across 3 steps", estimate)
	})

	t.Run("single step returns its own timeline", func(t *testing.T) {
		estimate := TimelineEstimate(models.RouteSteps{{Step: "A", Timeline: "1-7 days"}})
		assert.Equal(t, "1-7 days", estimate)
	})

	t.Run("empty or untimed routes return nothing", func(t *testing.T) {
		assert.Empty(t, TimelineEstimate(nil))
		assert.Empty(t, TimelineEstimate(models.RouteSteps{{Step: "A"}, {Step: "B"}}))
	})
}
