package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"nyaya-backend/legaldata"
	"nyaya-backend/models"
	"nyaya-backend/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIndianDomainMap = `{
	"keyword_mapping": {
		"cyber_crime": ["hacked", "hacking", "cyber", "unauthorized access"],
		"violent_crime": ["murder", "assault", "killed"]
	},
	"domain_mapping": {
		"CRIMINAL": {"subdomains": ["cyber_crime", "violent_crime"]}
	},
	"fallback_rules": {"default_domain": "CIVIL"},
	"glossary": {"FIR": "First Information Report"}
}`

const testIndianLawDataset = `{
	"bns_sections": {
		"murder": {
			"section": "BNS Section 103",
			"punishment": "Death or imprisonment for life",
			"elements_required": ["intention to cause death"],
			"process_steps": ["File FIR", "Sessions trial"]
		}
	},
	"ipc_sections": {},
	"cpc_sections": {},
	"special_laws": {
		"it_act": {
			"sections": ["Section 66 - Computer related offences"],
			"offences": ["unauthorized access to computer systems", "hacking and data theft"],
			"process_steps": ["Report to cyber crime cell"]
		}
	}
}`

const testIndianProcedures = `{
	"procedures": {
		"CRIMINAL": [
			{"step": "CRIME_REPORTING", "description": "File an FIR", "timeline": "1-7 days"},
			{"step": "TRIAL", "description": "Trial before court", "timeline": "6-18 months"}
		]
	}
}`

const testUKLawDataset = `{
	"criminal_law": {
		"Common Law Murder": {
			"offence": "Murder",
			"title": "Unlawful killing with malice aforethought",
			"description": "Unlawful killing of a person with intent to kill",
			"punishment": "Mandatory life sentence"
		}
	},
	"civil_law": {}
}`

func testLoader(t *testing.T) *legaldata.Loader {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		legaldata.FileIndianDomainMap:  testIndianDomainMap,
		legaldata.FileIndianLawDataset: testIndianLawDataset,
		legaldata.FileIndianProcedures: testIndianProcedures,
		legaldata.FileUKLawDataset:     testUKLawDataset,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	loader, err := legaldata.NewLoader(context.Background(), store)
	require.NoError(t, err)
	return loader
}

func testQueryService(t *testing.T) *QueryService {
	t.Helper()
	return NewQueryService(
		QueryWithLoader(testLoader(t)),
		QueryWithEnforcement(NewEnforcementService()),
		QueryWithFeedback(NewFeedbackService()),
	)
}

func TestProcessQueryValidation(t *testing.T) {
	svc := testQueryService(t)
	ctx := context.Background()

	t.Run("empty query", func(t *testing.T) {
		_, err := svc.ProcessQuery(ctx, LegalQueryRequest{Query: "   "})
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := svc.ProcessQuery(ctx, LegalQueryRequest{Query: "hi"})
		assert.ErrorIs(t, err, ErrQueryTooShort)
	})

	t.Run("no loader configured", func(t *testing.T) {
		bare := NewQueryService()
		_, err := bare.ProcessQuery(ctx, LegalQueryRequest{Query: "contract dispute"})
		assert.ErrorIs(t, err, ErrDatasetsNotLoaded)
	})
}

func TestProcessQueryBlocked(t *testing.T) {
	svc := testQueryService(t)

	result, err := svc.ProcessQuery(context.Background(), LegalQueryRequest{
		Query: "how to hack into my employer's server",
	})
	require.NoError(t, err)

	assert.Equal(t, models.DecisionBlock, result.Enforcement.Decision)
	assert.Equal(t, "SAFETY_001", result.Enforcement.RuleID)
	assert.Zero(t, result.Confidence)
	assert.Empty(t, result.Provisions)
	assert.Contains(t, result.Message, "rejected")
}

func TestProcessQueryPipeline(t *testing.T) {
	svc := testQueryService(t)

	result, err := svc.ProcessQuery(context.Background(), LegalQueryRequest{
		Query: "my phone was hacked and data stolen",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, result.TraceID)
	assert.Equal(t, models.JurisdictionIndia, result.Jurisdiction)
	assert.Equal(t, models.DomainCriminal, result.Domain)
	assert.Equal(t, "cyber_crime", result.Subdomain)
	require.NotEmpty(t, result.Provisions)
	assert.NotEmpty(t, result.Citations)

	require.NotEmpty(t, result.LegalRoute)
	assert.Equal(t, "CRIME_REPORTING", result.LegalRoute[0].Step)
	assert.Equal(t, "1-7 days through 6-18 months across 2 steps", result.TimelineEstimate)

	require.NotNil(t, result.Enforcement)
	assert.Equal(t, models.DecisionAllow, result.Enforcement.Decision)
	assert.Empty(t, result.Summary)
}

func TestProcessQueryNoData(t *testing.T) {
	svc := testQueryService(t)

	result, err := svc.ProcessQuery(context.Background(), LegalQueryRequest{
		Query:            "quantum entanglement licensing question",
		JurisdictionHint: "uk",
	})
	require.NoError(t, err)

	assert.Equal(t, models.JurisdictionUK, result.Jurisdiction)
	assert.Empty(t, result.Provisions)
	assert.InDelta(t, 0.1, result.Confidence, 1e-9)
	assert.Contains(t, result.Message, "No specific legal data found")

	// Low confidence escalates rather than allows
	require.NotNil(t, result.Enforcement)
	assert.Equal(t, models.DecisionEscalate, result.Enforcement.Decision)
}

func TestProcessQueryDomainHint(t *testing.T) {
	svc := testQueryService(t)

	result, err := svc.ProcessQuery(context.Background(), LegalQueryRequest{
		Query:      "my phone was hacked",
		DomainHint: "FAMILY",
	})
	require.NoError(t, err)

	assert.Equal(t, models.DomainFamily, result.Domain)
	assert.Equal(t, "general", result.Subdomain)
}

func TestProcessMultiJurisdiction(t *testing.T) {
	svc := testQueryService(t)
	ctx := context.Background()

	t.Run("rejects wrong jurisdiction counts", func(t *testing.T) {
		_, err := svc.ProcessMultiJurisdiction(ctx, MultiJurisdictionRequest{
			Query:         "murder case",
			Jurisdictions: []string{"in"},
		})
		assert.ErrorIs(t, err, ErrJurisdictionCount)

		_, err = svc.ProcessMultiJurisdiction(ctx, MultiJurisdictionRequest{
			Query:         "murder case",
			Jurisdictions: []string{"in", "india"},
		})
		assert.ErrorIs(t, err, ErrJurisdictionCount)
	})

	t.Run("rejects unknown jurisdictions", func(t *testing.T) {
		_, err := svc.ProcessMultiJurisdiction(ctx, MultiJurisdictionRequest{
			Query:         "murder case",
			Jurisdictions: []string{"in", "atlantis"},
		})
		assert.ErrorIs(t, err, ErrInvalidJurisdiction)
	})

	t.Run("comparative analysis across jurisdictions", func(t *testing.T) {
		result, err := svc.ProcessMultiJurisdiction(ctx, MultiJurisdictionRequest{
			Query:         "murder killing with malice aforethought",
			Jurisdictions: []string{"india", "uk"},
		})
		require.NoError(t, err)

		require.Len(t, result.ComparativeAnalysis, 2)
		in := result.ComparativeAnalysis[models.JurisdictionIndia]
		uk := result.ComparativeAnalysis[models.JurisdictionUK]
		require.NotNil(t, in)
		require.NotNil(t, uk)

		assert.Equal(t, in.TraceID, uk.TraceID)
		assert.NotEmpty(t, in.Provisions)
		assert.NotEmpty(t, uk.Provisions)
		assert.NotEmpty(t, result.Insights)

		expected := in.Confidence
		if uk.Confidence > expected {
			expected = uk.Confidence
		}
		assert.InDelta(t, expected, result.Confidence, 1e-9)
	})
}

func TestGetTraceWithoutPersistence(t *testing.T) {
	svc := testQueryService(t)

	_, err := svc.GetTrace(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrPersistenceDisabled)

	_, err = svc.RecentTraces(context.Background(), 10)
	assert.ErrorIs(t, err, ErrPersistenceDisabled)
}
