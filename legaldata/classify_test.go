package legaldata

import (
	"testing"

	"nyaya-backend/models"

	"github.com/stretchr/testify/assert"
)

func classifierFixture() *Loader {
	return &Loader{
		domainMaps: map[models.Jurisdiction]*DomainMap{
			models.JurisdictionIndia: {
				KeywordMapping: map[string][]string{
					"cyber_crime": {"hacking", "cyber", "phishing"},
					"matrimonial": {"child custody", "divorce"},
				},
				DomainMapping: map[string]DomainConfig{
					"CRIMINAL": {Subdomains: []string{"cyber_crime"}},
					"FAMILY":   {Subdomains: []string{"matrimonial"}},
				},
				FallbackRules: FallbackRules{DefaultDomain: models.DomainCivil},
			},
		},
	}
}

func TestClassifyDomain(t *testing.T) {
	loader := classifierFixture()

	t.Run("exact keyword hit", func(t *testing.T) {
		c := loader.ClassifyDomain("hacking of my email account", models.JurisdictionIndia)

		assert.Equal(t, models.DomainCriminal, c.Domain)
		assert.Equal(t, "cyber_crime", c.Subdomain)
		assert.InDelta(t, 1.0, c.Confidence, 1e-9)
	})

	t.Run("partial word hit is capped", func(t *testing.T) {
		c := loader.ClassifyDomain("custody battle", models.JurisdictionIndia)

		assert.Equal(t, models.DomainFamily, c.Domain)
		assert.Equal(t, "matrimonial", c.Subdomain)
		assert.InDelta(t, 0.5, c.Confidence, 1e-9)
	})

	t.Run("no keyword hit falls back to default domain", func(t *testing.T) {
		c := loader.ClassifyDomain("completely unrelated question", models.JurisdictionIndia)

		assert.Equal(t, models.DomainCivil, c.Domain)
		assert.Equal(t, "general", c.Subdomain)
		assert.InDelta(t, 0.3, c.Confidence, 1e-9)
	})

	t.Run("missing domain map uses neutral defaults", func(t *testing.T) {
		c := loader.ClassifyDomain("anything", models.JurisdictionUK)

		assert.Equal(t, models.DomainCivil, c.Domain)
		assert.Equal(t, "general", c.Subdomain)
		assert.InDelta(t, 0.5, c.Confidence, 1e-9)
	})
}

func TestDetectJurisdiction(t *testing.T) {
	t.Run("hint takes priority over content", func(t *testing.T) {
		assert.Equal(t, models.JurisdictionUK, DetectJurisdiction("theft case in Dubai", "uk"))
	})

	t.Run("hint aliases resolve", func(t *testing.T) {
		assert.Equal(t, models.JurisdictionUK, DetectJurisdiction("What are my rights after unfair dismissal?", "ENGLAND"))
		assert.Equal(t, models.JurisdictionIndia, DetectJurisdiction("cheque bounce complaint", "indian"))
	})

	t.Run("invalid hint falls through to content", func(t *testing.T) {
		assert.Equal(t, models.JurisdictionUAE, DetectJurisdiction("theft case in Dubai", "mars"))
	})

	t.Run("content indicators", func(t *testing.T) {
		assert.Equal(t, models.JurisdictionIndia, DetectJurisdiction("property dispute in India", ""))
		assert.Equal(t, models.JurisdictionUAE, DetectJurisdiction("cheque bounce in abu dhabi", ""))
		assert.Equal(t, models.JurisdictionUK, DetectJurisdiction("tenancy issue in England", ""))
	})

	t.Run("default is India", func(t *testing.T) {
		assert.Equal(t, models.JurisdictionIndia, DetectJurisdiction("my phone was hacked", ""))
	})
}
