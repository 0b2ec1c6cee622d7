package legaldata

import (
	"strings"

	"nyaya-backend/models"
)

var jurisdictionIndicators = []struct {
	terms        []string
	jurisdiction models.Jurisdiction
}{
	{[]string{"INDIA", "INDIAN"}, models.JurisdictionIndia},
	{[]string{"UAE", "DUBAI", "ABU DHABI", "SHARJAH"}, models.JurisdictionUAE},
	{[]string{"UK", "UNITED KINGDOM", "BRITAIN", "ENGLAND"}, models.JurisdictionUK},
}

// DetectJurisdiction picks the jurisdiction for a query.
// Priority: explicit hint > query content > default (India).
func DetectJurisdiction(query, hint string) models.Jurisdiction {
	if hint != "" {
		if j, ok := models.ParseJurisdiction(hint); ok {
			return j
		}
	}

	queryUpper := strings.ToUpper(query)
	for _, indicator := range jurisdictionIndicators {
		for _, term := range indicator.terms {
			if strings.Contains(queryUpper, term) {
				return indicator.jurisdiction
			}
		}
	}

	return models.JurisdictionIndia
}
