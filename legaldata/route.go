package legaldata

import (
	"fmt"

	"nyaya-backend/models"
)

// defaultRoutes are served when no procedure file covers the domain
var defaultRoutes = map[models.Domain][]models.RouteStep{
	models.DomainCriminal: {
		{Step: "CRIME_REPORTING", Description: "Initial reporting of alleged offence", Timeline: "1-7 days"},
		{Step: "INVESTIGATION", Description: "Fact-finding and evidence collection", Timeline: "30-90 days"},
		{Step: "TRIAL", Description: "Judicial adjudication on merits", Timeline: "6-18 months"},
		{Step: "JUDGMENT", Description: "Final determination by court", Timeline: "1-30 days"},
	},
	models.DomainCivil: {
		{Step: "CASE_ALLOCATION", Description: "Allocation to appropriate court", Timeline: "7-14 days"},
		{Step: "SETTLEMENT_ATTEMPT", Description: "Formal attempt to resolve dispute", Timeline: "30-60 days"},
		{Step: "TRIAL", Description: "Judicial adjudication on merits", Timeline: "6-24 months"},
		{Step: "JUDGMENT", Description: "Final determination by court", Timeline: "1-30 days"},
	},
	models.DomainFamily: {
		{Step: "PETITION_FILING", Description: "Filing of family petition", Timeline: "1-14 days"},
		{Step: "MEDIATION", Description: "Court-directed mediation attempt", Timeline: "30-90 days"},
		{Step: "HEARING", Description: "Family court hearing", Timeline: "3-12 months"},
		{Step: "DECREE", Description: "Final decree by family court", Timeline: "1-30 days"},
	},
	models.DomainConsumerCommercial: {
		{Step: "COMPLAINT_FILING", Description: "Filing complaint with consumer forum", Timeline: "1-14 days"},
		{Step: "NOTICE_TO_OPPOSITE_PARTY", Description: "Notice served on opposite party", Timeline: "14-30 days"},
		{Step: "ADJUDICATION", Description: "Forum adjudication on complaint", Timeline: "3-12 months"},
		{Step: "RELIEF_ORDER", Description: "Relief or compensation order", Timeline: "1-30 days"},
	},
}

// LegalRoute returns the procedure route for a jurisdiction and domain,
// falling back to the default route for the domain.
func (l *Loader) LegalRoute(jurisdiction models.Jurisdiction, domain models.Domain) models.RouteSteps {
	if routes, ok := l.procedures[jurisdiction]; ok {
		if steps, ok := routes[domain]; ok && len(steps) > 0 {
			return steps
		}
	}
	if steps, ok := defaultRoutes[domain]; ok {
		return steps
	}
	return defaultRoutes[models.DomainCivil]
}

// TimelineEstimate summarizes a route's span from its first and last steps
func TimelineEstimate(route models.RouteSteps) string {
	if len(route) == 0 {
		return ""
	}
	first := route[0].Timeline
	last := route[len(route)-1].Timeline
	if first == "" || last == "" {
		return ""
	}
	if len(route) == 1 {
		return first
	}
	return fmt.Sprintf("%s through %s across %d steps", first, last, len(route))
}
