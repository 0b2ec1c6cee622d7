package legaldata

import (
	"sort"
	"strings"

	"nyaya-backend/models"
)

// Classification is the outcome of domain detection for a query
type Classification struct {
	Domain     models.Domain
	Subdomain  string
	Confidence float64
}

// Confidence assigned when classification falls back to the default domain
const fallbackConfidence = 0.3

// ClassifyDomain scores every subdomain's keyword list against the query.
// Exact phrase hits count double; remaining credit comes from word-set
// intersections. The best subdomain resolves to its domain through the
// domain mapping; no hit falls back to the jurisdiction default.
func (l *Loader) ClassifyDomain(query string, jurisdiction models.Jurisdiction) Classification {
	m, ok := l.domainMaps[jurisdiction]
	if !ok {
		return Classification{Domain: models.DomainCivil, Subdomain: "general", Confidence: 0.5}
	}

	queryLower := strings.ToLower(query)
	queryWords := tokenize(query)

	type scored struct {
		subdomain string
		score     float64
	}
	var scores []scored

	for subdomain, keywords := range m.KeywordMapping {
		if len(keywords) == 0 {
			continue
		}

		exactMatches := 0
		partialMatches := 0
		for _, keyword := range keywords {
			keywordLower := strings.ToLower(keyword)
			if strings.Contains(queryLower, keywordLower) {
				exactMatches++
			}
			for w := range tokenize(keywordLower) {
				if queryWords.contains(w) {
					partialMatches++
				}
			}
		}

		var score float64
		switch {
		case exactMatches > 0:
			score = float64(exactMatches*2+partialMatches) / float64(len(keywords))
			if score > 1.0 {
				score = 1.0
			}
		case partialMatches > 0:
			score = float64(partialMatches) / float64(len(keywords))
			if score > 0.8 {
				score = 0.8
			}
		default:
			continue
		}
		scores = append(scores, scored{subdomain: subdomain, score: score})
	}

	if len(scores) > 0 {
		// Tie-break on subdomain name for deterministic output
		sort.Slice(scores, func(i, j int) bool {
			if scores[i].score != scores[j].score {
				return scores[i].score > scores[j].score
			}
			return scores[i].subdomain < scores[j].subdomain
		})
		best := scores[0]
		if domain, ok := m.DomainForSubdomain(best.subdomain); ok {
			return Classification{Domain: domain, Subdomain: best.subdomain, Confidence: best.score}
		}
	}

	defaultDomain := m.FallbackRules.DefaultDomain
	if defaultDomain == "" {
		defaultDomain = models.DomainCivil
	}
	return Classification{Domain: defaultDomain, Subdomain: "general", Confidence: fallbackConfidence}
}
