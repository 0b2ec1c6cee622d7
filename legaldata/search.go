package legaldata

import (
	"fmt"
	"sort"
	"strings"

	"nyaya-backend/models"
)

// Confidence caps per section family, preserved from the dataset design
const (
	capCriminal  = 0.95
	capIPC       = 0.9
	capCivil     = 0.9
	capITAct     = 0.85
	capProcedure = 0.8
)

// IT Act relevance uses a lower threshold because the block describes a
// whole law area rather than a single provision.
const itActThreshold = 0.05

// techQueryMapping maps common query phrasings to the statute vocabulary
// the IT Act block is written in.
var techQueryMapping = map[string][]string{
	"unauthorized access": {"unauthorized access", "computer misuse", "cyber theft", "data theft", "intrusion", "hacking"},
	"phone":               {"phone", "mobile", "device", "electronic", "telecommunication"},
	"privacy":             {"privacy", "data protection", "personal information"},
	"hacking":             {"hacking", "cyber attack", "intrusion", "unauthorized access"},
	"computer":            {"computer", "digital", "electronic", "device"},
}

// Search finds the provisions most relevant to a query in the given
// jurisdiction's dataset: keyword-overlap scoring over every candidate
// section, cross-topic filtering, top 3 by relevance.
func (l *Loader) Search(query string, jurisdiction models.Jurisdiction, domain models.Domain) ([]models.Provision, error) {
	switch jurisdiction {
	case models.JurisdictionIndia:
		if l.indian == nil {
			return nil, nil
		}
		return l.searchIndianLaw(query, domain), nil
	case models.JurisdictionUAE:
		if l.uae == nil {
			return nil, nil
		}
		return l.searchUAELaw(query), nil
	case models.JurisdictionUK:
		if l.uk == nil {
			return nil, nil
		}
		return l.searchUKLaw(query), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownJurisdiction, jurisdiction)
	}
}

func (l *Loader) searchIndianLaw(query string, domain models.Domain) []models.Provision {
	// Curated pattern matches short-circuit ordinary scoring
	if direct := matchFallbacks(query, indianTechFallbacks); len(direct) > 0 {
		return direct
	}

	queryWords := tokenize(query)
	var results []models.Provision

	if p, ok := l.searchITAct(query, queryWords); ok {
		results = append(results, p)
	}

	for offence, details := range l.indian.BNSSections {
		text := fmt.Sprintf("%s %s", offence, details.Punishment)
		score := overlapScore(queryWords, text)
		if score <= relevanceThreshold {
			continue
		}
		content := details.Punishment + " " + strings.Join(details.ElementsRequired, " ")
		if !crossTopicRelevant(query, offence, content) {
			continue
		}
		results = append(results, models.Provision{
			Type:           models.ProvisionBNS,
			Section:        details.Section,
			Offence:        offence,
			Punishment:     details.Punishment,
			Elements:       details.ElementsRequired,
			Process:        details.ProcessSteps,
			Citations:      []string{fmt.Sprintf("Bharatiya Nyaya Sanhita Section %s", details.Section)},
			Confidence:     capScore(score, capCriminal),
			RelevanceScore: score,
		})
	}

	for section, details := range l.indian.IPCSections {
		text := fmt.Sprintf("%s %s %s", section, details.Title, details.Description)
		score := overlapScore(queryWords, text)
		if score <= relevanceThreshold {
			continue
		}
		if !crossTopicRelevant(query, section+" "+details.Title, details.Description+" "+details.Punishment) {
			continue
		}
		results = append(results, models.Provision{
			Type:           models.ProvisionIPC,
			Section:        section,
			Title:          details.Title,
			Description:    details.Description,
			Punishment:     details.Punishment,
			Citations:      []string{fmt.Sprintf("Indian Penal Code Section %s", section)},
			Confidence:     capScore(score, capIPC),
			RelevanceScore: score,
		})
	}

	// Civil procedure only applies to civil queries
	if domain == models.DomainCivil {
		for section, details := range l.indian.CPCSections {
			text := fmt.Sprintf("%s %s", section, details.Title)
			score := overlapScore(queryWords, text)
			if score <= relevanceThreshold {
				continue
			}
			if !crossTopicRelevant(query, section+" "+details.Title, details.Procedure) {
				continue
			}
			results = append(results, models.Provision{
				Type:           models.ProvisionCPC,
				Section:        section,
				Title:          details.Title,
				Description:    details.Procedure,
				Citations:      []string{fmt.Sprintf("Civil Procedure Code Section %s", section)},
				Confidence:     capScore(score, capProcedure),
				RelevanceScore: score,
			})
		}
	}

	return topResults(results)
}

// searchITAct scores the IT Act summary block for technology queries
func (l *Loader) searchITAct(query string, queryWords wordSet) (models.Provision, bool) {
	if l.indian.SpecialLaws == nil || l.indian.SpecialLaws.ITAct == nil {
		return models.Provision{}, false
	}

	hasTech := false
	for w := range queryWords {
		if techTerms.contains(w) {
			hasTech = true
			break
		}
	}
	if !hasTech {
		return models.Provision{}, false
	}

	itAct := l.indian.SpecialLaws.ITAct
	content := strings.Join(itAct.Offences, " ") + " " + strings.Join(itAct.Sections, " ") + " " + strings.Join(itAct.ProcessSteps, " ")
	contentWords := tokenize(content)

	// Credit statute-vocabulary synonyms of the query phrasing
	queryLower := strings.ToLower(query)
	contentLower := strings.ToLower(content)
	mappingMatches := 0
	for queryTerm, legalTerms := range techQueryMapping {
		if !strings.Contains(queryLower, queryTerm) {
			continue
		}
		for _, legalTerm := range legalTerms {
			if strings.Contains(contentLower, legalTerm) {
				mappingMatches++
				break
			}
		}
	}

	common := 0
	for w := range queryWords {
		if contentWords.contains(w) {
			common++
		}
	}

	denom := len(queryWords)
	if len(contentWords) > denom {
		denom = len(contentWords)
	}
	if denom == 0 {
		return models.Provision{}, false
	}

	score := float64(common+mappingMatches) / float64(denom)
	if score <= itActThreshold {
		return models.Provision{}, false
	}

	return models.Provision{
		Type:           models.ProvisionITAct,
		Section:        strings.Join(itAct.Sections, ", "),
		Title:          "Information Technology Act, 2000 - Cyber Crimes",
		Description:    fmt.Sprintf("Relevant offences: %s", strings.Join(itAct.Offences, ", ")),
		Punishment:     "Varies by section - Refer to IT Act 2000",
		Process:        itAct.ProcessSteps,
		Citations:      []string{"Information Technology Act, 2000"},
		Confidence:     capScore(score*2, capITAct),
		RelevanceScore: score,
	}, true
}

func (l *Loader) searchUAELaw(query string) []models.Provision {
	if direct := matchFallbacks(query, uaeFallbacks); len(direct) > 0 {
		return direct
	}

	queryWords := tokenize(query)
	var results []models.Provision

	for lawName, articles := range l.uae.CivilLaw {
		for articleID, details := range articles {
			text := fmt.Sprintf("%s %s %s %s", articleID, details.Offence, details.Title, details.Description)
			score := overlapScore(queryWords, text)
			if score <= relevanceThreshold {
				continue
			}
			title := fmt.Sprintf("%s %s %s", lawName, articleID, details.Offence)
			content := strings.Join(details.CivilRemedies, " ") + " " + strings.Join(details.ProcessSteps, " ") + " " + details.Description
			if !crossTopicRelevant(query, title, content) {
				continue
			}
			results = append(results, models.Provision{
				Type:           models.ProvisionCivil,
				Law:            lawName,
				Section:        articleID,
				Offence:        details.Offence,
				Description:    details.Description,
				Remedies:       details.CivilRemedies,
				Process:        details.ProcessSteps,
				Citations:      []string{fmt.Sprintf("%s %s", lawName, articleID)},
				Confidence:     capScore(score, capCivil),
				RelevanceScore: score,
			})
		}
	}

	for lawName, sections := range l.uae.CriminalLaw {
		for sectionID, details := range sections {
			text := fmt.Sprintf("%s %s %s %s", sectionID, details.Offence, details.Title, details.Description)
			score := overlapScore(queryWords, text)
			if score <= relevanceThreshold {
				continue
			}
			title := fmt.Sprintf("%s %s %s", lawName, sectionID, details.Offence)
			if !crossTopicRelevant(query, title, details.Punishment+" "+details.Description) {
				continue
			}
			results = append(results, models.Provision{
				Type:           models.ProvisionCriminal,
				Law:            lawName,
				Section:        sectionID,
				Offence:        details.Offence,
				Description:    details.Description,
				Punishment:     details.Punishment,
				Citations:      []string{fmt.Sprintf("%s %s", lawName, sectionID)},
				Confidence:     capScore(score, capCriminal),
				RelevanceScore: score,
			})
		}
	}

	return topResults(results)
}

func (l *Loader) searchUKLaw(query string) []models.Provision {
	queryWords := tokenize(query)
	var results []models.Provision

	for section, details := range l.uk.CriminalLaw {
		text := fmt.Sprintf("%s %s %s %s", section, details.Offence, details.Title, details.Description)
		score := overlapScore(queryWords, text)
		if score <= relevanceThreshold {
			continue
		}
		title := fmt.Sprintf("%s %s %s", section, details.Offence, details.Title)
		if !crossTopicRelevant(query, title, details.Description+" "+details.Punishment) {
			continue
		}
		results = append(results, models.Provision{
			Type:           models.ProvisionCriminal,
			Section:        section,
			Offence:        details.Offence,
			Title:          details.Title,
			Description:    details.Description,
			Punishment:     details.Punishment,
			Citations:      []string{section},
			Confidence:     capScore(score, capCriminal),
			RelevanceScore: score,
		})
	}

	for section, details := range l.uk.CivilLaw {
		text := fmt.Sprintf("%s %s %s", section, details.Title, details.Description)
		score := overlapScore(queryWords, text)
		if score <= relevanceThreshold {
			continue
		}
		if !crossTopicRelevant(query, section+" "+details.Title, details.Description+" "+details.Procedure) {
			continue
		}
		results = append(results, models.Provision{
			Type:           models.ProvisionCivil,
			Section:        section,
			Title:          details.Title,
			Description:    details.Description,
			Citations:      []string{section},
			Confidence:     capScore(score, capCivil),
			RelevanceScore: score,
		})
	}

	return topResults(results)
}

func capScore(score, limit float64) float64 {
	if score > limit {
		return limit
	}
	return score
}

// topResults orders by relevance and keeps the best matches.
// Ties break on section so map iteration order never leaks into output.
func topResults(results []models.Provision) []models.Provision {
	sort.Slice(results, func(i, j int) bool {
		if results[i].RelevanceScore != results[j].RelevanceScore {
			return results[i].RelevanceScore > results[j].RelevanceScore
		}
		return results[i].Section < results[j].Section
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}
