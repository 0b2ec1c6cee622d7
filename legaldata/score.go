package legaldata

import "strings"

// Minimum overlap score for a provision to be considered relevant
const relevanceThreshold = 0.1

// Boost applied when the query/provision overlap includes a tech term
const techBoost = 2.0

// Maximum number of provisions returned per search
const maxResults = 3

// techTerms marks technology vocabulary; overlaps touching these terms
// are boosted because statute text rarely repeats everyday tech words.
var techTerms = wordSet{}.add(
	"computer", "digital", "electronic", "phone", "mobile", "device", "access",
	"unauthorized", "cyber", "hacking", "data", "privacy", "telecommunication",
	"smartphone", "tablet", "laptop", "internet", "network", "wifi", "bluetooth",
	"malware", "virus", "trojan", "spyware", "phishing", "identity", "theft",
	"online", "e-commerce", "signature", "encryption",
)

// techQueryTerms flags a query as technology-related
var techQueryTerms = []string{
	"phone", "mobile", "device", "access", "unauthorized", "cyber", "hacking",
	"computer", "digital", "electronic", "privacy", "data", "security",
}

// personalStatusTerms flags a provision as family/personal-status law
var personalStatusTerms = []string{
	"divorce", "marriage", "family", "personal status", "child support",
	"custody", "spouse", "inheritance", "will", "estate", "property division",
}

// techResultTerms marks a provision as technology-related
var techResultTerms = []string{
	"computer", "digital", "electronic", "phone", "mobile", "device", "access",
	"unauthorized", "cyber", "hacking", "data", "privacy", "telecommunication",
	"internet", "network", "fraud", "theft", "intrusion", "malware", "virus",
	"identity theft", "phishing",
}

type wordSet map[string]struct{}

func (w wordSet) add(words ...string) wordSet {
	for _, word := range words {
		w[word] = struct{}{}
	}
	return w
}

func (w wordSet) contains(word string) bool {
	_, ok := w[word]
	return ok
}

// tokenize splits text into a lowercase word set
func tokenize(text string) wordSet {
	words := wordSet{}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		words[w] = struct{}{}
	}
	return words
}

// overlapScore computes the keyword-overlap relevance between the query
// word set and a candidate provision text:
//
//	score = |query ∩ candidate| / max(|query|, |candidate|)
//
// doubled when the overlap includes a tech term.
func overlapScore(queryWords wordSet, candidateText string) float64 {
	candidateWords := tokenize(candidateText)
	if len(queryWords) == 0 || len(candidateWords) == 0 {
		return 0
	}

	common := 0
	techOverlap := false
	for w := range queryWords {
		if candidateWords.contains(w) {
			common++
			if techTerms.contains(w) {
				techOverlap = true
			}
		}
	}

	denom := len(queryWords)
	if len(candidateWords) > denom {
		denom = len(candidateWords)
	}

	score := float64(common) / float64(denom)
	if techOverlap {
		score *= techBoost
	}
	return score
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// crossTopicRelevant rejects provisions that score on incidental word
// overlap across unrelated topics: a technology query matching a
// family-law provision is noise regardless of the raw score.
func crossTopicRelevant(query, title, content string) bool {
	queryLower := strings.ToLower(query)
	resultText := strings.ToLower(title) + " " + strings.ToLower(content)

	queryHasTech := containsAny(queryLower, techQueryTerms)
	if !queryHasTech {
		return true
	}
	if containsAny(resultText, personalStatusTerms) {
		return false
	}
	return containsAny(resultText, techResultTerms)
}
