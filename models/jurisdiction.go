package models

import "strings"

// Jurisdiction identifies which legal dataset a query is routed to
type Jurisdiction string

const (
	JurisdictionIndia Jurisdiction = "IN"
	JurisdictionUAE   Jurisdiction = "UAE"
	JurisdictionUK    Jurisdiction = "UK"
)

// AllJurisdictions lists every supported jurisdiction
var AllJurisdictions = []Jurisdiction{JurisdictionIndia, JurisdictionUAE, JurisdictionUK}

// jurisdictionAliases maps common hint spellings to canonical codes
var jurisdictionAliases = map[string]Jurisdiction{
	"IN":             JurisdictionIndia,
	"INDIA":          JurisdictionIndia,
	"INDIAN":         JurisdictionIndia,
	"UAE":            JurisdictionUAE,
	"DUBAI":          JurisdictionUAE,
	"ABU DHABI":      JurisdictionUAE,
	"UK":             JurisdictionUK,
	"UNITED KINGDOM": JurisdictionUK,
	"BRITAIN":        JurisdictionUK,
	"ENGLAND":        JurisdictionUK,
}

// ParseJurisdiction resolves a hint string to a jurisdiction.
// Returns false if the hint does not match any known alias.
func ParseJurisdiction(hint string) (Jurisdiction, bool) {
	j, ok := jurisdictionAliases[strings.ToUpper(strings.TrimSpace(hint))]
	return j, ok
}

// Valid reports whether the jurisdiction is one of the supported codes
func (j Jurisdiction) Valid() bool {
	switch j {
	case JurisdictionIndia, JurisdictionUAE, JurisdictionUK:
		return true
	}
	return false
}

// Domain is a coarse legal category
type Domain string

const (
	DomainCriminal           Domain = "CRIMINAL"
	DomainCivil              Domain = "CIVIL"
	DomainFamily             Domain = "FAMILY"
	DomainConsumerCommercial Domain = "CONSUMER_COMMERCIAL"
)

// ParseDomain resolves a hint string to a domain.
// Returns false if the hint does not match a known domain.
func ParseDomain(hint string) (Domain, bool) {
	switch Domain(strings.ToUpper(strings.TrimSpace(hint))) {
	case DomainCriminal:
		return DomainCriminal, true
	case DomainCivil:
		return DomainCivil, true
	case DomainFamily:
		return DomainFamily, true
	case DomainConsumerCommercial:
		return DomainConsumerCommercial, true
	}
	return "", false
}
