package legaldata

import "nyaya-backend/models"

// Dataset file names as published by cmd/import-datasets
const (
	FileIndianDomainMap = "indian_domain_map.json"
	FileUAEDomainMap    = "uae_domain_map.json"
	FileUKDomainMap     = "uk_domain_map.json"

	FileIndianLawDataset = "indian_law_dataset.json"
	FileUAELawDataset    = "uae_law_dataset.json"
	FileUKLawDataset     = "uk_law_dataset.json"

	FileIndianProcedures = "indian_procedures.json"
	FileUAEProcedures    = "uae_procedures.json"
	FileUKProcedures     = "uk_procedures.json"
)

// DomainMap holds the per-jurisdiction classification data
type DomainMap struct {
	KeywordMapping map[string][]string     `json:"keyword_mapping"`
	DomainMapping  map[string]DomainConfig `json:"domain_mapping"`
	FallbackRules  FallbackRules           `json:"fallback_rules"`
	Glossary       map[string]string       `json:"glossary,omitempty"`
}

// DomainConfig maps a domain to its subdomains
type DomainConfig struct {
	Subdomains []string `json:"subdomains"`
}

// FallbackRules configures classification defaults
type FallbackRules struct {
	DefaultDomain models.Domain `json:"default_domain"`
}

// DomainForSubdomain resolves a subdomain to its domain, if mapped
func (m *DomainMap) DomainForSubdomain(subdomain string) (models.Domain, bool) {
	for domain, cfg := range m.DomainMapping {
		for _, s := range cfg.Subdomains {
			if s == subdomain {
				return models.Domain(domain), true
			}
		}
	}
	return "", false
}

// BNSSection is one Bharatiya Nyaya Sanhita entry, keyed by offence name
type BNSSection struct {
	Section          string   `json:"section"`
	Punishment       string   `json:"punishment"`
	ElementsRequired []string `json:"elements_required"`
	ProcessSteps     []string `json:"process_steps"`
}

// IPCSection is one Indian Penal Code entry, keyed by section number
type IPCSection struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Punishment  string `json:"punishment"`
}

// CPCSection is one Civil Procedure Code entry
type CPCSection struct {
	Title     string `json:"title"`
	Procedure string `json:"procedure"`
}

// ITAct holds the Information Technology Act summary block
type ITAct struct {
	Sections     []string `json:"sections"`
	Offences     []string `json:"offences"`
	ProcessSteps []string `json:"process_steps"`
}

// SpecialLaws groups statute-specific blocks outside the main codes
type SpecialLaws struct {
	ITAct *ITAct `json:"it_act,omitempty"`
}

// IndianDataset is the Indian law dataset file shape
type IndianDataset struct {
	BNSSections map[string]BNSSection `json:"bns_sections"`
	IPCSections map[string]IPCSection `json:"ipc_sections"`
	CPCSections map[string]CPCSection `json:"cpc_sections"`
	SpecialLaws *SpecialLaws          `json:"special_laws,omitempty"`
}

// UAEArticle is one article or section in a named UAE law
type UAEArticle struct {
	Offence       string   `json:"offence,omitempty"`
	Title         string   `json:"title,omitempty"`
	Description   string   `json:"description,omitempty"`
	Punishment    string   `json:"punishment,omitempty"`
	CivilRemedies []string `json:"civil_remedies,omitempty"`
	ProcessSteps  []string `json:"process_steps,omitempty"`
}

// UAEDataset is the UAE law dataset file shape: law name -> article id -> article
type UAEDataset struct {
	CivilLaw    map[string]map[string]UAEArticle `json:"civil_law"`
	CriminalLaw map[string]map[string]UAEArticle `json:"criminal_law"`
}

// UKSection is one UK law entry, keyed by act/section identifier
type UKSection struct {
	Offence     string `json:"offence,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Punishment  string `json:"punishment,omitempty"`
	Procedure   string `json:"procedure,omitempty"`
}

// UKDataset is the UK law dataset file shape
type UKDataset struct {
	CriminalLaw map[string]UKSection `json:"criminal_law"`
	CivilLaw    map[string]UKSection `json:"civil_law"`
}

// ProcedureFile maps domains to procedure routes for one jurisdiction
type ProcedureFile struct {
	Procedures map[string][]models.RouteStep `json:"procedures"`
}
