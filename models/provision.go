package models

import (
	"database/sql/driver"
	"encoding/json"
)

// ProvisionType identifies which body of law a provision came from
type ProvisionType string

const (
	ProvisionBNS      ProvisionType = "bns_section"
	ProvisionIPC      ProvisionType = "ipc_section"
	ProvisionCPC      ProvisionType = "cpc_section"
	ProvisionITAct    ProvisionType = "it_act_section"
	ProvisionCivil    ProvisionType = "civil_law"
	ProvisionCriminal ProvisionType = "criminal_law"
)

// Provision is a single legal provision matched against a query
type Provision struct {
	Type           ProvisionType     `json:"type"`
	Law            string            `json:"law,omitempty"`
	Section        string            `json:"section"`
	Title          string            `json:"title,omitempty"`
	Offence        string            `json:"offence,omitempty"`
	Description    string            `json:"description,omitempty"`
	Definition     string            `json:"definition,omitempty"`
	Punishment     string            `json:"punishment,omitempty"`
	Penalties      map[string]string `json:"penalties,omitempty"`
	Elements       []string          `json:"elements,omitempty"`
	Remedies       []string          `json:"remedies,omitempty"`
	Process        []string          `json:"process,omitempty"`
	Citations      []string          `json:"citations,omitempty"`
	Confidence     float64           `json:"confidence"`
	RelevanceScore float64           `json:"relevance_score"`
}

// Provisions is a scored, ordered list of matched provisions
type Provisions []Provision

// Value implements driver.Valuer for JSONB
func (p Provisions) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB
func (p *Provisions) Scan(value interface{}) error {
	if value == nil {
		*p = make(Provisions, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*p = make(Provisions, 0)
		return nil
	}

	if len(bytes) == 0 {
		*p = make(Provisions, 0)
		return nil
	}

	return json.Unmarshal(bytes, p)
}
