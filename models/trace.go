package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EnforcementDecision is the outcome of the enforcement rule ladder
type EnforcementDecision string

const (
	DecisionAllow        EnforcementDecision = "ALLOW"
	DecisionBlock        EnforcementDecision = "BLOCK"
	DecisionEscalate     EnforcementDecision = "ESCALATE"
	DecisionSoftRedirect EnforcementDecision = "SOFT_REDIRECT"
)

// PolicySource identifies which policy family produced a decision
type PolicySource string

const (
	PolicyGovernance      PolicySource = "GOVERNANCE"
	PolicySystemSafety    PolicySource = "SYSTEM_SAFETY"
	PolicyLegalCompliance PolicySource = "LEGAL_COMPLIANCE"
)

// EnforcementMetadata is the decision record attached to every query response
type EnforcementMetadata struct {
	Decision     EnforcementDecision `json:"decision"`
	RuleID       string              `json:"rule_id"`
	PolicySource PolicySource        `json:"policy_source"`
	Reasoning    string              `json:"reasoning"`
	ProofHash    string              `json:"proof_hash"`
	Signature    string              `json:"signature"`
	SignedAt     time.Time           `json:"signed_at"`
}

// RouteStep is one step in a legal procedure route
type RouteStep struct {
	Step               string   `json:"step"`
	Description        string   `json:"description"`
	Timeline           string   `json:"timeline,omitempty"`
	EvidenceRequired   []string `json:"evidence_required,omitempty"`
	OutcomeProbability float64  `json:"outcome_probability,omitempty"`
}

// RouteSteps is an ordered legal procedure route
type RouteSteps []RouteStep

// Value implements driver.Valuer for JSONB
func (r RouteSteps) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner for JSONB
func (r *RouteSteps) Scan(value interface{}) error {
	if value == nil {
		*r = make(RouteSteps, 0)
		return nil
	}

	// Handle different types that pgx might return for JSONB
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*r = make(RouteSteps, 0)
		return nil
	}

	if len(bytes) == 0 {
		*r = make(RouteSteps, 0)
		return nil
	}

	return json.Unmarshal(bytes, r)
}

// QueryTrace is the persisted record of one legal query and its outcome
type QueryTrace struct {
	ID           uuid.UUID           `json:"trace_id"`
	Query        string              `json:"query"`
	Jurisdiction Jurisdiction        `json:"jurisdiction"`
	Domain       Domain              `json:"domain"`
	Subdomain    string              `json:"subdomain"`
	Confidence   float64             `json:"confidence"`
	Decision     EnforcementDecision `json:"decision"`
	RuleID       string              `json:"rule_id"`
	ProofHash    string              `json:"proof_hash"`
	LegalRoute   RouteSteps          `json:"legal_route"`
	Provisions   Provisions          `json:"provisions"`
	CreatedAt    time.Time           `json:"created_at"`
}

// DecisionRecord is one persisted entry in the enforcement ledger
type DecisionRecord struct {
	ID           uuid.UUID           `json:"id"`
	TraceID      uuid.UUID           `json:"trace_id"`
	Decision     EnforcementDecision `json:"decision"`
	RuleID       string              `json:"rule_id"`
	PolicySource PolicySource        `json:"policy_source"`
	Reasoning    string              `json:"reasoning"`
	ProofHash    string              `json:"proof_hash"`
	SignedAt     time.Time           `json:"signed_at"`
	CreatedAt    time.Time           `json:"created_at"`
}
