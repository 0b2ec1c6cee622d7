package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"nyaya-backend/models"
	"nyaya-backend/repository"

	"github.com/google/uuid"
)

// Procedure IDs used in enforcement signals
const (
	ProcedureLegalQuery      = "legal_query_processing"
	ProcedureLegalQueryFinal = "legal_query_final"
	ProcedureFeedback        = "feedback_submission"
)

// Confidence below which queries are escalated instead of allowed
const escalationThreshold = 0.3

// Maximum ledger entries kept in memory
const ledgerCapacity = 1000

// harmfulPatterns block queries asking how to commit offences rather than
// asking about them. Bare keyword blocking would reject victims describing
// what happened to them.
var harmfulPatterns = []string{
	"how to hack",
	"how to kill",
	"how to murder",
	"how to commit fraud",
	"make a bomb",
	"launder money",
	"forge documents",
	"bribe a",
}

// EnforcementSignal carries everything a rule may inspect
type EnforcementSignal struct {
	TraceID      uuid.UUID
	Query        string
	Jurisdiction models.Jurisdiction
	Domain       models.Domain
	Confidence   float64
	ProcedureID  string
}

// EnforcementRule is one entry in the deterministic rule ladder
type EnforcementRule struct {
	ID           string
	Description  string
	PolicySource models.PolicySource
	Condition    func(EnforcementSignal) bool
	Decision     models.EnforcementDecision
}

// EnforcementService routes every decision through an ordered rule ladder
// and appends signed records to the decision ledger.
type EnforcementService struct {
	decisionRepo *repository.DecisionRepository
	signingKey   []byte
	rules        []EnforcementRule

	mu     sync.Mutex
	ledger []*models.DecisionRecord
}

// EnforcementServiceOption is a functional option for EnforcementService
type EnforcementServiceOption func(*EnforcementService)

// EnforcementWithDecisionRepository sets the ledger repository
func EnforcementWithDecisionRepository(repo *repository.DecisionRepository) EnforcementServiceOption {
	return func(s *EnforcementService) {
		s.decisionRepo = repo
	}
}

// EnforcementWithSigningKey sets the HMAC signing key
func EnforcementWithSigningKey(key string) EnforcementServiceOption {
	return func(s *EnforcementService) {
		s.signingKey = []byte(key)
	}
}

// NewEnforcementService creates a new enforcement service
func NewEnforcementService(opts ...EnforcementServiceOption) *EnforcementService {
	s := &EnforcementService{}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.signingKey) == 0 {
		s.signingKey = []byte("nyaya-dev-signing-key")
	}
	s.rules = defaultRules()
	return s
}

func defaultRules() []EnforcementRule {
	return []EnforcementRule{
		{
			ID:           "SAFETY_001",
			Description:  "Block queries with harmful intent",
			PolicySource: models.PolicySystemSafety,
			Condition: func(sig EnforcementSignal) bool {
				return hasHarmfulIntent(sig.Query)
			},
			Decision: models.DecisionBlock,
		},
		{
			ID:           "LEGAL_001",
			Description:  "Allow feedback for completed queries",
			PolicySource: models.PolicyLegalCompliance,
			Condition: func(sig EnforcementSignal) bool {
				return sig.ProcedureID == ProcedureFeedback
			},
			Decision: models.DecisionAllow,
		},
		{
			ID:           "GOVERNANCE_001",
			Description:  "Allow legal queries with sufficient confidence",
			PolicySource: models.PolicyGovernance,
			Condition: func(sig EnforcementSignal) bool {
				return sig.Confidence >= escalationThreshold
			},
			Decision: models.DecisionAllow,
		},
		{
			ID:           "GOVERNANCE_002",
			Description:  "Escalate low confidence queries",
			PolicySource: models.PolicyGovernance,
			Condition: func(sig EnforcementSignal) bool {
				return sig.Confidence < escalationThreshold
			},
			Decision: models.DecisionEscalate,
		},
	}
}

func hasHarmfulIntent(query string) bool {
	queryLower := strings.ToLower(query)
	for _, pattern := range harmfulPatterns {
		if strings.Contains(queryLower, pattern) {
			return true
		}
	}
	return false
}

// Decide evaluates the rule ladder in order and returns the signed
// decision record. Decisions are always appended to the in-memory ledger;
// repository persistence is best-effort.
func (s *EnforcementService) Decide(ctx context.Context, sig EnforcementSignal) *models.EnforcementMetadata {
	decision := models.DecisionAllow
	ruleID := "DEFAULT_ALLOW"
	policySource := models.PolicyGovernance
	reasoning := "Default allow policy"

	for _, rule := range s.rules {
		if rule.Condition(sig) {
			decision = rule.Decision
			ruleID = rule.ID
			policySource = rule.PolicySource
			reasoning = rule.Description
			break
		}
	}

	signedAt := time.Now().UTC()
	proofHash := proofHash(sig.TraceID, decision, ruleID, signedAt)

	meta := &models.EnforcementMetadata{
		Decision:     decision,
		RuleID:       ruleID,
		PolicySource: policySource,
		Reasoning:    reasoning,
		ProofHash:    proofHash,
		Signature:    s.sign(sig.TraceID, decision, ruleID, proofHash, signedAt),
		SignedAt:     signedAt,
	}

	record := &models.DecisionRecord{
		ID:           uuid.New(),
		TraceID:      sig.TraceID,
		Decision:     decision,
		RuleID:       ruleID,
		PolicySource: policySource,
		Reasoning:    reasoning,
		ProofHash:    proofHash,
		SignedAt:     signedAt,
	}

	s.mu.Lock()
	s.ledger = append(s.ledger, record)
	if len(s.ledger) > ledgerCapacity {
		s.ledger = s.ledger[len(s.ledger)-ledgerCapacity:]
	}
	s.mu.Unlock()

	if s.decisionRepo != nil {
		if err := s.decisionRepo.Create(ctx, record); err != nil {
			log.Printf("Warning: failed to persist enforcement decision %s: %v", record.ID, err)
		}
	}

	return meta
}

// proofHash binds a decision to its trace, rule and time
func proofHash(traceID uuid.UUID, decision models.EnforcementDecision, ruleID string, signedAt time.Time) string {
	data := fmt.Sprintf("%s:%s:%s:%s", traceID, decision, ruleID, signedAt.Format(time.RFC3339Nano))
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// sign produces an HMAC-SHA256 signature over the canonical decision object
func (s *EnforcementService) sign(traceID uuid.UUID, decision models.EnforcementDecision, ruleID, proofHash string, signedAt time.Time) string {
	payload, _ := json.Marshal(map[string]string{
		"trace_id":   traceID.String(),
		"decision":   string(decision),
		"rule_id":    ruleID,
		"proof_hash": proofHash,
		"signed_at":  signedAt.Format(time.RFC3339Nano),
	})
	mac := hmac.New(sha256.New, s.signingKey)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether a signature matches the decision metadata
func (s *EnforcementService) Verify(traceID uuid.UUID, meta *models.EnforcementMetadata) bool {
	expected := s.sign(traceID, meta.Decision, meta.RuleID, meta.ProofHash, meta.SignedAt)
	return hmac.Equal([]byte(expected), []byte(meta.Signature))
}

// LedgerEntries returns the in-memory ledger for a trace
func (s *EnforcementService) LedgerEntries(traceID uuid.UUID) []*models.DecisionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []*models.DecisionRecord
	for _, record := range s.ledger {
		if record.TraceID == traceID {
			entries = append(entries, record)
		}
	}
	return entries
}
