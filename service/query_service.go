package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"nyaya-backend/legaldata"
	"nyaya-backend/models"
	"nyaya-backend/repository"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrEmptyQuery          = errors.New("query cannot be empty")
	ErrQueryTooShort       = errors.New("query must be at least 3 characters long")
	ErrInvalidJurisdiction = errors.New("invalid jurisdiction")
	ErrJurisdictionCount   = errors.New("multi-jurisdiction queries need 2 or 3 jurisdictions")
	ErrPersistenceDisabled = errors.New("trace persistence is not configured")
	ErrDatasetsNotLoaded   = errors.New("law datasets not loaded")
)

const minQueryLength = 3

const summaryModel = "gemini-2.0-flash"

// Confidence carried into the pre-search enforcement check
const initialConfidence = 0.5

// Confidence reported when no provisions match
const noDataConfidence = 0.1

// QueryService orchestrates the full query pipeline: enforcement
// pre-check, jurisdiction detection, domain classification, provision
// search, route building, confidence adjustment, final enforcement,
// and trace recording.
type QueryService struct {
	loader       *legaldata.Loader
	enforcement  *EnforcementService
	feedback     *FeedbackService
	traceRepo    *repository.TraceRepository
	feedbackRepo *repository.FeedbackRepository
	decisionRepo *repository.DecisionRepository
	gemini       *genai.Client
}

// QueryServiceOption is a functional option for QueryService
type QueryServiceOption func(*QueryService)

// QueryWithLoader sets the dataset loader
func QueryWithLoader(loader *legaldata.Loader) QueryServiceOption {
	return func(s *QueryService) {
		s.loader = loader
	}
}

// QueryWithEnforcement sets the enforcement service
func QueryWithEnforcement(enforcement *EnforcementService) QueryServiceOption {
	return func(s *QueryService) {
		s.enforcement = enforcement
	}
}

// QueryWithFeedback sets the feedback service
func QueryWithFeedback(feedback *FeedbackService) QueryServiceOption {
	return func(s *QueryService) {
		s.feedback = feedback
	}
}

// QueryWithTraceRepository sets the trace repository
func QueryWithTraceRepository(repo *repository.TraceRepository) QueryServiceOption {
	return func(s *QueryService) {
		s.traceRepo = repo
	}
}

// QueryWithFeedbackRepository sets the feedback repository used when
// assembling trace detail
func QueryWithFeedbackRepository(repo *repository.FeedbackRepository) QueryServiceOption {
	return func(s *QueryService) {
		s.feedbackRepo = repo
	}
}

// QueryWithDecisionRepository sets the enforcement ledger repository used
// when assembling trace detail
func QueryWithDecisionRepository(repo *repository.DecisionRepository) QueryServiceOption {
	return func(s *QueryService) {
		s.decisionRepo = repo
	}
}

// QueryWithGeminiClient sets the Gemini client for summaries
func QueryWithGeminiClient(client *genai.Client) QueryServiceOption {
	return func(s *QueryService) {
		s.gemini = client
	}
}

// NewQueryService creates a new query service
func NewQueryService(opts ...QueryServiceOption) *QueryService {
	s := &QueryService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LegalQueryRequest represents a legal query
type LegalQueryRequest struct {
	Query            string
	JurisdictionHint string
	DomainHint       string
}

// LegalQueryResult is the full outcome of one legal query
type LegalQueryResult struct {
	TraceID          uuid.UUID                   `json:"trace_id"`
	Jurisdiction     models.Jurisdiction         `json:"jurisdiction"`
	Domain           models.Domain               `json:"domain"`
	Subdomain        string                      `json:"subdomain"`
	Confidence       float64                     `json:"confidence"`
	LegalRoute       models.RouteSteps           `json:"legal_route"`
	Provisions       models.Provisions           `json:"provisions"`
	Citations        []string                    `json:"citations"`
	GlossaryTerms    map[string]string           `json:"glossary_terms"`
	TimelineEstimate string                      `json:"timeline_estimate,omitempty"`
	Enforcement      *models.EnforcementMetadata `json:"enforcement_metadata"`
	Summary          string                      `json:"summary,omitempty"`
	Message          string                      `json:"message"`
}

// ProcessQuery runs one legal query through the pipeline
func (s *QueryService) ProcessQuery(ctx context.Context, req LegalQueryRequest) (*LegalQueryResult, error) {
	if err := validateQuery(req.Query); err != nil {
		return nil, err
	}
	if s.loader == nil {
		return nil, ErrDatasetsNotLoaded
	}

	traceID := uuid.New()

	// Safety pre-check at neutral confidence, before any data work
	if s.enforcement != nil {
		meta := s.enforcement.Decide(ctx, EnforcementSignal{
			TraceID:     traceID,
			Query:       req.Query,
			Confidence:  initialConfidence,
			ProcedureID: ProcedureLegalQuery,
		})
		if meta.Decision == models.DecisionBlock {
			result := &LegalQueryResult{
				TraceID:     traceID,
				Confidence:  0,
				LegalRoute:  models.RouteSteps{},
				Provisions:  models.Provisions{},
				Enforcement: meta,
				Message:     "Query rejected by enforcement policy",
			}
			s.recordTrace(ctx, req.Query, result)
			return result, nil
		}
	}

	jurisdiction := legaldata.DetectJurisdiction(req.Query, req.JurisdictionHint)
	result, err := s.processForJurisdiction(ctx, traceID, req, jurisdiction)
	if err != nil {
		return nil, err
	}

	if s.gemini != nil {
		result.Summary = s.summarize(ctx, req.Query, result)
	}

	s.recordTrace(ctx, req.Query, result)
	return result, nil
}

// processForJurisdiction runs classification, search, routing and the
// final enforcement check for one fixed jurisdiction
func (s *QueryService) processForJurisdiction(ctx context.Context, traceID uuid.UUID, req LegalQueryRequest, jurisdiction models.Jurisdiction) (*LegalQueryResult, error) {
	classification := s.loader.ClassifyDomain(req.Query, jurisdiction)
	domain := classification.Domain
	subdomain := classification.Subdomain
	if req.DomainHint != "" {
		if hinted, ok := models.ParseDomain(req.DomainHint); ok {
			if hinted != domain {
				subdomain = "general"
			}
			domain = hinted
		}
	}

	provisions, err := s.loader.Search(req.Query, jurisdiction, domain)
	if err != nil {
		return nil, err
	}

	route := s.loader.LegalRoute(jurisdiction, domain)

	confidence := classification.Confidence
	if s.feedback != nil {
		confidence = s.feedback.ConfidenceAdjustment(jurisdiction, domain, confidence)
	}

	message := fmt.Sprintf("Comprehensive legal guidance for %q in %s %s law", req.Query, jurisdiction, domain)
	if len(provisions) == 0 {
		confidence = noDataConfidence
		message = fmt.Sprintf("No specific legal data found for %q in %s %s law. Please consult with a qualified legal professional for specific advice.", req.Query, jurisdiction, domain)
	}

	var meta *models.EnforcementMetadata
	if s.enforcement != nil {
		meta = s.enforcement.Decide(ctx, EnforcementSignal{
			TraceID:      traceID,
			Query:        req.Query,
			Jurisdiction: jurisdiction,
			Domain:       domain,
			Confidence:   confidence,
			ProcedureID:  ProcedureLegalQueryFinal,
		})
	}

	return &LegalQueryResult{
		TraceID:          traceID,
		Jurisdiction:     jurisdiction,
		Domain:           domain,
		Subdomain:        subdomain,
		Confidence:       confidence,
		LegalRoute:       route,
		Provisions:       provisions,
		Citations:        collectCitations(provisions),
		GlossaryTerms:    s.loader.GlossaryTerms(req.Query, jurisdiction),
		TimelineEstimate: legaldata.TimelineEstimate(route),
		Enforcement:      meta,
		Message:          message,
	}, nil
}

// MultiJurisdictionRequest represents a comparative query
type MultiJurisdictionRequest struct {
	Query         string
	Jurisdictions []string
	DomainHint    string
}

// MultiJurisdictionResult compares one query across jurisdictions
type MultiJurisdictionResult struct {
	TraceID             uuid.UUID                                 `json:"trace_id"`
	ComparativeAnalysis map[models.Jurisdiction]*LegalQueryResult `json:"comparative_analysis"`
	Confidence          float64                                   `json:"confidence"`
	Insights            []string                                  `json:"cross_jurisdiction_insights"`
	Enforcement         *models.EnforcementMetadata               `json:"enforcement_metadata"`
}

// ProcessMultiJurisdiction runs the same query against 2-3 jurisdictions
func (s *QueryService) ProcessMultiJurisdiction(ctx context.Context, req MultiJurisdictionRequest) (*MultiJurisdictionResult, error) {
	if err := validateQuery(req.Query); err != nil {
		return nil, err
	}
	if s.loader == nil {
		return nil, ErrDatasetsNotLoaded
	}
	if len(req.Jurisdictions) < 2 || len(req.Jurisdictions) > 3 {
		return nil, ErrJurisdictionCount
	}

	jurisdictions := make([]models.Jurisdiction, 0, len(req.Jurisdictions))
	seen := make(map[models.Jurisdiction]bool)
	for _, hint := range req.Jurisdictions {
		j, ok := models.ParseJurisdiction(hint)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidJurisdiction, hint)
		}
		if !seen[j] {
			seen[j] = true
			jurisdictions = append(jurisdictions, j)
		}
	}
	if len(jurisdictions) < 2 {
		return nil, ErrJurisdictionCount
	}

	traceID := uuid.New()

	var meta *models.EnforcementMetadata
	if s.enforcement != nil {
		meta = s.enforcement.Decide(ctx, EnforcementSignal{
			TraceID:     traceID,
			Query:       req.Query,
			Confidence:  initialConfidence,
			ProcedureID: ProcedureLegalQuery,
		})
		if meta.Decision == models.DecisionBlock {
			return &MultiJurisdictionResult{
				TraceID:             traceID,
				ComparativeAnalysis: map[models.Jurisdiction]*LegalQueryResult{},
				Enforcement:         meta,
			}, nil
		}
	}

	analysis := make(map[models.Jurisdiction]*LegalQueryResult, len(jurisdictions))
	maxConfidence := 0.0
	queryReq := LegalQueryRequest{Query: req.Query, DomainHint: req.DomainHint}
	for _, j := range jurisdictions {
		result, err := s.processForJurisdiction(ctx, traceID, queryReq, j)
		if err != nil {
			return nil, err
		}
		analysis[j] = result
		if result.Confidence > maxConfidence {
			maxConfidence = result.Confidence
		}
	}

	return &MultiJurisdictionResult{
		TraceID:             traceID,
		ComparativeAnalysis: analysis,
		Confidence:          maxConfidence,
		Insights:            crossJurisdictionInsights(jurisdictions, analysis),
		Enforcement:         meta,
	}, nil
}

// TraceDetail is a persisted trace together with its feedback entries and
// enforcement ledger records
type TraceDetail struct {
	Trace     *models.QueryTrace       `json:"trace"`
	Feedback  []*models.FeedbackEntry  `json:"feedback"`
	Decisions []*models.DecisionRecord `json:"enforcement_decisions"`
}

// GetTrace retrieves a persisted query trace with its feedback and
// enforcement history
func (s *QueryService) GetTrace(ctx context.Context, id uuid.UUID) (*TraceDetail, error) {
	if s.traceRepo == nil {
		return nil, ErrPersistenceDisabled
	}
	trace, err := s.traceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTraceNotFound
		}
		return nil, err
	}

	detail := &TraceDetail{Trace: trace}
	if s.feedbackRepo != nil {
		entries, err := s.feedbackRepo.ListByTraceID(ctx, id)
		if err != nil {
			return nil, err
		}
		detail.Feedback = entries
	}
	if s.decisionRepo != nil {
		records, err := s.decisionRepo.ListByTraceID(ctx, id)
		if err != nil {
			return nil, err
		}
		detail.Decisions = records
	}
	return detail, nil
}

// RecentTraces retrieves the most recently persisted query traces
func (s *QueryService) RecentTraces(ctx context.Context, limit int) ([]*models.QueryTrace, error) {
	if s.traceRepo == nil {
		return nil, ErrPersistenceDisabled
	}
	return s.traceRepo.ListRecent(ctx, limit)
}

func validateQuery(query string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return ErrEmptyQuery
	}
	if len(trimmed) < minQueryLength {
		return ErrQueryTooShort
	}
	return nil
}

func collectCitations(provisions models.Provisions) []string {
	var citations []string
	seen := make(map[string]bool)
	for _, p := range provisions {
		for _, c := range p.Citations {
			if !seen[c] {
				seen[c] = true
				citations = append(citations, c)
			}
		}
	}
	return citations
}

func crossJurisdictionInsights(jurisdictions []models.Jurisdiction, analysis map[models.Jurisdiction]*LegalQueryResult) []string {
	var insights []string

	domains := make(map[models.Domain][]models.Jurisdiction)
	var best models.Jurisdiction
	bestConfidence := -1.0
	for _, j := range jurisdictions {
		result := analysis[j]
		domains[result.Domain] = append(domains[result.Domain], j)
		if result.Confidence > bestConfidence {
			bestConfidence = result.Confidence
			best = j
		}
	}

	if len(domains) == 1 {
		for domain := range domains {
			insights = append(insights, fmt.Sprintf("All queried jurisdictions route this matter through %s procedure", domain))
		}
	} else {
		for domain, js := range domains {
			names := make([]string, len(js))
			for i, j := range js {
				names[i] = string(j)
			}
			insights = append(insights, fmt.Sprintf("%s classifies this matter as %s", strings.Join(names, ", "), domain))
		}
	}

	insights = append(insights, fmt.Sprintf("Strongest dataset coverage in %s (confidence %.2f)", best, bestConfidence))
	return insights
}

// recordTrace persists the query outcome; failures only log
func (s *QueryService) recordTrace(ctx context.Context, query string, result *LegalQueryResult) {
	if s.traceRepo == nil {
		return
	}

	trace := &models.QueryTrace{
		ID:           result.TraceID,
		Query:        query,
		Jurisdiction: result.Jurisdiction,
		Domain:       result.Domain,
		Subdomain:    result.Subdomain,
		Confidence:   result.Confidence,
		LegalRoute:   result.LegalRoute,
		Provisions:   result.Provisions,
	}
	if result.Enforcement != nil {
		trace.Decision = result.Enforcement.Decision
		trace.RuleID = result.Enforcement.RuleID
		trace.ProofHash = result.Enforcement.ProofHash
	}

	if err := s.traceRepo.Create(ctx, trace); err != nil {
		log.Printf("Warning: failed to persist trace %s: %v", trace.ID, err)
	}
}

// summarize asks Gemini for a short plain-language summary; best-effort
func (s *QueryService) summarize(ctx context.Context, query string, result *LegalQueryResult) string {
	summaryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var b strings.Builder
	fmt.Fprintf(&b, "Summarize in two plain-language sentences what a person asking %q in %s should know. Matched provisions:\n", query, result.Jurisdiction)
	for _, p := range result.Provisions {
		fmt.Fprintf(&b, "- %s %s: %s\n", p.Section, p.Title, p.Offence)
	}
	fmt.Fprintf(&b, "Procedure starts with %s.", firstStep(result.LegalRoute))

	model := s.gemini.GenerativeModel(summaryModel)
	resp, err := model.GenerateContent(summaryCtx, genai.Text(b.String()))
	if err != nil {
		log.Printf("Warning: summary generation failed for trace %s: %v", result.TraceID, err)
		return ""
	}

	var summary strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				summary.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(summary.String())
}

func firstStep(route models.RouteSteps) string {
	if len(route) == 0 {
		return "consultation with counsel"
	}
	return route[0].Step
}
