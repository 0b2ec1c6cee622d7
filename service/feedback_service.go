package service

import (
	"context"
	"errors"
	"log"
	"math"
	"sync"

	"nyaya-backend/models"
	"nyaya-backend/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrInvalidFeedbackType = errors.New("unknown feedback type")
	ErrTraceNotFound       = errors.New("query trace not found")
)

// Confidence adjustment applied per feedback entry in a cell
var defaultAdjustments = map[models.FeedbackCategory]float64{
	models.FeedbackPositive: 0.05,
	models.FeedbackNegative: -0.03,
	models.FeedbackNeutral:  0.01,
}

// Accumulated adjustment is clamped so one noisy cell cannot dominate
const maxCellAdjustment = 0.2

type performanceKey struct {
	jurisdiction models.Jurisdiction
	domain       models.Domain
}

type performanceCell struct {
	feedbackCount int
	adjustment    float64
}

// FeedbackService is the rating accumulator behind confidence adjustment.
// State lives in memory under a mutex; the repository, when configured,
// persists entries and rebuilds the memory on startup.
type FeedbackService struct {
	feedbackRepo *repository.FeedbackRepository
	traceRepo    *repository.TraceRepository
	enforcement  *EnforcementService

	mu     sync.Mutex
	memory map[performanceKey]*performanceCell
}

// FeedbackServiceOption is a functional option for FeedbackService
type FeedbackServiceOption func(*FeedbackService)

// FeedbackWithRepository sets the feedback repository
func FeedbackWithRepository(repo *repository.FeedbackRepository) FeedbackServiceOption {
	return func(s *FeedbackService) {
		s.feedbackRepo = repo
	}
}

// FeedbackWithTraceRepository sets the trace repository
func FeedbackWithTraceRepository(repo *repository.TraceRepository) FeedbackServiceOption {
	return func(s *FeedbackService) {
		s.traceRepo = repo
	}
}

// FeedbackWithEnforcement sets the enforcement service
func FeedbackWithEnforcement(enforcement *EnforcementService) FeedbackServiceOption {
	return func(s *FeedbackService) {
		s.enforcement = enforcement
	}
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(opts ...FeedbackServiceOption) *FeedbackService {
	s := &FeedbackService{
		memory: make(map[performanceKey]*performanceCell),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadMemory rebuilds the performance memory from persisted feedback
func (s *FeedbackService) LoadMemory(ctx context.Context) error {
	if s.feedbackRepo == nil {
		return nil
	}
	cells, err := s.feedbackRepo.AggregatePerformance(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cell := range cells {
		category := models.CategorizeRating(int(math.Round(cell.AverageRating)))
		s.memory[performanceKey{cell.Jurisdiction, cell.Domain}] = &performanceCell{
			feedbackCount: cell.FeedbackCount,
			adjustment:    clampAdjustment(float64(cell.FeedbackCount) * defaultAdjustments[category]),
		}
	}
	return nil
}

// SubmitFeedbackRequest represents a feedback submission
type SubmitFeedbackRequest struct {
	TraceID uuid.UUID
	Rating  int
	Type    models.FeedbackType
	Comment *string
}

// SubmitFeedbackResult represents the outcome of a feedback submission
type SubmitFeedbackResult struct {
	Status         string
	Category       models.FeedbackCategory
	LearningImpact float64
	Enforcement    *models.EnforcementMetadata
}

// SubmitFeedback validates, enforces, records and learns from a rating
func (s *FeedbackService) SubmitFeedback(ctx context.Context, req SubmitFeedbackRequest) (*SubmitFeedbackResult, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if _, ok := models.ParseFeedbackType(string(req.Type)); !ok {
		return nil, ErrInvalidFeedbackType
	}

	var meta *models.EnforcementMetadata
	if s.enforcement != nil {
		meta = s.enforcement.Decide(ctx, EnforcementSignal{
			TraceID:     req.TraceID,
			Query:       string(req.Type),
			Confidence:  0.5,
			ProcedureID: ProcedureFeedback,
		})
		if meta.Decision == models.DecisionBlock {
			return &SubmitFeedbackResult{Status: "blocked", Enforcement: meta}, nil
		}
	}

	// Resolve the trace so the adjustment lands in the right cell
	var trace *models.QueryTrace
	if s.traceRepo != nil {
		var err error
		trace, err = s.traceRepo.GetByID(ctx, req.TraceID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrTraceNotFound
			}
			return nil, err
		}
	}

	category := models.CategorizeRating(req.Rating)
	entry := &models.FeedbackEntry{
		ID:       uuid.New(),
		TraceID:  req.TraceID,
		Rating:   req.Rating,
		Type:     req.Type,
		Comment:  req.Comment,
		Category: category,
	}

	if s.feedbackRepo != nil {
		if err := s.feedbackRepo.Create(ctx, entry); err != nil {
			return nil, err
		}
	}

	impact := defaultAdjustments[category]
	if trace != nil {
		s.recordAdjustment(trace.Jurisdiction, trace.Domain, impact)
	} else {
		log.Printf("Feedback %s recorded without trace context, no confidence cell updated", entry.ID)
	}

	return &SubmitFeedbackResult{
		Status:         "recorded",
		Category:       category,
		LearningImpact: impact,
		Enforcement:    meta,
	}, nil
}

func (s *FeedbackService) recordAdjustment(jurisdiction models.Jurisdiction, domain models.Domain, impact float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := performanceKey{jurisdiction, domain}
	cell, ok := s.memory[key]
	if !ok {
		cell = &performanceCell{}
		s.memory[key] = cell
	}
	cell.feedbackCount++
	cell.adjustment = clampAdjustment(cell.adjustment + impact)
}

// ConfidenceAdjustment applies the accumulated cell adjustment to a base
// confidence, clamped into [0, 1]
func (s *FeedbackService) ConfidenceAdjustment(jurisdiction models.Jurisdiction, domain models.Domain, base float64) float64 {
	s.mu.Lock()
	cell, ok := s.memory[performanceKey{jurisdiction, domain}]
	var adjustment float64
	if ok {
		adjustment = cell.adjustment
	}
	s.mu.Unlock()

	adjusted := base + adjustment
	if adjusted < 0 {
		return 0
	}
	if adjusted > 1 {
		return 1
	}
	return adjusted
}

func clampAdjustment(v float64) float64 {
	if v > maxCellAdjustment {
		return maxCellAdjustment
	}
	if v < -maxCellAdjustment {
		return -maxCellAdjustment
	}
	return v
}
