package models

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackType classifies what aspect of a response the feedback covers
type FeedbackType string

const (
	FeedbackAccuracy     FeedbackType = "accuracy"
	FeedbackCompleteness FeedbackType = "completeness"
	FeedbackRelevance    FeedbackType = "relevance"
	FeedbackUsability    FeedbackType = "usability"
)

// ParseFeedbackType validates a feedback type string
func ParseFeedbackType(s string) (FeedbackType, bool) {
	switch FeedbackType(s) {
	case FeedbackAccuracy, FeedbackCompleteness, FeedbackRelevance, FeedbackUsability:
		return FeedbackType(s), true
	}
	return "", false
}

// FeedbackCategory is the rating bucket used for confidence adjustment
type FeedbackCategory string

const (
	FeedbackPositive FeedbackCategory = "positive"
	FeedbackNegative FeedbackCategory = "negative"
	FeedbackNeutral  FeedbackCategory = "neutral"
)

// CategorizeRating buckets a 1-5 rating
func CategorizeRating(rating int) FeedbackCategory {
	switch {
	case rating >= 4:
		return FeedbackPositive
	case rating <= 2:
		return FeedbackNegative
	default:
		return FeedbackNeutral
	}
}

// FeedbackEntry is a persisted user rating of a query response
type FeedbackEntry struct {
	ID        uuid.UUID        `json:"id"`
	TraceID   uuid.UUID        `json:"trace_id"`
	Rating    int              `json:"rating"`
	Type      FeedbackType     `json:"feedback_type"`
	Comment   *string          `json:"comment,omitempty"`
	Category  FeedbackCategory `json:"category"`
	CreatedAt time.Time        `json:"created_at"`
}

// APIKey is a named credential for the admin surface
type APIKey struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	KeyHash   string    `json:"-"` // Never serialize the hash
	CreatedAt time.Time `json:"created_at"`
}
