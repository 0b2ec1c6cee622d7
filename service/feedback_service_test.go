package service

import (
	"context"
	"testing"

	"nyaya-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitFeedbackValidation(t *testing.T) {
	svc := NewFeedbackService()
	ctx := context.Background()

	t.Run("rating out of range", func(t *testing.T) {
		_, err := svc.SubmitFeedback(ctx, SubmitFeedbackRequest{TraceID: uuid.New(), Rating: 0, Type: models.FeedbackAccuracy})
		assert.ErrorIs(t, err, ErrInvalidRating)

		_, err = svc.SubmitFeedback(ctx, SubmitFeedbackRequest{TraceID: uuid.New(), Rating: 6, Type: models.FeedbackAccuracy})
		assert.ErrorIs(t, err, ErrInvalidRating)
	})

	t.Run("unknown feedback type", func(t *testing.T) {
		_, err := svc.SubmitFeedback(ctx, SubmitFeedbackRequest{TraceID: uuid.New(), Rating: 4, Type: "vibes"})
		assert.ErrorIs(t, err, ErrInvalidFeedbackType)
	})
}

func TestSubmitFeedbackCategories(t *testing.T) {
	svc := NewFeedbackService(FeedbackWithEnforcement(NewEnforcementService()))
	ctx := context.Background()

	cases := []struct {
		rating   int
		category models.FeedbackCategory
		impact   float64
	}{
		{5, models.FeedbackPositive, 0.05},
		{4, models.FeedbackPositive, 0.05},
		{3, models.FeedbackNeutral, 0.01},
		{2, models.FeedbackNegative, -0.03},
		{1, models.FeedbackNegative, -0.03},
	}

	for _, tc := range cases {
		result, err := svc.SubmitFeedback(ctx, SubmitFeedbackRequest{
			TraceID: uuid.New(),
			Rating:  tc.rating,
			Type:    models.FeedbackAccuracy,
		})
		require.NoError(t, err)

		assert.Equal(t, "recorded", result.Status)
		assert.Equal(t, tc.category, result.Category)
		assert.InDelta(t, tc.impact, result.LearningImpact, 1e-9)
		require.NotNil(t, result.Enforcement)
		assert.Equal(t, models.DecisionAllow, result.Enforcement.Decision)
	}
}

func TestConfidenceAdjustment(t *testing.T) {
	t.Run("unknown cell leaves base unchanged", func(t *testing.T) {
		svc := NewFeedbackService()
		adjusted := svc.ConfidenceAdjustment(models.JurisdictionIndia, models.DomainCriminal, 0.6)
		assert.InDelta(t, 0.6, adjusted, 1e-9)
	})

	t.Run("positive feedback raises confidence", func(t *testing.T) {
		svc := NewFeedbackService()
		svc.recordAdjustment(models.JurisdictionIndia, models.DomainCriminal, 0.05)
		svc.recordAdjustment(models.JurisdictionIndia, models.DomainCriminal, 0.05)

		adjusted := svc.ConfidenceAdjustment(models.JurisdictionIndia, models.DomainCriminal, 0.6)
		assert.InDelta(t, 0.7, adjusted, 1e-9)
	})

	t.Run("cells are independent per jurisdiction and domain", func(t *testing.T) {
		svc := NewFeedbackService()
		svc.recordAdjustment(models.JurisdictionIndia, models.DomainCriminal, 0.05)

		adjusted := svc.ConfidenceAdjustment(models.JurisdictionUK, models.DomainCriminal, 0.6)
		assert.InDelta(t, 0.6, adjusted, 1e-9)
	})

	t.Run("cell adjustment is clamped", func(t *testing.T) {
		svc := NewFeedbackService()
		for i := 0; i < 10; i++ {
			svc.recordAdjustment(models.JurisdictionUAE, models.DomainCivil, 0.05)
		}

		adjusted := svc.ConfidenceAdjustment(models.JurisdictionUAE, models.DomainCivil, 0.5)
		assert.InDelta(t, 0.7, adjusted, 1e-9)
	})

	t.Run("result is clamped into the unit interval", func(t *testing.T) {
		svc := NewFeedbackService()
		svc.recordAdjustment(models.JurisdictionIndia, models.DomainFamily, 0.2)
		assert.InDelta(t, 1.0, svc.ConfidenceAdjustment(models.JurisdictionIndia, models.DomainFamily, 0.95), 1e-9)

		svc.recordAdjustment(models.JurisdictionIndia, models.DomainCivil, -0.2)
		assert.InDelta(t, 0.0, svc.ConfidenceAdjustment(models.JurisdictionIndia, models.DomainCivil, 0.1), 1e-9)
	})
}
