package handlers

import (
	"errors"
	"net/http"

	"nyaya-backend/models"
	"nyaya-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FeedbackHandler handles HTTP requests for feedback
type FeedbackHandler struct {
	feedbackService *service.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
	}
}

// FeedbackRequest represents the request body for feedback submission
type FeedbackRequest struct {
	TraceID      string  `json:"trace_id" binding:"required"`
	Rating       int     `json:"rating" binding:"required"`
	FeedbackType string  `json:"feedback_type" binding:"required"`
	Comment      *string `json:"comment"`
}

// SubmitFeedback handles POST /api/feedback
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	traceID, err := uuid.Parse(req.TraceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRACE_ID",
				"message": "Invalid trace_id format",
			},
		})
		return
	}

	serviceReq := service.SubmitFeedbackRequest{
		TraceID: traceID,
		Rating:  req.Rating,
		Type:    models.FeedbackType(req.FeedbackType),
		Comment: req.Comment,
	}

	result, err := h.feedbackService.SubmitFeedback(c.Request.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating), errors.Is(err, service.ErrInvalidFeedbackType):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_FEEDBACK",
					"message": err.Error(),
				},
			})
		case errors.Is(err, service.ErrTraceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Query trace not found",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FEEDBACK_FAILED",
					"message": err.Error(),
				},
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":               result.Status,
		"trace_id":             traceID,
		"message":              feedbackMessage(result.Status),
		"category":             result.Category,
		"learning_impact":      result.LearningImpact,
		"enforcement_metadata": result.Enforcement,
	})
}

func feedbackMessage(status string) string {
	if status == "blocked" {
		return "Feedback submission blocked by enforcement policy"
	}
	return "Feedback processed and learning updated"
}
