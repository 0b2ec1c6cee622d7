package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitFeedbackEndpoint(t *testing.T) {
	r := testRouter(t)

	t.Run("missing fields", func(t *testing.T) {
		w := postJSON(t, r, "/api/feedback", gin.H{"rating": 4})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed trace id", func(t *testing.T) {
		w := postJSON(t, r, "/api/feedback", gin.H{
			"trace_id":      "not-a-uuid",
			"rating":        4,
			"feedback_type": "accuracy",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		errObj := resp["error"].(map[string]any)
		assert.Equal(t, "INVALID_TRACE_ID", errObj["code"])
	})

	t.Run("rating out of range", func(t *testing.T) {
		w := postJSON(t, r, "/api/feedback", gin.H{
			"trace_id":      uuid.NewString(),
			"rating":        9,
			"feedback_type": "accuracy",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		errObj := resp["error"].(map[string]any)
		assert.Equal(t, "INVALID_FEEDBACK", errObj["code"])
	})

	t.Run("unknown feedback type", func(t *testing.T) {
		w := postJSON(t, r, "/api/feedback", gin.H{
			"trace_id":      uuid.NewString(),
			"rating":        4,
			"feedback_type": "vibes",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("recorded feedback", func(t *testing.T) {
		traceID := uuid.NewString()
		w := postJSON(t, r, "/api/feedback", gin.H{
			"trace_id":      traceID,
			"rating":        5,
			"feedback_type": "accuracy",
			"comment":       "spot on",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.Equal(t, "recorded", resp["status"])
		assert.Equal(t, traceID, resp["trace_id"])
		assert.Equal(t, "positive", resp["category"])
		assert.InDelta(t, 0.05, resp["learning_impact"].(float64), 1e-9)

		meta := resp["enforcement_metadata"].(map[string]any)
		assert.Equal(t, "ALLOW", meta["decision"])
		assert.Equal(t, "LEGAL_001", meta["rule_id"])
	})
}
