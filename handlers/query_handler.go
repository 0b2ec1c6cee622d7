package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"nyaya-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QueryHandler handles HTTP requests for legal queries
type QueryHandler struct {
	queryService *service.QueryService
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(queryService *service.QueryService) *QueryHandler {
	return &QueryHandler{
		queryService: queryService,
	}
}

// LegalQueryRequest represents the request body for a legal query
type LegalQueryRequest struct {
	Query            string `json:"query" binding:"required"`
	JurisdictionHint string `json:"jurisdiction_hint"`
	DomainHint       string `json:"domain_hint"`
}

// LegalQuery handles POST /api/legal/query
func (h *QueryHandler) LegalQuery(c *gin.Context) {
	var req LegalQueryRequest
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

	serviceReq := service.LegalQueryRequest{
		Query:            req.Query,
		JurisdictionHint: req.JurisdictionHint,
		DomainHint:       req.DomainHint,
	}

	result, err := h.queryService.ProcessQuery(c.Request.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) || errors.Is(err, service.ErrQueryTooShort) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_QUERY",
					"message": err.Error(),
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "QUERY_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	// Blocked queries are a successful enforcement outcome, not an error
	c.JSON(http.StatusOK, result)
}

// MultiJurisdictionRequest represents the request body for a comparative query
type MultiJurisdictionRequest struct {
	Query         string   `json:"query" binding:"required"`
	Jurisdictions []string `json:"jurisdictions" binding:"required"`
	DomainHint    string   `json:"domain_hint"`
}

// MultiJurisdiction handles POST /api/legal/multi-jurisdiction
func (h *QueryHandler) MultiJurisdiction(c *gin.Context) {
	var req MultiJurisdictionRequest
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

	serviceReq := service.MultiJurisdictionRequest{
		Query:         req.Query,
		Jurisdictions: req.Jurisdictions,
		DomainHint:    req.DomainHint,
	}

	result, err := h.queryService.ProcessMultiJurisdiction(c.Request.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyQuery),
			errors.Is(err, service.ErrQueryTooShort),
			errors.Is(err, service.ErrJurisdictionCount),
			errors.Is(err, service.ErrInvalidJurisdiction):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_REQUEST",
					"message": err.Error(),
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "QUERY_FAILED",
					"message": err.Error(),
				},
			})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTrace handles GET /api/trace/:id
func (h *QueryHandler) GetTrace(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid trace ID format",
			},
		})
		return
	}

	detail, err := h.queryService.GetTrace(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTraceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Query trace not found",
				},
			})
			return
		}
		if errors.Is(err, service.ErrPersistenceDisabled) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PERSISTENCE_DISABLED",
					"message": "Trace persistence is not configured on this deployment",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RETRIEVAL_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    detail,
	})
}

// ListTraces handles GET /api/traces
func (h *QueryHandler) ListTraces(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 200 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_LIMIT",
				"message": "limit must be an integer between 1 and 200",
			},
		})
		return
	}

	traces, err := h.queryService.RecentTraces(c.Request.Context(), limit)
	if err != nil {
		if errors.Is(err, service.ErrPersistenceDisabled) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PERSISTENCE_DISABLED",
					"message": "Trace persistence is not configured on this deployment",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RETRIEVAL_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    traces,
		"count":   len(traces),
	})
}
