package repository

import (
	"context"

	"nyaya-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TraceRepository handles database operations for query traces
type TraceRepository struct {
	db *pgxpool.Pool
}

// NewTraceRepository creates a new trace repository
func NewTraceRepository(db *pgxpool.Pool) *TraceRepository {
	return &TraceRepository{db: db}
}

// Create persists a query trace
func (r *TraceRepository) Create(ctx context.Context, trace *models.QueryTrace) error {
	query := `
		INSERT INTO query_traces (
			id, query, jurisdiction, domain, subdomain, confidence,
			decision, rule_id, proof_hash, legal_route, provisions
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`

	err := r.db.QueryRow(
		ctx, query,
		trace.ID,
		trace.Query,
		trace.Jurisdiction,
		trace.Domain,
		trace.Subdomain,
		trace.Confidence,
		trace.Decision,
		trace.RuleID,
		trace.ProofHash,
		trace.LegalRoute,
		trace.Provisions,
	).Scan(&trace.CreatedAt)

	return err
}

// GetByID retrieves a query trace by ID
func (r *TraceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.QueryTrace, error) {
	trace := &models.QueryTrace{}
	query := `
		SELECT id, query, jurisdiction, domain, subdomain, confidence,
			decision, rule_id, proof_hash, legal_route, provisions, created_at
		FROM query_traces
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&trace.ID,
		&trace.Query,
		&trace.Jurisdiction,
		&trace.Domain,
		&trace.Subdomain,
		&trace.Confidence,
		&trace.Decision,
		&trace.RuleID,
		&trace.ProofHash,
		&trace.LegalRoute,
		&trace.Provisions,
		&trace.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return trace, nil
}

// ListRecent retrieves the most recent traces
func (r *TraceRepository) ListRecent(ctx context.Context, limit int) ([]*models.QueryTrace, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, query, jurisdiction, domain, subdomain, confidence,
			decision, rule_id, proof_hash, legal_route, provisions, created_at
		FROM query_traces
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var traces []*models.QueryTrace
	for rows.Next() {
		trace := &models.QueryTrace{}
		err := rows.Scan(
			&trace.ID,
			&trace.Query,
			&trace.Jurisdiction,
			&trace.Domain,
			&trace.Subdomain,
			&trace.Confidence,
			&trace.Decision,
			&trace.RuleID,
			&trace.ProofHash,
			&trace.LegalRoute,
			&trace.Provisions,
			&trace.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		traces = append(traces, trace)
	}

	return traces, rows.Err()
}
