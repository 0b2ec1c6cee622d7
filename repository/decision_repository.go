package repository

import (
	"context"

	"nyaya-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DecisionRepository persists the enforcement ledger
type DecisionRepository struct {
	db *pgxpool.Pool
}

// NewDecisionRepository creates a new decision repository
func NewDecisionRepository(db *pgxpool.Pool) *DecisionRepository {
	return &DecisionRepository{db: db}
}

// Create appends a decision record to the ledger
func (r *DecisionRepository) Create(ctx context.Context, record *models.DecisionRecord) error {
	query := `
		INSERT INTO enforcement_decisions (
			id, trace_id, decision, rule_id, policy_source, reasoning,
			proof_hash, signed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	err := r.db.QueryRow(
		ctx, query,
		record.ID,
		record.TraceID,
		record.Decision,
		record.RuleID,
		record.PolicySource,
		record.Reasoning,
		record.ProofHash,
		record.SignedAt,
	).Scan(&record.CreatedAt)

	return err
}

// ListByTraceID retrieves all ledger entries for a trace
func (r *DecisionRepository) ListByTraceID(ctx context.Context, traceID uuid.UUID) ([]*models.DecisionRecord, error) {
	query := `
		SELECT id, trace_id, decision, rule_id, policy_source, reasoning,
			proof_hash, signed_at, created_at
		FROM enforcement_decisions
		WHERE trace_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, traceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.DecisionRecord
	for rows.Next() {
		record := &models.DecisionRecord{}
		err := rows.Scan(
			&record.ID,
			&record.TraceID,
			&record.Decision,
			&record.RuleID,
			&record.PolicySource,
			&record.Reasoning,
			&record.ProofHash,
			&record.SignedAt,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
