package repository

import (
	"context"

	"nyaya-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FeedbackRepository handles database operations for feedback entries
type FeedbackRepository struct {
	db *pgxpool.Pool
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create persists a feedback entry
func (r *FeedbackRepository) Create(ctx context.Context, entry *models.FeedbackEntry) error {
	query := `
		INSERT INTO feedback (
			id, trace_id, rating, feedback_type, comment, category
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.QueryRow(
		ctx, query,
		entry.ID,
		entry.TraceID,
		entry.Rating,
		entry.Type,
		entry.Comment,
		entry.Category,
	).Scan(&entry.CreatedAt)

	return err
}

// ListByTraceID retrieves feedback entries for a trace
func (r *FeedbackRepository) ListByTraceID(ctx context.Context, traceID uuid.UUID) ([]*models.FeedbackEntry, error) {
	query := `
		SELECT id, trace_id, rating, feedback_type, comment, category, created_at
		FROM feedback
		WHERE trace_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, traceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.FeedbackEntry
	for rows.Next() {
		entry := &models.FeedbackEntry{}
		err := rows.Scan(
			&entry.ID,
			&entry.TraceID,
			&entry.Rating,
			&entry.Type,
			&entry.Comment,
			&entry.Category,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// PerformanceCell is an aggregate over feedback joined to traces
type PerformanceCell struct {
	Jurisdiction  models.Jurisdiction
	Domain        models.Domain
	FeedbackCount int
	AverageRating float64
}

// AggregatePerformance computes per-(jurisdiction, domain) rating averages,
// used to rebuild the feedback engine's memory on startup
func (r *FeedbackRepository) AggregatePerformance(ctx context.Context) ([]PerformanceCell, error) {
	query := `
		SELECT t.jurisdiction, t.domain, COUNT(f.id), AVG(f.rating)
		FROM feedback f
		JOIN query_traces t ON t.id = f.trace_id
		GROUP BY t.jurisdiction, t.domain`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cells []PerformanceCell
	for rows.Next() {
		var cell PerformanceCell
		if err := rows.Scan(&cell.Jurisdiction, &cell.Domain, &cell.FeedbackCount, &cell.AverageRating); err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}

	return cells, rows.Err()
}
