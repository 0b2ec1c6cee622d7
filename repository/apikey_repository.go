package repository

import (
	"context"

	"nyaya-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// APIKeyRepository handles database operations for API keys
type APIKeyRepository struct {
	db *pgxpool.Pool
}

// NewAPIKeyRepository creates a new API key repository
func NewAPIKeyRepository(db *pgxpool.Pool) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// Create persists an API key record
func (r *APIKeyRepository) Create(ctx context.Context, key *models.APIKey) error {
	query := `
		INSERT INTO api_keys (id, name, key_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	return r.db.QueryRow(ctx, query, key.ID, key.Name, key.KeyHash).Scan(&key.CreatedAt)
}

// ListHashes retrieves all stored key hashes for verification
func (r *APIKeyRepository) ListHashes(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT key_hash FROM api_keys`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hashes []string
	for rows.Next() {
		var hash string
		if err := rows.Scan(&hash); err != nil {
			return nil, err
		}
		hashes = append(hashes, hash)
	}

	return hashes, rows.Err()
}
