package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ ThoughtRepository = (*thoughtRepository)(nil)

type thoughtRepository struct {
	db *DB
}

// NewThoughtRepository creates a new personal thought repository
func NewThoughtRepository(db *DB) ThoughtRepository {
	return &thoughtRepository{db: db}
}

// Create inserts a new thought. Status is always draft; client-supplied
// status values are rejected at the validation layer, not silently ignored.
func (r *thoughtRepository) Create(ctx context.Context, in ThoughtInput) (*PersonalThought, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO personal_thoughts
			(id, basis_id, title, body, category, status, created_at, updated_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)
	`, id, in.BasisID, in.Title, in.Body, in.Category, ThoughtStatusDraft, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create thought: %w", err)
	}

	return &PersonalThought{
		ID:        id,
		BasisID:   in.BasisID,
		Title:     in.Title,
		Body:      in.Body,
		Category:  in.Category,
		Status:    ThoughtStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (r *thoughtRepository) List(ctx context.Context, status ThoughtStatus, category string) ([]PersonalThought, error) {
	query := `
		SELECT id, basis_id, title, body, category, status, strength_score, created_at, updated_at
		FROM personal_thoughts
		WHERE status = ?`
	args := []interface{}{status}

	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list thoughts: %w", err)
	}
	defer rows.Close()

	var thoughts []PersonalThought
	for rows.Next() {
		thought := PersonalThought{}
		var basisID sql.NullString
		var strengthScore sql.NullFloat64

		err := rows.Scan(&thought.ID, &basisID, &thought.Title, &thought.Body,
			&thought.Category, &thought.Status, &strengthScore,
			&thought.CreatedAt, &thought.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan thought: %w", err)
		}

		if basisID.Valid {
			thought.BasisID = &basisID.String
		}
		if strengthScore.Valid {
			thought.StrengthScore = &strengthScore.Float64
		}

		thoughts = append(thoughts, thought)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate thoughts: %w", err)
	}

	return thoughts, nil
}
