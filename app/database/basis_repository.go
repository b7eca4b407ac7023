package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ BasisRepository = (*basisRepository)(nil)

type basisRepository struct {
	db *DB
}

// NewBasisRepository creates a new basis entry repository
func NewBasisRepository(db *DB) BasisRepository {
	return &basisRepository{db: db}
}

func (r *basisRepository) Create(ctx context.Context, in BasisEntryInput) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	approved := false
	if in.Approved != nil {
		approved = *in.Approved
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO basis_entries
			(id, basis_type, reference, source_text, theme, angle, notes, source_link, approved, created_at, updated_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, in.BasisType, in.Reference, in.SourceText, in.Theme,
		in.Angle, in.Notes, in.SourceLink, approved, now, now)
	if err != nil {
		return "", fmt.Errorf("failed to create basis entry: %w", err)
	}

	return id, nil
}

func (r *basisRepository) ListApproved(ctx context.Context, theme, basisType string) ([]BasisEntry, error) {
	query := `
		SELECT id, basis_type, reference, source_text, theme, angle, notes, source_link, approved, created_at, updated_at
		FROM basis_entries
		WHERE approved = 1`
	args := []interface{}{}

	if theme != "" {
		query += ` AND theme = ?`
		args = append(args, theme)
	}
	if basisType != "" {
		query += ` AND basis_type = ?`
		args = append(args, basisType)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list basis entries: %w", err)
	}
	defer rows.Close()

	var entries []BasisEntry
	for rows.Next() {
		entry, err := scanBasisEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan basis entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate basis entries: %w", err)
	}

	return entries, nil
}

func (r *basisRepository) OldestApproved(ctx context.Context) (*BasisEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, basis_type, reference, source_text, theme, angle, notes, source_link, approved, created_at, updated_at
		FROM basis_entries
		WHERE approved = 1
		ORDER BY created_at ASC, id ASC
		LIMIT 1
	`)

	entry, err := scanBasisEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get oldest approved basis entry: %w", err)
	}

	return entry, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBasisEntry(row rowScanner) (*BasisEntry, error) {
	entry := &BasisEntry{}
	var angle, notes, sourceLink sql.NullString

	err := row.Scan(&entry.ID, &entry.BasisType, &entry.Reference, &entry.SourceText,
		&entry.Theme, &angle, &notes, &sourceLink, &entry.Approved,
		&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if angle.Valid {
		entry.Angle = &angle.String
	}
	if notes.Valid {
		entry.Notes = &notes.String
	}
	if sourceLink.Valid {
		entry.SourceLink = &sourceLink.String
	}

	return entry, nil
}
