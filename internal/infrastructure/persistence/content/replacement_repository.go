package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
)

type ReplacementRepository struct {
	db *sql.DB
}

func NewReplacementRepository(db *sql.DB) *ReplacementRepository {
	return &ReplacementRepository{db: db}
}

func (r *ReplacementRepository) FindByPath(ctx context.Context, originalPath string) (*content.ReplacementRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT original_path, replacement_data, updated_at FROM replacements WHERE original_path = ?`, originalPath)

	var rec content.ReplacementRecord
	err := row.Scan(&rec.OriginalPath, &rec.ReplacementData, &rec.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan replacement: %w", err)
	}
	return &rec, nil
}

func (r *ReplacementRepository) FindAll(ctx context.Context) ([]*content.ReplacementRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT original_path, replacement_data, updated_at FROM replacements ORDER BY original_path`)
	if err != nil {
		return nil, fmt.Errorf("failed to query replacements: %w", err)
	}
	defer rows.Close()

	records := []*content.ReplacementRecord{}
	for rows.Next() {
		var rec content.ReplacementRecord
		if err := rows.Scan(&rec.OriginalPath, &rec.ReplacementData, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan replacement: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// Upsert keeps one active record per original path; a newer upload overwrites the older one.
func (r *ReplacementRepository) Upsert(ctx context.Context, record *content.ReplacementRecord) error {
	query := `INSERT INTO replacements (original_path, replacement_data, updated_at) VALUES (?, ?, ?)
              ON CONFLICT(original_path) DO UPDATE SET replacement_data = excluded.replacement_data, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, record.OriginalPath, record.ReplacementData, record.Timestamp); err != nil {
		return fmt.Errorf("failed to upsert replacement: %w", err)
	}
	return nil
}

func (r *ReplacementRepository) Delete(ctx context.Context, originalPath string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM replacements WHERE original_path = ?`, originalPath)
	if err != nil {
		return false, fmt.Errorf("failed to delete replacement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}
