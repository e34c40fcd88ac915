// Package content provides SQL-backed repositories for sections, media assets
// and replacement records
package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/caching/stores"
)

type SectionRepository struct {
	db    *sql.DB
	cache *stores.ContentStore
}

func NewSectionRepository(db *sql.DB, cache *stores.ContentStore) *SectionRepository {
	return &SectionRepository{
		db:    db,
		cache: cache,
	}
}

// FindByName returns the section or nil when it has never been saved.
func (r *SectionRepository) FindByName(ctx context.Context, name string) (*content.SectionRecord, error) {
	if r.cache != nil {
		if rec, found := r.cache.GetSection(name); found {
			return rec, nil
		}
	}

	rec, err := r.loadFromDB(ctx, name)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		r.cache.SetSection(name, rec)
	}
	return rec, nil
}

func (r *SectionRepository) FindAll(ctx context.Context) ([]*content.SectionRecord, error) {
	if r.cache != nil {
		if recs, found := r.cache.GetAllSections(); found {
			return recs, nil
		}
	}

	rows, err := r.db.QueryContext(ctx, `SELECT name, data, updated_at FROM sections ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	var recs []*content.SectionRecord
	for rows.Next() {
		rec, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	if r.cache != nil {
		r.cache.SetAllSections(recs)
	}
	return recs, nil
}

// Upsert overwrites the entire payload of the named section, creating it when absent.
func (r *SectionRepository) Upsert(ctx context.Context, name string, data content.Section) (*content.SectionRecord, error) {
	if data == nil {
		data = content.Section{}
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal section %s: %w", name, err)
	}

	now := time.Now().UTC()
	query := `INSERT INTO sections (name, data, updated_at) VALUES (?, ?, ?)
              ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, name, string(payload), now); err != nil {
		return nil, fmt.Errorf("failed to upsert section %s: %w", name, err)
	}

	// Re-decode so the returned record matches what a later read produces.
	var stored content.Section
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode section %s: %w", name, err)
	}
	rec := &content.SectionRecord{Name: name, Data: stored, UpdatedAt: now}

	if r.cache != nil {
		r.cache.Invalidate()
		r.cache.SetSection(name, rec)
	}
	return rec, nil
}

func (r *SectionRepository) loadFromDB(ctx context.Context, name string) (*content.SectionRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT name, data, updated_at FROM sections WHERE name = ?`, name)
	rec, err := scanSection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSection(row rowScanner) (*content.SectionRecord, error) {
	var rec content.SectionRecord
	var payload string
	if err := row.Scan(&rec.Name, &payload, &rec.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan section: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &rec.Data); err != nil {
		return nil, fmt.Errorf("failed to decode section %s: %w", rec.Name, err)
	}
	return &rec, nil
}
