package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
)

type MediaAssetRepository struct {
	db *sql.DB
}

func NewMediaAssetRepository(db *sql.DB) *MediaAssetRepository {
	return &MediaAssetRepository{db: db}
}

func (r *MediaAssetRepository) FindByID(ctx context.Context, id string) (*content.MediaAsset, error) {
	query := `SELECT id, kind, title, category, data, thumbnail, upload_date FROM media_assets WHERE id = ?`
	asset, err := scanAsset(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return asset, err
}

// FindByKind lists assets of one kind, oldest first. ULIDs sort by creation time.
func (r *MediaAssetRepository) FindByKind(ctx context.Context, kind content.MediaKind) ([]*content.MediaAsset, error) {
	query := `SELECT id, kind, title, category, data, thumbnail, upload_date 
              FROM media_assets WHERE kind = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to query media assets: %w", err)
	}
	defer rows.Close()

	assets := []*content.MediaAsset{}
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

func (r *MediaAssetRepository) Store(ctx context.Context, asset *content.MediaAsset) error {
	query := `INSERT INTO media_assets (id, kind, title, category, data, thumbnail, upload_date) VALUES (?, ?, ?, ?, ?, ?, ?)`

	var thumb sql.NullString
	if asset.Thumbnail != "" {
		thumb = sql.NullString{String: asset.Thumbnail, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query, asset.ID, string(asset.Kind), asset.Title,
		string(asset.Category), asset.Data, thumb, asset.UploadDate)
	if err != nil {
		return fmt.Errorf("failed to insert media asset: %w", err)
	}
	return nil
}

// Delete removes an asset and reports whether it existed.
func (r *MediaAssetRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM media_assets WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete media asset: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

func scanAsset(row rowScanner) (*content.MediaAsset, error) {
	var asset content.MediaAsset
	var kind, category string
	var thumb sql.NullString
	err := row.Scan(&asset.ID, &kind, &asset.Title, &category, &asset.Data, &thumb, &asset.UploadDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan media asset: %w", err)
	}
	asset.Kind = content.MediaKind(kind)
	asset.Category = content.MediaCategory(category)
	if thumb.Valid {
		asset.Thumbnail = thumb.String
	}
	return &asset, nil
}
