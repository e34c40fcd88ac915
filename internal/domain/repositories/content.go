// Package repositories defines the repository interfaces for content entities.
// These repositories abstract the data persistence details, ensuring the core
// application is clean and decoupled from the database.
package repositories

import (
	"context"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
)

type SectionRepository interface {
	FindByName(ctx context.Context, name string) (*content.SectionRecord, error)
	FindAll(ctx context.Context) ([]*content.SectionRecord, error)
	Upsert(ctx context.Context, name string, data content.Section) (*content.SectionRecord, error)
}

type MediaAssetRepository interface {
	FindByID(ctx context.Context, id string) (*content.MediaAsset, error)
	FindByKind(ctx context.Context, kind content.MediaKind) ([]*content.MediaAsset, error)
	Store(ctx context.Context, asset *content.MediaAsset) error
	Delete(ctx context.Context, id string) (bool, error)
}

type ReplacementRepository interface {
	FindByPath(ctx context.Context, originalPath string) (*content.ReplacementRecord, error)
	FindAll(ctx context.Context) ([]*content.ReplacementRecord, error)
	Upsert(ctx context.Context, record *content.ReplacementRecord) error
	Delete(ctx context.Context, originalPath string) (bool, error)
}
