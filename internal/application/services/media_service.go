package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
	"github.com/PuneetGOTO/business-website-sub000/internal/domain/repositories"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/media"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/messaging"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/performance"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/security"
)

// MediaService owns the media catalog, the uploaded asset library and the
// replacement ledger
type MediaService struct {
	scanner      *media.Scanner
	documents    []string
	processor    *media.ImageProcessor
	assets       repositories.MediaAssetRepository
	replacements repositories.ReplacementRepository
	publisher    messaging.Publisher
	logger       *logging.ChanneledLogger
	perfTracker  *performance.Tracker
}

// NewMediaService creates a new media application service
func NewMediaService(scanner *media.Scanner, documents []string, processor *media.ImageProcessor,
	assets repositories.MediaAssetRepository, replacements repositories.ReplacementRepository,
	publisher messaging.Publisher, logger *logging.ChanneledLogger, perfTracker *performance.Tracker,
) *MediaService {
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	return &MediaService{
		scanner:      scanner,
		documents:    documents,
		processor:    processor,
		assets:       assets,
		replacements: replacements,
		publisher:    publisher,
		logger:       logger,
		perfTracker:  perfTracker,
	}
}

// Catalog scans the site documents and returns the references sel matches
func (s *MediaService) Catalog(ctx context.Context, sel media.Selection) (*media.Catalog, media.ScanReport) {
	marker := s.perfTracker.StartOperation("media_scan")
	defer marker.Complete()

	catalog, report := s.scanner.Scan(ctx, s.documents)
	marker.AddMetadata("references", report.References)
	marker.SetSuccess(len(report.Failed) == 0)
	return catalog.Filter(sel), report
}

// UploadRequest is an asset upload as received from the admin surface.
type UploadRequest struct {
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Data     string `json:"data"`
}

// ListAssets returns the uploaded assets of one kind
func (s *MediaService) ListAssets(ctx context.Context, kind string) ([]*content.MediaAsset, error) {
	k, err := content.ParseMediaKind(kind)
	if err != nil {
		return nil, invalid(err.Error())
	}
	assets, err := s.assets.FindByKind(ctx, k)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s assets: %w", k, err)
	}
	return assets, nil
}

// UploadAsset validates and stores an inline asset
func (s *MediaService) UploadAsset(ctx context.Context, req UploadRequest, actor string) (*content.MediaAsset, error) {
	start := time.Now()
	marker := s.perfTracker.StartOperation("media_upload")
	defer marker.Complete()

	kind, err := content.ParseMediaKind(req.Kind)
	if err != nil {
		return nil, invalid(err.Error())
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, invalid("title is required")
	}

	processed, err := s.processor.Process(req.Data, kind)
	if err != nil {
		return nil, uploadError(err)
	}

	category := media.Classify(title, kind)
	if c := strings.TrimSpace(req.Category); c != "" {
		if category, err = content.ParseMediaCategory(c); err != nil {
			return nil, invalid(err.Error())
		}
	}

	asset := &content.MediaAsset{
		ID:         security.GenerateULID(),
		Kind:       kind,
		Title:      title,
		Category:   category,
		Data:       req.Data,
		Thumbnail:  processed.Thumbnail,
		UploadDate: time.Now().UTC(),
	}
	if err := s.assets.Store(ctx, asset); err != nil {
		marker.SetError(err)
		return nil, fmt.Errorf("failed to store asset: %w", err)
	}

	s.publisher.Publish(messaging.Event{Type: messaging.EventAssetCreated, Target: asset.ID, Actor: actor})
	s.logger.Media().Info("Asset uploaded", "id", asset.ID, "kind", kind, "bytes", processed.Size, "duration", time.Since(start))
	marker.SetSuccess(true)
	return asset, nil
}

// DeleteAsset removes an asset by id
func (s *MediaService) DeleteAsset(ctx context.Context, id, actor string) error {
	deleted, err := s.assets.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset %s: %w", id, err)
	}
	if !deleted {
		return ErrNotFound
	}
	s.publisher.Publish(messaging.Event{Type: messaging.EventAssetDeleted, Target: id, Actor: actor})
	s.logger.Media().Info("Asset deleted", "id", id)
	return nil
}

// ListReplacements returns the whole replacement ledger
func (s *MediaService) ListReplacements(ctx context.Context) ([]*content.ReplacementRecord, error) {
	records, err := s.replacements.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list replacements: %w", err)
	}
	return records, nil
}

// RecordReplacement upserts the replacement for one original media path. The
// path is normalized so pages at any directory depth resolve the same record.
func (s *MediaService) RecordReplacement(ctx context.Context, originalPath, data, actor string) (*content.ReplacementRecord, error) {
	marker := s.perfTracker.StartOperation("media_replace")
	defer marker.Complete()

	path := media.NormalizePath(originalPath)
	if path == "" {
		return nil, invalid("originalPath is required")
	}
	kind := media.KindOf(path)
	processed, err := s.processor.Process(data, kind)
	if err != nil {
		return nil, uploadError(err)
	}

	rec := &content.ReplacementRecord{
		OriginalPath:    path,
		ReplacementData: data,
		Timestamp:       time.Now().UTC(),
	}
	if err := s.replacements.Upsert(ctx, rec); err != nil {
		marker.SetError(err)
		return nil, fmt.Errorf("failed to save replacement: %w", err)
	}

	s.publisher.Publish(messaging.Event{Type: messaging.EventReplacementSaved, Target: path, Actor: actor})
	s.logger.Media().Info("Replacement recorded", "path", path, "kind", kind, "bytes", processed.Size)
	marker.SetSuccess(true)
	return rec, nil
}

// DeleteReplacement restores the original media for a path
func (s *MediaService) DeleteReplacement(ctx context.Context, originalPath, actor string) error {
	path := media.NormalizePath(originalPath)
	if path == "" {
		return invalid("originalPath is required")
	}
	deleted, err := s.replacements.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to delete replacement: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	s.publisher.Publish(messaging.Event{Type: messaging.EventReplacementRemoved, Target: path, Actor: actor})
	return nil
}

func uploadError(err error) error {
	switch {
	case errors.Is(err, media.ErrEmptyData), errors.Is(err, media.ErrInvalidDataURI),
		errors.Is(err, media.ErrUnsupportedType), errors.Is(err, media.ErrTooLarge):
		return invalid(err.Error())
	}
	return invalid(fmt.Sprintf("invalid media payload: %v", err))
}
