// Package services provides application-level services that orchestrate
// business logic and coordinate between repositories and domain entities.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
	"github.com/PuneetGOTO/business-website-sub000/internal/domain/repositories"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/contentstore"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/messaging"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/performance"
)

// ContentService orchestrates section reads and writes against the authoritative store
type ContentService struct {
	store       contentstore.Accessor
	sectionRepo repositories.SectionRepository
	publisher   messaging.Publisher
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewContentService creates a new content application service
func NewContentService(store contentstore.Accessor, sectionRepo repositories.SectionRepository, publisher messaging.Publisher,
	logger *logging.ChanneledLogger, perfTracker *performance.Tracker,
) *ContentService {
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	return &ContentService{
		store:       store,
		sectionRepo: sectionRepo,
		publisher:   publisher,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// GetAll returns every saved section keyed by name
func (s *ContentService) GetAll(ctx context.Context) (map[string]content.Section, error) {
	marker := s.perfTracker.StartOperation("content_get_all")
	defer marker.Complete()

	records, err := s.sectionRepo.FindAll(ctx)
	if err != nil {
		marker.SetError(err)
		return nil, fmt.Errorf("failed to load sections: %w", err)
	}

	out := make(map[string]content.Section, len(records))
	for _, rec := range records {
		out[rec.Name] = rec.Data
	}
	marker.SetSuccess(true)
	return out, nil
}

// Get returns one section. Unknown or unsaved sections report false.
func (s *ContentService) Get(ctx context.Context, name string) (content.Section, bool, error) {
	data, found, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load section %s: %w", name, err)
	}
	return data, found, nil
}

// Save replaces the whole payload of a known section
func (s *ContentService) Save(ctx context.Context, name string, data content.Section, actor string) (content.Section, error) {
	start := time.Now()
	marker := s.perfTracker.StartOperation("content_save")
	defer marker.Complete()
	marker.AddMetadata("section", name)

	if !content.IsKnownSection(name) {
		return nil, invalid(fmt.Sprintf("unknown content section %q", name))
	}
	if data == nil {
		return nil, invalid("request body must be a JSON object")
	}

	if err := s.store.Set(ctx, name, data); err != nil {
		marker.SetError(err)
		s.logger.Content().Error("Failed to save section", "section", name, "error", err.Error())
		return nil, fmt.Errorf("failed to save section %s: %w", name, err)
	}

	s.publisher.Publish(messaging.Event{Type: messaging.EventContentUpdated, Target: name, Actor: actor})
	s.logger.Content().Info("Section saved", "section", name, "fields", len(data), "actor", actor, "duration", time.Since(start))
	marker.SetSuccess(true)
	return data, nil
}
