package services

import (
	"context"
	"time"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
	"github.com/PuneetGOTO/business-website-sub000/internal/domain/repositories"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/performance"
	"github.com/PuneetGOTO/business-website-sub000/internal/presentation/templates"
)

// RenderService serves site pages with saved content and media replacements applied
type RenderService struct {
	pages        *PageService
	content      *ContentService
	replacements repositories.ReplacementRepository
	pipeline     *templates.Pipeline
	logger       *logging.ChanneledLogger
	perfTracker  *performance.Tracker
}

func NewRenderService(pages *PageService, contentService *ContentService, replacements repositories.ReplacementRepository,
	pipeline *templates.Pipeline, logger *logging.ChanneledLogger, perfTracker *performance.Tracker,
) *RenderService {
	return &RenderService{
		pages:        pages,
		content:      contentService,
		replacements: replacements,
		pipeline:     pipeline,
		logger:       logger,
		perfTracker:  perfTracker,
	}
}

// Render returns the page with every stage applied. When content cannot be
// loaded or the page cannot be processed, the raw page is served instead so
// visitors always see the static defaults.
func (s *RenderService) Render(ctx context.Context, page string) ([]byte, templates.RenderStats, error) {
	start := time.Now()
	marker := s.perfTracker.StartOperation("render_page")
	defer marker.Complete()
	marker.AddMetadata("page", page)

	raw, err := s.pages.Read(page)
	if err != nil {
		return nil, templates.RenderStats{}, err
	}

	sections, err := s.content.GetAll(ctx)
	if err != nil {
		s.logger.Content().Warn("Serving page without saved content", "page", page, "error", err.Error())
		sections = map[string]content.Section{}
	}

	records, err := s.replacements.FindAll(ctx)
	if err != nil {
		s.logger.Media().Warn("Serving page without media replacements", "page", page, "error", err.Error())
		records = nil
	}

	out, stats, err := s.pipeline.Render(templates.RenderInput{
		Page:         page,
		HTML:         raw,
		Sections:     sections,
		Replacements: records,
	})
	if err != nil {
		marker.SetError(err)
		s.logger.Content().Error("Render failed, serving raw page", "page", page, "error", err.Error())
		return raw, templates.RenderStats{}, nil
	}

	s.logger.Content().Debug("Page rendered",
		"page", page,
		"fieldsApplied", stats.Fields.Applied,
		"fieldsFailed", stats.Fields.Failed,
		"matches", stats.Matches,
		"replacements", stats.Replacements,
		"duration", time.Since(start))
	marker.SetSuccess(true)
	return out, stats, nil
}
