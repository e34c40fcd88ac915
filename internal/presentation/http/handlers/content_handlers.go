package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PuneetGOTO/business-website-sub000/internal/application/services"
	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/performance"
	"github.com/PuneetGOTO/business-website-sub000/internal/presentation/http/middleware"
)

// ContentHandlers contains the section read and write handlers
type ContentHandlers struct {
	contentService *services.ContentService
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

// NewContentHandlers creates content handlers with injected dependencies
func NewContentHandlers(contentService *services.ContentService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ContentHandlers {
	return &ContentHandlers{
		contentService: contentService,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// GetAllContent handles GET /api/content
func (h *ContentHandlers) GetAllContent(c *gin.Context) {
	start := time.Now()
	h.logger.Content().Debug("Received get all content request", "method", c.Request.Method, "path", c.Request.URL.Path)
	marker := h.perfTracker.StartOperation("get_all_content_request")
	defer marker.Complete()

	sections, err := h.contentService.GetAll(c.Request.Context())
	if err != nil {
		marker.SetError(err)
		respondError(c, err)
		return
	}

	h.logger.Content().Info("Get all content request completed", "count", len(sections), "duration", time.Since(start))
	marker.SetSuccess(true)
	respondOK(c, gin.H{"data": sections})
}

// GetContent handles GET /api/content/:type
func (h *ContentHandlers) GetContent(c *gin.Context) {
	start := time.Now()
	name := c.Param("type")
	h.logger.Content().Debug("Received get content request", "method", c.Request.Method, "path", c.Request.URL.Path, "section", name)
	marker := h.perfTracker.StartOperation("get_content_request")
	defer marker.Complete()

	data, found, err := h.contentService.Get(c.Request.Context(), name)
	if err != nil {
		marker.SetError(err)
		respondError(c, err)
		return
	}
	if !found {
		respondMessage(c, http.StatusNotFound, "content not found: "+name)
		return
	}

	h.logger.Content().Info("Get content request completed", "section", name, "duration", time.Since(start))
	marker.SetSuccess(true)
	respondOK(c, gin.H{"data": data})
}

// PutContent handles PUT /api/content/:type. The body replaces the whole section.
func (h *ContentHandlers) PutContent(c *gin.Context) {
	start := time.Now()
	name := c.Param("type")
	h.logger.Content().Debug("Received put content request", "method", c.Request.Method, "path", c.Request.URL.Path, "section", name)
	marker := h.perfTracker.StartOperation("put_content_request")
	defer marker.Complete()

	if !content.IsKnownSection(name) {
		respondMessage(c, http.StatusBadRequest, "unknown content section: "+name)
		return
	}

	var data content.Section
	if err := c.ShouldBindJSON(&data); err != nil {
		respondMessage(c, http.StatusBadRequest, "request body must be a JSON object")
		return
	}

	saved, err := h.contentService.Save(c.Request.Context(), name, data, middleware.Actor(c))
	if err != nil {
		marker.SetError(err)
		respondError(c, err)
		return
	}

	h.logger.Content().Info("Put content request completed", "section", name, "duration", time.Since(start))
	marker.SetSuccess(true)
	respondOK(c, gin.H{"data": saved})
}
