package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PuneetGOTO/business-website-sub000/internal/application/services"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/media"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/performance"
	"github.com/PuneetGOTO/business-website-sub000/internal/presentation/http/middleware"
)

// ReplacementRequest is the body of PUT /api/media/replacements
type ReplacementRequest struct {
	OriginalPath    string `json:"originalPath" binding:"required"`
	ReplacementData string `json:"replacementData" binding:"required"`
}

// MediaHandlers contains catalog, asset library and replacement handlers
type MediaHandlers struct {
	mediaService *services.MediaService
	logger       *logging.ChanneledLogger
	perfTracker  *performance.Tracker
}

// NewMediaHandlers creates media handlers with injected dependencies
func NewMediaHandlers(mediaService *services.MediaService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *MediaHandlers {
	return &MediaHandlers{
		mediaService: mediaService,
		logger:       logger,
		perfTracker:  perfTracker,
	}
}

// GetCatalog handles GET /api/media/catalog?kind=&category=
func (h *MediaHandlers) GetCatalog(c *gin.Context) {
	start := time.Now()
	h.logger.Media().Debug("Received catalog request", "method", c.Request.Method, "path", c.Request.URL.Path)
	marker := h.perfTracker.StartOperation("get_media_catalog_request")
	defer marker.Complete()

	sel, err := media.ParseSelection(c.Query("kind"), c.Query("category"))
	if err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	catalog, report := h.mediaService.Catalog(c.Request.Context(), sel)

	h.logger.Media().Info("Catalog request completed", "references", catalog.Len(), "failed", len(report.Failed), "duration", time.Since(start))
	marker.SetSuccess(true)
	respondOK(c, gin.H{"data": catalog, "report": report})
}

// GetAssets handles GET /api/media/assets?kind=
func (h *MediaHandlers) GetAssets(c *gin.Context) {
	kind := c.DefaultQuery("kind", "image")
	assets, err := h.mediaService.ListAssets(c.Request.Context(), kind)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"data": assets, "count": len(assets)})
}

// PostAsset handles POST /api/media/assets
func (h *MediaHandlers) PostAsset(c *gin.Context) {
	start := time.Now()
	h.logger.Media().Debug("Received asset upload request", "method", c.Request.Method, "path", c.Request.URL.Path)
	marker := h.perfTracker.StartOperation("post_media_asset_request")
	defer marker.Complete()

	var req services.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid request body")
		return
	}

	asset, err := h.mediaService.UploadAsset(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		marker.SetError(err)
		respondError(c, err)
		return
	}

	h.logger.Media().Info("Asset upload request completed", "id", asset.ID, "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": asset})
}

// DeleteAsset handles DELETE /api/media/assets/:id
func (h *MediaHandlers) DeleteAsset(c *gin.Context) {
	id := c.Param("id")
	if err := h.mediaService.DeleteAsset(c.Request.Context(), id, middleware.Actor(c)); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "asset deleted"})
}

// GetReplacements handles GET /api/media/replacements
func (h *MediaHandlers) GetReplacements(c *gin.Context) {
	records, err := h.mediaService.ListReplacements(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"data": records, "count": len(records)})
}

// PutReplacement handles PUT /api/media/replacements
func (h *MediaHandlers) PutReplacement(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("put_media_replacement_request")
	defer marker.Complete()

	var req ReplacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "originalPath and replacementData are required")
		return
	}

	rec, err := h.mediaService.RecordReplacement(c.Request.Context(), req.OriginalPath, req.ReplacementData, middleware.Actor(c))
	if err != nil {
		marker.SetError(err)
		respondError(c, err)
		return
	}

	h.logger.Media().Info("Replacement request completed", "path", rec.OriginalPath, "duration", time.Since(start))
	marker.SetSuccess(true)
	respondOK(c, gin.H{"data": rec})
}

// DeleteReplacement handles DELETE /api/media/replacements?path=
func (h *MediaHandlers) DeleteReplacement(c *gin.Context) {
	if err := h.mediaService.DeleteReplacement(c.Request.Context(), c.Query("path"), middleware.Actor(c)); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "replacement removed"})
}
