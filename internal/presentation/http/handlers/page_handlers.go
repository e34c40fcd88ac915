package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PuneetGOTO/business-website-sub000/internal/application/services"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
	"github.com/PuneetGOTO/business-website-sub000/internal/presentation/http/middleware"
)

// PageHandlers reads and writes raw page files for the admin editor
type PageHandlers struct {
	pageService *services.PageService
	maxBytes    int64
	logger      *logging.ChanneledLogger
}

func NewPageHandlers(pageService *services.PageService, maxBytes int64, logger *logging.ChanneledLogger) *PageHandlers {
	return &PageHandlers{
		pageService: pageService,
		maxBytes:    maxBytes,
		logger:      logger,
	}
}

// GetPage handles GET /api/pages/:filename
func (h *PageHandlers) GetPage(c *gin.Context) {
	raw, err := h.pageService.Read(c.Param("filename"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"data": string(raw)})
}

// PutPage handles PUT /api/pages/:filename. The body is the new page source,
// either raw or as {"content": "..."}.
func (h *PageHandlers) PutPage(c *gin.Context) {
	name := c.Param("filename")
	if !services.ValidPageFilename(name) {
		respondMessage(c, http.StatusBadRequest, "invalid page filename")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondMessage(c, http.StatusRequestEntityTooLarge, "page body is too large")
			return
		}
		respondMessage(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	if c.ContentType() == gin.MIMEJSON {
		var req struct {
			Content *string `json:"content"`
		}
		if err := json.Unmarshal(body, &req); err != nil || req.Content == nil {
			respondMessage(c, http.StatusBadRequest, "content is required")
			return
		}
		body = []byte(*req.Content)
	}

	snapshot, err := h.pageService.Write(name, body, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	h.logger.Content().Info("Page write request completed", "page", name, "actor", middleware.Actor(c))
	respondOK(c, gin.H{"message": "page saved", "backup": snapshot})
}
