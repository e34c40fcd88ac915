package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PuneetGOTO/business-website-sub000/internal/application/services"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
)

// SiteHandlers serves the public site: rendered pages and static assets
type SiteHandlers struct {
	renderService *services.RenderService
	siteRoot      string
	logger        *logging.ChanneledLogger
}

func NewSiteHandlers(renderService *services.RenderService, siteRoot string, logger *logging.ChanneledLogger) *SiteHandlers {
	return &SiteHandlers{
		renderService: renderService,
		siteRoot:      siteRoot,
		logger:        logger,
	}
}

// Serve is installed as the router's NoRoute handler. Anything under /api
// that reached here is an unknown endpoint.
func (h *SiteHandlers) Serve(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") || c.Request.URL.Path == "/api" {
		respondMessage(c, http.StatusNotFound, "endpoint not found")
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		respondMessage(c, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	clean := strings.TrimPrefix(path.Clean("/"+c.Request.URL.Path), "/")
	if clean == "" {
		clean = "index.html"
	}
	for _, segment := range strings.Split(clean, "/") {
		if strings.HasPrefix(segment, ".") {
			c.Status(http.StatusNotFound)
			return
		}
	}

	if strings.HasSuffix(strings.ToLower(clean), ".html") && !strings.Contains(clean, "/") {
		h.servePage(c, clean)
		return
	}
	target := filepath.Join(h.siteRoot, filepath.FromSlash(clean))
	if info, err := os.Stat(target); err != nil || info.IsDir() {
		c.Status(http.StatusNotFound)
		return
	}
	c.File(target)
}

func (h *SiteHandlers) servePage(c *gin.Context, page string) {
	out, _, err := h.renderService.Render(c.Request.Context(), page)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusBadRequest {
			status = http.StatusNotFound
		}
		if status >= 500 {
			h.logger.Content().Error("Failed to serve page", "page", page, "error", err.Error())
		}
		c.Data(status, "text/plain; charset=utf-8", []byte(http.StatusText(status)))
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "text/html; charset=utf-8", out)
}
