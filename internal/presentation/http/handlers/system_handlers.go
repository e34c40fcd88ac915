package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/performance"
)

// SystemHandlers exposes operational state to administrators
type SystemHandlers struct {
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
	started     time.Time
}

func NewSystemHandlers(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *SystemHandlers {
	return &SystemHandlers{
		logger:      logger,
		perfTracker: perfTracker,
		started:     time.Now(),
	}
}

// GetStats handles GET /api/admin/stats
func (h *SystemHandlers) GetStats(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	respondOK(c, gin.H{
		"uptime":     time.Since(h.started).String(),
		"goroutines": runtime.NumGoroutine(),
		"heapAlloc":  mem.HeapAlloc,
		"operations": h.perfTracker.Stats(),
	})
}

// GetLogLevels handles GET /api/admin/logs/levels
func (h *SystemHandlers) GetLogLevels(c *gin.Context) {
	respondOK(c, gin.H{"data": h.logger.GetChannelLevels()})
}

// SetLogLevel handles PUT /api/admin/logs/levels
func (h *SystemHandlers) SetLogLevel(c *gin.Context) {
	var req struct {
		Channel string `json:"channel" binding:"required"`
		Level   string `json:"level" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "channel and level are required")
		return
	}

	level, ok := map[string]slog.Level{
		"DEBUG": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"WARN":  slog.LevelWarn,
		"ERROR": slog.LevelError,
	}[strings.ToUpper(req.Level)]
	if !ok {
		respondMessage(c, http.StatusBadRequest, "invalid log level specified")
		return
	}

	if err := h.logger.SetChannelLevel(logging.Channel(req.Channel), level); err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.System().Info("Log level changed", "channel", req.Channel, "level", level.String())
	respondOK(c, gin.H{"message": fmt.Sprintf("log level for channel %q set to %s", req.Channel, level)})
}
