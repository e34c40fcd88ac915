package handlers

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/messaging"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
)

// EventHandlers upgrades admin dashboards to the change event stream
type EventHandlers struct {
	hub      *messaging.Hub
	upgrader websocket.Upgrader
	logger   *logging.ChanneledLogger
}

func NewEventHandlers(hub *messaging.Hub, allowedOrigins []string, logger *logging.ChanneledLogger) *EventHandlers {
	return &EventHandlers{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, origin) ||
					origin == "http://"+r.Host || origin == "https://"+r.Host
			},
		},
		logger: logger,
	}
}

// GetEvents handles GET /api/admin/events
func (h *EventHandlers) GetEvents(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.HTTP().Warn("Websocket upgrade failed", "error", err.Error())
		return
	}

	client := messaging.NewClient(conn)
	if !h.hub.Register(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	client.ReadPump()
	h.hub.Unregister(client)
}
