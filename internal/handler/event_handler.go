package handler

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"gamersdb/backend/internal/hub"
)

// keepAlivePeriod is how often an idle event stream sends a ping.
const keepAlivePeriod = 15 * time.Second

// EventHandler streams catalog changes as server-sent events.
type EventHandler struct {
	hub *hub.Hub
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(h *hub.Hub) *EventHandler {
	return &EventHandler{hub: h}
}

// StreamEvents godoc
// @Summary      Stream catalog changes
// @Description  Server-sent events; each "catalog" event carries {"type": "game.created|game.updated|game.deleted", "payload": game}.
// @Tags         events
// @Produce      text/event-stream
// @Success      200
// @Router       /events [get]
func (h *EventHandler) StreamEvents(c *gin.Context) {
	client := h.hub.Subscribe()
	defer h.hub.Unsubscribe(client)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(keepAlivePeriod)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("catalog", string(msg))
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		case <-ctx.Done():
			return false
		}
	})
}
