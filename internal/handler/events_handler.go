package handler

import (
	"log/slog"
	"net/http"
	"time"

	"boardshelf/backend/internal/hub"

	"github.com/gin-gonic/gin"
)

// heartbeat keeps idle streams open through proxies.
var heartbeat = 30 * time.Second

// StreamEvents godoc
// @Summary      Subscribe to catalogue events
// @Description  Server-sent events for changes made in the caller's household (or by the caller when not in one). Admins may pass scope=admin to follow submissions instead.
// @Tags         events
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        scope query string false "admin for the review queue"
// @Success      200 {string} string "event stream"
// @Failure      403 {object} ErrorResponse
// @Router       /events [get]
func (h *Handler) StreamEvents(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}

	topic := topicFor(user)
	if c.Query("scope") == "admin" {
		if !user.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		topic = hub.AdminTopic
	}

	client := make(hub.Client, 16)
	h.hub.Subscribe(topic, client)
	defer h.hub.Unsubscribe(topic, client)
	h.logger.Debug("event stream opened", slog.String("topic", topic), slog.Uint64("user_id", uint64(user.ID)))

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, open := <-client:
			if !open {
				return
			}
			c.SSEvent("message", string(msg))
			c.Writer.Flush()
		case t := <-ticker.C:
			c.SSEvent("ping", t.Unix())
			c.Writer.Flush()
		}
	}
}
