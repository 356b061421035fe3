package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lkalneus/tubefeed/app/feed"
	"github.com/lkalneus/tubefeed/app/tasks"
)

func NewHandler(snapshot *feed.Snapshot, scheduler tasks.SchedulerInterface, version string) *Handler {
	return &Handler{
		snapshot:  snapshot,
		scheduler: scheduler,
		version:   version,
	}
}

// GetFeed serves the RSS document produced by the most recent cycle.
// Until the first cycle completes there is nothing to serve.
func (h *Handler) GetFeed(c *gin.Context) {
	rss, ok := h.snapshot.RSS()
	if !ok {
		c.Status(http.StatusServiceUnavailable)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	if stats, ok := h.snapshot.Stats(); ok {
		c.Header("X-Feed-Items", strconv.Itoa(stats.VideoCount))
		c.Header("X-Last-Updated", stats.CompletedAt.Format(time.RFC3339))
	}

	c.String(http.StatusOK, rss)
}

// GetExport serves the JSON export produced by the most recent cycle.
func (h *Handler) GetExport(c *gin.Context) {
	export, ok := h.snapshot.Export()
	if !ok {
		c.Status(http.StatusServiceUnavailable)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", export)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if stats, ok := h.snapshot.Stats(); ok {
		health["last_cycle"] = map[string]interface{}{
			"id":           stats.CycleID,
			"completed_at": stats.CompletedAt.Format(time.RFC3339),
			"channels":     stats.ChannelCount,
			"videos":       stats.VideoCount,
		}
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) APIRefresh(c *gin.Context) {
	if !h.scheduler.TriggerRefresh() {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": "A refresh is already pending",
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Refresh scheduled",
	})
}
