package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/noble-it/hub/db"
)

func (h *Handler) HealthCheck(c *gin.Context) {
	database := "disabled"

	if h.store != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		database = "up"
		if err := db.Ping(pingCtx, h.store.DB()); err != nil {
			h.logger.Warn("database ping failed", "error", err)
			database = "down"
		}
	}

	status := "ok"
	if database == "down" {
		status = "degraded"
	}

	body := gin.H{
		"status":    status,
		"message":   "Noble IT Hub is running",
		"database":  database,
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if h.scheduler != nil {
		body["scheduler"] = h.scheduler.Status()
	}

	c.JSON(200, body)
}
