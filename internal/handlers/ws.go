package handlers

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) WebSocket(c *gin.Context) {
	h.hub.Serve(c.Writer, c.Request)
}
