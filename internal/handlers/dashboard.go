package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) DashboardStats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.dashboard.Stats(ctx.Request.Context()))
}

func (h *Handler) UptimeSeries(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.dashboard.UptimeSeries(ctx.Request.Context()))
}

func (h *Handler) IncidentFrequency(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.dashboard.IncidentFrequency(ctx.Request.Context()))
}

func (h *Handler) ClientTraffic(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.dashboard.ClientTraffic(ctx.Request.Context()))
}

func (h *Handler) MonitorStatuses(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.dashboard.MonitorStatuses(ctx.Request.Context()))
}
