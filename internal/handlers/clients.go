package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/noble-it/hub/internal/services"
	"github.com/noble-it/hub/internal/utils"
)

const (
	defaultTimelineLimit = 50
	maxTimelineLimit     = 200
)

func (h *Handler) ListClients(ctx *gin.Context) {
	clients, err := h.records.ListClients(ctx.Request.Context())

	if err != nil {
		h.respondError(ctx, err, "Failed to fetch clients")
		return
	}

	ctx.JSON(http.StatusOK, clients)
}

func (h *Handler) CreateClient(ctx *gin.Context) {
	var req services.CreateClientInput

	if !h.bindJSON(ctx, &req) {
		return
	}

	client, err := h.records.CreateClient(ctx.Request.Context(), req)

	if err != nil {
		h.respondError(ctx, err, "Failed to create client")
		return
	}

	h.broadcast(TopicClients)
	ctx.JSON(http.StatusCreated, client)
}

func (h *Handler) DeleteClient(ctx *gin.Context) {
	id, err := utils.GetID(ctx, "id")

	if err != nil {
		h.respondError(ctx, err, "Invalid client ID")
		return
	}

	if err := h.records.DeleteClient(ctx.Request.Context(), id); err != nil {
		h.respondError(ctx, err, "Failed to delete client")
		return
	}

	h.broadcast(TopicClients)
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) ClientTimeline(ctx *gin.Context) {
	id, err := utils.GetID(ctx, "id")

	if err != nil {
		h.respondError(ctx, err, "Invalid client ID")
		return
	}

	limit := utils.GetLimit(ctx, defaultTimelineLimit, maxTimelineLimit)

	events, err := h.records.ClientTimeline(ctx.Request.Context(), id, limit)

	if err != nil {
		h.respondError(ctx, err, "Failed to fetch timeline")
		return
	}

	ctx.JSON(http.StatusOK, events)
}
