package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/noble-it/hub/internal/services"
	"github.com/noble-it/hub/internal/utils"
)

func (h *Handler) ListIncidents(ctx *gin.Context) {
	incidents, err := h.incidents.List(ctx.Request.Context())

	if err != nil {
		h.respondError(ctx, err, "Failed to fetch incidents")
		return
	}

	ctx.JSON(http.StatusOK, incidents)
}

func (h *Handler) CreateIncident(ctx *gin.Context) {
	var req services.CreateIncidentInput

	if !h.bindJSON(ctx, &req) {
		return
	}

	incident, err := h.incidents.Create(ctx.Request.Context(), req)

	if err != nil {
		h.respondError(ctx, err, "Failed to create incident")
		return
	}

	h.broadcast(TopicIncidents)
	ctx.JSON(http.StatusCreated, incident)
}

// ResolveIncident marks the incident resolved. Repeating the call is safe
// and returns the original resolution time.
func (h *Handler) ResolveIncident(ctx *gin.Context) {
	id, err := utils.GetID(ctx, "id")

	if err != nil {
		h.respondError(ctx, err, "Invalid incident ID")
		return
	}

	incident, err := h.incidents.Resolve(ctx.Request.Context(), id)

	if err != nil {
		h.respondError(ctx, err, "Failed to update incident")
		return
	}

	h.broadcast(TopicIncidents)
	ctx.JSON(http.StatusOK, incident)
}
