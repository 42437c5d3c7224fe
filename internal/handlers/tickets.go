package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/noble-it/hub/internal/services"
)

func (h *Handler) ListTickets(ctx *gin.Context) {
	tickets, err := h.records.ListTickets(ctx.Request.Context())

	if err != nil {
		h.respondError(ctx, err, "Failed to fetch tickets")
		return
	}

	ctx.JSON(http.StatusOK, tickets)
}

func (h *Handler) CreateTicket(ctx *gin.Context) {
	var req services.CreateTicketInput

	if !h.bindJSON(ctx, &req) {
		return
	}

	ticket, err := h.records.CreateTicket(ctx.Request.Context(), req)

	if err != nil {
		h.respondError(ctx, err, "Failed to create ticket")
		return
	}

	h.broadcast(TopicTickets)
	ctx.JSON(http.StatusCreated, ticket)
}
