package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/noble-it/hub/internal/services"
)

func (h *Handler) Onboard(ctx *gin.Context) {
	var req services.OnboardingRequest

	if !h.bindJSON(ctx, &req) {
		return
	}

	result, err := h.onboarding.Onboard(ctx.Request.Context(), req)

	if err != nil {
		h.respondError(ctx, err, "Failed to complete onboarding")
		return
	}

	h.broadcast(TopicClients)
	ctx.JSON(http.StatusCreated, result)
}
