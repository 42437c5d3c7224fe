package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/noble-it/hub/internal/services"
	"github.com/noble-it/hub/internal/utils"
)

func (h *Handler) ListProjects(ctx *gin.Context) {
	projects, err := h.records.ListProjects(ctx.Request.Context())

	if err != nil {
		h.respondError(ctx, err, "Failed to fetch projects")
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

func (h *Handler) CreateProject(ctx *gin.Context) {
	var req services.CreateProjectInput

	if !h.bindJSON(ctx, &req) {
		return
	}

	project, err := h.records.CreateProject(ctx.Request.Context(), req)

	if err != nil {
		h.respondError(ctx, err, "Failed to create project")
		return
	}

	h.broadcast(TopicProjects)
	ctx.JSON(http.StatusCreated, project)
}

func (h *Handler) DeleteProject(ctx *gin.Context) {
	id, err := utils.GetID(ctx, "id")

	if err != nil {
		h.respondError(ctx, err, "Invalid project ID")
		return
	}

	if err := h.records.DeleteProject(ctx.Request.Context(), id); err != nil {
		h.respondError(ctx, err, "Failed to delete project")
		return
	}

	h.broadcast(TopicProjects)
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
