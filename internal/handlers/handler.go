package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/noble-it/hub/internal/apperrors"
	"github.com/noble-it/hub/internal/auth"
	"github.com/noble-it/hub/internal/config"
	"github.com/noble-it/hub/internal/realtime"
	"github.com/noble-it/hub/internal/scheduler"
	"github.com/noble-it/hub/internal/services"
	"github.com/noble-it/hub/internal/store"
	"github.com/noble-it/hub/internal/types"
)

// Refresh topics sent to dashboards after a mutation.
const (
	TopicClients   = "clients"
	TopicProjects  = "projects"
	TopicIncidents = "incidents"
	TopicTickets   = "tickets"
)

type Deps struct {
	Config     *config.Config
	Store      *store.Store
	Onboarding *services.OnboardingService
	Dashboard  *services.DashboardService
	Incidents  *services.IncidentService
	Records    *services.RecordService
	Issuer     *auth.Issuer
	Hub        *realtime.Hub
	Scheduler  *scheduler.Scheduler
	Logger     *slog.Logger
}

type Handler struct {
	cfg        *config.Config
	store      *store.Store
	onboarding *services.OnboardingService
	dashboard  *services.DashboardService
	incidents  *services.IncidentService
	records    *services.RecordService
	issuer     *auth.Issuer
	hub        *realtime.Hub
	scheduler  *scheduler.Scheduler
	logger     *slog.Logger
}

func New(deps Deps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{}
	}

	return &Handler{
		cfg:        cfg,
		store:      deps.Store,
		onboarding: deps.Onboarding,
		dashboard:  deps.Dashboard,
		incidents:  deps.Incidents,
		records:    deps.Records,
		issuer:     deps.Issuer,
		hub:        deps.Hub,
		scheduler:  deps.Scheduler,
		logger:     logger,
	}
}

// respondError writes {"error": ..., "field": ...}. Persistence failures
// always use fallback so driver text never reaches the client.
func (h *Handler) respondError(ctx *gin.Context, err error, fallback string) {
	kind := apperrors.KindOf(err)
	status := apperrors.HTTPStatus(kind)

	message := fallback
	body := gin.H{}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) && kind != apperrors.KindPersistence && appErr.Message != "" {
		message = appErr.Message
		if appErr.Field != "" {
			body["field"] = appErr.Field
		}
	}
	body["error"] = message

	if status >= http.StatusInternalServerError {
		h.logger.Error(fallback, "error", err, "path", ctx.FullPath(), "request_id", ctx.GetString(types.ContextRequestIDKey))
	}

	ctx.JSON(status, body)
}

// bindJSON reports a 400 and returns false when the body is not valid JSON.
func (h *Handler) bindJSON(ctx *gin.Context, dst interface{}) bool {
	if err := ctx.ShouldBindJSON(dst); err != nil {
		h.logger.Debug("failed to bind JSON", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return false
	}
	return true
}

func (h *Handler) broadcast(topic string) {
	h.hub.Broadcast(topic)
}
