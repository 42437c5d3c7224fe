// Package app assembles the service from configuration.
package app

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/noble-it/hub/internal/auth"
	"github.com/noble-it/hub/internal/config"
	"github.com/noble-it/hub/internal/handlers"
	"github.com/noble-it/hub/internal/metrics"
	"github.com/noble-it/hub/internal/notify"
	"github.com/noble-it/hub/internal/realtime"
	"github.com/noble-it/hub/internal/router"
	"github.com/noble-it/hub/internal/scheduler"
	"github.com/noble-it/hub/internal/services"
	"github.com/noble-it/hub/internal/store"
	"github.com/noble-it/hub/internal/uptime"
	"gorm.io/gorm"
)

type App struct {
	Config    *config.Config
	DB        *gorm.DB
	Router    *gin.Engine
	Hub       *realtime.Hub
	Scheduler *scheduler.Scheduler
	Monitors  *services.MonitorService
	Logger    *slog.Logger
}

// New wires every component. gdb may be nil when no database is configured;
// data routes then answer 503.
func New(cfg *config.Config, gdb *gorm.DB, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	m := metrics.Global()

	var s *store.Store
	if gdb != nil {
		s = store.New(gdb)
	} else {
		logger.Warn("DATABASE_URL not set, data routes will answer 503")
	}

	uptimeClient := uptime.NewClient(cfg.UptimeAPIKey, cfg.UptimeBaseURL, cfg.UptimeTimeout, m)
	if !uptimeClient.Enabled() {
		logger.Info("UPTIMEROBOT_API_KEY not set, uptime monitoring disabled")
	}

	notifier := notify.NewNotifier(cfg.DiscordWebhookURL, cfg.SlackWebhookURL, cfg.WebhookTimeout, m)

	var issuer *auth.Issuer
	if cfg.AuthEnabled() {
		var err error
		if issuer, err = auth.NewIssuer(cfg.JWTSecret, cfg.TokenExpiration); err != nil {
			return nil, err
		}
		if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
			logger.Warn("ADMIN_EMAIL or ADMIN_PASSWORD_HASH not set, admin login will always fail")
		}
	} else {
		logger.Warn("JWT_SECRET not set, admin routes are unauthenticated")
	}

	monitors := services.NewMonitorService(s, uptimeClient, logger)

	var backfiller scheduler.Backfiller
	if s != nil {
		backfiller = monitors
	}

	sched, err := scheduler.NewScheduler(cfg.MonitorBackfillSchedule, backfiller, m, logger)
	if err != nil {
		return nil, err
	}

	hub := realtime.NewHub(cfg.AllowedOrigins, m, logger)

	h := handlers.New(handlers.Deps{
		Config:     cfg,
		Store:      s,
		Onboarding: services.NewOnboardingService(s, monitors, notifier, m, logger),
		Dashboard:  services.NewDashboardService(s, uptimeClient, logger),
		Incidents:  services.NewIncidentService(s, notifier, logger),
		Records:    services.NewRecordService(s, logger),
		Issuer:     issuer,
		Hub:        hub,
		Scheduler:  sched,
		Logger:     logger,
	})

	return &App{
		Config: cfg,
		DB:     gdb,
		Router: router.NewRouter(router.Options{
			Config:  cfg,
			Handler: h,
			Issuer:  issuer,
			Logger:  logger,
		}),
		Hub:       hub,
		Scheduler: sched,
		Monitors:  monitors,
		Logger:    logger,
	}, nil
}

// Close stops background work and releases the database.
func (a *App) Close() error {
	a.Scheduler.Stop()
	a.Hub.Close()

	if a.DB == nil {
		return nil
	}

	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
