package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/noble-it/hub/internal/auth"
	"github.com/noble-it/hub/internal/config"
	"github.com/noble-it/hub/internal/handlers"
	"github.com/noble-it/hub/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	Config  *config.Config
	Handler *handlers.Handler
	Issuer  *auth.Issuer
	Logger  *slog.Logger
}

func NewRouter(opts Options) *gin.Engine {
	cfg := opts.Config
	h := opts.Handler

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(opts.Logger))

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.AuthMiddleware(opts.Issuer)
	requireDB := middleware.RequireDatabase(cfg.DatabaseEnabled())

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthCheck)
		api.GET("/openapi.json", h.OpenAPIJSON)
		api.GET("/openapi.yaml", h.OpenAPIYAML)
		api.GET("/docs/*any", handlers.SwaggerUI())

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", h.Login)
			authGroup.GET("/me", requireAuth, h.Me)
			authGroup.POST("/logout", h.Logout)
		}

		admin := api.Group("/admin", requireAuth)
		{
			admin.GET("/ws", h.WebSocket)
			admin.GET("/status", h.MonitorStatuses)

			data := admin.Group("", requireDB)
			data.POST("/onboarding", h.Onboard)
			data.GET("/stats", h.DashboardStats)
			data.GET("/uptime", h.UptimeSeries)
			data.GET("/incident-frequency", h.IncidentFrequency)
			data.GET("/client-traffic", h.ClientTraffic)
		}

		clients := api.Group("/clients", requireAuth, requireDB)
		{
			clients.GET("", h.ListClients)
			clients.POST("", h.CreateClient)
			clients.DELETE("/:id", h.DeleteClient)
			clients.GET("/:id/timeline", h.ClientTimeline)
		}

		projects := api.Group("/projects", requireAuth, requireDB)
		{
			projects.GET("", h.ListProjects)
			projects.POST("", h.CreateProject)
			projects.DELETE("/:id", h.DeleteProject)
		}

		incidents := api.Group("/incidents", requireAuth, requireDB)
		{
			incidents.GET("", h.ListIncidents)
			incidents.POST("", h.CreateIncident)
			incidents.PATCH("/:id", h.ResolveIncident)
		}

		tickets := api.Group("/tickets", requireAuth, requireDB)
		{
			tickets.GET("", h.ListTickets)
			tickets.POST("", h.CreateTicket)
		}
	}

	return r
}
