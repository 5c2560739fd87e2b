package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"github.com/blizon/ops-dashboard/internal/auth"
	"github.com/blizon/ops-dashboard/internal/config"
	"github.com/blizon/ops-dashboard/internal/http/handler"
	"github.com/blizon/ops-dashboard/internal/http/middleware"
	"github.com/blizon/ops-dashboard/internal/metrics"
	"github.com/blizon/ops-dashboard/internal/service"

	_ "github.com/blizon/ops-dashboard/docs" // registers the swagger spec
)

// Handlers groups every HTTP handler mounted under /api/v1
type Handlers struct {
	Auth         *handler.AuthHandler
	Client       *handler.ClientHandler
	Project      *handler.ProjectHandler
	Team         *handler.TeamHandler
	Intern       *handler.InternHandler
	Contract     *handler.ContractHandler
	Search       *handler.SearchHandler
	Session      *handler.SessionHandler
	Dashboard    *handler.DashboardHandler
	Notification *handler.NotificationHandler
}

type Router struct {
	cfg            *config.Config
	logger         *zap.Logger
	metrics        *metrics.Metrics
	sessions       *service.SessionService
	authMiddleware *auth.Middleware
	rateLimiter    *middleware.RateLimiter
	handlers       Handlers
	startedAt      time.Time
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	m *metrics.Metrics,
	sessions *service.SessionService,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	handlers Handlers,
) *Router {
	return &Router{
		cfg:            cfg,
		logger:         logger,
		metrics:        m,
		sessions:       sessions,
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
		handlers:       handlers,
		startedAt:      time.Now(),
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.Metrics(rt.metrics))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, &rt.cfg.App, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)
	if timeout := rt.cfg.Server.RequestTimeoutDuration(); timeout > 0 {
		r.Use(chimw.Timeout(timeout))
	}

	// Liveness probe
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Readiness probe with in-memory state summary
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":         "healthy",
			"activeSessions": rt.sessions.Count(),
			"uptimeSeconds":  int(time.Since(rt.startedAt).Seconds()),
		})
	})

	r.Method(http.MethodGet, "/metrics", rt.metrics.Handler())

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.With(middleware.SwaggerSecurityHeaders).Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	h := rt.handlers

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/auth/login", h.Auth.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(middleware.CaptureUser)
			r.Use(rt.rateLimiter.LimitBySession)

			// Auth
			r.Get("/auth/me", h.Auth.Me)
			r.Post("/auth/logout", h.Auth.Logout)

			r.Route("/clients", func(r chi.Router) {
				r.Get("/", h.Client.List)
				r.Post("/", h.Client.Create)
				r.Get("/{id}", h.Client.GetByID)
				r.Put("/{id}", h.Client.Update)
				r.Delete("/{id}", h.Client.Delete)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", h.Project.List)
				r.Post("/", h.Project.Create)
				r.Get("/{id}", h.Project.GetByID)
				r.Put("/{id}", h.Project.Update)
				r.Delete("/{id}", h.Project.Delete)
			})

			r.Route("/team", func(r chi.Router) {
				r.Get("/", h.Team.List)
				r.Post("/", h.Team.Create)
				r.Get("/{id}", h.Team.GetByID)
				r.Put("/{id}", h.Team.Update)
				r.Delete("/{id}", h.Team.Delete)
			})

			r.Route("/interns", func(r chi.Router) {
				r.Get("/", h.Intern.List)
				r.Post("/", h.Intern.Create)
				r.Get("/{id}", h.Intern.GetByID)
				r.Put("/{id}", h.Intern.Update)
				r.Delete("/{id}", h.Intern.Delete)
			})

			r.Route("/contracts", func(r chi.Router) {
				r.Get("/", h.Contract.List)
				r.Post("/", h.Contract.Create)

				// Drafts are registered before /{id} so "drafts" is never taken as an id
				r.Route("/drafts", func(r chi.Router) {
					r.Get("/", h.Contract.ListDrafts)
					r.Post("/", h.Contract.StartDraft)
					r.Post("/from/{contractId}", h.Contract.EditContract)
					r.Get("/{draftId}", h.Contract.GetDraft)
					r.Put("/{draftId}", h.Contract.SetDraftFields)
					r.Delete("/{draftId}", h.Contract.DiscardDraft)
					r.Post("/{draftId}/milestones", h.Contract.AddMilestone)
					r.Delete("/{draftId}/milestones/{index}", h.Contract.RemoveMilestone)
					r.Post("/{draftId}/finalize", h.Contract.FinalizeDraft)
				})

				r.Get("/{id}", h.Contract.GetByID)
				r.Put("/{id}", h.Contract.Update)
				r.Delete("/{id}", h.Contract.Delete)
				r.Put("/{id}/milestones/{milestoneId}/completion", h.Contract.SetMilestoneCompleted)
			})

			r.Get("/search", h.Search.Search)

			r.Route("/session", func(r chi.Router) {
				r.Get("/search", h.Session.GetSearch)
				r.Post("/search", h.Session.SubmitSearch)
				r.Post("/search/live", h.Session.TypeSearch)
				r.Get("/view", h.Session.GetView)
				r.Put("/view", h.Session.Navigate)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/overview", h.Dashboard.GetOverview)
				r.Get("/stats", h.Dashboard.GetStats)
			})

			r.Route("/calendar", func(r chi.Router) {
				r.Get("/", h.Dashboard.GetDay)
				r.Get("/events", h.Dashboard.GetRange)
			})

			r.Get("/notifications", h.Notification.List)
		})
	})

	return r
}
