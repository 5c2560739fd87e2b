package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blizon/ops-dashboard/docs"
	"github.com/blizon/ops-dashboard/internal/auth"
	"github.com/blizon/ops-dashboard/internal/config"
	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/http/handler"
	"github.com/blizon/ops-dashboard/internal/http/middleware"
	"github.com/blizon/ops-dashboard/internal/http/router"
	"github.com/blizon/ops-dashboard/internal/idgen"
	"github.com/blizon/ops-dashboard/internal/jobs"
	"github.com/blizon/ops-dashboard/internal/logger"
	"github.com/blizon/ops-dashboard/internal/metrics"
	"github.com/blizon/ops-dashboard/internal/repository"
	"github.com/blizon/ops-dashboard/internal/seed"
	"github.com/blizon/ops-dashboard/internal/service"
	"go.uber.org/zap"
)

// @title Ops Dashboard API
// @version 1.0
// @description Operations dashboard for clients, projects, team, interns and contracts

// @contact.name API Support

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session bearer token from /auth/login
// @Security BearerAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	if host := os.Getenv("PUBLIC_HOST"); host != "" {
		docs.SwaggerInfo.Host = host
	}

	// In development secrets come from the environment, in staging and
	// production from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Entity store
	storeSeed := seed.Empty()
	if cfg.App.SeedData {
		storeSeed = seed.Default()
	}
	store := repository.NewStore(storeSeed)

	m := metrics.New()
	notificationService := service.NewNotificationService(cfg.Notifications.Limit, log)
	store.Subscribe(m)
	store.Subscribe(notificationService)
	store.Subscribe(repository.ChangeListenerFunc(func(e domain.ChangeEvent) {
		m.SetStoreSize(e.Kind, store.Count(e.Kind))
	}))
	for _, kind := range repository.Kinds() {
		m.SetStoreSize(kind, store.Count(kind))
	}

	log.Info("Entity store ready",
		zap.Bool("seeded", cfg.App.SeedData),
		zap.Int("clients", store.Count(domain.KindClient)),
		zap.Int("contracts", store.Count(domain.KindContract)),
	)

	// Initialize services
	ids := idgen.New()
	drafts := repository.NewDraftRepository()
	ledger := service.NewMilestoneLedger(ids, m)

	clientService := service.NewClientService(store.Clients, ids, log)
	projectService := service.NewProjectService(store, ids, log)
	teamService := service.NewTeamMemberService(store.TeamMembers, ids, log)
	internService := service.NewInternService(store.Interns, ids, log)
	contractService := service.NewContractService(store, drafts, ledger, ids, log)
	searchService := service.NewSearchService(store, m, log)
	dashboardService := service.NewDashboardService(store, log)
	sessionService := service.NewSessionService(searchService, drafts, service.SessionConfig{
		DebounceInterval: cfg.Search.DebounceInterval(),
		IdleTimeout:      cfg.Auth.SessionIdleTimeout(),
	}, m, log)

	// Auth
	authenticator := auth.NewAuthenticator(&cfg.Auth)
	tokens := auth.NewTokenManager(cfg.Auth.SigningKey, cfg.Auth.TokenTTL())
	authMiddleware := auth.NewMiddleware(tokens, sessionService, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(authenticator, tokens, sessionService, log),
		Client:       handler.NewClientHandler(clientService, log),
		Project:      handler.NewProjectHandler(projectService, log),
		Team:         handler.NewTeamHandler(teamService, log),
		Intern:       handler.NewInternHandler(internService, log),
		Contract:     handler.NewContractHandler(contractService, log),
		Search:       handler.NewSearchHandler(searchService, log),
		Session:      handler.NewSessionHandler(sessionService, log),
		Dashboard:    handler.NewDashboardHandler(dashboardService, log),
		Notification: handler.NewNotificationHandler(notificationService, log),
	}

	rt := router.NewRouter(cfg, log, m, sessionService, authMiddleware, rateLimiter, handlers)

	// Background jobs
	scheduler := jobs.NewScheduler(log)
	if err := jobs.NewSessionSweepJob(sessionService, log).Register(scheduler, cfg.Jobs.SessionSweepCron); err != nil {
		return fmt.Errorf("failed to register session sweep job: %w", err)
	}
	reminderJob := jobs.NewMilestoneReminderJob(dashboardService, notificationService, cfg.Jobs.ReminderWindow(), nil, log)
	if err := reminderJob.Register(scheduler, cfg.Jobs.MilestoneReminderCron); err != nil {
		return fmt.Errorf("failed to register milestone reminder job: %w", err)
	}
	scheduler.Start()
	log.Info("Scheduler started", zap.Strings("jobs", scheduler.JobNames()))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		stopped := scheduler.Stop()
		<-stopped.Done()
		log.Info("Scheduler stopped")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully", zap.Int("open_sessions", sessionService.Count()))
	}

	return nil
}
