package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	appservice "github.com/skystack/backoffice/internal/application/service"
	"github.com/skystack/backoffice/internal/config"
	"github.com/skystack/backoffice/internal/infrastructure/crypto"
	"github.com/skystack/backoffice/internal/infrastructure/monitoring"
	"github.com/skystack/backoffice/internal/infrastructure/persistence/postgres"
	"github.com/skystack/backoffice/internal/infrastructure/ratelimit"
	"github.com/skystack/backoffice/internal/interfaces/http/handlers"
	"github.com/skystack/backoffice/internal/interfaces/http/middleware"
	"github.com/skystack/backoffice/internal/interfaces/http/router"
	"github.com/skystack/backoffice/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Log.Level)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gin.SetMode(gin.ReleaseMode)

	db, err := postgres.NewDBConnection(&cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "failed to connect to database", err)
	}

	// Infrastructure
	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)
	tokenManager := crypto.NewTokenManager(&cfg.JWT, appLogger)
	counterStore := ratelimit.NewCounterStore()
	monitoring.RegisterCounterStoreGauge(prometheus.DefaultRegisterer, counterStore.Len)
	sweeper := ratelimit.NewSweeper(counterStore, cfg.RateLimit.SweepInterval(), appLogger)

	// Repositories
	userRepo := postgres.NewUserRepository(db, appLogger)
	planRepo := postgres.NewPlanRepository(db, appLogger)
	ticketRepo := postgres.NewTicketRepository(db, appLogger)
	invoiceRepo := postgres.NewInvoiceRepository(db, appLogger)
	backupRepo := postgres.NewBackupRepository(db, appLogger)
	adminRepo := postgres.NewAdminRepository(db, appLogger)

	// Application services
	userSvc := appservice.NewUserService(userRepo, ticketRepo, invoiceRepo, backupRepo, tokenManager, appLogger)
	subscriptionSvc := appservice.NewSubscriptionService(planRepo, userRepo, appLogger)
	supportSvc := appservice.NewSupportService(ticketRepo, appLogger)
	adminSvc := appservice.NewAdminService(userRepo, ticketRepo, invoiceRepo, appLogger)

	// Admission pipeline
	authenticator := middleware.NewAuthenticator(tokenManager, metrics, appLogger)
	adminGate := middleware.NewAdminGate(adminRepo, metrics, appLogger)
	guards := router.NewGuards(&cfg.RateLimit, counterStore, authenticator, adminGate, metrics, appLogger)

	// HTTP surface
	r := router.NewRouter(
		cfg,
		appLogger,
		guards,
		metrics,
		handlers.NewHealthHandler(db, appLogger),
		handlers.NewAuthHandler(userSvc),
		handlers.NewUserHandler(userSvc, subscriptionSvc),
		handlers.NewAdminHandler(adminSvc, subscriptionSvc),
		handlers.NewSupportHandler(supportSvc),
	)
	r.SetupRoutes()

	g, groupCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.Start(groupCtx)
	})
	g.Go(func() error {
		return sweeper.Run(groupCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Fatal(context.Background(), "server exited", err)
	}
	appLogger.Info(context.Background(), "server stopped")
}
