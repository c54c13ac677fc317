// Package router assembles the HTTP surface: global middleware, the
// admission pipeline per route group, and server lifecycle.
package router

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skystack/backoffice/internal/config"
	"github.com/skystack/backoffice/internal/infrastructure/monitoring"
	"github.com/skystack/backoffice/internal/infrastructure/ratelimit"
	"github.com/skystack/backoffice/internal/interfaces/http/handlers"
	"github.com/skystack/backoffice/internal/interfaces/http/middleware"
	"github.com/skystack/backoffice/pkg/logger"
)

// Guards bundles the admission pipeline stages the router composes per route
// group. The order inside each chain is fixed: authenticate, then rate
// limit, then authorize.
type Guards struct {
	Auth         *middleware.Authenticator
	AdminGate    *middleware.AdminGate
	AuthLimit    *middleware.RateLimitGuard
	SupportLimit *middleware.RateLimitGuard
	GeneralLimit *middleware.RateLimitGuard
	AdminLimit   *middleware.RateLimitGuard
}

// NewGuards builds the guard set from the configured policies over a shared
// counter store.
func NewGuards(
	cfg *config.RateLimitConfig,
	store *ratelimit.CounterStore,
	auth *middleware.Authenticator,
	gate *middleware.AdminGate,
	metrics *monitoring.Metrics,
	log logger.Logger,
) *Guards {
	limiter := func(scope string, p config.RateLimitPolicy) *middleware.RateLimitGuard {
		l := ratelimit.NewFixedWindowLimiter(store, ratelimit.Policy{Window: p.Window(), Max: p.Max})
		return middleware.NewRateLimitGuard(scope, l, metrics, log)
	}
	return &Guards{
		Auth:         auth,
		AdminGate:    gate,
		AuthLimit:    limiter("auth", cfg.Auth),
		SupportLimit: limiter("support", cfg.Support),
		GeneralLimit: limiter("general", cfg.General),
		AdminLimit:   limiter("admin", cfg.Admin),
	}
}

// Router owns the gin engine and HTTP server lifecycle.
type Router struct {
	engine         *gin.Engine
	config         *config.Config
	log            logger.Logger
	guards         *Guards
	healthHandler  *handlers.HealthHandler
	authHandler    *handlers.AuthHandler
	userHandler    *handlers.UserHandler
	adminHandler   *handlers.AdminHandler
	supportHandler *handlers.SupportHandler
	metrics        *monitoring.Metrics
	server         *http.Server
}

// NewRouter creates the router. Call SetupRoutes before serving.
func NewRouter(
	cfg *config.Config,
	log logger.Logger,
	guards *Guards,
	metrics *monitoring.Metrics,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	adminHandler *handlers.AdminHandler,
	supportHandler *handlers.SupportHandler,
) *Router {
	engine := gin.New()

	return &Router{
		engine:         engine,
		config:         cfg,
		log:            log.WithComponent("http.router"),
		guards:         guards,
		metrics:        metrics,
		healthHandler:  healthHandler,
		authHandler:    authHandler,
		userHandler:    userHandler,
		adminHandler:   adminHandler,
		supportHandler: supportHandler,
	}
}

// SetupRoutes registers global middleware and all route groups.
func (r *Router) SetupRoutes() {
	r.engine.Use(gin.Recovery())
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Observability(r.metrics, r.log))

	corsConfig := cors.Config{
		AllowOrigins:     r.config.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"*"}
		corsConfig.AllowCredentials = false
	}
	r.engine.Use(cors.New(corsConfig))

	r.engine.GET("/health", r.healthHandler.HealthCheck)
	r.engine.GET("/ready", r.healthHandler.ReadyCheck)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if r.config.Server.PprofEnabled {
		pprof.Register(r.engine)
	}

	g := r.guards
	api := r.engine.Group("/api")
	{
		auth := api.Group("/auth")
		{
			// Credential endpoints are anonymous and tightly limited.
			auth.POST("/register", middleware.Chain(g.AuthLimit), r.authHandler.Register)
			auth.POST("/login", middleware.Chain(g.AuthLimit), r.authHandler.Login)

			auth.GET("/me", middleware.Chain(g.Auth, g.GeneralLimit), r.authHandler.Me)
			auth.PUT("/profile", middleware.Chain(g.Auth, g.GeneralLimit), r.authHandler.UpdateProfile)
			auth.PUT("/models", middleware.Chain(g.Auth, g.GeneralLimit), r.authHandler.UpdateModels)
		}

		users := api.Group("/users")
		{
			users.GET("/plans", r.userHandler.ListPlans)

			authed := users.Group("", middleware.Chain(g.Auth, g.GeneralLimit))
			{
				authed.GET("/dashboard", r.userHandler.Dashboard)
				authed.GET("/invoices", r.userHandler.ListInvoices)
				authed.GET("/backups", r.userHandler.ListBackups)
			}
		}

		admin := api.Group("/admin", middleware.Chain(g.Auth, g.AdminLimit, g.AdminGate))
		{
			admin.GET("/stats", r.adminHandler.Stats)
			admin.GET("/users", r.adminHandler.ListUsers)
			admin.GET("/users/:id", r.adminHandler.GetUser)
			admin.POST("/users/:id/suspend", r.adminHandler.SuspendUser)
			admin.POST("/users/:id/activate", r.adminHandler.ActivateUser)
			admin.DELETE("/users/:id", r.adminHandler.DeleteUser)

			admin.GET("/plans", r.adminHandler.ListPlans)
			admin.POST("/plans", r.adminHandler.CreatePlan)
			admin.PUT("/plans/:id", r.adminHandler.UpdatePlan)
			admin.DELETE("/plans/:id", r.adminHandler.DeletePlan)
		}

		support := api.Group("/support", middleware.Chain(g.Auth, g.GeneralLimit))
		{
			// Ticket creation carries its own tighter ceiling on top of the
			// group's general limit.
			support.POST("/tickets", middleware.Chain(g.SupportLimit), r.supportHandler.CreateTicket)
			support.GET("/tickets", r.supportHandler.ListTickets)
			support.GET("/tickets/:id", r.supportHandler.GetTicket)
			support.POST("/tickets/:id/messages", r.supportHandler.ReplyToTicket)

			adminTickets := support.Group("/admin", middleware.Chain(g.AdminGate))
			{
				adminTickets.GET("/tickets", r.supportHandler.AdminListTickets)
				adminTickets.PUT("/tickets/:id", r.supportHandler.AdminUpdateTicket)
				adminTickets.POST("/tickets/:id/messages", r.supportHandler.AdminReplyToTicket)
			}
		}
	}

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}

// Start runs the HTTP server until the context is canceled, then shuts it
// down gracefully.
func (r *Router) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	r.server = &http.Server{
		Addr:           addr,
		Handler:        r.engine,
		ReadTimeout:    time.Duration(r.config.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(r.config.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		r.log.Info(ctx, "starting HTTP server", logger.String("address", addr))
		if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	r.log.Info(shutdownCtx, "shutting down HTTP server")
	if err := r.server.Shutdown(shutdownCtx); err != nil {
		r.log.Error(shutdownCtx, "server forced to shut down", err)
		return err
	}
	return <-errCh
}

// Engine exposes the underlying gin engine. Used in tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
