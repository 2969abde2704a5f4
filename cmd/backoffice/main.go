package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	authhandler "github.com/platefront/backoffice-backend/internal/auth/handler"
	authservice "github.com/platefront/backoffice-backend/internal/auth/service"
	cataloghandler "github.com/platefront/backoffice-backend/internal/catalog/handler"
	catalogrepository "github.com/platefront/backoffice-backend/internal/catalog/repository"
	catalogservice "github.com/platefront/backoffice-backend/internal/catalog/service"
	"github.com/platefront/backoffice-backend/internal/identity"
	storehandler "github.com/platefront/backoffice-backend/internal/store/handler"
	storerepository "github.com/platefront/backoffice-backend/internal/store/repository"
	storeservice "github.com/platefront/backoffice-backend/internal/store/service"
	"github.com/platefront/backoffice-backend/internal/user/events"
	userhandler "github.com/platefront/backoffice-backend/internal/user/handler"
	userrepository "github.com/platefront/backoffice-backend/internal/user/repository"
	userservice "github.com/platefront/backoffice-backend/internal/user/service"
	"github.com/platefront/backoffice-backend/pkg/actor"
	"github.com/platefront/backoffice-backend/pkg/config"
	"github.com/platefront/backoffice-backend/pkg/database"
	"github.com/platefront/backoffice-backend/pkg/httputil"
	"github.com/platefront/backoffice-backend/pkg/logger"
	"github.com/platefront/backoffice-backend/pkg/messaging"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithValidation("backoffice")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("backoffice", cfg.Server.Environment)
	log.Info().Msg("starting back office")

	// Connect to database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Connect to RabbitMQ
	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rmq.Close()

	// Initialize event publisher
	publisher, err := events.NewUserEventPublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event publisher")
	}

	// Identity provider client
	provider := identity.NewClient(&cfg.Identity, log)

	// Initialize repositories
	profileRepo := userrepository.NewProfileRepository(db)
	menuRepo := catalogrepository.NewMenuRepository(db)
	ingredientRepo := storerepository.NewIngredientRepository(db)
	storeMenuRepo := storerepository.NewStoreMenuRepository(db)

	// Initialize services
	authService := authservice.NewAuthService(provider, profileRepo, log)
	userService := userservice.NewUserService(profileRepo, provider, publisher, cfg.Identity.LoginDomain, log)
	menuService := catalogservice.NewMenuService(menuRepo, log)
	ingredientService := storeservice.NewIngredientService(ingredientRepo, log)
	storeMenuService := storeservice.NewStoreMenuService(storeMenuRepo, menuRepo, log)

	// Initialize handlers
	authHandler := authhandler.NewAuthHandler(authService, log)
	guard := authhandler.NewMiddleware(authService, log)
	userHandler := userhandler.NewUserHandler(userService, log)
	menuHandler := cataloghandler.NewMenuHandler(menuService, log)
	ingredientHandler := storehandler.NewIngredientHandler(ingredientService, log)
	storeMenuHandler := storehandler.NewStoreMenuHandler(storeMenuService, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"service":  "backoffice",
			"database": db.Health(r.Context()),
			"rabbitmq": rmq.Health(),
		})
	})

	r.Route("/login", func(r chi.Router) {
		r.Use(httputil.CORS(http.MethodPost))
		r.Post("/", authHandler.Login)
	})

	r.Route("/ingredients", func(r chi.Router) {
		r.Use(httputil.CORS(http.MethodGet))
		r.With(guard.RequireSession).Get("/", ingredientHandler.List)
	})

	r.Route("/menu", func(r chi.Router) {
		r.Use(httputil.CORS(http.MethodGet, http.MethodPut))
		r.Get("/", menuHandler.List)
		r.Put("/", menuHandler.Update)
	})

	r.Route("/menu-items", func(r chi.Router) {
		r.Use(httputil.CORS(http.MethodGet, http.MethodPut))
		r.Use(guard.RequireStore)
		r.Get("/", storeMenuHandler.List)
		r.Put("/", storeMenuHandler.Update)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(httputil.CORS(http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete))
		r.With(guard.RequireSession).Get("/", userHandler.List)
		r.With(guard.RequireRole(actor.RoleAdmin)).Post("/", userHandler.Create)
		r.With(guard.RequireRole(actor.RoleAdmin)).Patch("/{userId}", userHandler.Update)
		r.With(guard.RequireRole(actor.RoleAdmin)).Delete("/{userId}", userHandler.Delete)
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("stopped")
}
