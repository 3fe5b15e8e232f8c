package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/healthifyx/portal/internal/config"
	"github.com/healthifyx/portal/internal/domain/admin"
	"github.com/healthifyx/portal/internal/domain/analytics"
	"github.com/healthifyx/portal/internal/domain/appointments"
	"github.com/healthifyx/portal/internal/domain/auth"
	"github.com/healthifyx/portal/internal/domain/prescriptions"
	"github.com/healthifyx/portal/internal/domain/profile"
	"github.com/healthifyx/portal/internal/domain/records"
	"github.com/healthifyx/portal/internal/platform/compose"
	"github.com/healthifyx/portal/internal/platform/gateway"
	"github.com/healthifyx/portal/internal/platform/guard"
	"github.com/healthifyx/portal/internal/platform/middleware"
	"github.com/healthifyx/portal/internal/platform/session"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "portal-server",
		Short: "HealthifyX patient portal server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(routesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the portal server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

// routesCmd prints the destination table with its role requirements, a
// quick way to audit access rules without starting the server.
func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List portal destinations and the roles allowed on each",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("%-28s %s\n", "DESTINATION", "ROLES")
			for _, d := range guard.Table() {
				roles := "public"
				if !d.Public() {
					roles = ""
					for i, r := range d.AllowedRoles {
						if i > 0 {
							roles += ", "
						}
						roles += string(r)
					}
				}
				fmt.Printf("%-28s %s\n", d.Path, roles)
			}
			return nil
		},
	}
}

// newSessionStore picks the session backend from config. Redis keeps
// sessions across restarts; the in-memory store is for development.
func newSessionStore(cfg *config.Config, logger zerolog.Logger) (session.Store, error) {
	switch cfg.SessionBackend {
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		logger.Info().Str("addr", opts.Addr).Msg("connected to redis")
		return session.NewRedisStore(client, cfg.SessionTTL()), nil
	case "memory":
		return session.NewMemoryStore(cfg.SessionTTL()), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Session store
	store, err := newSessionStore(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open session store")
	}

	// Backend gateway
	gw, err := gateway.New(gateway.Config{
		BaseURL: cfg.BackendBaseURL,
		Timeout: cfg.BackendTimeout(),
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build backend gateway")
	}
	logger.Info().Str("backend", cfg.BackendBaseURL).Msg("backend gateway ready")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout()))
	e.Use(session.Middleware(store, cfg.SessionCookie))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// API group
	apiV1 := e.Group("/api/v1")

	// Auth and session lifecycle
	authHandler := auth.NewHandler(auth.NewService(gw, store), cfg.SessionCookie, cfg.SessionTTL(), cfg.IsProduction())
	authHandler.RegisterRoutes(apiV1)

	// Role-scoped navigation
	compose.NewHandler().RegisterRoutes(apiV1)

	// Clinical domains
	records.NewHandler(records.NewService(gw)).RegisterRoutes(apiV1)
	analytics.NewHandler(analytics.NewService(gw)).RegisterRoutes(apiV1)
	appointments.NewHandler(appointments.NewService(gw)).RegisterRoutes(apiV1)
	prescriptions.NewHandler(prescriptions.NewService(gw)).RegisterRoutes(apiV1)
	profile.NewHandler(profile.NewService(gw)).RegisterRoutes(apiV1)

	// Admin console
	admin.NewHandler(admin.NewService(gw)).RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
