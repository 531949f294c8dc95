package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hourbank/overtime/internal/overtime/cache"
	"github.com/hourbank/overtime/internal/overtime/domain"
	httpapi "github.com/hourbank/overtime/internal/overtime/http"
	"github.com/hourbank/overtime/internal/overtime/service"
	"github.com/hourbank/overtime/internal/overtime/store"
	"github.com/hourbank/overtime/internal/overtime/store/drivers/sqlite"
	"github.com/hourbank/overtime/pkg/cryptox"
	"github.com/hourbank/overtime/pkg/jwtx"
	"github.com/hourbank/overtime/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the overtime service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	signer *jwtx.EdDSA
	cache  cache.Cache

	// Services
	authService      *service.AuthService
	entryService     *service.EntryService
	dashboardService *service.DashboardService
	mfaService       *service.MFAService
	userService      *service.UserService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "overtime",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSigner(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initCache()
	app.initServices()
	app.initHTTP()

	// First boot on an empty database creates the configured admin
	ctx := slogx.WithContext(context.Background(), app.logger)
	if err := app.userService.EnsureInitialAdmin(ctx, cfg.AdminUsername, cfg.AdminName, cfg.AdminPassword); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to ensure initial admin: %w", err)
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("overtime service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down overtime service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if closer, ok := app.cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			app.logger.Error("error closing cache", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("overtime service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initSigner loads or generates the Ed25519 session signing key
func (app *Application) initSigner() error {
	pemBytes, err := jwtx.LoadOrGenerateKey(app.cfg.SessionKeyFile)
	if err != nil {
		return fmt.Errorf("failed to load session key: %w", err)
	}

	signer, err := jwtx.NewEdDSA("session-1", app.cfg.Issuer, pemBytes)
	if err != nil {
		return fmt.Errorf("failed to initialize session signer: %w", err)
	}
	if err := signer.Validate(); err != nil {
		return fmt.Errorf("session signer validation failed: %w", err)
	}

	app.signer = signer
	return nil
}

// initCache connects the dashboard cache. No Redis address means no caching;
// a failed connection degrades to no caching instead of refusing to start.
func (app *Application) initCache() {
	if app.cfg.RedisAddr == "" {
		app.cache = cache.Noop{}
		return
	}

	redisCache, err := cache.NewRedis(context.Background(), app.cfg.RedisAddr, app.cfg.RedisPassword, app.cfg.RedisDB)
	if err != nil {
		app.logger.Warn("redis unavailable, dashboard caching disabled", "addr", app.cfg.RedisAddr, "err", err)
		app.cache = cache.Noop{}
		return
	}

	app.logger.Info("dashboard cache enabled", "addr", app.cfg.RedisAddr, "ttl", app.cfg.DashboardTTL)
	app.cache = redisCache
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:      app.db,
		Signer:     app.signer,
		Issuer:     app.cfg.Issuer,
		SessionTTL: app.cfg.SessionTTL,
	}

	app.entryService = &service.EntryService{
		Store: app.db,
		Cache: app.cache,
	}

	app.dashboardService = &service.DashboardService{
		Store:    app.db,
		Cache:    app.cache,
		Policy:   domain.HideUsernames(app.cfg.HiddenUsernames...),
		CacheTTL: app.cfg.DashboardTTL,
	}

	app.mfaService = &service.MFAService{
		Store:  app.db,
		Issuer: app.cfg.Issuer,
	}

	app.userService = &service.UserService{Store: app.db}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		BuildVersion,
		app.cfg.SecureCookies,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.EntryService = app.entryService
	router.DashboardService = app.dashboardService
	router.MFAService = app.mfaService
	router.UserService = app.userService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
