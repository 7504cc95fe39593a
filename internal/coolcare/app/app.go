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

	httpapi "github.com/coolcare/coolcare/internal/coolcare/http"
	"github.com/coolcare/coolcare/internal/coolcare/push"
	"github.com/coolcare/coolcare/internal/coolcare/service"
	"github.com/coolcare/coolcare/internal/coolcare/store"
	"github.com/coolcare/coolcare/internal/coolcare/store/codes/memory"
	"github.com/coolcare/coolcare/internal/coolcare/store/codes/redis"
	"github.com/coolcare/coolcare/internal/coolcare/store/drivers/postgres"
	"github.com/coolcare/coolcare/internal/coolcare/store/drivers/sqlite"
	"github.com/coolcare/coolcare/pkg/clock"
	"github.com/coolcare/coolcare/pkg/jwtx"
	"github.com/coolcare/coolcare/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the CoolCare API server and its background workers.
type Application struct {
	cfg      Config
	logger   *slog.Logger
	clock    clock.Clock
	location *time.Location

	// Core dependencies
	db        store.Store
	codes     store.VerificationCodes
	redisCode *redis.Store // nil unless CODE_STORE=redis
	signer    jwtx.Signer
	verifier  jwtx.Verifier

	// Services
	authService         *service.AuthService
	jobService          *service.JobService
	adminService        *service.AdminService
	pushService         *service.PushService
	housekeepingService *service.HousekeepingService
	reminderService     *service.ReminderService // nil when VAPID keys are missing

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// NewLogger returns the service logger for cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "coolcare-api",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
		clock:  clock.Real(),
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	app.location = loc

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.signer, app.verifier, err = InitSessionKeys(cfg, app.clock, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize JWT keys: %w", err)
	}

	if err := app.initCodeStore(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()
	if app.reminderService != nil {
		app.reminderService.Start()
	}

	app.logger.Info("coolcare api starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			app.stopWorkers()
			_ = app.closeStores()
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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down coolcare api...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.stopWorkers()

	if err := app.closeStores(); err != nil {
		return err
	}

	app.logger.Info("coolcare api stopped")
	return nil
}

func (app *Application) stopWorkers() {
	if app.reminderService != nil {
		app.reminderService.Stop()
	}
	app.housekeepingService.Stop()
}

func (app *Application) closeStores() error {
	if app.redisCode != nil {
		if err := app.redisCode.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

// OpenStore opens the configured database and applies migrations.
func OpenStore(cfg Config, logger *slog.Logger) (store.Store, error) {
	var (
		db  store.Store
		err error
	)
	switch cfg.DatabaseDriver {
	case "postgres":
		db, err = postgres.NewStore(cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(sqlite.DSN(cfg.DatabaseFile))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	logger.Info("database migrations applied successfully", "driver", cfg.DatabaseDriver)
	return db, nil
}

func (app *Application) initDatabase() error {
	db, err := OpenStore(app.cfg, app.logger)
	if err != nil {
		return err
	}
	app.db = db
	return nil
}

func (app *Application) initCodeStore() error {
	switch app.cfg.CodeStore {
	case "memory":
		app.codes = memory.New()
		app.logger.Warn("verification codes kept in memory; pending codes are lost on restart")
	case "redis":
		rs := redis.New(redis.Options{
			Addr:     app.cfg.RedisAddr,
			Password: app.cfg.RedisPassword,
			DB:       app.cfg.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.codes = rs
		app.redisCode = rs
		app.logger.Info("verification codes kept in redis", "addr", app.cfg.RedisAddr)
	default:
		app.codes = app.db.VerificationCodes()
	}
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	verification := &service.VerificationService{
		Codes: app.codes,
		Clock: app.clock,
		TTL:   app.cfg.CodeTTL,
	}

	app.authService = &service.AuthService{
		Store:        app.db,
		Verification: verification,
		Sessions: &service.SessionService{
			Signer:     app.signer,
			Verifier:   app.verifier,
			Issuer:     app.cfg.Issuer,
			AccessTTL:  app.cfg.AccessTTL,
			RefreshTTL: app.cfg.RefreshTTL,
			Clock:      app.clock,
		},
		SMS:         service.LogSMSSender{},
		Clock:       app.clock,
		ExposeCodes: app.cfg.ExposeDebugCodes,
	}
	if app.cfg.ExposeDebugCodes {
		app.logger.Warn("debug codes are returned by send-code; disable EXPOSE_DEBUG_CODES in production")
	}

	app.jobService = &service.JobService{Store: app.db, Clock: app.clock, Location: app.location}
	app.adminService = &service.AdminService{Store: app.db, Clock: app.clock, Location: app.location}
	app.pushService = &service.PushService{Store: app.db, VAPID: app.cfg.VAPID(), Clock: app.clock}

	app.housekeepingService = service.NewHousekeepingService(
		verification,
		app.logger,
		app.cfg.HousekeepingInterval,
	)

	if vapid := app.cfg.VAPID(); vapid.Enabled() {
		app.reminderService = service.NewReminderService(
			app.db,
			push.NewWebPushSender(vapid, nil),
			app.logger,
			app.cfg.ReminderInterval,
			app.cfg.ReminderWindow,
		)
		app.reminderService.Clock = app.clock
	} else {
		app.logger.Info("web push disabled: VAPID keys not configured")
	}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.Location = app.location
	if app.redisCode != nil {
		router.CodeStore = app.redisCode
	}
	router.AuthService = app.authService
	router.JobService = app.jobService
	router.AdminService = app.adminService
	router.PushService = app.pushService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
