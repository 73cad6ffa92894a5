// Package runtime turns a configuration into a running access service
// process: repository, out-topic publishers, HTTP server and shutdown.
package runtime

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	"github.com/odpi/itinfra/internal/app"
	"github.com/odpi/itinfra/internal/app/events"
	"github.com/odpi/itinfra/internal/app/httpapi"
	"github.com/odpi/itinfra/internal/app/metrics"
	"github.com/odpi/itinfra/internal/app/storage/postgres"
	"github.com/odpi/itinfra/internal/app/system"
	"github.com/odpi/itinfra/internal/config"
	"github.com/odpi/itinfra/internal/logging"
	"github.com/odpi/itinfra/internal/middleware"
	"github.com/odpi/itinfra/internal/platform/migrations"
	"github.com/odpi/itinfra/pkg/logger"
)

// Application wires core dependencies and manages the HTTP server lifecycle.
type Application struct {
	cfg        *config.Config
	configPath string
	log        *logger.Logger
	app        *app.Application
	handler    http.Handler
	httpServer *http.Server
	limiter    *middleware.RateLimiter
	auditSink  *httpapi.FileAuditSink
	db         *sql.DB
}

// NewApplication builds the process from cfg. configPath, when set, is
// watched for log level changes while the server runs.
func NewApplication(cfg *config.Config, configPath string) (*Application, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	log := logger.New(logger.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		FilePrefix: cfg.Logging.FilePrefix,
	})

	a := &Application{cfg: cfg, configPath: configPath, log: log}
	ok := false
	defer func() {
		if !ok {
			a.closeResources()
		}
	}()

	stores := app.Stores{}
	if cfg.Database.Driver != "" {
		db, err := openDatabase(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		a.db = db
		if cfg.Database.AutoMigrate {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			err := migrations.Apply(ctx, db)
			cancel()
			if err != nil {
				return nil, fmt.Errorf("migrate database: %w", err)
			}
			log.Info("database schema is up to date")
		}
		stores.Repository = postgres.New(db)
	} else {
		log.Warn("database.driver not set; metadata is kept in memory")
	}

	var opts app.Options
	if url := strings.TrimSpace(cfg.Events.RedisURL); url != "" {
		pub, err := events.NewRedisPublisher(url, cfg.Events.ChannelPrefix, log.Component("events-redis"))
		if err != nil {
			return nil, fmt.Errorf("configure redis out topic: %w", err)
		}
		opts.Publishers = append(opts.Publishers, pub)
	}

	application, err := app.New(cfg, stores, opts, log.Component("app"))
	if err != nil {
		return nil, err
	}
	a.app = application

	sink, err := httpapi.NewFileAuditSink(cfg.Server.AuditFile)
	if err != nil {
		return nil, fmt.Errorf("open audit file: %w", err)
	}
	a.auditSink = sink

	a.handler = a.buildHandler()
	a.httpServer = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      a.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	ok = true
	return a, nil
}

func (a *Application) buildHandler() http.Handler {
	httpLog := logging.New("http", a.log)

	chain := []mux.MiddlewareFunc{
		middleware.NewTracingMiddleware(httpLog).Handler,
		middleware.Metrics,
	}
	if a.cfg.Auth.Enabled() {
		auth := middleware.NewAuthMiddleware(a.cfg.Auth.JWTSecret, a.cfg.Auth.Issuer, httpLog, nil)
		chain = append(chain, auth.Handler)
	}
	if rl := a.cfg.RateLimit; rl.RequestsPerSecond > 0 {
		burst := rl.Burst
		if burst <= 0 {
			burst = rl.RequestsPerSecond
		}
		a.limiter = middleware.NewRateLimiter(float64(rl.RequestsPerSecond), burst, httpLog)
		chain = append(chain, a.limiter.Handler)
	}

	if hub := a.app.Hub; hub != nil {
		origins := a.cfg.CORS.AllowedOrigins
		hub.AllowOrigins(func(origin string) bool { return middleware.OriginAllowed(origins, origin) })
	}

	var sink httpapi.AuditSink
	if a.auditSink != nil {
		sink = a.auditSink
	}
	h := httpapi.NewHandler(a.app.Registry, httpapi.Options{
		Hub:        a.app.Hub,
		Audit:      httpapi.NewAuditLog(0, sink),
		Metrics:    metrics.Handler(),
		Middleware: chain,
		Ready:      a.ready,
		Logger:     a.log.Component("httpapi"),
	})
	h = middleware.NewCORSMiddleware(a.cfg.CORS.AllowedOrigins).Handler(h)
	return middleware.Recovery(httpLog)(h)
}

func (a *Application) ready(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	return a.db.PingContext(ctx)
}

// Handler exposes the composed HTTP handler.
func (a *Application) Handler() http.Handler { return a.handler }

// Services exposes the composed access service.
func (a *Application) Services() *app.Application { return a.app }

// Run starts the background services and the HTTP server and blocks until
// the context is cancelled or the server fails.
func (a *Application) Run(ctx context.Context) error {
	if a.limiter != nil {
		if err := a.app.Attach(system.Func{
			ServiceName: "rate-limit-cleanup",
			OnStart: func(context.Context) error {
				a.limiter.StartCleanup(ctx, time.Minute)
				return nil
			},
		}); err != nil {
			return err
		}
	}
	if err := a.app.Start(ctx); err != nil {
		return fmt.Errorf("start services: %w", err)
	}
	if a.configPath != "" {
		go a.watchConfig(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Infof("HTTP server listening on %s", a.httpServer.Addr)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

func (a *Application) watchConfig(ctx context.Context) {
	err := config.Watch(ctx, a.configPath, func(cfg *config.Config) {
		if err := a.log.SetLevel(cfg.Logging.Level); err != nil {
			a.log.WithError(err).Warn("ignoring reloaded log level")
			return
		}
		a.log.WithField("level", a.log.LevelName()).Info("configuration reloaded")
	}, func(err error) {
		a.log.WithError(err).Warn("configuration reload failed")
	})
	if err != nil {
		a.log.WithError(err).Warn("configuration watch stopped")
	}
}

// Shutdown stops accepting requests, then stops the background services and
// releases the database and audit file.
func (a *Application) Shutdown(ctx context.Context) error {
	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var errs []error
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http server: %w", err))
	}
	if err := a.app.Stop(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	a.closeResources()
	return errors.Join(errs...)
}

func (a *Application) closeResources() {
	if a.auditSink != nil {
		if err := a.auditSink.Close(); err != nil {
			a.log.WithError(err).Warn("error closing audit file")
		}
		a.auditSink = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.WithError(err).Warn("error closing database connection")
		}
		a.db = nil
	}
}

// OpenDatabase opens and pings the configured database.
func OpenDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	return openDatabase(cfg)
}

func openDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	if cfg.Driver == "" {
		return nil, fmt.Errorf("database driver not configured")
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database dsn not configured")
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
