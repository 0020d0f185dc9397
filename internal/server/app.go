// Package server initializes and runs the application server. It opens the
// database connection, applies schema migrations, wires the service and HTTP
// layers together, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"

	"github.com/campdir/campdir/internal/logging"
	"github.com/campdir/campdir/internal/ratelimit"
	"github.com/campdir/campdir/internal/server/config"
	"github.com/campdir/campdir/internal/server/mailer"
	"github.com/campdir/campdir/internal/server/repositories/repomanager"
	"github.com/campdir/campdir/internal/server/rest"
	"github.com/campdir/campdir/internal/server/services"
)

const dbConnectTimeout = 30 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *rest.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	level := slog.LevelInfo
	if !cfg.IsProduction() {
		level = slog.LevelDebug
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	db, err := openDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	var sender mailer.Sender
	if cfg.SendGridAPIKey != "" {
		sender = mailer.NewSendGridSender(cfg.SendGridAPIKey, cfg.FromName, cfg.FromEmail)
	} else {
		logger.Warn(ctx, "no mail provider configured, outgoing mail is logged only")
		sender = mailer.NewLogSender(logger)
	}

	svc := services.NewAuthService(db, m, sender, cfg)
	handler := rest.NewHandler(svc, db, logger, cfg)
	router := rest.NewRouter(handler, ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst), logger, cfg.IsProduction())
	server := rest.NewServer(cfg.EndpointAddr, router, logger)

	return &App{config: cfg, logger: logger, db: db, server: server}, nil
}

// openDB opens the connection pool and pings with fibonacci backoff until the
// database answers or dbConnectTimeout elapses.
func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	backoff := retry.WithMaxDuration(dbConnectTimeout, retry.NewFibonacci(time.Second))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		return retry.RetryableError(db.PingContext(ctx))
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until the context is cancelled or a signal arrives, then closes
// the database connection.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddr, "env", app.config.Env)

	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)

	if closeErr := app.db.Close(); closeErr != nil {
		app.logger.Error(ctx, "db close error", "error", closeErr.Error())
	}

	return err
}
