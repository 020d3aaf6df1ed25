package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodorders/cmd"
	httpadapter "foodorders/internal/adapters/in/http"
	"foodorders/internal/adapters/out/postgres"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("service stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := postgres.Open(ctx, postgres.ConnectionConfig{
		DSN:             configs.DSN(),
		MaxOpenConns:    configs.DBMaxOpenConns,
		MaxIdleConns:    configs.DBMaxIdleConns,
		ConnMaxLifetime: configs.DBConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger, nil)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("failed to close adapters", slog.Any("error", closeErr))
		}
	}()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := httpadapter.NewRouter(httpadapter.NewServer(app.HTTPHandlers(), logger), app.ServerMetrics())
	if err != nil {
		return err
	}

	return startWebServer(ctx, e, configs, logger)
}

func startWebServer(ctx context.Context, e *echo.Echo, configs cmd.Config, logger *slog.Logger) error {
	e.Logger.SetLevel(echoLogLevel(configs.LogLevel))

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server started", slog.String("port", configs.HTTPPort))
		serverErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("http server stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func echoLogLevel(level slog.Level) log.Lvl {
	switch {
	case level <= slog.LevelDebug:
		return log.DEBUG
	case level <= slog.LevelInfo:
		return log.INFO
	case level <= slog.LevelWarn:
		return log.WARN
	default:
		return log.ERROR
	}
}
