package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/UnknownOlympus/athena/internal/bookmarks"
	"github.com/UnknownOlympus/athena/internal/client"
	"github.com/UnknownOlympus/athena/internal/config"
	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/parser"
	"github.com/UnknownOlympus/athena/internal/repository"
	"github.com/UnknownOlympus/athena/internal/server"
	"github.com/UnknownOlympus/athena/internal/services/employees"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	var wgr sync.WaitGroup
	delta := 3
	flushTimeout := 5 * time.Second

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	var (
		pinger     server.DBPinger
		statusRepo repository.StatusRepoIface
		persister  bookmarks.Persister = bookmarks.NewFilePersister(cfg.Bookmarks.Path, cfg.Bookmarks.StoreName)
	)

	if cfg.Bookmarks.Driver == config.DriverPostgres {
		dtb, err := repository.NewDatabase(ctx, repository.ConnString(cfg.Postgres))
		if err != nil {
			log.Fatalf("Failed to connect to DB: %v", err)
		}
		defer dtb.Close()

		pinger = dtb
		statusRepo = repository.NewStatusRepository(dtb, appMetrics)
		persister = bookmarks.NewRepositoryPersister(
			repository.NewKVRepository(dtb, appMetrics), cfg.Bookmarks.StoreName)
	}

	store := bookmarks.NewStore(logger, persister, appMetrics)
	if err := store.Load(ctx); err != nil {
		logger.ErrorContext(ctx,
			"Failed to load bookmarks, changes stay in memory and the stored copy is left as is", sl.Err(err))
	}

	httpClient := client.CreateHTTPClient(logger, cfg.Source.Timeout)
	employeeParser := parser.NewEmployeeParser(httpClient, appMetrics, cfg.Source.BaseURL)
	directory := employees.NewDirectory(logger, employeeParser, statusRepo, appMetrics, cfg.Source.Limit, nil)

	handler := server.NewHandler(logger, directory, store, appMetrics)

	wgr.Add(delta)

	go func() {
		defer wgr.Done()
		server.StartMonitoringServer(ctx, logger, reg, pinger, cfg.HTTP.MonitoringPort, cfg.Source.BaseURL)
	}()

	go func() {
		defer wgr.Done()
		logger.InfoContext(ctx, "Starting Employee Directory")
		if err := directory.Start(ctx, cfg.Source.Interval); err != nil {
			logger.ErrorContext(ctx, "Employee Directory failed", sl.Err(err))
		}
		logger.InfoContext(ctx, "Employee Directory stopped.")
	}()

	go func() {
		defer wgr.Done()
		if err := server.Run(ctx, logger, server.NewHTTPServer(cfg.HTTP.Address, handler.Router())); err != nil {
			logger.ErrorContext(ctx, "Dashboard server failed", sl.Err(err))
			stop()
		}
	}()

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.", "address", cfg.HTTP.Address)

	wgr.Wait()

	flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := store.Flush(flushCtx); err != nil {
		logger.ErrorContext(flushCtx, "Failed to flush bookmarks", sl.Err(err))
	}

	logger.InfoContext(flushCtx, "Application stopped gracefully...")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: false,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				AddSource:   false,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelError,
				AddSource:   false,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified, or was invalid. Logging will be minimal, by default." +
				" Please specify the value of `env`: local, development, production")
	}

	return log
}

// dropTime removes the timestamp; the log collector stamps lines itself.
func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{Key: "", Value: slog.Value{}}
	}
	return a
}
