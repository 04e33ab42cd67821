// cmd/mafatih-server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"mafatih/internal/api"
	"mafatih/internal/app"
	"mafatih/internal/common/camunda"
	"mafatih/internal/common/config"
	"mafatih/internal/common/logger"
	"mafatih/internal/common/observability"
	"mafatih/pkg/registry"

	aq "mafatih/internal/workers/resolution/ask-question"
	idr "mafatih/internal/workers/resolution/interpret-dream"
	rv "mafatih/internal/workers/resolution/recommend-verse"

	sr "mafatih/internal/workers/notification/send-reminder"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "console").Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting mafatih server...",
		zap.String("version", version),
		zap.String("environment", cfg.App.Environment),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	ctx := context.Background()

	services, err := app.Build(ctx, cfg, zapLog, app.Options{
		Retries:       5,
		RetryDelay:    2 * time.Second,
		Observability: obs,
	})
	if err != nil {
		zapLog.Fatal("service wiring failed", zap.Error(err))
	}
	defer services.Close()

	checks := services.Checks

	// --- Optional Zeebe workers ---
	var pool *camunda.Pool
	var zeebe *camunda.Client
	if cfg.Camunda.Enabled {
		reg, err := registry.Default()
		if err != nil {
			zapLog.Fatal("worker registry load failed", zap.Error(err))
		}

		zeebe, err = camunda.NewClient(ctx, cfg.Camunda)
		if err != nil {
			zapLog.Fatal("zeebe client failed", zap.Error(err))
		}
		zapLog.Info("Zeebe client connected successfully")
		checks["zeebe"] = zeebe.HealthCheck

		pool = camunda.NewPool(zeebe, obs, zapLog)
		registerWorkers(pool, reg, cfg, services, log, zapLog)
	}

	// --- HTTP API ---
	server := api.New(api.Deps{
		Resolver:  services.Resolver,
		Catalog:   services.Catalog,
		Reminders: services.Reminders,
		Checks:    checks,
		Version:   version,
		Logger:    log,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.Handler(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}

	if pool != nil {
		pool.Stop()
	}
	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}

	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("observability shutdown failed", zap.Error(err))
	}

	zapLog.Info("Mafatih server stopped gracefully")
}

// registerWorkers opens one job worker per registry activity that this
// binary knows how to handle.
func registerWorkers(pool *camunda.Pool, reg *registry.ActivityRegistry, cfg *config.Config, services *app.App, log logger.Logger, zapLog *zap.Logger) {
	for _, activity := range reg.Activities {
		taskType := activity.TaskType
		wcfg := config.GetWorkerConfig(cfg, taskType)
		if wcfg.Timeout <= 0 {
			if d, err := activity.TimeoutDuration(); err == nil {
				wcfg.Timeout = int(d.Milliseconds())
			}
		}
		timeout := config.GetDuration(wcfg.Timeout)

		switch taskType {
		case aq.TaskType:
			c := aq.DefaultConfig()
			c.Timeout = timeout
			c.MaxJobsActive = wcfg.MaxJobsActive
			handler, err := aq.NewHandler(c, services.Resolver, &askQuestionLoggerAdapter{log})
			if err != nil {
				zapLog.Fatal("failed to create ask-question handler", zap.Error(err))
			}
			pool.Start(taskType, wcfg, handler.Handle)

		case idr.TaskType:
			c := idr.DefaultConfig()
			c.Timeout = timeout
			c.MaxJobsActive = wcfg.MaxJobsActive
			handler, err := idr.NewHandler(c, services.Resolver, &interpretDreamLoggerAdapter{log})
			if err != nil {
				zapLog.Fatal("failed to create interpret-dream handler", zap.Error(err))
			}
			pool.Start(taskType, wcfg, handler.Handle)

		case rv.TaskType:
			c := rv.DefaultConfig()
			c.Timeout = timeout
			c.MaxJobsActive = wcfg.MaxJobsActive
			if err := c.Validate(); err != nil {
				zapLog.Fatal("invalid recommend-verse config", zap.Error(err))
			}
			handler := rv.NewHandler(c, services.Resolver, &recommendVerseLoggerAdapter{log})
			pool.Start(taskType, wcfg, handler.Handle)

		case sr.TaskType:
			c := sr.LoadConfig()
			c.Timeout = timeout
			handler, err := sr.NewHandler(c, services.Reminders, log)
			if err != nil {
				zapLog.Fatal("failed to create send-reminder handler", zap.Error(err))
			}
			pool.Start(taskType, wcfg, handler.Handle)

		default:
			zapLog.Warn("registry activity has no handler", zap.String("taskType", taskType))
		}
	}
	zapLog.Info("workers registered", zap.Strings("taskTypes", pool.Running()))
}

// Logger adapters for workers that have their own Logger interfaces
type askQuestionLoggerAdapter struct {
	logger.Logger
}

func (a *askQuestionLoggerAdapter) With(fields map[string]interface{}) aq.Logger {
	return &askQuestionLoggerAdapter{a.Logger.With(fields)}
}

type interpretDreamLoggerAdapter struct {
	logger.Logger
}

func (a *interpretDreamLoggerAdapter) With(fields map[string]interface{}) idr.Logger {
	return &interpretDreamLoggerAdapter{a.Logger.With(fields)}
}

type recommendVerseLoggerAdapter struct {
	logger.Logger
}

func (a *recommendVerseLoggerAdapter) With(fields map[string]interface{}) rv.Logger {
	return &recommendVerseLoggerAdapter{a.Logger.With(fields)}
}
