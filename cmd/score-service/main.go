// cmd/score-service/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/openfinanceafrica/scoreapi/internal/cache"
	"github.com/openfinanceafrica/scoreapi/internal/common/camunda"
	"github.com/openfinanceafrica/scoreapi/internal/common/config"
	"github.com/openfinanceafrica/scoreapi/internal/common/database"
	"github.com/openfinanceafrica/scoreapi/internal/common/logger"
	"github.com/openfinanceafrica/scoreapi/internal/common/observability"
	"github.com/openfinanceafrica/scoreapi/internal/score"
	"github.com/openfinanceafrica/scoreapi/internal/server"

	ps "github.com/openfinanceafrica/scoreapi/internal/workers/scoring/payment-score"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting score service...")

	obs := observability.New("score-service")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Redis with retry (optional: degrade to no cache) ---
	var scoreCache *cache.ScoreCache
	if cfg.Cache.Enabled {
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 5, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Warn("redis unavailable, continuing without the score cache", zap.Error(err))
		} else {
			defer redis.Close()
			scoreCache = cache.New(redis, time.Duration(cfg.Cache.TTL)*time.Second, log)
			zapLog.Info("Redis connected successfully")
		}
	}

	engine := score.New(log)

	// --- Init Zeebe Client and register the worker ---
	var camundaClient *camunda.Client
	var scoreWorker *camunda.Worker
	if cfg.Camunda.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
				GatewayAddress:         cfg.Camunda.BrokerAddress,
				UsePlaintextConnection: true,
				ConnectionTimeout:      config.GetDuration(cfg.Camunda.Timeout),
				RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
			})
			return err
		}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		zapLog.Info("Zeebe client connected successfully")

		if config.IsWorkerEnabled(cfg, ps.TaskType) {
			wcfg := config.GetWorkerConfig(cfg, ps.TaskType)
			handler := ps.NewHandler(
				&ps.Config{
					Timeout:  config.GetDuration(wcfg.Timeout),
					CacheTTL: time.Duration(cfg.Cache.TTL) * time.Second,
				},
				engine, scoreCache, log,
			)
			scoreWorker = camunda.StartWorker(
				camundaClient.GetClient(),
				ps.TaskType,
				wcfg.MaxJobsActive,
				config.GetDuration(wcfg.Timeout),
				handler.Handle,
				zapLog,
			)
		}
	}

	// --- HTTP API Server ---
	srv := server.New(cfg.Server, engine, scoreCache, log)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zapLog.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil {
			zapLog.Error("HTTP server failed", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	if scoreWorker != nil {
		scoreWorker.Stop()
	}

	if camundaClient != nil {
		if err := camundaClient.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}

	zapLog.Info("Score service stopped gracefully")
}
