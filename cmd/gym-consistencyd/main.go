package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mikey/gym-consistency/internal/adapters/httpapi"
	"github.com/mikey/gym-consistency/internal/config"
	"github.com/mikey/gym-consistency/internal/core"
	"github.com/mikey/gym-consistency/internal/di"
	"github.com/mikey/gym-consistency/internal/scheduler"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	cfg *config.Config,
	server *httpapi.Server,
	trainer *core.Trainer,
	sched *scheduler.Scheduler,
	source core.EventSource,
) error {
	defer logger.Sync()

	// Start the API
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start HTTP server", zap.Error(err))
		return err
	}

	// Schedule retraining if configured
	if expr := cfg.GetString("training.schedule"); expr != "" {
		if err := sched.ScheduleTraining(expr, trainer.Train); err != nil {
			logger.Fatal("Failed to schedule training", zap.Error(err))
			return err
		}
		sched.Start()
		logger.Info("Training schedule active", zap.String("schedule", expr))
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	shutdownTimeout, err := cfg.GetDuration("server.shutdown_timeout")
	if err != nil {
		shutdownTimeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.Error("Failed to stop HTTP server", zap.Error(err))
	}

	sched.Stop()

	// Close the event source if it holds a connection
	if closer, ok := source.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close event source", zap.Error(err))
		}
	}

	logger.Info("Shutdown complete")
	return nil
}
