package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/gym-consistency/internal/adapters/httpapi"
	"github.com/mikey/gym-consistency/internal/config"
	"github.com/mikey/gym-consistency/internal/core"
	"github.com/mikey/gym-consistency/internal/factory"
	"github.com/mikey/gym-consistency/internal/logging"
	"github.com/mikey/gym-consistency/internal/scheduler"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewSourceFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}

	// Register event source
	if err := container.Provide(func(f *factory.SourceFactory) (core.EventSource, error) {
		return f.CreateEventSource()
	}); err != nil {
		return nil, err
	}

	// Register model store
	if err := container.Provide(func(f *factory.StoreFactory) (core.ModelStore, error) {
		return f.CreateModelStore()
	}); err != nil {
		return nil, err
	}

	// Register scoring service
	if err := container.Provide(func(source core.EventSource, store core.ModelStore, logger *zap.Logger) *core.ConsistencyService {
		return core.NewConsistencyService(source, store, logger)
	}); err != nil {
		return nil, err
	}

	// Register trainer
	if err := container.Provide(func(source core.EventSource, store core.ModelStore, logger *zap.Logger) *core.Trainer {
		return core.NewTrainer(source, store, logger)
	}); err != nil {
		return nil, err
	}

	// Register HTTP server
	if err := container.Provide(func(
		service *core.ConsistencyService,
		trainer *core.Trainer,
		logger *zap.Logger,
		cfg *config.Config,
	) *httpapi.Server {
		return httpapi.NewServer(service, trainer, logger, cfg.GetString("server.listen_address"))
	}); err != nil {
		return nil, err
	}

	// Register training scheduler
	if err := container.Provide(scheduler.New); err != nil {
		return nil, err
	}

	return container, nil
}
