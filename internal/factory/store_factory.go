package factory

import (
	"github.com/mikey/gym-consistency/internal/adapters/modelstore"
	"github.com/mikey/gym-consistency/internal/config"
	"github.com/mikey/gym-consistency/internal/core"
	"go.uber.org/zap"
)

// StoreFactory creates model stores based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateModelStore creates the model store from the configuration
func (f *StoreFactory) CreateModelStore() (core.ModelStore, error) {
	return modelstore.NewFileStore(f.cfg.GetString("models.dir"), f.logger)
}
