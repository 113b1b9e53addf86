package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/gym-consistency/internal/adapters/logsource"
	"github.com/mikey/gym-consistency/internal/config"
	"github.com/mikey/gym-consistency/internal/core"
	"go.uber.org/zap"
)

// SourceFactory creates event sources based on configuration
type SourceFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSourceFactory creates a new source factory
func NewSourceFactory(cfg *config.Config, logger *zap.Logger) *SourceFactory {
	return &SourceFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateEventSource creates an event source based on the configuration
func (f *SourceFactory) CreateEventSource() (core.EventSource, error) {
	sourceType := f.cfg.GetString("log.source")

	switch sourceType {
	case "csv":
		return logsource.NewCSVSource(f.cfg.GetString("log.csv_path"), f.logger), nil
	case "sqlite":
		sqlitePath := f.cfg.GetString("log.sqlite_path")
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return logsource.NewSQLiteSource(sqlitePath, f.logger)
	case "mysql":
		return logsource.NewMySQLSource(f.cfg.GetString("log.mysql_dsn"), f.logger)
	default:
		return nil, fmt.Errorf("unsupported log source type: %s", sourceType)
	}
}
