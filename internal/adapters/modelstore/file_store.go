package modelstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/gym-consistency/internal/core"
	"github.com/mikey/gym-consistency/internal/ml"
	"go.uber.org/zap"
)

// Artifact type tags in the JSON documents.
const (
	typeLinear = "linear"
	typeKMeans = "kmeans"
	typeScaler = "scaler"
)

// artifact is the on-disk envelope for a persisted model or scaler
type artifact struct {
	Type   string             `json:"type"`
	Linear *ml.Linear         `json:"linear,omitempty"`
	KMeans *ml.KMeans         `json:"kmeans,omitempty"`
	Scaler *ml.StandardScaler `json:"scaler,omitempty"`
}

// FileStore persists model artifacts as JSON documents in a directory.
// Writes go through a temp file and rename, so a reader can never observe
// a partially written artifact even while training runs.
type FileStore struct {
	dir    string
	logger *zap.Logger
}

// NewFileStore creates a file-backed model store rooted at dir
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create model directory: %w", err)
	}
	return &FileStore{
		dir:    dir,
		logger: logger,
	}, nil
}

// LoadPredictor loads a predictor by name
func (s *FileStore) LoadPredictor(ctx context.Context, name string) (core.Predictor, error) {
	a, err := s.read(ctx, name)
	if err != nil {
		return nil, err
	}
	switch a.Type {
	case typeLinear:
		if a.Linear == nil {
			return nil, fmt.Errorf("%w: %s has no linear payload", core.ErrModelUnavailable, name)
		}
		return a.Linear, nil
	case typeKMeans:
		if a.KMeans == nil {
			return nil, fmt.Errorf("%w: %s has no kmeans payload", core.ErrModelUnavailable, name)
		}
		return a.KMeans, nil
	default:
		return nil, fmt.Errorf("%w: %s is not a predictor (type %q)", core.ErrModelUnavailable, name, a.Type)
	}
}

// SavePredictor persists a predictor under a name
func (s *FileStore) SavePredictor(ctx context.Context, name string, p core.Predictor) error {
	var a artifact
	switch m := p.(type) {
	case *ml.Linear:
		a = artifact{Type: typeLinear, Linear: m}
	case *ml.KMeans:
		a = artifact{Type: typeKMeans, KMeans: m}
	default:
		return fmt.Errorf("unsupported predictor type %T", p)
	}
	return s.write(ctx, name, a)
}

// LoadScaler loads a feature scaler by name
func (s *FileStore) LoadScaler(ctx context.Context, name string) (core.Scaler, error) {
	a, err := s.read(ctx, name)
	if err != nil {
		return nil, err
	}
	if a.Type != typeScaler || a.Scaler == nil {
		return nil, fmt.Errorf("%w: %s is not a scaler (type %q)", core.ErrModelUnavailable, name, a.Type)
	}
	return a.Scaler, nil
}

// SaveScaler persists a feature scaler under a name
func (s *FileStore) SaveScaler(ctx context.Context, name string, scaler core.Scaler) error {
	m, ok := scaler.(*ml.StandardScaler)
	if !ok {
		return fmt.Errorf("unsupported scaler type %T", scaler)
	}
	return s.write(ctx, name, artifact{Type: typeScaler, Scaler: m})
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) read(ctx context.Context, name string) (*artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", core.ErrModelUnavailable, name)
		}
		return nil, fmt.Errorf("%w: %s: %v", core.ErrModelUnavailable, name, err)
	}
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %s is corrupt: %v", core.ErrModelUnavailable, name, err)
	}
	return &a, nil
}

// write serializes the artifact to a temp file and renames it into place
func (s *FileStore) write(ctx context.Context, name string, a artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to encode artifact %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write artifact %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file for %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to publish artifact %s: %w", name, err)
	}

	s.logger.Debug("Persisted model artifact", zap.String("name", name))
	return nil
}
