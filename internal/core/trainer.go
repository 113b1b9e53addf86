package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mikey/gym-consistency/internal/ml"
	"go.uber.org/zap"
)

// Training parameters. The seed is fixed so repeated runs over the same
// log produce the same clusters.
const (
	minTrainingVisitDays  = 3
	trainingClusters      = 4
	trainingSeed          = 42
	trainingMaxIterations = 300
)

// Trainer recomputes features for every known member and fits the scaler
// and cluster model. Runs are serialized by a mutex and the store writes
// artifacts atomically, so a concurrent scoring request never observes a
// partially written model.
type Trainer struct {
	source EventSource
	store  ModelStore
	logger *zap.Logger
	now    func() time.Time
	mu     sync.Mutex
}

// TrainerOption applies a configuration option to the Trainer
type TrainerOption func(*Trainer)

// WithTrainerClock overrides the clock used when extracting features
func WithTrainerClock(now func() time.Time) TrainerOption {
	return func(t *Trainer) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTrainer creates a new batch trainer
func NewTrainer(source EventSource, store ModelStore, logger *zap.Logger, opts ...TrainerOption) *Trainer {
	t := &Trainer{
		source: source,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Train fits and persists the feature scaler and the attendance cluster
// model from the full scan log. Members with fewer than three distinct
// visit days carry too little signal and are skipped. When fewer members
// qualify than there are clusters, nothing is persisted and
// ErrInsufficientData is returned.
func (t *Trainer) Train(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	identifiers, err := t.source.Identifiers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list identifiers: %w", err)
	}

	now := t.now()
	matrix := make([][]float64, 0, len(identifiers))
	for _, id := range identifiers {
		events, err := t.source.EventsFor(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to read scan log for %s: %w", id, err)
		}
		visits := GroupDailyVisits(events)
		if len(visits) < minTrainingVisitDays {
			continue
		}
		features := ExtractFeatures(visits, events, now)
		matrix = append(matrix, features.ModelVector())
	}

	if len(matrix) < trainingClusters {
		return fmt.Errorf("%w: %d members qualify, need at least %d",
			ErrInsufficientData, len(matrix), trainingClusters)
	}

	scaler, err := ml.FitScaler(matrix)
	if err != nil {
		return fmt.Errorf("failed to fit scaler: %w", err)
	}
	scaled, err := scaler.TransformMatrix(matrix)
	if err != nil {
		return fmt.Errorf("failed to standardize feature matrix: %w", err)
	}

	clusters, err := ml.FitKMeans(scaled, trainingClusters, trainingSeed, trainingMaxIterations)
	if err != nil {
		return fmt.Errorf("failed to fit cluster model: %w", err)
	}

	if err := t.store.SaveScaler(ctx, ScalerName, scaler); err != nil {
		return fmt.Errorf("failed to persist scaler: %w", err)
	}
	if err := t.store.SavePredictor(ctx, ClusterModelName, clusters); err != nil {
		return fmt.Errorf("failed to persist cluster model: %w", err)
	}

	t.logger.Info("Trained consistency models",
		zap.Int("members_total", len(identifiers)),
		zap.Int("members_used", len(matrix)),
		zap.Int("clusters", trainingClusters))

	return nil
}
