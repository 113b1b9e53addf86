package core

import (
	"context"
	"math"

	"go.uber.org/zap"
)

// Weights for the synthetic fallback score.
const (
	syntheticFrequencyWeight   = 0.45
	syntheticConsistencyWeight = 0.30
	syntheticRecencyWeight     = 0.25
)

// Blend weights for combining the heuristic and model-enhanced scores.
const (
	traditionalWeight = 0.7
	enhancedWeight    = 0.3
)

// EnhancedScorer produces the model-based score component. When the trained
// model or scaler cannot be loaded, or prediction fails for any reason, it
// recovers locally with a deterministic synthetic score computed from the
// same features. Failures never reach the caller.
type EnhancedScorer struct {
	store  ModelStore
	logger *zap.Logger
}

// NewEnhancedScorer creates a new model-enhanced scorer
func NewEnhancedScorer(store ModelStore, logger *zap.Logger) *EnhancedScorer {
	return &EnhancedScorer{
		store:  store,
		logger: logger,
	}
}

// Score returns the model-enhanced score in [0,100]
func (s *EnhancedScorer) Score(ctx context.Context, f *FeatureVector) float64 {
	if score, ok := s.modelScore(ctx, f); ok {
		return score
	}
	return SyntheticScore(f)
}

// modelScore attempts the trained-model path. The second return value is
// false whenever the fallback should be used instead.
func (s *EnhancedScorer) modelScore(ctx context.Context, f *FeatureVector) (float64, bool) {
	model, err := s.store.LoadPredictor(ctx, ScoreModelName)
	if err != nil {
		s.logger.Debug("Score model not loadable, using synthetic score", zap.Error(err))
		return 0, false
	}

	scaler, err := s.store.LoadScaler(ctx, ScalerName)
	if err != nil {
		s.logger.Debug("Feature scaler not loadable, using synthetic score", zap.Error(err))
		return 0, false
	}

	scaled, err := scaler.Transform(f.ModelVector())
	if err != nil {
		s.logger.Warn("Failed to scale features, using synthetic score", zap.Error(err))
		return 0, false
	}

	score, err := model.Predict(scaled)
	if err != nil {
		s.logger.Warn("Model prediction failed, using synthetic score", zap.Error(err))
		return 0, false
	}

	return score, true
}

// SyntheticScore is the deterministic substitute used when no trained
// model is available: a weighted blend of frequency, consistency and a
// day-bucketed recency component, all on a 0-100 scale.
func SyntheticScore(f *FeatureVector) float64 {
	var recency float64
	switch days := f.DaysSinceLastVisit; {
	case days == 0:
		recency = 100
	case days <= 2:
		recency = 80
	case days <= 5:
		recency = 60
	case days <= 10:
		recency = 40
	default:
		recency = math.Max(0, 100-float64(days)*3)
	}

	return f.Frequency*100*syntheticFrequencyWeight +
		f.Consistency*100*syntheticConsistencyWeight +
		recency*syntheticRecencyWeight
}

// BlendScores combines the traditional and model-enhanced scores into the
// final integer score. The result is clamped to [0,100]: a loaded
// regression model can extrapolate outside its training range, so the
// bound is enforced rather than assumed.
func BlendScores(traditional, enhanced float64) int {
	blended := traditionalWeight*traditional + enhancedWeight*enhanced
	blended = math.Max(0, math.Min(100, blended))
	return int(math.Round(blended))
}
