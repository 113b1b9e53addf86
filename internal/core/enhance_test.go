package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mikey/gym-consistency/internal/core"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"
)

// stubStore lets tests control exactly how model resolution behaves.
type stubStore struct {
	predictor core.Predictor
	scaler    core.Scaler
}

func (s *stubStore) LoadPredictor(ctx context.Context, name string) (core.Predictor, error) {
	if s.predictor == nil {
		return nil, core.ErrModelUnavailable
	}
	return s.predictor, nil
}

func (s *stubStore) SavePredictor(ctx context.Context, name string, p core.Predictor) error {
	return nil
}

func (s *stubStore) LoadScaler(ctx context.Context, name string) (core.Scaler, error) {
	if s.scaler == nil {
		return nil, core.ErrModelUnavailable
	}
	return s.scaler, nil
}

func (s *stubStore) SaveScaler(ctx context.Context, name string, sc core.Scaler) error {
	return nil
}

type failingPredictor struct{}

func (failingPredictor) Predict([]float64) (float64, error) {
	return 0, errors.New("prediction blew up")
}

type fixedPredictor struct{ value float64 }

func (p fixedPredictor) Predict([]float64) (float64, error) {
	return p.value, nil
}

type identityScaler struct{}

func (identityScaler) Transform(v []float64) ([]float64, error) {
	return v, nil
}

func TestEnhancedScorer(t *testing.T) {
	features := &core.FeatureVector{
		Frequency:          0.375,
		Consistency:        1.0 / 3.5,
		DaysSinceLastVisit: 0,
	}

	Convey("Given no trained model exists", t, func() {
		scorer := core.NewEnhancedScorer(&stubStore{}, zap.NewNop())

		Convey("When scoring", func() {
			score := scorer.Score(context.Background(), features)

			Convey("Then the synthetic fallback is used", func() {
				So(score, ShouldAlmostEqual, core.SyntheticScore(features))
			})
		})
	})

	Convey("Given a model that loads but fails to predict", t, func() {
		scorer := core.NewEnhancedScorer(&stubStore{
			predictor: failingPredictor{},
			scaler:    identityScaler{},
		}, zap.NewNop())

		Convey("When scoring", func() {
			score := scorer.Score(context.Background(), features)

			Convey("Then the fallback behaves exactly as in the absent-model case", func() {
				So(score, ShouldAlmostEqual, core.SyntheticScore(features))
			})
		})
	})

	Convey("Given a model that predicts successfully", t, func() {
		scorer := core.NewEnhancedScorer(&stubStore{
			predictor: fixedPredictor{value: 72.5},
			scaler:    identityScaler{},
		}, zap.NewNop())

		Convey("When scoring", func() {
			score := scorer.Score(context.Background(), features)

			Convey("Then the model output is returned", func() {
				So(score, ShouldAlmostEqual, 72.5)
			})
		})
	})
}

func TestSyntheticScore(t *testing.T) {
	Convey("Given the synthetic score formula", t, func() {
		Convey("Then it blends frequency, consistency and recency", func() {
			f := &core.FeatureVector{Frequency: 0.375, Consistency: 1.0 / 3.5, DaysSinceLastVisit: 0}
			So(core.SyntheticScore(f), ShouldAlmostEqual, 0.45*37.5+0.30*(100.0/3.5)+0.25*100)
		})

		Convey("And the recency component follows the day buckets", func() {
			recencyOnly := func(days int) float64 {
				return core.SyntheticScore(&core.FeatureVector{DaysSinceLastVisit: days})
			}
			So(recencyOnly(0), ShouldAlmostEqual, 25)   // 100 * 0.25
			So(recencyOnly(2), ShouldAlmostEqual, 20)   // 80 * 0.25
			So(recencyOnly(5), ShouldAlmostEqual, 15)   // 60 * 0.25
			So(recencyOnly(10), ShouldAlmostEqual, 10)  // 40 * 0.25
			So(recencyOnly(20), ShouldAlmostEqual, 10)  // (100-60) * 0.25
			So(recencyOnly(50), ShouldAlmostEqual, 0)   // floored at zero
		})

		Convey("And the output is bounded by [0,100]", func() {
			f := &core.FeatureVector{Frequency: 1, Consistency: 1, DaysSinceLastVisit: 0}
			So(core.SyntheticScore(f), ShouldAlmostEqual, 100)
		})
	})
}

func TestBlendScores(t *testing.T) {
	Convey("Given traditional and enhanced scores", t, func() {
		Convey("Then blending weights them 0.7/0.3 and rounds", func() {
			So(core.BlendScores(60, 50), ShouldEqual, 57)
			So(core.BlendScores(100, 100), ShouldEqual, 100)
			So(core.BlendScores(0, 0), ShouldEqual, 0)
		})

		Convey("And extrapolating models cannot push the result out of range", func() {
			So(core.BlendScores(100, 250), ShouldEqual, 100)
			So(core.BlendScores(0, -80), ShouldEqual, 0)
		})
	})
}
