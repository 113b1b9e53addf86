package core

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConsistencyService is the core service for computing consistency scores
type ConsistencyService struct {
	source   EventSource
	store    ModelStore
	enhancer *EnhancedScorer
	logger   *zap.Logger
	now      func() time.Time
}

// Option applies a configuration option to the ConsistencyService
type Option func(*ConsistencyService)

// WithClock overrides the clock used to anchor the observation window
func WithClock(now func() time.Time) Option {
	return func(s *ConsistencyService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewConsistencyService creates a new consistency scoring service
func NewConsistencyService(source EventSource, store ModelStore, logger *zap.Logger, opts ...Option) *ConsistencyService {
	s := &ConsistencyService{
		source:   source,
		store:    store,
		enhancer: NewEnhancedScorer(store, logger),
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the full consistency result for one identifier. The whole
// pipeline runs in memory over a snapshot of the member's scan log; no
// state survives the request except the read-only model artifacts.
//
// Unexpected failures inside the pipeline are caught here and returned as
// errors rather than propagating a panic to the transport layer.
func (s *ConsistencyService) Score(ctx context.Context, identifier string) (result *ScoreResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Scoring pipeline panicked",
				zap.String("identifier", identifier),
				zap.Any("panic", r))
			result = nil
			err = fmt.Errorf("failed to compute score: %v", r)
		}
	}()

	id := NormalizeIdentifier(identifier)
	processingID := uuid.NewString()
	startTime := s.now()

	events, err := s.source.EventsFor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read scan log: %w", err)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("%w for RFID: %s", ErrNoEvents, id)
	}

	visits := GroupDailyVisits(events)
	if len(visits) == 0 {
		return &ScoreResult{
			Score:        0,
			Message:      "No gym activity found for this user",
			ComputedAt:   startTime,
			ProcessingID: processingID,
		}, nil
	}

	features := ExtractFeatures(visits, events, startTime)
	heuristics := ScoreHeuristics(features)
	enhanced := s.enhancer.Score(ctx, features)
	finalScore := BlendScores(heuristics.Total(), enhanced)
	userType, insights := ClassifyProfile(features)

	s.logClusterAssignment(ctx, features)

	result = &ScoreResult{
		Score:    finalScore,
		UserType: userType,
		Insights: insights,
		Frequency: FrequencyReport{
			DaysVisited: features.VisitDays,
			TotalDays:   features.TotalDays,
			Percentage:  round1(features.Frequency * 100),
			Score:       roundInt(heuristics.Frequency),
		},
		Regularity: RegularityReport{
			DistinctDays:        features.DaysVisited,
			AvgGapBetweenVisits: round1(features.AvgGap),
			ConsistencyMetric:   round1(features.Consistency * 100),
			Score:               roundInt(heuristics.Regularity),
			DayPattern: DayPattern{
				Monday:    roundInt(features.DayRatios[0] * 100),
				Tuesday:   roundInt(features.DayRatios[1] * 100),
				Wednesday: roundInt(features.DayRatios[2] * 100),
				Thursday:  roundInt(features.DayRatios[3] * 100),
				Friday:    roundInt(features.DayRatios[4] * 100),
				Saturday:  roundInt(features.DayRatios[5] * 100),
				Sunday:    roundInt(features.DayRatios[6] * 100),
			},
			TimePattern: TimePattern{
				Morning:   roundInt(features.MorningRatio * 100),
				Afternoon: roundInt(features.AfternoonRatio * 100),
				Evening:   roundInt(features.EveningRatio * 100),
			},
		},
		Recency: RecencyReport{
			DaysSinceLastVisit: features.DaysSinceLastVisit,
			Score:              roundInt(heuristics.Recency),
		},
		ComputedAt:   startTime,
		ProcessingID: processingID,
	}

	s.logger.Info("Computed consistency score",
		zap.String("identifier", id),
		zap.String("processing_id", processingID),
		zap.Int("score", finalScore),
		zap.String("user_type", userType),
		zap.Int("visit_days", features.VisitDays))

	return result, nil
}

// Members returns the distinct identifiers known to the scan log
func (s *ConsistencyService) Members(ctx context.Context) ([]MemberRecord, error) {
	return s.source.Members(ctx)
}

// logClusterAssignment reports which attendance cluster a member falls
// into when a trained cluster model is present. The assignment is
// diagnostic only; the user type always comes from the rule thresholds.
func (s *ConsistencyService) logClusterAssignment(ctx context.Context, f *FeatureVector) {
	model, err := s.store.LoadPredictor(ctx, ClusterModelName)
	if err != nil {
		return
	}
	scaler, err := s.store.LoadScaler(ctx, ScalerName)
	if err != nil {
		return
	}
	scaled, err := scaler.Transform(f.ModelVector())
	if err != nil {
		return
	}
	cluster, err := model.Predict(scaled)
	if err != nil {
		return
	}
	s.logger.Debug("Cluster assignment", zap.Int("cluster", int(cluster)))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func roundInt(x float64) int {
	return int(math.Round(x))
}
