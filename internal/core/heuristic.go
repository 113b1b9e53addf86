package core

import "math"

// Caps for the heuristic sub-scores. They sum to 100.
const (
	maxFrequencyScore  = 40.0
	maxRegularityScore = 30.0
	maxRecencyScore    = 30.0
)

// HeuristicScores holds the three sub-scores of the rule-based scorer
type HeuristicScores struct {
	Frequency  float64
	Regularity float64
	Recency    float64
}

// Total returns the traditional score, the sum of the three sub-scores
func (h HeuristicScores) Total() float64 {
	return h.Frequency + h.Regularity + h.Recency
}

// ScoreHeuristics maps a feature vector to the fixed piecewise sub-scores.
// It is a pure function of its input.
func ScoreHeuristics(f *FeatureVector) HeuristicScores {
	frequencyScore := math.Min(maxFrequencyScore, f.Frequency*100*0.4)

	regularityScore := math.Min(maxRegularityScore,
		float64(f.DaysVisited)/7*15+(1-math.Min(1, f.GapStd/10))*15)

	var recencyScore float64
	switch days := f.DaysSinceLastVisit; {
	case days == 0:
		recencyScore = 30
	case days <= 2:
		recencyScore = 25
	case days <= 5:
		recencyScore = 15
	case days <= 10:
		recencyScore = 10
	default:
		recencyScore = math.Max(0, 30-float64(days))
	}

	return HeuristicScores{
		Frequency:  frequencyScore,
		Regularity: regularityScore,
		Recency:    recencyScore,
	}
}
