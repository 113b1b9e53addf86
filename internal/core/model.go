package core

import (
	"time"
)

// ScanEvent represents a single badge scan from the RFID log
type ScanEvent struct {
	Identifier string
	Timestamp  time.Time
}

// Date returns the calendar date of the scan at midnight UTC
func (e ScanEvent) Date() time.Time {
	y, m, d := e.Timestamp.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DailyVisit represents one attendance instance per calendar date,
// regardless of how many scans were recorded that day
type DailyVisit struct {
	Date      time.Time
	ScanCount int
}

// MemberRecord pairs an identifier with its raw scan count
type MemberRecord struct {
	Identifier string `json:"uid"`
	Records    int    `json:"records"`
}

// FeatureVector holds the attendance-pattern features for one member.
// All ratio fields are in [0,1]. DayRatios is Monday-first.
type FeatureVector struct {
	Frequency          float64
	VisitDays          int
	TotalDays          int
	AvgGap             float64
	GapStd             float64
	Consistency        float64
	DaysVisited        int
	MorningRatio       float64
	AfternoonRatio     float64
	EveningRatio       float64
	DaysSinceLastVisit int
	DayRatios          [7]float64
}

// FeatureDimensions is the width of the encoded model vector.
const FeatureDimensions = 13

// ModelVector encodes the features in the fixed order shared by the
// trainer and the model-enhanced scorer: frequency, consistency,
// days_since_last_visit, morning, afternoon, evening, Monday..Sunday.
// Both sides go through this single function so array position can
// never drift from meaning.
func (f *FeatureVector) ModelVector() []float64 {
	v := make([]float64, 0, FeatureDimensions)
	v = append(v,
		f.Frequency,
		f.Consistency,
		float64(f.DaysSinceLastVisit),
		f.MorningRatio,
		f.AfternoonRatio,
		f.EveningRatio,
	)
	v = append(v, f.DayRatios[:]...)
	return v
}

// FrequencyReport summarizes how often the member attends
type FrequencyReport struct {
	DaysVisited int     `json:"days_visited"`
	TotalDays   int     `json:"total_days"`
	Percentage  float64 `json:"percentage"`
	Score       int     `json:"score"`
}

// DayPattern holds per-weekday scan percentages (0-100)
type DayPattern struct {
	Monday    int `json:"Monday"`
	Tuesday   int `json:"Tuesday"`
	Wednesday int `json:"Wednesday"`
	Thursday  int `json:"Thursday"`
	Friday    int `json:"Friday"`
	Saturday  int `json:"Saturday"`
	Sunday    int `json:"Sunday"`
}

// TimePattern holds time-of-day scan percentages (0-100)
type TimePattern struct {
	Morning   int `json:"morning"`
	Afternoon int `json:"afternoon"`
	Evening   int `json:"evening"`
}

// RegularityReport summarizes how evenly visits are spaced
type RegularityReport struct {
	DistinctDays        int        `json:"distinct_days"`
	AvgGapBetweenVisits float64    `json:"avg_gap_between_visits"`
	ConsistencyMetric   float64    `json:"consistency_metric"`
	Score               int        `json:"score"`
	DayPattern          DayPattern `json:"day_pattern"`
	TimePattern         TimePattern `json:"time_pattern"`
}

// RecencyReport summarizes how recently the member attended
type RecencyReport struct {
	DaysSinceLastVisit int `json:"days_since_last_visit"`
	Score              int `json:"score"`
}

// ScoreResult is the full outcome of one scoring request.
// It is assembled once and never mutated afterwards.
type ScoreResult struct {
	Score      int              `json:"score"`
	UserType   string           `json:"user_type,omitempty"`
	Insights   []string         `json:"insights,omitempty"`
	Frequency  FrequencyReport  `json:"frequency"`
	Regularity RegularityReport `json:"regularity"`
	Recency    RecencyReport    `json:"recency"`
	Message    string           `json:"message,omitempty"`

	ComputedAt   time.Time `json:"-"`
	ProcessingID string    `json:"-"`
}
