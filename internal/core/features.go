package core

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// Hour boundaries for the time-of-day buckets.
const (
	morningEndHour   = 12
	afternoonEndHour = 18
)

// ExtractFeatures computes the attendance-pattern features for one member.
// visits must be the daily visits derived from events and contain at least
// one entry; events carry the per-scan timestamps needed for the
// time-of-day and day-of-week distributions. now anchors the observation
// window so results are reproducible in tests.
//
// A member with a single recorded day still produces a full vector: the
// gap statistics default to zero and consistency to 1.0 (zero gap variance
// reads as maximally regular).
func ExtractFeatures(visits []DailyVisit, events []ScanEvent, now time.Time) *FeatureVector {
	if len(visits) == 0 {
		return &FeatureVector{}
	}

	today := dateOf(now)
	earliest := visits[0].Date
	latest := visits[len(visits)-1].Date

	totalDays := daysBetween(earliest, today) + 1
	visitDays := len(visits)

	f := &FeatureVector{
		VisitDays: visitDays,
		TotalDays: totalDays,
		Frequency: float64(visitDays) / float64(totalDays),
	}

	// Gap statistics over consecutive daily visits.
	if visitDays > 1 {
		gaps := make([]float64, 0, visitDays-1)
		for i := 1; i < visitDays; i++ {
			gaps = append(gaps, float64(daysBetween(visits[i-1].Date, visits[i].Date)))
		}
		f.AvgGap = stat.Mean(gaps, nil)
		f.GapStd = stat.PopStdDev(gaps, nil)
	}
	if f.GapStd > 0 {
		f.Consistency = 1 / (1 + f.GapStd)
	} else {
		f.Consistency = 1
	}

	// Time-of-day and day-of-week distributions are scan-weighted: every
	// scan counts, not one per daily visit.
	var morning, afternoon, evening int
	var dayCounts [7]int
	weekdaysSeen := make(map[int]struct{}, 7)
	for _, e := range events {
		hour := e.Timestamp.UTC().Hour()
		switch {
		case hour < morningEndHour:
			morning++
		case hour < afternoonEndHour:
			afternoon++
		default:
			evening++
		}
		idx := mondayIndex(e.Timestamp.UTC().Weekday())
		dayCounts[idx]++
		weekdaysSeen[idx] = struct{}{}
	}

	total := float64(len(events))
	if total > 0 {
		f.MorningRatio = float64(morning) / total
		f.AfternoonRatio = float64(afternoon) / total
		f.EveningRatio = float64(evening) / total
		for i, n := range dayCounts {
			f.DayRatios[i] = float64(n) / total
		}
	}
	f.DaysVisited = len(weekdaysSeen)

	f.DaysSinceLastVisit = daysBetween(latest, today)
	if f.DaysSinceLastVisit < 0 {
		f.DaysSinceLastVisit = 0
	}

	return f
}

// mondayIndex maps a time.Weekday to the Monday-first index used
// throughout the feature vector.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
