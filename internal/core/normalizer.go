package core

import (
	"sort"
	"strings"
	"time"
)

// NormalizeIdentifier canonicalizes a badge identifier for comparison.
// Stored and queried values both go through this, so lookups are
// case-insensitive.
func NormalizeIdentifier(identifier string) string {
	return strings.ToUpper(strings.TrimSpace(identifier))
}

// GroupDailyVisits collapses scan events into one DailyVisit per calendar
// date, counting the scans on that date. Re-scanning a badge on the same
// day never creates a second visit. The result is sorted ascending by date.
func GroupDailyVisits(events []ScanEvent) []DailyVisit {
	counts := make(map[time.Time]int, len(events))
	for _, e := range events {
		counts[e.Date()]++
	}

	visits := make([]DailyVisit, 0, len(counts))
	for date, n := range counts {
		visits = append(visits, DailyVisit{Date: date, ScanCount: n})
	}
	sort.Slice(visits, func(i, j int) bool {
		return visits[i].Date.Before(visits[j].Date)
	})
	return visits
}
