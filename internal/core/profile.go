package core

import (
	"fmt"
	"strings"
)

// Frequency tier thresholds.
const (
	frequentThreshold   = 0.7
	regularThreshold    = 0.4
	occasionalThreshold = 0.2
)

// Consistency label thresholds.
const (
	highlyConsistentThreshold  = 0.8
	somewhatConsistentThreshold = 0.5
)

// ClassifyProfile derives a categorical user type and ordered narrative
// insights from the feature vector using fixed rule thresholds.
func ClassifyProfile(f *FeatureVector) (string, []string) {
	var frequencyType string
	switch {
	case f.Frequency > frequentThreshold:
		frequencyType = "Frequent"
	case f.Frequency > regularThreshold:
		frequencyType = "Regular"
	case f.Frequency > occasionalThreshold:
		frequencyType = "Occasional"
	default:
		frequencyType = "Infrequent"
	}

	// Arg-max over time-of-day ratios; ties resolve to the first bucket
	// in morning, afternoon, evening order.
	preferredTime := "morning"
	best := f.MorningRatio
	if f.AfternoonRatio > best {
		preferredTime = "afternoon"
		best = f.AfternoonRatio
	}
	if f.EveningRatio > best {
		preferredTime = "evening"
	}

	// Weekday wins ties by being evaluated first.
	weekday := f.DayRatios[0] + f.DayRatios[1] + f.DayRatios[2] + f.DayRatios[3] + f.DayRatios[4]
	weekend := f.DayRatios[5] + f.DayRatios[6]
	preferredDays := "Weekday"
	if weekend > weekday {
		preferredDays = "Weekend"
	}

	var consistencyType string
	switch {
	case f.Consistency > highlyConsistentThreshold:
		consistencyType = "highly consistent"
	case f.Consistency > somewhatConsistentThreshold:
		consistencyType = "somewhat consistent"
	default:
		consistencyType = "variable"
	}

	userType := fmt.Sprintf("%s %s %s", frequencyType, titleCase(preferredTime), preferredDays)

	insights := make([]string, 0, 4)
	if frequencyType == "Frequent" || frequencyType == "Regular" {
		insights = append(insights, fmt.Sprintf("You maintain a %s gym schedule.", consistencyType))
	} else {
		insights = append(insights, "Increasing your gym visit frequency would significantly improve your score.")
	}

	switch preferredTime {
	case "morning":
		insights = append(insights, "You're an early bird! Morning workouts help boost metabolism all day.")
	case "evening":
		insights = append(insights, "Evening workouts can help relieve stress from the day.")
	}

	if f.GapStd > 5 {
		insights = append(insights, "Your gym visits are somewhat irregular. A more consistent schedule could improve results.")
	}

	if f.DaysSinceLastVisit > 7 {
		insights = append(insights, fmt.Sprintf("It's been %d days since your last visit. Time to get back!", f.DaysSinceLastVisit))
	}

	return userType, insights
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
