package core

import "errors"

var (
	// ErrNoEvents is returned when no scan events exist for an identifier
	ErrNoEvents = errors.New("no gym attendance records found")
	// ErrInsufficientData is returned when training has too few qualifying members
	ErrInsufficientData = errors.New("not enough data to train models")
	// ErrModelUnavailable is returned when a model artifact is missing or unreadable
	ErrModelUnavailable = errors.New("model artifact unavailable")
)
