package ml

import "errors"

var (
	// ErrEmptyMatrix is returned when fitting over no samples
	ErrEmptyMatrix = errors.New("feature matrix is empty")
	// ErrDimensionMismatch is returned when a vector's width does not match the fitted model
	ErrDimensionMismatch = errors.New("feature dimension mismatch")
	// ErrTooFewSamples is returned when there are fewer samples than clusters
	ErrTooFewSamples = errors.New("too few samples for requested cluster count")
)
