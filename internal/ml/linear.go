package ml

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Linear is a linear regression predictor. The service never fits one
// itself; it loads weights produced offline, so only prediction lives here.
type Linear struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

// Predict returns w·v + b
func (m *Linear) Predict(v []float64) (float64, error) {
	if len(v) != len(m.Weights) {
		return 0, fmt.Errorf("%w: got %d features, model has %d weights",
			ErrDimensionMismatch, len(v), len(m.Weights))
	}
	return floats.Dot(m.Weights, v) + m.Intercept, nil
}
