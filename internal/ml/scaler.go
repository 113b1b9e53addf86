// Package ml holds the small numeric models the scoring pipeline trains
// and loads: a column standardizer, a k-means clusterer, and a linear
// predictor. Models are plain structs so they serialize to JSON as-is.
package ml

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler standardizes feature columns to zero mean and unit
// variance, fitted on a training batch.
type StandardScaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// FitScaler fits a scaler on the columns of X
func FitScaler(x [][]float64) (*StandardScaler, error) {
	if len(x) == 0 || len(x[0]) == 0 {
		return nil, ErrEmptyMatrix
	}
	dims := len(x[0])
	for _, row := range x {
		if len(row) != dims {
			return nil, fmt.Errorf("%w: ragged matrix", ErrDimensionMismatch)
		}
	}

	s := &StandardScaler{
		Mean: make([]float64, dims),
		Std:  make([]float64, dims),
	}
	col := make([]float64, len(x))
	for j := 0; j < dims; j++ {
		for i, row := range x {
			col[i] = row[j]
		}
		s.Mean[j] = stat.Mean(col, nil)
		s.Std[j] = stat.PopStdDev(col, nil)
		// Zero-variance columns pass through unscaled.
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
	return s, nil
}

// Transform standardizes a single feature vector
func (s *StandardScaler) Transform(v []float64) ([]float64, error) {
	if len(v) != len(s.Mean) {
		return nil, fmt.Errorf("%w: got %d features, scaler fitted on %d",
			ErrDimensionMismatch, len(v), len(s.Mean))
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = (x - s.Mean[i]) / s.Std[i]
	}
	return out, nil
}

// TransformMatrix standardizes every row of X
func (s *StandardScaler) TransformMatrix(x [][]float64) ([][]float64, error) {
	out := make([][]float64, len(x))
	for i, row := range x {
		scaled, err := s.Transform(row)
		if err != nil {
			return nil, err
		}
		out[i] = scaled
	}
	return out, nil
}
