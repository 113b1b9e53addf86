package ml

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// KMeans is a fitted k-means partitioning model. Predict reports the
// index of the nearest centroid, so the model satisfies the same
// predictor contract as a regression model.
type KMeans struct {
	Centroids [][]float64 `json:"centroids"`
}

// FitKMeans runs Lloyd's algorithm over X with k clusters. The seed fixes
// centroid initialization so training is reproducible.
func FitKMeans(x [][]float64, k int, seed int64, maxIterations int) (*KMeans, error) {
	if len(x) == 0 {
		return nil, ErrEmptyMatrix
	}
	if k <= 0 || len(x) < k {
		return nil, fmt.Errorf("%w: %d samples, %d clusters", ErrTooFewSamples, len(x), k)
	}
	dims := len(x[0])
	for _, row := range x {
		if len(row) != dims {
			return nil, fmt.Errorf("%w: ragged matrix", ErrDimensionMismatch)
		}
	}

	// Initialize centroids from k distinct samples.
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(x))
	centroids := make([][]float64, k)
	for i := 0; i < k; i++ {
		centroids[i] = append([]float64(nil), x[perm[i]]...)
	}

	assignments := make([]int, len(x))
	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, row := range x {
			best := nearestCentroid(centroids, row)
			if best != assignments[i] {
				assignments[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		// Recompute centroids; empty clusters keep their previous position.
		sums := make([][]float64, k)
		counts := make([]int, k)
		for i := range sums {
			sums[i] = make([]float64, dims)
		}
		for i, row := range x {
			floats.Add(sums[assignments[i]], row)
			counts[assignments[i]]++
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue
			}
			floats.Scale(1/float64(counts[c]), sums[c])
			centroids[c] = sums[c]
		}
	}

	return &KMeans{Centroids: centroids}, nil
}

// Assign returns the index of the centroid nearest to v
func (m *KMeans) Assign(v []float64) (int, error) {
	if len(m.Centroids) == 0 {
		return 0, ErrEmptyMatrix
	}
	if len(v) != len(m.Centroids[0]) {
		return 0, fmt.Errorf("%w: got %d features, model fitted on %d",
			ErrDimensionMismatch, len(v), len(m.Centroids[0]))
	}
	return nearestCentroid(m.Centroids, v), nil
}

// Predict reports the nearest cluster index as a float
func (m *KMeans) Predict(v []float64) (float64, error) {
	cluster, err := m.Assign(v)
	if err != nil {
		return 0, err
	}
	return float64(cluster), nil
}

func nearestCentroid(centroids [][]float64, v []float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, c := range centroids {
		d := floats.Distance(c, v, 2)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
