package core

import (
	"context"
)

// Fixed artifact names used by the trainer and the scorers.
const (
	// ScoreModelName is the regression model used to enhance the score
	ScoreModelName = "consistency_model"
	// ClusterModelName is the attendance-profile clustering model
	ClusterModelName = "consistency_clusters"
	// ScalerName is the feature scaler fitted alongside the models
	ScalerName = "consistency_scaler"
)

// EventSource defines the interface for reading the RFID scan log
type EventSource interface {
	// EventsFor returns all scan events for an identifier, matched case-insensitively
	EventsFor(ctx context.Context, identifier string) ([]ScanEvent, error)

	// Members returns the distinct identifiers with their raw scan counts, sorted
	Members(ctx context.Context) ([]MemberRecord, error)

	// Identifiers returns the distinct identifiers, sorted
	Identifiers(ctx context.Context) ([]string, error)
}

// Predictor maps an encoded feature vector to a scalar prediction
type Predictor interface {
	Predict(features []float64) (float64, error)
}

// Scaler transforms a raw feature vector into standardized space
type Scaler interface {
	Transform(features []float64) ([]float64, error)
}

// ModelStore defines the interface for persisting trained artifacts.
// A missing artifact is a normal state, reported as ErrModelUnavailable.
type ModelStore interface {
	// LoadPredictor loads a predictor by name
	LoadPredictor(ctx context.Context, name string) (Predictor, error)

	// SavePredictor persists a predictor under a name
	SavePredictor(ctx context.Context, name string, p Predictor) error

	// LoadScaler loads a feature scaler by name
	LoadScaler(ctx context.Context, name string) (Scaler, error)

	// SaveScaler persists a feature scaler under a name
	SaveScaler(ctx context.Context, name string, s Scaler) error
}
