// Package prediction forecasts spot availability from recorded transitions.
// A statistical predictor is always available; an optional text-completion
// backed predictor refines it and degrades back silently on any failure.
package prediction

import (
	"context"

	"github.com/tbaudier/parkwatch/core/model"
)

// Prediction is an availability forecast for one spot.
type Prediction struct {
	SpotID             int64    `json:"spot_id,omitempty"`
	SpotNumber         string   `json:"spot_number,omitempty"`
	PredictedAvailable bool     `json:"predicted_available"`
	Confidence         float64  `json:"confidence"`
	OccupancyRate      *float64 `json:"occupancy_rate,omitempty"`
	Reasoning          string   `json:"reasoning,omitempty"`
	AIPowered          bool     `json:"ai_powered,omitempty"`
	Model              string   `json:"model,omitempty"`
}

// Predictor forecasts whether a spot will be available hoursAhead from now.
type Predictor interface {
	Predict(ctx context.Context, spotID int64, hoursAhead int) (Prediction, error)
}

// HistorySource provides the recent transition records a predictor reads.
type HistorySource interface {
	RecentHistory(ctx context.Context, spotID int64, limit int) ([]model.HistoryRecord, error)
}
