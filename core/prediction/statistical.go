package prediction

import (
	"context"
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"
)

const (
	statisticalHistoryLimit = 50

	// Defaults when no usable history exists: assume the spot is free.
	noHistoryConfidence  = 0.5
	noSameHourConfidence = 0.3
)

// StatisticalPredictor forecasts availability from the fraction of occupied
// records observed at the current hour. It never fails on missing data.
type StatisticalPredictor struct {
	history HistorySource
	now     func() time.Time
}

// NewStatisticalPredictor builds a predictor reading from the given source.
func NewStatisticalPredictor(history HistorySource) *StatisticalPredictor {
	return &StatisticalPredictor{history: history, now: time.Now}
}

// WithClock overrides the time source, for tests.
func (p *StatisticalPredictor) WithClock(now func() time.Time) *StatisticalPredictor {
	p.now = now
	return p
}

// Predict implements Predictor.
func (p *StatisticalPredictor) Predict(ctx context.Context, spotID int64, hoursAhead int) (Prediction, error) {
	records, err := p.history.RecentHistory(ctx, spotID, statisticalHistoryLimit)
	if err != nil {
		return Prediction{}, fmt.Errorf("fetch history: %w", err)
	}
	if len(records) == 0 {
		return Prediction{PredictedAvailable: true, Confidence: noHistoryConfidence}, nil
	}

	hour := p.now().Hour()
	var sameHour []float64
	for _, rec := range records {
		if rec.Timestamp.Hour() != hour {
			continue
		}
		v := 0.0
		if rec.Occupied {
			v = 1.0
		}
		sameHour = append(sameHour, v)
	}
	if len(sameHour) == 0 {
		return Prediction{PredictedAvailable: true, Confidence: noSameHourConfidence}, nil
	}

	avgOccupancy := stat.Mean(sameHour, nil)
	confidence := float64(len(sameHour)) / 10
	if confidence > 0.9 {
		confidence = 0.9
	}
	return Prediction{
		PredictedAvailable: avgOccupancy < 0.5,
		Confidence:         confidence,
		OccupancyRate:      &avgOccupancy,
	}, nil
}

var _ Predictor = (*StatisticalPredictor)(nil)
