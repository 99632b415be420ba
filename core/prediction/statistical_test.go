package prediction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbaudier/parkwatch/core/model"
)

type stubHistory struct {
	records []model.HistoryRecord
	err     error
}

func (s stubHistory) RecentHistory(_ context.Context, _ int64, limit int) ([]model.HistoryRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.records) > limit {
		return s.records[:limit], nil
	}
	return s.records, nil
}

func tenOClock() time.Time {
	return time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
}

func recordAt(hour int, occupied bool) model.HistoryRecord {
	return model.HistoryRecord{
		Occupied:  occupied,
		Timestamp: time.Date(2025, 6, 1, hour, 12, 0, 0, time.UTC),
	}
}

func TestStatisticalNoHistory(t *testing.T) {
	p := NewStatisticalPredictor(stubHistory{}).WithClock(tenOClock)
	pred, err := p.Predict(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.True(t, pred.PredictedAvailable)
	assert.Equal(t, 0.5, pred.Confidence)
	assert.Nil(t, pred.OccupancyRate)
	assert.False(t, pred.AIPowered)
}

func TestStatisticalNoSameHourHistory(t *testing.T) {
	src := stubHistory{records: []model.HistoryRecord{
		recordAt(3, true), recordAt(4, true), recordAt(22, false),
	}}
	p := NewStatisticalPredictor(src).WithClock(tenOClock)
	pred, err := p.Predict(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.True(t, pred.PredictedAvailable)
	assert.Equal(t, 0.3, pred.Confidence)
}

func TestStatisticalSameHourMajorityOccupied(t *testing.T) {
	src := stubHistory{records: []model.HistoryRecord{
		recordAt(10, true), recordAt(10, true), recordAt(10, true), recordAt(10, false),
		recordAt(8, false),
	}}
	p := NewStatisticalPredictor(src).WithClock(tenOClock)
	pred, err := p.Predict(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.False(t, pred.PredictedAvailable)
	assert.InDelta(t, 0.4, pred.Confidence, 1e-9) // 4 samples / 10
	require.NotNil(t, pred.OccupancyRate)
	assert.InDelta(t, 0.75, *pred.OccupancyRate, 1e-9)
}

func TestStatisticalConfidenceCapped(t *testing.T) {
	var records []model.HistoryRecord
	for i := 0; i < 30; i++ {
		records = append(records, recordAt(10, i%2 == 0))
	}
	p := NewStatisticalPredictor(stubHistory{records: records}).WithClock(tenOClock)
	pred, err := p.Predict(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.9, pred.Confidence)
}

func TestStatisticalPropagatesStorageError(t *testing.T) {
	p := NewStatisticalPredictor(stubHistory{err: errors.New("connection refused")})
	_, err := p.Predict(context.Background(), 1, 1)
	assert.Error(t, err)
}
