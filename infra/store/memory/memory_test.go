package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbaudier/parkwatch/core/model"
)

func TestSpotLookups(t *testing.T) {
	s := New()
	ctx := context.Background()
	added := s.AddSpot(model.Spot{Number: "DM01"})

	got, err := s.GetSpot(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "DM01", got.Number)

	got, err = s.GetSpotByNumber(ctx, "dm01")
	require.NoError(t, err)
	assert.Equal(t, added.ID, got.ID)

	_, err = s.GetSpot(ctx, 999)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = s.GetSpotByNumber(ctx, "ZZ99")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUpdateSpot(t *testing.T) {
	s := New()
	ctx := context.Background()
	added := s.AddSpot(model.Spot{Number: "DM01"})
	ts := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.UpdateSpot(ctx, added.ID, true, ts))
	got, err := s.GetSpot(ctx, added.ID)
	require.NoError(t, err)
	assert.True(t, got.Occupied)
	assert.Equal(t, ts, got.LastUpdated)

	assert.ErrorIs(t, s.UpdateSpot(ctx, 999, true, ts), model.ErrNotFound)
}

func TestRecentHistoryNewestFirst(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.AppendHistory(ctx, model.HistoryRecord{
			SpotID:    1,
			Occupied:  i%2 == 0,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, s.AppendHistory(ctx, model.HistoryRecord{SpotID: 2, Timestamp: base}))

	recs, err := s.RecentHistory(ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.True(t, recs[0].Timestamp.After(recs[1].Timestamp))
	assert.True(t, recs[1].Timestamp.After(recs[2].Timestamp))
	for _, r := range recs {
		assert.Equal(t, int64(1), r.SpotID)
	}
}

func TestLotLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.GetLot(ctx)
	assert.ErrorIs(t, err, model.ErrNoLot)

	s.SetLot(model.Lot{Name: "Test Lot", TotalSpots: 10, AvailableSpots: 10, BasePrice: 2})
	lot, err := s.GetLot(ctx)
	require.NoError(t, err)

	require.NoError(t, s.UpdateLotAvailability(ctx, lot.ID, 4))
	require.NoError(t, s.UpdateLotPrice(ctx, lot.ID, 2.64))
	lot, err = s.GetLot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, lot.AvailableSpots)
	assert.Equal(t, 2.64, lot.CurrentPrice)
}

func TestSeededDataset(t *testing.T) {
	s := Seeded()
	ctx := context.Background()

	areas, err := s.ListAreas(ctx)
	require.NoError(t, err)
	assert.Len(t, areas, 10)

	spots, err := s.ListSpots(ctx)
	require.NoError(t, err)
	assert.Len(t, spots, 48)

	lot, err := s.GetLot(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(spots), lot.TotalSpots)

	free := 0
	for _, sp := range spots {
		if !sp.Occupied {
			free++
		}
	}
	assert.Equal(t, free, lot.AvailableSpots)

	byArea, err := s.ListSpotsByArea(ctx, areas[0].ID)
	require.NoError(t, err)
	assert.Len(t, byArea, 4)
}
