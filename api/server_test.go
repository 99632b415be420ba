package api

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbaudier/parkwatch/core/detector"
	"github.com/tbaudier/parkwatch/core/model"
	"github.com/tbaudier/parkwatch/core/prediction"
	"github.com/tbaudier/parkwatch/core/tick"
	"github.com/tbaudier/parkwatch/infra/logger"
	"github.com/tbaudier/parkwatch/infra/store/memory"
)

// stubPredictor returns canned predictions keyed by spot ID.
type stubPredictor struct {
	preds map[int64]prediction.Prediction
}

func (p stubPredictor) Predict(_ context.Context, spotID int64, _ int) (prediction.Prediction, error) {
	if pred, ok := p.preds[spotID]; ok {
		return pred, nil
	}
	return prediction.Prediction{PredictedAvailable: true, Confidence: 0.5}, nil
}

func newTestStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.New()
	area := s.AddArea(model.Area{Name: "Downtown Mall", XPosition: 50, YPosition: 80, Width: 200, Height: 100})
	for _, n := range []string{"DM01", "DM02"} {
		s.AddSpot(model.Spot{Number: n, Coordinates: model.DefaultBBox, AreaID: &area.ID})
	}
	s.SetLot(model.Lot{
		Name:           "Smart City Parking Network",
		TotalSpots:     2,
		AvailableSpots: 2,
		BasePrice:      2.0,
		CurrentPrice:   2.0,
	})
	return s
}

func newTestServer(t *testing.T, store *memory.Store, predictor prediction.Predictor) *Server {
	t.Helper()
	det := detector.New(
		detector.WithRand(rand.New(rand.NewSource(7))),
		detector.WithClock(func() time.Time {
			return time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
		}),
	)
	coord := tick.New(store, det, nil, nil, logger.NopLogger{})
	if predictor == nil {
		predictor = stubPredictor{}
	}
	return New(":0", store, coord, predictor, nil, logger.NopLogger{})
}

func doRequest(t *testing.T, s *Server, method, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)

	var body map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func TestStatusWithoutLot(t *testing.T) {
	store := memory.New()
	store.AddSpot(model.Spot{Number: "DM01"})
	s := newTestServer(t, store, nil)

	w, body := doRequest(t, s, http.MethodGet, "/api/status")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, body["error"], "no parking lot")
}

func TestStatus(t *testing.T) {
	s := newTestServer(t, newTestStore(t), nil)

	w, body := doRequest(t, s, http.MethodGet, "/api/status")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Smart City Parking Network", body["lot_name"])
	assert.Equal(t, float64(2), body["total_spots"])
	assert.Equal(t, float64(2), body["available_spots"])
	assert.Equal(t, 0.0, body["occupancy_rate"])

	stats, ok := body["area_stats"].([]any)
	require.True(t, ok)
	require.Len(t, stats, 1)
	first := stats[0].(map[string]any)
	assert.Equal(t, "Downtown Mall", first["name"])
	assert.Equal(t, float64(2), first["total"])
}

func TestUpdateRunsTick(t *testing.T) {
	store := newTestStore(t)
	s := newTestServer(t, store, nil)

	w, body := doRequest(t, s, http.MethodPost, "/api/update")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, body["tick_id"])
	assert.Contains(t, body, "total_available")
	assert.Contains(t, body, "current_price")

	// Lot aggregates must match the spot state after the tick.
	lot, err := store.GetLot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int(body["total_available"].(float64)), lot.AvailableSpots)
}

func TestPredictByNumberLowercase(t *testing.T) {
	store := newTestStore(t)
	s := newTestServer(t, store, stubPredictor{preds: map[int64]prediction.Prediction{
		1: {PredictedAvailable: true, Confidence: 0.8},
	}})

	w, body := doRequest(t, s, http.MethodGet, "/api/predict-by-number/dm01")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DM01", body["spot_number"])
	assert.Equal(t, true, body["predicted_available"])
	assert.Equal(t, 0.8, body["confidence"])
}

func TestPredictByNumberNumericFallback(t *testing.T) {
	s := newTestServer(t, newTestStore(t), nil)

	w, body := doRequest(t, s, http.MethodGet, "/api/predict-by-number/2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), body["spot_id"])
	assert.Equal(t, "DM02", body["spot_number"])
}

func TestPredictByNumberUnknownListsSpots(t *testing.T) {
	s := newTestServer(t, newTestStore(t), nil)

	w, body := doRequest(t, s, http.MethodGet, "/api/predict-by-number/ZZ99")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, body["error"], "ZZ99")
	known, ok := body["known_spots"].([]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"DM01", "DM02"}, known)
}

func TestPredictUnknownID(t *testing.T) {
	s := newTestServer(t, newTestStore(t), nil)

	w, _ := doRequest(t, s, http.MethodGet, "/api/predict/999")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFindParkingRanksByScore(t *testing.T) {
	store := memory.New()
	area := store.AddArea(model.Area{Name: "Downtown Mall"})
	// B-numbered spots rely on confidence alone; A-numbered spots get a
	// proximity bonus.
	b1 := store.AddSpot(model.Spot{Number: "B1", AreaID: &area.ID})
	a1 := store.AddSpot(model.Spot{Number: "A1", AreaID: &area.ID})
	b2 := store.AddSpot(model.Spot{Number: "B2", AreaID: &area.ID})
	b3 := store.AddSpot(model.Spot{Number: "B3", AreaID: &area.ID})
	store.SetLot(model.Lot{Name: "Lot", TotalSpots: 4, AvailableSpots: 4, BasePrice: 2})

	s := newTestServer(t, store, stubPredictor{preds: map[int64]prediction.Prediction{
		b1.ID: {PredictedAvailable: true, Confidence: 0.9}, // 9.0
		a1.ID: {PredictedAvailable: true, Confidence: 0.5}, // 5 + 5 = 10.0
		b2.ID: {PredictedAvailable: true, Confidence: 0.7}, // 7.0
		b3.ID: {PredictedAvailable: true, Confidence: 0.1}, // 1.0, cut from top 3
	}})

	w, body := doRequest(t, s, http.MethodGet, "/api/find-parking")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(4), body["total_available"])

	recs, ok := body["recommended_spots"].([]any)
	require.True(t, ok)
	require.Len(t, recs, 3)
	order := make([]string, 0, 3)
	for _, r := range recs {
		spot := r.(map[string]any)["spot"].(map[string]any)
		order = append(order, spot["spot_number"].(string))
	}
	assert.Equal(t, []string{"A1", "B1", "B2"}, order)
}

func TestFindParkingNoneAvailable(t *testing.T) {
	store := memory.New()
	spot := store.AddSpot(model.Spot{Number: "DM01"})
	require.NoError(t, store.UpdateSpot(context.Background(), spot.ID, true, time.Now()))
	s := newTestServer(t, store, nil)

	w, body := doRequest(t, s, http.MethodGet, "/api/find-parking")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no available spots", body["message"])
}

func TestPricingHistory(t *testing.T) {
	s := newTestServer(t, newTestStore(t), nil)

	w, body := doRequest(t, s, http.MethodGet, "/api/pricing/history")
	require.Equal(t, http.StatusOK, w.Code)
	entries, ok := body["pricing_history"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 24)
	first := entries[0].(map[string]any)
	assert.Contains(t, first, "hour")
	assert.Contains(t, first, "price")
	assert.GreaterOrEqual(t, first["price"].(float64), 0.8*2.0)
}

func TestMap(t *testing.T) {
	s := newTestServer(t, newTestStore(t), nil)

	w, body := doRequest(t, s, http.MethodGet, "/api/map")
	require.Equal(t, http.StatusOK, w.Code)
	center, ok := body["center"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 40.7128, center["latitude"])
	areas, ok := body["areas"].([]any)
	require.True(t, ok)
	require.Len(t, areas, 1)
	first := areas[0].(map[string]any)
	assert.Equal(t, float64(2), first["total"])
	assert.Equal(t, float64(2), first["available"])
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, newTestStore(t), nil)
	w, body := doRequest(t, s, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestDashboardServesHTML(t *testing.T) {
	s := newTestServer(t, newTestStore(t), nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Smart City Parking Network")
}
