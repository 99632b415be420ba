// Package memory provides an in-process Store implementation used by tests
// and by demo mode when no database URL is configured.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tbaudier/parkwatch/core/model"
	"github.com/tbaudier/parkwatch/core/storage"
)

// Store keeps all entities in memory behind a single mutex.
type Store struct {
	mu      sync.RWMutex
	spots   map[int64]model.Spot
	history []model.HistoryRecord
	areas   map[int64]model.Area
	lot     *model.Lot

	nextSpotID    int64
	nextHistoryID int64
	nextAreaID    int64
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		spots:         make(map[int64]model.Spot),
		areas:         make(map[int64]model.Area),
		nextSpotID:    1,
		nextHistoryID: 1,
		nextAreaID:    1,
	}
}

var _ storage.Store = (*Store)(nil)

// AddArea inserts an area and assigns its ID.
func (s *Store) AddArea(area model.Area) model.Area {
	s.mu.Lock()
	defer s.mu.Unlock()
	area.ID = s.nextAreaID
	s.nextAreaID++
	s.areas[area.ID] = area
	return area
}

// AddSpot inserts a spot and assigns its ID.
func (s *Store) AddSpot(spot model.Spot) model.Spot {
	s.mu.Lock()
	defer s.mu.Unlock()
	spot.ID = s.nextSpotID
	s.nextSpotID++
	s.spots[spot.ID] = spot
	return spot
}

// SetLot installs the single lot aggregate.
func (s *Store) SetLot(lot model.Lot) model.Lot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lot.ID == 0 {
		lot.ID = 1
	}
	s.lot = &lot
	return lot
}

func (s *Store) ListSpots(context.Context) ([]model.Spot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Spot, 0, len(s.spots))
	for _, spot := range s.spots {
		out = append(out, spot)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetSpot(_ context.Context, id int64) (model.Spot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	spot, ok := s.spots[id]
	if !ok {
		return model.Spot{}, model.ErrNotFound
	}
	return spot, nil
}

func (s *Store) GetSpotByNumber(_ context.Context, number string) (model.Spot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, spot := range s.spots {
		if strings.EqualFold(spot.Number, number) {
			return spot, nil
		}
	}
	return model.Spot{}, model.ErrNotFound
}

func (s *Store) UpdateSpot(_ context.Context, id int64, occupied bool, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	spot, ok := s.spots[id]
	if !ok {
		return model.ErrNotFound
	}
	spot.Occupied = occupied
	spot.LastUpdated = updatedAt
	s.spots[id] = spot
	return nil
}

func (s *Store) AppendHistory(_ context.Context, rec model.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.nextHistoryID
	s.nextHistoryID++
	s.history = append(s.history, rec)
	return nil
}

func (s *Store) RecentHistory(_ context.Context, spotID int64, limit int) ([]model.HistoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.HistoryRecord
	for i := len(s.history) - 1; i >= 0 && len(out) < limit; i-- {
		if s.history[i].SpotID == spotID {
			out = append(out, s.history[i])
		}
	}
	return out, nil
}

// HistoryLen reports the total number of history records, for tests.
func (s *Store) HistoryLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

func (s *Store) GetLot(context.Context) (model.Lot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lot == nil {
		return model.Lot{}, model.ErrNoLot
	}
	return *s.lot, nil
}

func (s *Store) UpdateLotAvailability(_ context.Context, id int64, available int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lot == nil || s.lot.ID != id {
		return model.ErrNoLot
	}
	s.lot.AvailableSpots = available
	return nil
}

func (s *Store) UpdateLotPrice(_ context.Context, id int64, price float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lot == nil || s.lot.ID != id {
		return model.ErrNoLot
	}
	s.lot.CurrentPrice = price
	return nil
}

func (s *Store) ListAreas(context.Context) ([]model.Area, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Area, 0, len(s.areas))
	for _, area := range s.areas {
		out = append(out, area)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListSpotsByArea(_ context.Context, areaID int64) ([]model.Spot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Spot
	for _, spot := range s.spots {
		if spot.AreaID != nil && *spot.AreaID == areaID {
			out = append(out, spot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
