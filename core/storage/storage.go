// Package storage defines the persistence interface the tick pipeline and
// the HTTP layer depend on. Implementations live under infra/store.
package storage

import (
	"context"
	"time"

	"github.com/tbaudier/parkwatch/core/model"
)

// Store is the full persistence surface. All methods are synchronous; any
// failure is returned as-is and aborts the caller's current step.
//
// Lookup methods return model.ErrNotFound (wrapped or bare) when the entity
// does not exist, and GetLot returns model.ErrNoLot when no lot row has been
// seeded.
type Store interface {
	SpotStore
	HistoryStore
	LotStore
	AreaStore
}

// SpotStore accesses individual parking spots.
type SpotStore interface {
	ListSpots(ctx context.Context) ([]model.Spot, error)
	GetSpot(ctx context.Context, id int64) (model.Spot, error)
	GetSpotByNumber(ctx context.Context, number string) (model.Spot, error)
	UpdateSpot(ctx context.Context, id int64, occupied bool, updatedAt time.Time) error
}

// HistoryStore appends and queries occupancy transition records.
type HistoryStore interface {
	AppendHistory(ctx context.Context, rec model.HistoryRecord) error
	// RecentHistory returns up to limit records for the spot, newest first.
	RecentHistory(ctx context.Context, spotID int64, limit int) ([]model.HistoryRecord, error)
}

// LotStore accesses the single lot aggregate.
type LotStore interface {
	GetLot(ctx context.Context) (model.Lot, error)
	UpdateLotAvailability(ctx context.Context, id int64, available int) error
	UpdateLotPrice(ctx context.Context, id int64, price float64) error
}

// AreaStore lists parking areas.
type AreaStore interface {
	ListAreas(ctx context.Context) ([]model.Area, error)
	ListSpotsByArea(ctx context.Context, areaID int64) ([]model.Spot, error)
}
