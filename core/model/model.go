// Package model defines the domain entities shared by the core packages:
// parking areas, spots, history records and the lot aggregate.
package model

import "time"

// Area is a named group of parking spots with a percentage-based placement
// rectangle on the lot map and optional geographic coordinates.
type Area struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	XPosition   float64  `json:"x"`
	YPosition   float64  `json:"y"`
	Width       float64  `json:"width"`
	Height      float64  `json:"height"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	ZoomLevel   *int     `json:"zoom_level,omitempty"`
}

// Spot is a single trackable parking space. Occupied is mutated only by the
// tick coordinator when a detection disagrees with the stored state.
type Spot struct {
	ID          int64     `json:"id"`
	Number      string    `json:"spot_number"`
	Occupied    bool      `json:"is_occupied"`
	Coordinates BBox      `json:"coordinates"`
	LastUpdated time.Time `json:"last_updated"`
	AreaID      *int64    `json:"area_id,omitempty"`
}

// HistoryRecord captures one observed occupancy transition for a spot.
// Records are append-only; one record per transition, never per tick.
type HistoryRecord struct {
	ID              int64     `json:"id"`
	SpotID          int64     `json:"spot_id"`
	Occupied        bool      `json:"occupied"`
	Timestamp       time.Time `json:"timestamp"`
	DurationMinutes *int      `json:"duration,omitempty"`
}

// Lot aggregates all spots and carries the derived availability count and
// demand-responsive price. A single lot exists per deployment.
type Lot struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	TotalSpots     int     `json:"total_spots"`
	AvailableSpots int     `json:"available_spots"`
	BasePrice      float64 `json:"base_price"`
	CurrentPrice   float64 `json:"current_price"`
}

// DefaultBasePrice is the hourly price used when no lot row exists yet.
const DefaultBasePrice = 2.0

// Detection is one simulated sensor reading for a spot at tick time.
type Detection struct {
	SpotID     int64   `json:"spot_id"`
	Occupied   bool    `json:"occupied"`
	Confidence float64 `json:"confidence"`
	BBox       BBox    `json:"bbox"`
}

// SpotRef carries the minimal spot data the detector needs.
type SpotRef struct {
	ID          int64
	Coordinates BBox
	AreaID      *int64
}

// SpotUpdate summarises a single spot transition applied during a tick.
type SpotUpdate struct {
	SpotID     int64   `json:"spot_id"`
	SpotNumber string  `json:"spot_number"`
	Occupied   bool    `json:"occupied"`
	Confidence float64 `json:"confidence"`
	AreaID     *int64  `json:"area_id"`
}

// TickSummary is the result of one full pipeline run.
type TickSummary struct {
	TickID         string       `json:"tick_id"`
	Updates        []SpotUpdate `json:"updates"`
	TotalAvailable int          `json:"total_available"`
	CurrentPrice   float64      `json:"current_price"`
	Timestamp      time.Time    `json:"timestamp"`
}
