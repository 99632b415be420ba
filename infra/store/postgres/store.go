// Package postgres implements the storage interface on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tbaudier/parkwatch/core/model"
	"github.com/tbaudier/parkwatch/core/storage"
)

// Store wraps a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

var _ storage.Store = (*Store)(nil)

// New connects to the database and ensures the schema exists.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	s := &Store{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the pool resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const listSpotsSQL = `
    SELECT id, spot_number, is_occupied, coordinates, last_updated, area_id
    FROM parking_spots
    ORDER BY id
`

func (s *Store) ListSpots(ctx context.Context) ([]model.Spot, error) {
	rows, err := s.pool.Query(ctx, listSpotsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSpots(rows)
}

const getSpotSQL = `
    SELECT id, spot_number, is_occupied, coordinates, last_updated, area_id
    FROM parking_spots
    WHERE id = $1
`

func (s *Store) GetSpot(ctx context.Context, id int64) (model.Spot, error) {
	return s.querySpot(ctx, getSpotSQL, id)
}

const getSpotByNumberSQL = `
    SELECT id, spot_number, is_occupied, coordinates, last_updated, area_id
    FROM parking_spots
    WHERE upper(spot_number) = upper($1)
`

func (s *Store) GetSpotByNumber(ctx context.Context, number string) (model.Spot, error) {
	return s.querySpot(ctx, getSpotByNumberSQL, number)
}

func (s *Store) querySpot(ctx context.Context, sql string, arg any) (model.Spot, error) {
	var (
		spot   model.Spot
		coords string
	)
	err := s.pool.QueryRow(ctx, sql, arg).Scan(
		&spot.ID, &spot.Number, &spot.Occupied, &coords, &spot.LastUpdated, &spot.AreaID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Spot{}, model.ErrNotFound
	}
	if err != nil {
		return model.Spot{}, err
	}
	if spot.Coordinates, err = model.ParseBBox(coords); err != nil {
		return model.Spot{}, err
	}
	return spot, nil
}

const updateSpotSQL = `
    UPDATE parking_spots SET is_occupied = $2, last_updated = $3 WHERE id = $1
`

func (s *Store) UpdateSpot(ctx context.Context, id int64, occupied bool, updatedAt time.Time) error {
	tag, err := s.pool.Exec(ctx, updateSpotSQL, id, occupied, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

const appendHistorySQL = `
    INSERT INTO parking_history (spot_id, occupied, ts, duration_minutes)
    VALUES ($1, $2, $3, $4)
`

func (s *Store) AppendHistory(ctx context.Context, rec model.HistoryRecord) error {
	_, err := s.pool.Exec(ctx, appendHistorySQL, rec.SpotID, rec.Occupied, rec.Timestamp, rec.DurationMinutes)
	return err
}

const recentHistorySQL = `
    SELECT id, spot_id, occupied, ts, duration_minutes
    FROM parking_history
    WHERE spot_id = $1
    ORDER BY ts DESC
    LIMIT $2
`

func (s *Store) RecentHistory(ctx context.Context, spotID int64, limit int) ([]model.HistoryRecord, error) {
	rows, err := s.pool.Query(ctx, recentHistorySQL, spotID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]model.HistoryRecord, 0, limit)
	for rows.Next() {
		var rec model.HistoryRecord
		if err := rows.Scan(&rec.ID, &rec.SpotID, &rec.Occupied, &rec.Timestamp, &rec.DurationMinutes); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

const getLotSQL = `
    SELECT id, name, total_spots, available_spots, base_price, current_price
    FROM parking_lots
    ORDER BY id
    LIMIT 1
`

func (s *Store) GetLot(ctx context.Context) (model.Lot, error) {
	var lot model.Lot
	err := s.pool.QueryRow(ctx, getLotSQL).Scan(
		&lot.ID, &lot.Name, &lot.TotalSpots, &lot.AvailableSpots, &lot.BasePrice, &lot.CurrentPrice,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Lot{}, model.ErrNoLot
	}
	if err != nil {
		return model.Lot{}, err
	}
	return lot, nil
}

func (s *Store) UpdateLotAvailability(ctx context.Context, id int64, available int) error {
	tag, err := s.pool.Exec(ctx, `UPDATE parking_lots SET available_spots = $2 WHERE id = $1`, id, available)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNoLot
	}
	return nil
}

func (s *Store) UpdateLotPrice(ctx context.Context, id int64, price float64) error {
	tag, err := s.pool.Exec(ctx, `UPDATE parking_lots SET current_price = $2 WHERE id = $1`, id, price)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNoLot
	}
	return nil
}

const listAreasSQL = `
    SELECT id, name, description, x_position, y_position, width, height,
           latitude, longitude, zoom_level
    FROM parking_areas
    ORDER BY id
`

func (s *Store) ListAreas(ctx context.Context) ([]model.Area, error) {
	rows, err := s.pool.Query(ctx, listAreasSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	areas := make([]model.Area, 0)
	for rows.Next() {
		var a model.Area
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Description, &a.XPosition, &a.YPosition,
			&a.Width, &a.Height, &a.Latitude, &a.Longitude, &a.ZoomLevel,
		); err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

const listSpotsByAreaSQL = `
    SELECT id, spot_number, is_occupied, coordinates, last_updated, area_id
    FROM parking_spots
    WHERE area_id = $1
    ORDER BY id
`

func (s *Store) ListSpotsByArea(ctx context.Context, areaID int64) ([]model.Spot, error) {
	rows, err := s.pool.Query(ctx, listSpotsByAreaSQL, areaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSpots(rows)
}

func scanSpots(rows pgx.Rows) ([]model.Spot, error) {
	spots := make([]model.Spot, 0)
	for rows.Next() {
		var (
			spot   model.Spot
			coords string
		)
		if err := rows.Scan(&spot.ID, &spot.Number, &spot.Occupied, &coords, &spot.LastUpdated, &spot.AreaID); err != nil {
			return nil, err
		}
		box, err := model.ParseBBox(coords)
		if err != nil {
			return nil, err
		}
		spot.Coordinates = box
		spots = append(spots, spot)
	}
	return spots, rows.Err()
}
