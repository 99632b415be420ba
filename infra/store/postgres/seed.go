package postgres

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/tbaudier/parkwatch/infra/store/seed"
)

// Seed populates an empty database with the city fixtures. Existing data is
// left untouched so restarting the service never duplicates areas or spots.
func (s *Store) Seed(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var spotCount int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM parking_spots`).Scan(&spotCount); err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if spotCount == 0 {
		for _, as := range seed.Areas() {
			area := as.Area
			err := tx.QueryRow(ctx, `
                INSERT INTO parking_areas (name, description, x_position, y_position, width, height, latitude, longitude, zoom_level)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                RETURNING id`,
				area.Name, area.Description, area.XPosition, area.YPosition,
				area.Width, area.Height, area.Latitude, area.Longitude, area.ZoomLevel,
			).Scan(&area.ID)
			if err != nil {
				return fmt.Errorf("insert area %s: %w", area.Name, err)
			}
			for _, spot := range seed.Spots(area, as.SpotCount, rng) {
				_, err := tx.Exec(ctx, `
                    INSERT INTO parking_spots (spot_number, is_occupied, coordinates, last_updated, area_id)
                    VALUES ($1, $2, $3, now(), $4)`,
					spot.Number, spot.Occupied, spot.Coordinates.String(), spot.AreaID,
				)
				if err != nil {
					return fmt.Errorf("insert spot %s: %w", spot.Number, err)
				}
			}
		}
	}

	var lotCount int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM parking_lots`).Scan(&lotCount); err != nil {
		return err
	}
	if lotCount == 0 {
		lot := seed.Lot()
		if _, err := tx.Exec(ctx, `
            INSERT INTO parking_lots (name, base_price, current_price)
            VALUES ($1, $2, $3)`,
			lot.Name, lot.BasePrice, lot.CurrentPrice,
		); err != nil {
			return fmt.Errorf("insert lot: %w", err)
		}
	}

	// Keep the lot counts consistent with whatever spots exist now.
	if _, err := tx.Exec(ctx, `
        UPDATE parking_lots SET
            total_spots = (SELECT count(*) FROM parking_spots),
            available_spots = (SELECT count(*) FROM parking_spots WHERE NOT is_occupied)`,
	); err != nil {
		return fmt.Errorf("update lot counts: %w", err)
	}

	return tx.Commit(ctx)
}
