package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS parking_areas (
    id          BIGSERIAL PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    x_position  DOUBLE PRECISION NOT NULL,
    y_position  DOUBLE PRECISION NOT NULL,
    width       DOUBLE PRECISION NOT NULL,
    height      DOUBLE PRECISION NOT NULL,
    latitude    DOUBLE PRECISION,
    longitude   DOUBLE PRECISION,
    zoom_level  INTEGER
);

CREATE TABLE IF NOT EXISTS parking_spots (
    id           BIGSERIAL PRIMARY KEY,
    spot_number  TEXT NOT NULL UNIQUE,
    is_occupied  BOOLEAN NOT NULL DEFAULT FALSE,
    coordinates  TEXT NOT NULL DEFAULT '[0, 0, 100, 100]',
    last_updated TIMESTAMPTZ NOT NULL DEFAULT now(),
    area_id      BIGINT REFERENCES parking_areas(id)
);

CREATE TABLE IF NOT EXISTS parking_history (
    id               BIGSERIAL PRIMARY KEY,
    spot_id          BIGINT NOT NULL REFERENCES parking_spots(id),
    occupied         BOOLEAN NOT NULL,
    ts               TIMESTAMPTZ NOT NULL DEFAULT now(),
    duration_minutes INTEGER
);

CREATE INDEX IF NOT EXISTS idx_parking_history_spot_ts
    ON parking_history (spot_id, ts DESC);

CREATE TABLE IF NOT EXISTS parking_lots (
    id              BIGSERIAL PRIMARY KEY,
    name            TEXT NOT NULL,
    total_spots     INTEGER NOT NULL DEFAULT 0,
    available_spots INTEGER NOT NULL DEFAULT 0,
    base_price      DOUBLE PRECISION NOT NULL DEFAULT 2.0,
    current_price   DOUBLE PRECISION NOT NULL DEFAULT 2.0
);
`

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schemaSQL)
	return err
}
