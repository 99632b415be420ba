package model

import "errors"

// ErrNotFound indicates a requested spot, area or lot does not exist.
var ErrNotFound = errors.New("not found")

// ErrNoLot indicates no lot row has been seeded yet. The tick pipeline
// treats this as "skip availability and pricing", not as a failure.
var ErrNoLot = errors.New("no parking lot configured")
