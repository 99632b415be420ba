package memory

import (
	"math/rand"
	"time"

	"github.com/tbaudier/parkwatch/infra/store/seed"
)

// Seeded returns a Store populated with the city fixtures, used by demo mode
// and tests that want a realistic dataset without a database.
func Seeded() *Store {
	s := New()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	total, available := 0, 0
	for _, as := range seed.Areas() {
		area := s.AddArea(as.Area)
		for _, spot := range seed.Spots(area, as.SpotCount, rng) {
			spot.LastUpdated = time.Now().UTC()
			added := s.AddSpot(spot)
			total++
			if !added.Occupied {
				available++
			}
		}
	}

	lot := seed.Lot()
	lot.TotalSpots = total
	lot.AvailableSpots = available
	s.SetLot(lot)
	return s
}
