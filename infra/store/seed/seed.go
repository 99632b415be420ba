// Package seed generates the initial city dataset: ten named areas with map
// rectangles and geographic coordinates, their spots, and the single lot.
// Both storage backends consume the same fixtures.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"

	"github.com/tbaudier/parkwatch/core/model"
)

// LotName is the seeded lot's display name.
const LotName = "Smart City Parking Network"

// AreaSeed is one area fixture plus the number of spots it receives.
type AreaSeed struct {
	Area      model.Area
	SpotCount int
}

func geo(lat, lon float64) (*float64, *float64) {
	return &lat, &lon
}

// Areas returns the ten seeded city areas. Airport and stadium areas are the
// largest, hospital and university areas medium, the rest small.
func Areas() []AreaSeed {
	mk := func(name, desc string, x, y, w, h, lat, lon float64) model.Area {
		la, lo := geo(lat, lon)
		zoom := 16
		return model.Area{
			Name: name, Description: desc,
			XPosition: x, YPosition: y, Width: w, Height: h,
			Latitude: la, Longitude: lo, ZoomLevel: &zoom,
		}
	}
	areas := []model.Area{
		mk("Downtown Mall", "Shopping center parking", 5, 5, 20, 15, 40.7128, -74.0060),
		mk("City Hospital", "Medical center parking", 30, 10, 18, 12, 40.7134, -74.0055),
		mk("University Campus", "Student & faculty parking", 55, 8, 22, 14, 40.7140, -74.0048),
		mk("Business District", "Office complex parking", 80, 12, 15, 10, 40.7145, -74.0040),
		mk("Residential Zone A", "Apartment complex parking", 8, 35, 16, 12, 40.7120, -74.0065),
		mk("Tech Park", "Technology companies parking", 35, 40, 20, 15, 40.7125, -74.0052),
		mk("Sports Complex", "Stadium & gym parking", 65, 38, 18, 13, 40.7135, -74.0042),
		mk("Airport Terminal", "Airport long-term parking", 10, 65, 25, 20, 40.7110, -74.0070),
		mk("Train Station", "Public transit parking", 45, 70, 20, 15, 40.7115, -74.0045),
		mk("Beach Resort", "Tourist area parking", 75, 68, 18, 16, 40.7105, -74.0035),
	}
	out := make([]AreaSeed, len(areas))
	for i, a := range areas {
		out[i] = AreaSeed{Area: a, SpotCount: spotCount(a.Name)}
	}
	return out
}

func spotCount(areaName string) int {
	switch {
	case strings.Contains(areaName, "Airport"), strings.Contains(areaName, "Stadium"):
		return 8
	case strings.Contains(areaName, "Hospital"), strings.Contains(areaName, "University"):
		return 6
	default:
		return 4
	}
}

// AreaCode derives the two-letter spot prefix from an area name: its first
// two uppercase letters, falling back to the first two characters.
func AreaCode(name string) string {
	var caps []rune
	for _, r := range name {
		if unicode.IsUpper(r) {
			caps = append(caps, r)
			if len(caps) == 2 {
				return string(caps)
			}
		}
	}
	if len(name) >= 2 {
		return strings.ToUpper(name[:2])
	}
	return strings.ToUpper(name)
}

// Spots generates the spot fixtures for a seeded area. Initial occupancy is
// random; the first tick reconciles it against the detector anyway.
func Spots(area model.Area, count int, rng *rand.Rand) []model.Spot {
	code := AreaCode(area.Name)
	spots := make([]model.Spot, 0, count)
	for i := 0; i < count; i++ {
		x := area.XPosition + float64(i)*2
		spots = append(spots, model.Spot{
			Number:      fmt.Sprintf("%s%02d", code, i+1),
			Occupied:    rng.Intn(2) == 1,
			Coordinates: model.BBox{x, area.YPosition + 2, x + 1.5, area.YPosition + 4},
			AreaID:      &area.ID,
		})
	}
	return spots
}

// Lot returns the single lot fixture; total and available are recomputed
// from the seeded spots by the caller.
func Lot() model.Lot {
	return model.Lot{
		Name:         LotName,
		BasePrice:    model.DefaultBasePrice,
		CurrentPrice: model.DefaultBasePrice,
	}
}
