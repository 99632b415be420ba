package seed

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAreasFixtures(t *testing.T) {
	areas := Areas()
	require.Len(t, areas, 10)

	counts := map[string]int{}
	for _, a := range areas {
		counts[a.Area.Name] = a.SpotCount
		require.NotNil(t, a.Area.Latitude)
		require.NotNil(t, a.Area.Longitude)
		assert.Greater(t, a.Area.Width, 0.0)
		assert.Greater(t, a.Area.Height, 0.0)
	}
	assert.Equal(t, 8, counts["Airport Terminal"])
	assert.Equal(t, 6, counts["City Hospital"])
	assert.Equal(t, 6, counts["University Campus"])
	assert.Equal(t, 4, counts["Downtown Mall"])
	assert.Equal(t, 4, counts["Sports Complex"])
}

func TestAreaCode(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "Downtown Mall", want: "DM"},
		{name: "City Hospital", want: "CH"},
		{name: "Residential Zone A", want: "RZ"},
		{name: "Tech Park", want: "TP"},
		{name: "lowercase lot", want: "LO"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AreaCode(tt.name), tt.name)
	}
}

func TestSpotsGeneration(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	areas := Areas()
	area := areas[0].Area
	area.ID = 3

	spots := Spots(area, areas[0].SpotCount, rng)
	require.Len(t, spots, 4)

	seen := map[string]bool{}
	for i, s := range spots {
		assert.False(t, seen[s.Number], "duplicate number %s", s.Number)
		seen[s.Number] = true
		require.NotNil(t, s.AreaID)
		assert.Equal(t, int64(3), *s.AreaID)
		// Boxes advance across the area rectangle.
		assert.Equal(t, area.XPosition+float64(i)*2, s.Coordinates[0])
	}
	assert.Equal(t, "DM01", spots[0].Number)
	assert.Equal(t, "DM04", spots[3].Number)
}

func TestSpotNumbersUniqueAcrossCity(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	seen := map[string]bool{}
	total := 0
	for i, as := range Areas() {
		area := as.Area
		area.ID = int64(i + 1)
		for _, s := range Spots(area, as.SpotCount, rng) {
			assert.False(t, seen[s.Number], "duplicate %s", s.Number)
			seen[s.Number] = true
			total++
		}
	}
	assert.Equal(t, 48, total)
}

func TestLotFixture(t *testing.T) {
	lot := Lot()
	assert.Equal(t, LotName, lot.Name)
	assert.Equal(t, 2.0, lot.BasePrice)
	assert.Equal(t, 2.0, lot.CurrentPrice)
}
