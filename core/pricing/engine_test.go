package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tbaudier/parkwatch/core/model"
)

func at(hour int) time.Time {
	return time.Date(2025, 6, 2, hour, 15, 0, 0, time.UTC)
}

func lotWithRate(rate float64, base float64) model.Lot {
	total := 100
	occupied := int(math.Round(rate * float64(total)))
	return model.Lot{
		TotalSpots:     total,
		AvailableSpots: total - occupied,
		BasePrice:      base,
	}
}

func TestPriceTiers(t *testing.T) {
	var e Engine
	tests := []struct {
		name string
		rate float64
		hour int
		base float64
		want float64
	}{
		{name: "high demand peak hour", rate: 0.9, hour: 10, base: 2.0, want: 3.30},
		{name: "mid demand night", rate: 0.5, hour: 3, base: 2.0, want: 2.00},
		{name: "medium demand off peak", rate: 0.7, hour: 20, base: 2.0, want: 2.40},
		{name: "low demand incentive", rate: 0.1, hour: 23, base: 2.0, want: 1.60},
		{name: "boundary 0.8 stays medium", rate: 0.8, hour: 3, base: 2.0, want: 2.40},
		{name: "boundary 0.6 stays neutral", rate: 0.6, hour: 3, base: 2.0, want: 2.00},
		{name: "boundary 0.3 stays neutral", rate: 0.3, hour: 3, base: 2.0, want: 2.00},
		{name: "peak compounds on low tier", rate: 0.1, hour: 12, base: 2.0, want: 1.76},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Price(lotWithRate(tt.rate, tt.base), at(tt.hour))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPriceIsDeterministic(t *testing.T) {
	var e Engine
	lot := lotWithRate(0.65, 2.5)
	first := e.Price(lot, at(14))
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.Price(lot, at(14)))
	}
}

func TestPriceZeroTotalKeepsBase(t *testing.T) {
	var e Engine
	lot := model.Lot{TotalSpots: 0, AvailableSpots: 0, BasePrice: 2.0}
	assert.Equal(t, 2.0, e.Price(lot, at(12)))
}

func TestMultiplierTiers(t *testing.T) {
	assert.Equal(t, 1.5, Multiplier(0.85))
	assert.Equal(t, 1.2, Multiplier(0.7))
	assert.Equal(t, 1.0, Multiplier(0.5))
	assert.Equal(t, 0.8, Multiplier(0.2))
}
