// Package pricing derives the lot's hourly price from demand and time of day.
package pricing

import (
	"math"
	"time"

	"github.com/tbaudier/parkwatch/core/model"
)

// Engine computes a demand-responsive price. It is a pure function of the
// lot counts and the current hour; persisting the result is the caller's job.
type Engine struct{}

// Price returns the lot price rounded to two decimals.
//
// Occupancy tiers select a demand multiplier, and business hours compound a
// peak multiplier on top. A lot with zero total spots keeps its base price.
func (Engine) Price(lot model.Lot, now time.Time) float64 {
	if lot.TotalSpots == 0 {
		return lot.BasePrice
	}
	rate := float64(lot.TotalSpots-lot.AvailableSpots) / float64(lot.TotalSpots)

	multiplier := 1.0
	switch {
	case rate > 0.8:
		multiplier = 1.5
	case rate > 0.6:
		multiplier = 1.2
	case rate < 0.3:
		multiplier = 0.8
	}

	hour := now.Hour()
	if hour >= 9 && hour <= 17 {
		multiplier *= 1.1
	}

	return round2(lot.BasePrice * multiplier)
}

// Multiplier returns the demand multiplier for a raw occupancy rate. Exposed
// for the simulated pricing-history endpoint.
func Multiplier(rate float64) float64 {
	switch {
	case rate > 0.8:
		return 1.5
	case rate > 0.6:
		return 1.2
	case rate < 0.3:
		return 0.8
	default:
		return 1.0
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
