// Package detector simulates a vision pipeline producing per-spot occupancy
// readings. The contract is kept stable so a real detector can be swapped in
// without touching the rest of the pipeline.
package detector

import (
	"math/rand"
	"time"

	"github.com/tbaudier/parkwatch/core/model"
)

// Detector produces one simulated detection per spot. It never fails.
type Detector struct {
	rng *rand.Rand
	now func() time.Time
}

// Option customises a Detector.
type Option func(*Detector)

// WithRand injects a deterministic random source for tests.
func WithRand(rng *rand.Rand) Option {
	return func(d *Detector) { d.rng = rng }
}

// WithClock injects the time source used for the occupancy curve.
func WithClock(now func() time.Time) Option {
	return func(d *Detector) { d.now = now }
}

// New creates a Detector seeded from the wall clock.
func New(opts ...Option) *Detector {
	d := &Detector{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Detect samples an occupancy reading for every spot. Each spot is sampled
// independently against the time-of-day probability curve.
func (d *Detector) Detect(spots []model.SpotRef) []model.Detection {
	p := occupancyProbability(d.now().Hour())
	out := make([]model.Detection, 0, len(spots))
	for _, s := range spots {
		occupied := d.rng.Float64() < p
		out = append(out, model.Detection{
			SpotID:     s.ID,
			Occupied:   occupied,
			Confidence: d.confidence(occupied),
			BBox:       bboxOrDefault(s.Coordinates),
		})
	}
	return out
}

// confidence ranges differ for occupied and free readings. The asymmetry
// mirrors the calibration of the simulated sensor and is part of the contract.
func (d *Detector) confidence(occupied bool) float64 {
	if occupied {
		return 0.75 + d.rng.Float64()*0.20
	}
	return 0.80 + d.rng.Float64()*0.18
}

// occupancyProbability is a step function of the hour: business hours are
// busiest, evenings moderate, nights mostly empty.
func occupancyProbability(hour int) float64 {
	switch {
	case hour >= 9 && hour <= 17:
		return 0.7
	case hour >= 18 && hour <= 22:
		return 0.5
	default:
		return 0.2
	}
}

func bboxOrDefault(b model.BBox) model.BBox {
	if b.IsZero() {
		return model.DefaultBBox
	}
	return b
}
