// Package tick orchestrates one full occupancy-update-and-pricing run:
// detect, diff, record transitions, recompute availability, reprice.
package tick

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tbaudier/parkwatch/core/history"
	"github.com/tbaudier/parkwatch/core/logger"
	"github.com/tbaudier/parkwatch/core/metrics"
	"github.com/tbaudier/parkwatch/core/model"
	"github.com/tbaudier/parkwatch/core/pricing"
	"github.com/tbaudier/parkwatch/core/storage"
)

// SpotDetector produces detections for a set of spots. Implemented by the
// simulated detector; a real vision pipeline can be substituted here.
type SpotDetector interface {
	Detect(spots []model.SpotRef) []model.Detection
}

// Publisher pushes a tick summary to an external channel (MQTT). Delivery is
// best effort; failures are logged, never returned to the tick caller.
type Publisher interface {
	PublishTick(summary model.TickSummary) error
}

// Coordinator runs the update pipeline. Ticks are serialized: concurrent
// read-then-write over the same spot set would drop or double-count
// transitions, so Run holds a lock for the whole pipeline.
type Coordinator struct {
	store    storage.Store
	detector SpotDetector
	recorder history.Recorder
	pricer   pricing.Engine
	sink     metrics.Sink
	pub      Publisher
	log      logger.Logger
	now      func() time.Time

	mu sync.Mutex
}

// New creates a Coordinator. sink and pub may be nil.
func New(store storage.Store, det SpotDetector, sink metrics.Sink, pub Publisher, log logger.Logger) *Coordinator {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Coordinator{
		store:    store,
		detector: det,
		sink:     sink,
		pub:      pub,
		log:      log,
		now:      time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (c *Coordinator) WithClock(now func() time.Time) *Coordinator {
	c.now = now
	return c
}

// Run executes one tick. Writes are applied in a fixed order (spot state,
// history, lot availability, lot price) so a partial failure leaves spots
// reflecting reality even if the lot aggregates lag one interval.
func (c *Coordinator) Run(ctx context.Context) (model.TickSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	summary := model.TickSummary{
		TickID:       uuid.NewString(),
		Updates:      []model.SpotUpdate{},
		CurrentPrice: model.DefaultBasePrice,
		Timestamp:    c.now().UTC(),
	}

	spots, err := c.store.ListSpots(ctx)
	if err != nil {
		return summary, fmt.Errorf("list spots: %w", err)
	}

	refs := make([]model.SpotRef, len(spots))
	for i, s := range spots {
		refs[i] = model.SpotRef{ID: s.ID, Coordinates: s.Coordinates, AreaID: s.AreaID}
	}
	detections := c.detector.Detect(refs)

	byID := make(map[int64]*model.Spot, len(spots))
	for i := range spots {
		byID[spots[i].ID] = &spots[i]
	}

	now := c.now().UTC()
	for _, det := range detections {
		spot, ok := byID[det.SpotID]
		if !ok {
			continue
		}
		rec := c.recorder.RecordIfTransitioned(spot.Occupied, det, now)
		if rec == nil {
			continue
		}
		if err := c.store.UpdateSpot(ctx, spot.ID, det.Occupied, now); err != nil {
			return summary, fmt.Errorf("update spot %d: %w", spot.ID, err)
		}
		if err := c.store.AppendHistory(ctx, *rec); err != nil {
			return summary, fmt.Errorf("append history for spot %d: %w", spot.ID, err)
		}
		spot.Occupied = det.Occupied
		spot.LastUpdated = now
		summary.Updates = append(summary.Updates, model.SpotUpdate{
			SpotID:     spot.ID,
			SpotNumber: spot.Number,
			Occupied:   det.Occupied,
			Confidence: det.Confidence,
			AreaID:     spot.AreaID,
		})
	}

	lot, err := c.store.GetLot(ctx)
	if errors.Is(err, model.ErrNoLot) {
		// No lot seeded yet: spots and history are still updated, but
		// availability and pricing have nothing to attach to.
		c.finish(summary)
		return summary, nil
	}
	if err != nil {
		return summary, fmt.Errorf("get lot: %w", err)
	}

	available := 0
	for i := range spots {
		if !spots[i].Occupied {
			available++
		}
	}
	if err := c.store.UpdateLotAvailability(ctx, lot.ID, available); err != nil {
		return summary, fmt.Errorf("update lot availability: %w", err)
	}
	lot.AvailableSpots = available

	price := c.pricer.Price(lot, now)
	if err := c.store.UpdateLotPrice(ctx, lot.ID, price); err != nil {
		return summary, fmt.Errorf("update lot price: %w", err)
	}

	summary.TotalAvailable = available
	summary.CurrentPrice = price
	c.finish(summary)
	return summary, nil
}

// finish fans the summary out to observability sinks, best effort.
func (c *Coordinator) finish(summary model.TickSummary) {
	if err := c.sink.RecordTick(summary); err != nil {
		c.log.Warnf("record tick metrics: %v", err)
	}
	if c.pub != nil {
		if err := c.pub.PublishTick(summary); err != nil {
			c.log.Warnf("publish tick summary: %v", err)
		}
	}
}
