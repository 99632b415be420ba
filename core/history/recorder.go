// Package history decides when an occupancy transition is worth recording.
package history

import (
	"time"

	"github.com/tbaudier/parkwatch/core/model"
)

// Recorder emits history records on state transitions only. This is the sole
// gate for history growth: an unchanged reading must never produce a record.
type Recorder struct{}

// RecordIfTransitioned returns a new record when the detection disagrees with
// the stored state, nil otherwise.
func (Recorder) RecordIfTransitioned(current bool, det model.Detection, now time.Time) *model.HistoryRecord {
	if det.Occupied == current {
		return nil
	}
	return &model.HistoryRecord{
		SpotID:    det.SpotID,
		Occupied:  det.Occupied,
		Timestamp: now,
	}
}
