package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbaudier/parkwatch/core/model"
)

func TestRecordIfTransitioned(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	var r Recorder

	tests := []struct {
		name     string
		current  bool
		detected bool
		want     bool
	}{
		{name: "free to occupied", current: false, detected: true, want: true},
		{name: "occupied to free", current: true, detected: false, want: true},
		{name: "still free", current: false, detected: false, want: false},
		{name: "still occupied", current: true, detected: true, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := r.RecordIfTransitioned(tt.current, model.Detection{SpotID: 7, Occupied: tt.detected}, now)
			if !tt.want {
				assert.Nil(t, rec)
				return
			}
			require.NotNil(t, rec)
			assert.Equal(t, int64(7), rec.SpotID)
			assert.Equal(t, tt.detected, rec.Occupied)
			assert.Equal(t, now, rec.Timestamp)
		})
	}
}
