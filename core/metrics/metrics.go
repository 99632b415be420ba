// Package metrics defines the observability sink interface used by the tick
// pipeline. Concrete sinks (Prometheus, InfluxDB) live under infra/metrics.
package metrics

import "github.com/tbaudier/parkwatch/core/model"

// PredictionSource identifies which predictor produced a result.
type PredictionSource string

const (
	SourceStatistical PredictionSource = "statistical"
	SourceAI          PredictionSource = "ai"
)

// Sink records tick and prediction events for observability purposes.
// Implementations must tolerate partial data and never block a tick.
type Sink interface {
	RecordTick(summary model.TickSummary) error
	RecordPrediction(source PredictionSource) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordTick(model.TickSummary) error      { return nil }
func (NopSink) RecordPrediction(PredictionSource) error { return nil }
