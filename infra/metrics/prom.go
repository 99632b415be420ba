// Package metrics provides the Prometheus and InfluxDB sinks for tick and
// prediction observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/tbaudier/parkwatch/core/metrics"
	"github.com/tbaudier/parkwatch/core/model"
)

// PromSink records tick pipeline events in Prometheus metrics.
type PromSink struct {
	ticks       prometheus.Counter
	transitions prometheus.Counter
	available   prometheus.Gauge
	price       prometheus.Gauge
	predictions *prometheus.CounterVec
}

// NewPromSink registers tick metrics on the default Prometheus registerer.
// The metrics server is started separately.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	ticks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "parkwatch_ticks_total",
		Help: "Total number of completed update ticks",
	})
	transitions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "parkwatch_spot_transitions_total",
		Help: "Total number of observed spot occupancy transitions",
	})
	available := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "parkwatch_available_spots",
		Help: "Available spots after the most recent tick",
	})
	price := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "parkwatch_current_price",
		Help: "Current hourly price after the most recent tick",
	})
	predictions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "parkwatch_prediction_requests_total",
		Help: "Prediction requests served, by predictor source",
	}, []string{"source"})

	collectors := []prometheus.Collector{ticks, transitions, available, price, predictions}
	for i, col := range collectors {
		if err := reg.Register(col); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				collectors[i] = are.ExistingCollector
				continue
			}
			return nil, err
		}
	}
	return &PromSink{
		ticks:       collectors[0].(prometheus.Counter),
		transitions: collectors[1].(prometheus.Counter),
		available:   collectors[2].(prometheus.Gauge),
		price:       collectors[3].(prometheus.Gauge),
		predictions: collectors[4].(*prometheus.CounterVec),
	}, nil
}

// RecordTick updates counters and gauges from a tick summary.
func (s *PromSink) RecordTick(summary model.TickSummary) error {
	s.ticks.Inc()
	s.transitions.Add(float64(len(summary.Updates)))
	s.available.Set(float64(summary.TotalAvailable))
	s.price.Set(summary.CurrentPrice)
	return nil
}

// RecordPrediction counts a served prediction by source.
func (s *PromSink) RecordPrediction(source coremetrics.PredictionSource) error {
	s.predictions.WithLabelValues(string(source)).Inc()
	return nil
}
