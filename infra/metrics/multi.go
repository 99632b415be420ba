package metrics

import (
	"errors"

	coremetrics "github.com/tbaudier/parkwatch/core/metrics"
	"github.com/tbaudier/parkwatch/core/model"
)

// MultiSink fans events out to several sinks, collecting all errors.
type MultiSink struct {
	sinks []coremetrics.Sink
}

// NewMultiSink combines sinks into one.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordTick(summary model.TickSummary) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordTick(summary); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) RecordPrediction(source coremetrics.PredictionSource) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordPrediction(source); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
