package metrics

import (
	"context"
	"net/http"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/tbaudier/parkwatch/config"
	coremetrics "github.com/tbaudier/parkwatch/core/metrics"
	"github.com/tbaudier/parkwatch/core/model"
	"github.com/tbaudier/parkwatch/infra/logger"
)

// InfluxSink writes tick events to an InfluxDB instance.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the configured InfluxDB endpoint.
func NewInfluxSink(cfg config.MetricsConfig) *InfluxSink {
	client := influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a NopSink
// when the health check fails, so a missing Influx never blocks ticks.
func NewInfluxSinkWithFallback(cfg config.MetricsConfig) coremetrics.Sink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordTick writes one point per tick plus one per spot transition.
func (s *InfluxSink) RecordTick(summary model.TickSummary) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	p := write.NewPointWithMeasurement("tick").
		AddTag("tick_id", summary.TickID).
		AddField("transitions", len(summary.Updates)).
		AddField("available_spots", summary.TotalAvailable).
		AddField("current_price", summary.CurrentPrice).
		SetTime(summary.Timestamp)
	if err := s.writeAPI.WritePoint(ctx, p); err != nil {
		return err
	}
	for _, u := range summary.Updates {
		tp := write.NewPointWithMeasurement("spot_transition").
			AddTag("spot_number", u.SpotNumber).
			AddField("occupied", u.Occupied).
			AddField("confidence", u.Confidence).
			SetTime(summary.Timestamp)
		if err := s.writeAPI.WritePoint(ctx, tp); err != nil {
			return err
		}
	}
	return nil
}

// RecordPrediction writes a prediction event point.
func (s *InfluxSink) RecordPrediction(source coremetrics.PredictionSource) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("prediction").
		AddTag("source", string(source)).
		AddField("count", 1).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}
