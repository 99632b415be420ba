// Package app assembles the parking service from its parts: storage,
// detector, predictors, metrics sinks, MQTT publisher and the HTTP API.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/tbaudier/parkwatch/api"
	"github.com/tbaudier/parkwatch/config"
	"github.com/tbaudier/parkwatch/core/detector"
	coremetrics "github.com/tbaudier/parkwatch/core/metrics"
	"github.com/tbaudier/parkwatch/core/prediction"
	"github.com/tbaudier/parkwatch/core/storage"
	"github.com/tbaudier/parkwatch/core/tick"
	"github.com/tbaudier/parkwatch/infra/ai"
	"github.com/tbaudier/parkwatch/infra/logger"
	"github.com/tbaudier/parkwatch/infra/metrics"
	"github.com/tbaudier/parkwatch/infra/mqtt"
	"github.com/tbaudier/parkwatch/infra/store/memory"
	"github.com/tbaudier/parkwatch/infra/store/postgres"
)

// Service owns every long-lived component of the parking backend.
type Service struct {
	cfg    *config.Config
	log    logger.Logger
	store  storage.Store
	coord  *tick.Coordinator
	server *api.Server
	sink   coremetrics.Sink
	pub    *mqtt.Publisher

	closers []func()
}

// New wires up a Service from the loaded configuration. The returned service
// holds open connections; call Close when done.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	s := &Service{
		cfg: cfg,
		log: logger.New("app"),
	}

	if err := s.initStore(ctx); err != nil {
		return nil, err
	}
	s.initSink()

	pub, err := mqtt.NewPublisher(cfg.MQTT)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("mqtt publisher: %w", err)
	}
	s.pub = pub
	if pub != nil {
		s.closers = append(s.closers, pub.Close)
	}

	// A nil *mqtt.Publisher must not become a non-nil tick.Publisher.
	var tickPub tick.Publisher
	if pub != nil {
		tickPub = pub
	}
	s.coord = tick.New(s.store, detector.New(), s.sink, tickPub, logger.New("tick"))

	s.server = api.New(cfg.Server.ListenAddr(), s.store, s.coord, s.buildPredictor(), s.sink, logger.New("api"))
	return s, nil
}

// Run starts the background tick loop, the optional Prometheus listener and
// the HTTP API, then blocks until ctx is cancelled or the API fails.
func (s *Service) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prometheus server: %v", err)
			}
		}()
	}
	if !s.cfg.Tick.Disabled {
		go s.tickLoop(ctx)
	}

	s.log.Infof("listening on %s", s.cfg.Server.ListenAddr())
	return s.server.Run(ctx)
}

// Close releases broker and database connections.
func (s *Service) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// Tick runs a single detection cycle outside the background loop.
func (s *Service) Tick(ctx context.Context) error {
	summary, err := s.coord.Run(ctx)
	if err != nil {
		return err
	}
	s.log.Infof("tick %s: %d transitions, %d available, price %.2f",
		summary.TickID, len(summary.Updates), summary.TotalAvailable, summary.CurrentPrice)
	return nil
}

// tickLoop fires a detection cycle at the configured interval. Failures are
// logged and the loop keeps going; a broken tick must not take the API down.
func (s *Service) tickLoop(ctx context.Context) {
	interval := time.Duration(s.cfg.Tick.IntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Infof("tick loop started, interval %s", interval)
	for {
		select {
		case <-ctx.Done():
			s.log.Infof("tick loop stopped")
			return
		case <-ticker.C:
			if _, err := s.coord.Run(ctx); err != nil {
				s.log.Errorf("tick failed: %v", err)
			}
		}
	}
}

func (s *Service) initStore(ctx context.Context) error {
	if s.cfg.Database.URL == "" {
		s.log.Infof("no database configured, running with in-memory demo dataset")
		s.store = memory.Seeded()
		return nil
	}
	pg, err := postgres.New(ctx, s.cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	if err := pg.Seed(ctx); err != nil {
		pg.Close()
		return fmt.Errorf("seed database: %w", err)
	}
	s.closers = append(s.closers, pg.Close)
	s.store = pg
	return nil
}

func (s *Service) initSink() {
	var sinks []coremetrics.Sink
	if s.cfg.Metrics.PrometheusEnabled {
		prom, err := metrics.NewPromSink()
		if err != nil {
			s.log.Errorf("prometheus sink: %v", err)
		} else {
			sinks = append(sinks, prom)
		}
	}
	if s.cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(s.cfg.Metrics))
	}

	switch len(sinks) {
	case 0:
		s.sink = coremetrics.NopSink{}
	case 1:
		s.sink = sinks[0]
	default:
		s.sink = metrics.NewMultiSink(sinks...)
	}
}

func (s *Service) buildPredictor() prediction.Predictor {
	stat := prediction.NewStatisticalPredictor(s.store)

	// ai.NewClient returns a nil *Client when disabled; keep the interface
	// nil in that case so the enhanced predictor skips the AI path.
	var completion prediction.CompletionClient
	if client := ai.NewClient(s.cfg.AI); client != nil {
		completion = client
		s.log.Infof("AI predictions enabled, model %s", client.Model())
	}
	return prediction.NewEnhancedPredictor(stat, s.store, completion, logger.New("prediction"))
}
