// Package api exposes the parking service over HTTP: the tick trigger,
// status and prediction reads, and the browser dashboard.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbaudier/parkwatch/core/logger"
	coremetrics "github.com/tbaudier/parkwatch/core/metrics"
	"github.com/tbaudier/parkwatch/core/prediction"
	"github.com/tbaudier/parkwatch/core/storage"
	"github.com/tbaudier/parkwatch/core/tick"
)

// Server bundles the router and its collaborators.
type Server struct {
	store     storage.Store
	coord     *tick.Coordinator
	predictor prediction.Predictor
	sink      coremetrics.Sink
	log       logger.Logger
	engine    *gin.Engine
	addr      string
}

// New constructs a server with routes and middleware. sink may be nil.
func New(addr string, store storage.Store, coord *tick.Coordinator, predictor prediction.Predictor, sink coremetrics.Sink, log logger.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())
	engine.Use(requestLogger(log))

	s := &Server{
		store:     store,
		coord:     coord,
		predictor: predictor,
		sink:      sink,
		log:       log,
		engine:    engine,
		addr:      addr,
	}
	if s.sink == nil {
		s.sink = coremetrics.NopSink{}
	}
	s.registerRoutes()
	return s
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine { return s.engine }

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/", s.handleDashboard)
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := s.engine.Group("/api")
	{
		apiGroup.GET("/status", s.handleStatus)
		apiGroup.POST("/update", s.handleUpdate)
		apiGroup.GET("/predict/:id", s.handlePredict)
		apiGroup.GET("/predict-by-number/:number", s.handlePredictByNumber)
		apiGroup.GET("/find-parking", s.handleFindParking)
		apiGroup.GET("/pricing/history", s.handlePricingHistory)
		apiGroup.GET("/map", s.handleMap)
	}
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debugf("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
