// Package server exposes the trading services over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"tradingapp/internal/catalog"
	"tradingapp/internal/identity"
	"tradingapp/internal/obs"
	"tradingapp/internal/settlement"
)

// Config holds the listener settings.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Currency     string
}

// Server routes HTTP requests to the services.
type Server struct {
	cfg        Config
	engine     *gin.Engine
	identity   *identity.Provider
	settlement *settlement.Service
	catalog    *catalog.Catalog
	metrics    *obs.Metrics
	traces     *obs.TraceGenerator
	http       *http.Server
}

// New builds the router. metrics may be nil.
func New(cfg Config, provider *identity.Provider, settle *settlement.Service, stocks *catalog.Catalog, metrics *obs.Metrics) *Server {
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	s := &Server{
		cfg:        cfg,
		engine:     gin.New(),
		identity:   provider,
		settlement: settle,
		catalog:    stocks,
		metrics:    metrics,
		traces:     obs.NewTraceGenerator("req-", 0),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.Use(s.requestLog(), gin.Recovery())

	s.engine.GET("/health", s.health)
	s.engine.GET("/debug/metrics", s.debugMetrics)

	api := s.engine.Group("/api")
	api.POST("/auth/register", s.register)

	authed := api.Group("", s.authenticate())
	authed.GET("/profile", s.profile)
	authed.POST("/orders", s.createOrder)
	authed.GET("/orders", s.listOrders)
	authed.GET("/orders/:id", s.getOrder)
	authed.PATCH("/orders/:id", s.remarkOrder)
	authed.GET("/stocks", s.listStocks)
	authed.GET("/stocks/:name", s.getStock)
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is done, then shuts down gracefully within timeout.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	s.http = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logs.Infof("http server listening on %s", s.cfg.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Wrap(err, "listen")
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	logs.Info("http server stopped")
	return nil
}
