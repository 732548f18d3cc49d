// Package server exposes the temperature series over HTTP so downstream
// consumers (visualization, simulation) can poll for a temperature at an
// arbitrary instant.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/chrissnell/diurnal/internal/log"
	"github.com/chrissnell/diurnal/internal/temperature"
	"github.com/chrissnell/diurnal/pkg/config"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Controller represents the REST query server.
type Controller struct {
	ctx      context.Context
	wg       *sync.WaitGroup
	series   *temperature.Series
	cfg      config.ServerData
	Server   http.Server
	logger   *zap.SugaredLogger
	handlers *Handlers
}

// NewController creates a REST server over a fully built series.
func NewController(ctx context.Context, wg *sync.WaitGroup, series *temperature.Series, cfg config.ServerData, logger *zap.SugaredLogger) (*Controller, error) {
	if series == nil {
		return nil, fmt.Errorf("REST server requires a built temperature series")
	}

	if cfg.ListenAddr == "" {
		logger.Info("server.listen_addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		cfg.ListenAddr = "0.0.0.0"
	}
	if cfg.Port == 0 {
		logger.Info("server.port not provided; defaulting to 8080")
		cfg.Port = 8080
	}

	ctrl := &Controller{
		ctx:    ctx,
		wg:     wg,
		series: series,
		cfg:    cfg,
		logger: logger,
	}
	ctrl.handlers = NewHandlers(ctrl)

	ctrl.Server.Addr = fmt.Sprintf("%v:%v", cfg.ListenAddr, cfg.Port)
	ctrl.Server.Handler = ctrl.setupRouter()

	return ctrl, nil
}

// StartController starts the REST server and arranges shutdown when the
// controller context is canceled.
func (c *Controller) StartController() error {
	log.Info("Starting REST query server...")
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()
		if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
			log.Errorf("REST server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints.
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/api/temperature", c.handlers.GetTemperature).Methods(http.MethodGet)
	router.HandleFunc("/api/day/{date}", c.handlers.GetDay).Methods(http.MethodGet)
	router.HandleFunc("/api/summary", c.handlers.GetSummary).Methods(http.MethodGet)

	return router
}
