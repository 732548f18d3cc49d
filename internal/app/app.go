// Package app wires the configured record source, solar provider, and
// temperature series together and runs the query server.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/chrissnell/diurnal/internal/database"
	"github.com/chrissnell/diurnal/internal/ghcn"
	"github.com/chrissnell/diurnal/internal/log"
	"github.com/chrissnell/diurnal/internal/server"
	"github.com/chrissnell/diurnal/internal/temperature"
	"github.com/chrissnell/diurnal/pkg/config"
	"github.com/chrissnell/diurnal/pkg/solar"
	"go.uber.org/zap"
)

// App represents the main application
type App struct {
	cfg    *config.ConfigData
	logger *zap.SugaredLogger
}

// New creates a new application instance
func New(cfg *config.ConfigData, logger *zap.SugaredLogger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
	}
}

// BuildSeries constructs the temperature series from the configured source
// and solar provider. All record reading and solar resolution happens here,
// before any query is served.
func (a *App) BuildSeries() (*temperature.Series, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	station := a.cfg.Station
	utcOffset := time.Duration(station.UTCOffsetHours * float64(time.Hour))
	location := time.FixedZone(fmt.Sprintf("UTC%+g", station.UTCOffsetHours), int(utcOffset.Seconds()))

	provider, err := solar.NewProvider(solar.ProviderType(station.SolarProvider),
		station.Latitude, station.Longitude, location)
	if err != nil {
		return nil, err
	}

	reader, err := a.openReader(location)
	if err != nil {
		return nil, err
	}
	if closer, ok := reader.(io.Closer); ok {
		defer closer.Close()
	}

	series, err := temperature.BuildSeries(reader, provider, a.logger,
		temperature.WithShape(a.shape()),
		temperature.WithLocation(location))
	if err != nil {
		return nil, fmt.Errorf("building temperature series: %w", err)
	}
	return series, nil
}

// openReader creates the configured daily-record reader.
func (a *App) openReader(location *time.Location) (temperature.RecordReader, error) {
	src := a.cfg.Source
	switch src.Type {
	case config.SourceFile:
		comma := ','
		if src.Delimiter != "" {
			comma = []rune(src.Delimiter)[0]
		}
		return ghcn.NewFileReader(src.Path, comma)

	case config.SourceSQLite:
		return ghcn.NewSQLiteReader(src.Path)

	case config.SourceTimescaleDB:
		client, err := database.NewClient(src.ConnectionString, a.logger)
		if err != nil {
			return nil, err
		}
		start, end, err := sourceRange(src, location)
		if err != nil {
			return nil, err
		}
		return client.DailyExtremes(src.StationName, start, end)

	default:
		return nil, fmt.Errorf("unknown source type %q", src.Type)
	}
}

// sourceRange resolves the optional start/end dates for database sources.
// An open start reads from the beginning of the archive; an open end reads
// through today.
func sourceRange(src config.SourceData, location *time.Location) (start, end time.Time, err error) {
	end = time.Now().In(location)
	if src.StartDate != "" {
		start, err = time.ParseInLocation("20060102", src.StartDate, location)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parsing start_date: %w", err)
		}
	}
	if src.EndDate != "" {
		end, err = time.ParseInLocation("20060102", src.EndDate, location)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parsing end_date: %w", err)
		}
	}
	return start, end, nil
}

// shape applies configured overrides on top of the default curve parameters.
func (a *App) shape() temperature.Shape {
	shape := temperature.DefaultShape()
	if a.cfg.Shape.SunsetFraction != 0 {
		shape.SunsetFraction = a.cfg.Shape.SunsetFraction
	}
	if a.cfg.Shape.CloudExponent != 0 {
		shape.CloudExponent = a.cfg.Shape.CloudExponent
	}
	if a.cfg.Shape.MaxLagHours != 0 {
		shape.MaxLagHours = a.cfg.Shape.MaxLagHours
	}
	if a.cfg.Shape.MinLagHours != 0 {
		shape.MinLagHours = a.cfg.Shape.MinLagHours
	}
	return shape
}

// Run builds the series, starts the query server, and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	series, err := a.BuildSeries()
	if err != nil {
		return err
	}

	ctrl, err := server.NewController(ctx, &wg, series, a.cfg.Server, a.logger)
	if err != nil {
		return err
	}
	if err := ctrl.StartController(); err != nil {
		return err
	}

	log.Info("Application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
