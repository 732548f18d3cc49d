// Package config defines the configuration surface for the diurnal service:
// the station location, the daily-record source, the curve shape overrides,
// and the query server settings.
package config

import "fmt"

// Source types for daily records.
const (
	SourceFile        = "file"
	SourceSQLite      = "sqlite"
	SourceTimescaleDB = "timescaledb"
)

// ConfigProvider defines the interface for configuration data sources.
type ConfigProvider interface {
	// LoadConfig loads the complete configuration.
	LoadConfig() (*ConfigData, error)
	Close() error
}

// ConfigData represents the complete configuration structure.
type ConfigData struct {
	Station StationData `json:"station"`
	Source  SourceData  `json:"source"`
	Shape   ShapeData   `json:"shape,omitempty"`
	Server  ServerData  `json:"server,omitempty"`
}

// StationData locates the observing station.
type StationData struct {
	Name           string  `json:"name"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	UTCOffsetHours float64 `json:"utc_offset_hours"`
	SolarProvider  string  `json:"solar_provider,omitempty"` // "sunrise" (default) or "astro"
}

// SourceData selects and configures the daily-record source.
type SourceData struct {
	Type             string `json:"type"` // file, sqlite, or timescaledb
	Path             string `json:"path,omitempty"`
	Delimiter        string `json:"delimiter,omitempty"` // single character, defaults to ","
	ConnectionString string `json:"connection_string,omitempty"`
	StationName      string `json:"station_name,omitempty"`
	StartDate        string `json:"start_date,omitempty"` // YYYYMMDD, timescaledb only
	EndDate          string `json:"end_date,omitempty"`   // YYYYMMDD, timescaledb only
}

// ShapeData overrides the temperature curve parameters. Zero values fall
// back to the model defaults.
type ShapeData struct {
	SunsetFraction float64 `json:"sunset_fraction,omitempty"`
	CloudExponent  float64 `json:"cloud_exponent,omitempty"`
	MaxLagHours    float64 `json:"max_lag_hours,omitempty"`
	MinLagHours    float64 `json:"min_lag_hours,omitempty"`
}

// ServerData holds the REST query server settings.
type ServerData struct {
	ListenAddr string `json:"listen_addr,omitempty"`
	Port       int    `json:"port,omitempty"`
}

// Validate checks the loaded configuration for the fields every run needs.
func (c *ConfigData) Validate() error {
	if c.Station.Latitude < -90 || c.Station.Latitude > 90 {
		return fmt.Errorf("station latitude %v out of range", c.Station.Latitude)
	}
	if c.Station.Longitude < -180 || c.Station.Longitude > 180 {
		return fmt.Errorf("station longitude %v out of range", c.Station.Longitude)
	}

	switch c.Source.Type {
	case SourceFile:
		if c.Source.Path == "" {
			return fmt.Errorf("file source requires a path")
		}
		if len([]rune(c.Source.Delimiter)) > 1 {
			return fmt.Errorf("delimiter %q must be a single character", c.Source.Delimiter)
		}
	case SourceSQLite:
		if c.Source.Path == "" {
			return fmt.Errorf("sqlite source requires a path")
		}
	case SourceTimescaleDB:
		if c.Source.ConnectionString == "" {
			return fmt.Errorf("timescaledb source requires a connection string")
		}
		if c.Source.StationName == "" {
			return fmt.Errorf("timescaledb source requires a station name")
		}
	default:
		return fmt.Errorf("unknown source type %q", c.Source.Type)
	}

	return nil
}
