// Package solar resolves sunrise and sunset anchor times for a fixed
// observing location. Two interchangeable providers are available: one backed
// by the go-sunrise library and one computing the NOAA declination and
// hour-angle formulas directly.
package solar

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoSunriseSunset indicates a date with polar day or polar night at the
// provider's latitude, where the sun never crosses the horizon.
var ErrNoSunriseSunset = errors.New("no sunrise or sunset on this date")

// ProviderType selects the sunrise/sunset computation strategy.
type ProviderType string

const (
	// ProviderSunrise uses the go-sunrise library.
	ProviderSunrise ProviderType = "sunrise"
	// ProviderAstro computes solar geometry from the NOAA formulas.
	ProviderAstro ProviderType = "astro"
)

// Provider resolves solar anchor times for calendar dates at one location.
type Provider interface {
	// SolarTimes returns the sunrise and sunset instants for the calendar
	// date containing the given instant (interpreted in UTC), expressed in
	// the provider's configured wall-clock location.
	SolarTimes(date time.Time) (sunrise, sunset time.Time, err error)
}

// NewProvider creates a Provider of the requested type for a fixed latitude
// and longitude. Returned instants are expressed in loc.
func NewProvider(typ ProviderType, latitude, longitude float64, loc *time.Location) (Provider, error) {
	if loc == nil {
		loc = time.UTC
	}
	switch typ {
	case ProviderSunrise, "":
		return &sunriseProvider{latitude: latitude, longitude: longitude, loc: loc}, nil
	case ProviderAstro:
		return &astroProvider{latitude: latitude, longitude: longitude, loc: loc}, nil
	default:
		return nil, fmt.Errorf("unknown solar provider type %q", typ)
	}
}
