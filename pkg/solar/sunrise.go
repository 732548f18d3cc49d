package solar

import (
	"fmt"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// sunriseProvider computes anchor times with the go-sunrise library.
type sunriseProvider struct {
	latitude  float64
	longitude float64
	loc       *time.Location
}

func (p *sunriseProvider) SolarTimes(date time.Time) (time.Time, time.Time, error) {
	d := date.UTC()
	rise, set := sunrise.SunriseSunset(p.latitude, p.longitude, d.Year(), d.Month(), d.Day())
	if rise.IsZero() || set.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s at lat %.4f",
			ErrNoSunriseSunset, d.Format("2006-01-02"), p.latitude)
	}
	return rise.In(p.loc), set.In(p.loc), nil
}
