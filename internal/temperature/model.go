// Package temperature estimates sub-daily air temperature from daily
// minimum/maximum records. Each day's curve is anchored to that day's
// sunrise and sunset and split into four segments: a half-sine rise from
// the overnight low to the afternoon high, a cosine-shaped fall to the
// sunset temperature, and two power-law cooling branches that borrow the
// adjacent days' data to carry the curve across midnight.
package temperature

import (
	"fmt"
	"math"
	"time"
)

// Default curve shape parameters.
const (
	DefaultSunsetFraction = 0.39 // fraction of the daily range lost by sunset
	DefaultCloudExponent  = 0.5  // nighttime cooling exponent, valid in (0,1]
	DefaultMaxLagHours    = 4.0  // daily maximum occurs this long before sunset
	DefaultMinLagHours    = 1.0  // daily minimum occurs this long before sunrise
)

// Shape holds the tunable parameters of the diurnal curve. The zero value
// is not valid; use DefaultShape.
type Shape struct {
	SunsetFraction float64 // c: sunset-to-true-max offset fraction
	CloudExponent  float64 // z: cloudiness exponent, must be > 0
	MaxLagHours    float64 // hours before sunset of the daily maximum
	MinLagHours    float64 // hours before sunrise of the daily minimum
}

// DefaultShape returns the standard curve parameters.
func DefaultShape() Shape {
	return Shape{
		SunsetFraction: DefaultSunsetFraction,
		CloudExponent:  DefaultCloudExponent,
		MaxLagHours:    DefaultMaxLagHours,
		MinLagHours:    DefaultMinLagHours,
	}
}

// DayModel models one calendar day's temperature curve. Neighbor links are
// assigned by the owning Series as records are loaded in date order and are
// never owned by the model itself. A DayModel is immutable once the series
// is built.
type DayModel struct {
	Date    time.Time // midnight at the start of the modeled day
	MinTemp float64
	MaxTemp float64
	Sunrise time.Time
	Sunset  time.Time
	Shape   Shape

	prev *DayModel
	next *DayModel
}

// NewDayModel validates the inputs and builds a model for one day. date is
// truncated to midnight in its own location. It returns ErrInvalidParameter
// when z <= 0, when minTemp exceeds maxTemp, or when the segment boundaries
// are not strictly increasing (degenerate sunrise/sunset geometry, e.g. at
// polar latitudes).
func NewDayModel(minTemp, maxTemp float64, date, sunrise, sunset time.Time, shape Shape) (*DayModel, error) {
	if shape.CloudExponent <= 0 {
		return nil, fmt.Errorf("%w: cloudiness exponent %v must be > 0", ErrInvalidParameter, shape.CloudExponent)
	}
	if minTemp > maxTemp {
		return nil, fmt.Errorf("%w: minimum %v exceeds maximum %v", ErrInvalidParameter, minTemp, maxTemp)
	}

	m := &DayModel{
		Date:    truncateToDay(date),
		MinTemp: minTemp,
		MaxTemp: maxTemp,
		Sunrise: sunrise,
		Sunset:  sunset,
		Shape:   shape,
	}

	// The four-segment query is only well defined when the boundaries are
	// strictly ordered within the day.
	if !m.TimeOfMin().Before(m.TimeOfMax()) || !m.TimeOfMax().Before(m.Sunset) || !m.Sunset.Before(m.DayEnd()) {
		return nil, fmt.Errorf("%w: segment boundaries not strictly increasing on %s",
			ErrInvalidParameter, m.Date.Format("2006-01-02"))
	}
	if m.Sunrise.Before(m.DayStart()) {
		return nil, fmt.Errorf("%w: sunrise %v precedes start of day %s",
			ErrInvalidParameter, m.Sunrise, m.Date.Format("2006-01-02"))
	}

	return m, nil
}

// DayStart returns midnight at the start of the modeled day.
func (m *DayModel) DayStart() time.Time { return m.Date }

// DayEnd returns midnight at the end of the modeled day.
func (m *DayModel) DayEnd() time.Time { return m.Date.Add(24 * time.Hour) }

// TimeOfMax returns the instant of the daily maximum, a fixed lag before sunset.
func (m *DayModel) TimeOfMax() time.Time {
	return m.Sunset.Add(-hoursDuration(m.Shape.MaxLagHours))
}

// TimeOfMin returns the instant of the daily minimum, a fixed lag before sunrise.
func (m *DayModel) TimeOfMin() time.Time {
	return m.Sunrise.Add(-hoursDuration(m.Shape.MinLagHours))
}

// SunsetTemp returns the modeled temperature at sunset: the daily maximum
// less a fixed fraction of the daily range.
func (m *DayModel) SunsetTemp() float64 {
	return m.MaxTemp - m.Shape.SunsetFraction*(m.MaxTemp-m.MinTemp)
}

// Prev returns the previous day's model, or nil at the start of the series.
func (m *DayModel) Prev() *DayModel { return m.prev }

// Next returns the next day's model, or nil at the end of the series.
func (m *DayModel) Next() *DayModel { return m.next }

// TempAt returns the estimated temperature at an instant within the day's
// [DayStart, DayEnd) window. Segment membership uses lower < instant <= upper,
// so each boundary belongs to the segment it ends. The two nighttime segments
// need the adjacent day's data; when that neighbor does not exist the query
// returns ErrMissingNeighbor rather than a number derived from missing data.
func (m *DayModel) TempAt(instant time.Time) (float64, error) {
	timeOfMin := m.TimeOfMin()
	timeOfMax := m.TimeOfMax()

	switch {
	case instant.After(timeOfMin) && !instant.After(timeOfMax):
		// Rising limb: half-sine from the overnight low to the daily high.
		frac := instant.Sub(timeOfMin).Hours() / timeOfMax.Sub(timeOfMin).Hours()
		return m.MinTemp + (m.MaxTemp-m.MinTemp)/2*(1+math.Sin(math.Pi*frac-math.Pi/2)), nil

	case instant.After(timeOfMax) && !instant.After(m.Sunset):
		// Falling limb: cosine-shaped decay from the high to the sunset temperature.
		frac := instant.Sub(timeOfMax).Hours() / m.Sunset.Sub(timeOfMax).Hours()
		sunsetTemp := m.SunsetTemp()
		return sunsetTemp + (m.MaxTemp-sunsetTemp)*math.Sin(math.Pi/2*(1+frac)), nil

	case instant.After(m.Sunset) && !instant.After(m.DayEnd()):
		// Evening cooling: power law anchored to reach the next day's
		// minimum at its overnight low time.
		if m.next == nil {
			return 0, fmt.Errorf("%w: no next day after %s", ErrMissingNeighbor, m.Date.Format("2006-01-02"))
		}
		sunsetTemp := m.SunsetTemp()
		span := timeOfMin.Add(24 * time.Hour).Sub(m.Sunset).Hours()
		rate := (m.next.MinTemp - sunsetTemp) / math.Pow(span, m.Shape.CloudExponent)
		elapsed := instant.Sub(m.Sunset).Hours()
		return sunsetTemp + rate*math.Pow(elapsed, m.Shape.CloudExponent), nil

	default:
		// Pre-dawn cooling continuing from the previous evening's curve.
		if m.prev == nil {
			return 0, fmt.Errorf("%w: no previous day before %s", ErrMissingNeighbor, m.Date.Format("2006-01-02"))
		}
		prevSunsetTemp := m.prev.SunsetTemp()
		span := timeOfMin.Add(24 * time.Hour).Sub(m.Sunset).Hours()
		rate := (m.MinTemp - prevSunsetTemp) / math.Pow(span, m.Shape.CloudExponent)
		elapsed := instant.Add(24 * time.Hour).Sub(m.Sunset).Hours()
		return prevSunsetTemp + rate*math.Pow(elapsed, m.Shape.CloudExponent), nil
	}
}

// truncateToDay drops the time-of-day portion, keeping the location.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// hoursDuration converts fractional hours to a time.Duration.
func hoursDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}
