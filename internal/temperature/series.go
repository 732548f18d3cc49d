package temperature

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Raw TMIN/TMAX values are integer tenths of a degree.
const tenthsScale = 0.1

// Field names expected in every raw daily record.
const (
	FieldDate = "DATE" // YYYYMMDD
	FieldTMin = "TMIN" // tenths of a degree
	FieldTMax = "TMAX" // tenths of a degree
)

// Fields is one raw daily record as produced by a RecordReader: a keyed
// field mapping with at least DATE, TMIN, and TMAX populated.
type Fields map[string]string

// RecordReader yields raw daily records in chronological order. Next returns
// io.EOF after the final record. Readers are forward-only.
type RecordReader interface {
	Next() (Fields, error)
}

// SolarTimeProvider resolves the sunrise and sunset instants for a calendar
// date at the provider's configured location. Implementations return an error
// for dates with no sunrise or sunset (polar day/night).
type SolarTimeProvider interface {
	SolarTimes(date time.Time) (sunrise, sunset time.Time, err error)
}

// Series owns the full chronological collection of day models, keyed by
// calendar date and linked into a chain so that each day can reach its
// neighbors. A Series is built once and is immutable afterward; queries are
// pure reads and safe for concurrent callers.
type Series struct {
	days     map[dayKey]*DayModel
	ordered  []*DayModel // chronological, matches the chain linkage
	location *time.Location
	shape    Shape
	logger   *zap.SugaredLogger
}

// dayKey identifies a calendar date independent of time-of-day and wall clock.
type dayKey struct {
	year  int
	month time.Month
	day   int
}

func keyFor(t time.Time) dayKey {
	return dayKey{t.Year(), t.Month(), t.Day()}
}

// SeriesOption adjusts series construction.
type SeriesOption func(*Series)

// WithShape overrides the default curve shape for every day in the series.
func WithShape(shape Shape) SeriesOption {
	return func(s *Series) { s.shape = shape }
}

// WithLocation sets the wall-clock location that record dates and query
// instants are interpreted in, normally a fixed zone built from the station's
// UTC offset. Defaults to UTC.
func WithLocation(loc *time.Location) SeriesOption {
	return func(s *Series) { s.location = loc }
}

// BuildSeries reads every record from reader, resolves solar anchor times
// for each date, and links the resulting day models into a chronological
// chain. Records must arrive in strictly increasing date order; a repeated
// date fails with ErrDuplicateDate. Any construction error aborts the build
// and no partial series is returned.
func BuildSeries(reader RecordReader, provider SolarTimeProvider, logger *zap.SugaredLogger, opts ...SeriesOption) (*Series, error) {
	s := &Series{
		days:     make(map[dayKey]*DayModel),
		location: time.UTC,
		shape:    DefaultShape(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	var prev *DayModel
	for {
		fields, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading daily record: %w", err)
		}

		date, minTemp, maxTemp, err := parseRecord(fields, s.location)
		if err != nil {
			return nil, err
		}

		key := keyFor(date)
		if _, exists := s.days[key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDate, date.Format("2006-01-02"))
		}
		if prev != nil && !date.After(prev.Date) {
			return nil, fmt.Errorf("%w: record %s not after %s", ErrInvalidParameter,
				date.Format("2006-01-02"), prev.Date.Format("2006-01-02"))
		}

		// Ask for solar times at local noon rather than midnight, so
		// day-boundary ambiguity cannot shift the date. The date's zone
		// already carries the station's UTC offset, so local noon is a
		// plain twelve-hour shift.
		solarDate := date.Add(12 * time.Hour)
		sunrise, sunset, err := provider.SolarTimes(solarDate)
		if err != nil {
			return nil, fmt.Errorf("resolving solar times for %s: %w", date.Format("2006-01-02"), err)
		}

		model, err := NewDayModel(minTemp, maxTemp, date, sunrise, sunset, s.shape)
		if err != nil {
			return nil, err
		}

		if prev != nil {
			prev.next = model
			model.prev = prev
		}
		s.days[key] = model
		s.ordered = append(s.ordered, model)
		prev = model
	}

	if s.logger != nil {
		s.logger.Infow("temperature series built", "days", len(s.ordered))
	}
	return s, nil
}

// parseRecord extracts the calendar date and the scaled min/max temperatures
// from one raw record.
func parseRecord(fields Fields, loc *time.Location) (date time.Time, minTemp, maxTemp float64, err error) {
	raw, ok := fields[FieldDate]
	if !ok {
		return time.Time{}, 0, 0, fmt.Errorf("record missing %s field", FieldDate)
	}
	date, err = time.ParseInLocation("20060102", raw, loc)
	if err != nil {
		return time.Time{}, 0, 0, fmt.Errorf("parsing %s %q: %w", FieldDate, raw, err)
	}

	minTemp, err = tenthsField(fields, FieldTMin)
	if err != nil {
		return time.Time{}, 0, 0, err
	}
	maxTemp, err = tenthsField(fields, FieldTMax)
	if err != nil {
		return time.Time{}, 0, 0, err
	}
	return date, minTemp, maxTemp, nil
}

// tenthsField parses a raw integer tenths-of-a-degree field into degrees.
func tenthsField(fields Fields, name string) (float64, error) {
	raw, ok := fields[name]
	if !ok {
		return 0, fmt.Errorf("record missing %s field", name)
	}
	tenths, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing %s %q: %w", name, raw, err)
	}
	return float64(tenths) * tenthsScale, nil
}

// Len returns the number of days in the series.
func (s *Series) Len() int { return len(s.ordered) }

// Location returns the wall-clock location the series interprets dates in.
func (s *Series) Location() *time.Location { return s.location }

// Days returns the day models in chronological order. The returned slice
// must not be modified.
func (s *Series) Days() []*DayModel { return s.ordered }

// Day returns the model for the calendar date containing t, or nil when the
// date is not in the series.
func (s *Series) Day(t time.Time) *DayModel {
	return s.days[keyFor(t.In(s.location))]
}

// First returns the earliest day in the series, or nil when empty.
func (s *Series) First() *DayModel {
	if len(s.ordered) == 0 {
		return nil
	}
	return s.ordered[0]
}

// Last returns the latest day in the series, or nil when empty.
func (s *Series) Last() *DayModel {
	if len(s.ordered) == 0 {
		return nil
	}
	return s.ordered[len(s.ordered)-1]
}

// TempAt resolves instant to its calendar date and delegates to that day's
// model. A date absent from the series yields ErrNoDataForDate and a warning
// diagnostic; it never yields a fabricated value, so a polling caller can
// skip the cycle and carry on.
func (s *Series) TempAt(instant time.Time) (float64, error) {
	local := instant.In(s.location)
	model, ok := s.days[keyFor(local)]
	if !ok {
		if s.logger != nil {
			s.logger.Warnw("no temperature data for date", "date", local.Format("2006-01-02"))
		}
		return 0, fmt.Errorf("%w: %s", ErrNoDataForDate, local.Format("2006-01-02"))
	}
	return model.TempAt(local)
}
