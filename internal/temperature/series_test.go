package temperature

import (
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"go.uber.org/zap"
)

// sliceReader yields a fixed set of records, like a station file would.
type sliceReader struct {
	records []Fields
	pos     int
}

func (r *sliceReader) Next() (Fields, error) {
	if r.pos >= len(r.records) {
		return nil, io.EOF
	}
	rec := r.records[r.pos]
	r.pos++
	return rec, nil
}

// fixedSolar returns the same wall-clock sunrise/sunset for every date.
type fixedSolar struct {
	sunriseHour int
	sunsetHour  int
}

func (p fixedSolar) SolarTimes(date time.Time) (time.Time, time.Time, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.Add(time.Duration(p.sunriseHour) * time.Hour),
		day.Add(time.Duration(p.sunsetHour) * time.Hour), nil
}

// polarSolar simulates a date with no sunrise or sunset.
type polarSolar struct{}

func (polarSolar) SolarTimes(time.Time) (time.Time, time.Time, error) {
	return time.Time{}, time.Time{}, errors.New("sun never rises")
}

func buildTestSeries(t *testing.T, records []Fields) *Series {
	t.Helper()
	s, err := BuildSeries(&sliceReader{records: records}, fixedSolar{6, 18}, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("BuildSeries: %v", err)
	}
	return s
}

func TestBuildSeriesLinksChain(t *testing.T) {
	s := buildTestSeries(t, []Fields{
		{"DATE": "20230701", "TMIN": "50", "TMAX": "200"},
		{"DATE": "20230702", "TMIN": "60", "TMAX": "210"},
		{"DATE": "20230703", "TMIN": "55", "TMAX": "195"},
	})

	if s.Len() != 3 {
		t.Fatalf("Len = %d, expected 3", s.Len())
	}

	days := s.Days()
	for i, m := range days {
		if i > 0 && m.Prev() != days[i-1] {
			t.Errorf("day %d prev link broken", i)
		}
		if i < len(days)-1 && m.Next() != days[i+1] {
			t.Errorf("day %d next link broken", i)
		}
	}
	if days[0].Prev() != nil || days[2].Next() != nil {
		t.Error("chain endpoints should have no neighbors")
	}

	// Raw tenths are scaled to physical units at load.
	if days[0].MinTemp != 5.0 || days[0].MaxTemp != 20.0 {
		t.Errorf("day 0 extremes = %v/%v, expected 5/20", days[0].MinTemp, days[0].MaxTemp)
	}
}

func TestTwoDayScenario(t *testing.T) {
	// Day one 5.0..20.0, day two min 6.0, sunrise 06:00, sunset 18:00.
	// With the default lags the maximum falls at 14:00 and the minimum at
	// 05:00, and querying 14:00 reproduces the daily maximum.
	s := buildTestSeries(t, []Fields{
		{"DATE": "20230701", "TMIN": "50", "TMAX": "200"},
		{"DATE": "20230702", "TMIN": "60", "TMAX": "210"},
	})

	day1 := s.First()
	if got := day1.TimeOfMax(); !got.Equal(day1.Date.Add(14 * time.Hour)) {
		t.Errorf("TimeOfMax = %v, expected 14:00", got)
	}
	if got := day1.TimeOfMin(); !got.Equal(day1.Date.Add(5 * time.Hour)) {
		t.Errorf("TimeOfMin = %v, expected 05:00", got)
	}

	got, err := s.TempAt(time.Date(2023, 7, 1, 14, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("TempAt: %v", err)
	}
	if math.Abs(got-20.0) > tolerance {
		t.Errorf("TempAt(14:00) = %v, expected 20.0", got)
	}
}

func TestRoundTripExtremes(t *testing.T) {
	records := []Fields{
		{"DATE": "20230701", "TMIN": "40", "TMAX": "180"},
		{"DATE": "20230702", "TMIN": "50", "TMAX": "200"},
		{"DATE": "20230703", "TMIN": "60", "TMAX": "210"},
		{"DATE": "20230704", "TMIN": "55", "TMAX": "190"},
	}
	s := buildTestSeries(t, records)

	// Interior days have both neighbors, so the closed segment boundaries
	// reproduce the loaded extremes exactly.
	for _, m := range s.Days()[1 : s.Len()-1] {
		gotMin, err := s.TempAt(m.TimeOfMin())
		if err != nil {
			t.Fatalf("TempAt(TimeOfMin) on %v: %v", m.Date, err)
		}
		if math.Abs(gotMin-m.MinTemp) > tolerance {
			t.Errorf("%v: TempAt(TimeOfMin) = %v, expected %v", m.Date, gotMin, m.MinTemp)
		}

		gotMax, err := s.TempAt(m.TimeOfMax())
		if err != nil {
			t.Fatalf("TempAt(TimeOfMax) on %v: %v", m.Date, err)
		}
		if math.Abs(gotMax-m.MaxTemp) > tolerance {
			t.Errorf("%v: TempAt(TimeOfMax) = %v, expected %v", m.Date, gotMax, m.MaxTemp)
		}
	}
}

func TestQueryMissingDate(t *testing.T) {
	s := buildTestSeries(t, []Fields{
		{"DATE": "20230701", "TMIN": "50", "TMAX": "200"},
		{"DATE": "20230702", "TMIN": "60", "TMAX": "210"},
	})

	_, err := s.TempAt(time.Date(2023, 8, 15, 12, 0, 0, 0, time.UTC))
	if !errors.Is(err, ErrNoDataForDate) {
		t.Errorf("query of absent date: error = %v, expected ErrNoDataForDate", err)
	}
}

func TestQueryFirstDayPreDawn(t *testing.T) {
	s := buildTestSeries(t, []Fields{
		{"DATE": "20230701", "TMIN": "50", "TMAX": "200"},
		{"DATE": "20230702", "TMIN": "60", "TMAX": "210"},
	})

	// 02:00 on the first day falls in the pre-dawn segment, which needs the
	// previous evening's curve.
	_, err := s.TempAt(time.Date(2023, 7, 1, 2, 0, 0, 0, time.UTC))
	if !errors.Is(err, ErrMissingNeighbor) {
		t.Errorf("first-day pre-dawn query: error = %v, expected ErrMissingNeighbor", err)
	}
}

func TestBuildSeriesErrors(t *testing.T) {
	tests := []struct {
		name    string
		records []Fields
		wantErr error
	}{
		{
			name: "duplicate date",
			records: []Fields{
				{"DATE": "20230701", "TMIN": "50", "TMAX": "200"},
				{"DATE": "20230701", "TMIN": "60", "TMAX": "210"},
			},
			wantErr: ErrDuplicateDate,
		},
		{
			name: "out of order",
			records: []Fields{
				{"DATE": "20230702", "TMIN": "50", "TMAX": "200"},
				{"DATE": "20230701", "TMIN": "60", "TMAX": "210"},
			},
			wantErr: ErrInvalidParameter,
		},
		{
			name: "minimum above maximum",
			records: []Fields{
				{"DATE": "20230701", "TMIN": "210", "TMAX": "200"},
			},
			wantErr: ErrInvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildSeries(&sliceReader{records: tt.records}, fixedSolar{6, 18}, zap.NewNop().Sugar())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("BuildSeries error = %v, expected %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildSeriesMalformedRecords(t *testing.T) {
	tests := []struct {
		name   string
		record Fields
	}{
		{"missing date", Fields{"TMIN": "50", "TMAX": "200"}},
		{"bad date", Fields{"DATE": "araphel", "TMIN": "50", "TMAX": "200"}},
		{"missing tmin", Fields{"DATE": "20230701", "TMAX": "200"}},
		{"non-numeric tmax", Fields{"DATE": "20230701", "TMIN": "50", "TMAX": "warm"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildSeries(&sliceReader{records: []Fields{tt.record}}, fixedSolar{6, 18}, zap.NewNop().Sugar())
			if err == nil {
				t.Error("BuildSeries succeeded, expected parse error")
			}
		})
	}
}

func TestBuildSeriesPolarProvider(t *testing.T) {
	_, err := BuildSeries(&sliceReader{records: []Fields{
		{"DATE": "20230701", "TMIN": "50", "TMAX": "200"},
	}}, polarSolar{}, zap.NewNop().Sugar())
	if err == nil {
		t.Error("BuildSeries succeeded with a polar solar provider, expected error")
	}
}

func TestSeriesTempAtIdempotent(t *testing.T) {
	s := buildTestSeries(t, []Fields{
		{"DATE": "20230701", "TMIN": "50", "TMAX": "200"},
		{"DATE": "20230702", "TMIN": "60", "TMAX": "210"},
		{"DATE": "20230703", "TMIN": "55", "TMAX": "195"},
	})

	instants := []time.Time{
		time.Date(2023, 7, 2, 3, 0, 0, 0, time.UTC),
		time.Date(2023, 7, 2, 9, 30, 0, 0, time.UTC),
		time.Date(2023, 7, 2, 16, 0, 0, 0, time.UTC),
		time.Date(2023, 7, 2, 22, 15, 0, 0, time.UTC),
	}
	for _, instant := range instants {
		first, err := s.TempAt(instant)
		if err != nil {
			t.Fatalf("TempAt(%v): %v", instant, err)
		}
		for i := 0; i < 5; i++ {
			again, err := s.TempAt(instant)
			if err != nil {
				t.Fatalf("TempAt(%v): %v", instant, err)
			}
			if again != first {
				t.Fatalf("TempAt(%v) not idempotent: %v != %v", instant, again, first)
			}
		}
	}
}
