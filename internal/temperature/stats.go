package temperature

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the daily extremes across a whole series.
type Summary struct {
	Days       int     `json:"days"`
	MinTemp    float64 `json:"min_temp"`
	MaxTemp    float64 `json:"max_temp"`
	MeanMin    float64 `json:"mean_min"`
	MeanMax    float64 `json:"mean_max"`
	StdDevMin  float64 `json:"stddev_min"`
	StdDevMax  float64 `json:"stddev_max"`
	FirstDate  string  `json:"first_date"`
	LastDate   string  `json:"last_date"`
}

// Summarize computes series-level statistics over the loaded daily extremes.
func (s *Series) Summarize() Summary {
	if len(s.ordered) == 0 {
		return Summary{}
	}

	mins := make([]float64, len(s.ordered))
	maxes := make([]float64, len(s.ordered))
	low := math.Inf(1)
	high := math.Inf(-1)
	for i, m := range s.ordered {
		mins[i] = m.MinTemp
		maxes[i] = m.MaxTemp
		low = math.Min(low, m.MinTemp)
		high = math.Max(high, m.MaxTemp)
	}

	return Summary{
		Days:      len(s.ordered),
		MinTemp:   low,
		MaxTemp:   high,
		MeanMin:   stat.Mean(mins, nil),
		MeanMax:   stat.Mean(maxes, nil),
		StdDevMin: stat.StdDev(mins, nil),
		StdDevMax: stat.StdDev(maxes, nil),
		FirstDate: s.ordered[0].Date.Format("2006-01-02"),
		LastDate:  s.ordered[len(s.ordered)-1].Date.Format("2006-01-02"),
	}
}

// MeanTemp estimates the day's mean temperature by sampling the curve at the
// given step and averaging. Days at the series boundaries cannot cover their
// nighttime segments and return ErrMissingNeighbor.
func (m *DayModel) MeanTemp(step time.Duration) (float64, error) {
	if step <= 0 {
		return 0, fmt.Errorf("%w: non-positive sampling step %v", ErrInvalidParameter, step)
	}

	var samples []float64
	for t := m.DayStart().Add(step); !t.After(m.DayEnd()); t = t.Add(step) {
		v, err := m.TempAt(t)
		if err != nil {
			return 0, err
		}
		samples = append(samples, v)
	}
	if len(samples) == 0 {
		return 0, fmt.Errorf("%w: step %v yields no samples", ErrInvalidParameter, step)
	}
	return stat.Mean(samples, nil), nil
}
