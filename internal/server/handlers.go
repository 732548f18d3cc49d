package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/chrissnell/diurnal/internal/temperature"
	"github.com/chrissnell/diurnal/pkg/responseformat"
	"github.com/gorilla/mux"
)

// Handlers contains all HTTP handlers for the REST server.
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance.
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// TemperatureResponse is one point estimate on the temperature curve.
type TemperatureResponse struct {
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature"`
}

// DayResponse describes one day's model and its hourly curve.
type DayResponse struct {
	Date        string        `json:"date"`
	MinTemp     float64       `json:"min_temp"`
	MaxTemp     float64       `json:"max_temp"`
	Sunrise     time.Time     `json:"sunrise"`
	Sunset      time.Time     `json:"sunset"`
	TimeOfMin   time.Time     `json:"time_of_min"`
	TimeOfMax   time.Time     `json:"time_of_max"`
	SunsetTemp  float64       `json:"sunset_temp"`
	HourlyCurve []CurveSample `json:"hourly_curve"`
}

// CurveSample is one computable point of a day's curve. Points in segments
// that need a missing neighbor are omitted from the curve rather than filled
// with invented values.
type CurveSample struct {
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// GetTemperature serves the point query: /api/temperature?time=RFC3339.
// An omitted time parameter queries the current instant.
func (h *Handlers) GetTemperature(w http.ResponseWriter, req *http.Request) {
	instant := time.Now()
	if raw := req.URL.Query().Get("time"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.formatter.WriteResponse(w, req, http.StatusBadRequest,
				errorResponse{Error: "time must be RFC3339, e.g. 2023-07-01T14:00:00Z"})
			return
		}
		instant = parsed
	}

	value, err := h.controller.series.TempAt(instant)
	switch {
	case errors.Is(err, temperature.ErrNoDataForDate), errors.Is(err, temperature.ErrMissingNeighbor):
		h.formatter.WriteResponse(w, req, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	case err != nil:
		h.formatter.WriteResponse(w, req, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	h.formatter.WriteResponse(w, req, http.StatusOK, TemperatureResponse{
		Time:        instant,
		Temperature: value,
	})
}

// GetDay serves one day's model and hourly curve: /api/day/{date} with the
// date in YYYYMMDD form.
func (h *Handlers) GetDay(w http.ResponseWriter, req *http.Request) {
	raw := mux.Vars(req)["date"]
	date, err := time.ParseInLocation("20060102", raw, h.controller.series.Location())
	if err != nil {
		h.formatter.WriteResponse(w, req, http.StatusBadRequest,
			errorResponse{Error: "date must be YYYYMMDD"})
		return
	}

	model := h.controller.series.Day(date)
	if model == nil {
		h.formatter.WriteResponse(w, req, http.StatusNotFound,
			errorResponse{Error: "no data for date " + raw})
		return
	}

	resp := DayResponse{
		Date:       model.Date.Format("2006-01-02"),
		MinTemp:    model.MinTemp,
		MaxTemp:    model.MaxTemp,
		Sunrise:    model.Sunrise,
		Sunset:     model.Sunset,
		TimeOfMin:  model.TimeOfMin(),
		TimeOfMax:  model.TimeOfMax(),
		SunsetTemp: model.SunsetTemp(),
	}
	for t := model.DayStart(); t.Before(model.DayEnd()); t = t.Add(time.Hour) {
		value, err := model.TempAt(t)
		if err != nil {
			continue
		}
		resp.HourlyCurve = append(resp.HourlyCurve, CurveSample{Time: t, Temperature: value})
	}

	h.formatter.WriteResponse(w, req, http.StatusOK, resp)
}

// GetSummary serves series-level statistics: /api/summary.
func (h *Handlers) GetSummary(w http.ResponseWriter, req *http.Request) {
	h.formatter.WriteResponse(w, req, http.StatusOK, h.controller.series.Summarize())
}
