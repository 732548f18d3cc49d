// Package database reads daily temperature extremes out of a TimescaleDB
// weather-readings hypertable, adapting them to the raw record format the
// temperature series consumes.
package database

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chrissnell/diurnal/internal/log"
	"github.com/chrissnell/diurnal/internal/temperature"
	"go.uber.org/zap"
)

// Client holds the connection to a TimescaleDB database.
type Client struct {
	DB     *gorm.DB
	logger *zap.SugaredLogger
}

// NewClient connects to TimescaleDB.
func NewClient(connectionString string, l *zap.SugaredLogger) (*Client, error) {
	dbLogger := logger.New(
		zap.NewStdLog(log.GetZapLogger()),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(connectionString), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, fmt.Errorf("unable to create a TimescaleDB connection: %w", err)
	}

	return &Client{DB: db, logger: l}, nil
}

// dailyExtreme is one per-day aggregate row from the readings hypertable.
type dailyExtreme struct {
	Date    string  `gorm:"column:date"`
	MinTemp float64 `gorm:"column:min_outtemp"`
	MaxTemp float64 `gorm:"column:max_outtemp"`
}

// DailyExtremes fetches per-day outdoor temperature extremes for one station
// over [start, end) and returns a reader over them in date order.
func (c *Client) DailyExtremes(stationName string, start, end time.Time) (*ExtremesReader, error) {
	var rows []dailyExtreme
	err := c.DB.Raw(`
		SELECT to_char(time AT TIME ZONE 'UTC', 'YYYYMMDD') AS date,
		       MIN(outtemp) AS min_outtemp,
		       MAX(outtemp) AS max_outtemp
		FROM weather
		WHERE stationname = ? AND time >= ? AND time < ?
		GROUP BY 1
		ORDER BY 1`, stationName, start, end).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetching daily extremes for %s: %w", stationName, err)
	}

	c.logger.Infow("fetched daily extremes", "station", stationName, "days", len(rows))
	return &ExtremesReader{rows: rows}, nil
}

// ExtremesReader adapts fetched daily extremes to the raw record contract:
// temperatures are re-expressed as integer tenths of a degree.
type ExtremesReader struct {
	rows []dailyExtreme
	pos  int
}

// Next returns the next day's fields, or io.EOF after the final row.
func (r *ExtremesReader) Next() (temperature.Fields, error) {
	if r.pos >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.pos]
	r.pos++

	return temperature.Fields{
		temperature.FieldDate: row.Date,
		temperature.FieldTMin: strconv.Itoa(int(math.Round(row.MinTemp * 10))),
		temperature.FieldTMax: strconv.Itoa(int(math.Round(row.MaxTemp * 10))),
	}, nil
}
