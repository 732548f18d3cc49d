package ghcn

import (
	"database/sql"
	"fmt"
	"io"
	"strconv"

	"github.com/chrissnell/diurnal/internal/temperature"
	_ "modernc.org/sqlite"
)

// SQLiteReader iterates daily summaries stored in a local SQLite database.
// The expected schema is a daily_summaries table with date (YYYYMMDD text),
// tmin, and tmax (integer tenths of a degree) columns.
type SQLiteReader struct {
	db   *sql.DB
	rows *sql.Rows
}

// NewSQLiteReader opens the database and starts a date-ordered scan of the
// daily summaries.
func NewSQLiteReader(dbPath string) (*SQLiteReader, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	rows, err := db.Query(`SELECT date, tmin, tmax FROM daily_summaries ORDER BY date`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("querying daily summaries: %w", err)
	}

	return &SQLiteReader{db: db, rows: rows}, nil
}

// Next returns the next daily summary's fields, or io.EOF after the final row.
func (r *SQLiteReader) Next() (temperature.Fields, error) {
	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return nil, fmt.Errorf("scanning daily summaries: %w", err)
		}
		return nil, io.EOF
	}

	var date string
	var tmin, tmax int
	if err := r.rows.Scan(&date, &tmin, &tmax); err != nil {
		return nil, fmt.Errorf("scanning daily summary row: %w", err)
	}

	return temperature.Fields{
		temperature.FieldDate: date,
		temperature.FieldTMin: strconv.Itoa(tmin),
		temperature.FieldTMax: strconv.Itoa(tmax),
	}, nil
}

// Close releases the scan and the database handle.
func (r *SQLiteReader) Close() error {
	r.rows.Close()
	return r.db.Close()
}
