// Package ghcn reads GHCN-Daily shaped station records: one row per calendar
// day carrying a YYYYMMDD date and TMIN/TMAX values in tenths of a degree.
// Readers yield raw keyed field mappings and leave parsing and scaling to the
// temperature series.
package ghcn

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chrissnell/diurnal/internal/temperature"
)

// FileReader iterates a delimited station file with a header row naming at
// least the DATE, TMIN, and TMAX columns.
type FileReader struct {
	file   *os.File
	csv    *csv.Reader
	header []string
}

// NewFileReader opens a delimited station file. comma selects the field
// delimiter (',' for CSV, '\t' for tab-separated exports).
func NewFileReader(path string, comma rune) (*FileReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening station file: %w", err)
	}

	cr := csv.NewReader(f)
	cr.Comma = comma
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reading station file header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	for _, required := range []string{temperature.FieldDate, temperature.FieldTMin, temperature.FieldTMax} {
		found := false
		for _, col := range header {
			if col == required {
				found = true
				break
			}
		}
		if !found {
			f.Close()
			return nil, fmt.Errorf("station file %s missing %s column", path, required)
		}
	}

	return &FileReader{file: f, csv: cr, header: header}, nil
}

// Next returns the next record's fields, or io.EOF after the final row.
func (r *FileReader) Next() (temperature.Fields, error) {
	row, err := r.csv.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("reading station file row: %w", err)
	}

	fields := make(temperature.Fields, len(r.header))
	for i, col := range r.header {
		if i < len(row) {
			fields[col] = strings.TrimSpace(row[i])
		}
	}
	return fields, nil
}

// Close releases the underlying file.
func (r *FileReader) Close() error {
	return r.file.Close()
}
