package ghcn

import (
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeStationFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "station.csv")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing station file: %v", err)
	}
	return path
}

func TestFileReader(t *testing.T) {
	path := writeStationFile(t, "STATION,DATE,TMIN,TMAX\nUSW00094728,20230701,50,200\nUSW00094728,20230702,60,210\n")

	r, err := NewFileReader(path, ',')
	if err != nil {
		t.Fatalf("NewFileReader: %v", err)
	}
	defer r.Close()

	first, err := r.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if first["DATE"] != "20230701" || first["TMIN"] != "50" || first["TMAX"] != "200" {
		t.Errorf("first record = %v", first)
	}
	if first["STATION"] != "USW00094728" {
		t.Errorf("extra columns should be carried through, got %v", first)
	}

	if _, err := r.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next after final row: error = %v, expected io.EOF", err)
	}
}

func TestFileReaderTabDelimited(t *testing.T) {
	path := writeStationFile(t, "DATE\tTMIN\tTMAX\n20230701\t50\t200\n")

	r, err := NewFileReader(path, '\t')
	if err != nil {
		t.Fatalf("NewFileReader: %v", err)
	}
	defer r.Close()

	rec, err := r.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if rec["TMAX"] != "200" {
		t.Errorf("record = %v", rec)
	}
}

func TestFileReaderMissingColumns(t *testing.T) {
	path := writeStationFile(t, "DATE,TMIN\n20230701,50\n")

	if _, err := NewFileReader(path, ','); err == nil {
		t.Error("NewFileReader accepted a file without a TMAX column")
	}
}

func TestFileReaderMissingFile(t *testing.T) {
	if _, err := NewFileReader(filepath.Join(t.TempDir(), "nope.csv"), ','); err == nil {
		t.Error("NewFileReader accepted a nonexistent file")
	}
}

func TestSQLiteReader(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "station.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE daily_summaries (date TEXT PRIMARY KEY, tmin INTEGER, tmax INTEGER)`); err != nil {
		t.Fatalf("creating table: %v", err)
	}
	// Insert out of order; the reader must return rows sorted by date.
	for _, row := range [][]any{
		{"20230702", 60, 210},
		{"20230701", 50, 200},
	} {
		if _, err := db.Exec(`INSERT INTO daily_summaries (date, tmin, tmax) VALUES (?, ?, ?)`, row...); err != nil {
			t.Fatalf("inserting row: %v", err)
		}
	}
	db.Close()

	r, err := NewSQLiteReader(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteReader: %v", err)
	}
	defer r.Close()

	first, err := r.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if first["DATE"] != "20230701" || first["TMIN"] != "50" {
		t.Errorf("first record = %v", first)
	}
	second, err := r.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if second["DATE"] != "20230702" || second["TMAX"] != "210" {
		t.Errorf("second record = %v", second)
	}
	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next after final row: error = %v, expected io.EOF", err)
	}
}
