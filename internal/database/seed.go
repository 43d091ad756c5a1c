package database

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// LoadOrSeed returns the full contents of t. If the table is empty it is
// first populated from the CSV at csvPath, whose header row must match the
// table's columns in order. The CSV is a one-time bootstrap for a fresh
// database, not a sync source: once the table has rows the file is never
// consulted again.
func (db *DB) LoadOrSeed(t Table, csvPath string) ([]Row, error) {
	n, err := db.CountRows(t)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		if err := db.seedFromCSV(t, csvPath); err != nil {
			return nil, err
		}
	}
	return db.Snapshot(t)
}

func (db *DB) seedFromCSV(t Table, csvPath string) error {
	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return fmt.Errorf("parsing %s: %w", csvPath, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("seed file %s has no header row", csvPath)
	}

	header := records[0]
	if len(header) != len(t.Columns) {
		return fmt.Errorf("seed file %s: got %d columns, want %d", csvPath, len(header), len(t.Columns))
	}
	for i, col := range t.Columns {
		if strings.TrimSpace(header[i]) != col {
			return fmt.Errorf("seed file %s: column %d is %q, want %q", csvPath, i, header[i], col)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.Columns)), ", ")
	stmt, err := tx.Prepare(
		fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.Name, strings.Join(t.Columns, ", "), placeholders),
	)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, record := range records[1:] {
		values := make([]any, len(record))
		for i, cell := range record {
			// Empty cells become NULL; SQLite's column affinity converts
			// the rest.
			if cell == "" {
				continue
			}
			values[i] = cell
		}
		if _, err := stmt.Exec(values...); err != nil {
			return fmt.Errorf("seeding %s: %w", t.Name, err)
		}
	}
	return tx.Commit()
}
