package migrations

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"shiftpay/internal/logging"
)

func init() {
	RegisterGoMigration(3, Up_000003_normalize_legacy_values, Down_000003_normalize_legacy_values)
}

// Up_000003_normalize_legacy_values rewrites values written by older tooling into the canonical text formats:
// - clock values with fractional seconds or without seconds become HH:MM:SS
// - created_at values in "YYYY-MM-DD HH:MM:SS[.ffffff]" or Go's default layout become RFC3339
// - dates carrying a time part are cut down to YYYY-MM-DD
func Up_000003_normalize_legacy_values(tx *sql.Tx) error {
	// Read all rows into memory first to avoid locking issues
	type entry struct {
		id        int64
		date      string
		startTime string
		endTime   string
		createdAt string
	}
	var entries []entry

	rows, err := tx.Query("SELECT id, date, start_time, end_time, created_at FROM time_entries")
	if err != nil {
		return fmt.Errorf("failed to query time entries: %w", err)
	}
	for rows.Next() {
		var e entry
		if err := rows.Scan(&e.id, &e.date, &e.startTime, &e.endTime, &e.createdAt); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan row %d: %w", e.id, err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating time entries: %w", err)
	}
	rows.Close()

	stmt, err := tx.Prepare("UPDATE time_entries SET date = ?, start_time = ?, end_time = ?, created_at = ? WHERE id = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	updates := 0
	for _, e := range entries {
		date := normalizeDate(e.date)

		start, err := normalizeClock(e.startTime)
		if err != nil {
			return fmt.Errorf("start_time of entry %d: %w", e.id, err)
		}
		end, err := normalizeClock(e.endTime)
		if err != nil {
			return fmt.Errorf("end_time of entry %d: %w", e.id, err)
		}
		createdAt, err := normalizeTimestamp(e.createdAt)
		if err != nil {
			return fmt.Errorf("created_at of entry %d: %w", e.id, err)
		}

		if date == e.date && start == e.startTime && end == e.endTime && createdAt == e.createdAt {
			continue
		}
		if _, err := stmt.Exec(date, start, end, createdAt, e.id); err != nil {
			return fmt.Errorf("failed to update entry %d: %w", e.id, err)
		}
		updates++
	}

	if _, err := tx.Exec(`
		INSERT INTO entry_sequence (id, last_value)
		SELECT 1, COALESCE(MAX(sequence_number), 0) FROM time_entries
		WHERE true
		ON CONFLICT(id) DO UPDATE SET last_value = MAX(last_value, excluded.last_value)
	`); err != nil {
		return fmt.Errorf("failed to seed entry sequence: %w", err)
	}

	logging.Debugf("Migration 3: processed %d entries, normalized %d\n", len(entries), updates)
	return nil
}

// Down_000003_normalize_legacy_values is a no-op: the canonical formats are readable by older tooling.
func Down_000003_normalize_legacy_values(tx *sql.Tx) error {
	return nil
}

func normalizeDate(value string) string {
	if len(value) > 10 && (value[10] == ' ' || value[10] == 'T') {
		return value[:10]
	}
	return value
}

// normalizeClock accepts HH:MM, HH:MM:SS and HH:MM:SS.ffffff
func normalizeClock(value string) (string, error) {
	if idx := strings.IndexByte(value, '.'); idx != -1 {
		value = value[:idx]
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("15:04:05"), nil
		}
	}
	return "", fmt.Errorf("could not parse clock value: %q", value)
}

func normalizeTimestamp(value string) (string, error) {
	if idx := strings.Index(value, " m="); idx != -1 {
		value = value[:idx]
	}

	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999 -0700 MST",
		"2006-01-02 15:04:05.999999999 -0700",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04:05.999999999",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(time.RFC3339), nil
		}
	}
	return "", fmt.Errorf("could not parse timestamp: %q", value)
}
