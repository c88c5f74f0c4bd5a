package migrations

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestRunMigrations_CreatesSchema(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(db))

	for _, table := range []string{"migrations", "rate_settings", "time_entries", "entry_sequence"} {
		assert.Truef(t, tableExists(t, db, table), "table %s should exist", table)
	}

	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations WHERE dirty = 0").Scan(&applied))
	assert.Equal(t, 3, applied)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(db))
	require.NoError(t, RunMigrations(db))

	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&applied))
	assert.Equal(t, 3, applied)
}

func TestNormalizeLegacyValuesMigration(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`CREATE TABLE time_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence_number INTEGER,
		date TEXT,
		start_time TEXT,
		end_time TEXT,
		created_at TEXT
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE entry_sequence (id INTEGER PRIMARY KEY, last_value INTEGER NOT NULL DEFAULT 0)`)
	require.NoError(t, err)

	_, err = db.Exec(`
		INSERT INTO time_entries (sequence_number, date, start_time, end_time, created_at) VALUES
		(1, '2024-01-15', '09:00:00.000000', '17:30:00.000000', '2024-01-15 17:31:02.123456'),
		(2, '2024-01-16 00:00:00', '22:00', '06:00', '2024-01-16 22:00:00.5 +0100 BST m=+0.002409088'),
		(7, '2024-01-17', '08:15:00', '12:00:00', '2024-01-17T12:00:00Z')
	`)
	require.NoError(t, err)

	tx, err := db.Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	require.NoError(t, Up_000003_normalize_legacy_values(tx))
	require.NoError(t, tx.Commit())

	type row struct {
		date, start, end, createdAt string
	}
	expected := map[int64]row{
		1: {"2024-01-15", "09:00:00", "17:30:00", "2024-01-15T17:31:02Z"},
		2: {"2024-01-16", "22:00:00", "06:00:00", "2024-01-16T22:00:00+01:00"},
		3: {"2024-01-17", "08:15:00", "12:00:00", "2024-01-17T12:00:00Z"},
	}

	rows, err := db.Query("SELECT id, date, start_time, end_time, created_at FROM time_entries ORDER BY id")
	require.NoError(t, err)
	defer rows.Close()

	seen := 0
	for rows.Next() {
		var id int64
		var r row
		require.NoError(t, rows.Scan(&id, &r.date, &r.start, &r.end, &r.createdAt))
		assert.Equal(t, expected[id], r, "entry %d", id)
		seen++
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, 3, seen)

	var last int64
	require.NoError(t, db.QueryRow("SELECT last_value FROM entry_sequence WHERE id = 1").Scan(&last))
	assert.Equal(t, int64(7), last)
}

func TestNormalizeLegacyValuesMigration_RejectsGarbage(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`CREATE TABLE time_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence_number INTEGER,
		date TEXT,
		start_time TEXT,
		end_time TEXT,
		created_at TEXT
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO time_entries (sequence_number, date, start_time, end_time, created_at)
		VALUES (1, '2024-01-15', 'nine o''clock', '17:00:00', '2024-01-15T17:00:00Z')`)
	require.NoError(t, err)

	tx, err := db.Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	err = Up_000003_normalize_legacy_values(tx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start_time of entry 1")
}

func TestRunMigrations_DirtyDatabase(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	// Create migrations table
	_, err = db.Exec(`
		CREATE TABLE migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			dirty BOOLEAN DEFAULT FALSE
		)
	`)
	require.NoError(t, err)

	// Mark a migration as dirty
	_, err = db.Exec("INSERT INTO migrations (version, dirty) VALUES (1, TRUE)")
	require.NoError(t, err)

	// Try to run migrations - should fail due to dirty state
	err = RunMigrations(db)
	require.Error(t, err)

	assert.True(t, strings.Contains(err.Error(), "database is in a dirty state"), "got: %v", err)
	assert.True(t, strings.Contains(err.Error(), "failed migration(s): [1]"), "got: %v", err)
}

func TestRunMigrations_PreservesExistingData(t *testing.T) {
	db := openTestDB(t)

	// Create some initial data
	_, err := db.Exec(`CREATE TABLE test_data (id INTEGER PRIMARY KEY, value TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO test_data (value) VALUES ('original data')`)
	require.NoError(t, err)

	require.NoError(t, RunMigrations(db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM test_data").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestRollback(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RunMigrations(db))

	tests := []struct {
		name          string
		wantVersion   int
		droppedTables []string
	}{
		{name: "should revert the go migration first", wantVersion: 3},
		{name: "should drop time entries next", wantVersion: 2, droppedTables: []string{"time_entries", "entry_sequence"}},
		{name: "should drop rate settings last", wantVersion: 1, droppedTables: []string{"rate_settings"}},
		{name: "should report nothing left to revert", wantVersion: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, err := Rollback(db)
			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, version)
			for _, table := range tt.droppedTables {
				assert.Falsef(t, tableExists(t, db, table), "table %s should be dropped", table)
			}
		})
	}

	// Everything can be re-applied afterwards
	require.NoError(t, RunMigrations(db))
	assert.True(t, tableExists(t, db, "time_entries"))
}

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		filename string
		want     int
	}{
		{"000001_create_rate_settings.up.sql", 1},
		{"000012_something.down.sql", 12},
		{"readme.md", 0},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, extractVersion(tt.filename))
		})
	}
}
