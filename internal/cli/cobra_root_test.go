package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftpay/internal/api"
	"shiftpay/internal/config"
	"shiftpay/internal/logging"
	"shiftpay/internal/repository/sqlite"
)

var fixedNow = time.Date(2024, 3, 7, 18, 45, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	logging.SetOutput(io.Discard)
	timeNow = func() time.Time { return fixedNow }
	os.Exit(m.Run())
}

// Helper functions
func setupTestAPI(t *testing.T) api.BusinessAPI {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return api.NewBusinessAPI(repo, config.NewConfig())
}

func runCLI(t *testing.T, businessAPI api.BusinessAPI, args ...string) (string, error) {
	t.Helper()
	return runRoot(t, NewRootCommand(businessAPI, config.NewConfig()), args...)
}

func runRoot(t *testing.T, root *RootCommand, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root.cmd.SetOut(&out)
	root.cmd.SetErr(&out)
	root.cmd.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, businessAPI api.BusinessAPI, args ...string) string {
	t.Helper()
	out, err := runCLI(t, businessAPI, args...)
	require.NoError(t, err)
	return out
}

func TestRateCommand(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		expected      string
		expectedError string
	}{
		{
			name:     "should show the default rate",
			args:     []string{"rate"},
			expected: "Current rate: $25.00/hour\n",
		},
		{
			name:     "should show the rate with the show subcommand",
			args:     []string{"rate", "show"},
			expected: "Current rate: $25.00/hour\n",
		},
		{
			name:     "should set a new rate",
			args:     []string{"rate", "set", "27.5"},
			expected: "Settings updated successfully! New rate: $27.50/hour\n",
		},
		{
			name:          "should reject a rate out of range",
			args:          []string{"rate", "set", "0"},
			expectedError: "failed to update rate:",
		},
		{
			name:          "should reject a rate that is not a number",
			args:          []string{"rate", "set", "lots"},
			expectedError: "failed to update rate:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, setupTestAPI(t), tt.args...)
			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestAddCommand(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		expected      []string
		expectedError string
	}{
		{
			name:     "should default to today from nine to five",
			args:     []string{"add"},
			expected: []string{"Time entry #1 saved! Total: 8.00h, Pay: $200.00\n"},
		},
		{
			name: "should record an overnight shift",
			args: []string{"add", "--date", "2024-03-01", "--start", "22:00", "--end", "06:00"},
			expected: []string{
				"Time entry #1 saved! Total: 8.00h, Pay: $200.00\n",
				"Shift ends on 02/03/2024.\n",
			},
		},
		{
			name: "should warn about a long shift",
			args: []string{"add", "--date", "2024-03-01", "--start", "06:00", "--end", "23:30"},
			expected: []string{
				"Warning: Shift duration exceeds 16 hours.\n",
				"Time entry #1 saved! Total: 17.50h, Pay: $437.50\n",
			},
		},
		{
			name:          "should reject an invalid date",
			args:          []string{"add", "--date", "2024-13-01"},
			expectedError: "failed to record shift:",
		},
		{
			name:          "should reject positional arguments",
			args:          []string{"add", "tomorrow"},
			expectedError: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, setupTestAPI(t), tt.args...)
			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.Join(tt.expected, ""), out)
		})
	}
}

func TestHistoryCommand(t *testing.T) {
	businessAPI := setupTestAPI(t)
	mustRun(t, businessAPI, "add", "--date", "2024-03-01", "--start", "09:00", "--end", "17:00")
	mustRun(t, businessAPI, "add", "--date", "2024-03-02", "--start", "22:00", "--end", "06:00")
	mustRun(t, businessAPI, "toggle", "1")

	t.Run("should list every entry with totals", func(t *testing.T) {
		out := mustRun(t, businessAPI, "history")
		lines := strings.Split(strings.TrimSpace(out), "\n")

		require.Len(t, lines, 6)
		assert.Contains(t, lines[0], "Status")
		assert.Contains(t, lines[1], "01/03/2024")
		assert.Contains(t, lines[1], "paid")
		assert.Contains(t, lines[2], "06:00 (+1)")
		assert.Contains(t, lines[2], "unpaid")
		assert.Equal(t, "Total:  16.00h, $400.00 (2 entries)", lines[4])
		assert.Equal(t, "Unpaid: 8.00h, $200.00 (1 entries)", lines[5])
	})

	t.Run("should only list unpaid entries", func(t *testing.T) {
		out := mustRun(t, businessAPI, "history", "--unpaid")
		assert.NotContains(t, out, "01/03/2024")
		assert.Contains(t, out, "02/03/2024")
		assert.Contains(t, out, "Total:  8.00h, $200.00 (1 entries)")
	})

	t.Run("should filter by lenient dates", func(t *testing.T) {
		out := mustRun(t, businessAPI, "history", "--from", "02/03/2024")
		assert.NotContains(t, out, "01/03/2024")
		assert.Contains(t, out, "02/03/2024")
	})

	t.Run("should report an empty result", func(t *testing.T) {
		out := mustRun(t, businessAPI, "history", "--from", "2025-01-01")
		assert.Equal(t, "No time entries found\n", out)
	})

	t.Run("should reject an unparseable date", func(t *testing.T) {
		_, err := runCLI(t, businessAPI, "history", "--from", "not a date")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load history:")
	})

	t.Run("should honour the date format flag", func(t *testing.T) {
		out := mustRun(t, businessAPI, "--date-format", "2006-01-02", "history")
		assert.Contains(t, out, "2024-03-01")
	})
}

func TestToggleAndDeleteCommands(t *testing.T) {
	businessAPI := setupTestAPI(t)
	mustRun(t, businessAPI, "add", "--date", "2024-03-01")

	tests := []struct {
		name          string
		args          []string
		expected      string
		expectedError string
	}{
		{
			name:     "should mark an entry as paid",
			args:     []string{"toggle", "1"},
			expected: "Entry #1 marked as paid.\n",
		},
		{
			name:     "should mark it unpaid again",
			args:     []string{"toggle", "1"},
			expected: "Entry #1 marked as unpaid.\n",
		},
		{
			name:          "should report an unknown entry",
			args:          []string{"toggle", "99"},
			expectedError: "not found",
		},
		{
			name:          "should reject a non-numeric id",
			args:          []string{"toggle", "abc"},
			expectedError: "entry ID must be a positive number",
		},
		{
			name:     "should delete an entry",
			args:     []string{"delete", "1"},
			expected: "Entry #1 deleted successfully.\n",
		},
		{
			name:          "should report deleting it twice",
			args:          []string{"delete", "1"},
			expectedError: "failed to delete entry:",
		},
		{
			name:     "should not reuse the deleted sequence number",
			args:     []string{"add", "--date", "2024-03-02"},
			expected: "Time entry #2 saved! Total: 8.00h, Pay: $200.00\n",
		},
	}

	// Steps share one store and run in order
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, businessAPI, tt.args...)
			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestPayAllCommand(t *testing.T) {
	tests := []struct {
		name     string
		shifts   []string
		args     []string
		expected string
	}{
		{
			name:     "should report when nothing is unpaid",
			args:     []string{"pay-all"},
			expected: "No unpaid entries found to mark as paid.\n",
		},
		{
			name:     "should mark every unpaid entry",
			shifts:   []string{"2024-03-01", "2024-03-02"},
			args:     []string{"pay-all"},
			expected: "Marked 2 entries as paid. Total: $400.00\n",
		},
		{
			name:     "should restrict to the date range",
			shifts:   []string{"2024-03-01", "2024-03-02", "2024-04-01"},
			args:     []string{"pay-all", "--from", "2024-03-01", "--to", "2024-03-31"},
			expected: "Marked 2 entries as paid. Total: $400.00\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			businessAPI := setupTestAPI(t)
			for _, date := range tt.shifts {
				mustRun(t, businessAPI, "add", "--date", date)
			}

			out := mustRun(t, businessAPI, tt.args...)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestExportPDFCommand(t *testing.T) {
	t.Run("should report an empty export without writing a file", func(t *testing.T) {
		dir := t.TempDir()
		out := mustRun(t, setupTestAPI(t), "export-pdf", "--output", dir)

		assert.Equal(t, "No unpaid entries to export.\n", out)
		files, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("should write the report into a directory", func(t *testing.T) {
		businessAPI := setupTestAPI(t)
		mustRun(t, businessAPI, "add", "--date", "2024-03-01")
		dir := t.TempDir()

		out := mustRun(t, businessAPI, "export-pdf", "--output", dir)

		path := filepath.Join(dir, "unpaid_entries_20240307.pdf")
		assert.Equal(t, "Unpaid entries report written to "+path+"\n", out)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	})

	t.Run("should write the report to a named file", func(t *testing.T) {
		businessAPI := setupTestAPI(t)
		mustRun(t, businessAPI, "add", "--date", "2024-03-01")
		path := filepath.Join(t.TempDir(), "march.pdf")

		mustRun(t, businessAPI, "export-pdf", "-o", path)

		_, err := os.Stat(path)
		assert.NoError(t, err)
	})
}

func TestBackupAndRestoreCommands(t *testing.T) {
	source := setupTestAPI(t)
	mustRun(t, source, "rate", "set", "30")
	mustRun(t, source, "add", "--date", "2024-03-01")
	mustRun(t, source, "add", "--date", "2024-03-02")
	mustRun(t, source, "delete", "1")

	t.Run("should write the snapshot to stdout", func(t *testing.T) {
		out := mustRun(t, source, "backup")

		var snapshot map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &snapshot))
		assert.Len(t, snapshot["entries"], 1)
		assert.Len(t, snapshot["settings"], 1)
	})

	t.Run("should restore a snapshot file into another store", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "backup.json")
		out := mustRun(t, source, "backup", "--output", path)
		assert.Equal(t, "Backup written to "+path+"\n", out)

		target := setupTestAPI(t)
		mustRun(t, target, "add", "--date", "2024-01-01")

		out = mustRun(t, target, "restore", path)
		assert.Equal(t, "Backup restored: 1 entries, 1 settings.\n", out)

		assert.Equal(t, "Current rate: $30.00/hour\n", mustRun(t, target, "rate"))
		history := mustRun(t, target, "history")
		assert.NotContains(t, history, "01/01/2024")
		assert.Contains(t, history, "02/03/2024")

		out = mustRun(t, target, "add", "--date", "2024-03-03")
		assert.Equal(t, "Time entry #3 saved! Total: 8.00h, Pay: $240.00\n", out)
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		_, err := runCLI(t, setupTestAPI(t), "restore", filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open backup:")
	})

	t.Run("should reject a malformed snapshot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"settings": [`), 0600))

		_, err := runCLI(t, setupTestAPI(t), "restore", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to restore backup:")
	})
}

func TestRootCommandWithFactory(t *testing.T) {
	t.Run("should open the store after applying flags", func(t *testing.T) {
		var opened *config.Config
		closed := false
		factory := func(cfg *config.Config) (api.BusinessAPI, func() error, error) {
			opened = cfg
			repo, err := sqlite.NewWithOptions(":memory:", cfg.RepositoryOptions())
			if err != nil {
				return nil, nil, err
			}
			return api.NewBusinessAPI(repo, cfg), func() error {
				closed = true
				return repo.Close()
			}, nil
		}

		root := NewRootCommandWithFactory(factory, config.NewConfig())
		out, err := runRoot(t, root, "--long-shift", "4h", "--currency-symbol", "€", "add", "--date", "2024-03-01")
		require.NoError(t, err)

		require.NotNil(t, opened)
		assert.Equal(t, 4*time.Hour, opened.Validation.LongShiftThreshold)
		assert.Equal(t, "Warning: Shift duration exceeds 4 hours.\nTime entry #1 saved! Total: 8.00h, Pay: €200.00\n", out)
		assert.True(t, closed)
	})

	t.Run("should return factory errors", func(t *testing.T) {
		factory := func(cfg *config.Config) (api.BusinessAPI, func() error, error) {
			return nil, nil, errors.New("database is locked")
		}

		_, err := runRoot(t, NewRootCommandWithFactory(factory, config.NewConfig()), "rate")
		assert.EqualError(t, err, "database is locked")
	})

	t.Run("should reject an invalid default rate flag", func(t *testing.T) {
		_, err := runCLI(t, setupTestAPI(t), "--default-rate", "abc", "rate")
		var cfgErr *config.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "default-rate", cfgErr.Field)
	})
}

func TestServeCommand(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Server.Addr = "127.0.0.1:0"
	var out bytes.Buffer
	app := NewAppWithConfig(setupTestAPI(t), cfg, &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewServeCommand(app).Execute(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "Serving shiftpay on http://127.0.0.1:0\n", out.String())
}
