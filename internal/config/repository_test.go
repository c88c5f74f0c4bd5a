package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRepository(t *testing.T) {
	// Nested directory must be created on demand
	dbDir := filepath.Join(t.TempDir(), "nested", "data")
	t.Setenv("SHIFTPAY_DB_DIR", dbDir)
	t.Setenv("SHIFTPAY_RATE_DEFAULT", "31.25")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	repo, err := CreateRepository(cfg)
	require.NoError(t, err)
	require.NotNil(t, repo)
	defer repo.Close()

	setting, err := repo.GetRateSetting(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "31.25", setting.CurrentRate.StringFixed(2))
	assert.FileExists(t, filepath.Join(dbDir, "shiftpay.db"))
}

func TestCreateTestRepository(t *testing.T) {
	repo, err := CreateTestRepository()
	require.NoError(t, err)
	defer repo.Close()

	entries, err := repo.ListTimeEntries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)

	setting, err := repo.GetRateSetting(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "$", setting.CurrencySymbol)
}

func TestGetEnvironment(t *testing.T) {
	tests := []struct {
		value    string
		expected Environment
	}{
		{"development", Development},
		{"testing", Testing},
		{"production", Production},
		{"", Production},
		{"staging", Production},
		{" Development ", Development},
		{"TESTING", Testing},
	}

	for _, tt := range tests {
		t.Run("SHIFTPAY_ENV="+tt.value, func(t *testing.T) {
			t.Setenv("SHIFTPAY_ENV", tt.value)
			assert.Equal(t, tt.expected, GetEnvironment())
		})
	}
}

func TestRepositoryFactory(t *testing.T) {
	cfg := NewConfig()
	cfg.Database.Dir = t.TempDir()

	for _, env := range []Environment{Testing, Production} {
		t.Run(string(env), func(t *testing.T) {
			repo, err := NewRepositoryFactory(env, cfg).CreateRepository()
			require.NoError(t, err)
			defer repo.Close()

			_, err = repo.GetRateSetting(context.Background())
			assert.NoError(t, err)
		})
	}
}
