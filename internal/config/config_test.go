package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "shiftpay.db", cfg.Database.Filename)
	assert.Equal(t, 10*time.Second, cfg.GetQueryTimeout())
	assert.Equal(t, 5*time.Second, cfg.GetWriteTimeout())
	assert.Equal(t, "25.00", cfg.Rate.DefaultRate.StringFixed(2))
	assert.Equal(t, "$", cfg.Rate.CurrencySymbol)
	assert.Equal(t, "0.01", cfg.Rate.MinRate.StringFixed(2))
	assert.Equal(t, "999.99", cfg.Rate.MaxRate.StringFixed(2))
	assert.Equal(t, 16*time.Hour, cfg.Validation.LongShiftThreshold)
	assert.Equal(t, "02/01/2006", cfg.Display.DateFormat)
	assert.Equal(t, "Unpaid Time Entries Report", cfg.Export.Title)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SHIFTPAY_DB_DIR", "/tmp/shiftpay-test")
	t.Setenv("SHIFTPAY_DB_FILENAME", "other.db")
	t.Setenv("SHIFTPAY_DB_QUERY_TIMEOUT", "3s")
	t.Setenv("SHIFTPAY_DB_DIR_PERMISSIONS", "700")
	t.Setenv("SHIFTPAY_SERVER_ADDR", ":8080")
	t.Setenv("SHIFTPAY_RATE_DEFAULT", "40")
	t.Setenv("SHIFTPAY_RATE_CURRENCY_SYMBOL", "€")
	t.Setenv("SHIFTPAY_VALIDATION_LONG_SHIFT", "12h")
	t.Setenv("SHIFTPAY_APP_VERBOSE", "true")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "/tmp/shiftpay-test/other.db", cfg.GetDatabasePath())
	assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, uint32(0700), cfg.Database.DirPermissions)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.Rate.DefaultRate.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, "€", cfg.Rate.CurrencySymbol)
	assert.Equal(t, 12*time.Hour, cfg.Validation.LongShiftThreshold)
	assert.True(t, cfg.Application.Verbose)
}

func TestLoadFromEnvironment_MalformedValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"should reject a malformed duration", "SHIFTPAY_DB_WRITE_TIMEOUT", "soon"},
		{"should reject a malformed rate", "SHIFTPAY_RATE_DEFAULT", "lots"},
		{"should reject malformed permissions", "SHIFTPAY_DB_DIR_PERMISSIONS", "rwx"},
		{"should reject a malformed boolean", "SHIFTPAY_APP_VERBOSE", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			err := NewConfig().LoadFromEnvironment()
			require.Error(t, err)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.key, cfgErr.Field)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"should require a database directory", func(c *Config) { c.Database.Dir = "" }, "database.dir"},
		{"should require a database filename", func(c *Config) { c.Database.Filename = "" }, "database.filename"},
		{"should require a positive query timeout", func(c *Config) { c.Database.QueryTimeout = 0 }, "database.query_timeout"},
		{"should require a listen address", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"should require a positive minimum rate", func(c *Config) { c.Rate.MinRate = decimal.Zero }, "rate.min_rate"},
		{"should require max above min", func(c *Config) { c.Rate.MaxRate = decimal.RequireFromString("0.001") }, "rate.max_rate"},
		{"should keep the default rate in range", func(c *Config) { c.Rate.DefaultRate = decimal.NewFromInt(1000) }, "rate.default_rate"},
		{"should require a currency symbol", func(c *Config) { c.Rate.CurrencySymbol = "" }, "rate.currency_symbol"},
		{"should require a positive long shift threshold", func(c *Config) { c.Validation.LongShiftThreshold = 0 }, "validation.long_shift_threshold"},
		{"should require a date format", func(c *Config) { c.Display.DateFormat = "" }, "display.date_format"},
		{"should require an export title", func(c *Config) { c.Export.Title = "" }, "export.title"},
		{"should require a positive app timeout", func(c *Config) { c.Application.Timeout = -time.Second }, "application.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestLoadWithOverrides(t *testing.T) {
	t.Setenv("SHIFTPAY_DB_DIR", "/from/env")

	dir := "/from/flag"
	addr := ":9999"
	rate := decimal.RequireFromString("42.10")
	verbose := true

	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		DBDir:       &dir,
		ServerAddr:  &addr,
		DefaultRate: &rate,
		Verbose:     &verbose,
	})
	require.NoError(t, err)

	assert.Equal(t, "/from/flag", cfg.Database.Dir)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "42.10", cfg.Rate.DefaultRate.StringFixed(2))
	assert.True(t, cfg.Application.Verbose)
}

func TestLoadWithOverrides_Invalid(t *testing.T) {
	empty := ""
	_, err := NewLoader().LoadWithOverrides(&ConfigOverrides{CurrencySymbol: &empty})
	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name      string
		overrides *ConfigOverrides
		expectErr bool
		check     func(t *testing.T, cfg *Config)
	}{
		{
			name:      "should accept nil overrides",
			overrides: nil,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "shiftpay.db", cfg.Database.Filename)
			},
		},
		{
			name: "should apply the long shift threshold",
			overrides: &ConfigOverrides{
				LongShiftThreshold: func() *time.Duration { d := 12 * time.Hour; return &d }(),
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 12*time.Hour, cfg.Validation.LongShiftThreshold)
			},
		},
		{
			name: "should reject an override that fails validation",
			overrides: &ConfigOverrides{
				CurrencySymbol: func() *string { s := ""; return &s }(),
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			err := ApplyOverrides(cfg, tt.overrides)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
