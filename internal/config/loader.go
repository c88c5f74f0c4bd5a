package config

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load returns the defaults overlaid with SHIFTPAY_* environment variables.
// Command line flags are layered on later through ApplyOverrides.
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}
	if err := l.config.Validate(); err != nil {
		return nil, err
	}
	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}
	if err := ApplyOverrides(config, overrides); err != nil {
		return nil, err
	}
	return config, nil
}

// ConfigOverrides holds command line flag values; nil means the flag was not given
type ConfigOverrides struct {
	DBDir            *string
	DBFilename       *string
	DBQueryTimeout   *time.Duration
	DBWriteTimeout   *time.Duration
	DBDirPermissions *uint32

	ServerAddr *string

	DefaultRate    *decimal.Decimal
	CurrencySymbol *string

	LongShiftThreshold *time.Duration

	DateFormat *string
	TimeFormat *string

	Timeout *time.Duration
	Verbose *bool
}

// ApplyOverrides applies command line overrides to a loaded configuration and re-validates it
func ApplyOverrides(config *Config, overrides *ConfigOverrides) error {
	if overrides != nil {
		overrides.applyTo(config)
	}
	return config.Validate()
}

// applyTo copies every set override into the configuration
func (overrides *ConfigOverrides) applyTo(config *Config) {
	override(&config.Database.Dir, overrides.DBDir)
	override(&config.Database.Filename, overrides.DBFilename)
	override(&config.Database.QueryTimeout, overrides.DBQueryTimeout)
	override(&config.Database.WriteTimeout, overrides.DBWriteTimeout)
	override(&config.Database.DirPermissions, overrides.DBDirPermissions)
	override(&config.Server.Addr, overrides.ServerAddr)
	override(&config.Rate.DefaultRate, overrides.DefaultRate)
	override(&config.Rate.CurrencySymbol, overrides.CurrencySymbol)
	override(&config.Validation.LongShiftThreshold, overrides.LongShiftThreshold)
	override(&config.Display.DateFormat, overrides.DateFormat)
	override(&config.Display.TimeFormat, overrides.TimeFormat)
	override(&config.Application.Timeout, overrides.Timeout)
	override(&config.Application.Verbose, overrides.Verbose)
}

func override[T any](target *T, value *T) {
	if value != nil {
		*target = *value
	}
}
