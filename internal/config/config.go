package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all configuration options for shiftpay
type Config struct {
	Database    DatabaseConfig
	Server      ServerConfig
	Rate        RateConfig
	Validation  ValidationConfig
	Display     DisplayConfig
	Export      ExportConfig
	Application ApplicationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"SHIFTPAY_DB_DIR"`
	Filename       string        `env:"SHIFTPAY_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"SHIFTPAY_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"SHIFTPAY_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"SHIFTPAY_DB_DIR_PERMISSIONS"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr         string        `env:"SHIFTPAY_SERVER_ADDR"`
	ReadTimeout  time.Duration `env:"SHIFTPAY_SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `env:"SHIFTPAY_SERVER_WRITE_TIMEOUT"`
}

// RateConfig holds hourly rate defaults and bounds
type RateConfig struct {
	DefaultRate    decimal.Decimal `env:"SHIFTPAY_RATE_DEFAULT"`
	CurrencySymbol string          `env:"SHIFTPAY_RATE_CURRENCY_SYMBOL"`
	MinRate        decimal.Decimal `env:"SHIFTPAY_RATE_MIN"`
	MaxRate        decimal.Decimal `env:"SHIFTPAY_RATE_MAX"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	LongShiftThreshold time.Duration `env:"SHIFTPAY_VALIDATION_LONG_SHIFT"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DateFormat string `env:"SHIFTPAY_DISPLAY_DATE_FORMAT"`
	TimeFormat string `env:"SHIFTPAY_DISPLAY_TIME_FORMAT"`
}

// ExportConfig holds report export configuration
type ExportConfig struct {
	Title          string `env:"SHIFTPAY_EXPORT_TITLE"`
	FilenamePrefix string `env:"SHIFTPAY_EXPORT_FILENAME_PREFIX"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"SHIFTPAY_APP_TIMEOUT"`
	Verbose bool          `env:"SHIFTPAY_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".shiftpay")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "shiftpay.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:5000",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Rate: RateConfig{
			DefaultRate:    decimal.RequireFromString("25.00"),
			CurrencySymbol: "$",
			MinRate:        decimal.RequireFromString("0.01"),
			MaxRate:        decimal.RequireFromString("999.99"),
		},
		Validation: ValidationConfig{
			LongShiftThreshold: 16 * time.Hour,
		},
		Display: DisplayConfig{
			DateFormat: "02/01/2006",
			TimeFormat: "15:04",
		},
		Export: ExportConfig{
			Title:          "Unpaid Time Entries Report",
			FilenamePrefix: "unpaid_entries_",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// LoadFromEnvironment loads configuration from environment variables.
// Malformed values are reported instead of silently ignored.
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("SHIFTPAY_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("SHIFTPAY_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if err := envDuration("SHIFTPAY_DB_QUERY_TIMEOUT", &c.Database.QueryTimeout); err != nil {
		return err
	}
	if err := envDuration("SHIFTPAY_DB_WRITE_TIMEOUT", &c.Database.WriteTimeout); err != nil {
		return err
	}
	if perms := os.Getenv("SHIFTPAY_DB_DIR_PERMISSIONS"); perms != "" {
		p, err := strconv.ParseUint(perms, 8, 32)
		if err != nil {
			return &ConfigError{Field: "SHIFTPAY_DB_DIR_PERMISSIONS", Message: "must be an octal permission mask"}
		}
		c.Database.DirPermissions = uint32(p)
	}

	// Server configuration
	if addr := os.Getenv("SHIFTPAY_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if err := envDuration("SHIFTPAY_SERVER_READ_TIMEOUT", &c.Server.ReadTimeout); err != nil {
		return err
	}
	if err := envDuration("SHIFTPAY_SERVER_WRITE_TIMEOUT", &c.Server.WriteTimeout); err != nil {
		return err
	}

	// Rate configuration
	if err := envDecimal("SHIFTPAY_RATE_DEFAULT", &c.Rate.DefaultRate); err != nil {
		return err
	}
	if symbol := os.Getenv("SHIFTPAY_RATE_CURRENCY_SYMBOL"); symbol != "" {
		c.Rate.CurrencySymbol = symbol
	}
	if err := envDecimal("SHIFTPAY_RATE_MIN", &c.Rate.MinRate); err != nil {
		return err
	}
	if err := envDecimal("SHIFTPAY_RATE_MAX", &c.Rate.MaxRate); err != nil {
		return err
	}

	// Validation configuration
	if err := envDuration("SHIFTPAY_VALIDATION_LONG_SHIFT", &c.Validation.LongShiftThreshold); err != nil {
		return err
	}

	// Display configuration
	if format := os.Getenv("SHIFTPAY_DISPLAY_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}
	if format := os.Getenv("SHIFTPAY_DISPLAY_TIME_FORMAT"); format != "" {
		c.Display.TimeFormat = format
	}

	// Export configuration
	if title := os.Getenv("SHIFTPAY_EXPORT_TITLE"); title != "" {
		c.Export.Title = title
	}
	if prefix := os.Getenv("SHIFTPAY_EXPORT_FILENAME_PREFIX"); prefix != "" {
		c.Export.FilenamePrefix = prefix
	}

	// Application configuration
	if err := envDuration("SHIFTPAY_APP_TIMEOUT", &c.Application.Timeout); err != nil {
		return err
	}
	if verbose := os.Getenv("SHIFTPAY_APP_VERBOSE"); verbose != "" {
		b, err := strconv.ParseBool(verbose)
		if err != nil {
			return &ConfigError{Field: "SHIFTPAY_APP_VERBOSE", Message: "must be a boolean"}
		}
		c.Application.Verbose = b
	}

	return nil
}

func envDuration(key string, target *time.Duration) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return &ConfigError{Field: key, Message: "must be a duration such as 10s or 1m"}
	}
	*target = d
	return nil
}

func envDecimal(key string, target *decimal.Decimal) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return &ConfigError{Field: key, Message: "must be a decimal number"}
	}
	*target = d
	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate server configuration
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return &ConfigError{Field: "server.timeouts", Message: "server timeouts must be positive"}
	}

	// Validate rate configuration
	if !c.Rate.MinRate.IsPositive() {
		return &ConfigError{Field: "rate.min_rate", Message: "minimum rate must be positive"}
	}
	if c.Rate.MaxRate.LessThan(c.Rate.MinRate) {
		return &ConfigError{Field: "rate.max_rate", Message: "maximum rate must not be below the minimum rate"}
	}
	if c.Rate.DefaultRate.LessThan(c.Rate.MinRate) || c.Rate.DefaultRate.GreaterThan(c.Rate.MaxRate) {
		return &ConfigError{Field: "rate.default_rate", Message: "default rate must lie within the allowed range"}
	}
	if c.Rate.CurrencySymbol == "" || len(c.Rate.CurrencySymbol) > 5 {
		return &ConfigError{Field: "rate.currency_symbol", Message: "currency symbol must be 1 to 5 bytes long"}
	}

	// Validate validation configuration
	if c.Validation.LongShiftThreshold <= 0 {
		return &ConfigError{Field: "validation.long_shift_threshold", Message: "long shift threshold must be positive"}
	}

	// Validate display configuration
	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}
	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}

	// Validate export configuration
	if c.Export.Title == "" {
		return &ConfigError{Field: "export.title", Message: "export title cannot be empty"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
