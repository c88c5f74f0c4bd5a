package config

import (
	"fmt"
	"os"

	"shiftpay/internal/repository/sqlite"
)

// RepositoryOptions translates the configuration into repository options
func (c *Config) RepositoryOptions() sqlite.Options {
	return sqlite.Options{
		DefaultRate:           c.Rate.DefaultRate,
		DefaultCurrencySymbol: c.Rate.CurrencySymbol,
		QueryTimeout:          c.Database.QueryTimeout,
		WriteTimeout:          c.Database.WriteTimeout,
	}
}

// CreateRepository creates a repository instance using the configuration system
func CreateRepository(config *Config) (sqlite.Repository, error) {
	if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	repo, err := sqlite.NewWithOptions(config.GetDatabasePath(), config.RepositoryOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.NewWithOptions(":memory:", NewConfig().RepositoryOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}
