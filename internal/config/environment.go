package config

import (
	"fmt"
	"os"
	"strings"

	"shiftpay/internal/repository/sqlite"
)

// Environment selects where the database lives
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// ParseEnvironment maps a SHIFTPAY_ENV value to an Environment.
// Unknown values fall back to Production so a typo never points at a throwaway store.
func ParseEnvironment(value string) Environment {
	switch env := Environment(strings.ToLower(strings.TrimSpace(value))); env {
	case Development, Testing:
		return env
	default:
		return Production
	}
}

// GetEnvironment determines the current environment from SHIFTPAY_ENV
func GetEnvironment() Environment {
	return ParseEnvironment(os.Getenv("SHIFTPAY_ENV"))
}

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env    Environment
	config *Config
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment, cfg *Config) *RepositoryFactory {
	return &RepositoryFactory{env: env, config: cfg}
}

// CreateRepository opens the store for the environment:
// development uses a file in the working directory, testing an in-memory
// database and production the configured database directory.
func (rf *RepositoryFactory) CreateRepository() (sqlite.Repository, error) {
	switch rf.env {
	case Development:
		repo, err := sqlite.NewWithOptions(rf.config.Database.Filename, rf.config.RepositoryOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize development database: %w", err)
		}
		return repo, nil
	case Testing:
		return CreateTestRepository()
	default:
		return CreateRepository(rf.config)
	}
}
