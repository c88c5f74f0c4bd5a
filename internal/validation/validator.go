package validation

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"

	"shiftpay/internal/config"
	"shiftpay/internal/domain"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidRate checks if an hourly rate lies within the configured bounds
func (v *Validator) IsValidRate(rate decimal.Decimal) bool {
	return !rate.LessThan(v.minRate()) && !rate.GreaterThan(v.maxRate())
}

// HasAtMostPlaces checks that d carries no more than places fractional digits
func (v *Validator) HasAtMostPlaces(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

// IsValidEntryID checks if an entry ID is valid (positive)
func (v *Validator) IsValidEntryID(id int64) bool {
	return id > 0
}

// IsValidDateRange checks if a date range is logical
func (v *Validator) IsValidDateRange(from, to *time.Time) bool {
	if from == nil || to == nil {
		return true // Open-ended ranges are valid
	}
	return !from.After(*to)
}

// ParseLenientDate accepts ISO dates as well as the looser forms people type
// ("15/01/2024", "Jan 15 2024", "2024-01-15T08:00:00Z"). Ambiguous numeric
// dates are read day first.
func (v *Validator) ParseLenientDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := domain.ParseDate(s); err == nil {
		return d, nil
	}
	t, err := dateparse.ParseAny(s, dateparse.PreferMonthFirst(false))
	if err != nil {
		return time.Time{}, err
	}
	return domain.DateOnly(t), nil
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

func (v *Validator) minRate() decimal.Decimal {
	if v.config != nil {
		return v.config.Rate.MinRate
	}
	return decimal.RequireFromString("0.01")
}

func (v *Validator) maxRate() decimal.Decimal {
	if v.config != nil {
		return v.config.Rate.MaxRate
	}
	return decimal.RequireFromString("999.99")
}
