package validation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"shiftpay/internal/config"
)

// RateValidator validates hourly rate changes
type RateValidator struct {
	validator *Validator
}

// NewRateValidator creates a rate validator using default bounds
func NewRateValidator() *RateValidator {
	return &RateValidator{validator: NewValidator()}
}

// NewRateValidatorWithConfig creates a rate validator using configured bounds
func NewRateValidatorWithConfig(cfg *config.Config) *RateValidator {
	return &RateValidator{validator: NewValidatorWithConfig(cfg)}
}

// ParseRate parses and validates a rate typed by the user
func (rv *RateValidator) ParseRate(input string) (decimal.Decimal, error) {
	trimmed := rv.validator.TrimAndValidateString(input)
	if !rv.validator.IsNonEmptyString(trimmed) {
		validationError := NewValidationError()
		validationError.AddRequiredError("current_rate")
		return decimal.Zero, validationError
	}

	rate, err := decimal.NewFromString(trimmed)
	if err != nil {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError("current_rate", input, "a number such as 25.00")
		return decimal.Zero, validationError
	}

	if err := rv.ValidateRate(rate); err != nil {
		return decimal.Zero, err
	}
	return rate, nil
}

// ValidateRate checks the range and precision of a rate
func (rv *RateValidator) ValidateRate(rate decimal.Decimal) error {
	validationError := NewValidationError()

	if !rv.validator.IsValidRate(rate) {
		validationError.AddInvalidRangeError("current_rate", rate.String(),
			fmt.Sprintf("must be between %s and %s", rv.validator.minRate().StringFixed(2), rv.validator.maxRate().StringFixed(2)))
	}
	if !rv.validator.HasAtMostPlaces(rate, 2) {
		validationError.AddInvalidValueError("current_rate", rate.String(), "must have at most 2 decimal places")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}
