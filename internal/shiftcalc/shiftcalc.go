// Package shiftcalc derives the hours and pay of a work shift.
//
// Every function is pure. Shifts are measured on naive wall-clock time: an
// overnight shift ends on the calendar day after it starts, and no timezone or
// daylight saving adjustment is applied. Hours and pay are rounded to two
// decimal places using round-half-to-even.
package shiftcalc

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"shiftpay/internal/domain"
	"shiftpay/internal/errors"
)

// Places is the number of fractional digits kept for hours and money.
const Places = 2

// DefaultLongShiftThreshold is the duration above which a shift is flagged.
const DefaultLongShiftThreshold = 16 * time.Hour

var secondsPerHour = decimal.NewFromInt(3600)

// Warning is a data-quality notice attached to an otherwise accepted shift.
type Warning string

const (
	WarningZeroHours Warning = "zero_hours"
	WarningLongShift Warning = "long_shift"
)

// Message returns the text shown to the user for the warning.
func (w Warning) Message(limits Limits) string {
	switch w {
	case WarningZeroHours:
		return "Warning: Shift duration is 0 hours."
	case WarningLongShift:
		return fmt.Sprintf("Warning: Shift duration exceeds %s hours.", limits.thresholdHours().String())
	default:
		return string(w)
	}
}

// Limits holds the thresholds used to raise warnings.
type Limits struct {
	LongShiftThreshold time.Duration
}

// DefaultLimits returns the limits used when nothing is configured.
func DefaultLimits() Limits {
	return Limits{LongShiftThreshold: DefaultLongShiftThreshold}
}

func (l Limits) thresholdHours() decimal.Decimal {
	threshold := l.LongShiftThreshold
	if threshold <= 0 {
		threshold = DefaultLongShiftThreshold
	}
	return decimal.NewFromInt(int64(threshold / time.Second)).Div(secondsPerHour)
}

// Input describes a shift as entered by the user.
type Input struct {
	Date  time.Time
	Start domain.TimeOfDay
	End   domain.TimeOfDay
}

// Result holds the derived fields of a shift.
type Result struct {
	IsOvernight bool
	Hours       decimal.Decimal
	Pay         decimal.Decimal
	Warnings    []Warning
}

// IsOvernight reports whether a shift ending at end started the previous day.
func IsOvernight(start, end domain.TimeOfDay) bool {
	return end <= start
}

// ComputeHours returns the shift length in hours.
// A same-day shift must end after it starts.
func ComputeHours(date time.Time, start, end domain.TimeOfDay, overnight bool) (decimal.Decimal, error) {
	startsAt := start.On(date)

	var endsAt time.Time
	if overnight {
		endsAt = end.On(domain.DateOnly(date).AddDate(0, 0, 1))
	} else {
		if end <= start {
			return decimal.Zero, errors.NewValidationError("End time must be after start time for same-day shifts.", nil).
				WithContext("start_time", start.String()).
				WithContext("end_time", end.String())
		}
		endsAt = end.On(date)
	}

	seconds := int64(endsAt.Sub(startsAt) / time.Second)
	return decimal.NewFromInt(seconds).Div(secondsPerHour).RoundBank(Places), nil
}

// ComputePay multiplies hours by rate.
func ComputePay(hours, rate decimal.Decimal) decimal.Decimal {
	return hours.Mul(rate).RoundBank(Places)
}

// Check returns the warnings for a shift of the given length.
func Check(hours decimal.Decimal, limits Limits) []Warning {
	var warnings []Warning
	if hours.IsZero() {
		warnings = append(warnings, WarningZeroHours)
	} else if hours.GreaterThan(limits.thresholdHours()) {
		warnings = append(warnings, WarningLongShift)
	}
	return warnings
}

// Calculate detects overnight shifts and derives hours, pay and warnings.
func Calculate(in Input, rate decimal.Decimal, limits Limits) (Result, error) {
	if in.Date.IsZero() {
		return Result{}, errors.NewValidationError("date is required", nil)
	}
	if !rate.IsPositive() {
		return Result{}, errors.NewInvalidInputError("rate", rate.String(), "must be greater than zero")
	}

	overnight := IsOvernight(in.Start, in.End)
	hours, err := ComputeHours(in.Date, in.Start, in.End, overnight)
	if err != nil {
		return Result{}, err
	}

	return Result{
		IsOvernight: overnight,
		Hours:       hours,
		Pay:         ComputePay(hours, rate),
		Warnings:    Check(hours, limits),
	}, nil
}
