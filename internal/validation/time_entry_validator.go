package validation

import (
	"strings"
	"time"

	"shiftpay/internal/config"
	"shiftpay/internal/domain"
)

// EntryInput is a shift submission that passed format validation
type EntryInput struct {
	Date  time.Time
	Start domain.TimeOfDay
	End   domain.TimeOfDay
}

// TimeEntryValidator provides validation for TimeEntry-related operations
type TimeEntryValidator struct {
	validator *Validator
}

// NewTimeEntryValidator creates a new time entry validator
func NewTimeEntryValidator() *TimeEntryValidator {
	return &TimeEntryValidator{
		validator: NewValidator(),
	}
}

// NewTimeEntryValidatorWithConfig creates a time entry validator with configuration
func NewTimeEntryValidatorWithConfig(cfg *config.Config) *TimeEntryValidator {
	return &TimeEntryValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ParseEntryInput validates the raw date and clock fields of a shift submission.
// Whether the end may precede the start is decided by the calculator, not here.
func (tev *TimeEntryValidator) ParseEntryInput(date, start, end string) (EntryInput, error) {
	validationError := NewValidationError()
	var input EntryInput

	if !tev.validator.IsNonEmptyString(date) {
		validationError.AddRequiredError("date")
	} else if d, err := domain.ParseDate(date); err != nil {
		validationError.AddInvalidFormatError("date", date, "YYYY-MM-DD")
	} else {
		input.Date = d
	}

	input.Start = tev.parseClock(validationError, "start_time", start)
	input.End = tev.parseClock(validationError, "end_time", end)

	if validationError.HasErrors() {
		return EntryInput{}, validationError
	}
	return input, nil
}

func (tev *TimeEntryValidator) parseClock(validationError *ValidationError, field, value string) domain.TimeOfDay {
	if !tev.validator.IsNonEmptyString(value) {
		validationError.AddRequiredError(field)
		return 0
	}
	t, err := domain.ParseTimeOfDay(value)
	if err != nil {
		validationError.AddInvalidFormatError(field, value, "HH:MM or HH:MM:SS")
		return 0
	}
	return t
}

// ParseHistoryFilter builds search options from the history query parameters.
// An empty showPaid keeps paid entries; otherwise only the exact value "true" does.
func (tev *TimeEntryValidator) ParseHistoryFilter(showPaid, startDate, endDate string) (domain.SearchOptions, error) {
	validationError := NewValidationError()
	showPaid = strings.TrimSpace(showPaid)
	opts := domain.SearchOptions{
		OnlyUnpaid: showPaid != "" && showPaid != "true",
	}

	if tev.validator.IsNonEmptyString(startDate) {
		d, err := tev.validator.ParseLenientDate(startDate)
		if err != nil {
			validationError.AddInvalidFormatError("start_date", startDate, "a date such as 2024-01-15")
		} else {
			opts.DateFrom = &d
		}
	}
	if tev.validator.IsNonEmptyString(endDate) {
		d, err := tev.validator.ParseLenientDate(endDate)
		if err != nil {
			validationError.AddInvalidFormatError("end_date", endDate, "a date such as 2024-01-31")
		} else {
			opts.DateTo = &d
		}
	}

	if validationError.HasErrors() {
		return domain.SearchOptions{}, validationError
	}
	if err := tev.ValidateSearchOptions(opts); err != nil {
		return domain.SearchOptions{}, err
	}
	return opts, nil
}

// ValidateSearchOptions validates search options for time entries
func (tev *TimeEntryValidator) ValidateSearchOptions(opts domain.SearchOptions) error {
	if !tev.validator.IsValidDateRange(opts.DateFrom, opts.DateTo) {
		validationError := NewValidationError()
		validationError.AddInvalidRangeError("date_range", map[string]interface{}{
			"start": opts.DateFrom,
			"end":   opts.DateTo,
		}, "is reversed: the end date must be on or after the start date")
		return validationError
	}
	return nil
}

// ValidateTimeEntryID validates a time entry ID
func (tev *TimeEntryValidator) ValidateTimeEntryID(id int64) error {
	if !tev.validator.IsValidEntryID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("time_entry_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}
