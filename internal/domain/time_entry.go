package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeEntry represents one recorded work shift in the domain model.
// This is a pure domain model without database-specific concerns.
type TimeEntry struct {
	ID             int64
	SequenceNumber int64
	Date           time.Time
	StartTime      TimeOfDay
	EndTime        TimeOfDay
	IsOvernight    bool
	RateAtEntry    decimal.Decimal
	TotalHours     decimal.Decimal
	TotalPay       decimal.Decimal
	IsPaid         bool
	CreatedAt      time.Time
}

// StartsAt returns the moment the shift starts.
func (te TimeEntry) StartsAt() time.Time {
	return te.StartTime.On(te.Date)
}

// EndsAt returns the moment the shift ends, on the following day for overnight shifts.
func (te TimeEntry) EndsAt() time.Time {
	if te.IsOvernight {
		return te.EndTime.On(te.Date.AddDate(0, 0, 1))
	}
	return te.EndTime.On(te.Date)
}

// PaidStatus returns a human-readable payment status.
func (te TimeEntry) PaidStatus() string {
	if te.IsPaid {
		return "paid"
	}
	return "unpaid"
}

// IsValid checks if the time entry has valid data.
func (te TimeEntry) IsValid() bool {
	if te.Date.IsZero() {
		return false
	}
	if !te.IsOvernight && te.EndTime <= te.StartTime {
		return false
	}
	if !te.RateAtEntry.IsPositive() {
		return false
	}
	if te.TotalHours.IsNegative() || te.TotalPay.IsNegative() {
		return false
	}
	return true
}
