package sqlite

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSetting represents a row of the rate_settings table
type RateSetting struct {
	ID             int64
	CurrentRate    decimal.Decimal
	CurrencySymbol string
	CreatedAt      time.Time
}

// TimeEntry represents a row of the time_entries table.
// StartTime and EndTime are offsets from midnight of Date.
type TimeEntry struct {
	ID             int64
	SequenceNumber int64
	Date           time.Time
	StartTime      time.Duration
	EndTime        time.Duration
	IsOvernight    bool
	RateAtEntry    decimal.Decimal
	TotalHours     decimal.Decimal
	TotalPay       decimal.Decimal
	IsPaid         bool
	CreatedAt      time.Time
}

// SearchOptions contains all possible filter parameters for time entries
type SearchOptions struct {
	OnlyUnpaid bool
	DateFrom   *time.Time
	DateTo     *time.Time
}

// PaymentResult summarises a bulk mark-as-paid operation
type PaymentResult struct {
	Count int
	Total decimal.Decimal
}
