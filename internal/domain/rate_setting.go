package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSetting is the hourly rate currently applied to new entries.
type RateSetting struct {
	ID             int64
	CurrentRate    decimal.Decimal
	CurrencySymbol string
	CreatedAt      time.Time
}
