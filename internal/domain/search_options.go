package domain

import "time"

// SearchOptions represents filter criteria for time entries.
// Every non-zero field narrows the result; dates are inclusive.
type SearchOptions struct {
	OnlyUnpaid bool
	DateFrom   *time.Time
	DateTo     *time.Time
}

// Unpaid returns a copy of the options restricted to unpaid entries.
func (o SearchOptions) Unpaid() SearchOptions {
	o.OnlyUnpaid = true
	return o
}
