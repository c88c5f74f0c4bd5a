package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTimeEntry_StartsAtAndEndsAt(t *testing.T) {
	tests := []struct {
		name        string
		entry       TimeEntry
		expectedEnd time.Time
	}{
		{
			name: "same-day shift ends on the entry date",
			entry: TimeEntry{
				Date:      time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
				StartTime: MustTimeOfDay(9, 0, 0),
				EndTime:   MustTimeOfDay(17, 0, 0),
			},
			expectedEnd: time.Date(2024, 5, 1, 17, 0, 0, 0, time.UTC),
		},
		{
			name: "overnight shift ends on the following date",
			entry: TimeEntry{
				Date:        time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
				StartTime:   MustTimeOfDay(22, 0, 0),
				EndTime:     MustTimeOfDay(6, 0, 0),
				IsOvernight: true,
			},
			expectedEnd: time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := tt.entry.StartsAt()
			assert.Equal(t, tt.entry.Date.Year(), start.Year())
			assert.Equal(t, tt.entry.StartTime.Duration(), start.Sub(tt.entry.Date))
			assert.Equal(t, tt.expectedEnd, tt.entry.EndsAt())
		})
	}
}

func TestTimeEntry_PaidStatus(t *testing.T) {
	assert.Equal(t, "paid", TimeEntry{IsPaid: true}.PaidStatus())
	assert.Equal(t, "unpaid", TimeEntry{}.PaidStatus())
}

func TestTimeEntry_IsValid(t *testing.T) {
	valid := TimeEntry{
		Date:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		StartTime:   MustTimeOfDay(9, 0, 0),
		EndTime:     MustTimeOfDay(17, 0, 0),
		RateAtEntry: decimal.NewFromInt(25),
		TotalHours:  decimal.NewFromInt(8),
		TotalPay:    decimal.NewFromInt(200),
	}

	tests := []struct {
		name     string
		mutate   func(e *TimeEntry)
		expected bool
	}{
		{name: "complete same-day entry", mutate: func(e *TimeEntry) {}, expected: true},
		{name: "missing date", mutate: func(e *TimeEntry) { e.Date = time.Time{} }, expected: false},
		{name: "same-day end before start", mutate: func(e *TimeEntry) { e.EndTime = MustTimeOfDay(8, 0, 0) }, expected: false},
		{name: "overnight end before start", mutate: func(e *TimeEntry) {
			e.EndTime = MustTimeOfDay(8, 0, 0)
			e.IsOvernight = true
		}, expected: true},
		{name: "zero rate", mutate: func(e *TimeEntry) { e.RateAtEntry = decimal.Zero }, expected: false},
		{name: "negative pay", mutate: func(e *TimeEntry) { e.TotalPay = decimal.NewFromInt(-1) }, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := valid
			tt.mutate(&entry)
			assert.Equal(t, tt.expected, entry.IsValid())
		})
	}
}

func TestSearchOptions_Unpaid(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	opts := SearchOptions{DateFrom: &from}

	unpaid := opts.Unpaid()

	assert.True(t, unpaid.OnlyUnpaid)
	assert.False(t, opts.OnlyUnpaid)
	assert.Equal(t, &from, unpaid.DateFrom)
}
