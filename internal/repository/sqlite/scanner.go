package sqlite

import (
	"github.com/shopspring/decimal"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

const timeEntryColumns = `id, sequence_number, date, start_time, end_time, is_overnight,
	rate_at_entry, total_hours, total_pay, is_paid, created_at`

const rateSettingColumns = `id, current_rate, currency_symbol, created_at`

// ScanTimeEntry scans a single time entry from a database row
func ScanTimeEntry(scanner Scanner) (*TimeEntry, error) {
	entry := &TimeEntry{}
	var date, startTime, endTime, createdAt string
	var rate, hours, pay decimal.Decimal

	err := scanner.Scan(
		&entry.ID,
		&entry.SequenceNumber,
		&date,
		&startTime,
		&endTime,
		&entry.IsOvernight,
		&rate,
		&hours,
		&pay,
		&entry.IsPaid,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if entry.Date, err = ParseDateFromDB(date); err != nil {
		return nil, err
	}
	if entry.StartTime, err = ParseClockFromDB(startTime); err != nil {
		return nil, err
	}
	if entry.EndTime, err = ParseClockFromDB(endTime); err != nil {
		return nil, err
	}
	if entry.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	entry.RateAtEntry = rate
	entry.TotalHours = hours
	entry.TotalPay = pay

	return entry, nil
}

// ScanTimeEntries scans multiple time entries from database rows
func ScanTimeEntries(rows Rows) ([]*TimeEntry, error) {
	var entries []*TimeEntry
	for rows.Next() {
		entry, err := ScanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ScanRateSetting scans a single rate setting from a database row
func ScanRateSetting(scanner Scanner) (*RateSetting, error) {
	setting := &RateSetting{}
	var createdAt string
	err := scanner.Scan(&setting.ID, &setting.CurrentRate, &setting.CurrencySymbol, &createdAt)
	if err != nil {
		return nil, err
	}
	if setting.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return setting, nil
}

// ScanRateSettings scans multiple rate settings from database rows
func ScanRateSettings(rows Rows) ([]*RateSetting, error) {
	var settings []*RateSetting
	for rows.Next() {
		setting, err := ScanRateSetting(rows)
		if err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return settings, nil
}
