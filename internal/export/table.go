// Package export renders time entries as a printable PDF report and as a
// JSON snapshot that can be restored later.
package export

import (
	"strconv"

	"github.com/shopspring/decimal"

	"shiftpay/internal/domain"
	"shiftpay/internal/errors"
)

const (
	reportDateLayout  = "02/01/2006"
	reportClockLayout = domain.ShortClockLayout
)

// ErrEmptyExport is returned when there is nothing to put in a report.
var ErrEmptyExport = errors.NewEmptyResultError("No unpaid entries to export.")

// UnpaidHeader is the column header row of the unpaid entries report.
var UnpaidHeader = []string{"#", "Date", "Start", "End", "Hours", "Rate", "Pay"}

// Table is a report already shaped into display strings.
type Table struct {
	Header     []string
	Rows       [][]string
	Totals     []string
	TotalHours decimal.Decimal
	TotalPay   decimal.Decimal
}

// BuildUnpaidTable shapes entries into the unpaid report, one row per entry
// in the given order followed by a totals row.
func BuildUnpaidTable(entries []*domain.TimeEntry, symbol string) (*Table, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyExport
	}

	table := &Table{
		Header:     UnpaidHeader,
		Rows:       make([][]string, 0, len(entries)),
		TotalHours: decimal.Zero,
		TotalPay:   decimal.Zero,
	}

	for _, e := range entries {
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(e.SequenceNumber, 10),
			e.Date.Format(reportDateLayout),
			e.StartTime.Format(reportClockLayout),
			e.EndTime.Format(reportClockLayout),
			e.TotalHours.StringFixed(2),
			symbol + e.RateAtEntry.StringFixed(2),
			symbol + e.TotalPay.StringFixed(2),
		})
		table.TotalHours = table.TotalHours.Add(e.TotalHours)
		table.TotalPay = table.TotalPay.Add(e.TotalPay)
	}

	table.Totals = []string{"", "", "", "TOTAL:", table.TotalHours.StringFixed(2), "", symbol + table.TotalPay.StringFixed(2)}
	return table, nil
}
