package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"shiftpay/internal/domain"
	"shiftpay/internal/export"
	"shiftpay/internal/services"
)

// HistoryOptions holds the history filters given on the command line
type HistoryOptions struct {
	UnpaidOnly bool
	From       string
	To         string
}

// HistoryCommand handles the history command
type HistoryCommand struct {
	app     *App
	options HistoryOptions
}

// NewHistoryCommand creates a new history command handler
func NewHistoryCommand(app *App, options HistoryOptions) *HistoryCommand {
	return &HistoryCommand{app: app, options: options}
}

// Execute prints the filtered entries followed by their totals
func (c *HistoryCommand) Execute(ctx context.Context, args []string) error {
	history, err := c.app.api.GetHistory(ctx, services.HistoryQuery{
		ShowPaid:  strconv.FormatBool(!c.options.UnpaidOnly),
		StartDate: c.options.From,
		EndDate:   c.options.To,
	})
	if err != nil {
		return c.app.errorHandler.Handle("load history", err)
	}

	if len(history.Entries) == 0 {
		c.app.printf("No time entries found\n")
		return nil
	}

	symbol := c.app.currencySymbol(ctx)
	if err := c.printEntries(history.Entries, symbol); err != nil {
		return err
	}
	c.printStats(history.Stats, symbol)
	return nil
}

// printEntries prints one aligned row per entry
func (c *HistoryCommand) printEntries(entries []*domain.TimeEntry, symbol string) error {
	display := c.app.config.Display

	w := tabwriter.NewWriter(c.app.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tDate\tStart\tEnd\tHours\tRate\tPay\tStatus")
	for _, entry := range entries {
		end := entry.EndTime.Format(display.TimeFormat)
		if entry.IsOvernight {
			end += " (+1)"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			entry.SequenceNumber,
			entry.Date.Format(display.DateFormat),
			entry.StartTime.Format(display.TimeFormat),
			end,
			export.FormatHours(entry.TotalHours),
			export.FormatCurrency(symbol, entry.RateAtEntry),
			export.FormatCurrency(symbol, entry.TotalPay),
			entry.PaidStatus(),
		)
	}
	return w.Flush()
}

func (c *HistoryCommand) printStats(stats services.Stats, symbol string) {
	c.app.printf("\nTotal:  %sh, %s (%d entries)\n",
		export.FormatHours(stats.TotalHours), export.FormatCurrency(symbol, stats.TotalPay), stats.EntryCount)
	c.app.printf("Unpaid: %sh, %s (%d entries)\n",
		export.FormatHours(stats.UnpaidHours), export.FormatCurrency(symbol, stats.UnpaidPay), stats.UnpaidCount)
}
