package cli

import (
	"context"

	"shiftpay/internal/domain"
	"shiftpay/internal/export"
	"shiftpay/internal/services"
)

// AddOptions holds the shift given on the command line
type AddOptions struct {
	Date  string
	Start string
	End   string
}

// AddCommand handles the add command
type AddCommand struct {
	app     *App
	options AddOptions
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App, options AddOptions) *AddCommand {
	return &AddCommand{app: app, options: options}
}

// Execute records a shift, defaulting to today from 09:00 to 17:00
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	req := services.EntryRequest{
		Date:      c.options.Date,
		StartTime: c.options.Start,
		EndTime:   c.options.End,
	}
	if req.Date == "" {
		req.Date = timeNow().Format(domain.DateLayout)
	}
	if req.StartTime == "" {
		req.StartTime = "09:00"
	}
	if req.EndTime == "" {
		req.EndTime = "17:00"
	}

	result, err := c.app.api.RecordShift(ctx, req)
	if err != nil {
		return c.app.errorHandler.Handle("record shift", err)
	}

	for _, msg := range result.WarningMessages {
		c.app.printf("%s\n", msg)
	}

	entry := result.Entry
	c.app.printf("Time entry #%d saved! Total: %sh, Pay: %s\n",
		entry.SequenceNumber, export.FormatHours(entry.TotalHours), export.FormatCurrency(c.app.currencySymbol(ctx), entry.TotalPay))
	if entry.IsOvernight {
		c.app.printf("Shift ends on %s.\n", entry.EndsAt().Format(c.app.config.Display.DateFormat))
	}
	return nil
}
