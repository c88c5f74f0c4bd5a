package cli

import (
	"context"

	"shiftpay/internal/export"
	"shiftpay/internal/services"
)

// ToggleCommand handles the toggle command
type ToggleCommand struct {
	app *App
}

// NewToggleCommand creates a new toggle command handler
func NewToggleCommand(app *App) *ToggleCommand {
	return &ToggleCommand{app: app}
}

// Execute flips the paid status of the entry whose ID is args[0]
func (c *ToggleCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseEntryID(args)
	if err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	entry, err := c.app.api.TogglePaid(ctx, id)
	if err != nil {
		return c.app.errorHandler.Handle("toggle entry", err)
	}

	c.app.printf("Entry #%d marked as %s.\n", entry.SequenceNumber, entry.PaidStatus())
	return nil
}

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute removes the entry whose ID is args[0]
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseEntryID(args)
	if err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	entry, err := c.app.api.DeleteEntry(ctx, id)
	if err != nil {
		return c.app.errorHandler.Handle("delete entry", err)
	}

	c.app.printf("Entry #%d deleted successfully.\n", entry.SequenceNumber)
	return nil
}

// PayAllOptions holds the date range given on the command line
type PayAllOptions struct {
	From string
	To   string
}

// PayAllCommand handles the pay-all command
type PayAllCommand struct {
	app     *App
	options PayAllOptions
}

// NewPayAllCommand creates a new pay-all command handler
func NewPayAllCommand(app *App, options PayAllOptions) *PayAllCommand {
	return &PayAllCommand{app: app, options: options}
}

// Execute marks every unpaid entry in the range as paid
func (c *PayAllCommand) Execute(ctx context.Context, args []string) error {
	summary, err := c.app.api.PayAll(ctx, services.HistoryQuery{
		StartDate: c.options.From,
		EndDate:   c.options.To,
	})
	if err != nil {
		return c.app.errorHandler.Handle("mark entries as paid", err)
	}

	if summary.Count == 0 {
		c.app.printf("No unpaid entries found to mark as paid.\n")
		return nil
	}

	c.app.printf("Marked %d entries as paid. Total: %s\n", summary.Count, export.FormatCurrency(c.app.currencySymbol(ctx), summary.Total))
	return nil
}
