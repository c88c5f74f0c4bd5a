package cli

import (
	"context"

	"shiftpay/internal/errors"
	"shiftpay/internal/export"
)

// RateCommand handles the rate command
type RateCommand struct {
	app *App
}

// NewRateCommand creates a new rate command handler
func NewRateCommand(app *App) *RateCommand {
	return &RateCommand{app: app}
}

// Execute shows the current rate when called without arguments, or sets it to args[0]
func (c *RateCommand) Execute(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
		return c.showRate(ctx)
	case 1:
		return c.setRate(ctx, args[0])
	default:
		return c.app.errorHandler.HandleSimple(errors.NewInvalidInputError("rate", args, "expected a single amount"))
	}
}

func (c *RateCommand) showRate(ctx context.Context) error {
	setting, err := c.app.api.GetRate(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("get rate", err)
	}

	c.app.printf("Current rate: %s/hour\n", export.FormatCurrency(setting.CurrencySymbol, setting.CurrentRate))
	return nil
}

func (c *RateCommand) setRate(ctx context.Context, input string) error {
	setting, err := c.app.api.UpdateRate(ctx, input)
	if err != nil {
		return c.app.errorHandler.Handle("update rate", err)
	}

	c.app.printf("Settings updated successfully! New rate: %s/hour\n", export.FormatCurrency(setting.CurrencySymbol, setting.CurrentRate))
	return nil
}
