package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"shiftpay/internal/api"
	"shiftpay/internal/config"
	"shiftpay/internal/errors"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// App holds the dependencies shared by every command handler
type App struct {
	api          api.BusinessAPI
	config       *config.Config
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewApp creates a new CLI application instance writing to stdout
func NewApp(businessAPI api.BusinessAPI) *App {
	return NewAppWithConfig(businessAPI, config.NewConfig(), os.Stdout)
}

// NewAppWithConfig creates a new CLI application instance with explicit configuration and output
func NewAppWithConfig(businessAPI api.BusinessAPI, cfg *config.Config, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if out == nil {
		out = os.Stdout
	}
	return &App{
		api:          businessAPI,
		config:       cfg,
		out:          out,
		errorHandler: NewErrorHandler(),
	}
}

// printf writes formatted output for the user
func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// currencySymbol returns the stored currency symbol, falling back to the configured default
func (a *App) currencySymbol(ctx context.Context) string {
	setting, err := a.api.GetRate(ctx)
	if err != nil || setting.CurrencySymbol == "" {
		return a.config.Rate.CurrencySymbol
	}
	return setting.CurrencySymbol
}

// parseEntryID parses the entry ID argument shared by toggle and delete
func parseEntryID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.NewInvalidInputError("id", args, "exactly one entry ID is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError("id", args[0], "entry ID must be a positive number")
	}
	return id, nil
}
