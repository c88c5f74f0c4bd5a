package cli

import (
	"context"

	"shiftpay/internal/web"
)

// ServeCommand handles the serve command
type ServeCommand struct {
	app *App
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

// Execute runs the web interface until ctx is cancelled
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	server, err := web.NewServer(c.app.api, c.app.config)
	if err != nil {
		return c.app.errorHandler.Handle("start server", err)
	}

	c.app.printf("Serving shiftpay on http://%s\n", c.app.config.Server.Addr)
	if err := server.ListenAndServe(ctx); err != nil {
		return c.app.errorHandler.Handle("serve", err)
	}
	return nil
}
