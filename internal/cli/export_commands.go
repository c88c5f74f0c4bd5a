package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"shiftpay/internal/errors"
)

// ExportOptions holds the destination given on the command line
type ExportOptions struct {
	Output string
}

// ExportPDFCommand handles the export-pdf command
type ExportPDFCommand struct {
	app     *App
	options ExportOptions
}

// NewExportPDFCommand creates a new export-pdf command handler
func NewExportPDFCommand(app *App, options ExportOptions) *ExportPDFCommand {
	return &ExportPDFCommand{app: app, options: options}
}

// Execute writes the unpaid entries report. An empty report is reported, not written.
func (c *ExportPDFCommand) Execute(ctx context.Context, args []string) error {
	var buf bytes.Buffer
	filename, err := c.app.api.ExportUnpaidPDF(ctx, &buf, timeNow())
	if err != nil {
		if c.app.errorHandler.IsEmptyResultError(err) {
			c.app.printf("%s\n", errors.GetUserMessage(err))
			return nil
		}
		return c.app.errorHandler.Handle("export report", err)
	}

	path := c.options.Output
	if path == "" {
		path = filename
	} else if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		path = filepath.Join(path, filename)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return c.app.errorHandler.Handle("write report", err)
	}

	c.app.printf("Unpaid entries report written to %s\n", path)
	return nil
}

// BackupCommand handles the backup command
type BackupCommand struct {
	app     *App
	options ExportOptions
}

// NewBackupCommand creates a new backup command handler
func NewBackupCommand(app *App, options ExportOptions) *BackupCommand {
	return &BackupCommand{app: app, options: options}
}

// Execute writes a JSON snapshot to the output file, or to stdout when none is given
func (c *BackupCommand) Execute(ctx context.Context, args []string) error {
	if c.options.Output == "" || c.options.Output == "-" {
		if err := c.app.api.Backup(ctx, c.app.out); err != nil {
			return c.app.errorHandler.Handle("create backup", err)
		}
		return nil
	}

	var buf bytes.Buffer
	if err := c.app.api.Backup(ctx, &buf); err != nil {
		return c.app.errorHandler.Handle("create backup", err)
	}
	if err := os.WriteFile(c.options.Output, buf.Bytes(), 0600); err != nil {
		return c.app.errorHandler.Handle("write backup", err)
	}

	c.app.printf("Backup written to %s\n", c.options.Output)
	return nil
}

// RestoreCommand handles the restore command
type RestoreCommand struct {
	app *App
}

// NewRestoreCommand creates a new restore command handler
func NewRestoreCommand(app *App) *RestoreCommand {
	return &RestoreCommand{app: app}
}

// Execute replaces all data with the snapshot in the file named by args[0]
func (c *RestoreCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return c.app.errorHandler.HandleSimple(errors.NewInvalidInputError("file", args, "exactly one backup file is required"))
	}

	file, err := os.Open(args[0])
	if err != nil {
		return c.app.errorHandler.Handle("open backup", err)
	}
	defer file.Close()

	summary, err := c.app.api.Restore(ctx, file)
	if err != nil {
		return c.app.errorHandler.Handle("restore backup", err)
	}

	c.app.printf("Backup restored: %d entries, %d settings.\n", summary.Entries, summary.Settings)
	return nil
}
