package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"shiftpay/internal/api"
	"shiftpay/internal/config"
	"shiftpay/internal/logging"
)

// APIFactory opens the business API once the configuration is final.
// The returned function releases the underlying storage.
type APIFactory func(cfg *config.Config) (api.BusinessAPI, func() error, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd      *cobra.Command
	api      api.BusinessAPI
	config   *config.Config
	factory  APIFactory
	closeAPI func() error
}

// NewRootCommand creates the root cobra command around an already opened API
func NewRootCommand(apiInstance api.BusinessAPI, cfg *config.Config) *RootCommand {
	return newRootCommand(apiInstance, nil, cfg)
}

// NewRootCommandWithFactory creates the root cobra command, opening the API after flags are applied
func NewRootCommandWithFactory(factory APIFactory, cfg *config.Config) *RootCommand {
	return newRootCommand(nil, factory, cfg)
}

func newRootCommand(apiInstance api.BusinessAPI, factory APIFactory, cfg *config.Config) *RootCommand {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	root := &RootCommand{
		api:     apiInstance,
		config:  cfg,
		factory: factory,
	}

	root.cmd = &cobra.Command{
		Use:   "shiftpay",
		Short: "Track work shifts, hours and pay",
		Long: `shiftpay records work shifts, computes hours and pay at your hourly rate,
tracks which shifts have been paid and produces a PDF report of unpaid work.

EXAMPLES:
  shiftpay serve                                   # Run the web interface
  shiftpay rate set 27.50                          # Change the hourly rate
  shiftpay add --date 2024-03-01 --start 22:00 --end 06:00
  shiftpay history --unpaid --from 2024-03-01      # Unpaid shifts since March
  shiftpay toggle 3                                # Flip the paid status of entry 3
  shiftpay pay-all --to 2024-03-31                 # Mark March as paid
  shiftpay export-pdf --output reports/            # Unpaid entries report
  shiftpay backup --output backup.json             # JSON snapshot
  shiftpay restore backup.json                     # Replace all data

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

  SHIFTPAY_ENV                             development, testing or production (default)
  SHIFTPAY_DB_DIR                          Database directory (default: ~/.shiftpay)
  SHIFTPAY_DB_FILENAME                     Database filename (default: shiftpay.db)
  SHIFTPAY_SERVER_ADDR                     Web interface address (default: 127.0.0.1:5000)
  SHIFTPAY_RATE_DEFAULT                    Rate used before one is set (default: 25.00)
  SHIFTPAY_RATE_CURRENCY_SYMBOL            Currency symbol (default: $)
  SHIFTPAY_VALIDATION_LONG_SHIFT           Long shift warning threshold (default: 16h)
  SHIFTPAY_DEBUG                           Print debug output`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Apply configuration overrides from flags before any command runs
			if err := root.getConfigFromFlags(); err != nil {
				return err
			}
			return root.openAPI()
		},
	}

	// Add global flags for configuration overrides
	root.addGlobalFlags()

	// Add all subcommands
	root.addSubcommands()

	return root
}

// Execute runs the root command and releases storage afterwards
func (r *RootCommand) Execute() error {
	defer r.close()
	return r.cmd.Execute()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides SHIFTPAY_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides SHIFTPAY_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides SHIFTPAY_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides SHIFTPAY_DB_WRITE_TIMEOUT)")

	// Server configuration
	flags.String("addr", "", "Web interface address (overrides SHIFTPAY_SERVER_ADDR)")

	// Rate configuration
	flags.String("default-rate", "", "Rate used before one is set (overrides SHIFTPAY_RATE_DEFAULT)")
	flags.String("currency-symbol", "", "Currency symbol (overrides SHIFTPAY_RATE_CURRENCY_SYMBOL)")

	// Validation configuration
	flags.Duration("long-shift", 0, "Long shift warning threshold (overrides SHIFTPAY_VALIDATION_LONG_SHIFT)")

	// Display configuration
	flags.String("date-format", "", "Date display layout (overrides SHIFTPAY_DISPLAY_DATE_FORMAT)")
	flags.String("time-format", "", "Time display layout (overrides SHIFTPAY_DISPLAY_TIME_FORMAT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides SHIFTPAY_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides SHIFTPAY_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// Serve command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web interface",
		Long:  "Serve the web interface until interrupted. The address comes from --addr or SHIFTPAY_SERVER_ADDR.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Serving has no overall deadline; it stops on SIGINT or SIGTERM
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return NewServeCommand(r.newApp(cmd)).Execute(ctx, args)
		},
	}

	// Rate command
	rateCmd := &cobra.Command{
		Use:   "rate",
		Short: "Show or change the hourly rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewRateCommand(r.newApp(cmd)), nil)
		},
	}
	rateCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the current hourly rate",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return r.run(cmd, NewRateCommand(r.newApp(cmd)), nil)
			},
		},
		&cobra.Command{
			Use:   "set [amount]",
			Short: "Set the hourly rate used for new entries",
			Long:  "Set the hourly rate used for new entries. Existing entries keep the rate they were recorded with.",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return r.run(cmd, NewRateCommand(r.newApp(cmd)), args)
			},
		},
	)

	// Add command
	var addOpts AddOptions
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record a shift",
		Long: `Record a shift. Hours and pay are computed at the current rate.
A shift whose end time is not after its start time is treated as overnight.

Examples:
  shiftpay add                                         # Today, 09:00 to 17:00
  shiftpay add --date 2024-03-01 --start 08:30 --end 16:45
  shiftpay add --date 2024-03-01 --start 22:00 --end 06:00`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewAddCommand(r.newApp(cmd), addOpts), args)
		},
	}
	addCmd.Flags().StringVar(&addOpts.Date, "date", "", "Shift date as YYYY-MM-DD (default today)")
	addCmd.Flags().StringVar(&addOpts.Start, "start", "", "Start time as HH:MM (default 09:00)")
	addCmd.Flags().StringVar(&addOpts.End, "end", "", "End time as HH:MM (default 17:00)")

	// History command
	var historyOpts HistoryOptions
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded shifts with totals",
		Long: `List recorded shifts ordered by date and start time, followed by totals.
Dates are parsed leniently, e.g. 2024-01-15, 15/01/2024 or "Jan 15 2024".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewHistoryCommand(r.newApp(cmd), historyOpts), args)
		},
	}
	historyCmd.Flags().BoolVar(&historyOpts.UnpaidOnly, "unpaid", false, "Only show unpaid entries")
	historyCmd.Flags().StringVar(&historyOpts.From, "from", "", "First date to include")
	historyCmd.Flags().StringVar(&historyOpts.To, "to", "", "Last date to include")

	// Toggle command
	toggleCmd := &cobra.Command{
		Use:   "toggle [id]",
		Short: "Flip the paid status of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewToggleCommand(r.newApp(cmd)), args)
		},
	}

	// Delete command
	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an entry",
		Long:  "Delete an entry. Its sequence number is never reused.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewDeleteCommand(r.newApp(cmd)), args)
		},
	}

	// Pay-all command
	var payAllOpts PayAllOptions
	payAllCmd := &cobra.Command{
		Use:   "pay-all",
		Short: "Mark every unpaid entry in a date range as paid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewPayAllCommand(r.newApp(cmd), payAllOpts), args)
		},
	}
	payAllCmd.Flags().StringVar(&payAllOpts.From, "from", "", "First date to include")
	payAllCmd.Flags().StringVar(&payAllOpts.To, "to", "", "Last date to include")

	// Export command
	var exportOpts ExportOptions
	exportCmd := &cobra.Command{
		Use:   "export-pdf",
		Short: "Write a PDF report of unpaid entries",
		Long:  "Write a PDF report of unpaid entries. --output may name a file or a directory; the default is unpaid_entries_<YYYYMMDD>.pdf in the current directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewExportPDFCommand(r.newApp(cmd), exportOpts), args)
		},
	}
	exportCmd.Flags().StringVarP(&exportOpts.Output, "output", "o", "", "Report file or directory")

	// Backup command
	var backupOpts ExportOptions
	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a JSON snapshot of all data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewBackupCommand(r.newApp(cmd), backupOpts), args)
		},
	}
	backupCmd.Flags().StringVarP(&backupOpts.Output, "output", "o", "", "Backup file (default stdout)")

	// Restore command
	restoreCmd := &cobra.Command{
		Use:   "restore [file]",
		Short: "Replace all data with a JSON snapshot",
		Long:  "Replace all settings and entries with the contents of a backup file. This operation cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewRestoreCommand(r.newApp(cmd)), args)
		},
	}

	// Add all subcommands to root
	r.cmd.AddCommand(
		serveCmd,
		rateCmd,
		addCmd,
		historyCmd,
		toggleCmd,
		deleteCmd,
		payAllCmd,
		exportCmd,
		backupCmd,
		restoreCmd,
	)
}

// run executes a command handler under the application timeout
func (r *RootCommand) run(cmd *cobra.Command, handler Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
	defer cancel()

	return handler.Execute(ctx, args)
}

// newApp builds the handler dependencies, writing to the command's output
func (r *RootCommand) newApp(cmd *cobra.Command) *App {
	return NewAppWithConfig(r.api, r.config, cmd.OutOrStdout())
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second // Default timeout
}

// openAPI opens the business API through the factory if none was injected
func (r *RootCommand) openAPI() error {
	if r.api != nil {
		return nil
	}
	if r.factory == nil {
		return fmt.Errorf("no business API configured")
	}

	businessAPI, closeFn, err := r.factory(r.config)
	if err != nil {
		return err
	}
	r.api = businessAPI
	r.closeAPI = closeFn
	logging.Debugf("opened database %s\n", r.config.GetDatabasePath())
	return nil
}

// close releases storage opened through the factory
func (r *RootCommand) close() {
	if r.closeAPI == nil {
		return
	}
	if err := r.closeAPI(); err != nil {
		logging.Errorf("failed to close database: %v", err)
	}
	r.closeAPI = nil
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	// Database configuration
	if dbDir, _ := flags.GetString("db-dir"); dbDir != "" {
		overrides.DBDir = &dbDir
	}
	if dbFilename, _ := flags.GetString("db-filename"); dbFilename != "" {
		overrides.DBFilename = &dbFilename
	}
	if queryTimeout, _ := flags.GetDuration("db-query-timeout"); queryTimeout > 0 {
		overrides.DBQueryTimeout = &queryTimeout
	}
	if writeTimeout, _ := flags.GetDuration("db-write-timeout"); writeTimeout > 0 {
		overrides.DBWriteTimeout = &writeTimeout
	}

	// Server configuration
	if addr, _ := flags.GetString("addr"); addr != "" {
		overrides.ServerAddr = &addr
	}

	// Rate configuration
	if defaultRate, _ := flags.GetString("default-rate"); defaultRate != "" {
		rate, err := decimal.NewFromString(defaultRate)
		if err != nil {
			return &config.ConfigError{Field: "default-rate", Message: "must be a decimal number"}
		}
		overrides.DefaultRate = &rate
	}
	if symbol, _ := flags.GetString("currency-symbol"); symbol != "" {
		overrides.CurrencySymbol = &symbol
	}

	// Validation configuration
	if longShift, _ := flags.GetDuration("long-shift"); longShift > 0 {
		overrides.LongShiftThreshold = &longShift
	}

	// Display configuration
	if dateFormat, _ := flags.GetString("date-format"); dateFormat != "" {
		overrides.DateFormat = &dateFormat
	}
	if timeFormat, _ := flags.GetString("time-format"); timeFormat != "" {
		overrides.TimeFormat = &timeFormat
	}

	// Application configuration
	if appTimeout, _ := flags.GetDuration("app-timeout"); appTimeout > 0 {
		overrides.Timeout = &appTimeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		overrides.Verbose = &verbose
	}

	if err := config.ApplyOverrides(r.config, overrides); err != nil {
		return err
	}
	logging.SetVerbose(r.config.Application.Verbose)
	return nil
}
