package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"shiftpay/internal/errors"
	"shiftpay/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations
type Repository interface {
	// Rate settings
	GetRateSetting(ctx context.Context) (*RateSetting, error)
	UpdateRate(ctx context.Context, rate decimal.Decimal) (*RateSetting, error)
	ListRateSettings(ctx context.Context) ([]*RateSetting, error)

	// Create operations
	NextSequenceNumber(ctx context.Context) (int64, error)
	CreateTimeEntry(ctx context.Context, entry *TimeEntry) error

	// Read operations
	GetTimeEntry(ctx context.Context, id int64) (*TimeEntry, error)
	ListTimeEntries(ctx context.Context) ([]*TimeEntry, error)
	SearchTimeEntries(ctx context.Context, opts SearchOptions) ([]*TimeEntry, error)

	// Update operations
	TogglePaid(ctx context.Context, id int64) (*TimeEntry, error)
	MarkAllPaid(ctx context.Context, opts SearchOptions) (*PaymentResult, error)

	// Delete operations
	DeleteTimeEntry(ctx context.Context, id int64) error

	// Backup restore
	ReplaceAll(ctx context.Context, settings []*RateSetting, entries []*TimeEntry, lastSequence int64) error

	// Utility
	Close() error
}

// Options tune repository behaviour
type Options struct {
	DefaultRate           decimal.Decimal
	DefaultCurrencySymbol string
	QueryTimeout          time.Duration
	WriteTimeout          time.Duration
}

// DefaultOptions returns the options used by New
func DefaultOptions() Options {
	return Options{
		DefaultRate:           decimal.RequireFromString("25.00"),
		DefaultCurrencySymbol: "$",
		QueryTimeout:          10 * time.Second,
		WriteTimeout:          5 * time.Second,
	}
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
	now  func() time.Time
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, DefaultOptions())
}

// NewWithOptions creates a new SQLite repository instance with explicit options
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// One connection serialises writers and keeps :memory: databases alive.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, errors.NewDatabaseError(fmt.Sprintf("exec pragma %q", p), err)
		}
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, opts: opts, now: time.Now}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) readContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.opts.QueryTimeout)
}

func (r *SQLiteRepository) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.WriteTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.opts.WriteTimeout)
}

func (r *SQLiteRepository) timestamp() string {
	return FormatTimeForDB(r.now().UTC())
}

// GetRateSetting returns the active rate setting, creating the default one on first access
func (r *SQLiteRepository) GetRateSetting(ctx context.Context) (*RateSetting, error) {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	if err := r.ensureRateSetting(ctx, r.db); err != nil {
		return nil, err
	}
	return r.activeRateSetting(ctx, r.db)
}

// UpdateRate changes the hourly rate of the active rate setting
func (r *SQLiteRepository) UpdateRate(ctx context.Context, rate decimal.Decimal) (*RateSetting, error) {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	if err := r.ensureRateSetting(ctx, r.db); err != nil {
		return nil, err
	}

	query := `
	UPDATE rate_settings
	SET current_rate = ?
	WHERE id = (SELECT MIN(id) FROM rate_settings)`
	if err := ExecuteWithRowsAffected(ctx, r.db, query, "rate setting", "active", FormatDecimalForDB(rate)); err != nil {
		return nil, err
	}
	return r.activeRateSetting(ctx, r.db)
}

// ListRateSettings retrieves every stored rate setting
func (r *SQLiteRepository) ListRateSettings(ctx context.Context) ([]*RateSetting, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `SELECT ` + rateSettingColumns + ` FROM rate_settings ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanRateSettings, "rate settings")
}

func (r *SQLiteRepository) ensureRateSetting(ctx context.Context, q Querier) error {
	query := `
	INSERT INTO rate_settings (current_rate, currency_symbol, created_at)
	SELECT ?, ?, ?
	WHERE NOT EXISTS (SELECT 1 FROM rate_settings)`
	_, err := q.ExecContext(ctx, query, FormatDecimalForDB(r.opts.DefaultRate), r.opts.DefaultCurrencySymbol, r.timestamp())
	if err != nil {
		return HandleDatabaseError("create default rate setting", err)
	}
	return nil
}

func (r *SQLiteRepository) activeRateSetting(ctx context.Context, q Querier) (*RateSetting, error) {
	query := `SELECT ` + rateSettingColumns + ` FROM rate_settings ORDER BY id ASC LIMIT 1`
	return QuerySingle(ctx, q, query, ScanRateSetting, "rate setting", "active")
}

// NextSequenceNumber returns the number the next created entry will receive
func (r *SQLiteRepository) NextSequenceNumber(ctx context.Context) (int64, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	return nextSequenceNumber(ctx, r.db)
}

// nextSequenceNumber never hands out a number twice, even after the highest entry is deleted
func nextSequenceNumber(ctx context.Context, q Querier) (int64, error) {
	query := `
	SELECT MAX(
		COALESCE((SELECT MAX(sequence_number) FROM time_entries), 0),
		COALESCE((SELECT last_value FROM entry_sequence WHERE id = 1), 0)
	) + 1`
	var next int64
	if err := q.QueryRowContext(ctx, query).Scan(&next); err != nil {
		return 0, HandleDatabaseError("read next sequence number", err)
	}
	return next, nil
}

func recordSequenceNumber(ctx context.Context, q Querier, value int64) error {
	query := `
	INSERT INTO entry_sequence (id, last_value) VALUES (1, ?)
	ON CONFLICT(id) DO UPDATE SET last_value = MAX(last_value, excluded.last_value)`
	if _, err := q.ExecContext(ctx, query, value); err != nil {
		return HandleDatabaseError("record sequence number", err)
	}
	return nil
}

func validateTimeEntryFields(entry *TimeEntry) error {
	var missing []string
	if entry.Date.IsZero() {
		missing = append(missing, "date")
	}
	if !entry.RateAtEntry.IsPositive() {
		missing = append(missing, "rate_at_entry")
	}
	if entry.CreatedAt.IsZero() {
		missing = append(missing, "created_at")
	}
	if len(missing) > 0 {
		return errors.NewValidationError("time entry is missing required fields: "+strings.Join(missing, ", "), nil).
			WithContext("missing", missing)
	}
	return nil
}

// CreateTimeEntry assigns the next sequence number and inserts the entry in one transaction
func (r *SQLiteRepository) CreateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	if err := validateTimeEntryFields(entry); err != nil {
		return err
	}

	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin create time entry", err)
	}
	defer tx.Rollback()

	seq, err := nextSequenceNumber(ctx, tx)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO time_entries (sequence_number, date, start_time, end_time, is_overnight,
		rate_at_entry, total_hours, total_pay, is_paid, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	id, err := ExecuteWithLastInsertID(ctx, tx, query,
		seq,
		FormatDateForDB(entry.Date),
		FormatClockForDB(entry.StartTime),
		FormatClockForDB(entry.EndTime),
		FormatBoolForDB(entry.IsOvernight),
		FormatDecimalForDB(entry.RateAtEntry),
		FormatDecimalForDB(entry.TotalHours),
		FormatDecimalForDB(entry.TotalPay),
		FormatBoolForDB(entry.IsPaid),
		FormatTimeForDB(entry.CreatedAt),
	)
	if err != nil {
		return err
	}

	if err := recordSequenceNumber(ctx, tx, seq); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit create time entry", err)
	}

	entry.ID = id
	entry.SequenceNumber = seq
	return nil
}

// GetTimeEntry retrieves a time entry by ID
func (r *SQLiteRepository) GetTimeEntry(ctx context.Context, id int64) (*TimeEntry, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTimeEntry, "time entry", fmt.Sprintf("%d", id), id)
}

// ListTimeEntries retrieves all time entries
func (r *SQLiteRepository) ListTimeEntries(ctx context.Context) ([]*TimeEntry, error) {
	return r.SearchTimeEntries(ctx, SearchOptions{})
}

// SearchTimeEntries returns entries matching every given option, ordered by date then start time
func (r *SQLiteRepository) SearchTimeEntries(ctx context.Context, opts SearchOptions) ([]*TimeEntry, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	return searchTimeEntries(ctx, r.db, opts)
}

func buildSearchConditions(opts SearchOptions) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if opts.OnlyUnpaid {
		conditions = append(conditions, "is_paid = 0")
	}
	if opts.DateFrom != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, FormatDatePtrForDB(opts.DateFrom))
	}
	if opts.DateTo != nil {
		conditions = append(conditions, "date <= ?")
		args = append(args, FormatDatePtrForDB(opts.DateTo))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func searchTimeEntries(ctx context.Context, q Querier, opts SearchOptions) ([]*TimeEntry, error) {
	where, args := buildSearchConditions(opts)
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries` + where +
		` ORDER BY date ASC, start_time ASC, sequence_number ASC`
	return QueryMultiple(ctx, q, query, ScanTimeEntries, "time entries", args...)
}

// TogglePaid flips the paid flag of an entry and returns the updated entry
func (r *SQLiteRepository) TogglePaid(ctx context.Context, id int64) (*TimeEntry, error) {
	wctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `
	UPDATE time_entries
	SET is_paid = CASE is_paid WHEN 0 THEN 1 ELSE 0 END
	WHERE id = ?`
	if err := ExecuteWithRowsAffected(wctx, r.db, query, "time entry", fmt.Sprintf("%d", id), id); err != nil {
		return nil, err
	}
	return r.GetTimeEntry(ctx, id)
}

// MarkAllPaid marks every unpaid entry matching opts as paid in one transaction
func (r *SQLiteRepository) MarkAllPaid(ctx context.Context, opts SearchOptions) (*PaymentResult, error) {
	opts.OnlyUnpaid = true

	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, HandleDatabaseError("begin mark all paid", err)
	}
	defer tx.Rollback()

	unpaid, err := searchTimeEntries(ctx, tx, opts)
	if err != nil {
		return nil, err
	}

	result := &PaymentResult{Total: decimal.Zero}
	if len(unpaid) == 0 {
		return result, nil
	}

	where, args := buildSearchConditions(opts)
	if _, err := tx.ExecContext(ctx, `UPDATE time_entries SET is_paid = 1`+where, args...); err != nil {
		return nil, HandleDatabaseError("mark entries paid", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, HandleDatabaseError("commit mark all paid", err)
	}

	for _, entry := range unpaid {
		result.Count++
		result.Total = result.Total.Add(entry.TotalPay)
	}
	return result, nil
}

// DeleteTimeEntry deletes a time entry by ID
func (r *SQLiteRepository) DeleteTimeEntry(ctx context.Context, id int64) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `DELETE FROM time_entries WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "time entry", fmt.Sprintf("%d", id), id)
}

// ReplaceAll swaps the whole data set for the given one, keeping ids and sequence numbers.
// The sequence counter moves to the highest of lastSequence, the restored entries and its current value.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, settings []*RateSetting, entries []*TimeEntry, lastSequence int64) error {
	for _, entry := range entries {
		if err := validateTimeEntryFields(entry); err != nil {
			return err
		}
	}

	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin restore", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM time_entries", "DELETE FROM rate_settings"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return HandleDatabaseError("clear tables", err)
		}
	}

	for _, s := range settings {
		id, err := ExecuteWithLastInsertID(ctx, tx,
			`INSERT INTO rate_settings (id, current_rate, currency_symbol, created_at) VALUES (NULLIF(?, 0), ?, ?, ?)`,
			s.ID, FormatDecimalForDB(s.CurrentRate), s.CurrencySymbol, FormatTimeForDB(s.CreatedAt))
		if err != nil {
			return err
		}
		s.ID = id
	}

	maxSeq := lastSequence
	for _, e := range entries {
		id, err := ExecuteWithLastInsertID(ctx, tx, `
		INSERT INTO time_entries (id, sequence_number, date, start_time, end_time, is_overnight,
			rate_at_entry, total_hours, total_pay, is_paid, created_at)
		VALUES (NULLIF(?, 0), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID,
			e.SequenceNumber,
			FormatDateForDB(e.Date),
			FormatClockForDB(e.StartTime),
			FormatClockForDB(e.EndTime),
			FormatBoolForDB(e.IsOvernight),
			FormatDecimalForDB(e.RateAtEntry),
			FormatDecimalForDB(e.TotalHours),
			FormatDecimalForDB(e.TotalPay),
			FormatBoolForDB(e.IsPaid),
			FormatTimeForDB(e.CreatedAt),
		)
		if err != nil {
			return err
		}
		e.ID = id
		if e.SequenceNumber > maxSeq {
			maxSeq = e.SequenceNumber
		}
	}

	if err := recordSequenceNumber(ctx, tx, maxSeq); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit restore", err)
	}
	return nil
}
