package api

import (
	"context"
	"io"
	"time"

	"shiftpay/internal/config"
	"shiftpay/internal/domain"
	"shiftpay/internal/repository/sqlite"
	"shiftpay/internal/services"
)

// BusinessAPI defines the workflow interface shared by the web and command-line front ends
type BusinessAPI interface {
	// ========== Rate Settings ==========

	// GetRate returns the current hourly rate, creating the default on first use
	GetRate(ctx context.Context) (*domain.RateSetting, error)

	// UpdateRate validates and stores a new hourly rate typed by the user
	UpdateRate(ctx context.Context, input string) (*domain.RateSetting, error)

	// ========== Time Entry Workflows ==========

	// RecordShift derives hours and pay at the current rate and stores the entry
	RecordShift(ctx context.Context, req services.EntryRequest) (*services.EntryResult, error)

	// GetEntry returns a single entry by ID
	GetEntry(ctx context.Context, id int64) (*domain.TimeEntry, error)

	// TogglePaid flips the paid status of an entry
	TogglePaid(ctx context.Context, id int64) (*domain.TimeEntry, error)

	// DeleteEntry removes an entry and returns what was removed
	DeleteEntry(ctx context.Context, id int64) (*domain.TimeEntry, error)

	// PayAll marks every unpaid entry inside the query's date range as paid
	PayAll(ctx context.Context, query services.HistoryQuery) (*services.PaymentSummary, error)

	// ========== Reporting ==========

	// GetHistory returns the filtered entries and their statistics
	GetHistory(ctx context.Context, query services.HistoryQuery) (*services.History, error)

	// ListUnpaid returns every unpaid entry in report order
	ListUnpaid(ctx context.Context) ([]*domain.TimeEntry, error)

	// ========== Export and Backup ==========

	// ExportUnpaidPDF writes the unpaid entries report and returns its file name
	ExportUnpaidPDF(ctx context.Context, w io.Writer, now time.Time) (string, error)

	// Backup writes a JSON snapshot of all data
	Backup(ctx context.Context, w io.Writer) error

	// Restore replaces all data with a JSON snapshot
	Restore(ctx context.Context, r io.Reader) (*services.RestoreSummary, error)
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	services *services.ServiceContainer
}

// NewBusinessAPI creates a new BusinessAPI instance on top of a repository
func NewBusinessAPI(repo sqlite.Repository, cfg *config.Config) BusinessAPI {
	return NewBusinessAPIWithServices(services.NewServiceContainer(repo, cfg))
}

// NewBusinessAPIWithServices creates a BusinessAPI from already wired services
func NewBusinessAPIWithServices(container *services.ServiceContainer) BusinessAPI {
	return &businessAPIImpl{services: container}
}

// ========== Rate Settings ==========

func (b *businessAPIImpl) GetRate(ctx context.Context) (*domain.RateSetting, error) {
	return b.services.RateService.GetCurrentRate(ctx)
}

func (b *businessAPIImpl) UpdateRate(ctx context.Context, input string) (*domain.RateSetting, error) {
	return b.services.RateService.UpdateRate(ctx, input)
}

// ========== Time Entry Workflows ==========

func (b *businessAPIImpl) RecordShift(ctx context.Context, req services.EntryRequest) (*services.EntryResult, error) {
	return b.services.EntryService.CreateEntry(ctx, req)
}

func (b *businessAPIImpl) GetEntry(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	return b.services.EntryService.GetEntry(ctx, id)
}

func (b *businessAPIImpl) TogglePaid(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	return b.services.EntryService.TogglePaid(ctx, id)
}

func (b *businessAPIImpl) DeleteEntry(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	return b.services.EntryService.DeleteEntry(ctx, id)
}

func (b *businessAPIImpl) PayAll(ctx context.Context, query services.HistoryQuery) (*services.PaymentSummary, error) {
	// 1. Apply the same date filters as the history view
	opts, err := b.services.ReportingService.ParseQuery(query)
	if err != nil {
		return nil, err
	}

	// 2. Paid entries are never touched, whatever show_paid says
	return b.services.EntryService.MarkAllPaid(ctx, opts.Unpaid())
}

// ========== Reporting ==========

func (b *businessAPIImpl) GetHistory(ctx context.Context, query services.HistoryQuery) (*services.History, error) {
	return b.services.ReportingService.GetHistory(ctx, query)
}

func (b *businessAPIImpl) ListUnpaid(ctx context.Context) ([]*domain.TimeEntry, error) {
	return b.services.ReportingService.ListUnpaid(ctx)
}

// ========== Export and Backup ==========

func (b *businessAPIImpl) ExportUnpaidPDF(ctx context.Context, w io.Writer, now time.Time) (string, error) {
	return b.services.ExportService.ExportUnpaidPDF(ctx, w, now)
}

func (b *businessAPIImpl) Backup(ctx context.Context, w io.Writer) error {
	return b.services.ExportService.Backup(ctx, w)
}

func (b *businessAPIImpl) Restore(ctx context.Context, r io.Reader) (*services.RestoreSummary, error) {
	return b.services.ExportService.Restore(ctx, r)
}
