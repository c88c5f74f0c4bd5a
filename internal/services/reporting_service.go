package services

import (
	"context"

	"github.com/shopspring/decimal"

	"shiftpay/internal/config"
	"shiftpay/internal/domain"
	"shiftpay/internal/repository/sqlite"
	"shiftpay/internal/validation"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	repo      sqlite.Repository
	validator *validation.TimeEntryValidator
	mapper    *domain.Mapper
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(repo sqlite.Repository, cfg *config.Config) ReportingService {
	return &reportingServiceImpl{
		repo:      repo,
		validator: validation.NewTimeEntryValidatorWithConfig(cfg),
		mapper:    domain.NewMapper(),
	}
}

// ParseQuery turns raw history parameters into search options
func (r *reportingServiceImpl) ParseQuery(query HistoryQuery) (domain.SearchOptions, error) {
	return r.validator.ParseHistoryFilter(query.ShowPaid, query.StartDate, query.EndDate)
}

// GetHistory returns the entries matching the query together with their statistics
func (r *reportingServiceImpl) GetHistory(ctx context.Context, query HistoryQuery) (*History, error) {
	opts, err := r.ParseQuery(query)
	if err != nil {
		return nil, err
	}

	entries, err := r.search(ctx, opts)
	if err != nil {
		return nil, err
	}

	return &History{
		Entries:  entries,
		Stats:    r.Aggregate(entries),
		Options:  opts,
		ShowPaid: !opts.OnlyUnpaid,
	}, nil
}

// ListUnpaid returns every unpaid entry in report order
func (r *reportingServiceImpl) ListUnpaid(ctx context.Context) ([]*domain.TimeEntry, error) {
	return r.search(ctx, domain.SearchOptions{OnlyUnpaid: true})
}

func (r *reportingServiceImpl) search(ctx context.Context, opts domain.SearchOptions) ([]*domain.TimeEntry, error) {
	dbEntries, err := r.repo.SearchTimeEntries(ctx, r.mapper.SearchOptions.ToDatabase(opts))
	if err != nil {
		return nil, err
	}
	return r.mapper.TimeEntry.FromDatabaseSlice(dbEntries), nil
}

// Aggregate sums the stored hours and pay of entries, overall and for unpaid ones
func (r *reportingServiceImpl) Aggregate(entries []*domain.TimeEntry) Stats {
	stats := Stats{
		TotalHours:  decimal.Zero,
		TotalPay:    decimal.Zero,
		UnpaidHours: decimal.Zero,
		UnpaidPay:   decimal.Zero,
	}

	for _, entry := range entries {
		stats.EntryCount++
		stats.TotalHours = stats.TotalHours.Add(entry.TotalHours)
		stats.TotalPay = stats.TotalPay.Add(entry.TotalPay)

		if !entry.IsPaid {
			stats.UnpaidCount++
			stats.UnpaidHours = stats.UnpaidHours.Add(entry.TotalHours)
			stats.UnpaidPay = stats.UnpaidPay.Add(entry.TotalPay)
		}
	}

	return stats
}
