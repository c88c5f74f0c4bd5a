package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"shiftpay/internal/config"
	"shiftpay/internal/domain"
	"shiftpay/internal/logging"
	"shiftpay/internal/repository/sqlite"
	"shiftpay/internal/shiftcalc"
	"shiftpay/internal/validation"
)

// entryServiceImpl implements the EntryService interface
type entryServiceImpl struct {
	repo        sqlite.Repository
	rateService RateService
	validator   *validation.TimeEntryValidator
	limits      shiftcalc.Limits
	mapper      *domain.Mapper
	now         func() time.Time
}

// NewEntryService creates a new EntryService instance
func NewEntryService(repo sqlite.Repository, rateService RateService, cfg *config.Config, now func() time.Time) EntryService {
	if now == nil {
		now = time.Now
	}
	return &entryServiceImpl{
		repo:        repo,
		rateService: rateService,
		validator:   validation.NewTimeEntryValidatorWithConfig(cfg),
		limits:      shiftcalc.Limits{LongShiftThreshold: cfg.Validation.LongShiftThreshold},
		mapper:      domain.NewMapper(),
		now:         now,
	}
}

// CreateEntry derives hours and pay at the current rate and stores the entry
func (s *entryServiceImpl) CreateEntry(ctx context.Context, req EntryRequest) (*EntryResult, error) {
	input, err := s.validator.ParseEntryInput(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	rate, err := s.rateService.GetCurrentRate(ctx)
	if err != nil {
		return nil, err
	}

	calc, err := shiftcalc.Calculate(shiftcalc.Input{
		Date:  input.Date,
		Start: input.Start,
		End:   input.End,
	}, rate.CurrentRate, s.limits)
	if err != nil {
		return nil, err
	}

	entry := domain.TimeEntry{
		Date:        input.Date,
		StartTime:   input.Start,
		EndTime:     input.End,
		IsOvernight: calc.IsOvernight,
		RateAtEntry: rate.CurrentRate,
		TotalHours:  calc.Hours,
		TotalPay:    calc.Pay,
		CreatedAt:   s.now().UTC(),
	}

	dbEntry := s.mapper.TimeEntry.ToDatabase(entry)
	if err := s.repo.CreateTimeEntry(ctx, &dbEntry); err != nil {
		return nil, err
	}
	created := s.mapper.TimeEntry.FromDatabase(dbEntry)

	result := &EntryResult{Entry: &created, Warnings: calc.Warnings}
	for _, w := range calc.Warnings {
		result.WarningMessages = append(result.WarningMessages, w.Message(s.limits))
	}

	logging.Debugf("created entry #%d: %s hours, pay %s\n", created.SequenceNumber, created.TotalHours.StringFixed(2), created.TotalPay.StringFixed(2))
	return result, nil
}

// GetEntry returns a single entry by id
func (s *entryServiceImpl) GetEntry(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	if err := s.validator.ValidateTimeEntryID(id); err != nil {
		return nil, err
	}

	dbEntry, err := s.repo.GetTimeEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	entry := s.mapper.TimeEntry.FromDatabase(*dbEntry)
	return &entry, nil
}

// TogglePaid flips the paid status of an entry
func (s *entryServiceImpl) TogglePaid(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	if err := s.validator.ValidateTimeEntryID(id); err != nil {
		return nil, err
	}

	dbEntry, err := s.repo.TogglePaid(ctx, id)
	if err != nil {
		return nil, err
	}
	entry := s.mapper.TimeEntry.FromDatabase(*dbEntry)
	logging.Debugf("entry #%d marked as %s\n", entry.SequenceNumber, entry.PaidStatus())
	return &entry, nil
}

// DeleteEntry removes an entry and returns what was removed
func (s *entryServiceImpl) DeleteEntry(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteTimeEntry(ctx, id); err != nil {
		return nil, err
	}
	logging.Debugf("deleted entry #%d\n", entry.SequenceNumber)
	return entry, nil
}

// MarkAllPaid marks every unpaid entry matching opts as paid
func (s *entryServiceImpl) MarkAllPaid(ctx context.Context, opts domain.SearchOptions) (*PaymentSummary, error) {
	if err := s.validator.ValidateSearchOptions(opts); err != nil {
		return nil, err
	}

	result, err := s.repo.MarkAllPaid(ctx, s.mapper.SearchOptions.ToDatabase(opts.Unpaid()))
	if err != nil {
		return nil, err
	}
	if result.Count == 0 {
		return &PaymentSummary{Total: decimal.Zero}, nil
	}

	logging.Debugf("marked %d entries as paid, total %s\n", result.Count, result.Total.StringFixed(2))
	return &PaymentSummary{Count: result.Count, Total: result.Total}, nil
}
