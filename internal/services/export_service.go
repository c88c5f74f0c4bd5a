package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"shiftpay/internal/config"
	"shiftpay/internal/domain"
	"shiftpay/internal/errors"
	"shiftpay/internal/export"
	"shiftpay/internal/logging"
	"shiftpay/internal/repository/sqlite"
	"shiftpay/internal/shiftcalc"
	"shiftpay/internal/validation"
)

// payTolerance absorbs the binary float rounding of backups written by older tooling.
var payTolerance = decimal.New(1, -2)

// exportServiceImpl implements the ExportService interface
type exportServiceImpl struct {
	repo             sqlite.Repository
	rateService      RateService
	reportingService ReportingService
	exportConfig     config.ExportConfig
	rateValidator    *validation.RateValidator
	mapper           *domain.Mapper
	now              func() time.Time
}

// NewExportService creates a new ExportService instance
func NewExportService(repo sqlite.Repository, rateService RateService, reportingService ReportingService, cfg *config.Config, now func() time.Time) ExportService {
	if now == nil {
		now = time.Now
	}
	return &exportServiceImpl{
		repo:             repo,
		rateService:      rateService,
		reportingService: reportingService,
		exportConfig:     cfg.Export,
		rateValidator:    validation.NewRateValidatorWithConfig(cfg),
		mapper:           domain.NewMapper(),
		now:              now,
	}
}

// ExportUnpaidPDF writes the unpaid entries report to w and returns its file name.
// Nothing is written when there are no unpaid entries.
func (s *exportServiceImpl) ExportUnpaidPDF(ctx context.Context, w io.Writer, now time.Time) (string, error) {
	entries, err := s.reportingService.ListUnpaid(ctx)
	if err != nil {
		return "", err
	}

	rate, err := s.rateService.GetCurrentRate(ctx)
	if err != nil {
		return "", err
	}

	table, err := export.BuildUnpaidTable(entries, rate.CurrencySymbol)
	if err != nil {
		return "", err
	}

	if err := export.WritePDF(w, table, export.PDFOptions{Title: s.exportConfig.Title, GeneratedAt: now}); err != nil {
		return "", err
	}

	logging.Debugf("exported %d unpaid entries\n", len(table.Rows))
	return export.Filename(s.exportConfig.FilenamePrefix, now), nil
}

// Backup writes a snapshot of every setting and entry
func (s *exportServiceImpl) Backup(ctx context.Context, w io.Writer) error {
	// Make sure the default rate exists so the backup always carries one.
	if _, err := s.rateService.GetCurrentRate(ctx); err != nil {
		return err
	}

	dbSettings, err := s.repo.ListRateSettings(ctx)
	if err != nil {
		return err
	}
	dbEntries, err := s.repo.ListTimeEntries(ctx)
	if err != nil {
		return err
	}

	settings := make([]*domain.RateSetting, len(dbSettings))
	for i, dbSetting := range dbSettings {
		setting := s.mapper.RateSetting.FromDatabase(*dbSetting)
		settings[i] = &setting
	}

	next, err := s.repo.NextSequenceNumber(ctx)
	if err != nil {
		return err
	}

	snap := export.NewSnapshot(settings, s.mapper.TimeEntry.FromDatabaseSlice(dbEntries), s.now().UTC())
	if next-1 > snap.LastSequenceNumber {
		snap.LastSequenceNumber = next - 1
	}
	return export.WriteSnapshot(w, snap)
}

// Restore replaces all stored data with the content of a backup
func (s *exportServiceImpl) Restore(ctx context.Context, r io.Reader) (*RestoreSummary, error) {
	snap, err := export.ParseSnapshot(r)
	if err != nil {
		return nil, err
	}

	settings, entries, err := snap.ToDomain()
	if err != nil {
		return nil, err
	}
	if err := s.checkRestorable(settings, entries); err != nil {
		return nil, err
	}

	dbSettings := make([]*sqlite.RateSetting, len(settings))
	for i, setting := range settings {
		dbSetting := s.mapper.RateSetting.ToDatabase(*setting)
		dbSettings[i] = &dbSetting
	}

	if err := s.repo.ReplaceAll(ctx, dbSettings, s.mapper.TimeEntry.ToDatabaseSlice(entries), snap.LastSequenceNumber); err != nil {
		return nil, err
	}

	logging.Infof("restored %d settings and %d entries", len(settings), len(entries))
	return &RestoreSummary{Settings: len(settings), Entries: len(entries)}, nil
}

// checkRestorable rejects settings and entries the application could not have written
func (s *exportServiceImpl) checkRestorable(settings []*domain.RateSetting, entries []*domain.TimeEntry) error {
	for _, setting := range settings {
		if err := s.rateValidator.ValidateRate(setting.CurrentRate); err != nil {
			return err
		}
	}
	for _, entry := range entries {
		if err := checkEntryTotals(entry); err != nil {
			return err
		}
	}
	return nil
}

// checkEntryTotals recomputes the derived fields of a restored entry
func checkEntryTotals(entry *domain.TimeEntry) error {
	label := fmt.Sprintf("entry #%d", entry.SequenceNumber)
	if !entry.IsValid() {
		return errors.NewValidationError(label+" has a missing rate or negative totals", nil)
	}
	if entry.IsOvernight != shiftcalc.IsOvernight(entry.StartTime, entry.EndTime) {
		return errors.NewValidationError(fmt.Sprintf("%s: is_overnight does not match %s to %s", label, entry.StartTime, entry.EndTime), nil)
	}

	hours, err := shiftcalc.ComputeHours(entry.Date, entry.StartTime, entry.EndTime, entry.IsOvernight)
	if err != nil {
		return errors.NewValidationError(fmt.Sprintf("%s: %s", label, errors.GetUserMessage(err)), err)
	}
	if !hours.Equal(entry.TotalHours) {
		return errors.NewValidationError(fmt.Sprintf("%s: total_hours is %s but the shift lasts %s hours",
			label, entry.TotalHours.StringFixed(2), hours.StringFixed(2)), nil)
	}

	pay := shiftcalc.ComputePay(hours, entry.RateAtEntry)
	if pay.Sub(entry.TotalPay).Abs().GreaterThan(payTolerance) {
		return errors.NewValidationError(fmt.Sprintf("%s: total_pay is %s but %s hours at %s is %s",
			label, entry.TotalPay.StringFixed(2), hours.StringFixed(2), entry.RateAtEntry.StringFixed(2), pay.StringFixed(2)), nil)
	}
	return nil
}
