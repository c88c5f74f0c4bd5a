package services

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"shiftpay/internal/domain"
	"shiftpay/internal/shiftcalc"
)

// EntryRequest is a shift submission as typed by the user
type EntryRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// EntryResult is a stored entry together with the warnings raised while deriving it
type EntryResult struct {
	Entry           *domain.TimeEntry   `json:"entry"`
	Warnings        []shiftcalc.Warning `json:"warnings,omitempty"`
	WarningMessages []string            `json:"warning_messages,omitempty"`
}

// PaymentSummary describes the outcome of marking entries as paid
type PaymentSummary struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// HistoryQuery holds the raw filter parameters of the history view
type HistoryQuery struct {
	ShowPaid  string `json:"show_paid"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Stats summarises a set of entries overall and for the unpaid subset
type Stats struct {
	TotalHours  decimal.Decimal `json:"total_hours"`
	TotalPay    decimal.Decimal `json:"total_pay"`
	UnpaidHours decimal.Decimal `json:"unpaid_hours"`
	UnpaidPay   decimal.Decimal `json:"unpaid_pay"`
	EntryCount  int             `json:"entry_count"`
	UnpaidCount int             `json:"unpaid_count"`
}

// History is the filtered entry list shown on the history view
type History struct {
	Entries  []*domain.TimeEntry  `json:"entries"`
	Stats    Stats                `json:"stats"`
	Options  domain.SearchOptions `json:"-"`
	ShowPaid bool                 `json:"show_paid"`
}

// RateService manages the hourly rate applied to new entries
type RateService interface {
	GetCurrentRate(ctx context.Context) (*domain.RateSetting, error)
	UpdateRate(ctx context.Context, input string) (*domain.RateSetting, error)
}

// EntryService handles the lifecycle of time entries
type EntryService interface {
	CreateEntry(ctx context.Context, req EntryRequest) (*EntryResult, error)
	GetEntry(ctx context.Context, id int64) (*domain.TimeEntry, error)
	TogglePaid(ctx context.Context, id int64) (*domain.TimeEntry, error)
	DeleteEntry(ctx context.Context, id int64) (*domain.TimeEntry, error)
	MarkAllPaid(ctx context.Context, opts domain.SearchOptions) (*PaymentSummary, error)
}

// ReportingService handles filtering and aggregation of entries
type ReportingService interface {
	ParseQuery(query HistoryQuery) (domain.SearchOptions, error)
	GetHistory(ctx context.Context, query HistoryQuery) (*History, error)
	ListUnpaid(ctx context.Context) ([]*domain.TimeEntry, error)
	Aggregate(entries []*domain.TimeEntry) Stats
}

// ExportService produces the printable report and the JSON backup
type ExportService interface {
	ExportUnpaidPDF(ctx context.Context, w io.Writer, now time.Time) (string, error)
	Backup(ctx context.Context, w io.Writer) error
	Restore(ctx context.Context, r io.Reader) (*RestoreSummary, error)
}

// RestoreSummary counts what a restore loaded
type RestoreSummary struct {
	Settings int `json:"settings"`
	Entries  int `json:"entries"`
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	RateService      RateService
	EntryService     EntryService
	ReportingService ReportingService
	ExportService    ExportService
}
