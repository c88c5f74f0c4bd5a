package services

import (
	"time"

	"shiftpay/internal/config"
	"shiftpay/internal/repository/sqlite"
)

// NewServiceContainer wires every service on top of one repository
func NewServiceContainer(repo sqlite.Repository, cfg *config.Config) *ServiceContainer {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	rateService := NewRateService(repo, cfg)
	reportingService := NewReportingService(repo, cfg)

	return &ServiceContainer{
		RateService:      rateService,
		EntryService:     NewEntryService(repo, rateService, cfg, time.Now),
		ReportingService: reportingService,
		ExportService:    NewExportService(repo, rateService, reportingService, cfg, time.Now),
	}
}
