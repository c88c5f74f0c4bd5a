package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shiftpay/internal/config"
	"shiftpay/internal/repository/sqlite"
)

var fixedNow = time.Date(2024, 3, 7, 18, 45, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

// Helper functions
func setupServices(t *testing.T) (*ServiceContainer, sqlite.Repository) {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	cfg := config.NewConfig()
	rateService := NewRateService(repo, cfg)
	reportingService := NewReportingService(repo, cfg)
	container := &ServiceContainer{
		RateService:      rateService,
		EntryService:     NewEntryService(repo, rateService, cfg, fixedClock),
		ReportingService: reportingService,
		ExportService:    NewExportService(repo, rateService, reportingService, cfg, fixedClock),
	}
	return container, repo
}

func setupServicesWithEntries(t *testing.T, requests []EntryRequest) (*ServiceContainer, []*EntryResult) {
	t.Helper()
	container, _ := setupServices(t)

	results := make([]*EntryResult, 0, len(requests))
	for _, req := range requests {
		result, err := container.EntryService.CreateEntry(context.Background(), req)
		require.NoError(t, err)
		results = append(results, result)
	}
	return container, results
}
