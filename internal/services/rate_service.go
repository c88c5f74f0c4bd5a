package services

import (
	"context"

	"shiftpay/internal/config"
	"shiftpay/internal/domain"
	"shiftpay/internal/logging"
	"shiftpay/internal/repository/sqlite"
	"shiftpay/internal/validation"
)

// rateServiceImpl implements the RateService interface
type rateServiceImpl struct {
	repo      sqlite.Repository
	validator *validation.RateValidator
	mapper    *domain.Mapper
}

// NewRateService creates a new RateService instance
func NewRateService(repo sqlite.Repository, cfg *config.Config) RateService {
	return &rateServiceImpl{
		repo:      repo,
		validator: validation.NewRateValidatorWithConfig(cfg),
		mapper:    domain.NewMapper(),
	}
}

// GetCurrentRate returns the active rate, creating the default on first use
func (s *rateServiceImpl) GetCurrentRate(ctx context.Context) (*domain.RateSetting, error) {
	dbSetting, err := s.repo.GetRateSetting(ctx)
	if err != nil {
		return nil, err
	}
	setting := s.mapper.RateSetting.FromDatabase(*dbSetting)
	return &setting, nil
}

// UpdateRate validates the typed rate and stores it. Existing entries keep their own rate.
func (s *rateServiceImpl) UpdateRate(ctx context.Context, input string) (*domain.RateSetting, error) {
	rate, err := s.validator.ParseRate(input)
	if err != nil {
		return nil, err
	}

	dbSetting, err := s.repo.UpdateRate(ctx, rate)
	if err != nil {
		return nil, err
	}
	logging.Debugf("rate updated to %s\n", rate.StringFixed(2))

	setting := s.mapper.RateSetting.FromDatabase(*dbSetting)
	return &setting, nil
}
