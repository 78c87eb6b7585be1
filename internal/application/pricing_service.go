package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	pricingDomain "github.com/Laju-Ride-Hailing/service-rides/internal/domain/pricing"
)

// CreatePricingConfigRequest holds the data for a new fare rule set.
type CreatePricingConfigRequest struct {
	BaseFareCents    int64      `json:"base_fare_cents"`
	PerKmCents       int64      `json:"per_km_cents"`
	PerMinuteCents   int64      `json:"per_minute_cents"`
	BookingFeeCents  int64      `json:"booking_fee_cents"`
	MinimumFareCents int64      `json:"minimum_fare_cents" binding:"required"`
	Currency         string     `json:"currency" binding:"required"`
	EffectiveFrom    time.Time  `json:"effective_from" binding:"required"`
	EffectiveUntil   *time.Time `json:"effective_until"`
}

// PricingConfigDTO is the response representation of a pricing configuration.
type PricingConfigDTO struct {
	ID               uuid.UUID  `json:"id"`
	BaseFareCents    int64      `json:"base_fare_cents"`
	PerKmCents       int64      `json:"per_km_cents"`
	PerMinuteCents   int64      `json:"per_minute_cents"`
	BookingFeeCents  int64      `json:"booking_fee_cents"`
	MinimumFareCents int64      `json:"minimum_fare_cents"`
	Currency         string     `json:"currency"`
	EffectiveFrom    time.Time  `json:"effective_from"`
	EffectiveUntil   *time.Time `json:"effective_until,omitempty"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
}

// PricingService manages fare rule sets (admin).
type PricingService struct {
	configs pricingDomain.ConfigRepository
	logger  *zap.Logger
}

// NewPricingService creates a new PricingService.
func NewPricingService(configs pricingDomain.ConfigRepository, logger *zap.Logger) *PricingService {
	return &PricingService{configs: configs, logger: logger}
}

// CreateConfig persists a new pricing configuration.
func (s *PricingService) CreateConfig(ctx context.Context, req CreatePricingConfigRequest) (*PricingConfigDTO, error) {
	cfg, err := pricingDomain.NewConfig(
		req.BaseFareCents,
		req.PerKmCents,
		req.PerMinuteCents,
		req.BookingFeeCents,
		req.MinimumFareCents,
		req.Currency,
		req.EffectiveFrom,
		req.EffectiveUntil,
	)
	if err != nil {
		return nil, err
	}

	if err := s.configs.Save(ctx, cfg); err != nil {
		return nil, err
	}

	s.logger.Info("pricing config created",
		zap.String("config_id", cfg.ID().String()),
		zap.Time("effective_from", cfg.EffectiveFrom()),
	)

	result := toPricingConfigDTO(cfg)
	return &result, nil
}

// ListConfigs returns pricing configurations with pagination.
func (s *PricingService) ListConfigs(ctx context.Context, page, limit int) ([]PricingConfigDTO, int64, error) {
	configs, total, err := s.configs.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pricing configs: %w", err)
	}

	dtos := make([]PricingConfigDTO, len(configs))
	for i, cfg := range configs {
		dtos[i] = toPricingConfigDTO(cfg)
	}
	return dtos, total, nil
}

func toPricingConfigDTO(cfg *pricingDomain.Config) PricingConfigDTO {
	return PricingConfigDTO{
		ID:               cfg.ID(),
		BaseFareCents:    cfg.BaseFareCents(),
		PerKmCents:       cfg.PerKmCents(),
		PerMinuteCents:   cfg.PerMinuteCents(),
		BookingFeeCents:  cfg.BookingFeeCents(),
		MinimumFareCents: cfg.MinimumFareCents(),
		Currency:         cfg.Currency(),
		EffectiveFrom:    cfg.EffectiveFrom(),
		EffectiveUntil:   cfg.EffectiveUntil(),
		IsActive:         cfg.IsActive(),
		CreatedAt:        cfg.CreatedAt(),
	}
}
