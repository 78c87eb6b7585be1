package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pricingDomain "github.com/Laju-Ride-Hailing/service-rides/internal/domain/pricing"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/domain"
)

// PricingConfigModel is the GORM model for the pricing_configs table.
type PricingConfigModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BaseFareCents    int64      `gorm:"not null"`
	PerKmCents       int64      `gorm:"not null"`
	PerMinuteCents   int64      `gorm:"not null"`
	BookingFeeCents  int64      `gorm:"not null;default:0"`
	MinimumFareCents int64      `gorm:"not null"`
	Currency         string     `gorm:"not null;size:3;default:'MYR'"`
	EffectiveFrom    time.Time  `gorm:"not null;index"`
	EffectiveUntil   *time.Time `gorm:""`
	IsActive         bool       `gorm:"not null;default:true;index"`
	CreatedAt        time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (PricingConfigModel) TableName() string {
	return "pricing_configs"
}

// GormPricingConfigRepository is the GORM-based implementation of ConfigRepository.
type GormPricingConfigRepository struct {
	db *gorm.DB
}

// NewGormPricingConfigRepository creates a new GormPricingConfigRepository.
func NewGormPricingConfigRepository(db *gorm.DB) *GormPricingConfigRepository {
	return &GormPricingConfigRepository{db: db}
}

// FindActive returns the newest active config whose validity window contains
// the given instant. Absence is a not-found domain error; there is no
// default rate to fall back to.
func (r *GormPricingConfigRepository) FindActive(ctx context.Context, at time.Time) (*pricingDomain.Config, error) {
	var model PricingConfigModel
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("effective_from <= ?", at).
		Where("effective_until IS NULL OR effective_until > ?", at).
		Order("effective_from DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("PricingConfig", "active at "+at.UTC().Format(time.RFC3339))
		}
		return nil, fmt.Errorf("failed to find active pricing config: %w", err)
	}
	return toDomainConfig(&model), nil
}

// Save persists a new pricing configuration.
func (r *GormPricingConfigRepository) Save(ctx context.Context, cfg *pricingDomain.Config) error {
	model := toConfigModel(cfg)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save pricing config: %w", err)
	}
	return nil
}

// ListAll retrieves pricing configurations with pagination, newest first.
func (r *GormPricingConfigRepository) ListAll(ctx context.Context, page, limit int) ([]*pricingDomain.Config, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&PricingConfigModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count pricing configs: %w", err)
	}

	var models []PricingConfigModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("effective_from DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list pricing configs: %w", err)
	}

	configs := make([]*pricingDomain.Config, len(models))
	for i, m := range models {
		configs[i] = toDomainConfig(&m)
	}
	return configs, total, nil
}

func toConfigModel(cfg *pricingDomain.Config) PricingConfigModel {
	return PricingConfigModel{
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

func toDomainConfig(m *PricingConfigModel) *pricingDomain.Config {
	return pricingDomain.ReconstructConfig(
		m.ID,
		m.BaseFareCents,
		m.PerKmCents,
		m.PerMinuteCents,
		m.BookingFeeCents,
		m.MinimumFareCents,
		m.Currency,
		m.EffectiveFrom,
		m.EffectiveUntil,
		m.IsActive,
		m.CreatedAt,
	)
}
