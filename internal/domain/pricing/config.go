package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Laju-Ride-Hailing/service-rides/pkg/domain"
)

// Config is a fare rule set with a validity window. At most one config
// should be active for any instant; the repository resolves overlaps by
// picking the newest effective one.
type Config struct {
	id               uuid.UUID
	baseFareCents    int64
	perKmCents       int64
	perMinuteCents   int64
	bookingFeeCents  int64
	minimumFareCents int64
	currency         string
	effectiveFrom    time.Time
	effectiveUntil   *time.Time
	active           bool
	createdAt        time.Time
}

// NewConfig creates a pricing configuration effective from the given instant.
func NewConfig(
	baseFareCents, perKmCents, perMinuteCents, bookingFeeCents, minimumFareCents int64,
	currency string,
	effectiveFrom time.Time,
	effectiveUntil *time.Time,
) (*Config, error) {
	if baseFareCents < 0 || perKmCents < 0 || perMinuteCents < 0 || bookingFeeCents < 0 {
		return nil, domain.NewValidationError("fare rates cannot be negative")
	}
	if minimumFareCents <= 0 {
		return nil, domain.NewValidationError("minimum fare must be positive")
	}
	if currency == "" {
		return nil, domain.NewValidationError("currency is required")
	}
	if effectiveUntil != nil && !effectiveUntil.After(effectiveFrom) {
		return nil, domain.NewValidationError("effective_until must be after effective_from")
	}

	return &Config{
		id:               uuid.New(),
		baseFareCents:    baseFareCents,
		perKmCents:       perKmCents,
		perMinuteCents:   perMinuteCents,
		bookingFeeCents:  bookingFeeCents,
		minimumFareCents: minimumFareCents,
		currency:         currency,
		effectiveFrom:    effectiveFrom,
		effectiveUntil:   effectiveUntil,
		active:           true,
		createdAt:        time.Now().UTC(),
	}, nil
}

// ReconstructConfig rebuilds a Config from persistence data (no validation).
func ReconstructConfig(
	id uuid.UUID,
	baseFareCents, perKmCents, perMinuteCents, bookingFeeCents, minimumFareCents int64,
	currency string,
	effectiveFrom time.Time,
	effectiveUntil *time.Time,
	active bool,
	createdAt time.Time,
) *Config {
	return &Config{
		id:               id,
		baseFareCents:    baseFareCents,
		perKmCents:       perKmCents,
		perMinuteCents:   perMinuteCents,
		bookingFeeCents:  bookingFeeCents,
		minimumFareCents: minimumFareCents,
		currency:         currency,
		effectiveFrom:    effectiveFrom,
		effectiveUntil:   effectiveUntil,
		active:           active,
		createdAt:        createdAt,
	}
}

// ID returns the configuration identifier.
func (c *Config) ID() uuid.UUID { return c.id }

// BaseFareCents returns the flag-fall charge.
func (c *Config) BaseFareCents() int64 { return c.baseFareCents }

// PerKmCents returns the distance rate per kilometer.
func (c *Config) PerKmCents() int64 { return c.perKmCents }

// PerMinuteCents returns the time rate per minute.
func (c *Config) PerMinuteCents() int64 { return c.perMinuteCents }

// BookingFeeCents returns the fixed booking fee.
func (c *Config) BookingFeeCents() int64 { return c.bookingFeeCents }

// MinimumFareCents returns the fare floor.
func (c *Config) MinimumFareCents() int64 { return c.minimumFareCents }

// Currency returns the currency code.
func (c *Config) Currency() string { return c.currency }

// EffectiveFrom returns the start of the validity window.
func (c *Config) EffectiveFrom() time.Time { return c.effectiveFrom }

// EffectiveUntil returns the end of the validity window, or nil if open-ended.
func (c *Config) EffectiveUntil() *time.Time { return c.effectiveUntil }

// IsActive returns whether this config is enabled.
func (c *Config) IsActive() bool { return c.active }

// CreatedAt returns the creation timestamp.
func (c *Config) CreatedAt() time.Time { return c.createdAt }

// ContainsInstant reports whether at falls inside the validity window.
func (c *Config) ContainsInstant(at time.Time) bool {
	if at.Before(c.effectiveFrom) {
		return false
	}
	if c.effectiveUntil != nil && !at.Before(*c.effectiveUntil) {
		return false
	}
	return true
}

// ConfigRepository defines the persistence contract for pricing configs.
type ConfigRepository interface {
	// FindActive returns the config whose validity window contains the
	// instant. Absence is an error, never a default rate.
	FindActive(ctx context.Context, at time.Time) (*Config, error)

	// Save persists a new pricing configuration.
	Save(ctx context.Context, cfg *Config) error

	// ListAll retrieves pricing configurations with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Config, int64, error)
}
