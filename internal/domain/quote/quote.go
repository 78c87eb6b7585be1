package quote

import (
	"time"

	"github.com/google/uuid"

	"github.com/Laju-Ride-Hailing/service-rides/internal/domain/pricing"
	"github.com/Laju-Ride-Hailing/service-rides/internal/routing"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/domain"
)

// Validity is how long a quote can be redeemed after creation.
const Validity = 300 * time.Second

// Quote is a time-bounded, immutable fare estimate tied to a specific route
// and pricing configuration. It is created exactly once, never mutated, and
// becomes permanently unusable once its expiry passes.
type Quote struct {
	id              uuid.UUID
	userID          uuid.UUID
	pickupLat       float64
	pickupLng       float64
	dropoffLat      float64
	dropoffLng      float64
	distanceMeters  int
	durationSeconds int
	polyline        string
	pricingConfigID uuid.UUID
	fare            pricing.FareBreakdown
	createdAt       time.Time
	expiresAt       time.Time
}

// NewQuote assembles a quote from a resolved route and computed fare,
// stamping creation time and expiry = creation + Validity.
func NewQuote(
	userID uuid.UUID,
	pickupLat, pickupLng, dropoffLat, dropoffLng float64,
	route *routing.RouteResult,
	pricingConfigID uuid.UUID,
	fare pricing.FareBreakdown,
) (*Quote, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}
	if route == nil {
		return nil, domain.NewValidationError("route result is required")
	}
	if pricingConfigID == uuid.Nil {
		return nil, domain.NewValidationError("pricing config ID is required")
	}

	now := time.Now().UTC()
	return &Quote{
		id:              uuid.New(),
		userID:          userID,
		pickupLat:       pickupLat,
		pickupLng:       pickupLng,
		dropoffLat:      dropoffLat,
		dropoffLng:      dropoffLng,
		distanceMeters:  route.DistanceMeters,
		durationSeconds: route.DurationSeconds,
		polyline:        route.Polyline,
		pricingConfigID: pricingConfigID,
		fare:            fare,
		createdAt:       now,
		expiresAt:       now.Add(Validity),
	}, nil
}

// Reconstruct rebuilds a Quote from stored data (no validation).
func Reconstruct(
	id, userID uuid.UUID,
	pickupLat, pickupLng, dropoffLat, dropoffLng float64,
	distanceMeters, durationSeconds int,
	polyline string,
	pricingConfigID uuid.UUID,
	fare pricing.FareBreakdown,
	createdAt, expiresAt time.Time,
) *Quote {
	return &Quote{
		id:              id,
		userID:          userID,
		pickupLat:       pickupLat,
		pickupLng:       pickupLng,
		dropoffLat:      dropoffLat,
		dropoffLng:      dropoffLng,
		distanceMeters:  distanceMeters,
		durationSeconds: durationSeconds,
		polyline:        polyline,
		pricingConfigID: pricingConfigID,
		fare:            fare,
		createdAt:       createdAt,
		expiresAt:       expiresAt,
	}
}

// ID returns the quote's unique identifier.
func (q *Quote) ID() uuid.UUID { return q.id }

// UserID returns the requesting user's identifier.
func (q *Quote) UserID() uuid.UUID { return q.userID }

// PickupLat returns the pickup latitude.
func (q *Quote) PickupLat() float64 { return q.pickupLat }

// PickupLng returns the pickup longitude.
func (q *Quote) PickupLng() float64 { return q.pickupLng }

// DropoffLat returns the dropoff latitude.
func (q *Quote) DropoffLat() float64 { return q.dropoffLat }

// DropoffLng returns the dropoff longitude.
func (q *Quote) DropoffLng() float64 { return q.dropoffLng }

// DistanceMeters returns the route distance copied at creation time.
func (q *Quote) DistanceMeters() int { return q.distanceMeters }

// DurationSeconds returns the route duration copied at creation time.
func (q *Quote) DurationSeconds() int { return q.durationSeconds }

// Polyline returns the encoded route geometry.
func (q *Quote) Polyline() string { return q.polyline }

// PricingConfigID returns the pricing configuration the fare was computed under.
func (q *Quote) PricingConfigID() uuid.UUID { return q.pricingConfigID }

// Fare returns the itemized fare breakdown.
func (q *Quote) Fare() pricing.FareBreakdown { return q.fare }

// CreatedAt returns the creation timestamp.
func (q *Quote) CreatedAt() time.Time { return q.createdAt }

// ExpiresAt returns the expiry timestamp (creation + Validity).
func (q *Quote) ExpiresAt() time.Time { return q.expiresAt }

// IsExpired reports whether the quote is unusable at the given instant.
// A quote is valid only strictly before its expiry.
func (q *Quote) IsExpired(at time.Time) bool {
	return !at.Before(q.expiresAt)
}
