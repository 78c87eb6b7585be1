package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics on the platform event bus.
const (
	TopicQuoteEvents   = "quote.events"
	TopicPaymentEvents = "payment.events"
)

// Event types.
const (
	QuoteGenerated = "quote.generated"
	PaymentSettled = "payment.settled"
	PaymentHeld    = "payment.held"
)

// QuoteGeneratedEvent is published whenever a fare quote is issued.
type QuoteGeneratedEvent struct {
	QuoteID         uuid.UUID `json:"quote_id"`
	UserID          uuid.UUID `json:"user_id"`
	PickupLat       float64   `json:"pickup_lat"`
	PickupLng       float64   `json:"pickup_lng"`
	DropoffLat      float64   `json:"dropoff_lat"`
	DropoffLng      float64   `json:"dropoff_lng"`
	DistanceMeters  int       `json:"distance_meters"`
	DurationSeconds int       `json:"duration_seconds"`
	TotalFareCents  int64     `json:"total_fare_cents"`
	Currency        string    `json:"currency"`
	ExpiresAt       time.Time `json:"expires_at"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// PaymentSettledEvent is emitted by the payment service when funds clear.
type PaymentSettledEvent struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	UserID      uuid.UUID `json:"user_id"`
	AmountCents int64     `json:"amount_cents"`
	Reference   string    `json:"reference"`
	// Phone, when present, lets downstream services notify the user.
	Phone      string    `json:"phone,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PaymentHeldEvent is emitted by the payment service when funds are reserved
// pending settlement.
type PaymentHeldEvent struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	UserID      uuid.UUID `json:"user_id"`
	AmountCents int64     `json:"amount_cents"`
	Reference   string    `json:"reference"`
	OccurredAt  time.Time `json:"occurred_at"`
}
