//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Laju-Ride-Hailing/service-rides/internal/application"
	rideEvents "github.com/Laju-Ride-Hailing/service-rides/pkg/events"
)

// TestGenerateQuote_PublishesQuoteGeneratedEvent verifies the full quote
// generation flow against real Postgres and Kafka: the fare is computed from
// the seeded pricing config, the quote is redeemable by ID, and a
// quote.generated CloudEvent lands on quote.events.
func TestGenerateQuote_PublishesQuoteGeneratedEvent(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	// 4.2 km, 10.5 min route.
	router := stubRoutingServer(t, 4200, 630)
	stack := setupRidesStack(t, infra.DB, infra.KafkaBrokers, router)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	configID := seedPricingConfig(t, infra.DB)

	userID := uuid.New()
	req := application.GenerateQuoteRequest{
		PickupLat: coord(3.139), PickupLng: coord(101.6869),
		DropoffLat: coord(3.15), DropoffLng: coord(101.71),
	}
	generated, err := stack.QuoteService.GenerateQuote(context.Background(), userID, req)
	require.NoError(t, err)

	// 300 base + 630 distance + 420 time + 100 booking fee.
	assert.Equal(t, configID, generated.PricingConfigID)
	assert.Equal(t, int64(1450), generated.Fare.TotalCents)
	assert.Equal(t, "MYR", generated.Fare.Currency)

	// The quote is redeemable and identical to what was issued.
	loaded, err := stack.QuoteService.GetQuote(context.Background(), generated.ID)
	require.NoError(t, err)
	assert.Equal(t, *generated, *loaded)

	// Assert: quote.generated on quote.events.
	ce := consumeOneEvent(t, infra.KafkaBrokers, rideEvents.TopicQuoteEvents,
		rideEvents.QuoteGenerated, 15*time.Second)

	var evt rideEvents.QuoteGeneratedEvent
	require.NoError(t, ce.ParseData(&evt))
	assert.Equal(t, generated.ID, evt.QuoteID)
	assert.Equal(t, userID, evt.UserID)
	assert.Equal(t, int64(1450), evt.TotalFareCents)
	assert.Equal(t, 4200, evt.DistanceMeters)
}

// TestPaymentSettled_AppendsLedgerEntry verifies that when a
// PaymentSettledEvent is published to payment.events, the rides service picks
// it up, appends a settled wallet ledger entry, and the derived balance
// reflects it.
func TestPaymentSettled_AppendsLedgerEntry(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	router := stubRoutingServer(t, 1000, 60)
	stack := setupRidesStack(t, infra.DB, infra.KafkaBrokers, router)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	// Start the consumer.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	userID := uuid.New()
	settled := rideEvents.PaymentSettledEvent{
		PaymentID:   uuid.New(),
		UserID:      userID,
		AmountCents: 5000,
		Reference:   "topup-int-1",
		OccurredAt:  time.Now().UTC(),
	}
	publishTestEvent(t, infra.KafkaBrokers, rideEvents.TopicPaymentEvents,
		"service-payment", rideEvents.PaymentSettled, settled)

	// Assert: a settled ledger entry appears.
	entry := waitForLedgerEntry(t, infra.DB, userID, "topup-int-1", 15*time.Second)
	assert.Equal(t, int64(5000), entry.AmountCents)
	assert.Equal(t, "settled", entry.Status)

	// Hold a further 2000 and check the derived balance.
	held := rideEvents.PaymentHeldEvent{
		PaymentID:   uuid.New(),
		UserID:      userID,
		AmountCents: 2000,
		Reference:   "topup-int-2",
		OccurredAt:  time.Now().UTC(),
	}
	publishTestEvent(t, infra.KafkaBrokers, rideEvents.TopicPaymentEvents,
		"service-payment", rideEvents.PaymentHeld, held)
	waitForLedgerEntry(t, infra.DB, userID, "topup-int-2", 15*time.Second)

	balance, err := stack.WalletService.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), balance.AvailableCents)
	assert.Equal(t, int64(2000), balance.PendingCents)
	assert.Equal(t, int64(7000), balance.TotalCents)
}
