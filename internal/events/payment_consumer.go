package events

import (
	"context"
	"encoding/json"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Laju-Ride-Hailing/service-rides/internal/application"
	walletDomain "github.com/Laju-Ride-Hailing/service-rides/internal/domain/wallet"
	"github.com/Laju-Ride-Hailing/service-rides/internal/notify"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/events"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/kafka"
)

// PaymentEventConsumer listens to payment events and appends the matching
// wallet ledger entries.
type PaymentEventConsumer struct {
	consumer *kafka.Consumer
	wallets  *application.WalletService
	sms      notify.SMSSender
	logger   *zap.Logger
}

// NewPaymentEventConsumer creates a new PaymentEventConsumer.
func NewPaymentEventConsumer(
	brokers []string,
	groupID string,
	wallets *application.WalletService,
	sms notify.SMSSender,
	logger *zap.Logger,
) *PaymentEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, events.TopicPaymentEvents, logger)
	return &PaymentEventConsumer{
		consumer: consumer,
		wallets:  wallets,
		sms:      sms,
		logger:   logger,
	}
}

// Start begins consuming payment events. This blocks until the context is cancelled.
func (c *PaymentEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *PaymentEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *PaymentEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from payment topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case events.PaymentSettled:
		return c.handlePaymentSettled(ctx, cloudEvent)
	case events.PaymentHeld:
		return c.handlePaymentHeld(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled payment event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *PaymentEventConsumer) handlePaymentSettled(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt events.PaymentSettledEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse PaymentSettledEvent data", zap.Error(err))
		return nil // Don't retry malformed data
	}

	err := c.wallets.RecordEntry(ctx, evt.UserID, evt.AmountCents, walletDomain.StatusSettled,
		evt.Reference, fmt.Sprintf("payment %s settled", evt.PaymentID))
	if err != nil {
		c.logger.Error("failed to record settled ledger entry",
			zap.String("payment_id", evt.PaymentID.String()),
			zap.Error(err),
		)
		return err
	}

	// Notification is best-effort; a failed SMS never fails the ledger write.
	if evt.Phone != "" {
		if err := c.sms.Send(ctx, evt.Phone, "Your wallet top-up has been settled."); err != nil {
			c.logger.Warn("failed to send settlement SMS",
				zap.String("payment_id", evt.PaymentID.String()),
				zap.Error(err),
			)
		}
	}

	c.logger.Info("ledger entry settled from payment event",
		zap.String("payment_id", evt.PaymentID.String()),
		zap.String("user_id", evt.UserID.String()),
	)
	return nil
}

func (c *PaymentEventConsumer) handlePaymentHeld(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt events.PaymentHeldEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse PaymentHeldEvent data", zap.Error(err))
		return nil
	}

	err := c.wallets.RecordEntry(ctx, evt.UserID, evt.AmountCents, walletDomain.StatusHeld,
		evt.Reference, fmt.Sprintf("payment %s held", evt.PaymentID))
	if err != nil {
		c.logger.Error("failed to record held ledger entry",
			zap.String("payment_id", evt.PaymentID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}
