//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Laju-Ride-Hailing/service-rides/internal/application"
	"github.com/Laju-Ride-Hailing/service-rides/internal/cache"
	pricingDomain "github.com/Laju-Ride-Hailing/service-rides/internal/domain/pricing"
	rideEvents "github.com/Laju-Ride-Hailing/service-rides/internal/events"
	"github.com/Laju-Ride-Hailing/service-rides/internal/notify"
	eventDefs "github.com/Laju-Ride-Hailing/service-rides/pkg/events"
	"github.com/Laju-Ride-Hailing/service-rides/internal/repository"
	"github.com/Laju-Ride-Hailing/service-rides/internal/routing"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/kafka"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// ridesStack holds wired-up rides service components.
type ridesStack struct {
	QuoteService    *application.QuoteService
	WalletService   *application.WalletService
	Consumer        *rideEvents.PaymentEventConsumer
	CleanupProducer func()
}

// setupContainers starts PostgreSQL and Kafka testcontainers and returns a connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	// Start PostgreSQL container with log-based wait strategy.
	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_rides",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_rides sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(&repository.PricingConfigModel{}, &repository.LedgerEntryModel{}))

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	// Pre-create required topics.
	createTopics(t, kafkaBrokers, eventDefs.TopicQuoteEvents, eventDefs.TopicPaymentEvents)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

func coord(v float64) *float64 { return &v }

// stubRoutingServer serves a fixed OSRM response so tests never hit a real
// routing provider.
func stubRoutingServer(t *testing.T, distanceMeters, durationSeconds int) routing.Router {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"code":"Ok","routes":[{"geometry":"stub","legs":[{"distance":%d,"duration":%d}]}]}`,
			distanceMeters, durationSeconds)
	}))
	t.Cleanup(srv.Close)

	router, err := routing.NewOSRMRouter(srv.URL)
	require.NoError(t, err)
	return router
}

// setupRidesStack wires up the full rides service stack.
func setupRidesStack(t *testing.T, db *gorm.DB, brokers []string, router routing.Router) *ridesStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	pricingRepo := repository.NewGormPricingConfigRepository(db)
	ledgerRepo := repository.NewGormLedgerRepository(db)
	producer := kafka.NewProducer(brokers, logger)

	quoteSvc := application.NewQuoteService(
		router,
		pricingRepo,
		pricingDomain.NewFareCalculator(),
		cache.NewMemoryQuoteCache(),
		producer,
		logger,
	)
	walletSvc := application.NewWalletService(ledgerRepo, logger)

	groupID := fmt.Sprintf("test-rides-%s", uuid.New().String()[:8])
	consumer := rideEvents.NewPaymentEventConsumer(brokers, groupID, walletSvc, notify.NewNoopSMSSender(logger), logger)

	return &ridesStack{
		QuoteService:    quoteSvc,
		WalletService:   walletSvc,
		Consumer:        consumer,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// seedPricingConfig inserts an active pricing configuration effective now.
func seedPricingConfig(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	now := time.Now().UTC()
	model := repository.PricingConfigModel{
		ID:               uuid.New(),
		BaseFareCents:    300,
		PerKmCents:       150,
		PerMinuteCents:   40,
		BookingFeeCents:  100,
		MinimumFareCents: 500,
		Currency:         "MYR",
		EffectiveFrom:    now.Add(-time.Hour),
		IsActive:         true,
		CreatedAt:        now,
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed pricing config")
	return model.ID
}

// publishTestEvent publishes a CloudEvent to Kafka.
func publishTestEvent(t *testing.T, brokers []string, topic, source, eventType string, data interface{}) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	producer := kafka.NewProducer(brokers, logger)
	defer func() { _ = producer.Close() }()

	ce, err := kafka.NewCloudEvent(source, eventType, data)
	require.NoError(t, err, "failed to create cloud event")

	err = producer.PublishEvent(context.Background(), topic, ce)
	require.NoError(t, err, "failed to publish event")
}

// waitForLedgerEntry polls the wallet_ledger table until an entry with the
// reference appears.
func waitForLedgerEntry(t *testing.T, db *gorm.DB, userID uuid.UUID, reference string, timeout time.Duration) repository.LedgerEntryModel {
	t.Helper()
	var result repository.LedgerEntryModel
	require.Eventually(t, func() bool {
		var model repository.LedgerEntryModel
		err := db.Where("user_id = ? AND reference = ?", userID, reference).First(&model).Error
		if err != nil {
			return false
		}
		result = model
		return true
	}, timeout, 200*time.Millisecond, "ledger entry %q did not appear", reference)
	return result
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
