package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	pricingDomain "github.com/Laju-Ride-Hailing/service-rides/internal/domain/pricing"
	quoteDomain "github.com/Laju-Ride-Hailing/service-rides/internal/domain/quote"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/events"
	"github.com/Laju-Ride-Hailing/service-rides/internal/routing"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/kafka"
)

// GenerateQuoteRequest holds the coordinates for a fare quote. Pointer
// fields let binding distinguish a missing coordinate from a legitimate
// zero (equator, prime meridian).
type GenerateQuoteRequest struct {
	PickupLat  *float64 `json:"pickup_lat" binding:"required,gte=-90,lte=90"`
	PickupLng  *float64 `json:"pickup_lng" binding:"required,gte=-180,lte=180"`
	DropoffLat *float64 `json:"dropoff_lat" binding:"required,gte=-90,lte=90"`
	DropoffLng *float64 `json:"dropoff_lng" binding:"required,gte=-180,lte=180"`
}

// QuoteDTO is the response representation of a quote.
type QuoteDTO struct {
	ID              uuid.UUID                   `json:"id"`
	UserID          uuid.UUID                   `json:"user_id"`
	PickupLat       float64                     `json:"pickup_lat"`
	PickupLng       float64                     `json:"pickup_lng"`
	DropoffLat      float64                     `json:"dropoff_lat"`
	DropoffLng      float64                     `json:"dropoff_lng"`
	DistanceMeters  int                         `json:"distance_meters"`
	DurationSeconds int                         `json:"duration_seconds"`
	Polyline        string                      `json:"polyline"`
	PricingConfigID uuid.UUID                   `json:"pricing_config_id"`
	Fare            pricingDomain.FareBreakdown `json:"fare"`
	CreatedAt       time.Time                   `json:"created_at"`
	ExpiresAt       time.Time                   `json:"expires_at"`
}

// QuoteService orchestrates quote generation and redemption lookups.
type QuoteService struct {
	router     routing.Router
	configs    pricingDomain.ConfigRepository
	calculator *pricingDomain.FareCalculator
	cache      quoteDomain.Cache
	producer   *kafka.Producer
	logger     *zap.Logger
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(
	router routing.Router,
	configs pricingDomain.ConfigRepository,
	calculator *pricingDomain.FareCalculator,
	cache quoteDomain.Cache,
	producer *kafka.Producer,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		router:     router,
		configs:    configs,
		calculator: calculator,
		cache:      cache,
		producer:   producer,
		logger:     logger,
	}
}

// GenerateQuote issues a new quote for the given user and coordinates.
//
// The flow is atomic with respect to the cache: a routing failure or a
// missing pricing configuration fails the whole call and nothing is cached.
// The fare is computed without a live-traffic adjustment; the calculator's
// traffic factor is always absent in this path.
func (s *QuoteService) GenerateQuote(ctx context.Context, userID uuid.UUID, req GenerateQuoteRequest) (*QuoteDTO, error) {
	pickupLat, pickupLng := *req.PickupLat, *req.PickupLng
	dropoffLat, dropoffLng := *req.DropoffLat, *req.DropoffLng

	route, err := s.router.GetRoute(ctx, pickupLat, pickupLng, dropoffLat, dropoffLng)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve route: %w", err)
	}

	cfg, err := s.configs.FindActive(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	fare := s.calculator.Quote(cfg, route.DistanceMeters, route.DurationSeconds, nil, nil)

	q, err := quoteDomain.NewQuote(
		userID,
		pickupLat, pickupLng,
		dropoffLat, dropoffLng,
		route,
		cfg.ID(),
		fare,
	)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Save(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to cache quote: %w", err)
	}

	s.publishQuoteGenerated(ctx, q)

	s.logger.Info("quote generated",
		zap.String("quote_id", q.ID().String()),
		zap.String("user_id", userID.String()),
		zap.Int64("total_cents", fare.TotalCents),
	)

	result := toQuoteDTO(q)
	return &result, nil
}

// GetQuote retrieves a previously issued quote. A quote that never existed
// and a quote past its expiry surface the same not-found error; successful
// reads do not extend the expiry.
func (s *QuoteService) GetQuote(ctx context.Context, quoteID uuid.UUID) (*QuoteDTO, error) {
	q, err := s.cache.Load(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	result := toQuoteDTO(q)
	return &result, nil
}

func toQuoteDTO(q *quoteDomain.Quote) QuoteDTO {
	return QuoteDTO{
		ID:              q.ID(),
		UserID:          q.UserID(),
		PickupLat:       q.PickupLat(),
		PickupLng:       q.PickupLng(),
		DropoffLat:      q.DropoffLat(),
		DropoffLng:      q.DropoffLng(),
		DistanceMeters:  q.DistanceMeters(),
		DurationSeconds: q.DurationSeconds(),
		Polyline:        q.Polyline(),
		PricingConfigID: q.PricingConfigID(),
		Fare:            q.Fare(),
		CreatedAt:       q.CreatedAt(),
		ExpiresAt:       q.ExpiresAt(),
	}
}

func (s *QuoteService) publishQuoteGenerated(ctx context.Context, q *quoteDomain.Quote) {
	evt := events.QuoteGeneratedEvent{
		QuoteID:         q.ID(),
		UserID:          q.UserID(),
		PickupLat:       q.PickupLat(),
		PickupLng:       q.PickupLng(),
		DropoffLat:      q.DropoffLat(),
		DropoffLng:      q.DropoffLng(),
		DistanceMeters:  q.DistanceMeters(),
		DurationSeconds: q.DurationSeconds(),
		TotalFareCents:  q.Fare().TotalCents,
		Currency:        q.Fare().Currency,
		ExpiresAt:       q.ExpiresAt(),
		OccurredAt:      time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicQuoteEvents, events.QuoteGenerated, evt)
}

func (s *QuoteService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	if s.producer == nil {
		return
	}

	cloudEvent, err := kafka.NewCloudEvent("service-rides", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
