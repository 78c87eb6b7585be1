package application

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Laju-Ride-Hailing/service-rides/internal/cache"
	pricingDomain "github.com/Laju-Ride-Hailing/service-rides/internal/domain/pricing"
	quoteDomain "github.com/Laju-Ride-Hailing/service-rides/internal/domain/quote"
	"github.com/Laju-Ride-Hailing/service-rides/internal/routing"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/domain"
)

// fakeRouter returns a canned route or error.
type fakeRouter struct {
	result *routing.RouteResult
	err    error
	calls  int
}

func (f *fakeRouter) GetRoute(_ context.Context, _, _, _, _ float64) (*routing.RouteResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeRouter) GetMultiStopRoute(_ context.Context, _ []routing.Waypoint, _ time.Time) (*routing.RouteResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// fakeConfigRepo serves a single in-memory pricing config.
type fakeConfigRepo struct {
	cfg *pricingDomain.Config
	err error
}

func (f *fakeConfigRepo) FindActive(_ context.Context, _ time.Time) (*pricingDomain.Config, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cfg, nil
}

func (f *fakeConfigRepo) Save(_ context.Context, _ *pricingDomain.Config) error { return nil }

func (f *fakeConfigRepo) ListAll(_ context.Context, _, _ int) ([]*pricingDomain.Config, int64, error) {
	return []*pricingDomain.Config{f.cfg}, 1, nil
}

func activeTestConfig(t *testing.T) *pricingDomain.Config {
	t.Helper()
	cfg, err := pricingDomain.NewConfig(300, 150, 40, 100, 500, "MYR", time.Now().UTC().Add(-time.Hour), nil)
	require.NoError(t, err)
	return cfg
}

func coord(v float64) *float64 { return &v }

func testQuoteRequest() GenerateQuoteRequest {
	return GenerateQuoteRequest{
		PickupLat:  coord(3.139),
		PickupLng:  coord(101.6869),
		DropoffLat: coord(3.15),
		DropoffLng: coord(101.71),
	}
}

func newTestQuoteService(router routing.Router, configs pricingDomain.ConfigRepository) (*QuoteService, *cache.MemoryQuoteCache) {
	quoteCache := cache.NewMemoryQuoteCache()
	svc := NewQuoteService(router, configs, pricingDomain.NewFareCalculator(), quoteCache, nil, zap.NewNop())
	return svc, quoteCache
}

func TestQuoteService_GenerateThenGet(t *testing.T) {
	router := &fakeRouter{result: &routing.RouteResult{DistanceMeters: 4200, DurationSeconds: 630, Polyline: "enc"}}
	cfg := activeTestConfig(t)
	svc, _ := newTestQuoteService(router, &fakeConfigRepo{cfg: cfg})

	userID := uuid.New()
	req := testQuoteRequest()

	generated, err := svc.GenerateQuote(context.Background(), userID, req)
	require.NoError(t, err)

	assert.Equal(t, userID, generated.UserID)
	assert.Equal(t, 4200, generated.DistanceMeters)
	assert.Equal(t, 630, generated.DurationSeconds)
	assert.Equal(t, cfg.ID(), generated.PricingConfigID)
	// 300 + 630 + 420 + 100.
	assert.Equal(t, int64(1450), generated.Fare.TotalCents)
	assert.Equal(t, generated.CreatedAt.Add(300*time.Second), generated.ExpiresAt)

	loaded, err := svc.GetQuote(context.Background(), generated.ID)
	require.NoError(t, err)
	assert.Equal(t, *generated, *loaded, "redeemed quote must match the issued quote exactly")
}

func TestQuoteService_GenerateQuote_RouterFailure(t *testing.T) {
	router := &fakeRouter{err: routing.ErrNoRouteFound}
	svc, _ := newTestQuoteService(router, &fakeConfigRepo{cfg: activeTestConfig(t)})

	req := testQuoteRequest()
	_, err := svc.GenerateQuote(context.Background(), uuid.New(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, routing.ErrNoRouteFound)
}

func TestQuoteService_GenerateQuote_NoActivePricingConfig(t *testing.T) {
	router := &fakeRouter{result: &routing.RouteResult{DistanceMeters: 4200, DurationSeconds: 630}}
	repoErr := domain.NewNotFoundError("PricingConfig", "active")
	svc, _ := newTestQuoteService(router, &fakeConfigRepo{err: repoErr})

	req := testQuoteRequest()
	_, err := svc.GenerateQuote(context.Background(), uuid.New(), req)
	require.Error(t, err)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}

func TestQuoteService_GetQuote_UnknownID(t *testing.T) {
	router := &fakeRouter{result: &routing.RouteResult{DistanceMeters: 1, DurationSeconds: 1}}
	svc, _ := newTestQuoteService(router, &fakeConfigRepo{cfg: activeTestConfig(t)})

	_, err := svc.GetQuote(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}

// recordingCache counts Save calls on top of the real in-memory cache.
type recordingCache struct {
	*cache.MemoryQuoteCache
	saves int
}

func (c *recordingCache) Save(ctx context.Context, q *quoteDomain.Quote) error {
	c.saves++
	return c.MemoryQuoteCache.Save(ctx, q)
}

func TestQuoteService_GenerateQuote_NothingCachedOnFailure(t *testing.T) {
	router := &fakeRouter{err: errors.New("provider unreachable")}
	quoteCache := &recordingCache{MemoryQuoteCache: cache.NewMemoryQuoteCache()}
	svc := NewQuoteService(router, &fakeConfigRepo{cfg: activeTestConfig(t)}, pricingDomain.NewFareCalculator(), quoteCache, nil, zap.NewNop())

	req := testQuoteRequest()
	_, err := svc.GenerateQuote(context.Background(), uuid.New(), req)
	require.Error(t, err)
	assert.Equal(t, 1, router.calls)

	// The failed call must leave no redeemable quote behind.
	assert.Zero(t, quoteCache.saves)
}

func bindQuoteRequest(t *testing.T, body string) (GenerateQuoteRequest, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req GenerateQuoteRequest
	err := c.ShouldBindJSON(&req)
	return req, err
}

func TestGenerateQuoteRequest_Binding(t *testing.T) {
	// A coordinate of exactly zero is legitimate and must bind.
	req, err := bindQuoteRequest(t, `{"pickup_lat":0,"pickup_lng":0,"dropoff_lat":3.15,"dropoff_lng":101.71}`)
	require.NoError(t, err)
	assert.Zero(t, *req.PickupLat)
	assert.Zero(t, *req.PickupLng)

	// A missing coordinate is rejected.
	_, err = bindQuoteRequest(t, `{"pickup_lat":3.139,"pickup_lng":101.6869,"dropoff_lat":3.15}`)
	assert.Error(t, err)

	// An out-of-range latitude is rejected.
	_, err = bindQuoteRequest(t, `{"pickup_lat":95,"pickup_lng":101.6869,"dropoff_lat":3.15,"dropoff_lng":101.71}`)
	assert.Error(t, err)
}
