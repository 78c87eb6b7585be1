package routing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Laju-Ride-Hailing/service-rides/pkg/domain"
)

func newTestOSRMRouter(t *testing.T, handler http.HandlerFunc) *OSRMRouter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	r, err := NewOSRMRouter(srv.URL)
	require.NoError(t, err)
	return r
}

func TestNewOSRMRouter_RequiresBaseURL(t *testing.T) {
	_, err := NewOSRMRouter("")
	assert.Error(t, err)
}

func TestOSRMRouter_GetRoute_CoordinateOrderAndSums(t *testing.T) {
	var gotPath string
	r := newTestOSRMRouter(t, func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": "Ok",
			"routes": [{
				"geometry": "poly1",
				"legs": [
					{"distance": 1000.4, "duration": 119.6},
					{"distance": 500.0, "duration": 60.0}
				]
			}]
		}`))
	})

	result, err := r.GetRoute(context.Background(), 3.139, 101.6869, 3.15, 101.71)
	require.NoError(t, err)

	// OSRM takes lng,lat pairs.
	assert.True(t, strings.HasPrefix(gotPath, "/route/v1/driving/101.686900,3.139000;101.710000,3.150000"), gotPath)
	assert.Equal(t, 1500, result.DistanceMeters)
	assert.Equal(t, 180, result.DurationSeconds)
	assert.Equal(t, "poly1", result.Polyline)
}

func TestOSRMRouter_GetRoute_NoRoute(t *testing.T) {
	r := newTestOSRMRouter(t, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	})

	_, err := r.GetRoute(context.Background(), 3.139, 101.6869, 3.15, 101.71)
	assert.ErrorIs(t, err, ErrNoRouteFound)
}

func TestOSRMRouter_GetMultiStopRoute_RequiresTwoWaypoints(t *testing.T) {
	called := false
	r := newTestOSRMRouter(t, func(w http.ResponseWriter, req *http.Request) {
		called = true
	})

	_, err := r.GetMultiStopRoute(context.Background(), []Waypoint{{Lat: 3.139, Lng: 101.6869}}, time.Time{})
	require.Error(t, err)
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
	assert.False(t, called)
}

func TestOSRMRouter_GetMultiStopRoute_IgnoresDepartureTime(t *testing.T) {
	var gotQuery string
	r := newTestOSRMRouter(t, func(w http.ResponseWriter, req *http.Request) {
		gotQuery = req.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": "Ok",
			"routes": [{"geometry": "p", "legs": [{"distance": 100, "duration": 10}]}]
		}`))
	})

	waypoints := []Waypoint{
		{Lat: 3.139, Lng: 101.6869},
		{Lat: 3.15, Lng: 101.71},
	}
	_, err := r.GetMultiStopRoute(context.Background(), waypoints, time.Now())
	require.NoError(t, err)
	assert.NotContains(t, gotQuery, "departure")
}
