package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Laju-Ride-Hailing/service-rides/pkg/domain"
)

const (
	// directionsAPIURL is the Google Directions API endpoint.
	directionsAPIURL = "https://maps.googleapis.com/maps/api/directions/json"

	// googleTimeout bounds a single Directions API call.
	googleTimeout = 5 * time.Second

	// httpMaxIdleConns is the keep-alive pool size for the provider client.
	httpMaxIdleConns = 10

	// httpIdleConnTimeout is how long an idle connection stays pooled.
	httpIdleConnTimeout = 30 * time.Second
)

// GoogleRouter implements Router using the Google Directions API.
type GoogleRouter struct {
	apiKey     string
	httpClient *http.Client
	// apiURL is the Directions endpoint. Overrideable in tests.
	apiURL string
}

// NewGoogleRouter creates a Router backed by the Google Directions API.
// The API key is validated here so a missing credential fails at startup.
func NewGoogleRouter(apiKey string) (*GoogleRouter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("routing: google: API key is required")
	}
	transport := &http.Transport{
		MaxIdleConns:        httpMaxIdleConns,
		MaxIdleConnsPerHost: httpMaxIdleConns,
		IdleConnTimeout:     httpIdleConnTimeout,
	}
	return &GoogleRouter{
		apiKey: apiKey,
		apiURL: directionsAPIURL,
		httpClient: &http.Client{
			Timeout:   googleTimeout,
			Transport: transport,
		},
	}, nil
}

// GetRoute resolves a single pickup→dropoff route.
func (g *GoogleRouter) GetRoute(ctx context.Context, pickupLat, pickupLng, dropoffLat, dropoffLng float64) (*RouteResult, error) {
	params := url.Values{}
	params.Set("origin", formatLatLng(pickupLat, pickupLng))
	params.Set("destination", formatLatLng(dropoffLat, dropoffLng))
	return g.callAPI(ctx, params)
}

// GetMultiStopRoute resolves a route through the ordered waypoints. The first
// waypoint is the origin, the last is the final destination, and any points
// between them are intermediate stops in a single request.
func (g *GoogleRouter) GetMultiStopRoute(ctx context.Context, waypoints []Waypoint, departureTime time.Time) (*RouteResult, error) {
	if len(waypoints) < 2 {
		return nil, domain.NewValidationError("at least 2 waypoints are required for a multi-stop route")
	}

	params := url.Values{}
	params.Set("origin", formatLatLng(waypoints[0].Lat, waypoints[0].Lng))
	params.Set("destination", formatLatLng(waypoints[len(waypoints)-1].Lat, waypoints[len(waypoints)-1].Lng))

	if len(waypoints) > 2 {
		stops := make([]string, 0, len(waypoints)-2)
		for _, wp := range waypoints[1 : len(waypoints)-1] {
			stops = append(stops, formatLatLng(wp.Lat, wp.Lng))
		}
		params.Set("waypoints", strings.Join(stops, "|"))
	}
	if !departureTime.IsZero() {
		params.Set("departure_time", strconv.FormatInt(departureTime.Unix(), 10))
	}

	return g.callAPI(ctx, params)
}

// callAPI performs the HTTP GET against the Directions API and normalizes
// the first candidate route into a RouteResult.
func (g *GoogleRouter) callAPI(ctx context.Context, params url.Values) (*RouteResult, error) {
	params.Set("mode", "driving")
	params.Set("key", g.apiKey)

	reqCtx, cancel := context.WithTimeout(ctx, googleTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodGet, g.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("routing: google: create request: %w", err)
	}

	httpResp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("routing: google: http: %w", err)
	}
	defer httpResp.Body.Close()

	respBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("routing: google: read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routing: google: status %d: %s", httpResp.StatusCode, string(respBytes))
	}

	var apiResp directionsResponse
	if err := json.Unmarshal(respBytes, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: malformed provider payload", ErrNoRouteFound)
	}

	if apiResp.Status != "OK" || len(apiResp.Routes) == 0 {
		return nil, fmt.Errorf("%w: provider status %q", ErrNoRouteFound, apiResp.Status)
	}

	route := apiResp.Routes[0]
	var distanceM, durationS int
	for _, leg := range route.Legs {
		distanceM += leg.Distance.Value
		durationS += leg.Duration.Value
	}

	return &RouteResult{
		DistanceMeters:  distanceM,
		DurationSeconds: durationS,
		Polyline:        route.OverviewPolyline.Points,
	}, nil
}

func formatLatLng(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', 6, 64) + "," + strconv.FormatFloat(lng, 'f', 6, 64)
}

// --- JSON types for the Google Directions API ---
// Only the fields we consume are declared; unknown fields are ignored.

type directionsResponse struct {
	Status string            `json:"status"`
	Routes []directionsRoute `json:"routes"`
}

type directionsRoute struct {
	Legs             []directionsLeg    `json:"legs"`
	OverviewPolyline directionsPolyline `json:"overview_polyline"`
}

type directionsLeg struct {
	Distance directionsValue `json:"distance"`
	Duration directionsValue `json:"duration"`
}

type directionsValue struct {
	Value int `json:"value"`
}

type directionsPolyline struct {
	Points string `json:"points"`
}
