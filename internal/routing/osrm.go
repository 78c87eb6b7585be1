package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Laju-Ride-Hailing/service-rides/pkg/domain"
)

// osrmTimeout bounds a single OSRM call.
const osrmTimeout = 5 * time.Second

// OSRMRouter implements Router using a self-hosted OSRM instance. It is the
// drop-in alternative to GoogleRouter for environments without a Google
// billing account.
type OSRMRouter struct {
	baseURL    string
	httpClient *http.Client
}

// NewOSRMRouter creates a Router backed by the OSRM HTTP API at baseURL.
func NewOSRMRouter(baseURL string) (*OSRMRouter, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("routing: osrm: base URL is required")
	}
	return &OSRMRouter{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: osrmTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        httpMaxIdleConns,
				MaxIdleConnsPerHost: httpMaxIdleConns,
				IdleConnTimeout:     httpIdleConnTimeout,
			},
		},
	}, nil
}

// GetRoute resolves a single pickup→dropoff route.
func (o *OSRMRouter) GetRoute(ctx context.Context, pickupLat, pickupLng, dropoffLat, dropoffLng float64) (*RouteResult, error) {
	return o.callAPI(ctx, []Waypoint{
		{Lat: pickupLat, Lng: pickupLng},
		{Lat: dropoffLat, Lng: dropoffLng},
	})
}

// GetMultiStopRoute resolves a route through the ordered waypoints. OSRM has
// no traffic model, so departureTime is accepted but ignored.
func (o *OSRMRouter) GetMultiStopRoute(ctx context.Context, waypoints []Waypoint, _ time.Time) (*RouteResult, error) {
	if len(waypoints) < 2 {
		return nil, domain.NewValidationError("at least 2 waypoints are required for a multi-stop route")
	}
	return o.callAPI(ctx, waypoints)
}

func (o *OSRMRouter) callAPI(ctx context.Context, waypoints []Waypoint) (*RouteResult, error) {
	coords := make([]string, len(waypoints))
	for i, wp := range waypoints {
		// OSRM takes lng,lat pairs.
		coords[i] = strconv.FormatFloat(wp.Lng, 'f', 6, 64) + "," + strconv.FormatFloat(wp.Lat, 'f', 6, 64)
	}
	endpoint := fmt.Sprintf("%s/route/v1/driving/%s?overview=full&geometries=polyline", o.baseURL, strings.Join(coords, ";"))

	reqCtx, cancel := context.WithTimeout(ctx, osrmTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("routing: osrm: create request: %w", err)
	}

	httpResp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("routing: osrm: http: %w", err)
	}
	defer httpResp.Body.Close()

	respBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("routing: osrm: read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routing: osrm: status %d: %s", httpResp.StatusCode, string(respBytes))
	}

	var apiResp osrmResponse
	if err := json.Unmarshal(respBytes, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: malformed provider payload", ErrNoRouteFound)
	}

	if apiResp.Code != "Ok" || len(apiResp.Routes) == 0 {
		return nil, fmt.Errorf("%w: provider code %q", ErrNoRouteFound, apiResp.Code)
	}

	route := apiResp.Routes[0]
	var distanceM, durationS int
	for _, leg := range route.Legs {
		distanceM += int(math.Round(leg.Distance))
		durationS += int(math.Round(leg.Duration))
	}

	return &RouteResult{
		DistanceMeters:  distanceM,
		DurationSeconds: durationS,
		Polyline:        route.Geometry,
	}, nil
}

// --- JSON types for the OSRM route service ---

type osrmResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Geometry string    `json:"geometry"`
	Legs     []osrmLeg `json:"legs"`
}

type osrmLeg struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}
