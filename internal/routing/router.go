package routing

import (
	"context"
	"errors"
	"time"
)

// ErrNoRouteFound is returned when the provider yields zero candidate routes
// or a payload we cannot interpret. Callers must treat this as a hard
// failure; there is no distance fallback.
var ErrNoRouteFound = errors.New("routing: no route found")

// Waypoint is a single geographic point on a requested route.
type Waypoint struct {
	Lat float64
	Lng float64
}

// RouteResult is the normalized outcome of a routing lookup, aggregated
// across all legs of the provider's first candidate route.
type RouteResult struct {
	DistanceMeters  int
	DurationSeconds int
	// Polyline is the encoded overview geometry for the whole route,
	// opaque to this service; clients decode it themselves.
	Polyline string
}

// Router resolves routes through an external routing provider. Exactly one
// implementation is active per process, selected from configuration at
// startup.
type Router interface {
	// GetRoute resolves a single-leg route from pickup to dropoff.
	GetRoute(ctx context.Context, pickupLat, pickupLng, dropoffLat, dropoffLng float64) (*RouteResult, error)

	// GetMultiStopRoute resolves a route visiting the waypoints in order.
	// At least two waypoints are required. departureTime is a best-effort
	// hint for traffic-aware timing; providers may ignore it.
	GetMultiStopRoute(ctx context.Context, waypoints []Waypoint, departureTime time.Time) (*RouteResult, error)
}
