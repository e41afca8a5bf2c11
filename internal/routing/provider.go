// Package routing abstracts over external map providers for geocoding and
// stop-order optimization.
package routing

import (
	"context"
	"time"

	"groomroute_backend/platform/geo"
)

// Geocode result statuses.
const (
	GeocodeOK      = "ok"
	GeocodePartial = "partial"
	GeocodeFailed  = "failed"
)

// GeocodeResult is the outcome of resolving one address. Failures are
// in-band: Status is "failed", the coordinates are zero, and
// FormattedAddress echoes the input so callers can always render something.
type GeocodeResult struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	FormattedAddress string  `json:"formattedAddress"`
	Status           string  `json:"status"`
}

// Failed builds the in-band failure result for an address.
func Failed(address string) GeocodeResult {
	return GeocodeResult{FormattedAddress: address, Status: GeocodeFailed}
}

// Waypoint is one customer stop to be sequenced. ServiceDurationMinutes and
// TimeWindow ride along for the caller's finish-time math; they do not
// influence the drive-order optimization itself.
type Waypoint struct {
	ID                     string    `json:"id"`
	Label                  string    `json:"label,omitempty"`
	Location               geo.Point `json:"location"`
	ServiceDurationMinutes int       `json:"serviceDurationMinutes,omitempty"`
	TimeWindow             string    `json:"timeWindow,omitempty"`
}

// RouteRequest asks a provider to order the waypoints into the shortest
// drive. With no explicit Destination the route ends back at the origin when
// ReturnToOrigin is set, otherwise at the last supplied waypoint. StartTime
// is the planned departure; backends that support departure-time routing
// pass it upstream.
type RouteRequest struct {
	Origin         geo.Point
	Destination    *geo.Point
	Waypoints      []Waypoint
	StartTime      *time.Time
	ReturnToOrigin bool
}

// lastWaypointIsDestination reports whether the route ends at the final
// supplied waypoint, which is then pinned rather than reordered.
func (r RouteRequest) lastWaypointIsDestination() bool {
	return r.Destination == nil && !r.ReturnToOrigin
}

// expectedLegs is how many hops the optimized route must contain: one leg
// out of the origin plus one per waypoint, minus the final return hop when
// the route ends at the last waypoint.
func (r RouteRequest) expectedLegs() int {
	if r.lastWaypointIsDestination() {
		return len(r.Waypoints)
	}
	return len(r.Waypoints) + 1
}

// Leg is one drive between consecutive stops.
type Leg struct {
	DistanceMeters  float64 `json:"distanceMeters"`
	DurationMinutes int     `json:"durationMinutes"`
}

// RouteResult is an optimized stop order.
//
// Waypoints holds the input stops in visit order and Order maps each visit
// position back to the request index. The first leg leaves the origin; the
// last arrives at the destination, back at the origin, or at the final
// waypoint, per the request's destination semantics.
type RouteResult struct {
	Provider             string     `json:"provider"`
	Order                []int      `json:"order"`
	Waypoints            []Waypoint `json:"waypoints"`
	Legs                 []Leg      `json:"legs"`
	TotalDistanceMeters  float64    `json:"totalDistanceMeters"`
	TotalDurationMinutes int        `json:"totalDurationMinutes"`
	Polyline             string     `json:"polyline,omitempty"`
}

// Provider is a routing backend. Geocode never returns an error; lookup
// failures come back as a failed-status result. OptimizeRoute fails loudly
// instead, since a silently unoptimized route costs real drive time.
type Provider interface {
	Name() string
	Geocode(ctx context.Context, address string) GeocodeResult
	OptimizeRoute(ctx context.Context, req RouteRequest) (*RouteResult, error)
}
