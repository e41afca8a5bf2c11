package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"groomroute_backend/platform/apperr"
	"groomroute_backend/platform/geo"
	"groomroute_backend/platform/logger"
	"groomroute_backend/platform/metrics"

	"golang.org/x/time/rate"
)

const mapboxBaseURL = "https://api.mapbox.com"

// MapboxProvider talks to the Mapbox Geocoding and Optimized Trips APIs.
type MapboxProvider struct {
	accessToken string
	baseURL     string
	client      *http.Client
	limiter     *rate.Limiter
	log         *logger.Logger
}

// NewMapboxProvider creates a Mapbox backed provider.
func NewMapboxProvider(accessToken string, ratePerSecond float64, log *logger.Logger) *MapboxProvider {
	return &MapboxProvider{
		accessToken: accessToken,
		baseURL:     mapboxBaseURL,
		client:      &http.Client{Timeout: 10 * time.Second},
		limiter:     rate.NewLimiter(rate.Limit(ratePerSecond), 1),
		log:         log,
	}
}

func (p *MapboxProvider) Name() string { return "mapbox" }

type mapboxGeocodeResponse struct {
	Features []struct {
		PlaceName string     `json:"place_name"`
		Relevance float64    `json:"relevance"`
		Center    [2]float64 `json:"center"` // lng, lat
	} `json:"features"`
}

// Geocode resolves an address to coordinates. Lookup failures come back as a
// failed-status result, never an error.
func (p *MapboxProvider) Geocode(ctx context.Context, address string) GeocodeResult {
	started := time.Now()

	result := p.geocode(ctx, address)

	metrics.GeocodeRequestsTotal.WithLabelValues(p.Name(), result.Status).Inc()
	p.log.GeocodeResult(p.Name(), result.Status, float64(time.Since(started).Milliseconds()))

	return result
}

func (p *MapboxProvider) geocode(ctx context.Context, address string) GeocodeResult {
	if err := p.limiter.Wait(ctx); err != nil {
		return Failed(address)
	}

	params := url.Values{}
	params.Set("access_token", p.accessToken)
	params.Set("limit", "1")

	path := fmt.Sprintf("/geocoding/v5/mapbox.places/%s.json", url.PathEscape(address))

	var payload mapboxGeocodeResponse
	if err := p.getJSON(ctx, path, params, &payload); err != nil {
		p.log.ProviderError(p.Name(), "geocode", err)
		return Failed(address)
	}

	if len(payload.Features) == 0 {
		return Failed(address)
	}

	top := payload.Features[0]
	status := GeocodeOK
	if top.Relevance < 1 {
		status = GeocodePartial
	}

	return GeocodeResult{
		Lat:              top.Center[1],
		Lng:              top.Center[0],
		FormattedAddress: top.PlaceName,
		Status:           status,
	}
}

type mapboxTripResponse struct {
	Code      string `json:"code"`
	Waypoints []struct {
		WaypointIndex int `json:"waypoint_index"`
	} `json:"waypoints"`
	Trips []struct {
		Geometry string `json:"geometry"`
		Legs     []struct {
			Distance float64 `json:"distance"` // meters
			Duration float64 `json:"duration"` // seconds
		} `json:"legs"`
	} `json:"trips"`
}

// OptimizeRoute asks the Optimized Trips API for the best stop order. With
// no explicit destination the trip either loops back to the origin or is
// pinned to end at the last supplied waypoint, per the request.
func (p *MapboxProvider) OptimizeRoute(ctx context.Context, req RouteRequest) (*RouteResult, error) {
	const op = "routing.MapboxProvider.OptimizeRoute"

	if len(req.Waypoints) == 0 {
		return nil, apperr.BadRequest("at least one waypoint is required").WithOp(op)
	}

	coords := make([]string, 0, len(req.Waypoints)+2)
	coords = append(coords, formatLngLat(req.Origin))
	for _, wp := range req.Waypoints {
		coords = append(coords, formatLngLat(wp.Location))
	}

	params := url.Values{}
	params.Set("access_token", p.accessToken)
	params.Set("source", "first")
	params.Set("geometries", "polyline")
	switch {
	case req.Destination != nil:
		coords = append(coords, formatLngLat(*req.Destination))
		params.Set("destination", "last")
		params.Set("roundtrip", "false")
	case req.lastWaypointIsDestination():
		params.Set("destination", "last")
		params.Set("roundtrip", "false")
	default:
		params.Set("roundtrip", "true")
	}

	path := fmt.Sprintf("/optimized-trips/v1/mapbox/driving/%s", strings.Join(coords, ";"))

	var payload mapboxTripResponse
	if err := p.getJSON(ctx, path, params, &payload); err != nil {
		metrics.RouteOptimizationsTotal.WithLabelValues(p.Name(), "error").Inc()
		p.log.ProviderError(p.Name(), "optimize_route", err)
		return nil, apperr.Wrap(apperr.KindUnavailable, "route optimization failed", err).WithOp(op)
	}

	if payload.Code != "Ok" || len(payload.Trips) == 0 || len(payload.Waypoints) != len(coords) {
		metrics.RouteOptimizationsTotal.WithLabelValues(p.Name(), "error").Inc()
		return nil, apperr.Unavailable(fmt.Sprintf("route optimization failed: %s", payload.Code)).WithOp(op)
	}

	trip := payload.Trips[0]
	if len(trip.Legs) != req.expectedLegs() {
		metrics.RouteOptimizationsTotal.WithLabelValues(p.Name(), "error").Inc()
		return nil, apperr.Unavailable("route optimization returned a malformed route").WithOp(op)
	}

	// Waypoints come back in input order carrying their visit position; the
	// origin (and destination, when pinned) is skipped here.
	order := make([]int, len(req.Waypoints))
	for coordIdx := 1; coordIdx <= len(req.Waypoints); coordIdx++ {
		position := payload.Waypoints[coordIdx].WaypointIndex
		if position < 1 || position > len(req.Waypoints) {
			metrics.RouteOptimizationsTotal.WithLabelValues(p.Name(), "error").Inc()
			return nil, apperr.Unavailable("route optimization returned a malformed stop order").WithOp(op)
		}
		order[position-1] = coordIdx - 1
	}

	result := &RouteResult{
		Provider: p.Name(),
		Order:    order,
		Polyline: trip.Geometry,
	}
	for _, idx := range order {
		result.Waypoints = append(result.Waypoints, req.Waypoints[idx])
	}
	for _, leg := range trip.Legs {
		minutes := int(math.Round(leg.Duration / 60))
		result.Legs = append(result.Legs, Leg{DistanceMeters: leg.Distance, DurationMinutes: minutes})
		result.TotalDistanceMeters += leg.Distance
		result.TotalDurationMinutes += minutes
	}

	metrics.RouteOptimizationsTotal.WithLabelValues(p.Name(), "ok").Inc()
	return result, nil
}

func (p *MapboxProvider) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s%s?%s", p.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func formatLngLat(p geo.Point) string {
	return fmt.Sprintf("%f,%f", p.Lng, p.Lat)
}
