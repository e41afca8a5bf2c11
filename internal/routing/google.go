package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"groomroute_backend/platform/apperr"
	"groomroute_backend/platform/geo"
	"groomroute_backend/platform/logger"
	"groomroute_backend/platform/metrics"

	"golang.org/x/time/rate"
)

const googleBaseURL = "https://maps.googleapis.com"

// GoogleProvider talks to the Google Maps Geocoding and Directions APIs.
type GoogleProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	log     *logger.Logger
}

// NewGoogleProvider creates a Google Maps backed provider.
func NewGoogleProvider(apiKey string, ratePerSecond float64, log *logger.Logger) *GoogleProvider {
	return &GoogleProvider{
		apiKey:  apiKey,
		baseURL: googleBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), 1),
		log:     log,
	}
}

func (p *GoogleProvider) Name() string { return "google" }

type googleGeocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		PartialMatch     bool   `json:"partial_match"`
		Geometry         struct {
			LocationType string `json:"location_type"`
			Location     struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves an address to coordinates. Lookup failures come back as a
// failed-status result, never an error.
func (p *GoogleProvider) Geocode(ctx context.Context, address string) GeocodeResult {
	started := time.Now()

	result := p.geocode(ctx, address)

	metrics.GeocodeRequestsTotal.WithLabelValues(p.Name(), result.Status).Inc()
	p.log.GeocodeResult(p.Name(), result.Status, float64(time.Since(started).Milliseconds()))

	return result
}

func (p *GoogleProvider) geocode(ctx context.Context, address string) GeocodeResult {
	if err := p.limiter.Wait(ctx); err != nil {
		return Failed(address)
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", p.apiKey)

	var payload googleGeocodeResponse
	if err := p.getJSON(ctx, "/maps/api/geocode/json", params, &payload); err != nil {
		p.log.ProviderError(p.Name(), "geocode", err)
		return Failed(address)
	}

	if payload.Status != "OK" || len(payload.Results) == 0 {
		return Failed(address)
	}

	// Only an exact rooftop fix counts as a clean result; interpolated or
	// approximate fixes and partial matches are flagged for review.
	top := payload.Results[0]
	status := GeocodeOK
	if top.PartialMatch || top.Geometry.LocationType != "ROOFTOP" {
		status = GeocodePartial
	}

	return GeocodeResult{
		Lat:              top.Geometry.Location.Lat,
		Lng:              top.Geometry.Location.Lng,
		FormattedAddress: top.FormattedAddress,
		Status:           status,
	}
}

type googleDirectionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		WaypointOrder    []int `json:"waypoint_order"`
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Distance struct {
				Value int `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

// OptimizeRoute asks the Directions API for the best stop order. When the
// route ends at the last supplied waypoint, that waypoint becomes the
// directions destination and only the rest are reordered.
func (p *GoogleProvider) OptimizeRoute(ctx context.Context, req RouteRequest) (*RouteResult, error) {
	const op = "routing.GoogleProvider.OptimizeRoute"

	if len(req.Waypoints) == 0 {
		return nil, apperr.BadRequest("at least one waypoint is required").WithOp(op)
	}

	destination := req.Origin
	optimizable := req.Waypoints
	switch {
	case req.Destination != nil:
		destination = *req.Destination
	case req.lastWaypointIsDestination():
		destination = req.Waypoints[len(req.Waypoints)-1].Location
		optimizable = req.Waypoints[:len(req.Waypoints)-1]
	}

	params := url.Values{}
	params.Set("origin", formatPoint(req.Origin))
	params.Set("destination", formatPoint(destination))
	params.Set("key", p.apiKey)
	if len(optimizable) > 0 {
		points := make([]string, 0, len(optimizable)+1)
		points = append(points, "optimize:true")
		for _, wp := range optimizable {
			points = append(points, formatPoint(wp.Location))
		}
		params.Set("waypoints", strings.Join(points, "|"))
	}
	if req.StartTime != nil {
		params.Set("departure_time", strconv.FormatInt(req.StartTime.Unix(), 10))
	}

	var payload googleDirectionsResponse
	if err := p.getJSON(ctx, "/maps/api/directions/json", params, &payload); err != nil {
		metrics.RouteOptimizationsTotal.WithLabelValues(p.Name(), "error").Inc()
		p.log.ProviderError(p.Name(), "optimize_route", err)
		return nil, apperr.Wrap(apperr.KindUnavailable, "route optimization failed", err).WithOp(op)
	}

	if payload.Status != "OK" || len(payload.Routes) == 0 {
		metrics.RouteOptimizationsTotal.WithLabelValues(p.Name(), "error").Inc()
		return nil, apperr.Unavailable(fmt.Sprintf("route optimization failed: %s", payload.Status)).WithOp(op)
	}

	route := payload.Routes[0]
	if len(route.WaypointOrder) != len(optimizable) || len(route.Legs) != req.expectedLegs() {
		metrics.RouteOptimizationsTotal.WithLabelValues(p.Name(), "error").Inc()
		return nil, apperr.Unavailable("route optimization returned a malformed route").WithOp(op)
	}

	order := append([]int(nil), route.WaypointOrder...)
	if req.lastWaypointIsDestination() {
		order = append(order, len(req.Waypoints)-1)
	}

	result := &RouteResult{
		Provider: p.Name(),
		Order:    order,
		Polyline: route.OverviewPolyline.Points,
	}
	for _, idx := range order {
		result.Waypoints = append(result.Waypoints, req.Waypoints[idx])
	}
	for _, leg := range route.Legs {
		meters := float64(leg.Distance.Value)
		minutes := int(math.Round(float64(leg.Duration.Value) / 60))
		result.Legs = append(result.Legs, Leg{DistanceMeters: meters, DurationMinutes: minutes})
		result.TotalDistanceMeters += meters
		result.TotalDurationMinutes += minutes
	}

	metrics.RouteOptimizationsTotal.WithLabelValues(p.Name(), "ok").Inc()
	return result, nil
}

func (p *GoogleProvider) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
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

func formatPoint(p geo.Point) string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lng)
}
