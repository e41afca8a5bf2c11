package routing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"groomroute_backend/platform/apperr"
	"groomroute_backend/platform/geo"
	"groomroute_backend/platform/logger"
)

func newTestGoogle(t *testing.T, handler http.HandlerFunc) *GoogleProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p := NewGoogleProvider("test-key", 1000, logger.New("development"))
	p.baseURL = server.URL
	return p
}

func TestGoogleGeocode(t *testing.T) {
	p := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("address"); got != "123 Main St" {
			t.Errorf("address = %q, want %q", got, "123 Main St")
		}
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"formatted_address": "123 Main St, Springfield, PA",
				"geometry": {"location_type": "ROOFTOP", "location": {"lat": 40.1, "lng": -75.3}}
			}]
		}`))
	})

	got := p.Geocode(context.Background(), "123 Main St")
	if got.Status != GeocodeOK {
		t.Errorf("Status = %q, want ok", got.Status)
	}
	if got.Lat != 40.1 || got.Lng != -75.3 {
		t.Errorf("coordinates = (%v, %v), want (40.1, -75.3)", got.Lat, got.Lng)
	}
	if got.FormattedAddress != "123 Main St, Springfield, PA" {
		t.Errorf("FormattedAddress = %q", got.FormattedAddress)
	}
}

func TestGoogleGeocodePartialMatch(t *testing.T) {
	p := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"formatted_address": "Main St, Springfield, PA",
				"partial_match": true,
				"geometry": {"location_type": "ROOFTOP", "location": {"lat": 40.1, "lng": -75.3}}
			}]
		}`))
	})

	if got := p.Geocode(context.Background(), "123 Mian St"); got.Status != GeocodePartial {
		t.Errorf("Status = %q, want partial", got.Status)
	}
}

func TestGoogleGeocodeInterpolatedIsPartial(t *testing.T) {
	p := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"formatted_address": "100-200 Main St, Springfield, PA",
				"geometry": {"location_type": "RANGE_INTERPOLATED", "location": {"lat": 40.1, "lng": -75.3}}
			}]
		}`))
	})

	if got := p.Geocode(context.Background(), "150 Main St"); got.Status != GeocodePartial {
		t.Errorf("Status = %q, want partial for a non-rooftop fix", got.Status)
	}
}

func TestGoogleGeocodeFailureIsInBand(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"zero results", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
		}},
		{"upstream 500", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestGoogle(t, tc.handler)
			got := p.Geocode(context.Background(), "nowhere at all")
			if got.Status != GeocodeFailed {
				t.Errorf("Status = %q, want failed", got.Status)
			}
			if got.Lat != 0 || got.Lng != 0 {
				t.Errorf("coordinates = (%v, %v), want zeros", got.Lat, got.Lng)
			}
			if got.FormattedAddress != "nowhere at all" {
				t.Errorf("FormattedAddress = %q, want the input echoed back", got.FormattedAddress)
			}
		})
	}
}

func testRouteRequest() RouteRequest {
	return RouteRequest{
		Origin:         geo.Point{Lat: 40.0, Lng: -75.0},
		ReturnToOrigin: true,
		Waypoints: []Waypoint{
			{ID: "a", Location: geo.Point{Lat: 40.1, Lng: -75.1}},
			{ID: "b", Location: geo.Point{Lat: 40.2, Lng: -75.2}},
			{ID: "c", Location: geo.Point{Lat: 40.3, Lng: -75.3}},
		},
	}
}

func TestGoogleOptimizeRoute(t *testing.T) {
	p := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("departure_time"); got == "" {
			t.Error("expected a departure_time parameter")
		}
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"routes": [{
				"waypoint_order": [2, 0, 1],
				"overview_polyline": {"points": "abc123"},
				"legs": [
					{"distance": {"value": 1609}, "duration": {"value": 600}},
					{"distance": {"value": 3219}, "duration": {"value": 900}},
					{"distance": {"value": 1609}, "duration": {"value": 300}},
					{"distance": {"value": 4828}, "duration": {"value": 1200}}
				]
			}]
		}`))
	})

	req := testRouteRequest()
	start := time.Date(2026, time.September, 7, 8, 0, 0, 0, time.UTC)
	req.StartTime = &start

	got, err := p.OptimizeRoute(context.Background(), req)
	if err != nil {
		t.Fatalf("OptimizeRoute() error = %v", err)
	}

	assertValidRoute(t, req, got)

	if got.Waypoints[0].ID != "c" || got.Waypoints[1].ID != "a" || got.Waypoints[2].ID != "b" {
		t.Errorf("visit order = %s %s %s, want c a b",
			got.Waypoints[0].ID, got.Waypoints[1].ID, got.Waypoints[2].ID)
	}
	if got.TotalDurationMinutes != 50 {
		t.Errorf("TotalDurationMinutes = %d, want 50", got.TotalDurationMinutes)
	}
	if got.TotalDistanceMeters != 11265 {
		t.Errorf("TotalDistanceMeters = %v, want 11265", got.TotalDistanceMeters)
	}
	if got.Polyline != "abc123" {
		t.Errorf("Polyline = %q, want the encoded overview", got.Polyline)
	}
}

func TestGoogleOptimizeRouteEndsAtLastWaypoint(t *testing.T) {
	req := testRouteRequest()
	req.ReturnToOrigin = false

	p := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("destination"); got != formatPoint(req.Waypoints[2].Location) {
			t.Errorf("destination = %q, want the last waypoint", got)
		}
		if got := r.URL.Query().Get("waypoints"); strings.Count(got, "|") != 2 {
			t.Errorf("waypoints = %q, want optimize directive plus two stops", got)
		}
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"routes": [{
				"waypoint_order": [1, 0],
				"legs": [
					{"distance": {"value": 1609}, "duration": {"value": 600}},
					{"distance": {"value": 3219}, "duration": {"value": 900}},
					{"distance": {"value": 1609}, "duration": {"value": 300}}
				]
			}]
		}`))
	})

	got, err := p.OptimizeRoute(context.Background(), req)
	if err != nil {
		t.Fatalf("OptimizeRoute() error = %v", err)
	}

	assertValidRoute(t, req, got)

	// The final waypoint is pinned as the destination.
	if got.Waypoints[2].ID != "c" {
		t.Errorf("last stop = %s, want c", got.Waypoints[2].ID)
	}
	if got.Waypoints[0].ID != "b" || got.Waypoints[1].ID != "a" {
		t.Errorf("visit order = %s %s, want b a", got.Waypoints[0].ID, got.Waypoints[1].ID)
	}
}

func TestGoogleOptimizeRouteUpstreamFailure(t *testing.T) {
	p := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "OVER_QUERY_LIMIT", "routes": []}`))
	})

	_, err := p.OptimizeRoute(context.Background(), testRouteRequest())
	if err == nil {
		t.Fatal("OptimizeRoute() error = nil, want upstream failure")
	}
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Errorf("error kind = %v, want unavailable", apperr.GetKind(err))
	}
}

func TestGoogleOptimizeRouteNoWaypoints(t *testing.T) {
	p := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream call expected for an empty request")
	})

	_, err := p.OptimizeRoute(context.Background(), RouteRequest{Origin: geo.Point{Lat: 40, Lng: -75}})
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Errorf("error kind = %v, want bad request", apperr.GetKind(err))
	}
}

// assertValidRoute checks the structural contract every provider shares.
func assertValidRoute(t *testing.T, req RouteRequest, got *RouteResult) {
	t.Helper()

	if len(got.Order) != len(req.Waypoints) {
		t.Fatalf("len(Order) = %d, want %d", len(got.Order), len(req.Waypoints))
	}
	seen := make(map[int]bool)
	for _, idx := range got.Order {
		if idx < 0 || idx >= len(req.Waypoints) || seen[idx] {
			t.Fatalf("Order %v is not a permutation of the request indices", got.Order)
		}
		seen[idx] = true
	}

	if len(got.Waypoints) != len(req.Waypoints) {
		t.Fatalf("len(Waypoints) = %d, want %d", len(got.Waypoints), len(req.Waypoints))
	}
	if len(got.Legs) != req.expectedLegs() {
		t.Fatalf("len(Legs) = %d, want %d", len(got.Legs), req.expectedLegs())
	}

	var minutes int
	var meters float64
	for _, leg := range got.Legs {
		minutes += leg.DurationMinutes
		meters += leg.DistanceMeters
	}
	if minutes != got.TotalDurationMinutes {
		t.Errorf("TotalDurationMinutes = %d, want sum of legs %d", got.TotalDurationMinutes, minutes)
	}
	if diff := meters - got.TotalDistanceMeters; diff > 0.001 || diff < -0.001 {
		t.Errorf("TotalDistanceMeters = %v, want sum of legs %v", got.TotalDistanceMeters, meters)
	}
}
