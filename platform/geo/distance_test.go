package geo

import (
	"math"
	"testing"
)

func TestDistanceMilesZeroForSamePoint(t *testing.T) {
	p := Point{Lat: 40.7128, Lng: -74.0060}
	if d := DistanceMiles(p, p); d != 0 {
		t.Errorf("DistanceMiles(p, p) = %f, want 0", d)
	}
}

func TestDistanceMilesKnownPairs(t *testing.T) {
	cases := []struct {
		name      string
		a, b      Point
		wantMiles float64
		tolerance float64
	}{
		{
			name:      "nyc to la",
			a:         Point{Lat: 40.7128, Lng: -74.0060},
			b:         Point{Lat: 34.0522, Lng: -118.2437},
			wantMiles: 2445,
			tolerance: 15,
		},
		{
			name:      "one degree latitude",
			a:         Point{Lat: 0, Lng: 0},
			b:         Point{Lat: 1, Lng: 0},
			wantMiles: 69.1,
			tolerance: 0.5,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DistanceMiles(tc.a, tc.b)
			if math.Abs(got-tc.wantMiles) > tc.tolerance {
				t.Errorf("DistanceMiles = %f, want %f ± %f", got, tc.wantMiles, tc.tolerance)
			}
		})
	}
}

func TestDistanceMilesSymmetric(t *testing.T) {
	a := Point{Lat: 47.6062, Lng: -122.3321}
	b := Point{Lat: 45.5152, Lng: -122.6784}
	if d1, d2 := DistanceMiles(a, b), DistanceMiles(b, a); math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance not symmetric: %f vs %f", d1, d2)
	}
}
