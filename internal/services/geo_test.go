package services

import (
	"math"
	"testing"
)

func TestHaversineMeters_ZeroDistance(t *testing.T) {
	if d := HaversineMeters(12.9716, 77.5946, 12.9716, 77.5946); d != 0 {
		t.Fatalf("identical points: got %v, want exactly 0", d)
	}
}

func TestHaversineMeters_Symmetry(t *testing.T) {
	ab := HaversineMeters(12.9716, 77.5946, 13.0827, 80.2707)
	ba := HaversineMeters(13.0827, 80.2707, 12.9716, 77.5946)
	if ab != ba {
		t.Fatalf("distance not symmetric: %v vs %v", ab, ba)
	}
	if math.IsInf(ab, 0) || math.IsNaN(ab) || ab < 0 {
		t.Fatalf("expected finite non-negative distance, got %v", ab)
	}
}

func TestHaversineMeters_KnownDistance(t *testing.T) {
	// One degree of longitude at the equator is ~111.19 km.
	d := HaversineMeters(0, 0, 0, 1)
	if d < 111000 || d > 111400 {
		t.Fatalf("1 degree longitude at equator: got %v m, want ~111195 m", d)
	}
}

func TestHaversineMeters_Antipodal(t *testing.T) {
	// Near-antipodal points exercise the min(1, sqrt) clamp; without it the
	// asin argument can overshoot 1 and produce NaN.
	d := HaversineMeters(0, 0, 0, 180)
	if math.IsNaN(d) {
		t.Fatalf("antipodal distance is NaN, clamp missing")
	}
	halfCircumference := math.Pi * EarthRadiusMeters
	if math.Abs(d-halfCircumference) > 1 {
		t.Fatalf("antipodal distance = %v, want ~%v", d, halfCircumference)
	}
}

func TestDistanceMeters_NilCoordinateSentinel(t *testing.T) {
	lat, lng := 12.9716, 77.5946

	d := DistanceMeters(nil, &lng, &lat, &lng)
	if !math.IsInf(d, 1) {
		t.Fatalf("nil coordinate: got %v, want +Inf", d)
	}

	// The sentinel must make proximity comparisons evaluate false.
	if d <= 300 {
		t.Fatalf("+Inf sentinel compared <= threshold as true")
	}
}

func TestDistanceMeters_AllPresent(t *testing.T) {
	lat1, lng1 := 0.0, 0.0
	lat2, lng2 := 0.0, 1.0
	d := DistanceMeters(&lat1, &lng1, &lat2, &lng2)
	if d != HaversineMeters(lat1, lng1, lat2, lng2) {
		t.Fatalf("DistanceMeters disagrees with HaversineMeters: %v", d)
	}
}
