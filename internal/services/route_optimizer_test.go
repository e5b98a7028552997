package services

import (
	"math"
	"testing"
)

func TestOptimizeCollectionRoute_Empty(t *testing.T) {
	route := OptimizeCollectionRoute(Location{Latitude: 0, Longitude: 0}, nil)
	if route == nil {
		t.Fatalf("empty candidate set must return an empty slice, not nil")
	}
	if len(route) != 0 {
		t.Fatalf("expected empty route, got %d stops", len(route))
	}
}

func TestOptimizeCollectionRoute_NearestFirst(t *testing.T) {
	candidates := []CollectionStop{
		{ID: "A", Name: "Bin A", Latitude: 0, Longitude: 1, FillLevel: 90},
		{ID: "B", Name: "Bin B", Latitude: 0, Longitude: 0.5, FillLevel: 85},
	}

	route := OptimizeCollectionRoute(Location{Latitude: 0, Longitude: 0}, candidates)
	if len(route) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(route))
	}
	if route[0].ID != "B" || route[1].ID != "A" {
		t.Fatalf("expected order [B, A], got [%s, %s]", route[0].ID, route[1].ID)
	}

	// Per-leg distances: origin -> B is half a degree of longitude,
	// B -> A is another half degree (~55597m each).
	for i, stop := range route {
		want := int(math.Round(HaversineMeters(0, float64(i)*0.5, 0, float64(i+1)*0.5)))
		if stop.DistanceFromPrevMeters != want {
			t.Fatalf("stop %d leg distance = %d, want %d", i, stop.DistanceFromPrevMeters, want)
		}
	}
}

func TestOptimizeCollectionRoute_Permutation(t *testing.T) {
	candidates := []CollectionStop{
		{ID: "A", Latitude: 0, Longitude: 3, FillLevel: 81},
		{ID: "B", Latitude: 0, Longitude: 1, FillLevel: 99},
		{ID: "C", Latitude: 2, Longitude: 0, FillLevel: 86},
		{ID: "D", Latitude: -1, Longitude: -1, FillLevel: 92},
		{ID: "E", Latitude: 5, Longitude: 5, FillLevel: 80},
	}

	route := OptimizeCollectionRoute(Location{Latitude: 0, Longitude: 0}, candidates)
	if len(route) != len(candidates) {
		t.Fatalf("expected %d stops, got %d", len(candidates), len(route))
	}

	seen := map[string]bool{}
	for _, stop := range route {
		if seen[stop.ID] {
			t.Fatalf("duplicate stop %s in route", stop.ID)
		}
		seen[stop.ID] = true
	}
	for _, c := range candidates {
		if !seen[c.ID] {
			t.Fatalf("candidate %s missing from route", c.ID)
		}
	}
}

func TestOptimizeCollectionRoute_TieBreakInputOrder(t *testing.T) {
	// Two candidates at exactly equal distance from the start: east and
	// west by the same longitude offset at the equator.
	candidates := []CollectionStop{
		{ID: "east", Latitude: 0, Longitude: 1, FillLevel: 88},
		{ID: "west", Latitude: 0, Longitude: -1, FillLevel: 88},
	}

	route := OptimizeCollectionRoute(Location{Latitude: 0, Longitude: 0}, candidates)
	if route[0].ID != "east" {
		t.Fatalf("tie must go to the first candidate in input order, got %s", route[0].ID)
	}

	// Swapping the input order swaps the winner.
	candidates[0], candidates[1] = candidates[1], candidates[0]
	route = OptimizeCollectionRoute(Location{Latitude: 0, Longitude: 0}, candidates)
	if route[0].ID != "west" {
		t.Fatalf("tie must follow input order after swap, got %s", route[0].ID)
	}
}

func TestOptimizeCollectionRoute_SingleCandidate(t *testing.T) {
	candidates := []CollectionStop{
		{ID: "only", Latitude: 0, Longitude: 1, FillLevel: 97},
	}

	route := OptimizeCollectionRoute(Location{Latitude: 0, Longitude: 0}, candidates)
	if len(route) != 1 || route[0].ID != "only" {
		t.Fatalf("unexpected route for single candidate: %+v", route)
	}
	if route[0].Location.Lat != 0 || route[0].Location.Lng != 1 {
		t.Fatalf("stop location not populated: %+v", route[0].Location)
	}
}

func TestOptimizeCollectionRoute_InputNotMutated(t *testing.T) {
	candidates := []CollectionStop{
		{ID: "A", Latitude: 0, Longitude: 2, FillLevel: 90},
		{ID: "B", Latitude: 0, Longitude: 1, FillLevel: 85},
	}

	OptimizeCollectionRoute(Location{Latitude: 0, Longitude: 0}, candidates)
	if candidates[0].ID != "A" || candidates[1].ID != "B" {
		t.Fatalf("candidate slice was reordered by the optimizer")
	}
}
