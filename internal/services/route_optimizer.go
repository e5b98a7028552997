package services

import (
	"log"
	"math"
)

// CollectionStop is a bin in a collection route with the distance walked
// from the previous position to reach it.
type CollectionStop struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	Address                *string  `json:"address,omitempty"`
	Latitude               float64  `json:"-"`
	Longitude              float64  `json:"-"`
	FillLevel              int      `json:"fillLevel"`
	DistanceFromPrevMeters int      `json:"distanceFromPrevMeters"`
	Location               StopGeo  `json:"location"`
}

// StopGeo is the location payload inside a stop.
type StopGeo struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address *string `json:"address,omitempty"`
}

// OptimizeCollectionRoute orders candidate bins by repeatedly moving to the
// nearest unvisited one (greedy nearest-neighbor, straight-line Haversine).
//
// This is deliberately O(n^2): the candidate set is bins above the fill
// threshold, expected to be tens at most, and a simple deterministic pass
// beats a TSP heuristic at that scale. It does not guarantee a globally
// shortest tour, only a locally optimal next hop.
//
// The scan uses a strict < comparison in input order, so the first
// candidate wins on equal distances. An empty candidate set yields an
// empty route.
func OptimizeCollectionRoute(start Location, candidates []CollectionStop) []CollectionStop {
	route := make([]CollectionStop, 0, len(candidates))
	if len(candidates) == 0 {
		return route
	}

	remaining := make([]CollectionStop, len(candidates))
	copy(remaining, candidates)

	current := start
	for len(remaining) > 0 {
		bestIdx := 0
		bestDist := math.Inf(1)

		for i, stop := range remaining {
			d := HaversineMeters(current.Latitude, current.Longitude, stop.Latitude, stop.Longitude)
			if d < bestDist {
				bestDist = d
				bestIdx = i
			}
		}

		next := remaining[bestIdx]
		next.DistanceFromPrevMeters = int(math.Round(bestDist))
		next.Location = StopGeo{Lat: next.Latitude, Lng: next.Longitude, Address: next.Address}
		route = append(route, next)

		current = Location{Latitude: next.Latitude, Longitude: next.Longitude}
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	log.Printf("🎯 Route optimized: %d stops from (%.6f, %.6f)",
		len(route), start.Latitude, start.Longitude)

	return route
}
