package services

import "math"

// EarthRadiusMeters is Earth's radius used by the Haversine formula.
const EarthRadiusMeters = 6371000.0

// Location represents a geographic point
type Location struct {
	Latitude  float64
	Longitude float64
}

// HaversineMeters calculates the great-circle distance between two GPS
// coordinates in meters. The min(1, sqrt(...)) clamp guards against
// floating-point overshoot of the asin domain for near-antipodal or
// duplicate points.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	const degToRad = math.Pi / 180

	dLat := (lat2 - lat1) * degToRad
	dLng := (lng2 - lng1) * degToRad
	lat1Rad := lat1 * degToRad
	lat2Rad := lat2 * degToRad

	s1 := math.Sin(dLat/2) * math.Sin(dLat/2)
	s2 := math.Cos(lat1Rad) * math.Cos(lat2Rad) * math.Sin(dLng/2) * math.Sin(dLng/2)

	c := 2 * math.Asin(math.Min(1, math.Sqrt(s1+s2)))
	return EarthRadiusMeters * c
}

// DistanceMeters is the nullable-coordinate variant of HaversineMeters.
// A missing coordinate means "distance unknown", reported as +Inf so that
// any d <= threshold comparison evaluates false instead of erroring.
func DistanceMeters(lat1, lng1, lat2, lng2 *float64) float64 {
	if lat1 == nil || lng1 == nil || lat2 == nil || lng2 == nil {
		return math.Inf(1)
	}
	return HaversineMeters(*lat1, *lng1, *lat2, *lng2)
}
