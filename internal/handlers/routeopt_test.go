package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// Coordinate validation runs before any database access, so a nil DB is
// fine for the rejection paths.
func TestOptimizeRouteRejectsBadStartCoordinates(t *testing.T) {
	handler := OptimizeRoute(nil, DefaultCollectionThreshold)

	cases := []struct {
		name  string
		query string
	}{
		{"missing params", ""},
		{"non-numeric", "startLat=abc&startLng=1.0"},
		{"nan lat", "startLat=NaN&startLng=77.59"},
		{"nan lng", "startLat=12.97&startLng=NaN"},
		{"infinite lat", "startLat=%2BInf&startLng=77.59"},
		{"lat out of range", "startLat=91&startLng=77.59"},
		{"lng out of range", "startLat=12.97&startLng=181"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/routes/optimize?"+tc.query, nil)
			rec := httptest.NewRecorder()

			handler(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("query %q: status = %d, want %d", tc.query, rec.Code, http.StatusBadRequest)
			}
		})
	}
}
