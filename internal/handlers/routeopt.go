package handlers

import (
	"log"
	"math"
	"net/http"
	"os"
	"strconv"

	"swms-backend/internal/models"
	"swms-backend/internal/services"
	"swms-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// DefaultCollectionThreshold is the fill level at which a bin qualifies for
// a collection route.
const DefaultCollectionThreshold = 80

// CollectionThresholdFromEnv reads COLLECTION_FILL_THRESHOLD, falling back
// to the default.
func CollectionThresholdFromEnv() int {
	if v, err := strconv.Atoi(os.Getenv("COLLECTION_FILL_THRESHOLD")); err == nil && v >= 0 && v <= 100 {
		return v
	}
	return DefaultCollectionThreshold
}

// RouteResponse is the payload of GET /api/routes/optimize
type RouteResponse struct {
	Start services.StopGeo          `json:"start"`
	Stops []services.CollectionStop `json:"stops"`
}

// OptimizeRoute computes a greedy nearest-neighbor collection route over
// bins at or above the fill threshold, starting from the caller's position.
// GET /api/routes/optimize?startLat=..&startLng=..
//
// The result is a pure query projection: nothing is persisted.
func OptimizeRoute(db *sqlx.DB, fillThreshold int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		startLat, errLat := strconv.ParseFloat(r.URL.Query().Get("startLat"), 64)
		startLng, errLng := strconv.ParseFloat(r.URL.Query().Get("startLng"), 64)
		if errLat != nil || errLng != nil || math.IsNaN(startLat) || math.IsNaN(startLng) {
			utils.Error(w, http.StatusBadRequest, "startLat and startLng required")
			return
		}
		if startLat < -90 || startLat > 90 || startLng < -180 || startLng > 180 {
			utils.Error(w, http.StatusBadRequest, "startLat and startLng out of range")
			return
		}

		var bins []models.Bin
		err := db.Select(&bins, `
			SELECT * FROM bins
			WHERE fill_level >= $1 AND latitude IS NOT NULL AND longitude IS NOT NULL
			ORDER BY created_at ASC, id ASC
		`, fillThreshold)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch bins")
			return
		}

		candidates := make([]services.CollectionStop, len(bins))
		for i, bin := range bins {
			candidates[i] = services.CollectionStop{
				ID:        bin.ID,
				Name:      bin.Name,
				Address:   bin.Address,
				Latitude:  *bin.Latitude,
				Longitude: *bin.Longitude,
				FillLevel: bin.FillLevel,
			}
		}

		start := services.Location{Latitude: startLat, Longitude: startLng}
		stops := services.OptimizeCollectionRoute(start, candidates)

		log.Printf("[ROUTE-OPTIMIZE] %d qualifying bins from (%.5f, %.5f)", len(stops), startLat, startLng)

		utils.JSON(w, http.StatusOK, RouteResponse{
			Start: services.StopGeo{Lat: startLat, Lng: startLng},
			Stops: stops,
		})
	}
}
