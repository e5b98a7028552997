package handlers

import (
	"encoding/json"
	"net/http"

	"swms-backend/internal/middleware"
	"swms-backend/internal/models"
	"swms-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// LeaderboardEntry is one row of the citizen eco-points ranking
type LeaderboardEntry struct {
	UserID    string `json:"user_id" db:"user_id"`
	Name      string `json:"name" db:"name"`
	EcoPoints int    `json:"eco_points" db:"eco_points"`
}

// GetMyEngagement returns the caller's eco-points balance
func GetMyEngagement(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var user models.User
		err := db.Get(&user, "SELECT * FROM users WHERE id = $1", claims.UserID)
		if err != nil {
			utils.Error(w, http.StatusNotFound, "User not found")
			return
		}

		utils.JSON(w, http.StatusOK, map[string]interface{}{
			"userId":    user.ID,
			"ecoPoints": user.EcoPoints,
		})
	}
}

// GetLeaderboard returns the top 20 citizens by eco points
func GetLeaderboard(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var entries []LeaderboardEntry
		err := db.Select(&entries, `
			SELECT id AS user_id, name, eco_points
			FROM users
			WHERE role = 'citizen'
			ORDER BY eco_points DESC, name ASC
			LIMIT 20
		`)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch leaderboard")
			return
		}

		utils.JSON(w, http.StatusOK, entries)
	}
}

// AwardPointsRequest grants a citizen bonus eco points
type AwardPointsRequest struct {
	UserID string `json:"userId"`
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

// AwardPoints lets an admin credit eco points manually
func AwardPoints(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AwardPointsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.UserID == "" || req.Points <= 0 {
			utils.Error(w, http.StatusBadRequest, "userId and positive points required")
			return
		}

		result, err := db.Exec(
			"UPDATE users SET eco_points = eco_points + $1, updated_at = EXTRACT(EPOCH FROM NOW())::BIGINT WHERE id = $2",
			req.Points, req.UserID,
		)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to award points")
			return
		}
		if n, _ := result.RowsAffected(); n == 0 {
			utils.Error(w, http.StatusNotFound, "User not found")
			return
		}

		var user models.User
		if err := db.Get(&user, "SELECT * FROM users WHERE id = $1", req.UserID); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch user")
			return
		}

		utils.JSON(w, http.StatusOK, map[string]interface{}{
			"userId":    user.ID,
			"ecoPoints": user.EcoPoints,
		})
	}
}
