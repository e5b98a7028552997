package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"swms-backend/internal/middleware"
	"swms-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// RegisterFCMTokenRequest is the request body for POST /api/fcm-token
type RegisterFCMTokenRequest struct {
	Token      string `json:"token"`
	DeviceType string `json:"deviceType"`
}

// RegisterFCMToken stores a device push token for the caller. Re-registering
// an existing token moves it to the caller's account.
func RegisterFCMToken(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req RegisterFCMTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Token == "" {
			utils.Error(w, http.StatusBadRequest, "Token is required")
			return
		}
		if req.DeviceType != "ios" && req.DeviceType != "android" {
			utils.Error(w, http.StatusBadRequest, "deviceType must be ios or android")
			return
		}

		now := time.Now().Unix()
		_, err := db.Exec(`
			INSERT INTO fcm_tokens (user_id, token, device_type, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
			ON CONFLICT (token)
			DO UPDATE SET user_id = EXCLUDED.user_id, device_type = EXCLUDED.device_type, updated_at = EXCLUDED.updated_at
		`, claims.UserID, req.Token, req.DeviceType, now)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to register token")
			return
		}

		utils.JSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}
