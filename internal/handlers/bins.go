package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"swms-backend/internal/middleware"
	"swms-backend/internal/models"
	"swms-backend/internal/services"
	"swms-backend/internal/websocket"
	"swms-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func GetBins(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var bins []models.Bin
		err := db.Select(&bins, `
			SELECT id, name, address, latitude, longitude, fill_level, status,
			       sensor_last_seen, last_collected_at, created_at, updated_at
			FROM bins
			ORDER BY name ASC
		`)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch bins")
			return
		}

		responses := make([]models.BinResponse, len(bins))
		for i, bin := range bins {
			responses[i] = bin.ToBinResponse()
		}

		utils.JSON(w, http.StatusOK, responses)
	}
}

func CreateBin(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateBinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Name == "" {
			utils.Error(w, http.StatusBadRequest, "name required")
			return
		}

		fillLevel := 0
		if req.FillLevel != nil {
			if *req.FillLevel < 0 || *req.FillLevel > 100 {
				utils.Error(w, http.StatusBadRequest, "fill_level must be between 0 and 100")
				return
			}
			fillLevel = *req.FillLevel
		}

		bin := models.Bin{
			ID:        uuid.New().String(),
			Name:      req.Name,
			Address:   req.Address,
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			FillLevel: fillLevel,
			Status:    services.StatusForFillLevel(fillLevel),
		}

		_, err := db.Exec(`
			INSERT INTO bins (id, name, address, latitude, longitude, fill_level, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, bin.ID, bin.Name, bin.Address, bin.Latitude, bin.Longitude, bin.FillLevel, bin.Status)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to create bin")
			return
		}

		var created models.Bin
		if err := db.Get(&created, "SELECT * FROM bins WHERE id = $1", bin.ID); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch created bin")
			return
		}

		utils.JSON(w, http.StatusOK, created.ToBinResponse())
	}
}

// SensorUpdate handles fill-level reports from bin sensors.
// POST /api/bins/{id}/sensor-update with the X-Sensor-Key shared secret.
//
// Status is re-derived from the reported level on every write. A bin:update
// event is always emitted; a bin:alert event is emitted per the configured
// alert mode (level-triggered by default, edge-triggered optionally).
func SensorUpdate(db *sqlx.DB, hub *websocket.Hub, fcm *services.FCMService, alertMode services.AlertMode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.SensorAuthorized(r) {
			utils.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "Bad Request")
			return
		}

		var req models.SensorUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.FillLevel == nil {
			utils.Error(w, http.StatusBadRequest, "fillLevel must be number")
			return
		}
		level := *req.FillLevel
		if level < 0 || level > 100 {
			utils.Error(w, http.StatusBadRequest, "fillLevel must be between 0 and 100")
			return
		}

		var existing models.Bin
		err := db.Get(&existing, "SELECT * FROM bins WHERE id = $1", id)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}

		status := services.StatusForFillLevel(level)
		now := time.Now().Unix()

		_, err = db.Exec(`
			UPDATE bins
			SET fill_level = $1, status = $2, sensor_last_seen = $3, updated_at = $3
			WHERE id = $4
		`, level, status, now, id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to update bin")
			return
		}

		var updated models.Bin
		if err := db.Get(&updated, "SELECT * FROM bins WHERE id = $1", id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch updated bin")
			return
		}

		hub.Emit("bin:update", map[string]interface{}{
			"id":        updated.ID,
			"fillLevel": updated.FillLevel,
			"status":    updated.Status,
		})

		if services.ShouldAlert(alertMode, existing.Status, level) {
			hub.Emit("bin:alert", map[string]interface{}{
				"id":     updated.ID,
				"level":  updated.FillLevel,
				"status": updated.Status,
			})

			if fcm != nil {
				tokens := staffPushTokens(db)
				if err := fcm.SendBinAlert(tokens, updated.ID, updated.Name, updated.FillLevel, updated.Status); err != nil {
					log.Printf("⚠️ Failed to push bin alert: %v", err)
				}
			}
		}

		utils.JSON(w, http.StatusOK, updated.ToBinResponse())
	}
}

// MarkCollected records a physical collection: fill level resets to zero
// and last_collected_at is stamped. Priority scores of existing complaints
// are deliberately not recomputed.
func MarkCollected(db *sqlx.DB, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "Bad Request")
			return
		}

		now := time.Now().Unix()
		result, err := db.Exec(`
			UPDATE bins
			SET fill_level = 0, status = $1, last_collected_at = $2, updated_at = $2
			WHERE id = $3
		`, models.BinStatusNormal, now, id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to update bin")
			return
		}

		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			utils.Error(w, http.StatusNotFound, "Not found")
			return
		}

		var updated models.Bin
		if err := db.Get(&updated, "SELECT * FROM bins WHERE id = $1", id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch updated bin")
			return
		}

		hub.Emit("bin:update", map[string]interface{}{
			"id":        updated.ID,
			"fillLevel": updated.FillLevel,
			"status":    updated.Status,
		})

		log.Printf("✅ Bin %s collected", id)
		utils.JSON(w, http.StatusOK, updated.ToBinResponse())
	}
}

// staffPushTokens fetches the registered FCM device tokens of staff users.
func staffPushTokens(db *sqlx.DB) []string {
	var tokens []string
	err := db.Select(&tokens, `
		SELECT t.token FROM fcm_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE u.role = 'staff'
	`)
	if err != nil {
		log.Printf("⚠️ Failed to fetch staff push tokens: %v", err)
		return nil
	}
	return tokens
}
