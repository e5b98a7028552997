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

// Eco points awarded to a citizen for filing a complaint
const complaintRewardPoints = 10

// CreateComplaint handles citizen complaint submission.
//
// The priority score is computed once here, against a snapshot of the bins
// currently in overflow; it is never recomputed if bin states change later.
func CreateComplaint(db *sqlx.DB, hub *websocket.Hub, scorer *services.PriorityScorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req models.CreateComplaintRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Description == "" {
			utils.Error(w, http.StatusBadRequest, "description required")
			return
		}

		var lat, lng *float64
		var address *string
		if req.Location != nil {
			lat = req.Location.Lat
			lng = req.Location.Lng
			address = req.Location.Address
		}

		// Snapshot read of overflow bins; a concurrent sensor update may
		// race benignly with this query
		overflow := overflowPoints(db)
		priority := scorer.Score(&req.Description, lat, lng, overflow)

		complaint := models.Complaint{
			ID:            uuid.New().String(),
			CitizenID:     user.UserID,
			Description:   req.Description,
			Address:       address,
			Latitude:      lat,
			Longitude:     lng,
			PhotoURL:      req.PhotoURL,
			Status:        models.ComplaintStatusSubmitted,
			PriorityScore: priority,
		}

		_, err := db.Exec(`
			INSERT INTO complaints (id, citizen_id, description, address, latitude, longitude, photo_url, status, priority_score)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, complaint.ID, complaint.CitizenID, complaint.Description, complaint.Address,
			complaint.Latitude, complaint.Longitude, complaint.PhotoURL, complaint.Status, complaint.PriorityScore)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to submit complaint")
			return
		}

		// Award eco-points for reporting an issue
		_, err = db.Exec(`
			UPDATE users SET eco_points = eco_points + $1, updated_at = $2 WHERE id = $3
		`, complaintRewardPoints, time.Now().Unix(), user.UserID)
		if err != nil {
			log.Printf("⚠️ Failed to award eco points to %s: %v", user.UserID, err)
		}

		var created models.Complaint
		if err := db.Get(&created, "SELECT * FROM complaints WHERE id = $1", complaint.ID); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch created complaint")
			return
		}

		hub.Emit("complaint:new", map[string]interface{}{
			"id":     created.ID,
			"status": created.Status,
		})

		log.Printf("✅ Complaint %s filed (priority %d)", created.ID, created.PriorityScore)
		utils.JSON(w, http.StatusOK, created.ToComplaintResponse())
	}
}

// GetComplaints returns all complaints, newest first (admin)
func GetComplaints(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var complaints []models.Complaint
		err := db.Select(&complaints, "SELECT * FROM complaints ORDER BY created_at DESC")
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch complaints")
			return
		}

		utils.JSON(w, http.StatusOK, toComplaintResponses(complaints))
	}
}

// GetPrioritizedComplaints returns complaints ordered by priority score
// descending, oldest first within equal scores (admin)
func GetPrioritizedComplaints(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var complaints []models.Complaint
		err := db.Select(&complaints, "SELECT * FROM complaints ORDER BY priority_score DESC, created_at ASC")
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch complaints")
			return
		}

		utils.JSON(w, http.StatusOK, toComplaintResponses(complaints))
	}
}

// GetMyComplaints returns the requesting citizen's own complaints; staff
// and admins see everything
func GetMyComplaints(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var complaints []models.Complaint
		var err error
		if user.Role == "citizen" {
			err = db.Select(&complaints, "SELECT * FROM complaints WHERE citizen_id = $1 ORDER BY created_at DESC", user.UserID)
		} else {
			err = db.Select(&complaints, "SELECT * FROM complaints ORDER BY created_at DESC")
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch complaints")
			return
		}

		utils.JSON(w, http.StatusOK, toComplaintResponses(complaints))
	}
}

// UpdateComplaintStatus handles admin status/assignment updates.
// The flow submitted -> assigned -> in_progress -> resolved is
// one-directional; resolved complaints are immutable here.
func UpdateComplaintStatus(db *sqlx.DB, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "Bad Request")
			return
		}

		var req models.UpdateComplaintStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		newRank := models.ComplaintStatusRank(req.Status)
		if newRank < 0 {
			utils.Error(w, http.StatusBadRequest, "invalid status")
			return
		}

		var existing models.Complaint
		err := db.Get(&existing, "SELECT * FROM complaints WHERE id = $1", id)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}

		if existing.Status == models.ComplaintStatusResolved {
			utils.Error(w, http.StatusBadRequest, "complaint already resolved")
			return
		}
		if newRank < models.ComplaintStatusRank(existing.Status) {
			utils.Error(w, http.StatusBadRequest, "status cannot move backwards")
			return
		}

		assignedTo := existing.AssignedTo
		if req.AssignedTo != nil {
			assignedTo = req.AssignedTo
		}

		_, err = db.Exec(`
			UPDATE complaints SET status = $1, assigned_to = $2, updated_at = $3 WHERE id = $4
		`, req.Status, assignedTo, time.Now().Unix(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to update complaint")
			return
		}

		var updated models.Complaint
		if err := db.Get(&updated, "SELECT * FROM complaints WHERE id = $1", id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch updated complaint")
			return
		}

		hub.Emit("complaint:update", map[string]interface{}{
			"id":         updated.ID,
			"status":     updated.Status,
			"assignedTo": updated.AssignedTo,
		})

		utils.JSON(w, http.StatusOK, updated.ToComplaintResponse())
	}
}

// overflowPoints fetches a snapshot of bins currently in overflow for the
// priority scorer's proximity check.
func overflowPoints(db *sqlx.DB) []services.OverflowPoint {
	var bins []models.Bin
	err := db.Select(&bins, "SELECT * FROM bins WHERE status = $1", models.BinStatusOverflow)
	if err != nil {
		log.Printf("⚠️ Failed to fetch overflow bins: %v", err)
		return nil
	}

	points := make([]services.OverflowPoint, len(bins))
	for i, bin := range bins {
		points[i] = services.OverflowPoint{Latitude: bin.Latitude, Longitude: bin.Longitude}
	}
	return points
}

func toComplaintResponses(complaints []models.Complaint) []models.ComplaintResponse {
	responses := make([]models.ComplaintResponse, len(complaints))
	for i, c := range complaints {
		responses[i] = c.ToComplaintResponse()
	}
	return responses
}
