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

// CreateTask handles admin task creation for a complaint. The complaint
// moves to "assigned" and the assignee is notified over WebSocket and push.
func CreateTask(db *sqlx.DB, hub *websocket.Hub, fcm *services.FCMService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.ComplaintID == "" || req.AssignedTo == "" {
			utils.Error(w, http.StatusBadRequest, "complaintId and assignedTo required")
			return
		}

		var complaint models.Complaint
		err := db.Get(&complaint, "SELECT * FROM complaints WHERE id = $1", req.ComplaintID)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Complaint not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}
		if complaint.Status == models.ComplaintStatusResolved {
			utils.Error(w, http.StatusBadRequest, "complaint already resolved")
			return
		}

		var assignee models.User
		err = db.Get(&assignee, "SELECT * FROM users WHERE id = $1", req.AssignedTo)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Assignee not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}

		taskID := uuid.New().String()
		now := time.Now().Unix()

		tx, err := db.Beginx()
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to begin transaction")
			return
		}
		defer tx.Rollback()

		_, err = tx.Exec(`
			INSERT INTO tasks (id, complaint_id, assigned_to, status)
			VALUES ($1, $2, $3, $4)
		`, taskID, req.ComplaintID, req.AssignedTo, models.TaskStatusAssigned)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to create task")
			return
		}

		_, err = tx.Exec(`
			UPDATE complaints SET status = $1, assigned_to = $2, updated_at = $3 WHERE id = $4
		`, models.ComplaintStatusAssigned, req.AssignedTo, now, req.ComplaintID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to update complaint")
			return
		}

		if err := tx.Commit(); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to commit transaction")
			return
		}

		var task models.Task
		if err := db.Get(&task, "SELECT * FROM tasks WHERE id = $1", taskID); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch created task")
			return
		}

		hub.Emit("complaint:update", map[string]interface{}{
			"id":         req.ComplaintID,
			"status":     models.ComplaintStatusAssigned,
			"assignedTo": req.AssignedTo,
		})
		hub.EmitToUser(req.AssignedTo, "task:assigned", map[string]interface{}{
			"id":           task.ID,
			"complaint_id": task.ComplaintID,
		})

		if fcm != nil {
			var tokens []string
			if err := db.Select(&tokens, "SELECT token FROM fcm_tokens WHERE user_id = $1", req.AssignedTo); err == nil {
				for _, token := range tokens {
					if err := fcm.SendTaskAssignedNotification(token, task.ID, task.ComplaintID); err != nil {
						log.Printf("⚠️ Failed to push task notification: %v", err)
					}
				}
			}
		}

		log.Printf("✅ Task %s created for complaint %s -> %s", task.ID, req.ComplaintID, assignee.Email)
		utils.JSON(w, http.StatusOK, task)
	}
}

// GetMyTasks returns the requesting staff member's tasks, newest first,
// with complaint details joined in.
func GetMyTasks(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var tasks []models.TaskWithComplaint
		err := db.Select(&tasks, `
			SELECT t.id, t.complaint_id, t.assigned_to, t.status, t.proof_photo_url,
			       t.completed_at, t.created_at, t.updated_at,
			       c.description AS complaint_description,
			       c.status AS complaint_status,
			       c.address AS complaint_address,
			       c.latitude AS complaint_latitude,
			       c.longitude AS complaint_longitude,
			       c.priority_score AS complaint_priority
			FROM tasks t
			JOIN complaints c ON c.id = t.complaint_id
			WHERE t.assigned_to = $1
			ORDER BY t.created_at DESC
		`, user.UserID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch tasks")
			return
		}

		utils.JSON(w, http.StatusOK, tasks)
	}
}

// taskCompletionError checks whether the given user may complete the task.
// Completion is terminal: a completed task never accepts another write, so
// proof and completion time cannot be overwritten. Returns 0 when allowed.
func taskCompletionError(task models.Task, userID string) (int, string) {
	if task.AssignedTo != userID {
		return http.StatusForbidden, "Forbidden"
	}
	if task.Status == models.TaskStatusCompleted {
		return http.StatusBadRequest, "task already completed"
	}
	return 0, ""
}

// CompleteTask handles staff task completion with optional proof photo.
// The underlying complaint moves to "resolved".
func CompleteTask(db *sqlx.DB, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "Bad Request")
			return
		}

		user, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req models.CompleteTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		var task models.Task
		err := db.Get(&task, "SELECT * FROM tasks WHERE id = $1", id)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}

		if code, msg := taskCompletionError(task, user.UserID); code != 0 {
			utils.Error(w, code, msg)
			return
		}

		now := time.Now().Unix()

		tx, err := db.Beginx()
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to begin transaction")
			return
		}
		defer tx.Rollback()

		_, err = tx.Exec(`
			UPDATE tasks
			SET status = $1, proof_photo_url = $2, completed_at = $3, updated_at = $3
			WHERE id = $4
		`, models.TaskStatusCompleted, req.ProofPhotoURL, now, id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to update task")
			return
		}

		_, err = tx.Exec(`
			UPDATE complaints SET status = $1, updated_at = $2 WHERE id = $3
		`, models.ComplaintStatusResolved, now, task.ComplaintID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to update complaint")
			return
		}

		if err := tx.Commit(); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to commit transaction")
			return
		}

		var updated models.Task
		if err := db.Get(&updated, "SELECT * FROM tasks WHERE id = $1", id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch updated task")
			return
		}

		hub.Emit("complaint:update", map[string]interface{}{
			"id":     task.ComplaintID,
			"status": models.ComplaintStatusResolved,
		})

		log.Printf("✅ Task %s completed by %s", id, user.Email)
		utils.JSON(w, http.StatusOK, updated)
	}
}
