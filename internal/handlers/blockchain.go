package handlers

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"swms-backend/internal/models"
	"swms-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

// AnchorResolutionRequest carries the proof payload to be hashed
type AnchorResolutionRequest struct {
	ProofPhotoURL string `json:"proofPhotoUrl"`
	Notes         string `json:"notes"`
}

// AnchorResolution computes a SHA-256 digest over the resolution proof and
// stores it on the complaint as a tamper-evidence record. Only resolved
// complaints can be anchored, and an existing anchor is never overwritten.
func AnchorResolution(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		complaintID := chi.URLParam(r, "id")

		var req AnchorResolutionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		var complaint models.Complaint
		err := db.Get(&complaint, "SELECT * FROM complaints WHERE id = $1", complaintID)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Complaint not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch complaint")
			return
		}

		if complaint.Status != models.ComplaintStatusResolved {
			utils.Error(w, http.StatusBadRequest, "Only resolved complaints can be anchored")
			return
		}
		if complaint.ResolutionHash != nil {
			utils.Error(w, http.StatusConflict, "Complaint already anchored")
			return
		}

		anchoredAt := time.Now().Unix()
		payload := fmt.Sprintf("%s|%s|%s|%d", complaint.ID, req.ProofPhotoURL, req.Notes, anchoredAt)
		digest := sha256.Sum256([]byte(payload))
		hash := hex.EncodeToString(digest[:])

		_, err = db.Exec(`
			UPDATE complaints
			SET resolution_hash = $1, resolution_anchored_at = $2, updated_at = $2
			WHERE id = $3
		`, hash, anchoredAt, complaintID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to anchor resolution")
			return
		}

		utils.JSON(w, http.StatusOK, map[string]interface{}{
			"complaintId": complaintID,
			"hash":        hash,
			"anchoredAt":  time.Unix(anchoredAt, 0).UTC().Format(time.RFC3339),
		})
	}
}

// VerifyResolution returns the stored anchor for a complaint
func VerifyResolution(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		complaintID := chi.URLParam(r, "id")

		var complaint models.Complaint
		err := db.Get(&complaint, "SELECT * FROM complaints WHERE id = $1", complaintID)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Complaint not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch complaint")
			return
		}

		if complaint.ResolutionHash == nil {
			utils.JSON(w, http.StatusOK, map[string]interface{}{
				"complaintId": complaintID,
				"anchored":    false,
			})
			return
		}

		utils.JSON(w, http.StatusOK, map[string]interface{}{
			"complaintId": complaintID,
			"anchored":    true,
			"hash":        *complaint.ResolutionHash,
			"anchoredAt":  time.Unix(*complaint.ResolutionAnchoredAt, 0).UTC().Format(time.RFC3339),
		})
	}
}
