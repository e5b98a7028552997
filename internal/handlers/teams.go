package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"swms-backend/internal/models"
	"swms-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func loadTeamMembers(db *sqlx.DB, teamID string) ([]models.TeamMember, error) {
	members := []models.TeamMember{}
	err := db.Select(&members, `
		SELECT u.id AS user_id, u.name, u.email
		FROM team_members tm
		JOIN users u ON u.id = tm.user_id
		WHERE tm.team_id = $1
		ORDER BY u.name ASC
	`, teamID)
	return members, err
}

// GetTeams returns all teams with their members
func GetTeams(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var teams []models.Team
		if err := db.Select(&teams, "SELECT * FROM teams ORDER BY name ASC"); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch teams")
			return
		}

		response := make([]models.TeamWithMembers, 0, len(teams))
		for _, team := range teams {
			members, err := loadTeamMembers(db, team.ID)
			if err != nil {
				utils.Error(w, http.StatusInternalServerError, "Failed to fetch team members")
				return
			}
			response = append(response, models.TeamWithMembers{Team: team, Members: members})
		}

		utils.JSON(w, http.StatusOK, response)
	}
}

// CreateTeam creates a team and optionally assigns staff members to it
func CreateTeam(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateTeamRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Name == "" {
			utils.Error(w, http.StatusBadRequest, "Team name is required")
			return
		}
		if req.Area == "" {
			req.Area = "General Area"
		}

		tx, err := db.Beginx()
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to create team")
			return
		}
		defer tx.Rollback()

		teamID := uuid.New().String()
		now := time.Now().Unix()
		_, err = tx.Exec(`
			INSERT INTO teams (id, name, area, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
		`, teamID, req.Name, req.Area, models.TeamStatusActive, now)
		if err != nil {
			utils.Error(w, http.StatusConflict, "Team name already exists")
			return
		}

		for _, userID := range req.MemberIDs {
			_, err = tx.Exec(
				"INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)",
				teamID, userID,
			)
			if err != nil {
				utils.Error(w, http.StatusBadRequest, "Invalid team member")
				return
			}
		}

		if err := tx.Commit(); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to create team")
			return
		}

		log.Printf("✅ Created team %s (%s)", req.Name, teamID)

		var team models.Team
		if err := db.Get(&team, "SELECT * FROM teams WHERE id = $1", teamID); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch team")
			return
		}
		members, err := loadTeamMembers(db, teamID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch team members")
			return
		}

		utils.JSON(w, http.StatusCreated, models.TeamWithMembers{Team: team, Members: members})
	}
}

// UpdateTeam applies partial updates and replaces membership when provided
func UpdateTeam(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := chi.URLParam(r, "id")

		var req models.UpdateTeamRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		var team models.Team
		err := db.Get(&team, "SELECT * FROM teams WHERE id = $1", teamID)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Team not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch team")
			return
		}

		if req.Name != nil {
			team.Name = *req.Name
		}
		if req.Area != nil {
			team.Area = *req.Area
		}
		if req.Status != nil {
			switch *req.Status {
			case models.TeamStatusActive, models.TeamStatusBreak, models.TeamStatusInactive:
				team.Status = *req.Status
			default:
				utils.Error(w, http.StatusBadRequest, "Invalid team status")
				return
			}
		}

		tx, err := db.Beginx()
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to update team")
			return
		}
		defer tx.Rollback()

		_, err = tx.Exec(`
			UPDATE teams SET name = $1, area = $2, status = $3, updated_at = $4 WHERE id = $5
		`, team.Name, team.Area, team.Status, time.Now().Unix(), teamID)
		if err != nil {
			utils.Error(w, http.StatusConflict, "Team name already exists")
			return
		}

		if req.MemberIDs != nil {
			if _, err := tx.Exec("DELETE FROM team_members WHERE team_id = $1", teamID); err != nil {
				utils.Error(w, http.StatusInternalServerError, "Failed to update team members")
				return
			}
			for _, userID := range req.MemberIDs {
				_, err = tx.Exec(
					"INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)",
					teamID, userID,
				)
				if err != nil {
					utils.Error(w, http.StatusBadRequest, "Invalid team member")
					return
				}
			}
		}

		if err := tx.Commit(); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to update team")
			return
		}

		if err := db.Get(&team, "SELECT * FROM teams WHERE id = $1", teamID); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch team")
			return
		}
		members, err := loadTeamMembers(db, teamID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch team members")
			return
		}

		utils.JSON(w, http.StatusOK, models.TeamWithMembers{Team: team, Members: members})
	}
}

// DeleteTeam removes a team; memberships cascade
func DeleteTeam(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := chi.URLParam(r, "id")

		result, err := db.Exec("DELETE FROM teams WHERE id = $1", teamID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to delete team")
			return
		}
		if n, _ := result.RowsAffected(); n == 0 {
			utils.Error(w, http.StatusNotFound, "Team not found")
			return
		}

		utils.JSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}
