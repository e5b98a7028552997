package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"swms-backend/internal/models"
	"swms-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// DayCount is one bucket of a per-day aggregation
type DayCount struct {
	Day   string `json:"day" db:"day"`
	Count int    `json:"count" db:"count"`
}

// AreaCount is a complaint hotspot bucket
type AreaCount struct {
	Address string `json:"address" db:"address"`
	Count   int    `json:"count" db:"count"`
}

// StaffEfficiency summarizes one staff member's completed tasks
type StaffEfficiency struct {
	UserID               string  `json:"user_id" db:"user_id"`
	Name                 string  `json:"name" db:"name"`
	Completed            int     `json:"completed" db:"completed"`
	AvgResolutionSeconds float64 `json:"avg_resolution_seconds" db:"avg_resolution_seconds"`
}

// GetPatterns returns 14-day complaint and bin-alert frequencies per day
func GetPatterns(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		since := time.Now().Add(-14 * 24 * time.Hour).Unix()

		var complaintsPerDay []DayCount
		err := db.Select(&complaintsPerDay, `
			SELECT to_char(to_timestamp(created_at), 'YYYY-MM-DD') AS day, COUNT(*) AS count
			FROM complaints
			WHERE created_at >= $1
			GROUP BY day
			ORDER BY day ASC
		`, since)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch complaint patterns")
			return
		}

		var binAlertsPerDay []DayCount
		err = db.Select(&binAlertsPerDay, `
			SELECT to_char(to_timestamp(sensor_last_seen), 'YYYY-MM-DD') AS day, COUNT(*) AS count
			FROM bins
			WHERE sensor_last_seen >= $1 AND fill_level >= 80
			GROUP BY day
			ORDER BY day ASC
		`, since)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch bin alert patterns")
			return
		}

		utils.JSON(w, http.StatusOK, map[string]interface{}{
			"complaintsPerDay": complaintsPerDay,
			"binAlertsPerDay":  binAlertsPerDay,
		})
	}
}

// GetRecurringAreas returns the top-10 complaint addresses
func GetRecurringAreas(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var areas []AreaCount
		err := db.Select(&areas, `
			SELECT address, COUNT(*) AS count
			FROM complaints
			WHERE address IS NOT NULL
			GROUP BY address
			ORDER BY count DESC
			LIMIT 10
		`)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch recurring areas")
			return
		}

		utils.JSON(w, http.StatusOK, areas)
	}
}

// GetStaffEfficiency returns 30-day completed-task counts and average
// resolution time per staff member, measured from complaint creation to
// task completion.
func GetStaffEfficiency(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		since := time.Now().Add(-30 * 24 * time.Hour).Unix()

		var stats []StaffEfficiency
		err := db.Select(&stats, `
			SELECT u.id AS user_id, u.name,
			       COUNT(*) AS completed,
			       AVG(t.completed_at - c.created_at) AS avg_resolution_seconds
			FROM tasks t
			JOIN users u ON u.id = t.assigned_to
			JOIN complaints c ON c.id = t.complaint_id
			WHERE t.status = 'completed' AND t.completed_at >= $1
			GROUP BY u.id, u.name
			ORDER BY completed DESC
		`, since)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch staff efficiency")
			return
		}

		utils.JSON(w, http.StatusOK, stats)
	}
}

// ExportCSV streams complaints or tasks as CSV.
// GET /api/analytics/export.csv?type=complaints|tasks
func ExportCSV(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exportType := r.URL.Query().Get("type")
		if exportType == "" {
			exportType = "complaints"
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", exportType))

		writer := csv.NewWriter(w)
		defer writer.Flush()

		if exportType == "tasks" {
			type taskRow struct {
				models.Task
				AssigneeName string `db:"assignee_name"`
			}
			var tasks []taskRow
			err := db.Select(&tasks, `
				SELECT t.*, u.name AS assignee_name
				FROM tasks t
				JOIN users u ON u.id = t.assigned_to
				ORDER BY t.created_at DESC
			`)
			if err != nil {
				utils.Error(w, http.StatusInternalServerError, "Failed to fetch tasks")
				return
			}

			writer.Write([]string{"TaskID", "ComplaintID", "AssignedTo", "Status", "CompletedAt"})
			for _, t := range tasks {
				completed := ""
				if t.CompletedAt != nil {
					completed = time.Unix(*t.CompletedAt, 0).Format(time.RFC3339)
				}
				writer.Write([]string{t.ID, t.ComplaintID, t.AssigneeName, t.Status, completed})
			}
			return
		}

		type complaintRow struct {
			models.Complaint
			CitizenName  string  `db:"citizen_name"`
			AssigneeName *string `db:"assignee_name"`
		}
		var complaints []complaintRow
		err := db.Select(&complaints, `
			SELECT c.*, cu.name AS citizen_name, au.name AS assignee_name
			FROM complaints c
			JOIN users cu ON cu.id = c.citizen_id
			LEFT JOIN users au ON au.id = c.assigned_to
			ORDER BY c.created_at DESC
		`)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch complaints")
			return
		}

		writer.Write([]string{"ComplaintID", "Citizen", "AssignedTo", "Status", "Priority", "CreatedAt"})
		for _, c := range complaints {
			assignee := ""
			if c.AssigneeName != nil {
				assignee = *c.AssigneeName
			}
			writer.Write([]string{
				c.ID, c.CitizenName, assignee, c.Status,
				strconv.Itoa(c.PriorityScore),
				time.Unix(c.CreatedAt, 0).Format(time.RFC3339),
			})
		}
	}
}
