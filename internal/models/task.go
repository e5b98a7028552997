package models

// Task statuses
const (
	TaskStatusAssigned   = "assigned"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

type Task struct {
	ID            string  `json:"id" db:"id"`
	ComplaintID   string  `json:"complaint_id" db:"complaint_id"`
	AssignedTo    string  `json:"assigned_to" db:"assigned_to"`
	Status        string  `json:"status" db:"status"`
	ProofPhotoURL *string `json:"proof_photo_url,omitempty" db:"proof_photo_url"`
	CompletedAt   *int64  `json:"completed_at,omitempty" db:"completed_at"` // Unix timestamp
	CreatedAt     int64   `json:"created_at" db:"created_at"`               // Unix timestamp
	UpdatedAt     int64   `json:"updated_at" db:"updated_at"`               // Unix timestamp
}

// TaskWithComplaint extends Task with complaint details for the staff task list
type TaskWithComplaint struct {
	Task
	ComplaintDescription string   `json:"complaint_description" db:"complaint_description"`
	ComplaintStatus      string   `json:"complaint_status" db:"complaint_status"`
	ComplaintAddress     *string  `json:"complaint_address,omitempty" db:"complaint_address"`
	ComplaintLatitude    *float64 `json:"complaint_latitude,omitempty" db:"complaint_latitude"`
	ComplaintLongitude   *float64 `json:"complaint_longitude,omitempty" db:"complaint_longitude"`
	ComplaintPriority    int      `json:"complaint_priority" db:"complaint_priority"`
}

// CreateTaskRequest is the request body for POST /api/tasks
type CreateTaskRequest struct {
	ComplaintID string `json:"complaintId"`
	AssignedTo  string `json:"assignedTo"`
}

// CompleteTaskRequest is the request body for PUT /api/tasks/:id/complete
type CompleteTaskRequest struct {
	ProofPhotoURL *string `json:"proofPhotoUrl,omitempty"`
}
