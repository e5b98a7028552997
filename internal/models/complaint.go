package models

import "time"

// Complaint statuses. The flow is one-directional:
// submitted -> assigned -> in_progress -> resolved.
const (
	ComplaintStatusSubmitted  = "submitted"
	ComplaintStatusAssigned   = "assigned"
	ComplaintStatusInProgress = "in_progress"
	ComplaintStatusResolved   = "resolved"
)

// ComplaintStatusRank orders statuses for the one-directional check.
// Unknown statuses map to -1.
func ComplaintStatusRank(status string) int {
	switch status {
	case ComplaintStatusSubmitted:
		return 0
	case ComplaintStatusAssigned:
		return 1
	case ComplaintStatusInProgress:
		return 2
	case ComplaintStatusResolved:
		return 3
	}
	return -1
}

type Complaint struct {
	ID                   string   `json:"id" db:"id"`
	CitizenID            string   `json:"citizen_id" db:"citizen_id"`
	Description          string   `json:"description" db:"description"`
	Address              *string  `json:"address,omitempty" db:"address"`
	Latitude             *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude            *float64 `json:"longitude,omitempty" db:"longitude"`
	PhotoURL             *string  `json:"photo_url,omitempty" db:"photo_url"`
	Status               string   `json:"status" db:"status"`
	AssignedTo           *string  `json:"assigned_to,omitempty" db:"assigned_to"`
	PriorityScore        int      `json:"priority_score" db:"priority_score"`
	ResolutionHash       *string  `json:"resolution_hash,omitempty" db:"resolution_hash"`
	ResolutionAnchoredAt *int64   `json:"resolution_anchored_at,omitempty" db:"resolution_anchored_at"` // Unix timestamp
	CreatedAt            int64    `json:"created_at" db:"created_at"`                                   // Unix timestamp
	UpdatedAt            int64    `json:"updated_at" db:"updated_at"`                                   // Unix timestamp
}

// ComplaintResponse is what we send to the client with ISO timestamps
type ComplaintResponse struct {
	ID                      string   `json:"id"`
	CitizenID               string   `json:"citizen_id"`
	Description             string   `json:"description"`
	Address                 *string  `json:"address,omitempty"`
	Latitude                *float64 `json:"latitude,omitempty"`
	Longitude               *float64 `json:"longitude,omitempty"`
	PhotoURL                *string  `json:"photo_url,omitempty"`
	Status                  string   `json:"status"`
	AssignedTo              *string  `json:"assigned_to,omitempty"`
	PriorityScore           int      `json:"priority_score"`
	ResolutionHash          *string  `json:"resolution_hash,omitempty"`
	ResolutionAnchoredAtIso *string  `json:"resolutionAnchoredAtIso,omitempty"`
	CreatedAtIso            string   `json:"createdAtIso"`
}

// ComplaintLocation is the optional location payload on complaint submission
type ComplaintLocation struct {
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	Address *string  `json:"address,omitempty"`
}

// CreateComplaintRequest is the request body for POST /api/complaints
type CreateComplaintRequest struct {
	Description string             `json:"description"`
	Location    *ComplaintLocation `json:"location,omitempty"`
	PhotoURL    *string            `json:"photoUrl,omitempty"`
}

// UpdateComplaintStatusRequest is the request body for PUT /api/complaints/:id/status
type UpdateComplaintStatusRequest struct {
	Status     string  `json:"status"`
	AssignedTo *string `json:"assignedTo,omitempty"`
}

// ToComplaintResponse converts a Complaint to ComplaintResponse
func (c *Complaint) ToComplaintResponse() ComplaintResponse {
	resp := ComplaintResponse{
		ID:             c.ID,
		CitizenID:      c.CitizenID,
		Description:    c.Description,
		Address:        c.Address,
		Latitude:       c.Latitude,
		Longitude:      c.Longitude,
		PhotoURL:       c.PhotoURL,
		Status:         c.Status,
		AssignedTo:     c.AssignedTo,
		PriorityScore:  c.PriorityScore,
		ResolutionHash: c.ResolutionHash,
		CreatedAtIso:   time.Unix(c.CreatedAt, 0).Format(time.RFC3339),
	}

	if c.ResolutionAnchoredAt != nil {
		iso := time.Unix(*c.ResolutionAnchoredAt, 0).Format(time.RFC3339)
		resp.ResolutionAnchoredAtIso = &iso
	}

	return resp
}
