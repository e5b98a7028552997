package models

// Team statuses
const (
	TeamStatusActive   = "Active"
	TeamStatusBreak    = "Break"
	TeamStatusInactive = "Inactive"
)

type Team struct {
	ID        string `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Area      string `json:"area" db:"area"`
	Status    string `json:"status" db:"status"`
	CreatedAt int64  `json:"created_at" db:"created_at"` // Unix timestamp
	UpdatedAt int64  `json:"updated_at" db:"updated_at"` // Unix timestamp
}

// TeamMember is a row from the team_members join table with user details
type TeamMember struct {
	UserID string `json:"user_id" db:"user_id"`
	Name   string `json:"name" db:"name"`
	Email  string `json:"email" db:"email"`
}

// TeamWithMembers is what we send to the client
type TeamWithMembers struct {
	Team
	Members []TeamMember `json:"members"`
}

// CreateTeamRequest is the request body for POST /api/teams
type CreateTeamRequest struct {
	Name      string   `json:"name"`
	Area      string   `json:"area"`
	MemberIDs []string `json:"members,omitempty"`
}

// UpdateTeamRequest is the request body for PUT /api/teams/:id
type UpdateTeamRequest struct {
	Name      *string  `json:"name,omitempty"`
	Area      *string  `json:"area,omitempty"`
	Status    *string  `json:"status,omitempty"`
	MemberIDs []string `json:"members,omitempty"`
}
