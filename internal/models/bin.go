package models

import "time"

// Bin statuses derived from fill level. Status is never written
// independently of fill_level - see services.StatusForFillLevel.
const (
	BinStatusNormal   = "normal"
	BinStatusFull     = "full"
	BinStatusOverflow = "overflow"
)

type Bin struct {
	ID              string   `json:"id" db:"id"`
	Name            string   `json:"name" db:"name"`
	Address         *string  `json:"address,omitempty" db:"address"`
	Latitude        *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude       *float64 `json:"longitude,omitempty" db:"longitude"`
	FillLevel       int      `json:"fill_level" db:"fill_level"`
	Status          string   `json:"status" db:"status"`
	SensorLastSeen  *int64   `json:"sensor_last_seen,omitempty" db:"sensor_last_seen"`   // Unix timestamp
	LastCollectedAt *int64   `json:"last_collected_at,omitempty" db:"last_collected_at"` // Unix timestamp
	CreatedAt       int64    `json:"created_at" db:"created_at"`                         // Unix timestamp
	UpdatedAt       int64    `json:"updated_at" db:"updated_at"`                         // Unix timestamp
}

// BinResponse is what we send to the client with ISO timestamps
type BinResponse struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Address            *string  `json:"address,omitempty"`
	Latitude           *float64 `json:"latitude,omitempty"`
	Longitude          *float64 `json:"longitude,omitempty"`
	FillLevel          int      `json:"fill_level"`
	Status             string   `json:"status"`
	SensorLastSeenIso  *string  `json:"sensorLastSeenIso,omitempty"`
	LastCollectedAtIso *string  `json:"lastCollectedAtIso,omitempty"`
}

// CreateBinRequest is the request body for POST /api/bins
type CreateBinRequest struct {
	Name      string   `json:"name"`
	Address   *string  `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	FillLevel *int     `json:"fill_level,omitempty"`
}

// SensorUpdateRequest is the request body for POST /api/bins/:id/sensor-update
type SensorUpdateRequest struct {
	FillLevel *int `json:"fillLevel"`
}

// ToBinResponse converts a Bin to BinResponse
func (b *Bin) ToBinResponse() BinResponse {
	resp := BinResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		Latitude:  b.Latitude,
		Longitude: b.Longitude,
		FillLevel: b.FillLevel,
		Status:    b.Status,
	}

	if b.SensorLastSeen != nil {
		t := time.Unix(*b.SensorLastSeen, 0)
		iso := t.Format(time.RFC3339)
		resp.SensorLastSeenIso = &iso
	}

	if b.LastCollectedAt != nil {
		t := time.Unix(*b.LastCollectedAt, 0)
		iso := t.Format(time.RFC3339)
		resp.LastCollectedAtIso = &iso
	}

	return resp
}
