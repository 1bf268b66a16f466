package event

import (
	"time"

	"github.com/google/uuid"
)

type Club struct {
	Name        string `json:"name"`
	LogoURL     string `json:"logo_url,omitempty"`
	Description string `json:"description"`
}

type Event struct {
	ID           uuid.UUID  `json:"id"`
	ClubID       *uuid.UUID `json:"club_id,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Campus       string     `json:"campus"`
	LocationText string     `json:"location_text"`
	StartAt      time.Time  `json:"start_at"`
	EndAt        time.Time  `json:"end_at"`
	Status       string     `json:"status"`
	IsFree       bool       `json:"is_free"`
	Cost         *float64   `json:"cost,omitempty"`
	MaxAttendees *int       `json:"max_attendees,omitempty"`
	Tags         []string   `json:"tags"`
	CreatedAt    time.Time  `json:"created_at"`
	Club         *Club      `json:"clubs,omitempty"`
}

// Summary carries the subset of event fields attached to a user's RSVPs.
type Summary struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	LocationText string    `json:"location_text"`
	Campus       string    `json:"campus"`
	ClubName     string    `json:"club_name,omitempty"`
}
