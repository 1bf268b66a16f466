package rsvp

import (
	"time"

	"github.com/google/uuid"

	"connectSFUAPI/internal/event"
)

type Status string

const (
	StatusGoing      Status = "going"
	StatusInterested Status = "interested"
	StatusCancelled  Status = "cancelled"
)

type RSVP struct {
	ID                  uuid.UUID `json:"id"`
	EventID             uuid.UUID `json:"event_id"`
	UserID              uuid.UUID `json:"user_id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone,omitempty"`
	DietaryRestrictions string    `json:"dietary_restrictions,omitempty"`
	EmergencyContact    string    `json:"emergency_contact,omitempty"`
	EmergencyPhone      string    `json:"emergency_phone,omitempty"`
	FindBuddy           bool      `json:"find_buddy"`
	Reminder24h         bool      `json:"reminder_24h"`
	Reminder2h          bool      `json:"reminder_2h"`
	Status              Status    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type CreateRSVPBody struct {
	EventID             string `json:"eventId"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	DietaryRestrictions string `json:"dietaryRestrictions"`
	EmergencyContact    string `json:"emergencyContact"`
	EmergencyPhone      string `json:"emergencyPhone"`
	FindBuddy           bool   `json:"findBuddy"`
	Reminder24h         bool   `json:"reminder24h"`
	Reminder2h          bool   `json:"reminder2h"`
	Status              string `json:"status"`
}

// WithEvent is an RSVP row joined with its event summary, as returned
// by the profile listing.
type WithEvent struct {
	RSVP
	Event event.Summary `json:"events"`
}
