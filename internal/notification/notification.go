package notification

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const TypeBuddyMatch Type = "buddy_match"

type Notification struct {
	ID          uuid.UUID  `json:"id"`
	Type        Type       `json:"type"`
	UserID      uuid.UUID  `json:"user_id"`
	EventID     uuid.UUID  `json:"event_id"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	ScheduledAt time.Time  `json:"scheduled_at"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
}

type DeviceToken struct {
	Token    string    `json:"token"`
	Platform string    `json:"platform"`
	AddedAt  time.Time `json:"added_at"`
}

type RegisterDeviceBody struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}
