package buddy

import (
	"time"

	"github.com/google/uuid"
)

type GenderPreference string

const (
	PreferenceSameGender GenderPreference = "same_gender"
	PreferenceOpen       GenderPreference = "open"
)

type Vibe string

const (
	VibeJustAttend Vibe = "just_attend"
	VibeExplore    Vibe = "explore"
	VibeNewFriend  Vibe = "new_friend"
)

type Visibility string

const (
	VisibilityMatchNow   Visibility = "match_now"
	VisibilityCheckLater Visibility = "check_later"
)

// Request is a user's standing offer to be matched with another
// attendee of a specific event. Open flips to false exactly once,
// when the request is consumed by a match.
type Request struct {
	ID               uuid.UUID        `json:"id"`
	EventID          uuid.UUID        `json:"event_id"`
	UserID           uuid.UUID        `json:"user_id"`
	Nickname         string           `json:"nickname"`
	GenderPreference GenderPreference `json:"gender_preference"`
	Vibe             Vibe             `json:"vibe"`
	Visibility       Visibility       `json:"visibility"`
	Open             bool             `json:"open"`
	CreatedAt        time.Time        `json:"created_at"`
}

// Candidate is an open request joined with the owner's profile data,
// as returned by the candidate search query.
type Candidate struct {
	RequestID        uuid.UUID        `json:"request_id"`
	UserID           uuid.UUID        `json:"user_id"`
	Nickname         string           `json:"nickname"`
	GenderPreference GenderPreference `json:"gender_preference"`
	Vibe             Vibe             `json:"vibe"`
	Bio              string           `json:"bio"`
	Interests        []string         `json:"interests"`
}

type MatchStatus string

const MatchPending MatchStatus = "pending"

type Match struct {
	ID        uuid.UUID   `json:"id"`
	EventID   uuid.UUID   `json:"event_id"`
	UserA     uuid.UUID   `json:"user_a"`
	UserB     uuid.UUID   `json:"user_b"`
	Status    MatchStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}
