package buddy

import "github.com/google/uuid"

type CreateRequestBody struct {
	EventID          string `json:"eventId"`
	Nickname         string `json:"nickname"`
	GenderPreference string `json:"genderPreference"`
	Vibe             string `json:"vibe"`
	Visibility       string `json:"visibility"`
}

// BuddyInfo is the matched counterpart as shown to the requester.
// Bio and Interests are only populated by the smart endpoint.
type BuddyInfo struct {
	Nickname  string   `json:"nickname"`
	Vibe      Vibe     `json:"vibe"`
	Bio       string   `json:"bio,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

type MatchResponse struct {
	Success            bool       `json:"success"`
	MatchFound         bool       `json:"matchFound"`
	Buddy              *BuddyInfo `json:"buddy,omitempty"`
	MatchID            *uuid.UUID `json:"matchId,omitempty"`
	CompatibilityScore int        `json:"compatibilityScore,omitempty"`
	Message            string     `json:"message,omitempty"`
}

type NotifyBody struct {
	MatchID    string `json:"matchId"`
	EventTitle string `json:"eventTitle"`
	BuddyName  string `json:"buddyName"`
}
