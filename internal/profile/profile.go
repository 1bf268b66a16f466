package profile

import "github.com/google/uuid"

// Profile holds the per-user bio and interests used by the
// compatibility scorer. Read-only from the matcher's perspective.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	ClerkID   string    `json:"clerk_id"`
	Bio       string    `json:"bio"`
	Interests []string  `json:"interests"`
}
