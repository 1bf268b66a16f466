package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"connectSFUAPI/internal/profile"
)

type ProfileService struct {
	db *pgxpool.Pool
}

func NewProfileService(db *pgxpool.Pool) *ProfileService {
	return &ProfileService{db: db}
}

// ResolveUserID maps the authenticated Clerk subject to the internal
// user id.
func (s *ProfileService) ResolveUserID(ctx context.Context, clerkID string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM user_profiles WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("user not found")
		}
		return uuid.Nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return userID, nil
}

// GetByClerkID returns the caller's profile.
func (s *ProfileService) GetByClerkID(ctx context.Context, clerkID string) (*profile.Profile, error) {
	p := &profile.Profile{}
	err := s.db.QueryRow(ctx,
		`SELECT id, clerk_id, COALESCE(bio, ''), COALESCE(interests, '{}') FROM user_profiles WHERE clerk_id = $1`,
		clerkID,
	).Scan(&p.ID, &p.ClerkID, &p.Bio, &p.Interests)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}
