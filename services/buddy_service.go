package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"connectSFUAPI/internal/buddy"
	"connectSFUAPI/internal/event"
	"connectSFUAPI/middleware"
	"connectSFUAPI/utils"
)

const (
	// matchThreshold gates commits: a candidate must score strictly
	// above it to produce a match.
	matchThreshold = 60

	basicCandidateLimit = 5
	smartCandidateLimit = 10
)

// ErrDuplicateRequest is returned when the caller already has a buddy
// request for the event, open or not.
var ErrDuplicateRequest = errors.New("duplicate buddy request")

type BuddyService struct {
	db      *pgxpool.Pool
	scorer  *ScoringService
	events  *EventService
	siteURL string
	client  *http.Client
}

func NewBuddyService(db *pgxpool.Pool, scorer *ScoringService, events *EventService, siteURL string) *BuddyService {
	return &BuddyService{
		db:      db,
		scorer:  scorer,
		events:  events,
		siteURL: siteURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SubmitRequest persists a new buddy request and, for match_now
// visibility, attempts to pair the caller with the best open candidate
// for the same event. The primary insert is the only step whose failure
// is surfaced; every downstream step fails open.
func (s *BuddyService) SubmitRequest(ctx context.Context, userID uuid.UUID, body *buddy.CreateRequestBody, smart bool) (*buddy.MatchResponse, error) {
	eventID, err := uuid.Parse(body.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event id: %w", err)
	}

	// Pre-insert existence check, any row counts. Check-then-insert is
	// racy under concurrent submission; known and kept as-is.
	exists, err := s.hasExistingRequest(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing request: %w", err)
	}
	if exists {
		return nil, ErrDuplicateRequest
	}

	request := &buddy.Request{
		ID:               uuid.New(),
		EventID:          eventID,
		UserID:           userID,
		Nickname:         body.Nickname,
		GenderPreference: buddy.GenderPreference(body.GenderPreference),
		Vibe:             buddy.Vibe(body.Vibe),
		Visibility:       buddy.Visibility(body.Visibility),
		Open:             body.Visibility == string(buddy.VisibilityMatchNow),
	}

	if err := s.insertRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create buddy request: %w", err)
	}

	if request.Visibility == buddy.VisibilityMatchNow {
		if resp := s.tryMatch(ctx, request, smart); resp != nil {
			middleware.RecordMatchOutcome("matched")
			return resp, nil
		}
		middleware.RecordMatchOutcome("no_match")
	}

	return &buddy.MatchResponse{
		Success:    true,
		MatchFound: false,
		Message:    "Buddy request created. We'll notify you when someone's looking too!",
	}, nil
}

// tryMatch runs the selection-and-commit flow. A nil return means no
// match was made and the caller's request stays open.
func (s *BuddyService) tryMatch(ctx context.Context, request *buddy.Request, smart bool) *buddy.MatchResponse {
	limit := basicCandidateLimit
	if smart {
		limit = smartCandidateLimit
	}

	candidates, err := s.openCandidates(ctx, request.EventID, request.UserID, limit)
	if err != nil {
		log.Printf("Error searching for buddies: %v", err)
		return nil
	}
	if len(candidates) == 0 {
		return nil
	}

	var best *buddy.Candidate
	bestScore := 0

	if smart {
		requesterProfile := &MatchProfile{
			Vibe:             request.Vibe,
			GenderPreference: request.GenderPreference,
		}
		if bio, interests, err := s.profileData(ctx, request.UserID); err == nil {
			requesterProfile.Bio = bio
			requesterProfile.Interests = interests
		}

		ev, err := s.events.GetEventByID(ctx, request.EventID)
		if err != nil {
			log.Printf("Error fetching event %s for scoring: %v", request.EventID, err)
			ev = &event.Event{ID: request.EventID}
		}

		best, bestScore = s.PickBestCandidate(ctx, requesterProfile, candidates, ev)
		if best == nil || !meetsThreshold(bestScore) {
			return nil
		}
	} else {
		best = firstCompatible(request.GenderPreference, candidates)
		if best == nil {
			return nil
		}
	}

	match, err := s.commitMatch(ctx, request, best)
	if err != nil {
		log.Printf("Error creating buddy match: %v", err)
		return nil
	}

	eventTitle := ""
	if ev, err := s.events.GetEventByID(ctx, request.EventID); err == nil {
		eventTitle = ev.Title
	}
	s.notifyMatch(match.ID, eventTitle, best.Nickname)

	resp := &buddy.MatchResponse{
		Success:    true,
		MatchFound: true,
		Buddy: &buddy.BuddyInfo{
			Nickname: best.Nickname,
			Vibe:     best.Vibe,
		},
		MatchID: &match.ID,
	}
	if smart {
		resp.Buddy.Bio = best.Bio
		resp.Buddy.Interests = best.Interests
		resp.CompatibilityScore = bestScore
	}
	return resp
}

// PickBestCandidate hard-filters then scores each candidate, keeping
// the single highest-scoring one. The comparison is strict greater, so
// the first-seen of equal scores wins.
func (s *BuddyService) PickBestCandidate(ctx context.Context, requester *MatchProfile, candidates []buddy.Candidate, ev *event.Event) (*buddy.Candidate, int) {
	var best *buddy.Candidate
	bestScore := 0

	for i := range candidates {
		candidate := &candidates[i]
		if !utils.GenderPreferencesCompatible(requester.GenderPreference, candidate.GenderPreference) {
			continue
		}

		score := s.scorer.Score(ctx, requester, &MatchProfile{
			Bio:              candidate.Bio,
			Interests:        candidate.Interests,
			Vibe:             candidate.Vibe,
			GenderPreference: candidate.GenderPreference,
		}, ev)

		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}

	return best, bestScore
}

// meetsThreshold gates commits: strictly greater, a score of exactly 60
// does not match.
func meetsThreshold(score int) bool {
	return score > matchThreshold
}

// firstCompatible is the non-scored selection used by the basic
// endpoint: the first candidate passing the gender-preference filter.
func firstCompatible(pref buddy.GenderPreference, candidates []buddy.Candidate) *buddy.Candidate {
	for i := range candidates {
		if utils.GenderPreferencesCompatible(pref, candidates[i].GenderPreference) {
			return &candidates[i]
		}
	}
	return nil
}

// commitMatch records the match and closes both requests. The three
// writes are independent round-trips, not a transaction; a failure
// between them leaves a partially-committed state. Only the match
// insert aborts the flow, the closing updates are logged.
func (s *BuddyService) commitMatch(ctx context.Context, request *buddy.Request, candidate *buddy.Candidate) (*buddy.Match, error) {
	match := &buddy.Match{
		ID:      uuid.New(),
		EventID: request.EventID,
		UserA:   request.UserID,
		UserB:   candidate.UserID,
		Status:  buddy.MatchPending,
	}

	query := `
	INSERT INTO buddy_matches (id, event_id, user_a, user_b, status)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at
	`
	err := s.db.QueryRow(ctx, query, match.ID, match.EventID, match.UserA, match.UserB, match.Status).Scan(&match.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert buddy match: %w", err)
	}

	if _, err := s.db.Exec(ctx, `UPDATE buddy_requests SET open = false WHERE id = $1`, request.ID); err != nil {
		log.Printf("Error closing requester buddy request %s: %v", request.ID, err)
	}
	if _, err := s.db.Exec(ctx, `UPDATE buddy_requests SET open = false WHERE id = $1`, candidate.RequestID); err != nil {
		log.Printf("Error closing candidate buddy request %s: %v", candidate.RequestID, err)
	}

	return match, nil
}

// notifyMatch fires the server-to-server notification fan-out.
// Best-effort: failure is logged and never affects the response
// already owed to the requester.
func (s *BuddyService) notifyMatch(matchID uuid.UUID, eventTitle, buddyName string) {
	payload, err := json.Marshal(buddy.NotifyBody{
		MatchID:    matchID.String(),
		EventTitle: eventTitle,
		BuddyName:  buddyName,
	})
	if err != nil {
		log.Printf("Failed to send notifications: %v", err)
		return
	}

	resp, err := s.client.Post(s.siteURL+"/api/v1/buddy-notify", "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Printf("Failed to send notifications: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Failed to send notifications: buddy-notify returned %d", resp.StatusCode)
	}
}

func (s *BuddyService) hasExistingRequest(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	var id uuid.UUID
	err := s.db.QueryRow(ctx,
		`SELECT id FROM buddy_requests WHERE event_id = $1 AND user_id = $2 LIMIT 1`,
		eventID, userID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *BuddyService) insertRequest(ctx context.Context, request *buddy.Request) error {
	query := `
	INSERT INTO buddy_requests (id, event_id, user_id, nickname, gender_preference, vibe, visibility, open)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at
	`
	return s.db.QueryRow(
		ctx,
		query,
		request.ID,
		request.EventID,
		request.UserID,
		request.Nickname,
		request.GenderPreference,
		request.Vibe,
		request.Visibility,
		request.Open,
	).Scan(&request.CreatedAt)
}

// openCandidates returns open requests for the event, excluding the
// requester, joined with each owner's profile. Order is whatever the
// database returns, capped by limit.
func (s *BuddyService) openCandidates(ctx context.Context, eventID, excludeUserID uuid.UUID, limit int) ([]buddy.Candidate, error) {
	query := `
	SELECT br.id, br.user_id, br.nickname, br.gender_preference, br.vibe,
	       COALESCE(up.bio, ''), COALESCE(up.interests, '{}')
	FROM buddy_requests br
	LEFT JOIN user_profiles up ON up.id = br.user_id
	WHERE br.event_id = $1 AND br.open = true AND br.user_id != $2
	LIMIT $3
	`

	rows, err := s.db.Query(ctx, query, eventID, excludeUserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query open buddy requests: %w", err)
	}
	defer rows.Close()

	var candidates []buddy.Candidate
	for rows.Next() {
		var c buddy.Candidate
		if err := rows.Scan(&c.RequestID, &c.UserID, &c.Nickname, &c.GenderPreference, &c.Vibe, &c.Bio, &c.Interests); err != nil {
			return nil, fmt.Errorf("failed to scan buddy candidate: %w", err)
		}
		candidates = append(candidates, c)
	}

	return candidates, rows.Err()
}

func (s *BuddyService) profileData(ctx context.Context, userID uuid.UUID) (string, []string, error) {
	var bio string
	var interests []string
	err := s.db.QueryRow(ctx,
		`SELECT COALESCE(bio, ''), COALESCE(interests, '{}') FROM user_profiles WHERE id = $1`,
		userID,
	).Scan(&bio, &interests)
	if err != nil {
		return "", nil, err
	}
	return bio, interests, nil
}

// GetMatch looks up a buddy match by id.
func (s *BuddyService) GetMatch(ctx context.Context, matchID uuid.UUID) (*buddy.Match, error) {
	match := &buddy.Match{}
	err := s.db.QueryRow(ctx,
		`SELECT id, event_id, user_a, user_b, status, created_at FROM buddy_matches WHERE id = $1`,
		matchID,
	).Scan(&match.ID, &match.EventID, &match.UserA, &match.UserB, &match.Status, &match.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("match not found")
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return match, nil
}
