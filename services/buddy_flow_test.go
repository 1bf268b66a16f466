package services

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"connectSFUAPI/internal/buddy"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if err := godotenv.Load("../.env"); err != nil {
		_ = godotenv.Load()
		log.Println("Warning: .env file not found via godotenv")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set; skipping DB-backed flow test")
	}

	db, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatal(err)
	}
	return db
}

type flowFixture struct {
	db      *pgxpool.Pool
	eventID uuid.UUID
	userA   uuid.UUID
	userB   uuid.UUID
}

func seedFlowFixture(t *testing.T, db *pgxpool.Pool, interestsA, interestsB []string) *flowFixture {
	t.Helper()
	ctx := context.Background()

	f := &flowFixture{
		db:      db,
		eventID: uuid.New(),
		userA:   uuid.New(),
		userB:   uuid.New(),
	}

	_, err := db.Exec(ctx, `
		INSERT INTO events (id, title, description, category, campus, location_text, start_at, end_at, status, is_free, tags)
		VALUES ($1, 'Test Hack Night', 'pair programming evening', 'Technology', 'Burnaby', 'ASB 9898', NOW() + interval '1 day', NOW() + interval '1 day 2 hours', 'active', true, '{tech,social}')`,
		f.eventID)
	if err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}

	for userID, interests := range map[uuid.UUID][]string{f.userA: interestsA, f.userB: interestsB} {
		_, err := db.Exec(ctx,
			`INSERT INTO user_profiles (id, clerk_id, bio, interests) VALUES ($1, $2, 'test bio', $3)`,
			userID, "clerk_test_"+userID.String(), interests)
		if err != nil {
			t.Fatalf("failed to seed profile: %v", err)
		}
	}

	t.Cleanup(func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for _, stmt := range []string{
			`DELETE FROM notifications WHERE event_id = $1`,
			`DELETE FROM buddy_matches WHERE event_id = $1`,
			`DELETE FROM buddy_requests WHERE event_id = $1`,
			`DELETE FROM events WHERE id = $1`,
		} {
			if _, err := db.Exec(cleanupCtx, stmt, f.eventID); err != nil {
				t.Logf("cleanup failed: %v", err)
			}
		}
		for _, userID := range []uuid.UUID{f.userA, f.userB} {
			if _, err := db.Exec(cleanupCtx, `DELETE FROM user_profiles WHERE id = $1`, userID); err != nil {
				t.Logf("cleanup failed: %v", err)
			}
		}
	})

	return f
}

func flowService(db *pgxpool.Pool) *BuddyService {
	// No generator: the scorer falls open to the neutral 50 base, which
	// makes final scores deterministic. The unroutable site URL makes
	// the notify call fail, which must not affect the outcome.
	return NewBuddyService(db, NewScoringService(nil), NewEventService(db, nil), "http://127.0.0.1:1")
}

func requestBody(f *flowFixture, nickname string) *buddy.CreateRequestBody {
	return &buddy.CreateRequestBody{
		EventID:          f.eventID.String(),
		Nickname:         nickname,
		GenderPreference: string(buddy.PreferenceOpen),
		Vibe:             string(buddy.VibeExplore),
		Visibility:       string(buddy.VisibilityMatchNow),
	}
}

func TestBuddyMatchFlow(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	// Two shared interests: 50 neutral + 10 vibe + 10 interests = 70 > 60.
	f := seedFlowFixture(t, db, []string{"hiking", "chess"}, []string{"chess", "hiking"})
	svc := flowService(db)
	ctx := context.Background()

	// 1. First submission finds no candidates and stays open.
	resp, err := svc.SubmitRequest(ctx, f.userB, requestBody(f, "bee"), true)
	if err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	if resp.MatchFound {
		t.Fatal("expected no match with an empty candidate pool")
	}

	var open bool
	if err := db.QueryRow(ctx, `SELECT open FROM buddy_requests WHERE event_id = $1 AND user_id = $2`, f.eventID, f.userB).Scan(&open); err != nil {
		t.Fatalf("failed to read request: %v", err)
	}
	if !open {
		t.Fatal("unmatched match_now request must remain open")
	}

	// 2. Resubmitting for the same event is rejected.
	_, err = svc.SubmitRequest(ctx, f.userB, requestBody(f, "bee"), true)
	if !errors.Is(err, ErrDuplicateRequest) {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}

	// 3. A second user matches and both requests close.
	resp, err = svc.SubmitRequest(ctx, f.userA, requestBody(f, "ay"), true)
	if err != nil {
		t.Fatalf("second user submission failed: %v", err)
	}
	if !resp.MatchFound {
		t.Fatal("expected a match above the threshold")
	}
	if resp.CompatibilityScore != 70 {
		t.Fatalf("expected deterministic score 70, got %d", resp.CompatibilityScore)
	}
	if resp.Buddy == nil || resp.Buddy.Nickname != "bee" {
		t.Fatalf("unexpected buddy: %+v", resp.Buddy)
	}
	if resp.MatchID == nil {
		t.Fatal("match response must carry the match id")
	}

	for _, userID := range []uuid.UUID{f.userA, f.userB} {
		if err := db.QueryRow(ctx, `SELECT open FROM buddy_requests WHERE event_id = $1 AND user_id = $2`, f.eventID, userID).Scan(&open); err != nil {
			t.Fatalf("failed to read request: %v", err)
		}
		if open {
			t.Fatalf("request for %s must be closed after the match", userID)
		}
	}

	var matches int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM buddy_matches WHERE event_id = $1 AND user_a = $2 AND user_b = $3`, f.eventID, f.userA, f.userB).Scan(&matches); err != nil {
		t.Fatalf("failed to count matches: %v", err)
	}
	if matches != 1 {
		t.Fatalf("expected exactly one match row, got %d", matches)
	}
}

func TestBuddyMatchFlowBelowThreshold(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	// No shared interests: 50 neutral + 10 vibe = 60, not strictly
	// above the threshold, so no match.
	f := seedFlowFixture(t, db, []string{"hiking"}, []string{"pottery"})
	svc := flowService(db)
	ctx := context.Background()

	if _, err := svc.SubmitRequest(ctx, f.userB, requestBody(f, "bee"), true); err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	resp, err := svc.SubmitRequest(ctx, f.userA, requestBody(f, "ay"), true)
	if err != nil {
		t.Fatalf("second submission failed: %v", err)
	}
	if resp.MatchFound {
		t.Fatal("score of exactly 60 must not produce a match")
	}

	var openCount int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM buddy_requests WHERE event_id = $1 AND open = true`, f.eventID).Scan(&openCount); err != nil {
		t.Fatalf("failed to count open requests: %v", err)
	}
	if openCount != 2 {
		t.Fatalf("both requests must stay open below the threshold, got %d open", openCount)
	}
}
