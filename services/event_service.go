package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"connectSFUAPI/internal/cache"
	"connectSFUAPI/internal/event"
)

const eventCacheTTL = 5 * time.Minute

// ErrEventNotFound is returned when no event row exists for the id.
var ErrEventNotFound = errors.New("event not found")

type EventService struct {
	db    *pgxpool.Pool
	cache *cache.RedisCache
}

// NewEventService creates the event read layer. The cache is optional;
// a nil cache means every read goes to the database.
func NewEventService(db *pgxpool.Pool, redisCache *cache.RedisCache) *EventService {
	return &EventService{db: db, cache: redisCache}
}

// GetEvents returns all active events ordered by start time, each with
// its club attached when one exists.
func (s *EventService) GetEvents(ctx context.Context) ([]event.Event, error) {
	query := `
	SELECT e.id, e.club_id, e.title, e.description, e.category, e.campus,
	       e.location_text, e.start_at, e.end_at, e.status, e.is_free, e.cost,
	       e.max_attendees, COALESCE(e.tags, '{}'), e.created_at,
	       c.name, c.logo_url, c.description
	FROM events e
	LEFT JOIN clubs c ON c.id = e.club_id
	WHERE e.status = 'active'
	ORDER BY e.start_at ASC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}

	return events, rows.Err()
}

// GetEventByID reads through the cache. Events are read-only inputs to
// matching, so a short TTL is safe.
func (s *EventService) GetEventByID(ctx context.Context, eventID uuid.UUID) (*event.Event, error) {
	cacheKey := "event:" + eventID.String()

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			ev := &event.Event{}
			if err := json.Unmarshal([]byte(cached), ev); err == nil {
				return ev, nil
			}
		} else if !errors.Is(err, cache.ErrMiss) {
			log.Printf("Event cache read failed for %s: %v", eventID, err)
		}
	}

	query := `
	SELECT e.id, e.club_id, e.title, e.description, e.category, e.campus,
	       e.location_text, e.start_at, e.end_at, e.status, e.is_free, e.cost,
	       e.max_attendees, COALESCE(e.tags, '{}'), e.created_at,
	       c.name, c.logo_url, c.description
	FROM events e
	LEFT JOIN clubs c ON c.id = e.club_id
	WHERE e.id = $1
	`

	row := s.db.QueryRow(ctx, query, eventID)
	ev, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(ev); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, eventCacheTTL); err != nil {
				log.Printf("Event cache write failed for %s: %v", eventID, err)
			}
		}
	}

	return ev, nil
}

func scanEvent(row pgx.Row) (*event.Event, error) {
	ev := &event.Event{}
	var clubName, clubLogo, clubDescription *string

	err := row.Scan(
		&ev.ID,
		&ev.ClubID,
		&ev.Title,
		&ev.Description,
		&ev.Category,
		&ev.Campus,
		&ev.LocationText,
		&ev.StartAt,
		&ev.EndAt,
		&ev.Status,
		&ev.IsFree,
		&ev.Cost,
		&ev.MaxAttendees,
		&ev.Tags,
		&ev.CreatedAt,
		&clubName,
		&clubLogo,
		&clubDescription,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}

	if clubName != nil {
		ev.Club = &event.Club{Name: *clubName}
		if clubLogo != nil {
			ev.Club.LogoURL = *clubLogo
		}
		if clubDescription != nil {
			ev.Club.Description = *clubDescription
		}
	}

	return ev, nil
}
