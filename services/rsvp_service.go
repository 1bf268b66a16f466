package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"connectSFUAPI/internal/event"
	"connectSFUAPI/internal/rsvp"
)

type RSVPService struct {
	db     *pgxpool.Pool
	email  *EmailService
	events *EventService
}

func NewRSVPService(db *pgxpool.Pool, email *EmailService, events *EventService) *RSVPService {
	return &RSVPService{db: db, email: email, events: events}
}

// CreateRSVP persists the RSVP and fires a best-effort confirmation
// email. Only the insert failure is surfaced; the email degrades
// silently.
func (s *RSVPService) CreateRSVP(ctx context.Context, userID uuid.UUID, body *rsvp.CreateRSVPBody) (*rsvp.RSVP, error) {
	eventID, err := uuid.Parse(body.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event id: %w", err)
	}

	status := rsvp.Status(body.Status)
	if status == "" {
		status = rsvp.StatusGoing
	}

	record := &rsvp.RSVP{
		ID:                  uuid.New(),
		EventID:             eventID,
		UserID:              userID,
		Name:                body.Name,
		Email:               body.Email,
		Phone:               body.Phone,
		DietaryRestrictions: body.DietaryRestrictions,
		EmergencyContact:    body.EmergencyContact,
		EmergencyPhone:      body.EmergencyPhone,
		FindBuddy:           body.FindBuddy,
		Reminder24h:         body.Reminder24h,
		Reminder2h:          body.Reminder2h,
		Status:              status,
	}

	query := `
	INSERT INTO rsvps (id, event_id, user_id, name, email, phone, dietary_restrictions,
	                   emergency_contact, emergency_phone, find_buddy, reminder_24h, reminder_2h, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	RETURNING created_at, updated_at
	`

	err = s.db.QueryRow(
		ctx,
		query,
		record.ID,
		record.EventID,
		record.UserID,
		record.Name,
		record.Email,
		record.Phone,
		record.DietaryRestrictions,
		record.EmergencyContact,
		record.EmergencyPhone,
		record.FindBuddy,
		record.Reminder24h,
		record.Reminder2h,
		record.Status,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSVP: %w", err)
	}

	go s.sendConfirmation(record)

	return record, nil
}

func (s *RSVPService) sendConfirmation(record *rsvp.RSVP) {
	if s.email == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	eventTitle := record.EventID.String()
	if ev, err := s.events.GetEventByID(ctx, record.EventID); err == nil {
		eventTitle = ev.Title
	}

	if err := s.email.SendRSVPConfirmation(ctx, record.Email, record.Name, eventTitle, record.EventID.String()); err != nil {
		log.Printf("Error sending confirmation email to %s: %v", record.Email, err)
		return
	}
	log.Printf("Confirmation email sent to %s for event %q", record.Email, eventTitle)
}

// GetUserRSVPs returns the caller's "going" RSVPs with a summary of
// each event, newest first.
func (s *RSVPService) GetUserRSVPs(ctx context.Context, userID uuid.UUID) ([]rsvp.WithEvent, error) {
	query := `
	SELECT r.id, r.event_id, r.user_id, r.name, r.email, COALESCE(r.phone, ''),
	       COALESCE(r.dietary_restrictions, ''), COALESCE(r.emergency_contact, ''),
	       COALESCE(r.emergency_phone, ''), r.find_buddy, r.reminder_24h, r.reminder_2h,
	       r.status, r.created_at, r.updated_at,
	       e.id, e.title, e.start_at, e.end_at, e.location_text, e.campus,
	       COALESCE(c.name, '')
	FROM rsvps r
	JOIN events e ON e.id = r.event_id
	LEFT JOIN clubs c ON c.id = e.club_id
	WHERE r.user_id = $1 AND r.status = 'going'
	ORDER BY r.created_at DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query RSVPs: %w", err)
	}
	defer rows.Close()

	var results []rsvp.WithEvent
	for rows.Next() {
		var item rsvp.WithEvent
		var summary event.Summary
		err := rows.Scan(
			&item.ID,
			&item.EventID,
			&item.UserID,
			&item.Name,
			&item.Email,
			&item.Phone,
			&item.DietaryRestrictions,
			&item.EmergencyContact,
			&item.EmergencyPhone,
			&item.FindBuddy,
			&item.Reminder24h,
			&item.Reminder2h,
			&item.Status,
			&item.CreatedAt,
			&item.UpdatedAt,
			&summary.ID,
			&summary.Title,
			&summary.StartAt,
			&summary.EndAt,
			&summary.LocationText,
			&summary.Campus,
			&summary.ClubName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan RSVP: %w", err)
		}
		item.Event = summary
		results = append(results, item)
	}

	return results, rows.Err()
}
