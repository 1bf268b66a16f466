package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"connectSFUAPI/internal/buddy"
	"connectSFUAPI/internal/notification"
)

// PushProvider delivers a notification to a user's registered devices.
// Satisfied by notification.FCMService.
type PushProvider interface {
	SendPush(ctx context.Context, tokens []notification.DeviceToken, title, body string, data map[string]string) error
}

type NotificationService struct {
	db   *pgxpool.Pool
	push PushProvider
}

func NewNotificationService(db *pgxpool.Pool) *NotificationService {
	return &NotificationService{db: db}
}

// SetPushProvider injects the push channel. Without one, notifications
// are row-only.
func (s *NotificationService) SetPushProvider(p PushProvider) {
	s.push = p
}

// MatchNotificationContent builds the user-facing title and message for
// a buddy match.
func MatchNotificationContent(buddyName, eventTitle string) (string, string) {
	title := "🎉 You've got a buddy!"
	message := fmt.Sprintf("You've been matched with %s for %s! Start chatting to coordinate.", buddyName, eventTitle)
	return title, message
}

// CreateMatchNotifications fans out one notification row per match
// participant, then pushes to devices best-effort. A row insert failure
// is logged, not returned; the match already stands.
func (s *NotificationService) CreateMatchNotifications(ctx context.Context, match *buddy.Match, eventTitle, buddyName string) {
	title, message := MatchNotificationContent(buddyName, eventTitle)
	scheduledAt := time.Now()

	for _, userID := range []uuid.UUID{match.UserA, match.UserB} {
		query := `
		INSERT INTO notifications (id, type, user_id, event_id, title, message, scheduled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err := s.db.Exec(ctx, query,
			uuid.New(), notification.TypeBuddyMatch, userID, match.EventID, title, message, scheduledAt)
		if err != nil {
			log.Printf("Error creating notifications: %v", err)
			continue
		}

		s.pushToUser(ctx, userID, title, message, map[string]string{
			"type":     string(notification.TypeBuddyMatch),
			"match_id": match.ID.String(),
		})
	}
}

func (s *NotificationService) pushToUser(ctx context.Context, userID uuid.UUID, title, body string, data map[string]string) {
	if s.push == nil {
		return
	}

	tokens, err := s.deviceTokens(ctx, userID)
	if err != nil {
		log.Printf("Failed to load device tokens for %s: %v", userID, err)
		return
	}

	if err := s.push.SendPush(ctx, tokens, title, body, data); err != nil {
		log.Printf("Failed to push notification to %s: %v", userID, err)
	}
}

// GetNotifications returns the user's notifications, newest first.
func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID) ([]notification.Notification, error) {
	query := `
	SELECT id, type, user_id, event_id, title, message, scheduled_at, read_at
	FROM notifications
	WHERE user_id = $1
	ORDER BY scheduled_at DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.UserID, &n.EventID, &n.Title, &n.Message, &n.ScheduledAt, &n.ReadAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MarkAsRead stamps read_at for the user's own notification.
func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE notifications SET read_at = NOW() WHERE id = $1 AND user_id = $2 AND read_at IS NULL`,
		notificationID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}

// RegisterDevice upserts a device token for push delivery.
func (s *NotificationService) RegisterDevice(ctx context.Context, userID uuid.UUID, token, platform string) error {
	query := `
	INSERT INTO device_tokens (user_id, token, platform, added_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (user_id, token) DO UPDATE SET platform = EXCLUDED.platform, added_at = NOW()
	`
	if _, err := s.db.Exec(ctx, query, userID, token, platform); err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}
	return nil
}

func (s *NotificationService) deviceTokens(ctx context.Context, userID uuid.UUID) ([]notification.DeviceToken, error) {
	rows, err := s.db.Query(ctx,
		`SELECT token, platform, added_at FROM device_tokens WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []notification.DeviceToken
	for rows.Next() {
		var t notification.DeviceToken
		if err := rows.Scan(&t.Token, &t.Platform, &t.AddedAt); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}

	return tokens, rows.Err()
}
