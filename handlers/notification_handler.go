package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"connectSFUAPI/internal/notification"
	"connectSFUAPI/middleware"
	"connectSFUAPI/services"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
	profileService      *services.ProfileService
}

func NewNotificationHandler(notificationService *services.NotificationService, profileService *services.ProfileService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		profileService:      profileService,
	}
}

// GET /api/v1/notifications - Get user's notifications, newest first
func (h *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := h.resolveCaller(ctx, w)
	if !ok {
		return
	}

	notifications, err := h.notificationService.GetNotifications(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, notifications)
}

// PUT /api/v1/notifications/{id}/read - Mark notification as read
func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := h.resolveCaller(ctx, w)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	notificationID, err := uuid.Parse(vars["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if err := h.notificationService.MarkAsRead(ctx, notificationID, userID); err != nil {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

// POST /api/v1/notifications/register-device - Register device token for push notifications
func (h *NotificationHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := h.resolveCaller(ctx, w)
	if !ok {
		return
	}

	var body notification.RegisterDeviceBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Token == "" {
		respondWithError(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := h.notificationService.RegisterDevice(ctx, userID, body.Token, body.Platform); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to register device")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Device registered successfully"})
}

func (h *NotificationHandler) resolveCaller(ctx context.Context, w http.ResponseWriter) (uuid.UUID, bool) {
	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return uuid.Nil, false
	}

	userID, err := h.profileService.ResolveUserID(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "User not found")
		return uuid.Nil, false
	}

	return userID, true
}
