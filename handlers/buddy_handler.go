package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"connectSFUAPI/internal/buddy"
	"connectSFUAPI/middleware"
	"connectSFUAPI/services"
)

// Smart matching scores up to ten candidates with one serial Gemini
// call each, so its budget is far above the usual 5s.
const matchTimeout = 60 * time.Second

type BuddyHandler struct {
	buddyService        *services.BuddyService
	profileService      *services.ProfileService
	notificationService *services.NotificationService
}

func NewBuddyHandler(buddyService *services.BuddyService, profileService *services.ProfileService, notificationService *services.NotificationService) *BuddyHandler {
	return &BuddyHandler{
		buddyService:        buddyService,
		profileService:      profileService,
		notificationService: notificationService,
	}
}

// POST /api/v1/buddy-match - Create a buddy request, rule-based matching only
func (h *BuddyHandler) CreateBuddyMatch(w http.ResponseWriter, r *http.Request) {
	h.handleMatch(w, r, false)
}

// POST /api/v1/buddy-match-smart - Create a buddy request with AI-assisted matching
func (h *BuddyHandler) CreateSmartBuddyMatch(w http.ResponseWriter, r *http.Request) {
	h.handleMatch(w, r, true)
}

func (h *BuddyHandler) handleMatch(w http.ResponseWriter, r *http.Request, smart bool) {
	ctx, cancel := context.WithTimeout(r.Context(), matchTimeout)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	userID, err := h.profileService.ResolveUserID(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Invalid authentication token")
		return
	}

	var body buddy.CreateRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.EventID == "" {
		respondWithError(w, http.StatusBadRequest, "eventId is required")
		return
	}

	response, err := h.buddyService.SubmitRequest(ctx, userID, &body, smart)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateRequest) {
			respondWithError(w, http.StatusBadRequest, "You already have a buddy request for this event")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to create buddy request: "+err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, response)
}

// POST /api/v1/buddy-notify - Internal fan-out after a successful match
func (h *BuddyHandler) NotifyMatch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body buddy.NotifyBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	matchID, err := uuid.Parse(body.MatchID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	match, err := h.buddyService.GetMatch(ctx, matchID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Match not found")
		return
	}

	h.notificationService.CreateMatchNotifications(ctx, match, body.EventTitle, body.BuddyName)

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Notifications sent successfully",
	})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
