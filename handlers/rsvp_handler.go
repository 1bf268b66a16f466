package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"connectSFUAPI/internal/rsvp"
	"connectSFUAPI/middleware"
	"connectSFUAPI/services"
)

type RSVPHandler struct {
	rsvpService    *services.RSVPService
	profileService *services.ProfileService
}

func NewRSVPHandler(rsvpService *services.RSVPService, profileService *services.ProfileService) *RSVPHandler {
	return &RSVPHandler{
		rsvpService:    rsvpService,
		profileService: profileService,
	}
}

// POST /api/v1/rsvp - Record an RSVP and trigger a confirmation email
func (h *RSVPHandler) CreateRSVP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
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

	var body rsvp.CreateRSVPBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if body.EventID == "" || body.Name == "" || body.Email == "" {
		respondWithError(w, http.StatusBadRequest, "Event ID, name, and email are required")
		return
	}

	record, err := h.rsvpService.CreateRSVP(ctx, userID, &body)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create RSVP: "+err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "RSVP submitted successfully! Check your profile for confirmation.",
		"rsvp":    record,
	})
}

// GET /api/v1/rsvps - The caller's confirmed RSVPs with event summaries
func (h *RSVPHandler) GetUserRSVPs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	userID, err := h.profileService.ResolveUserID(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	rsvps, err := h.rsvpService.GetUserRSVPs(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch RSVPs")
		return
	}

	respondWithJSON(w, http.StatusOK, rsvps)
}
