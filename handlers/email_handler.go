package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"connectSFUAPI/services"
)

type EmailHandler struct {
	emailService *services.EmailService
}

func NewEmailHandler(emailService *services.EmailService) *EmailHandler {
	return &EmailHandler{emailService: emailService}
}

type sendEmailBody struct {
	To         string `json:"to"`
	Name       string `json:"name"`
	EventTitle string `json:"eventTitle"`
	EventID    string `json:"eventId"`
}

// POST /api/v1/send-email - Send an RSVP confirmation email
func (h *EmailHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if h.emailService == nil {
		respondWithError(w, http.StatusInternalServerError, "Email service is not configured")
		return
	}

	var body sendEmailBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if body.To == "" || body.Name == "" || body.EventTitle == "" {
		respondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if err := h.emailService.SendRSVPConfirmation(ctx, body.To, body.Name, body.EventTitle, body.EventID); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to send email")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Email sent successfully",
	})
}
