package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"connectSFUAPI/services"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// GET /api/v1/events - List active events, soonest first
func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	events, err := h.eventService.GetEvents(ctx)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	respondWithJSON(w, http.StatusOK, events)
}

// GET /api/v1/events/{id} - Single event read-through
func (h *EventHandler) GetEventByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	vars := mux.Vars(r)
	eventID, err := uuid.Parse(vars["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	event, err := h.eventService.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			respondWithError(w, http.StatusNotFound, "Event not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}

	respondWithJSON(w, http.StatusOK, event)
}
