package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"connectSFUAPI/internal/search"
	"connectSFUAPI/services"
)

type SearchHandler struct {
	searchService *services.SearchService
}

func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// POST /api/v1/gemini-parse - Parse a free-text search query into filters
func (h *SearchHandler) ParseSearchQuery(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var body search.ParseQueryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid query")
		return
	}
	if strings.TrimSpace(body.Query) == "" {
		respondWithError(w, http.StatusBadRequest, "Invalid query")
		return
	}

	filters, err := h.searchService.ParseQuery(ctx, body.Query)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to parse")
		return
	}

	respondWithJSON(w, http.StatusOK, filters)
}
