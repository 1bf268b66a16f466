package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateBuddyMatchRequiresAuthContext(t *testing.T) {
	h := NewBuddyHandler(nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/buddy-match", strings.NewReader(`{"eventId": "x"}`))
	rec := httptest.NewRecorder()

	h.CreateBuddyMatch(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not authenticated")
}

func TestNotifyMatchRejectsInvalidBody(t *testing.T) {
	h := NewBuddyHandler(nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/buddy-notify", strings.NewReader("{"))
	rec := httptest.NewRecorder()

	h.NotifyMatch(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotifyMatchRejectsInvalidMatchID(t *testing.T) {
	h := NewBuddyHandler(nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/buddy-notify", strings.NewReader(`{"matchId": "not-a-uuid"}`))
	rec := httptest.NewRecorder()

	h.NotifyMatch(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid match ID")
}
