package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Durjoy96/magiccraft-teammate-finder/services"
	"github.com/stretchr/testify/assert"
)

func TestRespondServiceError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{services.ErrEmailTaken, http.StatusUnprocessableEntity},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrProfileNotFound, http.StatusNotFound},
		{services.ErrInvalidBoostTier, http.StatusBadRequest},
		{services.ErrInsufficientMCRT, http.StatusBadRequest},
		{services.ErrProfileIncomplete, http.StatusBadRequest},
		{services.ErrNoCandidates, http.StatusNotFound},
		{services.ErrMatchingFailed, http.StatusInternalServerError},
		{services.ErrSelfRequest, http.StatusBadRequest},
		{services.ErrDuplicateRequest, http.StatusBadRequest},
		{services.ErrRequestNotFound, http.StatusNotFound},
		{services.ErrRequestNotPending, http.StatusConflict},
		{services.ErrNotReceiver, http.StatusForbidden},
		{services.ErrTeamNotFound, http.StatusNotFound},
		{services.ErrNotTeamMember, http.StatusForbidden},
		{services.ErrEmptyMessage, http.StatusBadRequest},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		respondServiceError(rec, tc.err, "fallback")
		assert.Equal(t, tc.status, rec.Code, "unexpected status for %v", tc.err)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}
}

func TestRespondServiceErrorFallback(t *testing.T) {
	rec := httptest.NewRecorder()
	respondServiceError(rec, errors.New("dynamo connection reset"), "Search failed")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Search failed")
	assert.NotContains(t, rec.Body.String(), "dynamo")
}
