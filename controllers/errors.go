package controllers

import (
	"errors"
	"net/http"

	"github.com/Durjoy96/magiccraft-teammate-finder/services"
	"github.com/Durjoy96/magiccraft-teammate-finder/utils"
)

// respondServiceError maps service sentinels to HTTP statuses and short
// messages. Anything unmapped gets the per-endpoint fallback with a 500;
// internal error text stays out of responses.
func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		utils.RespondError(w, http.StatusUnprocessableEntity, "User already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, services.ErrProfileNotFound):
		utils.RespondError(w, http.StatusNotFound, "Profile not found")
	case errors.Is(err, services.ErrInvalidBoostTier):
		utils.RespondError(w, http.StatusBadRequest, "Invalid boost tier")
	case errors.Is(err, services.ErrInsufficientMCRT):
		utils.RespondError(w, http.StatusBadRequest, "Insufficient MCRT balance")
	case errors.Is(err, services.ErrProfileIncomplete):
		utils.RespondError(w, http.StatusBadRequest, "Please complete your profile first")
	case errors.Is(err, services.ErrNoCandidates):
		utils.RespondError(w, http.StatusNotFound, "No players available for matching")
	case errors.Is(err, services.ErrMatchingFailed):
		utils.RespondError(w, http.StatusInternalServerError, "Failed to find smart matches. Please try again.")
	case errors.Is(err, services.ErrSelfRequest):
		utils.RespondError(w, http.StatusBadRequest, "Cannot send request to yourself")
	case errors.Is(err, services.ErrDuplicateRequest):
		utils.RespondError(w, http.StatusBadRequest, "Request already sent")
	case errors.Is(err, services.ErrRequestNotFound):
		utils.RespondError(w, http.StatusNotFound, "Request not found")
	case errors.Is(err, services.ErrRequestNotPending):
		utils.RespondError(w, http.StatusConflict, "Request has already been resolved")
	case errors.Is(err, services.ErrNotReceiver):
		utils.RespondError(w, http.StatusForbidden, "Not authorized")
	case errors.Is(err, services.ErrTeamNotFound):
		utils.RespondError(w, http.StatusNotFound, "Team not found")
	case errors.Is(err, services.ErrNotTeamMember):
		utils.RespondError(w, http.StatusForbidden, "Not a team member")
	case errors.Is(err, services.ErrEmptyMessage):
		utils.RespondError(w, http.StatusBadRequest, "Message content required")
	default:
		utils.RespondError(w, http.StatusInternalServerError, fallback)
	}
}
