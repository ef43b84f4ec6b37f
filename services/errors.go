package services

import "errors"

// Caller-visible outcomes. Controllers map these to HTTP statuses and
// short messages; store and upstream detail never crosses the boundary.
var (
	// profiles
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrInvalidBoostTier   = errors.New("invalid boost tier")
	ErrInsufficientMCRT   = errors.New("insufficient MCRT balance")

	// matching
	ErrProfileIncomplete = errors.New("profile incomplete")
	ErrNoCandidates      = errors.New("no players available for matching")
	ErrMatchingFailed    = errors.New("failed to find matches")

	// team formation
	ErrSelfRequest       = errors.New("cannot send request to yourself")
	ErrDuplicateRequest  = errors.New("request already sent")
	ErrRequestNotFound   = errors.New("request not found")
	ErrRequestNotPending = errors.New("request is not pending")
	ErrNotReceiver       = errors.New("not the receiver of this request")
	ErrTeamNotFound      = errors.New("team not found")
	ErrNotTeamMember     = errors.New("not a team member")

	// messaging
	ErrEmptyMessage = errors.New("message content required")
)
