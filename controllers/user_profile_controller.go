package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Durjoy96/magiccraft-teammate-finder/services"
	"github.com/Durjoy96/magiccraft-teammate-finder/utils"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// UserProfileController handles registration, login and profile requests
type UserProfileController struct {
	UserProfileService *services.UserProfileService
	Logger             *zap.Logger
}

// NewUserProfileController creates a new instance of UserProfileController
func NewUserProfileController(userProfileService *services.UserProfileService, logger *zap.Logger) *UserProfileController {
	return &UserProfileController{UserProfileService: userProfileService, Logger: logger}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// Register handles new account creation
func (c *UserProfileController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	if req.Email == "" || req.Password == "" || req.Username == "" {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if len(req.Password) < 6 {
		utils.RespondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	profile, err := c.UserProfileService.Register(r.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		c.Logger.Warn("registration failed", zap.Error(err))
		respondServiceError(w, err, "Registration failed")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created",
		"userId":  profile.UserID,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns the caller's profile id
func (c *UserProfileController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	profile, err := c.UserProfileService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err, "Login failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"userId":   profile.UserID,
		"username": profile.Username,
	})
}

// GetPublicProfile returns the private-field-stripped profile view
func (c *UserProfileController) GetPublicProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	profile, err := c.UserProfileService.GetPublicProfile(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch profile")
		return
	}

	utils.RespondJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles the owner editing their profile
func (c *UserProfileController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var update services.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	profile, err := c.UserProfileService.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		c.Logger.Warn("profile update failed", zap.String("userId", userID), zap.Error(err))
		respondServiceError(w, err, "Failed to update profile")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"profile": profile,
	})
}

type boostRequest struct {
	Tier string `json:"tier"`
}

// Boost purchases a profile promotion with MCRT
func (c *UserProfileController) Boost(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var req boostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	receipt, err := c.UserProfileService.Boost(r.Context(), userID, req.Tier)
	if err != nil {
		respondServiceError(w, err, "Failed to boost profile")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Profile boosted successfully",
		"boostedUntil": receipt.BoostedUntil,
		"newBalance":   receipt.NewBalance,
		"tier":         receipt.Tier,
	})
}
