package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/Durjoy96/magiccraft-teammate-finder/services"
	"github.com/Durjoy96/magiccraft-teammate-finder/utils"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// TeamController handles team requests, teams and notifications
type TeamController struct {
	TeamService *services.TeamService
	Logger      *zap.Logger
}

func NewTeamController(teamService *services.TeamService, logger *zap.Logger) *TeamController {
	return &TeamController{TeamService: teamService, Logger: logger}
}

type teamRequestPayload struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
}

// SendRequest creates a pending team request
func (c *TeamController) SendRequest(w http.ResponseWriter, r *http.Request) {
	var req teamRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.SenderID == "" || req.ReceiverID == "" {
		utils.RespondError(w, http.StatusBadRequest, "Sender and receiver IDs are required")
		return
	}

	request, err := c.TeamService.SendRequest(r.Context(), req.SenderID, req.ReceiverID)
	if err != nil {
		respondServiceError(w, err, "Failed to send team request")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{"request": request})
}

type respondPayload struct {
	UserID string `json:"userId"`
}

// Accept accepts a pending request and returns the resulting team ID
func (c *TeamController) Accept(w http.ResponseWriter, r *http.Request) {
	c.respond(w, r, true)
}

// Reject declines a pending request
func (c *TeamController) Reject(w http.ResponseWriter, r *http.Request) {
	c.respond(w, r, false)
}

func (c *TeamController) respond(w http.ResponseWriter, r *http.Request, accept bool) {
	requestID := mux.Vars(r)["requestId"]

	var req respondPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.UserID == "" {
		utils.RespondError(w, http.StatusBadRequest, "User ID required")
		return
	}

	teamID, err := c.TeamService.Respond(r.Context(), requestID, req.UserID, accept)
	if err != nil {
		respondServiceError(w, err, "Failed to respond to team request")
		return
	}

	if accept {
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"status": "accepted", "teamId": teamID})
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"status": "rejected"})
}

// MyRequests lists requests sent or received by the user
func (c *TeamController) MyRequests(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	requests, err := c.TeamService.ListRequests(r.Context(), userID)
	if err != nil {
		c.Logger.Error("failed to list requests", zap.String("userId", userID), zap.Error(err))
		respondServiceError(w, err, "Failed to fetch team requests")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

// MyTeams lists the teams the user belongs to
func (c *TeamController) MyTeams(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	teams, err := c.TeamService.ListTeams(r.Context(), userID)
	if err != nil {
		c.Logger.Error("failed to list teams", zap.String("userId", userID), zap.Error(err))
		respondServiceError(w, err, "Failed to fetch teams")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"teams": teams})
}

// GetTeam returns a single team with member details, members only
func (c *TeamController) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID := mux.Vars(r)["teamId"]
	requesterID := r.URL.Query().Get("requesterId")
	if requesterID == "" {
		utils.RespondError(w, http.StatusBadRequest, "Requester ID required")
		return
	}

	team, err := c.TeamService.GetTeam(r.Context(), teamID, requesterID)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch team")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"team": team})
}

// Notifications returns the newest pending requests received by the user
func (c *TeamController) Notifications(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	notifications, err := c.TeamService.Notifications(r.Context(), userID)
	if err != nil {
		c.Logger.Error("failed to fetch notifications", zap.String("userId", userID), zap.Error(err))
		respondServiceError(w, err, "Failed to fetch notifications")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"notifications": notifications})
}
