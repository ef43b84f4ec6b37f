package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Durjoy96/magiccraft-teammate-finder/ai"
	"github.com/Durjoy96/magiccraft-teammate-finder/services"
	"github.com/Durjoy96/magiccraft-teammate-finder/utils"
	"go.uber.org/zap"
)

// AIController handles smart matching, bio generation and the chat assistant
type AIController struct {
	MatchService   *services.MatchService
	ProfileService *services.UserProfileService
	ChatService    *services.ChatService
	BioComposer    *ai.BioComposer
	Assistant      *ai.Assistant
	Logger         *zap.Logger
}

func NewAIController(match *services.MatchService, profiles *services.UserProfileService, chat *services.ChatService, bio *ai.BioComposer, assistant *ai.Assistant, logger *zap.Logger) *AIController {
	return &AIController{
		MatchService:   match,
		ProfileService: profiles,
		ChatService:    chat,
		BioComposer:    bio,
		Assistant:      assistant,
		Logger:         logger,
	}
}

type smartMatchRequest struct {
	UserID string `json:"userId"`
}

// SmartMatch ranks candidate teammates for the requesting player
func (c *AIController) SmartMatch(w http.ResponseWriter, r *http.Request) {
	var req smartMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.UserID == "" {
		utils.RespondError(w, http.StatusBadRequest, "User ID required")
		return
	}

	matches, err := c.MatchService.SmartMatch(r.Context(), req.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to find smart matches. Please try again.")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"matches": matches})
}

type bioRequest struct {
	Role            string `json:"role"`
	SkillLevel      string `json:"skillLevel"`
	Playstyle       string `json:"playstyle"`
	ExperienceLevel string `json:"experienceLevel"`
	Region          string `json:"region"`
	LookingFor      string `json:"lookingFor"`
}

// GenerateBio produces three bio drafts in different tones
func (c *AIController) GenerateBio(w http.ResponseWriter, r *http.Request) {
	var req bioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Role == "" || req.SkillLevel == "" || req.Playstyle == "" {
		utils.RespondError(w, http.StatusBadRequest, "Role, skill level and playstyle are required")
		return
	}

	bios, err := c.BioComposer.Generate(r.Context(), ai.BioInput{
		Role:            req.Role,
		SkillLevel:      req.SkillLevel,
		Playstyle:       req.Playstyle,
		ExperienceLevel: req.ExperienceLevel,
		Region:          req.Region,
		LookingFor:      req.LookingFor,
	})
	if err != nil {
		c.Logger.Error("bio generation failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Failed to generate bio. Please try again.")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"bios": bios})
}

type assistantRequest struct {
	UserID  string `json:"userId"`
	TeamID  string `json:"teamId"`
	Command string `json:"command"`
}

// ChatAssistant answers a player command, optionally inside a team chat.
// When a team is given, the command and the reply are persisted as chat
// messages so the whole team sees the exchange.
func (c *AIController) ChatAssistant(w http.ResponseWriter, r *http.Request) {
	var req assistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.UserID == "" || strings.TrimSpace(req.Command) == "" {
		utils.RespondError(w, http.StatusBadRequest, "User ID and command are required")
		return
	}

	ctx := r.Context()

	actx := ai.AssistantContext{}
	if profile, err := c.ProfileService.GetProfile(ctx, req.UserID); err == nil {
		actx.UserProfile = profile
	}

	if req.TeamID != "" {
		if _, err := c.ChatService.SendAICommand(ctx, req.TeamID, req.UserID, req.Command); err != nil {
			respondServiceError(w, err, "Failed to record command")
			return
		}
		members, err := c.ChatService.TeamMembers(ctx, req.TeamID)
		if err == nil {
			actx.TeamMembers = members
		}
	}

	reply, err := c.Assistant.Respond(ctx, req.Command, actx)
	if err != nil {
		c.Logger.Error("assistant failed", zap.String("userId", req.UserID), zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Assistant is unavailable. Please try again.")
		return
	}

	if req.TeamID != "" {
		if _, err := c.ChatService.SendAIResponse(ctx, req.TeamID, reply); err != nil {
			c.Logger.Error("failed to persist assistant reply", zap.String("teamId", req.TeamID), zap.Error(err))
		}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"response": reply})
}
