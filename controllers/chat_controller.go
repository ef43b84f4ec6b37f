package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/Durjoy96/magiccraft-teammate-finder/services"
	"github.com/Durjoy96/magiccraft-teammate-finder/utils"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ChatController handles team chat messages
type ChatController struct {
	ChatService *services.ChatService
	Logger      *zap.Logger
}

func NewChatController(chatService *services.ChatService, logger *zap.Logger) *ChatController {
	return &ChatController{ChatService: chatService, Logger: logger}
}

type sendMessagePayload struct {
	SenderID string `json:"senderId"`
	Content  string `json:"content"`
}

// SendMessage appends a message to a team chat
func (c *ChatController) SendMessage(w http.ResponseWriter, r *http.Request) {
	teamID := mux.Vars(r)["teamId"]

	var req sendMessagePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.SenderID == "" {
		utils.RespondError(w, http.StatusBadRequest, "Sender ID required")
		return
	}

	message, err := c.ChatService.SendMessage(r.Context(), teamID, req.SenderID, req.Content)
	if err != nil {
		respondServiceError(w, err, "Failed to send message")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{"message": message})
}

// GetMessages returns a team's chat history in chronological order
func (c *ChatController) GetMessages(w http.ResponseWriter, r *http.Request) {
	teamID := mux.Vars(r)["teamId"]
	requesterID := r.URL.Query().Get("requesterId")
	if requesterID == "" {
		utils.RespondError(w, http.StatusBadRequest, "Requester ID required")
		return
	}

	messages, err := c.ChatService.GetMessages(r.Context(), teamID, requesterID)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch messages")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}
