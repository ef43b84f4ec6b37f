package routes

import (
	"github.com/Durjoy96/magiccraft-teammate-finder/controllers"
	"github.com/Durjoy96/magiccraft-teammate-finder/services"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// RegisterChatRoutes registers team chat routes under `/api/chat`
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService, logger *zap.Logger) {
	controller := controllers.NewChatController(chatService, logger)

	chatRouter := r.PathPrefix("/api/chat").Subrouter()
	chatRouter.HandleFunc("/{teamId}/messages", controller.SendMessage).Methods("POST")
	chatRouter.HandleFunc("/{teamId}/messages", controller.GetMessages).Methods("GET")
}
