package routes

import (
	"time"

	"github.com/Durjoy96/magiccraft-teammate-finder/ai"
	"github.com/Durjoy96/magiccraft-teammate-finder/controllers"
	"github.com/Durjoy96/magiccraft-teammate-finder/middleware"
	"github.com/Durjoy96/magiccraft-teammate-finder/services"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// RegisterAIRoutes registers smart match, bio and assistant routes under `/api/ai`.
// All routes share a per-user rate limit since each call spends LLM tokens.
func RegisterAIRoutes(r *mux.Router, matchService *services.MatchService, profileService *services.UserProfileService, chatService *services.ChatService, bio *ai.BioComposer, assistant *ai.Assistant, requestsPerMinute int, logger *zap.Logger) {
	controller := controllers.NewAIController(matchService, profileService, chatService, bio, assistant, logger)

	aiRouter := r.PathPrefix("/api/ai").Subrouter()
	limiter := middleware.NewKeyedRateLimiter(requestsPerMinute, time.Minute, requestsPerMinute, 10*time.Minute)
	aiRouter.Use(middleware.RateLimit(limiter))

	aiRouter.HandleFunc("/smart-match", controller.SmartMatch).Methods("POST")
	aiRouter.HandleFunc("/generate-bio", controller.GenerateBio).Methods("POST")
	aiRouter.HandleFunc("/chat-assistant", controller.ChatAssistant).Methods("POST")
}
