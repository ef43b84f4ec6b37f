package routes

import (
	"github.com/Durjoy96/magiccraft-teammate-finder/controllers"
	"github.com/Durjoy96/magiccraft-teammate-finder/services"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// RegisterUserProfileRoutes registers profile-related routes under `/api/profiles`
func RegisterUserProfileRoutes(r *mux.Router, userProfileService *services.UserProfileService, logger *zap.Logger) {
	controller := controllers.NewUserProfileController(userProfileService, logger)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()
	profileRouter.HandleFunc("/register", controller.Register).Methods("POST")
	profileRouter.HandleFunc("/login", controller.Login).Methods("POST")
	profileRouter.HandleFunc("/{userId}", controller.GetPublicProfile).Methods("GET")
	profileRouter.HandleFunc("/{userId}", controller.UpdateProfile).Methods("PATCH")
	profileRouter.HandleFunc("/{userId}/boost", controller.Boost).Methods("POST")
}
