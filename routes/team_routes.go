package routes

import (
	"github.com/Durjoy96/magiccraft-teammate-finder/controllers"
	"github.com/Durjoy96/magiccraft-teammate-finder/services"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// RegisterTeamRoutes registers team request and team routes under `/api/teams`
func RegisterTeamRoutes(r *mux.Router, teamService *services.TeamService, logger *zap.Logger) {
	controller := controllers.NewTeamController(teamService, logger)

	teamRouter := r.PathPrefix("/api/teams").Subrouter()
	teamRouter.HandleFunc("/requests", controller.SendRequest).Methods("POST")
	teamRouter.HandleFunc("/requests/{requestId}/accept", controller.Accept).Methods("POST")
	teamRouter.HandleFunc("/requests/{requestId}/reject", controller.Reject).Methods("POST")
	teamRouter.HandleFunc("/requests/user/{userId}", controller.MyRequests).Methods("GET")
	teamRouter.HandleFunc("/user/{userId}", controller.MyTeams).Methods("GET")
	teamRouter.HandleFunc("/notifications/{userId}", controller.Notifications).Methods("GET")
	teamRouter.HandleFunc("/{teamId}", controller.GetTeam).Methods("GET")
}
