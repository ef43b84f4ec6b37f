package routes

import (
	"github.com/Durjoy96/magiccraft-teammate-finder/controllers"
	"github.com/Durjoy96/magiccraft-teammate-finder/services"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// RegisterSearchRoutes registers teammate search routes under `/api/search`
func RegisterSearchRoutes(r *mux.Router, searchService *services.SearchService, logger *zap.Logger) {
	controller := controllers.NewSearchController(searchService, logger)

	searchRouter := r.PathPrefix("/api/search").Subrouter()
	searchRouter.HandleFunc("", controller.Search).Methods("POST")
}
