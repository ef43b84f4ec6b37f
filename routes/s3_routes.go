package routes

import (
	"github.com/Durjoy96/magiccraft-teammate-finder/controllers"
	"github.com/Durjoy96/magiccraft-teammate-finder/services"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// RegisterS3Routes registers avatar upload routes under `/api/s3`
func RegisterS3Routes(r *mux.Router, s3Service *services.S3Service, logger *zap.Logger) {
	controller := controllers.NewS3Controller(s3Service, logger)

	s3Router := r.PathPrefix("/api/s3").Subrouter()
	s3Router.HandleFunc("/generate-presigned-url", controller.GeneratePresignedURL).Methods("GET")
	s3Router.HandleFunc("/get-read-url", controller.GetReadURL).Methods("GET")
}
