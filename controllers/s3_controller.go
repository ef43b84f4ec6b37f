package controllers

import (
	"net/http"

	"github.com/Durjoy96/magiccraft-teammate-finder/services"
	"github.com/Durjoy96/magiccraft-teammate-finder/utils"
	"go.uber.org/zap"
)

// S3Controller hands out presigned URLs for avatar uploads
type S3Controller struct {
	S3Service *services.S3Service
	Logger    *zap.Logger
}

func NewS3Controller(s3Service *services.S3Service, logger *zap.Logger) *S3Controller {
	return &S3Controller{S3Service: s3Service, Logger: logger}
}

// GeneratePresignedURL returns a short-lived upload URL for an avatar image
func (c *S3Controller) GeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	fileName := r.URL.Query().Get("fileName")
	fileType := r.URL.Query().Get("fileType")
	if fileName == "" || fileType == "" {
		utils.RespondError(w, http.StatusBadRequest, "fileName and fileType are required")
		return
	}

	url, key, err := c.S3Service.GenerateUploadURL(r.Context(), fileName, fileType)
	if err != nil {
		c.Logger.Error("failed to presign upload", zap.String("fileName", fileName), zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Failed to generate upload URL")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"uploadURL": url, "key": key})
}

// GetReadURL returns a short-lived download URL for a stored object
func (c *S3Controller) GetReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		utils.RespondError(w, http.StatusBadRequest, "key is required")
		return
	}

	url, err := c.S3Service.GenerateReadURL(r.Context(), key)
	if err != nil {
		c.Logger.Error("failed to presign read", zap.String("key", key), zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Failed to generate read URL")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"url": url})
}
