package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/Durjoy96/magiccraft-teammate-finder/services"
	"github.com/Durjoy96/magiccraft-teammate-finder/utils"
	"go.uber.org/zap"
)

// SearchController handles teammate filter searches
type SearchController struct {
	SearchService *services.SearchService
	Logger        *zap.Logger
}

func NewSearchController(searchService *services.SearchService, logger *zap.Logger) *SearchController {
	return &SearchController{SearchService: searchService, Logger: logger}
}

type searchRequest struct {
	RequesterID string `json:"requesterId"`
	services.SearchFilters
}

// Search returns candidate profiles matching the provided filters
func (c *SearchController) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.RequesterID == "" {
		utils.RespondError(w, http.StatusBadRequest, "Requester ID required")
		return
	}

	players, err := c.SearchService.Search(r.Context(), req.RequesterID, req.SearchFilters)
	if err != nil {
		c.Logger.Error("search failed", zap.String("requesterId", req.RequesterID), zap.Error(err))
		respondServiceError(w, err, "Search failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"players": players})
}
