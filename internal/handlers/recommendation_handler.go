package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"unipool/internal/services"
	"unipool/internal/utils"
)

type RecommendationHandler struct {
	recommendationService *services.RecommendationService
}

func NewRecommendationHandler(recommendationService *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
	}
}

// GetRecommendations returns campus-bound rides ranked by driver reputation
// and departure proximity.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	rides := h.recommendationService.GetBasicRecommendations(c.Param("user_id"))
	utils.SuccessResponseWithMeta(c, "Recommendations retrieved successfully", rides, &utils.Meta{Count: len(rides)})
}

// GetSmartRecommendations returns the top scored rides within the hour,
// optionally constrained by destination and max_time (minutes) query params.
func (h *RecommendationHandler) GetSmartRecommendations(c *gin.Context) {
	var prefs *services.SmartPreferences

	destination := c.Query("destination")
	maxTimeRaw := c.Query("max_time")
	if destination != "" || maxTimeRaw != "" {
		prefs = &services.SmartPreferences{Destination: destination}
		if maxTimeRaw != "" {
			maxTime, err := strconv.ParseFloat(maxTimeRaw, 64)
			if err != nil || maxTime < 0 {
				utils.BadRequestResponse(c, "max_time must be a non-negative number of minutes")
				return
			}
			prefs.MaxTime = maxTime
		}
	}

	rides := h.recommendationService.GetSmartRecommendations(c.Param("user_id"), prefs)
	utils.SuccessResponseWithMeta(c, "Smart recommendations retrieved successfully", rides, &utils.Meta{Count: len(rides)})
}

// GetPreferences derives the user's preference profile from their booking
// history.
func (h *RecommendationHandler) GetPreferences(c *gin.Context) {
	prefs := h.recommendationService.AnalyzePreferences(c.Param("user_id"))
	utils.SuccessResponse(c, "Preferences analyzed successfully", prefs)
}
