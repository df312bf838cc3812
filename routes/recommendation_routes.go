package routes

import (
	"github.com/gin-gonic/gin"

	"unipool/internal/handlers"
)

// SetupRecommendationRoutes sets up routes for personalized ride ranking
func SetupRecommendationRoutes(r *gin.RouterGroup, recommendationHandler *handlers.RecommendationHandler) {
	recommendations := r.Group("/recommendations")
	{
		recommendations.GET("/:user_id", recommendationHandler.GetRecommendations)
		recommendations.GET("/:user_id/smart", recommendationHandler.GetSmartRecommendations)
		recommendations.GET("/:user_id/preferences", recommendationHandler.GetPreferences)
	}
}
