package routes

import (
	"time"

	"vitascreen/controllers"
	"vitascreen/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupAssessmentRoutes sets up the assessment flow routes
func SetupAssessmentRoutes(router *gin.RouterGroup) {
	assessment := router.Group("/assessment")
	{
		assessment.POST("/start",
			middlewares.RateLimitMiddleware("assessment_start", 5, time.Hour),
			controllers.StartAssessment)
		assessment.GET("/:id/next", controllers.NextQuestion)
		assessment.POST("/:id/answer", controllers.SaveAnswer)
		assessment.GET("/:id/progress", controllers.GetProgress)
		assessment.POST("/:id/reset", controllers.ResetAssessment)
		assessment.POST("/:id/complete", controllers.CompleteAssessment)
	}

	// Completed assessments live under their own path to keep the :id
	// parameter tree clean.
	router.GET("/assessments", controllers.GetAssessmentHistory)
}
