package routes

import (
	"time"

	"vitascreen/controllers"
	"vitascreen/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes sets up the public contact and demo request routes
func SetupContactRoutes(router *gin.Engine) {
	router.POST("/contact",
		middlewares.RateLimitMiddleware("contact", 3, 10*time.Minute),
		controllers.SubmitContactForm)
	router.POST("/demo",
		middlewares.RateLimitMiddleware("demo", 3, 10*time.Minute),
		controllers.SubmitDemoRequest)
}
