package routes

import (
	"vitascreen/controllers"
	"vitascreen/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes sets up admin routes behind admin auth and RBAC checks
func SetupAdminRoutes(router *gin.Engine) {
	admin := router.Group("/admin")
	admin.Use(middlewares.AdminAuthMiddleware())
	{
		admin.GET("/contacts",
			middlewares.RBACMiddleware("contacts", "read"),
			controllers.ListContactRequests)
		admin.GET("/assessments",
			middlewares.RBACMiddleware("assessments", "read"),
			controllers.ListAssessments)
	}
}
