package routes

import (
	"vitascreen/controllers"

	"github.com/gin-gonic/gin"
)

// SetupNotificationRoutes sets up the notification feed routes
func SetupNotificationRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/notifications")
	{
		notifications.GET("", controllers.GetNotifications)
		// PUT on the collection marks the whole feed as read.
		notifications.PUT("", controllers.MarkAllNotificationsRead)
		notifications.PUT("/:id/read", controllers.MarkNotificationRead)
	}
}
