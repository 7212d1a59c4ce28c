package controllers

import (
	"context"
	"net/http"
	"time"

	"vitascreen/db"
	"vitascreen/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetNotifications returns the user's notification feed, newest first
func GetNotifications(c *gin.Context) {
	email := c.GetString("userEmail")

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(50)
	cursor, err := db.NotificationCollection.Find(dbCtx, bson.M{"email": email}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}
	defer cursor.Close(dbCtx)

	notifications := []models.Notification{}
	if err := cursor.All(dbCtx, &notifications); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "unreadCount": unread})
}

// MarkNotificationRead marks one notification as read
func MarkNotificationRead(c *gin.Context) {
	email := c.GetString("userEmail")

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := db.NotificationCollection.UpdateOne(dbCtx,
		bson.M{"_id": id, "email": email},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllNotificationsRead marks the whole feed as read
func MarkAllNotificationsRead(c *gin.Context) {
	email := c.GetString("userEmail")

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.NotificationCollection.UpdateMany(dbCtx,
		bson.M{"email": email, "read": false},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
