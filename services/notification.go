package services

import (
	"context"
	"log"
	"time"

	"vitascreen/db"
	"vitascreen/models"
	"vitascreen/websocket"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateNotification stores a notification document and pushes it to the
// user's open websocket connections.
func CreateNotification(email, notificationType, title, body string) (*models.Notification, error) {
	notification := models.Notification{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Type:      notificationType,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := db.NotificationCollection.InsertOne(ctx, notification); err != nil {
		log.Printf("Error saving notification: %v", err)
		return nil, err
	}

	websocket.BroadcastNotification(notification)
	return &notification, nil
}
