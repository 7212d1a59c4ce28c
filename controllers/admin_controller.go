package controllers

import (
	"context"
	"net/http"
	"time"

	"vitascreen/db"
	"vitascreen/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListContactRequests returns recent contact/demo submissions for admins
func ListContactRequests(c *gin.Context) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if kind := c.Query("kind"); kind != "" {
		filter["kind"] = kind
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(100)
	cursor, err := db.ContactCollection.Find(dbCtx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contact requests"})
		return
	}
	defer cursor.Close(dbCtx)

	requests := []models.ContactRequest{}
	if err := cursor.All(dbCtx, &requests); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contact requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// ListAssessments returns recent completed assessments for admins
func ListAssessments(c *gin.Context) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(100)
	cursor, err := db.AssessmentCollection.Find(dbCtx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assessments"})
		return
	}
	defer cursor.Close(dbCtx)

	records := []models.AssessmentRecord{}
	if err := cursor.All(dbCtx, &records); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assessments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assessments": records})
}
