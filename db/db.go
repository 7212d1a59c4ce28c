package db

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"vitascreen/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var MongoClient *mongo.Client
var MongoDatabase *mongo.Database
var AssessmentCollection *mongo.Collection
var NotificationCollection *mongo.Collection
var ContactCollection *mongo.Collection

// GetCollection returns a collection by name
func GetCollection(collectionName string) *mongo.Collection {
	return MongoDatabase.Collection(collectionName)
}

// extractDBName parses the database name from the URI, defaulting to "vitascreen"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "vitascreen"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:] // trim leading '/'
	}
	return "vitascreen"
}

// ConnectMongoDB establishes a connection to MongoDB using the provided URI
func ConnectMongoDB(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	dbName := extractDBName(uri)
	log.Printf("Using database: %s", dbName)

	MongoDatabase = client.Database(dbName)
	AssessmentCollection = MongoDatabase.Collection("assessments")
	NotificationCollection = MongoDatabase.Collection("notifications")
	ContactCollection = MongoDatabase.Collection("contact_requests")
	return nil
}

// SaveAssessment persists a completed assessment record
func SaveAssessment(record models.AssessmentRecord) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := AssessmentCollection.InsertOne(ctx, record)
	if err != nil {
		log.Printf("Error saving assessment: %v", err)
		return "", err
	}
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("internal server error")
	}
	return id.Hex(), nil
}

// GetAssessmentsForUser retrieves a user's completed assessments, newest first
func GetAssessmentsForUser(email string, limit int64) ([]models.AssessmentRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit)
	cursor, err := AssessmentCollection.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.AssessmentRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
