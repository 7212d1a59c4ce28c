package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"vitascreen/config"
	"vitascreen/db"
	"vitascreen/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Grants admin access to an existing account:
//
//	go run ./cmd/addadmin -email ops@example.com -role admin
func main() {
	email := flag.String("email", "", "email of the account to promote")
	role := flag.String("role", "admin", "role to assign (admin or moderator)")
	flag.Parse()

	if *email == "" {
		flag.Usage()
		os.Exit(1)
	}
	if *role != "admin" && *role != "moderator" {
		log.Fatalf("Unknown role %q", *role)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admin := models.Admin{
		Email:     *email,
		Role:      *role,
		CreatedAt: time.Now(),
	}
	opts := options.Update().SetUpsert(true)
	_, err = db.MongoDatabase.Collection("admins").UpdateOne(ctx,
		bson.M{"email": *email},
		bson.M{"$set": bson.M{"role": admin.Role}, "$setOnInsert": bson.M{"email": admin.Email, "createdAt": admin.CreatedAt}},
		opts)
	if err != nil {
		log.Fatalf("Failed to add admin: %v", err)
	}

	log.Printf("Granted %s role to %s", *role, *email)
}
