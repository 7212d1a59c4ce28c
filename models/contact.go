package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactRequest stores a contact form or demo request submission
type ContactRequest struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Kind         string             `bson:"kind" json:"kind"` // "contact" or "demo"
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Organization string             `bson:"organization,omitempty" json:"organization,omitempty"`
	Message      string             `bson:"message" json:"message"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
