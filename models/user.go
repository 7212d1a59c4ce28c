package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User defines a user entity
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email            string             `bson:"email" json:"email"`
	DisplayName      string             `bson:"displayName" json:"displayName"`
	PasswordHash     string             `bson:"passwordHash,omitempty" json:"-"`
	Verified         bool               `bson:"verified" json:"verified"`
	GoogleSub        string             `bson:"googleSub,omitempty" json:"-"`
	VerificationCode string             `bson:"verificationCode,omitempty" json:"-"`
	ResetCode        string             `bson:"resetCode,omitempty" json:"-"`
	LatestRiskLevel  RiskLevel          `bson:"latestRiskLevel,omitempty" json:"latestRiskLevel,omitempty"`
	LatestRiskScore  int                `bson:"latestRiskScore,omitempty" json:"latestRiskScore,omitempty"`
	AvatarURL        string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}

// Admin defines an administrative account with an RBAC role
type Admin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Role      string             `bson:"role" json:"role"` // "admin" or "moderator"
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
