package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"vitascreen/config"
	"vitascreen/db"
	"vitascreen/models"
	"vitascreen/structs"
	"vitascreen/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"google.golang.org/api/idtoken"
)

var authConfig *config.Config

// InitAuthController stores the loaded config for the auth handlers
func InitAuthController(cfg *config.Config) {
	authConfig = cfg
}

func usersCollection() *mongo.Collection {
	return db.GetCollection("users")
}

// SignUp registers a new account and emails a verification code
func SignUp(ctx *gin.Context) {
	var request structs.SignUpRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := usersCollection().CountDocuments(dbCtx, bson.M{"email": email})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if count > 0 {
		ctx.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}

	hash, err := utils.HashPassword(request.Password)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign up"})
		return
	}

	code := utils.GenerateRandomCode(6)
	user := models.User{
		Email:            email,
		DisplayName:      utils.ExtractNameFromEmail(email),
		PasswordHash:     hash,
		VerificationCode: code,
		CreatedAt:        time.Now(),
	}

	if _, err := usersCollection().InsertOne(dbCtx, user); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign up", "message": err.Error()})
		return
	}

	if err := utils.SendVerificationEmail(authConfig, email, code); err != nil {
		log.Printf("Failed to send verification email to %s: %v", email, err)
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Sign-up successful. Check your email for the verification code."})
}

// VerifyEmail confirms a pending account with the emailed code
func VerifyEmail(ctx *gin.Context) {
	var request structs.VerifyEmailRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := usersCollection().UpdateOne(dbCtx,
		bson.M{"email": email, "verificationCode": request.ConfirmationCode},
		bson.M{"$set": bson.M{"verified": true}, "$unset": bson.M{"verificationCode": ""}})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email"})
		return
	}
	if result.ModifiedCount == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification code"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Email verification successful"})
}

// Login checks credentials and issues a JWT
func Login(ctx *gin.Context) {
	var request structs.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": "Check email and password format"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := usersCollection().FindOne(dbCtx, bson.M{"email": email}).Decode(&user)
	if err != nil || !utils.CheckPasswordHash(request.Password, user.PasswordHash) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to sign in", "message": "Invalid email or password"})
		return
	}
	if !user.Verified {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Email not verified"})
		return
	}

	token, err := utils.GenerateJWTToken(user.ID.Hex(), user.Email)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Sign-in successful", "accessToken": token})
}

// GoogleLogin validates a Google ID token and signs the user in, creating the
// account on first login.
func GoogleLogin(ctx *gin.Context) {
	var request structs.GoogleLoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	payload, err := idtoken.Validate(ctx, request.IdToken, authConfig.Google.ClientId)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token", "message": err.Error()})
		return
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Google token has no email claim"})
		return
	}
	email = strings.ToLower(email)
	name, _ := payload.Claims["name"].(string)
	if name == "" {
		name = utils.ExtractNameFromEmail(email)
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err = usersCollection().FindOne(dbCtx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		user = models.User{
			Email:       email,
			DisplayName: name,
			Verified:    true,
			GoogleSub:   payload.Subject,
			CreatedAt:   time.Now(),
		}
		if _, insertErr := usersCollection().InsertOne(dbCtx, user); insertErr != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			return
		}
		err = usersCollection().FindOne(dbCtx, bson.M{"email": email}).Decode(&user)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			return
		}
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	} else if user.GoogleSub == "" {
		// Link the Google identity to the existing email/password account.
		_, _ = usersCollection().UpdateOne(dbCtx, bson.M{"email": email},
			bson.M{"$set": bson.M{"googleSub": payload.Subject, "verified": true}})
	}

	token, err := utils.GenerateJWTToken(user.ID.Hex(), user.Email)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Sign-in successful", "accessToken": token})
}

// ForgotPassword emails a password reset code
func ForgotPassword(ctx *gin.Context) {
	var request structs.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": "Check email format"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))
	code := utils.GenerateRandomCode(6)

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := usersCollection().UpdateOne(dbCtx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"resetCode": code}})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initiate password reset"})
		return
	}

	// Same response whether or not the account exists.
	if result.MatchedCount > 0 {
		if err := utils.SendPasswordResetEmail(authConfig, email, code); err != nil {
			log.Printf("Failed to send password reset email to %s: %v", email, err)
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password reset initiated. Check your email for further instructions."})
}

// VerifyForgotPassword sets a new password given a valid reset code
func VerifyForgotPassword(ctx *gin.Context) {
	var request structs.VerifyForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))

	hash, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm password reset"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := usersCollection().UpdateOne(dbCtx,
		bson.M{"email": email, "resetCode": request.Code},
		bson.M{"$set": bson.M{"passwordHash": hash}, "$unset": bson.M{"resetCode": ""}})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm password reset"})
		return
	}
	if result.ModifiedCount == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reset code"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password successfully changed"})
}

// VerifyToken reports whether a bearer token is valid
func VerifyToken(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token format"})
		return
	}

	valid, _, err := utils.ValidateTokenAndFetchEmail(tokenParts[1])
	if err != nil || !valid {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Token is valid"})
}
