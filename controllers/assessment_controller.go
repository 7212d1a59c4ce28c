package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"vitascreen/config"
	"vitascreen/db"
	"vitascreen/models"
	"vitascreen/services"
	"vitascreen/structs"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	sessionStore  *services.SessionStore
	engineConfig  services.EngineConfig
	textGenerator services.TextGenerator
)

// InitAssessmentController wires the session store and the optional Gemini
// generator. Without an API key the whole flow runs deterministically.
func InitAssessmentController(cfg *config.Config) error {
	generator, err := services.NewGeminiGenerator(cfg)
	if err != nil {
		return err
	}
	if generator == nil {
		log.Println("No Gemini API key configured, assessments run without AI assistance")
	}

	textGenerator = generator
	engineConfig = services.EngineConfigFromApp(cfg)
	sessionStore = services.NewSessionStore(time.Duration(cfg.Assessment.SessionTTL) * time.Minute)
	return nil
}

// StartAssessment creates a session and returns its first question
func StartAssessment(c *gin.Context) {
	email := c.GetString("userEmail")

	sessionId, session := sessionStore.Create(email, engineConfig, textGenerator)
	question := session.NextQuestion(c.Request.Context())

	c.JSON(http.StatusOK, structs.StartAssessmentResponse{
		SessionId: sessionId,
		Question:  question,
		Progress:  session.Progress(),
	})
}

func resolveSession(c *gin.Context) (*services.AssessmentSession, bool) {
	email := c.GetString("userEmail")
	session, ok := sessionStore.Get(c.Param("id"), email)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assessment session not found"})
		return nil, false
	}
	return session, true
}

// NextQuestion returns the next question, or done=true once the flow is complete
func NextQuestion(c *gin.Context) {
	session, ok := resolveSession(c)
	if !ok {
		return
	}

	question := session.NextQuestion(c.Request.Context())
	c.JSON(http.StatusOK, structs.NextQuestionResponse{
		Question: question,
		Done:     question == nil,
		Progress: session.Progress(),
	})
}

// SaveAnswer records one answer against the session
func SaveAnswer(c *gin.Context) {
	session, ok := resolveSession(c)
	if !ok {
		return
	}

	var req structs.SaveAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	session.SaveAnswer(&req.Question, req.Value)
	c.JSON(http.StatusOK, gin.H{"message": "Answer saved", "progress": session.Progress()})
}

// GetProgress returns the completion percentage of a session
func GetProgress(c *gin.Context) {
	session, ok := resolveSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": session.Progress()})
}

// ResetAssessment clears a session back to its initial state
func ResetAssessment(c *gin.Context) {
	session, ok := resolveSession(c)
	if !ok {
		return
	}
	session.Reset()
	c.JSON(http.StatusOK, gin.H{"message": "Assessment reset", "progress": session.Progress()})
}

// CompleteAssessment computes the risk assessment, persists it, and notifies
// the user. The session is discarded afterwards.
func CompleteAssessment(c *gin.Context) {
	email := c.GetString("userEmail")
	session, ok := resolveSession(c)
	if !ok {
		return
	}

	result := session.GenerateRiskAssessment(c.Request.Context())

	record := models.AssessmentRecord{
		Email:     email,
		Answers:   session.Answers(),
		Result:    result,
		CreatedAt: time.Now(),
	}
	assessmentId, err := db.SaveAssessment(record)
	if err != nil {
		// The computed result is still returned; only persistence failed.
		log.Printf("Failed to persist assessment for %s: %v", email, err)
	}

	updateLatestRisk(email, result)
	if _, err := services.CreateNotification(email, "assessment_ready",
		"Your risk assessment is ready",
		"Your screening result has been computed. Open your dashboard to review it."); err != nil {
		log.Printf("Failed to create assessment notification for %s: %v", email, err)
	}

	sessionStore.Delete(c.Param("id"))

	c.JSON(http.StatusOK, structs.CompleteAssessmentResponse{
		AssessmentId: assessmentId,
		Result:       result,
	})
}

func updateLatestRisk(email string, result models.RiskAssessment) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.GetCollection("users").UpdateOne(dbCtx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"latestRiskLevel": result.RiskLevel, "latestRiskScore": result.Score}})
	if err != nil {
		log.Printf("Failed to update latest risk for %s: %v", email, err)
	}
}

// GetAssessmentHistory lists the user's completed assessments
func GetAssessmentHistory(c *gin.Context) {
	email := c.GetString("userEmail")

	records, err := db.GetAssessmentsForUser(email, 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assessments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessments": records})
}
