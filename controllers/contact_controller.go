package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"vitascreen/db"
	"vitascreen/models"
	"vitascreen/services"
	"vitascreen/structs"
	"vitascreen/utils"

	"github.com/gin-gonic/gin"
)

// SubmitContactForm stores a contact form submission and forwards it by email
func SubmitContactForm(c *gin.Context) {
	var req structs.ContactFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	saveContactRequest(c, models.ContactRequest{
		Kind:      "contact",
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		CreatedAt: time.Now(),
	})
}

// SubmitDemoRequest stores a demo request and forwards it by email
func SubmitDemoRequest(c *gin.Context) {
	var req structs.DemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	saveContactRequest(c, models.ContactRequest{
		Kind:         "demo",
		Name:         req.Name,
		Email:        req.Email,
		Organization: req.Organization,
		Message:      req.Message,
		CreatedAt:    time.Now(),
	})
}

func saveContactRequest(c *gin.Context, request models.ContactRequest) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := db.ContactCollection.InsertOne(dbCtx, request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit request"})
		return
	}

	// Email delivery is best effort; the stored request is the system of record.
	if err := utils.SendContactNotification(authConfig, request); err != nil {
		log.Printf("Failed to forward %s request from %s: %v", request.Kind, request.Email, err)
	}
	if err := utils.SendContactAcknowledgement(authConfig, request); err != nil {
		log.Printf("Failed to acknowledge %s request from %s: %v", request.Kind, request.Email, err)
	}

	// Surface the submission in the team inbox's notification feed too.
	notificationType, title, body := contactNotification(request)
	if _, err := services.CreateNotification(authConfig.SMTP.ContactInbox, notificationType, title, body); err != nil {
		log.Printf("Failed to create %s notification for %s: %v", notificationType, request.Email, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Thanks for reaching out. We'll get back to you soon."})
}

// contactNotification builds the admin-feed notification for a stored
// submission. The type is derived from the request kind: "contact_received"
// or "demo_received".
func contactNotification(req models.ContactRequest) (notificationType, title, body string) {
	notificationType = req.Kind + "_received"
	title = fmt.Sprintf("New %s request from %s", req.Kind, req.Name)
	body = fmt.Sprintf("%s <%s> wrote: %s", req.Name, req.Email, req.Message)
	if req.Organization != "" {
		body = fmt.Sprintf("%s <%s> (%s) wrote: %s", req.Name, req.Email, req.Organization, req.Message)
	}
	return notificationType, title, body
}
