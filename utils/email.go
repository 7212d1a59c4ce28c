package utils

import (
	"fmt"
	"net/smtp"

	"vitascreen/config"
	"vitascreen/models"
)

func sendMail(cfg *config.Config, to, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Host)
	msg := []byte(fmt.Sprintf(
		"To: %s\r\n"+
			"From: %s <%s>\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n"+
			"%s\r\n",
		to, cfg.SMTP.SenderName, cfg.SMTP.SenderEmail, subject, htmlBody))

	addr := fmt.Sprintf("%s:%d", cfg.SMTP.Host, cfg.SMTP.Port)
	return smtp.SendMail(addr, auth, cfg.SMTP.SenderEmail, []string{to}, msg)
}

// SendVerificationEmail sends an email with an account verification code
func SendVerificationEmail(cfg *config.Config, email, code string) error {
	body := fmt.Sprintf("<p>Your VitaScreen verification code is: <strong>%s</strong></p>", code)
	if err := sendMail(cfg, email, "Verify Your VitaScreen Account", body); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

// SendPasswordResetEmail sends an email with a password reset code
func SendPasswordResetEmail(cfg *config.Config, email, code string) error {
	body := fmt.Sprintf("<p>Your VitaScreen password reset code is: <strong>%s</strong></p>", code)
	if err := sendMail(cfg, email, "VitaScreen Password Reset", body); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

// SendContactNotification forwards a contact or demo request to the team inbox
func SendContactNotification(cfg *config.Config, req models.ContactRequest) error {
	subject := fmt.Sprintf("New %s request from %s", req.Kind, req.Name)
	body := fmt.Sprintf(
		"<p><strong>Name:</strong> %s</p><p><strong>Email:</strong> %s</p><p><strong>Organization:</strong> %s</p><p><strong>Message:</strong></p><p>%s</p>",
		req.Name, req.Email, req.Organization, req.Message)
	if err := sendMail(cfg, cfg.SMTP.ContactInbox, subject, body); err != nil {
		return fmt.Errorf("failed to forward %s request: %w", req.Kind, err)
	}
	return nil
}

// SendContactAcknowledgement sends a confirmation to the person who submitted the form
func SendContactAcknowledgement(cfg *config.Config, req models.ContactRequest) error {
	subject := "We received your message"
	if req.Kind == "demo" {
		subject = "We received your demo request"
	}
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Thanks for reaching out to VitaScreen. Our team will get back to you within two business days.</p>",
		req.Name)
	if err := sendMail(cfg, req.Email, subject, body); err != nil {
		return fmt.Errorf("failed to send acknowledgement: %w", err)
	}
	return nil
}
