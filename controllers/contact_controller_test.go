package controllers

import (
	"strings"
	"testing"

	"vitascreen/models"
)

func TestContactNotificationTypes(t *testing.T) {
	tests := []struct {
		name     string
		request  models.ContactRequest
		wantType string
	}{
		{
			name: "contact form",
			request: models.ContactRequest{
				Kind:    "contact",
				Name:    "Dana",
				Email:   "dana@example.com",
				Message: "How does pricing work?",
			},
			wantType: "contact_received",
		},
		{
			name: "demo request",
			request: models.ContactRequest{
				Kind:         "demo",
				Name:         "Sam",
				Email:        "sam@example.com",
				Organization: "Acme Clinic",
				Message:      "We'd like a walkthrough.",
			},
			wantType: "demo_received",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notificationType, title, body := contactNotification(tt.request)

			if notificationType != tt.wantType {
				t.Errorf("type = %q, want %q", notificationType, tt.wantType)
			}
			if !strings.Contains(title, tt.request.Name) {
				t.Errorf("title %q missing submitter name", title)
			}
			for _, fragment := range []string{tt.request.Email, tt.request.Message} {
				if !strings.Contains(body, fragment) {
					t.Errorf("body %q missing %q", body, fragment)
				}
			}
			if tt.request.Organization != "" && !strings.Contains(body, tt.request.Organization) {
				t.Errorf("body %q missing organization", body)
			}
		})
	}
}
