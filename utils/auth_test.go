package utils

import (
	"strings"
	"testing"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !CheckPasswordHash("correct horse battery staple", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrong password", hash) {
		t.Error("wrong password accepted")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWTToken("650000000000000000000001", "user@example.com")
	if err != nil {
		t.Fatalf("GenerateJWTToken failed: %v", err)
	}

	claims, err := ParseJWTToken(token)
	if err != nil {
		t.Fatalf("ParseJWTToken failed: %v", err)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("email claim = %q", claims.Email)
	}
	if claims.UserID != "650000000000000000000001" {
		t.Errorf("user id claim = %q", claims.UserID)
	}

	valid, email, err := ValidateTokenAndFetchEmail(token)
	if err != nil || !valid || email != "user@example.com" {
		t.Errorf("ValidateTokenAndFetchEmail = (%v, %q, %v)", valid, email, err)
	}
}

func TestParseJWTTokenRejectsTampering(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWTToken("id", "user@example.com")
	if err != nil {
		t.Fatalf("GenerateJWTToken failed: %v", err)
	}

	if _, err := ParseJWTToken(token + "x"); err == nil {
		t.Error("tampered token accepted")
	}
}

func TestGenerateRandomCode(t *testing.T) {
	code := GenerateRandomCode(6)
	if len(code) != 6 {
		t.Fatalf("code length = %d, want 6", len(code))
	}
	for _, c := range code {
		if !strings.ContainsRune("0123456789", c) {
			t.Errorf("non-numeric character %q in code", c)
		}
	}
}

func TestExtractNameFromEmail(t *testing.T) {
	if got := ExtractNameFromEmail("jordan@example.com"); got != "jordan" {
		t.Errorf("got %q, want jordan", got)
	}
	if got := ExtractNameFromEmail("not-an-email"); got != "not-an-email" {
		t.Errorf("got %q, want the input back", got)
	}
}
