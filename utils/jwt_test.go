package utils

import (
	"testing"
	"time"

	"voltport/config"
)

func TestGenerateAndExtractToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("user-123", "test@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	id, err := ExtractIDFromToken(token)
	if err != nil {
		t.Fatalf("ExtractIDFromToken failed: %v", err)
	}
	if id != "user-123" {
		t.Fatalf("expected subject user-123, got %s", id)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("user-123", "test@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ExtractIDFromToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("user-123", "test@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	config.AppConfig.JWTSecret = "different-secret"
	if _, err := ExtractIDFromToken(token); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
	config.AppConfig.JWTSecret = "test-secret"
}

func TestHashTokenStable(t *testing.T) {
	a := HashToken("some-token")
	b := HashToken("some-token")
	c := HashToken("other-token")

	if a != b {
		t.Fatal("hashing the same token twice should match")
	}
	if a == c {
		t.Fatal("different tokens should not collide")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}
