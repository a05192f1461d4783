package utils

import (
	"testing"
	"time"

	"github.com/inkwellhq/inkwell/config"
)

func TestGenerateAndParseToken(t *testing.T) {
	config.SetForTesting(config.AppConfig{JWTSecret: "test-secret"})

	token, err := GenerateToken(42, "alice", "admin", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseExpiredToken(t *testing.T) {
	config.SetForTesting(config.AppConfig{JWTSecret: "test-secret"})

	token, err := GenerateToken(1, "bob", "user", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken(token); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	config.SetForTesting(config.AppConfig{JWTSecret: "test-secret"})
	token, err := GenerateToken(1, "bob", "user", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	config.SetForTesting(config.AppConfig{JWTSecret: "other-secret"})
	if _, err := ParseToken(token); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}
