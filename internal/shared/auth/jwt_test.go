package auth

import (
	"testing"
	"time"
)

func TestSignAndVerifyToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := SignToken("user-1", "user@example.com", time.Hour)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	claims, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("expected subject user-1, got %s", claims.Subject)
	}
	if claims.Email != "user@example.com" {
		t.Fatalf("expected email user@example.com, got %s", claims.Email)
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := SignToken("user-1", "user@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	if _, err := VerifyToken(token); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestVerifyTokenRejectsTampered(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := SignToken("user-1", "user@example.com", time.Hour)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := VerifyToken(tampered); err == nil {
		t.Fatalf("expected error for tampered token")
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := SignToken("user-1", "user@example.com", time.Hour)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	t.Setenv("JWT_SECRET", "other-secret")
	if _, err := VerifyToken(token); err == nil {
		t.Fatalf("expected error for token signed with a different secret")
	}
}
