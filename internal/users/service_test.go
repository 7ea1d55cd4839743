package users

import (
	"context"
	"errors"
	"testing"
)

func TestSignupAndLogin(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	ctx := context.Background()

	user, err := svc.Signup(ctx, SignupInput{
		Email:    "Alice@Example.com",
		Username: "alice",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "correct-horse" {
		t.Fatalf("expected hashed password")
	}

	got, err := svc.Login(ctx, "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, got.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupInput{Email: "a@b.co", Username: "abc", Password: "password1"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	if _, err := svc.Login(ctx, "a@b.co", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	if _, err := svc.Login(context.Background(), "nobody@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupInput{Email: "a@b.co", Username: "first", Password: "password1"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if _, err := svc.Signup(ctx, SignupInput{Email: "a@b.co", Username: "second", Password: "password2"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignupValidation(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	ctx := context.Background()

	cases := []struct {
		name  string
		input SignupInput
	}{
		{"bad email", SignupInput{Email: "not-an-email", Username: "alice", Password: "password1"}},
		{"short username", SignupInput{Email: "a@b.co", Username: "ab", Password: "password1"}},
		{"short password", SignupInput{Email: "a@b.co", Username: "alice", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Signup(ctx, tc.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestGoogleAccountHasNoPasswordLogin(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo}
	ctx := context.Background()

	if err := repo.Upsert(ctx, User{ID: "google:123", Email: "g@example.com", Username: "g"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if _, err := svc.Login(ctx, "g@example.com", "anything"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for passwordless account, got %v", err)
	}
}
