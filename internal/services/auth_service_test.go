package services

import (
	"context"
	"errors"
	"testing"

	"eventhub/config"
	"eventhub/internal/repository"
	apperrors "eventhub/pkg/errors"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiryMin: 15}
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterInput{
		Email:       "alice@example.com",
		Username:    "alice",
		Password:    "correct-horse",
		DisplayName: "Alice",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("register did not issue a token")
	}

	claims, err := svc.ParseAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != resp.User.ID.String() {
		t.Errorf("token subject = %s, want %s", claims.UserID, resp.User.ID)
	}

	login, err := svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Errorf("login user = %s, want %s", login.User.ID, resp.User.ID)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{
		Email:    "bob@example.com",
		Username: "bob",
		Password: "the-right-one",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(ctx, LoginInput{Email: "bob@example.com", Password: "guessing"})
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("login with wrong password: got %v, want ErrUnauthorized", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   RegisterInput
		want error
	}{
		{"missing email", RegisterInput{Username: "x", Password: "longenough"}, apperrors.ErrInvalidInput},
		{"short password", RegisterInput{Email: "c@d.com", Username: "x", Password: "short"}, apperrors.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tt.in); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := svc.Register(ctx, RegisterInput{Email: "dup@e.com", Username: "dup", Password: "longenough"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Email: "dup@e.com", Username: "dup2", Password: "longenough"}); !errors.Is(err, apperrors.ErrAlreadyExists) {
		t.Errorf("duplicate email: got %v, want ErrAlreadyExists", err)
	}
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(t)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.ParseAccessToken(token); !errors.Is(err, apperrors.ErrUnauthorized) {
			t.Errorf("ParseAccessToken(%q): got %v, want ErrUnauthorized", token, err)
		}
	}
}
