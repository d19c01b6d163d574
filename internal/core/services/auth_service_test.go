package services

import (
	"context"
	"errors"
	"testing"

	"coopfund/internal/adapters/persistence/memory"
	"coopfund/internal/config"
	"coopfund/internal/core/domain"
)

func newAuthService(t *testing.T) (*AuthService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	cfg := &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
	return NewAuthService(store.Users, store.RefreshTokens, cfg), store
}

func TestRegister_DefaultsToMemberRole(t *testing.T) {
	svc, _ := newAuthService(t)

	result, err := svc.Register(context.Background(), &RegisterInput{
		Username: "somchai",
		Password: "secret1234",
		FullName: "Somchai Dee",
		Email:    "somchai@example.org",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.User.Role != domain.RoleMember {
		t.Fatalf("default role: expected member, got %s", result.User.Role)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("expected a token pair")
	}
	if result.User.Password == "secret1234" {
		t.Fatal("password must be stored hashed")
	}
}

func TestRegister_RejectsDuplicateUsername(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	input := &RegisterInput{
		Username: "somchai",
		Password: "secret1234",
		FullName: "Somchai Dee",
		Email:    "somchai@example.org",
	}
	if _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, input); !errors.Is(err, domain.ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), &RegisterInput{
		Username: "somchai",
		Password: "short",
		FullName: "Somchai Dee",
		Email:    "somchai@example.org",
	})
	if !errors.Is(err, domain.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterInput{
		Username: "somchai",
		Password: "secret1234",
		FullName: "Somchai Dee",
		Email:    "somchai@example.org",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Login(ctx, &LoginInput{Username: "somchai", Password: "secret1234"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := svc.ValidateAccessToken(result.AccessToken)
	if err != nil {
		t.Fatalf("validate access token: %v", err)
	}
	if claims.Username != "somchai" || claims.Role != string(domain.RoleMember) {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := svc.Login(ctx, &LoginInput{Username: "somchai", Password: "wrong-pass"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, &LoginInput{Username: "nobody", Password: "whatever"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRefreshToken_RotatesAndRevokesOldToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &RegisterInput{
		Username: "somchai",
		Password: "secret1234",
		FullName: "Somchai Dee",
		Email:    "somchai@example.org",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	refreshed, err := svc.RefreshToken(ctx, registered.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.RefreshToken == registered.RefreshToken {
		t.Fatal("refresh must rotate the refresh token")
	}

	// The spent token is single-use.
	if _, err := svc.RefreshToken(ctx, registered.RefreshToken); !errors.Is(err, domain.ErrTokenRevoked) {
		t.Fatalf("reused token: expected ErrTokenRevoked, got %v", err)
	}

	// The rotated token still works.
	if _, err := svc.RefreshToken(ctx, refreshed.RefreshToken); err != nil {
		t.Fatalf("rotated token refresh: %v", err)
	}
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &RegisterInput{
		Username: "somchai",
		Password: "secret1234",
		FullName: "Somchai Dee",
		Email:    "somchai@example.org",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.Logout(ctx, registered.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.RefreshToken(ctx, registered.RefreshToken); !errors.Is(err, domain.ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked after logout, got %v", err)
	}
}
