package service

import (
	"context"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	user, err := s.users.Register(ctx, RegisterRequest{
		Email:    "trader@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "trader@example.com" {
		t.Errorf("email = %q", user.Email)
	}

	if _, err := s.users.Register(ctx, RegisterRequest{
		Email:    "trader@example.com",
		Password: "whatever",
	}); err == nil {
		t.Error("expected duplicate email error")
	}

	tokens, err := s.users.Login(ctx, LoginRequest{
		Email:    "trader@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tokens.Token == "" || tokens.RefreshToken == "" {
		t.Errorf("tokens = %+v", tokens)
	}

	if _, err := s.users.Login(ctx, LoginRequest{
		Email:    "trader@example.com",
		Password: "wrong",
	}); err == nil {
		t.Error("expected error for wrong password")
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	if _, err := s.users.Register(ctx, RegisterRequest{Email: "trader@example.com", Password: "correct-horse"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	tokens, err := s.users.Login(ctx, LoginRequest{Email: "trader@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	rotated, err := s.users.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.RefreshToken == tokens.RefreshToken {
		t.Error("refresh token was not rotated")
	}

	// The old token died with the rotation
	if _, err := s.users.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: tokens.RefreshToken}); err == nil {
		t.Error("expected error reusing rotated token")
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	if _, err := s.users.Register(ctx, RegisterRequest{Email: "trader@example.com", Password: "correct-horse"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	tokens, err := s.users.Login(ctx, LoginRequest{Email: "trader@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := s.users.Logout(ctx, tokens.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := s.users.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: tokens.RefreshToken}); err == nil {
		t.Error("expected error using revoked token")
	}
}
