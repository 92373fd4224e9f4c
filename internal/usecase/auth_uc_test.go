//go:build !integration

package usecase

import (
	"context"
	"testing"
	"time"

	"article-hub/internal/domain"
	"article-hub/internal/domain/model"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func seedUser(t *testing.T, users *memUserRepo, email, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	dob := time.Date(1992, 7, 3, 0, 0, 0, 0, time.UTC)
	u, err := model.NewUser("", "Mira", "Sen", email, "+14155550100", dob, string(hash), []string{"Technology"})
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	if err := users.Save(context.Background(), nil, u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func newTestAuthUC(t *testing.T) (*authUC, *memUserRepo, *memSessionRepo) {
	t.Helper()
	users := newMemUserRepo()
	sessions := newMemSessionRepo()
	logger := zerolog.Nop()
	return NewAuthUseCase(users, sessions, 24*time.Hour, &logger), users, sessions
}

func TestAuthUC_LoginAndRefresh(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc, users, sessions := newTestAuthUC(t)
	seeded := seedUser(t, users, "mira@example.com", "Secret123")

	user, token, err := uc.Login(ctx, "Mira@Example.com", "Secret123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.ID != seeded.ID {
		t.Fatalf("expected user %s got %s", seeded.ID, user.ID)
	}
	if token == "" {
		t.Fatal("expected a refresh token")
	}
	if len(sessions.store) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions.store))
	}

	// Rotation: the old token dies, the new one works.
	_, rotated, err := uc.Refresh(ctx, token)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if rotated == token {
		t.Fatal("refresh must rotate the token")
	}
	if _, _, err := uc.Refresh(ctx, token); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected old token revoked, got %v", err)
	}
	if _, _, err := uc.Refresh(ctx, rotated); err != nil {
		t.Fatalf("rotated token should work: %v", err)
	}
}

func TestAuthUC_LoginWrongCredentials(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc, users, _ := newTestAuthUC(t)
	seedUser(t, users, "mira@example.com", "Secret123")

	if _, _, err := uc.Login(ctx, "mira@example.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := uc.Login(ctx, "nobody@example.com", "Secret123"); err != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthUC_Logout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc, users, sessions := newTestAuthUC(t)
	seedUser(t, users, "mira@example.com", "Secret123")

	_, token, err := uc.Login(ctx, "mira@example.com", "Secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := uc.Logout(ctx, token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(sessions.store) != 0 {
		t.Fatalf("expected no sessions after logout, got %d", len(sessions.store))
	}
	// Idempotent.
	if err := uc.Logout(ctx, token); err != nil {
		t.Fatalf("second Logout: %v", err)
	}
}

func TestAuthUC_RefreshExpiredSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users := newMemUserRepo()
	sessions := newMemSessionRepo()
	logger := zerolog.Nop()
	uc := NewAuthUseCase(users, sessions, time.Millisecond, &logger)
	seedUser(t, users, "mira@example.com", "Secret123")

	_, token, err := uc.Login(ctx, "mira@example.com", "Secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	uc.now = func() time.Time { return time.Now().Add(time.Hour) }
	if _, _, err := uc.Refresh(ctx, token); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected expired session rejected, got %v", err)
	}
	if len(sessions.store) != 0 {
		t.Fatal("expired session should be deleted on rejection")
	}
}

func TestAuthUC_LogoutAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc, users, sessions := newTestAuthUC(t)
	u := seedUser(t, users, "mira@example.com", "Secret123")

	for i := 0; i < 3; i++ {
		if _, _, err := uc.Login(ctx, "mira@example.com", "Secret123"); err != nil {
			t.Fatalf("Login %d: %v", i, err)
		}
	}
	if err := uc.LogoutAll(ctx, u.ID); err != nil {
		t.Fatalf("LogoutAll: %v", err)
	}
	if len(sessions.store) != 0 {
		t.Fatalf("expected all sessions revoked, got %d", len(sessions.store))
	}
}
