package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"article-hub/internal/domain"
	"article-hub/internal/domain/model"
	"article-hub/internal/domain/ports/repository"
	"article-hub/internal/infra/logging"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var _ AuthUseCase = (*authUC)(nil)

// AuthUseCase owns credential checks and the refresh-session lifecycle.
// Access tokens are minted by the web layer; this layer only decides who
// the caller is and hands out opaque refresh tokens it can later revoke.
type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Refresh(ctx context.Context, refreshToken string) (*model.User, string, error)
	Logout(ctx context.Context, refreshToken string) error
	LogoutAll(ctx context.Context, userID string) error
}

type authUC struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	refreshTTL time.Duration
	log        *zerolog.Logger
	now        func() time.Time
}

func NewAuthUseCase(users repository.UserRepository, sessions repository.SessionRepository, refreshTTL time.Duration, logger *zerolog.Logger) *authUC {
	return &authUC{
		users:      users,
		sessions:   sessions,
		refreshTTL: refreshTTL,
		log:        logger,
		now:        time.Now,
	}
}

// Login verifies the password and opens a refresh session. The same error
// comes back for an unknown email and a wrong password.
func (u *authUC) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	defer logging.TraceDuration(u.log, "AuthUC.Login")()

	user, err := u.users.FindByEmail(ctx, repository.NoTX, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == domain.ErrNotFound {
			// Burn a comparison so timing does not leak which emails exist.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := u.openSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	u.log.Info().Str("user_id", user.ID).Msg("login")
	return user, token, nil
}

// Refresh rotates the refresh token: the presented one is revoked and a new
// session is opened, so a stolen token dies the first time either party
// uses it.
func (u *authUC) Refresh(ctx context.Context, refreshToken string) (*model.User, string, error) {
	defer logging.TraceDuration(u.log, "AuthUC.Refresh")()

	sess, err := u.sessions.FindByTokenHash(ctx, repository.NoTX, hashRefreshToken(refreshToken))
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if u.now().After(sess.ExpiresAt) {
		_ = u.sessions.Delete(ctx, repository.NoTX, sess.ID)
		return nil, "", domain.ErrInvalidCredentials
	}

	user, err := u.users.FindByID(ctx, repository.NoTX, sess.UserID)
	if err != nil {
		return nil, "", err
	}

	if err := u.sessions.Delete(ctx, repository.NoTX, sess.ID); err != nil {
		return nil, "", err
	}
	token, err := u.openSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout revokes the presented refresh token. An already-revoked token is
// not an error; logout is idempotent.
func (u *authUC) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	sess, err := u.sessions.FindByTokenHash(ctx, repository.NoTX, hashRefreshToken(refreshToken))
	if err != nil {
		if err == domain.ErrNotFound {
			return nil
		}
		return err
	}
	return u.sessions.Delete(ctx, repository.NoTX, sess.ID)
}

// LogoutAll revokes every session for the user, used after a password reset.
func (u *authUC) LogoutAll(ctx context.Context, userID string) error {
	return u.sessions.DeleteByUser(ctx, repository.NoTX, userID)
}

func (u *authUC) openSession(ctx context.Context, userID string) (string, error) {
	token, err := newRefreshToken()
	if err != nil {
		return "", err
	}
	now := u.now()
	sess := &repository.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: hashRefreshToken(token),
		ExpiresAt: now.Add(u.refreshTTL),
		CreatedAt: now,
	}
	if err := u.sessions.Save(ctx, repository.NoTX, sess); err != nil {
		return "", err
	}
	return token, nil
}

// dummyHash is a bcrypt hash of a throwaway string, only ever compared
// against to equalize timing on unknown emails.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

func newRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
