package repository

import (
	"context"
	"time"
)

// Session is one refresh-token grant. Access tokens are stateless JWTs;
// refresh tokens are persisted so logout and rotation can revoke them.
type Session struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type SessionRepository interface {
	Save(ctx context.Context, tx Tx, s *Session) error
	FindByTokenHash(ctx context.Context, tx Tx, hash string) (*Session, error)
	Delete(ctx context.Context, tx Tx, id string) error
	DeleteByUser(ctx context.Context, tx Tx, userID string) error
	// PurgeExpired removes sessions past their expiry; returns rows removed.
	PurgeExpired(ctx context.Context, tx Tx, now time.Time) (int, error)
}
