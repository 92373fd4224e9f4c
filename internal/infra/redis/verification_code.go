package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"article-hub/internal/domain"
	"article-hub/internal/domain/ports/repository"
)

var _ repository.VerificationCodeStore = (*VerificationCodeStore)(nil)

// VerificationCodeStore keeps single-use signup codes keyed by email.
// Expiry is enforced by the key TTL; a missing key means expired (or never
// issued), which callers treat the same way.
type VerificationCodeStore struct {
	client RedisClient
	ttl    time.Duration
}

func NewVerificationCodeStore(client RedisClient, ttl time.Duration) *VerificationCodeStore {
	return &VerificationCodeStore{client: client, ttl: ttl}
}

func codeKey(email string) string {
	return fmt.Sprintf("signup_code:%s", strings.ToLower(strings.TrimSpace(email)))
}

func (s *VerificationCodeStore) Put(ctx context.Context, email, code string) error {
	return s.client.Set(ctx, codeKey(email), code, s.ttl)
}

func (s *VerificationCodeStore) Get(ctx context.Context, email string) (string, error) {
	code, err := s.client.Get(ctx, codeKey(email))
	if err != nil {
		if IsNil(err) {
			return "", domain.ErrCodeExpired
		}
		return "", err
	}
	return code, nil
}

func (s *VerificationCodeStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, codeKey(email))
}
