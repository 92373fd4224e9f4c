package repository

import (
	"context"

	"article-hub/internal/domain/model"
)

// RegistrationStateRepository holds in-flight signup drafts keyed by flow
// ID. Drafts expire on their own; Clear is for explicit completion.
type RegistrationStateRepository interface {
	SetDraft(ctx context.Context, draft *model.RegistrationDraft) error
	GetDraft(ctx context.Context, flowID string) (*model.RegistrationDraft, error)
	ClearDraft(ctx context.Context, flowID string) error
}

// VerificationCodeStore keeps the single-use 6-digit codes sent during
// signup, keyed by the email they were issued for.
type VerificationCodeStore interface {
	Put(ctx context.Context, email, code string) error
	// Get returns domain.ErrCodeExpired when no live code exists.
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}
