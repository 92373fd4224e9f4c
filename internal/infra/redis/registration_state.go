package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"article-hub/internal/domain"
	"article-hub/internal/domain/model"
	"article-hub/internal/domain/ports/repository"
)

var _ repository.RegistrationStateRepository = (*RegistrationStateRepo)(nil)

// RegistrationStateRepo stores signup drafts as JSON under a per-flow key.
// The TTL bounds how long an abandoned wizard lingers.
type RegistrationStateRepo struct {
	client RedisClient
	ttl    time.Duration
}

func NewRegistrationStateRepo(client RedisClient, ttl time.Duration) *RegistrationStateRepo {
	return &RegistrationStateRepo{client: client, ttl: ttl}
}

func draftKey(flowID string) string {
	return fmt.Sprintf("signup_draft:%s", flowID)
}

func (s *RegistrationStateRepo) SetDraft(ctx context.Context, draft *model.RegistrationDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, draftKey(draft.FlowID), data, s.ttl)
}

func (s *RegistrationStateRepo) GetDraft(ctx context.Context, flowID string) (*model.RegistrationDraft, error) {
	data, err := s.client.Get(ctx, draftKey(flowID))
	if err != nil {
		if IsNil(err) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, err
	}

	var draft model.RegistrationDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *RegistrationStateRepo) ClearDraft(ctx context.Context, flowID string) error {
	return s.client.Del(ctx, draftKey(flowID))
}
