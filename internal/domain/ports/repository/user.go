package repository

import (
	"context"

	"article-hub/internal/domain/model"
)

type UserRepository interface {
	Save(ctx context.Context, tx Tx, u *model.User) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.User, error)
	FindByEmail(ctx context.Context, tx Tx, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, tx Tx, id, passwordHash string) error
	ReplaceTopics(ctx context.Context, tx Tx, id string, topics []string) error
	CountUsers(ctx context.Context, tx Tx) (int, error)
}
