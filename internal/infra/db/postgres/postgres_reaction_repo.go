package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"article-hub/internal/domain"
	"article-hub/internal/domain/model"
	"article-hub/internal/domain/ports/repository"
)

var _ repository.ReactionRepository = (*ReactionRepo)(nil)

// ReactionRepo persists per-user reaction rows and mirrors the counters
// onto the article row. Set expects to run inside the caller's transaction
// so the row upsert and the counter update land together.
type ReactionRepo struct {
	pool *pgxpool.Pool
}

func NewReactionRepo(pool *pgxpool.Pool) *ReactionRepo {
	return &ReactionRepo{pool: pool}
}

func (r *ReactionRepo) Get(ctx context.Context, tx repository.Tx, userID, articleID string) (model.ReactionState, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return model.ReactionState{}, err
	}

	const q = `
SELECT COALESCE(r.is_liked, false), COALESCE(r.is_disliked, false), COALESCE(r.is_blocked, false),
       a.like_count, a.dislike_count
  FROM articles a
  LEFT JOIN article_reactions r ON r.article_id = a.id AND r.user_id = $1
 WHERE a.id = $2;
`
	var s model.ReactionState
	if err := ex.QueryRow(ctx, q, userID, articleID).Scan(
		&s.IsLiked, &s.IsDisliked, &s.IsBlocked, &s.LikeCount, &s.DislikeCount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ReactionState{}, domain.ErrNotFound
		}
		return model.ReactionState{}, err
	}
	return s, nil
}

func (r *ReactionRepo) Set(ctx context.Context, tx repository.Tx, userID, articleID string, s model.ReactionState) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}

	const upsert = `
INSERT INTO article_reactions (user_id, article_id, is_liked, is_disliked, is_blocked, updated_at)
VALUES ($1,$2,$3,$4,$5,now())
ON CONFLICT (user_id, article_id) DO UPDATE SET
  is_liked=$3, is_disliked=$4, is_blocked=$5, updated_at=now();
`
	if _, err := ex.Exec(ctx, upsert, userID, articleID, s.IsLiked, s.IsDisliked, s.IsBlocked); err != nil {
		return err
	}

	const counters = `UPDATE articles SET like_count=$2, dislike_count=$3 WHERE id=$1;`
	tag, err := ex.Exec(ctx, counters, articleID, s.LikeCount, s.DislikeCount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
