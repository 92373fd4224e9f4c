package usecase

import (
	"context"

	"article-hub/internal/domain"
	"article-hub/internal/domain/model"
	"article-hub/internal/domain/ports/repository"
	"article-hub/internal/infra/logging"
	"article-hub/internal/infra/metrics"
	"article-hub/internal/infra/redis"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
)

var _ ReactionUseCase = (*reactionUC)(nil)

// ReactionUseCase applies like, dislike and block actions. The stored state
// is authoritative: the transition runs against what the database holds at
// that moment, not against whatever the client last rendered, and the row
// plus the article counters move in one transaction.
type ReactionUseCase interface {
	React(ctx context.Context, userID, articleID string, kind model.ReactionKind) (model.ReactionState, error)
}

type reactionUC struct {
	reactions repository.ReactionRepository
	articles  repository.ArticleRepository
	tm        repository.TransactionManager
	cache     *redis.FeedCache
	log       *zerolog.Logger
}

func NewReactionUseCase(
	reactions repository.ReactionRepository,
	articles repository.ArticleRepository,
	tm repository.TransactionManager,
	cache *redis.FeedCache,
	logger *zerolog.Logger,
) *reactionUC {
	return &reactionUC{
		reactions: reactions,
		articles:  articles,
		tm:        tm,
		cache:     cache,
		log:       logger,
	}
}

func (u *reactionUC) React(ctx context.Context, userID, articleID string, kind model.ReactionKind) (model.ReactionState, error) {
	defer logging.TraceDuration(u.log, "ReactionUC.React")()

	if !kind.Valid() {
		return model.ReactionState{}, domain.ErrInvalidArgument
	}

	var next model.ReactionState
	txOpts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead}
	err := u.tm.WithTx(ctx, txOpts, func(ctx context.Context, tx repository.Tx) error {
		article, err := u.articles.FindByID(ctx, tx, articleID)
		if err != nil {
			return err
		}
		if article.AuthorID == userID {
			// Authors cannot react to their own articles.
			return domain.ErrInvalidArgument
		}

		current, err := u.reactions.Get(ctx, tx, userID, articleID)
		if err != nil {
			return err
		}

		switch kind {
		case model.ReactionLike:
			next = model.ApplyLike(current)
		case model.ReactionDislike:
			next = model.ApplyDislike(current)
		case model.ReactionBlock:
			next = model.ApplyBlock(current)
		}

		return u.reactions.Set(ctx, tx, userID, articleID, next)
	})
	if err != nil {
		return model.ReactionState{}, err
	}

	u.cache.Invalidate(ctx, userID)
	metrics.IncReaction(string(kind))
	return next, nil
}
