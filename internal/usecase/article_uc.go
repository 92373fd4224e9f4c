package usecase

import (
	"context"

	"article-hub/internal/domain"
	"article-hub/internal/domain/model"
	"article-hub/internal/domain/ports/repository"
	"article-hub/internal/infra/logging"
	"article-hub/internal/infra/metrics"
	"article-hub/internal/infra/redis"

	"github.com/rs/zerolog"
)

var _ ArticleUseCase = (*articleUC)(nil)

// ArticleUseCase covers authoring and reading. Every write checks ownership
// here, never in the handler, so the rule holds no matter which surface
// calls in.
type ArticleUseCase interface {
	Create(ctx context.Context, authorID, title, description, content, category, imageURL string) (*model.Article, error)
	Update(ctx context.Context, userID, articleID string, upd model.ArticleUpdate) (*model.Article, error)
	// Delete requires confirm; without it the call fails before touching
	// storage so an accidental request cannot destroy anything.
	Delete(ctx context.Context, userID, articleID string, confirm bool) error
	Get(ctx context.Context, viewerID, articleID string) (*model.ArticleView, error)
	HomeFeed(ctx context.Context, viewerID string, f repository.FeedFilter) ([]model.ArticleView, error)
	MyArticles(ctx context.Context, authorID string) ([]model.ArticleView, error)
}

type articleUC struct {
	articles  repository.ArticleRepository
	reactions repository.ReactionRepository
	users     repository.UserRepository
	cache     *redis.FeedCache
	log       *zerolog.Logger
}

func NewArticleUseCase(
	articles repository.ArticleRepository,
	reactions repository.ReactionRepository,
	users repository.UserRepository,
	cache *redis.FeedCache,
	logger *zerolog.Logger,
) *articleUC {
	return &articleUC{
		articles:  articles,
		reactions: reactions,
		users:     users,
		cache:     cache,
		log:       logger,
	}
}

func (u *articleUC) Create(ctx context.Context, authorID, title, description, content, category, imageURL string) (*model.Article, error) {
	defer logging.TraceDuration(u.log, "ArticleUC.Create")()

	author, err := u.users.FindByID(ctx, repository.NoTX, authorID)
	if err != nil {
		return nil, err
	}
	article, err := model.NewArticle(author.ID, author.FullName(), title, description, content, category, imageURL)
	if err != nil {
		return nil, err
	}
	if err := u.articles.Save(ctx, repository.NoTX, article); err != nil {
		return nil, err
	}
	u.cache.Invalidate(ctx, authorID)
	u.log.Info().Str("article_id", article.ID).Str("author_id", authorID).Msg("article created")
	return article, nil
}

func (u *articleUC) Update(ctx context.Context, userID, articleID string, upd model.ArticleUpdate) (*model.Article, error) {
	defer logging.TraceDuration(u.log, "ArticleUC.Update")()

	article, err := u.articles.FindByID(ctx, repository.NoTX, articleID)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != userID {
		return nil, domain.ErrNotOwner
	}
	if err := article.Apply(upd); err != nil {
		return nil, err
	}
	if err := u.articles.Update(ctx, repository.NoTX, article); err != nil {
		return nil, err
	}
	u.cache.Invalidate(ctx, userID)
	return article, nil
}

func (u *articleUC) Delete(ctx context.Context, userID, articleID string, confirm bool) error {
	defer logging.TraceDuration(u.log, "ArticleUC.Delete")()

	if !confirm {
		return domain.ErrInvalidArgument
	}
	article, err := u.articles.FindByID(ctx, repository.NoTX, articleID)
	if err != nil {
		return err
	}
	if article.AuthorID != userID {
		return domain.ErrNotOwner
	}
	if err := u.articles.Delete(ctx, repository.NoTX, articleID); err != nil {
		return err
	}
	u.cache.Invalidate(ctx, userID)
	metrics.IncArticleDeleted()
	u.log.Info().Str("article_id", articleID).Str("author_id", userID).Msg("article deleted")
	return nil
}

func (u *articleUC) Get(ctx context.Context, viewerID, articleID string) (*model.ArticleView, error) {
	article, err := u.articles.FindByID(ctx, repository.NoTX, articleID)
	if err != nil {
		return nil, err
	}
	state, err := u.reactions.Get(ctx, repository.NoTX, viewerID, articleID)
	if err != nil {
		return nil, err
	}
	return &model.ArticleView{
		Article:  *article,
		Reaction: state,
		IsOwner:  article.AuthorID == viewerID,
	}, nil
}

// HomeFeed serves from the per-viewer cache when it can. Blocked articles
// are stripped after the query, so a block takes effect on the next
// uncached read without a schema-side filter.
func (u *articleUC) HomeFeed(ctx context.Context, viewerID string, f repository.FeedFilter) ([]model.ArticleView, error) {
	defer logging.TraceDuration(u.log, "ArticleUC.HomeFeed")()

	unfiltered := f == repository.FeedFilter{}
	if unfiltered {
		if views, ok := u.cache.Get(ctx, viewerID); ok {
			return model.VisibleArticles(views), nil
		}
	}

	views, err := u.articles.ListFeed(ctx, repository.NoTX, viewerID, f)
	if err != nil {
		return nil, err
	}
	if unfiltered {
		u.cache.Set(ctx, viewerID, views)
	}
	return model.VisibleArticles(views), nil
}

func (u *articleUC) MyArticles(ctx context.Context, authorID string) ([]model.ArticleView, error) {
	defer logging.TraceDuration(u.log, "ArticleUC.MyArticles")()
	return u.articles.ListByAuthor(ctx, repository.NoTX, authorID)
}
