package repository

import (
	"context"

	"article-hub/internal/domain/model"
)

// FeedFilter narrows and orders a feed query. Zero value means everything,
// newest first.
type FeedFilter struct {
	Search   string // case-insensitive title substring
	Category string // one of model.ArticleTopics, or ""
	SortBy   string // "date" | "likes" | "title"
}

type ArticleRepository interface {
	Save(ctx context.Context, tx Tx, a *model.Article) error
	Update(ctx context.Context, tx Tx, a *model.Article) error
	Delete(ctx context.Context, tx Tx, id string) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Article, error)
	// ListFeed returns all articles with the viewer's reaction state joined
	// in. Blocked filtering is a domain projection, not a query concern.
	ListFeed(ctx context.Context, tx Tx, viewerID string, f FeedFilter) ([]model.ArticleView, error)
	// ListByAuthor returns the author's own articles, blocked included.
	ListByAuthor(ctx context.Context, tx Tx, authorID string) ([]model.ArticleView, error)
}

// ReactionRepository persists per-user reaction rows and keeps the article's
// denormalized counters in step. Implementations perform both writes in the
// caller's transaction.
type ReactionRepository interface {
	Get(ctx context.Context, tx Tx, userID, articleID string) (model.ReactionState, error)
	Set(ctx context.Context, tx Tx, userID, articleID string, s model.ReactionState) error
}
