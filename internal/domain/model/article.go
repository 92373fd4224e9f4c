package model

import (
	"crypto/rand"
	"strings"
	"time"

	"article-hub/internal/domain"

	"github.com/oklog/ulid/v2"
)

// Article is one content item. Reaction counts are denormalized onto the
// article row; the per-caller IsLiked/IsDisliked/IsBlocked flags live in
// ReactionState and are joined in per request.
type Article struct {
	ID           string
	AuthorID     string
	AuthorName   string
	Title        string
	Description  string
	Content      string
	Category     string
	ImageURL     string
	LikeCount    int
	DislikeCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewArticle mints a ULID identifier so feed ordering falls out of the ID.
func NewArticle(authorID, authorName, title, description, content, category, imageURL string) (*Article, error) {
	if authorID == "" || strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, domain.ErrInvalidArgument
	}
	if !IsKnownTopic(category) {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Article{
		ID:          id.String(),
		AuthorID:    authorID,
		AuthorName:  authorName,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Content:     content,
		Category:    category,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ArticleUpdate is a partial update; nil fields are untouched.
type ArticleUpdate struct {
	Title       *string
	Description *string
	Content     *string
	Category    *string
	ImageURL    *string
}

func (a *Article) Apply(upd ArticleUpdate) error {
	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return domain.ErrInvalidArgument
		}
		a.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.Description != nil {
		a.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Content != nil {
		if strings.TrimSpace(*upd.Content) == "" {
			return domain.ErrInvalidArgument
		}
		a.Content = *upd.Content
	}
	if upd.Category != nil {
		if !IsKnownTopic(*upd.Category) {
			return domain.ErrInvalidArgument
		}
		a.Category = *upd.Category
	}
	if upd.ImageURL != nil {
		a.ImageURL = *upd.ImageURL
	}
	a.UpdatedAt = time.Now()
	return nil
}
