package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"article-hub/internal/domain"
	"article-hub/internal/domain/model"
	"article-hub/internal/domain/ports/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

type ArticleRepo struct {
	pool *pgxpool.Pool
}

func NewArticleRepo(pool *pgxpool.Pool) *ArticleRepo {
	return &ArticleRepo{pool: pool}
}

func (r *ArticleRepo) Save(ctx context.Context, tx repository.Tx, a *model.Article) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO articles (
  id, author_id, author_name, title, description, content, category,
  image_url, like_count, dislike_count, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12);
`
	if _, err := ex.Exec(ctx, q, a.ID, a.AuthorID, a.AuthorName, a.Title, a.Description,
		a.Content, a.Category, a.ImageURL, a.LikeCount, a.DislikeCount, a.CreatedAt, a.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ArticleRepo) Update(ctx context.Context, tx repository.Tx, a *model.Article) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	const q = `
UPDATE articles SET
  title=$2, description=$3, content=$4, category=$5, image_url=$6, updated_at=$7
WHERE id=$1;
`
	tag, err := ex.Exec(ctx, q, a.ID, a.Title, a.Description, a.Content, a.Category, a.ImageURL, a.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ArticleRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	tag, err := ex.Exec(ctx, `DELETE FROM articles WHERE id=$1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const articleColumns = `a.id, a.author_id, a.author_name, a.title, a.description, a.content,
       a.category, a.image_url, a.like_count, a.dislike_count, a.created_at, a.updated_at`

func (r *ArticleRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Article, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	row := ex.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles a WHERE a.id=$1;`, id)
	var a model.Article
	if err := row.Scan(&a.ID, &a.AuthorID, &a.AuthorName, &a.Title, &a.Description, &a.Content,
		&a.Category, &a.ImageURL, &a.LikeCount, &a.DislikeCount, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// feed queries join the viewer's reaction row so the per-caller flags come
// back in one round trip.
const viewColumns = articleColumns + `,
       COALESCE(r.is_liked, false), COALESCE(r.is_disliked, false), COALESCE(r.is_blocked, false)`

func (r *ArticleRepo) ListFeed(ctx context.Context, tx repository.Tx, viewerID string, f repository.FeedFilter) ([]model.ArticleView, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}

	q := `SELECT ` + viewColumns + `
  FROM articles a
  LEFT JOIN article_reactions r ON r.article_id = a.id AND r.user_id = $1
 WHERE 1=1`
	args := []interface{}{viewerID}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		q += fmt.Sprintf(" AND a.title ILIKE $%d", len(args))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		q += fmt.Sprintf(" AND a.category = $%d", len(args))
	}

	switch f.SortBy {
	case "likes":
		q += " ORDER BY a.like_count DESC, a.id DESC"
	case "title":
		q += " ORDER BY a.title ASC"
	default: // "date" and anything unrecognized
		q += " ORDER BY a.created_at DESC, a.id DESC"
	}
	q += ";"

	return r.queryViews(ctx, ex, viewerID, q, args...)
}

func (r *ArticleRepo) ListByAuthor(ctx context.Context, tx repository.Tx, authorID string) ([]model.ArticleView, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	q := `SELECT ` + viewColumns + `
  FROM articles a
  LEFT JOIN article_reactions r ON r.article_id = a.id AND r.user_id = $1
 WHERE a.author_id = $1
 ORDER BY a.created_at DESC, a.id DESC;`
	return r.queryViews(ctx, ex, authorID, q, authorID)
}

func (r *ArticleRepo) queryViews(ctx context.Context, ex executor, viewerID, q string, args ...interface{}) ([]model.ArticleView, error) {
	rows, err := ex.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []model.ArticleView
	for rows.Next() {
		var v model.ArticleView
		if err := rows.Scan(&v.ID, &v.AuthorID, &v.AuthorName, &v.Title, &v.Description, &v.Content,
			&v.Category, &v.ImageURL, &v.LikeCount, &v.DislikeCount, &v.CreatedAt, &v.UpdatedAt,
			&v.Reaction.IsLiked, &v.Reaction.IsDisliked, &v.Reaction.IsBlocked); err != nil {
			return nil, err
		}
		v.Reaction.LikeCount = v.LikeCount
		v.Reaction.DislikeCount = v.DislikeCount
		v.IsOwner = v.AuthorID == viewerID
		views = append(views, v)
	}
	return views, rows.Err()
}
