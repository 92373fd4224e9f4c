package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// LegacyArticleRecord is the duck-typed shape older exports and the mock
// dataset use: identity may be `_id` or `id` (string or number), the body
// may be `content` or `description`, the image `image` or `imageUrl`.
// NormalizeLegacyArticle maps it onto a well-formed Article or fails loudly;
// nothing downstream ever sees a half-defaulted record.
type LegacyArticleRecord struct {
	MongoID     string          `json:"_id"`
	ID          json.RawMessage `json:"id"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Author      string          `json:"author"`
	CreatedAt   string          `json:"createdAt"`
	Date        string          `json:"date"`
	Image       string          `json:"image"`
	ImageURL    string          `json:"imageUrl"`
	Likes       int             `json:"likes"`
	Dislikes    int             `json:"dislikes"`
}

// NormalizeLegacyArticle converts one legacy record. Records without a
// resolvable identity, title or body are rejected with a descriptive error
// so importers can report or skip them explicitly.
func NormalizeLegacyArticle(rec LegacyArticleRecord, authorID string) (*Article, error) {
	id, err := legacyIdentity(rec)
	if err != nil {
		return nil, err
	}

	if rec.Title == "" {
		return nil, fmt.Errorf("legacy article %s: missing title", id)
	}
	body := rec.Content
	if body == "" {
		body = rec.Description
	}
	if body == "" {
		return nil, fmt.Errorf("legacy article %s: missing content", id)
	}

	image := rec.Image
	if image == "" {
		image = rec.ImageURL
	}

	category := rec.Category
	if !IsKnownTopic(category) {
		return nil, fmt.Errorf("legacy article %s: unknown category %q", id, category)
	}

	created := time.Now()
	for _, raw := range []string{rec.CreatedAt, rec.Date} {
		if raw == "" {
			continue
		}
		if t, perr := parseLegacyDate(raw); perr == nil {
			created = t
			break
		}
	}

	likes, dislikes := rec.Likes, rec.Dislikes
	if likes < 0 {
		likes = 0
	}
	if dislikes < 0 {
		dislikes = 0
	}

	return &Article{
		ID:           id,
		AuthorID:     authorID,
		AuthorName:   rec.Author,
		Title:        rec.Title,
		Description:  rec.Description,
		Content:      body,
		Category:     category,
		ImageURL:     image,
		LikeCount:    likes,
		DislikeCount: dislikes,
		CreatedAt:    created,
		UpdatedAt:    created,
	}, nil
}

// legacyIdentity resolves `_id` (opaque string) or `id` (number or string)
// to a single opaque identifier.
func legacyIdentity(rec LegacyArticleRecord) (string, error) {
	if rec.MongoID != "" {
		return rec.MongoID, nil
	}
	if len(rec.ID) == 0 {
		return "", fmt.Errorf("legacy article: missing identity")
	}
	var n int64
	if err := json.Unmarshal(rec.ID, &n); err == nil {
		if n <= 0 {
			return "", fmt.Errorf("legacy article: non-positive numeric id %d", n)
		}
		return "legacy-" + strconv.FormatInt(n, 10), nil
	}
	var s string
	if err := json.Unmarshal(rec.ID, &s); err == nil && s != "" {
		return s, nil
	}
	return "", fmt.Errorf("legacy article: unparseable id %s", string(rec.ID))
}

func parseLegacyDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}
