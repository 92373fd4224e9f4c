//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"article-hub/internal/domain"
	"article-hub/internal/domain/model"
	"article-hub/internal/domain/ports/repository"
)

func seedAuthor(t *testing.T, email string) *model.User {
	t.Helper()
	u := testUser(t, email)
	if err := NewUserRepo(testPool, testEncryption(t)).Save(context.Background(), nil, u); err != nil {
		t.Fatalf("seed author: %v", err)
	}
	return u
}

func seedArticle(t *testing.T, author *model.User, title, category string) *model.Article {
	t.Helper()
	a, err := model.NewArticle(author.ID, author.FullName(), title, "", "Body text", category, "")
	if err != nil {
		t.Fatalf("model.NewArticle() failed: %v", err)
	}
	if err := NewArticleRepo(testPool).Save(context.Background(), nil, a); err != nil {
		t.Fatalf("seed article: %v", err)
	}
	return a
}

func TestArticleRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	repo := NewArticleRepo(testPool)
	ctx := context.Background()

	t.Run("should perform full CRUD cycle", func(t *testing.T) {
		cleanup(t)
		author := seedAuthor(t, "asha@example.com")
		a := seedArticle(t, author, "Rover update", "Space")

		found, err := repo.FindByID(ctx, nil, a.ID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if found.Title != "Rover update" || found.AuthorName != "Asha Verma" {
			t.Errorf("got %+v", found)
		}

		found.Title = "Rover update v2"
		found.UpdatedAt = time.Now()
		if err := repo.Update(ctx, nil, found); err != nil {
			t.Fatalf("Update: %v", err)
		}
		updated, err := repo.FindByID(ctx, nil, a.ID)
		if err != nil {
			t.Fatalf("FindByID after update: %v", err)
		}
		if updated.Title != "Rover update v2" {
			t.Errorf("got title %q", updated.Title)
		}

		if err := repo.Delete(ctx, nil, a.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := repo.FindByID(ctx, nil, a.ID); err != domain.ErrNotFound {
			t.Fatalf("Expected ErrNotFound after delete, got %v", err)
		}
		if err := repo.Delete(ctx, nil, a.ID); err != domain.ErrNotFound {
			t.Fatalf("Expected ErrNotFound on double delete, got %v", err)
		}
	})

	t.Run("feed filters and sorting", func(t *testing.T) {
		cleanup(t)
		author := seedAuthor(t, "asha@example.com")
		reader := seedAuthor(t, "sam@example.com")
		seedArticle(t, author, "Rocket launch", "Space")
		seedArticle(t, author, "Election recap", "Politics")

		all, err := repo.ListFeed(ctx, nil, reader.ID, repository.FeedFilter{})
		if err != nil {
			t.Fatalf("ListFeed: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("expected 2 articles, got %d", len(all))
		}

		space, err := repo.ListFeed(ctx, nil, reader.ID, repository.FeedFilter{Category: "Space"})
		if err != nil {
			t.Fatalf("ListFeed by category: %v", err)
		}
		if len(space) != 1 || space[0].Category != "Space" {
			t.Fatalf("got %d items", len(space))
		}

		search, err := repo.ListFeed(ctx, nil, reader.ID, repository.FeedFilter{Search: "rocket"})
		if err != nil {
			t.Fatalf("ListFeed by search: %v", err)
		}
		if len(search) != 1 || search[0].Title != "Rocket launch" {
			t.Fatalf("got %d items", len(search))
		}

		byTitle, err := repo.ListFeed(ctx, nil, reader.ID, repository.FeedFilter{SortBy: "title"})
		if err != nil {
			t.Fatalf("ListFeed by title: %v", err)
		}
		if byTitle[0].Title != "Election recap" {
			t.Fatalf("expected alphabetical order, got %q first", byTitle[0].Title)
		}
	})

	t.Run("feed joins the viewer's reaction state", func(t *testing.T) {
		cleanup(t)
		author := seedAuthor(t, "asha@example.com")
		reader := seedAuthor(t, "sam@example.com")
		a := seedArticle(t, author, "Reacted", "Space")

		reactions := NewReactionRepo(testPool)
		if err := reactions.Set(ctx, nil, reader.ID, a.ID, model.ReactionState{IsLiked: true, LikeCount: 1}); err != nil {
			t.Fatalf("Set reaction: %v", err)
		}

		feed, err := repo.ListFeed(ctx, nil, reader.ID, repository.FeedFilter{})
		if err != nil {
			t.Fatalf("ListFeed: %v", err)
		}
		if len(feed) != 1 {
			t.Fatalf("expected 1 article, got %d", len(feed))
		}
		v := feed[0]
		if !v.Reaction.IsLiked || v.Reaction.LikeCount != 1 {
			t.Errorf("reaction not joined: %+v", v.Reaction)
		}
		if v.IsOwner {
			t.Error("reader must not be flagged as owner")
		}

		mine, err := repo.ListByAuthor(ctx, nil, author.ID)
		if err != nil {
			t.Fatalf("ListByAuthor: %v", err)
		}
		if len(mine) != 1 || !mine[0].IsOwner {
			t.Fatalf("author listing: %+v", mine)
		}
	})
}

func TestReactionRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	repo := NewReactionRepo(testPool)
	ctx := context.Background()

	t.Run("get returns zero state for an unreacted article", func(t *testing.T) {
		cleanup(t)
		author := seedAuthor(t, "asha@example.com")
		reader := seedAuthor(t, "sam@example.com")
		a := seedArticle(t, author, "Fresh", "Space")

		state, err := repo.Get(ctx, nil, reader.ID, a.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if state.IsLiked || state.IsDisliked || state.IsBlocked || state.LikeCount != 0 {
			t.Fatalf("got %+v", state)
		}
	})

	t.Run("set persists flags and counters together", func(t *testing.T) {
		cleanup(t)
		author := seedAuthor(t, "asha@example.com")
		reader := seedAuthor(t, "sam@example.com")
		a := seedArticle(t, author, "Reacted", "Space")

		want := model.ReactionState{IsDisliked: true, DislikeCount: 1}
		if err := repo.Set(ctx, nil, reader.ID, a.ID, want); err != nil {
			t.Fatalf("Set: %v", err)
		}

		got, err := repo.Get(ctx, nil, reader.ID, a.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got != want {
			t.Fatalf("got %+v want %+v", got, want)
		}

		article, err := NewArticleRepo(testPool).FindByID(ctx, nil, a.ID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if article.DislikeCount != 1 {
			t.Fatalf("article counter not updated: %+v", article)
		}
	})

	t.Run("set on a missing article fails", func(t *testing.T) {
		cleanup(t)
		reader := seedAuthor(t, "sam@example.com")
		err := repo.Set(ctx, nil, reader.ID, "01ARZ3NDEKTSV4RRFFQ69G5FAV", model.ReactionState{IsLiked: true, LikeCount: 1})
		if err == nil {
			t.Fatal("Expected an error for a missing article, got nil")
		}
		if _, getErr := repo.Get(ctx, nil, reader.ID, "01ARZ3NDEKTSV4RRFFQ69G5FAV"); getErr != domain.ErrNotFound {
			t.Fatalf("Expected ErrNotFound from Get, got %v", getErr)
		}
	})
}
