//go:build !integration

package model

import "testing"

func TestApplyLike(t *testing.T) {
	t.Run("like from neutral", func(t *testing.T) {
		s := ApplyLike(ReactionState{LikeCount: 3})
		if !s.IsLiked || s.LikeCount != 4 {
			t.Fatalf("got %+v", s)
		}
	})

	t.Run("like toggles off", func(t *testing.T) {
		s := ApplyLike(ReactionState{IsLiked: true, LikeCount: 4})
		if s.IsLiked || s.LikeCount != 3 {
			t.Fatalf("got %+v", s)
		}
	})

	t.Run("like clears an existing dislike", func(t *testing.T) {
		s := ApplyLike(ReactionState{IsDisliked: true, LikeCount: 2, DislikeCount: 5})
		if !s.IsLiked || s.IsDisliked {
			t.Fatalf("flags: %+v", s)
		}
		if s.LikeCount != 3 || s.DislikeCount != 4 {
			t.Fatalf("counters: %+v", s)
		}
	})
}

func TestApplyDislike(t *testing.T) {
	t.Run("dislike from neutral", func(t *testing.T) {
		s := ApplyDislike(ReactionState{})
		if !s.IsDisliked || s.DislikeCount != 1 {
			t.Fatalf("got %+v", s)
		}
	})

	t.Run("dislike toggles off", func(t *testing.T) {
		s := ApplyDislike(ReactionState{IsDisliked: true, DislikeCount: 1})
		if s.IsDisliked || s.DislikeCount != 0 {
			t.Fatalf("got %+v", s)
		}
	})

	t.Run("dislike clears an existing like", func(t *testing.T) {
		s := ApplyDislike(ReactionState{IsLiked: true, LikeCount: 1})
		if s.IsLiked || !s.IsDisliked {
			t.Fatalf("flags: %+v", s)
		}
		if s.LikeCount != 0 || s.DislikeCount != 1 {
			t.Fatalf("counters: %+v", s)
		}
	})
}

func TestReactionInvariants(t *testing.T) {
	t.Run("never both liked and disliked", func(t *testing.T) {
		states := []ReactionState{
			{},
			{IsLiked: true, LikeCount: 1},
			{IsDisliked: true, DislikeCount: 1},
			{IsBlocked: true},
		}
		for _, start := range states {
			for _, apply := range []func(ReactionState) ReactionState{ApplyLike, ApplyDislike, ApplyBlock} {
				if s := apply(start); s.IsLiked && s.IsDisliked {
					t.Fatalf("start %+v produced %+v", start, s)
				}
			}
		}
	})

	t.Run("counters never go negative", func(t *testing.T) {
		// A stale flag with a zero counter must clamp, not underflow.
		s := ApplyLike(ReactionState{IsLiked: true, LikeCount: 0})
		if s.LikeCount < 0 {
			t.Fatalf("got %+v", s)
		}
		s = ApplyDislike(ReactionState{IsDisliked: true, DislikeCount: 0})
		if s.DislikeCount < 0 {
			t.Fatalf("got %+v", s)
		}
	})

	t.Run("double toggle is identity", func(t *testing.T) {
		start := ReactionState{LikeCount: 7, DislikeCount: 2}
		if s := ApplyLike(ApplyLike(start)); s != start {
			t.Fatalf("like twice: %+v != %+v", s, start)
		}
		if s := ApplyBlock(ApplyBlock(start)); s != start {
			t.Fatalf("block twice: %+v != %+v", s, start)
		}
	})
}

func TestApplyBlock(t *testing.T) {
	s := ApplyBlock(ReactionState{IsLiked: true, LikeCount: 2})
	if !s.IsBlocked {
		t.Fatalf("got %+v", s)
	}
	if !s.IsLiked || s.LikeCount != 2 {
		t.Fatalf("block must not touch reactions: %+v", s)
	}
}

func TestVisibleArticles(t *testing.T) {
	in := []ArticleView{
		{Article: Article{ID: "a"}},
		{Article: Article{ID: "b"}, Reaction: ReactionState{IsBlocked: true}},
		{Article: Article{ID: "c"}},
	}
	out := VisibleArticles(in)
	if len(out) != 2 || out[0].ID != "a" || out[1].ID != "c" {
		t.Fatalf("got %d items", len(out))
	}
	if len(in) != 3 {
		t.Fatal("input slice must stay intact")
	}
}

func TestReactionKindValid(t *testing.T) {
	for _, k := range []ReactionKind{ReactionLike, ReactionDislike, ReactionBlock} {
		if !k.Valid() {
			t.Errorf("%q should be valid", k)
		}
	}
	if ReactionKind("applaud").Valid() {
		t.Error("unknown kind should be invalid")
	}
}
