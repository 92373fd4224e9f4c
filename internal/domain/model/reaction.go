package model

// ReactionState is one caller's relationship to one article plus the
// article's counters. IsLiked and IsDisliked are never simultaneously true;
// every surface (feed, detail, dashboard) goes through the same transition
// functions so the invariant cannot drift between call sites.
type ReactionState struct {
	IsLiked      bool
	IsDisliked   bool
	IsBlocked    bool
	LikeCount    int
	DislikeCount int
}

// ApplyLike toggles the like flag. Liking while a dislike is set clears the
// dislike and gives its counter back.
func ApplyLike(s ReactionState) ReactionState {
	if s.IsLiked {
		s.IsLiked = false
		s.LikeCount--
		return clampCounts(s)
	}
	s.IsLiked = true
	s.LikeCount++
	if s.IsDisliked {
		s.IsDisliked = false
		s.DislikeCount--
	}
	return clampCounts(s)
}

// ApplyDislike mirrors ApplyLike with the roles swapped.
func ApplyDislike(s ReactionState) ReactionState {
	if s.IsDisliked {
		s.IsDisliked = false
		s.DislikeCount--
		return clampCounts(s)
	}
	s.IsDisliked = true
	s.DislikeCount++
	if s.IsLiked {
		s.IsLiked = false
		s.LikeCount--
	}
	return clampCounts(s)
}

// ApplyBlock toggles per-caller suppression. A blocked article drops out of
// the visible-feed projection but stays in the underlying collection; only
// the owner's delete removes it for real.
func ApplyBlock(s ReactionState) ReactionState {
	s.IsBlocked = !s.IsBlocked
	return s
}

// Counters can only go negative through drift in stored data; clamp rather
// than propagate a nonsense value.
func clampCounts(s ReactionState) ReactionState {
	if s.LikeCount < 0 {
		s.LikeCount = 0
	}
	if s.DislikeCount < 0 {
		s.DislikeCount = 0
	}
	return s
}

// ReactionKind names the actions accepted by the articleAction endpoint.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
	ReactionBlock   ReactionKind = "block"
)

func (k ReactionKind) Valid() bool {
	switch k {
	case ReactionLike, ReactionDislike, ReactionBlock:
		return true
	}
	return false
}

// ArticleView is an article joined with the caller's reaction state; it is
// what list and detail endpoints return.
type ArticleView struct {
	Article
	Reaction ReactionState
	IsOwner  bool
}

// VisibleArticles is the feed projection: everything the caller has not
// blocked. The full slice stays intact for callers that need totals.
func VisibleArticles(in []ArticleView) []ArticleView {
	out := make([]ArticleView, 0, len(in))
	for _, v := range in {
		if v.Reaction.IsBlocked {
			continue
		}
		out = append(out, v)
	}
	return out
}
