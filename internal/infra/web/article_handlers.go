package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"article-hub/internal/domain/model"
	"article-hub/internal/domain/ports/repository"

	"github.com/go-chi/chi/v5"
)

type articleResponse struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Content      string    `json:"content"`
	Category     string    `json:"category"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	LikeCount    int       `json:"likeCount"`
	DislikeCount int       `json:"dislikeCount"`
	IsLiked      bool      `json:"isLiked"`
	IsDisliked   bool      `json:"isDisliked"`
	IsBlocked    bool      `json:"isBlocked"`
	IsOwner      bool      `json:"isOwner"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func articleResponseFrom(v model.ArticleView) articleResponse {
	return articleResponse{
		ID:           v.ID,
		AuthorID:     v.AuthorID,
		AuthorName:   v.AuthorName,
		Title:        v.Title,
		Description:  v.Description,
		Content:      v.Content,
		Category:     v.Category,
		ImageURL:     v.ImageURL,
		LikeCount:    v.Reaction.LikeCount,
		DislikeCount: v.Reaction.DislikeCount,
		IsLiked:      v.Reaction.IsLiked,
		IsDisliked:   v.Reaction.IsDisliked,
		IsBlocked:    v.Reaction.IsBlocked,
		IsOwner:      v.IsOwner,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func articleListResponse(views []model.ArticleView) []articleResponse {
	out := make([]articleResponse, 0, len(views))
	for _, v := range views {
		out = append(out, articleResponseFrom(v))
	}
	return out
}

func (s *Server) handleHomeFeed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.FeedFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		SortBy:   q.Get("sortBy"),
	}

	views, err := s.articleUC.HomeFeed(r.Context(), userID(r), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": articleListResponse(views)})
}

func (s *Server) handleMyArticles(w http.ResponseWriter, r *http.Request) {
	views, err := s.articleUC.MyArticles(r.Context(), userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": articleListResponse(views)})
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	view, err := s.articleUC.Get(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, articleResponseFrom(*view))
}

type articleCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
}

func (s *Server) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	var req articleCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	article, err := s.articleUC.Create(r.Context(), userID(r),
		req.Title, req.Description, req.Content, req.Category, req.ImageURL)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, articleResponseFrom(model.ArticleView{
		Article:  *article,
		IsOwner:  true,
		Reaction: model.ReactionState{LikeCount: article.LikeCount, DislikeCount: article.DislikeCount},
	}))
}

type articleUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"imageUrl"`
}

func (s *Server) handleUpdateArticle(w http.ResponseWriter, r *http.Request) {
	var req articleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	article, err := s.articleUC.Update(r.Context(), userID(r), chi.URLParam(r, "id"), model.ArticleUpdate{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, articleResponseFrom(model.ArticleView{
		Article:  *article,
		IsOwner:  true,
		Reaction: model.ReactionState{LikeCount: article.LikeCount, DislikeCount: article.DislikeCount},
	}))
}

func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	confirm, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	if err := s.articleUC.Delete(r.Context(), userID(r), chi.URLParam(r, "id"), confirm); err != nil {
		writeDomainError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "article deleted")
}

type articleActionRequest struct {
	Action string `json:"action"` // like | dislike | block
}

func (s *Server) handleArticleAction(w http.ResponseWriter, r *http.Request) {
	var req articleActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := s.reactUC.React(r.Context(), userID(r), chi.URLParam(r, "id"), model.ReactionKind(req.Action))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"isLiked":      state.IsLiked,
		"isDisliked":   state.IsDisliked,
		"isBlocked":    state.IsBlocked,
		"likeCount":    state.LikeCount,
		"dislikeCount": state.DislikeCount,
	})
}
