//go:build !integration

package web

import (
	"context"

	"article-hub/internal/domain/model"
	"article-hub/internal/domain/ports/repository"
	"article-hub/internal/domain/validate"
	"article-hub/internal/usecase"
)

// --- Mock use cases ---
// Each mock embeds its interface and overrides via func fields, so tests
// only fill in what they exercise.

type mockRegistrationUC struct {
	usecase.RegistrationUseCase
	submitBasicInfo func(ctx context.Context, flowID string, info model.PersonalInfo) (*model.RegistrationDraft, validate.ErrorMap, error)
	verifyCode      func(ctx context.Context, flowID string, slots []string) (*model.RegistrationDraft, validate.ErrorMap, error)
	resendCode      func(ctx context.Context, flowID string) error
	submitTopics    func(ctx context.Context, flowID string, topics []string) (*model.User, validate.ErrorMap, error)
	retreat         func(ctx context.Context, flowID string) (*model.RegistrationDraft, error)
}

func (m *mockRegistrationUC) SubmitBasicInfo(ctx context.Context, flowID string, info model.PersonalInfo) (*model.RegistrationDraft, validate.ErrorMap, error) {
	return m.submitBasicInfo(ctx, flowID, info)
}

func (m *mockRegistrationUC) VerifyCode(ctx context.Context, flowID string, slots []string) (*model.RegistrationDraft, validate.ErrorMap, error) {
	return m.verifyCode(ctx, flowID, slots)
}

func (m *mockRegistrationUC) ResendCode(ctx context.Context, flowID string) error {
	return m.resendCode(ctx, flowID)
}

func (m *mockRegistrationUC) SubmitTopics(ctx context.Context, flowID string, topics []string) (*model.User, validate.ErrorMap, error) {
	return m.submitTopics(ctx, flowID, topics)
}

func (m *mockRegistrationUC) Retreat(ctx context.Context, flowID string) (*model.RegistrationDraft, error) {
	return m.retreat(ctx, flowID)
}

type mockAuthUC struct {
	usecase.AuthUseCase
	login     func(ctx context.Context, email, password string) (*model.User, string, error)
	refresh   func(ctx context.Context, refreshToken string) (*model.User, string, error)
	logout    func(ctx context.Context, refreshToken string) error
	logoutAll func(ctx context.Context, userID string) error
}

func (m *mockAuthUC) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	return m.login(ctx, email, password)
}

func (m *mockAuthUC) Refresh(ctx context.Context, refreshToken string) (*model.User, string, error) {
	return m.refresh(ctx, refreshToken)
}

func (m *mockAuthUC) Logout(ctx context.Context, refreshToken string) error {
	return m.logout(ctx, refreshToken)
}

func (m *mockAuthUC) LogoutAll(ctx context.Context, userID string) error {
	return m.logoutAll(ctx, userID)
}

type mockArticleUC struct {
	usecase.ArticleUseCase
	create     func(ctx context.Context, authorID, title, description, content, category, imageURL string) (*model.Article, error)
	update     func(ctx context.Context, userID, articleID string, upd model.ArticleUpdate) (*model.Article, error)
	deleteFn   func(ctx context.Context, userID, articleID string, confirm bool) error
	get        func(ctx context.Context, viewerID, articleID string) (*model.ArticleView, error)
	homeFeed   func(ctx context.Context, viewerID string, f repository.FeedFilter) ([]model.ArticleView, error)
	myArticles func(ctx context.Context, authorID string) ([]model.ArticleView, error)
}

func (m *mockArticleUC) Create(ctx context.Context, authorID, title, description, content, category, imageURL string) (*model.Article, error) {
	return m.create(ctx, authorID, title, description, content, category, imageURL)
}

func (m *mockArticleUC) Update(ctx context.Context, userID, articleID string, upd model.ArticleUpdate) (*model.Article, error) {
	return m.update(ctx, userID, articleID, upd)
}

func (m *mockArticleUC) Delete(ctx context.Context, userID, articleID string, confirm bool) error {
	return m.deleteFn(ctx, userID, articleID, confirm)
}

func (m *mockArticleUC) Get(ctx context.Context, viewerID, articleID string) (*model.ArticleView, error) {
	return m.get(ctx, viewerID, articleID)
}

func (m *mockArticleUC) HomeFeed(ctx context.Context, viewerID string, f repository.FeedFilter) ([]model.ArticleView, error) {
	return m.homeFeed(ctx, viewerID, f)
}

func (m *mockArticleUC) MyArticles(ctx context.Context, authorID string) ([]model.ArticleView, error) {
	return m.myArticles(ctx, authorID)
}

type mockReactionUC struct {
	usecase.ReactionUseCase
	react func(ctx context.Context, userID, articleID string, kind model.ReactionKind) (model.ReactionState, error)
}

func (m *mockReactionUC) React(ctx context.Context, userID, articleID string, kind model.ReactionKind) (model.ReactionState, error) {
	return m.react(ctx, userID, articleID, kind)
}

type mockProfileUC struct {
	usecase.ProfileUseCase
	get               func(ctx context.Context, userID string) (*model.User, error)
	update            func(ctx context.Context, userID string, edit usecase.ProfileEdit) (*model.User, validate.ErrorMap, error)
	resetPassword     func(ctx context.Context, userID, current, next, confirm string) (validate.ErrorMap, error)
	updatePreferences func(ctx context.Context, userID string, topics []string) (*model.User, validate.ErrorMap, error)
}

func (m *mockProfileUC) Get(ctx context.Context, userID string) (*model.User, error) {
	return m.get(ctx, userID)
}

func (m *mockProfileUC) Update(ctx context.Context, userID string, edit usecase.ProfileEdit) (*model.User, validate.ErrorMap, error) {
	return m.update(ctx, userID, edit)
}

func (m *mockProfileUC) ResetPassword(ctx context.Context, userID, current, next, confirm string) (validate.ErrorMap, error) {
	return m.resetPassword(ctx, userID, current, next, confirm)
}

func (m *mockProfileUC) UpdatePreferences(ctx context.Context, userID string, topics []string) (*model.User, validate.ErrorMap, error) {
	return m.updatePreferences(ctx, userID, topics)
}
