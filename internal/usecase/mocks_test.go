//go:build !integration

package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"article-hub/internal/domain"
	"article-hub/internal/domain/model"
	"article-hub/internal/domain/ports/repository"

	"github.com/jackc/pgx/v4"
)

// memUserRepo is a small in-memory implementation used by unit tests.
type memUserRepo struct {
	mu      sync.RWMutex
	store   map[string]*model.User // by ID
	saveErr error                  // used by tests to simulate save failures
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{store: make(map[string]*model.User)}
}

func (m *memUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.store {
		if existing.Email == u.Email && existing.ID != u.ID {
			return domain.ErrAlreadyExists
		}
	}
	cp := *u
	m.store[u.ID] = &cp
	return nil
}

func (m *memUserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.store {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) UpdatePassword(ctx context.Context, tx repository.Tx, id, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *memUserRepo) ReplaceTopics(ctx context.Context, tx repository.Tx, id string, topics []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Topics = append([]string(nil), topics...)
	return nil
}

func (m *memUserRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

// memArticleRepo keeps articles and serves feed queries in memory.
type memArticleRepo struct {
	mu        sync.RWMutex
	store     map[string]*model.Article
	reactions *memReactionRepo
}

func newMemArticleRepo(reactions *memReactionRepo) *memArticleRepo {
	return &memArticleRepo{store: make(map[string]*model.Article), reactions: reactions}
}

func (m *memArticleRepo) Save(ctx context.Context, tx repository.Tx, a *model.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.store[a.ID] = &cp
	return nil
}

func (m *memArticleRepo) Update(ctx context.Context, tx repository.Tx, a *model.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[a.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *a
	m.store[a.ID] = &cp
	return nil
}

func (m *memArticleRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *memArticleRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memArticleRepo) ListFeed(ctx context.Context, tx repository.Tx, viewerID string, f repository.FeedFilter) ([]model.ArticleView, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.ArticleView
	for _, a := range m.store {
		if f.Category != "" && a.Category != f.Category {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(a.Title), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, m.view(viewerID, a))
	}
	return out, nil
}

func (m *memArticleRepo) ListByAuthor(ctx context.Context, tx repository.Tx, authorID string) ([]model.ArticleView, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.ArticleView
	for _, a := range m.store {
		if a.AuthorID == authorID {
			out = append(out, m.view(authorID, a))
		}
	}
	return out, nil
}

func (m *memArticleRepo) view(viewerID string, a *model.Article) model.ArticleView {
	state, _ := m.reactions.Get(context.Background(), nil, viewerID, a.ID)
	state.LikeCount = a.LikeCount
	state.DislikeCount = a.DislikeCount
	return model.ArticleView{Article: *a, Reaction: state, IsOwner: a.AuthorID == viewerID}
}

// memReactionRepo stores per-user reaction rows and mirrors counter updates
// onto the article store, like the SQL implementation does in one tx.
type memReactionRepo struct {
	mu       sync.RWMutex
	rows     map[string]model.ReactionState // key userID+"/"+articleID
	articles *memArticleRepo
}

func newMemReactionRepo() *memReactionRepo {
	return &memReactionRepo{rows: make(map[string]model.ReactionState)}
}

func (m *memReactionRepo) Get(ctx context.Context, tx repository.Tx, userID, articleID string) (model.ReactionState, error) {
	m.mu.RLock()
	state := m.rows[userID+"/"+articleID]
	m.mu.RUnlock()
	if m.articles != nil {
		if a, err := m.articles.FindByID(ctx, nil, articleID); err == nil {
			state.LikeCount = a.LikeCount
			state.DislikeCount = a.DislikeCount
		}
	}
	return state, nil
}

func (m *memReactionRepo) Set(ctx context.Context, tx repository.Tx, userID, articleID string, s model.ReactionState) error {
	m.mu.Lock()
	m.rows[userID+"/"+articleID] = s
	m.mu.Unlock()
	if m.articles != nil {
		m.articles.mu.Lock()
		if a, ok := m.articles.store[articleID]; ok {
			a.LikeCount = s.LikeCount
			a.DislikeCount = s.DislikeCount
		}
		m.articles.mu.Unlock()
	}
	return nil
}

// memSessionRepo backs the auth tests.
type memSessionRepo struct {
	mu    sync.RWMutex
	store map[string]*repository.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{store: make(map[string]*repository.Session)}
}

func (m *memSessionRepo) Save(ctx context.Context, tx repository.Tx, s *repository.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.store[s.ID] = &cp
	return nil
}

func (m *memSessionRepo) FindByTokenHash(ctx context.Context, tx repository.Tx, hash string) (*repository.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.store {
		if s.TokenHash == hash {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memSessionRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, id)
	return nil
}

func (m *memSessionRepo) DeleteByUser(ctx context.Context, tx repository.Tx, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.store {
		if s.UserID == userID {
			delete(m.store, id)
		}
	}
	return nil
}

func (m *memSessionRepo) PurgeExpired(ctx context.Context, tx repository.Tx, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.store {
		if s.ExpiresAt.Before(now) {
			delete(m.store, id)
			n++
		}
	}
	return n, nil
}

// memDraftRepo holds signup drafts without TTL semantics.
type memDraftRepo struct {
	mu    sync.RWMutex
	store map[string]*model.RegistrationDraft
}

func newMemDraftRepo() *memDraftRepo {
	return &memDraftRepo{store: make(map[string]*model.RegistrationDraft)}
}

func (m *memDraftRepo) SetDraft(ctx context.Context, draft *model.RegistrationDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *draft
	m.store[draft.FlowID] = &cp
	return nil
}

func (m *memDraftRepo) GetDraft(ctx context.Context, flowID string) (*model.RegistrationDraft, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.store[flowID]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memDraftRepo) ClearDraft(ctx context.Context, flowID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, flowID)
	return nil
}

// memCodeStore holds verification codes keyed by email.
type memCodeStore struct {
	mu    sync.RWMutex
	store map[string]string
}

func newMemCodeStore() *memCodeStore {
	return &memCodeStore{store: make(map[string]string)}
}

func (m *memCodeStore) Put(ctx context.Context, email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[strings.ToLower(email)] = code
	return nil
}

func (m *memCodeStore) Get(ctx context.Context, email string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	code, ok := m.store[strings.ToLower(email)]
	if !ok {
		return "", domain.ErrCodeExpired
	}
	return code, nil
}

func (m *memCodeStore) Delete(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, strings.ToLower(email))
	return nil
}

// memTxManager runs fn directly; unit tests do not exercise SQL isolation.
type memTxManager struct{}

func (memTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, nil)
}

// memSender records delivered codes instead of mailing them.
type memSender struct {
	mu    sync.Mutex
	sent  []string // codes in delivery order
	toErr error
}

func (m *memSender) SendCode(ctx context.Context, email, code string) error {
	if m.toErr != nil {
		return m.toErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, code)
	return nil
}

func (m *memSender) lastCode() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return ""
	}
	return m.sent[len(m.sent)-1]
}

// memRedis implements the redis client surface for the rate limiter and
// feed cache without a server.
type memRedis struct {
	mu     sync.Mutex
	kv     map[string]string
	counts map[string]int64
}

func newMemRedis() *memRedis {
	return &memRedis{kv: make(map[string]string), counts: make(map[string]int64)}
}

func (m *memRedis) Ping(ctx context.Context) error { return nil }

func (m *memRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch v := value.(type) {
	case string:
		m.kv[key] = v
	case []byte:
		m.kv[key] = string(v)
	}
	return nil
}

func (m *memRedis) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.kv[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

func (m *memRedis) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return m.counts[key], nil
}

func (m *memRedis) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return nil
}

func (m *memRedis) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.kv, k)
		delete(m.counts, k)
	}
	return nil
}

func (m *memRedis) Close() error { return nil }
