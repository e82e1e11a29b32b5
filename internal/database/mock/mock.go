// Package mock provides an in-memory implementation of database.DB for testing.
package mock

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/penmark/penmark/internal/database"
)

var _ database.DB = (*MockDB)(nil)

// MockDB is a mock implementation of database.DB for testing.
type MockDB struct {
	mu sync.RWMutex

	users      map[uint]*database.User
	nextUserID uint

	articles      map[uint]*database.Article
	nextArticleID uint

	// Error simulation
	CreateUserError     error
	GetUserByIDError    error
	GetUserByEmailError error
	GetAllUsersError    error
	CountUsersError     error
	CreateArticleError  error
	GetArticleByIDError error
	ListArticlesError   error
	CountArticlesError  error
	SearchArticlesError error
	UpdateArticleError  error
	DeleteArticleError  error
}

// NewMockDB creates a new MockDB instance.
func NewMockDB() *MockDB {
	return &MockDB{
		users:         make(map[uint]*database.User),
		nextUserID:    1,
		articles:      make(map[uint]*database.Article),
		nextArticleID: 1,
	}
}

func (m *MockDB) CreateUser(_ context.Context, user *database.User) error {
	if m.CreateUserError != nil {
		return m.CreateUserError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return database.ErrDuplicateEmail
		}
	}

	user.ID = m.nextUserID
	m.nextUserID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *MockDB) GetUserByID(_ context.Context, id uint) (*database.User, error) {
	if m.GetUserByIDError != nil {
		return nil, m.GetUserByIDError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	u := *user
	return &u, nil
}

func (m *MockDB) GetUserByEmail(_ context.Context, email string) (*database.User, error) {
	if m.GetUserByEmailError != nil {
		return nil, m.GetUserByEmailError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Email == email {
			u := *user
			return &u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *MockDB) GetAllUsers(_ context.Context) ([]database.User, error) {
	if m.GetAllUsersError != nil {
		return nil, m.GetAllUsersError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]database.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, *user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *MockDB) CountUsers(_ context.Context) (int64, error) {
	if m.CountUsersError != nil {
		return 0, m.CountUsersError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.users)), nil
}

func (m *MockDB) CreateArticle(_ context.Context, article *database.Article) error {
	if m.CreateArticleError != nil {
		return m.CreateArticleError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	article.ID = m.nextArticleID
	m.nextArticleID++
	article.CreatedAt = time.Now()
	article.UpdatedAt = article.CreatedAt

	stored := *article
	m.articles[article.ID] = &stored
	return nil
}

func (m *MockDB) GetArticleByID(_ context.Context, id uint) (*database.Article, error) {
	if m.GetArticleByIDError != nil {
		return nil, m.GetArticleByIDError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	article, ok := m.articles[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	a := *article
	m.attachAuthor(&a)
	return &a, nil
}

func (m *MockDB) ListArticles(_ context.Context, limit, offset int) ([]database.Article, error) {
	if m.ListArticlesError != nil {
		return nil, m.ListArticlesError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	articles := m.sortedArticles()
	if offset >= len(articles) {
		return []database.Article{}, nil
	}
	articles = articles[offset:]
	if limit >= 0 && limit < len(articles) {
		articles = articles[:limit]
	}
	return articles, nil
}

func (m *MockDB) CountArticles(_ context.Context) (int64, error) {
	if m.CountArticlesError != nil {
		return 0, m.CountArticlesError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.articles)), nil
}

func (m *MockDB) SearchArticles(_ context.Context, keyword string) ([]database.Article, error) {
	if m.SearchArticlesError != nil {
		return nil, m.SearchArticlesError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	keyword = strings.ToLower(keyword)
	var matches []database.Article
	for _, article := range m.sortedArticles() {
		if strings.Contains(strings.ToLower(article.Title), keyword) ||
			strings.Contains(strings.ToLower(article.Content), keyword) {
			matches = append(matches, article)
		}
	}
	return matches, nil
}

func (m *MockDB) UpdateArticle(_ context.Context, article *database.Article) error {
	if m.UpdateArticleError != nil {
		return m.UpdateArticleError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.articles[article.ID]; !ok {
		return database.ErrNotFound
	}
	article.UpdatedAt = time.Now()
	stored := *article
	m.articles[article.ID] = &stored
	return nil
}

func (m *MockDB) DeleteArticle(_ context.Context, id uint) error {
	if m.DeleteArticleError != nil {
		return m.DeleteArticleError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.articles[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.articles, id)
	return nil
}

func (m *MockDB) Migrate() error { return nil }
func (m *MockDB) Close() error   { return nil }

// sortedArticles returns all articles newest-first with authors attached.
// Callers must hold the lock.
func (m *MockDB) sortedArticles() []database.Article {
	articles := make([]database.Article, 0, len(m.articles))
	for _, article := range m.articles {
		a := *article
		m.attachAuthor(&a)
		articles = append(articles, a)
	}
	sort.Slice(articles, func(i, j int) bool { return articles[i].ID > articles[j].ID })
	return articles
}

func (m *MockDB) attachAuthor(a *database.Article) {
	if user, ok := m.users[a.UserID]; ok {
		a.User = *user
	}
}
