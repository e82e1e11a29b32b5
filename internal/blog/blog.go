// Package blog owns the article lifecycle: creation, listing, search,
// and owner-gated edits and deletes.
package blog

import (
	"context"
	"errors"

	"github.com/penmark/penmark/internal/auth"
	"github.com/penmark/penmark/internal/database"
	"github.com/penmark/penmark/internal/validation"
)

var (
	// ErrUnauthorized is returned when a guest attempts a mutating operation.
	ErrUnauthorized = errors.New("login required")
	// ErrForbidden is returned when an authenticated user is not the article owner.
	ErrForbidden = errors.New("not the article owner")
	// ErrNotFound is returned when the article does not exist.
	ErrNotFound = errors.New("article not found")
)

// Valid article categories.
const (
	CategoryAll     = "all"
	CategoryLimited = "limited"
)

// ArticleForm carries the raw article fields as submitted.
type ArticleForm struct {
	Title    string
	Summary  string
	Content  string
	Category string
}

// Page is one page of the article list.
type Page struct {
	Articles   []database.Article
	Current    int
	TotalPages int
}

// Service implements the article store and its authorization policy.
// Mutating operations take an explicit identity; a guest is rejected
// before the store is touched.
type Service struct {
	db       database.DB
	pageSize int
}

func NewService(db database.DB, pageSize int) *Service {
	return &Service{db: db, pageSize: pageSize}
}

func validateForm(form ArticleForm) error {
	var verr validation.Errors
	verr.Require(form.Title, "title is required")
	verr.Require(form.Summary, "summary is required")
	verr.Require(form.Content, "content is required")
	verr.Require(form.Category, "category is required")
	if form.Category != CategoryAll && form.Category != CategoryLimited {
		verr.Add(`category must be "all" or "limited"`)
	}
	return verr.OrNil()
}

// Create validates the form and persists a new article owned by ident.
func (s *Service) Create(ctx context.Context, ident auth.Identity, form ArticleForm) (uint, error) {
	if ident.IsGuest() {
		return 0, ErrUnauthorized
	}
	if err := validateForm(form); err != nil {
		return 0, err
	}

	article := database.Article{
		Title:    form.Title,
		Summary:  form.Summary,
		Content:  form.Content,
		Category: form.Category,
		UserID:   ident.UserID,
	}
	if err := s.db.CreateArticle(ctx, &article); err != nil {
		return 0, err
	}
	return article.ID, nil
}

// Get returns one article with its author.
func (s *Service) Get(ctx context.Context, id uint) (*database.Article, error) {
	article, err := s.db.GetArticleByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	return article, err
}

// GetOwned returns one article if ident is its owner. Used to populate
// the edit form with the same access rules as the edit itself.
func (s *Service) GetOwned(ctx context.Context, ident auth.Identity, id uint) (*database.Article, error) {
	if ident.IsGuest() {
		return nil, ErrUnauthorized
	}
	article, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.UserID != ident.UserID {
		return nil, ErrForbidden
	}
	return article, nil
}

// Latest returns the n newest articles.
func (s *Service) Latest(ctx context.Context, n int) ([]database.Article, error) {
	return s.db.ListArticles(ctx, n, 0)
}

// All returns every article, newest first.
func (s *Service) All(ctx context.Context) ([]database.Article, error) {
	return s.db.ListArticles(ctx, -1, 0)
}

// List returns one page of articles, newest first. Pages are 1-based;
// values below 1 are clamped, pages past the last one yield an empty page.
func (s *Service) List(ctx context.Context, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}

	count, err := s.db.CountArticles(ctx)
	if err != nil {
		return nil, err
	}
	totalPages := int((count + int64(s.pageSize) - 1) / int64(s.pageSize))

	articles, err := s.db.ListArticles(ctx, s.pageSize, (page-1)*s.pageSize)
	if err != nil {
		return nil, err
	}

	return &Page{
		Articles:   articles,
		Current:    page,
		TotalPages: totalPages,
	}, nil
}

// Search returns articles whose title or content contains the keyword,
// case-insensitively. An empty keyword deliberately returns all articles.
func (s *Service) Search(ctx context.Context, keyword string) ([]database.Article, error) {
	return s.db.SearchArticles(ctx, keyword)
}

// Update rewrites an article's fields if ident is its owner.
// The updated timestamp is refreshed on success.
func (s *Service) Update(ctx context.Context, ident auth.Identity, id uint, form ArticleForm) error {
	article, err := s.GetOwned(ctx, ident, id)
	if err != nil {
		return err
	}
	if err := validateForm(form); err != nil {
		return err
	}

	article.Title = form.Title
	article.Summary = form.Summary
	article.Content = form.Content
	article.Category = form.Category
	return s.db.UpdateArticle(ctx, article)
}

// Delete removes an article if ident is its owner.
func (s *Service) Delete(ctx context.Context, ident auth.Identity, id uint) error {
	if _, err := s.GetOwned(ctx, ident, id); err != nil {
		return err
	}
	if err := s.db.DeleteArticle(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
